// Package pretty renders byte counts for display.
package pretty

import (
	"fmt"
	"math"
	"strconv"
)

// units are decimal (1000-based) magnitudes.
//
//nolint:gochecknoglobals // Lookup table
var units = [...]string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// Bytes formats num with a decimal unit and two decimals, e.g. "1.50 MB".
// Values below one byte are printed as-is ("0.5 B") and negative values keep
// a leading minus sign.
func Bytes(num float64) string {
	sign := ""
	if num < 0 {
		sign = "-"
		num = math.Abs(num)
	}

	if num < 1 {
		return sign + strconv.FormatFloat(num, 'f', -1, 64) + " B"
	}

	exp := 0
	for num >= 1000 && exp < len(units)-1 {
		num /= 1000
		exp++
	}

	return fmt.Sprintf("%s%.2f %s", sign, num, units[exp])
}

// Size formats a byte count as returned by the filesystem.
func Size(n int64) string {
	return Bytes(float64(n))
}
