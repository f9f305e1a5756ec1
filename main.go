// Command topfiles lists the largest files in a directory tree.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/topfiles/internal/cli"
)

// Version is set at build time.
//
//nolint:gochecknoglobals // Set via ldflags
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "topfiles: %v\n", err)

		os.Exit(1)
	}
}
