package dirstat

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/idelchi/topfiles/internal/topk"
)

// filter decides which entries take part in a scan.
type filter struct {
	minSize    int64
	extInclude map[string]struct{}
	extExclude map[string]struct{}
	excludes   []*regexp.Regexp
}

// newFilter parses extension and regex options.
func newFilter(opt Options) (filter, error) {
	f := filter{
		minSize:    opt.MinSize,
		extInclude: make(map[string]struct{}, len(opt.Extensions)),
		extExclude: make(map[string]struct{}, len(opt.Extensions)),
		excludes:   make([]*regexp.Regexp, 0, len(opt.Excludes)),
	}

	for _, e := range opt.Extensions { //nolint:varnamelen // e is standard for element in range
		e = strings.Trim(e, "'\"") // Strip quotes first

		if strings.HasPrefix(e, "!") {
			f.extExclude[strings.TrimPrefix(e, "!")] = struct{}{}
		} else {
			f.extInclude[e] = struct{}{}
		}
	}

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return filter{}, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		f.excludes = append(f.excludes, re)
	}

	return f, nil
}

// rejectFile returns a non-empty reason if r should not be considered.
func (f filter) rejectFile(r topk.Record) string {
	if r.Size < f.minSize {
		return "below minimum size"
	}

	if re := shouldExcludeByPattern(r.Path, f.excludes); re != nil {
		return "matched regex " + re.String()
	}

	if !shouldIncludeByExtension(r.Path, f.extInclude, f.extExclude) {
		return "extension filter"
	}

	return ""
}

// skipDir reports whether the directory at path matches an exclusion pattern.
func (f filter) skipDir(path string) bool {
	// Patterns are written against files, e.g. `.*\.git/.*`, so match the directory with a trailing slash.
	return shouldExcludeByPattern(path+string(filepath.Separator), f.excludes) != nil
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// shouldIncludeByExtension checks if file should be included based on extension filters.
// Returns true if file should be included, false if excluded.
func shouldIncludeByExtension(path string, include, exclude map[string]struct{}) bool {
	for ext := range exclude {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}

	if len(include) == 0 {
		return true
	}

	for ext := range include {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}
