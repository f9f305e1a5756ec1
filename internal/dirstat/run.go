package dirstat

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/idelchi/topfiles/internal/walk"
)

const (
	// DefaultProgressInterval is the default interval for progress updates.
	DefaultProgressInterval = 500 * time.Millisecond
	// DefaultTopN is the number of files reported when none is requested.
	DefaultTopN = 10
)

// logger provides warnings and conditional debug output.
type logger struct {
	enabled bool
	out     io.Writer
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Fprintf(l.out, format, args...)
	}
}

// warnf always prints.
func (l logger) warnf(format string, args ...any) {
	fmt.Fprintf(l.out, "[warn]: "+format, args...)
}

// Run scans the directory tree at opt.Path and returns the opt.TopN largest
// files together with aggregate totals.
//
// Files are filtered by opt.Extensions, opt.Excludes and opt.MinSize before
// they are ranked. Directories matching opt.Excludes or lying beyond
// opt.Depth are not entered.
//
// A root that cannot be read as a directory is returned as a *walk.Error of
// kind walk.ErrRootUnreadable. Unreadable subdirectories and entries are
// logged to logOut, counted in Stats.ErrorCount and otherwise ignored.
//
// progressHook, if non-nil, is called from the scanning goroutine at most once
// per opt.ProgressInterval with the running file and byte totals.
func Run(fsys afero.Fs, opt Options, logOut io.Writer, progressHook func(files, bytes int64)) (*Stats, error) {
	if logOut == nil {
		logOut = os.Stderr
	}

	log := logger{enabled: opt.Debug, out: logOut}

	if opt.Path == "" {
		opt.Path = "."
	}

	root, err := filepath.Abs(filepath.Clean(opt.Path))
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}

	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = DefaultProgressInterval
	}

	f, err := newFilter(opt)
	if err != nil {
		return nil, err
	}

	log.printf("[debug]: scanning %s for the %d largest files\n", root, opt.TopN)
	log.printf("[debug]: exclude regexes:\n")

	for _, re := range f.excludes {
		log.printf("[debug]:   - %s\n", re.String())
	}

	c := newCollector(opt.TopN, f, log)
	c.hook = progressHook
	c.interval = opt.ProgressInterval

	start := time.Now()

	err = walk.Scan(fsys, root, c, walk.Options{
		MaxDepth: opt.Depth,
		SkipDir: func(path string) bool {
			if f.skipDir(path) {
				log.printf("[debug]: excluding directory: %s\n", filepath.ToSlash(path))

				return true
			}

			return false
		},
		OnError: func(err *walk.Error) {
			c.addError()
			log.warnf("%v\n", err)
		},
	})
	if err != nil {
		return nil, err
	}

	stats := c.finalize()
	stats.Root = root
	stats.Elapsed = time.Since(start)

	log.printf("[debug]: scanned %d files in %v\n", stats.FileCount, stats.Elapsed)

	return stats, nil
}
