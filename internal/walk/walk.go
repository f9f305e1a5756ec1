package walk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/idelchi/topfiles/internal/topk"
)

// Offerer receives every file discovered by Scan.
type Offerer interface {
	Offer(r topk.Record) bool
}

// Options configures a scan.
type Options struct {
	// MaxDepth limits traversal depth (0=unlimited). Entries directly under the
	// root are at depth 1.
	MaxDepth int
	// SkipDir, if set, prunes every directory for which it returns true.
	SkipDir func(path string) bool
	// OnError, if set, receives every recoverable error.
	OnError func(err *Error)
}

// frame is a directory waiting to be read.
type frame struct {
	path  string
	depth int
}

// Scan walks the tree rooted at root and offers every non-directory entry to sel.
//
// A root that is missing, is not a directory, or cannot be read returns an
// *Error of kind ErrRootUnreadable before anything is offered. All other
// failures are passed to opts.OnError and the walk continues.
func Scan(fsys afero.Fs, root string, sel Offerer, opts Options) error {
	info, err := fsys.Stat(root)
	if err != nil {
		return &Error{Kind: ErrRootUnreadable, Path: root, Err: err}
	}

	if !info.IsDir() {
		return &Error{Kind: ErrRootUnreadable, Path: root, Err: errors.New("not a directory")}
	}

	report := func(kind error, path string, err error) {
		if opts.OnError != nil {
			opts.OnError(&Error{Kind: kind, Path: path, Err: err})
		}
	}

	stack := []frame{{path: root}}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		names, err := readDirNames(fsys, dir.path)
		if err != nil {
			if dir.path == root {
				return &Error{Kind: ErrRootUnreadable, Path: root, Err: err}
			}

			report(ErrSubtreeUnreadable, dir.path, err)

			continue
		}

		depth := dir.depth + 1

		var subdirs []frame

		for _, name := range names {
			path := filepath.Join(dir.path, name)

			entry, err := lstat(fsys, path)
			if err != nil {
				report(ErrEntryUnreadable, path, err)

				continue
			}

			if entry.IsDir() {
				if opts.SkipDir != nil && opts.SkipDir(path) {
					continue
				}

				// Children of a directory at the depth limit would exceed it.
				if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
					continue
				}

				subdirs = append(subdirs, frame{path: path, depth: depth})

				continue
			}

			sel.Offer(topk.Record{Name: name, Size: entry.Size(), Path: path})
		}

		// Push in reverse so the first subdirectory is walked next.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return nil
}

// readDirNames returns the sorted entry names of dir.
func readDirNames(fsys afero.Fs, dir string) ([]string, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}

	slices.Sort(names)

	return names, nil
}

// lstat describes path without following a trailing symlink when fsys allows it.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)

		return info, err
	}

	return fsys.Stat(path)
}
