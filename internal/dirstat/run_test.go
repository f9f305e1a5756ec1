package dirstat_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/topfiles/internal/dirstat"
	"github.com/idelchi/topfiles/internal/topk"
	"github.com/idelchi/topfiles/internal/walk"
)

// lockedFs refuses to open one directory.
type lockedFs struct {
	afero.Fs
	locked string
}

func (l lockedFs) Open(name string) (afero.File, error) {
	if name == l.locked {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}

	return l.Fs.Open(name)
}

func newTree(t *testing.T, files map[string]int) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/data", 0o755))

	for path, size := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fsys, path, make([]byte, size), 0o644))
	}

	return fsys
}

func sizes(records []topk.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.Size
	}

	return out
}

func TestRunTopFiles(t *testing.T) {
	fsys := newTree(t, map[string]int{
		"/data/a.txt":     5,
		"/data/x/b.bin":   100,
		"/data/x/c.log":   1,
		"/data/y/z/d.iso": 999,
		"/data/e.dat":     50,
	})

	stats, err := dirstat.Run(fsys, dirstat.Options{Path: "/data", TopN: 3}, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{999, 100, 50}, sizes(stats.TopFiles))
	assert.Equal(t, "d.iso", stats.TopFiles[0].Name)
	assert.Equal(t, "/data/y/z/d.iso", stats.TopFiles[0].Path)
	assert.Equal(t, int64(5), stats.FileCount)
	assert.Equal(t, int64(1155), stats.TotalBytes)
	assert.Equal(t, 3, stats.TopN)
	assert.Equal(t, "/data", stats.Root)
	assert.Zero(t, stats.ErrorCount)
}

func TestRunCapacityLargerThanTree(t *testing.T) {
	fsys := newTree(t, map[string]int{
		"/data/a": 3,
		"/data/b": 1,
		"/data/c": 2,
	})

	stats, err := dirstat.Run(fsys, dirstat.Options{Path: "/data", TopN: 50}, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, sizes(stats.TopFiles))
}

func TestRunDefaultsTopN(t *testing.T) {
	files := make(map[string]int)
	for i := 0; i < 15; i++ {
		files[filepath.Join("/data", string(rune('a'+i)))] = i
	}

	stats, err := dirstat.Run(newTree(t, files), dirstat.Options{Path: "/data"}, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.Equal(t, dirstat.DefaultTopN, stats.TopN)
	assert.Len(t, stats.TopFiles, dirstat.DefaultTopN)
}

func TestRunEmptyTree(t *testing.T) {
	stats, err := dirstat.Run(newTree(t, nil), dirstat.Options{Path: "/data", TopN: 5}, &bytes.Buffer{}, nil)
	require.NoError(t, err)
	assert.Empty(t, stats.TopFiles)
	assert.Zero(t, stats.FileCount)
}

func TestRunMissingRootIsFatal(t *testing.T) {
	stats, err := dirstat.Run(newTree(t, nil), dirstat.Options{Path: "/missing"}, &bytes.Buffer{}, nil)
	require.ErrorIs(t, err, walk.ErrRootUnreadable)
	assert.Nil(t, stats)
}

func TestRunReportsUnreadableSubtree(t *testing.T) {
	fsys := lockedFs{
		Fs: newTree(t, map[string]int{
			"/data/ok/a":     10,
			"/data/secret/b": 500,
		}),
		locked: "/data/secret",
	}

	var logs bytes.Buffer

	stats, err := dirstat.Run(fsys, dirstat.Options{Path: "/data", TopN: 5}, &logs, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, sizes(stats.TopFiles))
	assert.Equal(t, int64(1), stats.ErrorCount)
	assert.Contains(t, logs.String(), "[warn]: directory unreadable: /data/secret")
}

func TestRunFilters(t *testing.T) {
	fsys := newTree(t, map[string]int{
		"/data/main.go":             300,
		"/data/main_test.go":        400,
		"/data/notes.md":            200,
		"/data/tiny.go":             2,
		"/data/.git/objects/pack":   9000,
		"/data/vendor/lib/big.go":   800,
		"/data/vendor/lib/small.go": 10,
	})

	tests := []struct {
		name string
		opt  dirstat.Options
		want []string
	}{
		{
			name: "extension include",
			opt:  dirstat.Options{Extensions: []string{".md"}},
			want: []string{"/data/notes.md"},
		},
		{
			name: "extension exclude",
			opt:  dirstat.Options{Extensions: []string{".go", "!_test.go"}, MinSize: 100},
			want: []string{"/data/vendor/lib/big.go", "/data/main.go"},
		},
		{
			name: "regex prunes directories",
			opt:  dirstat.Options{Excludes: []string{`.*\.git/.*`, `^.*/vendor/.*$`}, MinSize: 100},
			want: []string{"/data/main_test.go", "/data/main.go", "/data/notes.md"},
		},
		{
			name: "depth",
			opt:  dirstat.Options{Depth: 1, MinSize: 250},
			want: []string{"/data/main_test.go", "/data/main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opt.Path = "/data"
			tt.opt.TopN = 10

			stats, err := dirstat.Run(fsys, tt.opt, &bytes.Buffer{}, nil)
			require.NoError(t, err)

			got := make([]string, len(stats.TopFiles))
			for i, r := range stats.TopFiles {
				got[i] = r.Path
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunInvalidExcludePattern(t *testing.T) {
	_, err := dirstat.Run(newTree(t, nil), dirstat.Options{Path: "/data", Excludes: []string{"("}}, &bytes.Buffer{}, nil)
	require.ErrorContains(t, err, "compiling exclusion pattern")
}

func TestRunProgressHook(t *testing.T) {
	fsys := newTree(t, map[string]int{"/data/a": 1, "/data/b": 2})

	var calls [][2]int64

	_, err := dirstat.Run(fsys, dirstat.Options{Path: "/data", ProgressInterval: time.Nanosecond}, &bytes.Buffer{},
		func(files, bytes int64) { calls = append(calls, [2]int64{files, bytes}) })
	require.NoError(t, err)

	require.NotEmpty(t, calls)
	assert.Equal(t, [2]int64{1, 1}, calls[0])
}

func TestRunDebugOutput(t *testing.T) {
	fsys := newTree(t, map[string]int{"/data/a": 1})

	var logs bytes.Buffer

	_, err := dirstat.Run(fsys, dirstat.Options{Path: "/data", Debug: true, MinSize: 5}, &logs, nil)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "[debug]: skipping file (below minimum size): /data/a")
}
