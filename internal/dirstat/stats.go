package dirstat

import (
	"time"

	"github.com/idelchi/topfiles/internal/topk"
)

// Stats holds the result of a scan.
type Stats struct {
	// Root is the absolute path that was scanned.
	Root string `json:"root"`
	// FileCount is the number of files that passed the filters.
	FileCount int64 `json:"file_count"`
	// TotalBytes is the cumulative size of those files.
	TotalBytes int64 `json:"total_bytes"`
	// TopFiles contains the N largest files, largest first.
	TopFiles []topk.Record `json:"top_files"`
	// ErrorCount is the number of unreadable directories and entries skipped.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
	// TopN is the number of top results tracked.
	TopN int `json:"top_n"`
}

// Options configures a scan and CLI behavior.
type Options struct {
	// Path is the directory to scan.
	Path string
	// Extensions to include (empty = all). A '!' prefix excludes instead.
	Extensions []string
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// MinSize is the minimum file size in bytes.
	MinSize int64
	// TopN is the number of top results to track.
	TopN int
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Output represents output format (table, json or paths).
	Output string
}

// collector filters files on their way into the selector and keeps running totals.
// It is only touched by the walking goroutine.
type collector struct {
	selector   *topk.Selector
	filter     filter
	log        logger
	fileCount  int64
	totalBytes int64
	errorCount int64

	hook     func(files, bytes int64)
	interval time.Duration
	lastTick time.Time
}

// newCollector creates a collector retaining the topN largest files.
func newCollector(topN int, f filter, log logger) *collector {
	return &collector{
		selector: topk.New(topN),
		filter:   f,
		log:      log,
	}
}

// Offer counts r and passes it to the selector if it survives the filters.
func (c *collector) Offer(r topk.Record) bool {
	if reason := c.filter.rejectFile(r); reason != "" {
		c.log.printf("[debug]: skipping file (%s): %s\n", reason, r.Path)

		return false
	}

	c.fileCount++
	c.totalBytes += r.Size

	c.tick()

	return c.selector.Offer(r)
}

// addError counts a recoverable walk error.
func (c *collector) addError() {
	c.errorCount++
}

// tick reports progress if at least one interval has passed since the last report.
func (c *collector) tick() {
	if c.hook == nil {
		return
	}

	now := time.Now()
	if now.Sub(c.lastTick) < c.interval {
		return
	}

	c.lastTick = now
	c.hook(c.fileCount, c.totalBytes)
}

// finalize produces the final Stats from the collected data.
func (c *collector) finalize() *Stats {
	return &Stats{
		FileCount:  c.fileCount,
		TotalBytes: c.totalBytes,
		TopFiles:   c.selector.Finalize(),
		ErrorCount: c.errorCount,
		TopN:       c.selector.Cap(),
	}
}
