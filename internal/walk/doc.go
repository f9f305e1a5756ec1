// Package walk enumerates every file under a directory tree.
//
// The walk is single-threaded and depth-first, driven by an explicit stack so
// that pathologically deep trees cannot exhaust the goroutine stack. Only a
// failure to open the root is fatal; unreadable subdirectories and entries are
// reported and skipped.
package walk
