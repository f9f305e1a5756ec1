// Package dirstat finds the largest files below a directory.
//
// It drives a single-threaded depth-first walk, filters the discovered files,
// and keeps only the top N by size in a bounded selector, so memory stays
// proportional to N rather than to the size of the tree.
package dirstat
