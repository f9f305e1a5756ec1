// Package topk retains the largest files seen in a stream without storing
// the whole stream.
//
// A Selector holds at most its capacity of records. Once full, a new record
// replaces the current smallest only when it is strictly larger, so memory
// stays bounded by the capacity regardless of how many records are offered.
package topk
