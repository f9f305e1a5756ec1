package topk

import (
	"github.com/emirpasic/gods/trees/binaryheap"
)

// Record represents a single discovered file.
type Record struct {
	// Name is the base name of the file.
	Name string `json:"name"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
	// Path is the full path of the file.
	Path string `json:"path"`
}

// entry pairs a record with its insertion sequence.
type entry struct {
	record Record
	seq    uint64
}

// byEviction orders the heap so the root is the next record to evict:
// the smallest size, and among equal sizes the most recently inserted.
func byEviction(a, b any) int {
	x, y := a.(entry), b.(entry) //nolint:forcetypeassert // Heap only holds entries

	switch {
	case x.record.Size < y.record.Size:
		return -1
	case x.record.Size > y.record.Size:
		return 1
	case x.seq > y.seq:
		return -1
	case x.seq < y.seq:
		return 1
	default:
		return 0
	}
}

// Selector keeps the largest records offered to it, up to a fixed capacity.
// It is not safe for concurrent use.
type Selector struct {
	capacity int
	heap     *binaryheap.Heap
	seq      uint64
}

// New creates an empty Selector holding at most capacity records.
// It panics if capacity is less than 1.
func New(capacity int) *Selector {
	if capacity < 1 {
		panic("topk: capacity must be at least 1")
	}

	return &Selector{
		capacity: capacity,
		heap:     binaryheap.NewWith(byEviction),
	}
}

// Len returns the number of records currently retained.
func (s *Selector) Len() int {
	return s.heap.Size()
}

// Cap returns the maximum number of records retained.
func (s *Selector) Cap() int {
	return s.capacity
}

// Min returns the smallest retained record.
// The boolean is false if the Selector is empty.
func (s *Selector) Min() (Record, bool) {
	v, ok := s.heap.Peek()
	if !ok {
		return Record{}, false
	}

	return v.(entry).record, true //nolint:forcetypeassert // Heap only holds entries
}

// Offer considers r for inclusion and reports whether it was retained.
//
// While the Selector has room every record is kept. Once full, r replaces the
// smallest retained record only if r is strictly larger; equal sizes keep
// whatever is already retained.
func (s *Selector) Offer(r Record) bool {
	if s.heap.Size() >= s.capacity {
		smallest, _ := s.Min()
		if r.Size <= smallest.Size {
			return false
		}

		s.heap.Pop()
	}

	s.heap.Push(entry{record: r, seq: s.seq})
	s.seq++

	return true
}

// Finalize returns the retained records ordered by size, largest first.
// Records of equal size keep their insertion order.
// The Selector is empty afterwards.
func (s *Selector) Finalize() []Record {
	records := make([]Record, s.heap.Size())

	// Pop yields eviction order (smallest first), so fill from the back.
	for i := len(records) - 1; i >= 0; i-- {
		v, _ := s.heap.Pop()
		records[i] = v.(entry).record //nolint:forcetypeassert // Heap only holds entries
	}

	s.seq = 0

	return records
}
