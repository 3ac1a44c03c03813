// Package batch — work queue with deduplication.
// Maintains a seen set so a file reached through two paths (symlinks,
// overlapping walks) is only processed once.
package batch

// Queue is a FIFO queue of file paths with deduplication.
type Queue struct {
	items []string
	seen  map[string]bool
	idx   int // current read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a path if it hasn't been seen before.
func (q *Queue) Add(path string) {
	if q.seen[path] {
		return
	}
	q.seen[path] = true
	q.items = append(q.items, path)
}

// HasNext returns true if there are unprocessed paths.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed path and advances the pointer.
func (q *Queue) Next() string {
	path := q.items[q.idx]
	q.idx++
	return path
}

// Seen returns the total number of unique paths queued.
func (q *Queue) Seen() int {
	return len(q.seen)
}

// All returns all queued paths in insertion order.
func (q *Queue) All() []string {
	return q.items
}
