package memory

import "github.com/kchou/attend/internal/model"

// Queue is a fixed-capacity FIFO of recent memory entries. Pushing onto a
// full queue evicts the oldest entry.
type Queue struct {
	items []model.MemoryEntry
	max   int
}

// NewQueue creates a queue holding at most max entries.
func NewQueue(max int) *Queue {
	return &Queue{max: max}
}

// Push appends an entry, evicting the oldest when the queue is full.
func (q *Queue) Push(e model.MemoryEntry) {
	if len(q.items) >= q.max {
		q.items = q.items[1:]
	}
	q.items = append(q.items, e)
}

// Snapshot returns a copy of the entries, oldest first. The read is
// non-destructive.
func (q *Queue) Snapshot() []model.MemoryEntry {
	out := make([]model.MemoryEntry, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of entries currently held.
func (q *Queue) Len() int {
	return len(q.items)
}
