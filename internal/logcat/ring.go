package logcat

import "sync"

// DefaultCapacity is the rolling history kept by the viewer.
const DefaultCapacity = 10000

// Ring is a fixed-capacity FIFO of Records. One goroutine appends (the
// tailer) while others take snapshots (the UI); the lock keeps snapshots
// consistent without ever blocking appends on a slow renderer.
type Ring struct {
	mu      sync.RWMutex
	recs    []Record
	head    int // index of the oldest record
	size    int
	nextSeq uint64
}

// NewRing returns a Ring holding at most capacity records. A non-positive
// capacity falls back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{recs: make([]Record, capacity)}
}

// Append stores rec, assigns it the next sequence number, and evicts the
// oldest record when the ring is full. The stored record is returned.
func (r *Ring) Append(rec Record) Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	rec.Seq = r.nextSeq

	if r.size < len(r.recs) {
		r.recs[(r.head+r.size)%len(r.recs)] = rec
		r.size++
	} else {
		r.recs[r.head] = rec
		r.head = (r.head + 1) % len(r.recs)
	}
	return rec
}

// Cap reports the fixed capacity.
func (r *Ring) Cap() int {
	return len(r.recs)
}

// Len reports the number of records currently held.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Snapshot returns a copy of the held records in insertion order. The copy
// is safe to iterate while appends continue.
func (r *Ring) Snapshot() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.size == 0 {
		return nil
	}
	out := make([]Record, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.recs[(r.head+i)%len(r.recs)]
	}
	return out
}
