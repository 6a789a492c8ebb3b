// Package ui is the Bubble Tea front end of the viewer.
//
// The Model is the interactive controller and renderer in one: a
// single-threaded Update loop that multiplexes keystrokes with batches
// arriving from the tailer goroutine. Filter state lives inside the
// Model, so every mutation happens on the loop and is immediately
// visible to the next render without locking beyond the ring buffer's own.
//
// The visible window is always a projection of the ring through the
// current filter. Incoming records that pass the filter are appended
// incrementally; any filter edit throws the window away and replays the
// full ring snapshot, so stale lines can never linger and newly matching
// history appears immediately.
package ui
