package tail

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/droidtail/droidtail/internal/logcat"
)

// DefaultInterval is the file-growth poll interval.
const DefaultInterval = 200 * time.Millisecond

const readChunk = 64 * 1024

// State identifies where the tailer is in its lifecycle.
type State int

const (
	StateOpening State = iota
	StateFollowing
	StateRotated
	StateError
)

// Event is one notification to the UI. Records lists the records appended
// to the ring during this poll (already stored, in order). Rotated marks
// that the file was truncated or replaced and reopened. Err is terminal:
// the tailer has stopped and the view should freeze over buffered history.
type Event struct {
	Records []logcat.Record
	Rotated bool
	Err     error
}

// Options configure a Tailer.
type Options struct {
	Interval time.Duration // poll interval, DefaultInterval when zero
	Replay   bool          // seed the ring with the tail of existing content
}

// Tailer follows one log file, parsing new lines into the ring.
type Tailer struct {
	path     string
	ring     *logcat.Ring
	interval time.Duration
	replay   bool
	events   chan Event

	file    *os.File
	offset  int64  // bytes consumed from the current file
	pending []byte // trailing data not yet terminated by a newline
	state   State
}

// New returns an unopened Tailer feeding ring.
func New(path string, ring *logcat.Ring, opts Options) *Tailer {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tailer{
		path:     path,
		ring:     ring,
		interval: interval,
		replay:   opts.Replay,
		events:   make(chan Event, 16),
	}
}

// Events returns the notification channel. It is closed when Run returns.
func (t *Tailer) Events() <-chan Event {
	return t.events
}

// Open opens the target file and positions the tailer at its end. With
// Replay set, the ring is first seeded with the last rung of existing
// content (up to the ring's capacity). A missing or unreadable file is an
// error; the caller treats it as fatal.
func (t *Tailer) Open() error {
	file, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	t.file = file

	if t.replay {
		if err := t.seed(); err != nil {
			file.Close()
			return err
		}
	} else {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			file.Close()
			return fmt.Errorf("seek log file: %w", err)
		}
		t.offset = offset
	}

	t.state = StateFollowing
	return nil
}

// seed reads the whole file once, keeping only the newest lines in a
// fixed-size window, and appends them to the ring oldest first. An
// unterminated final fragment is held back until its newline arrives.
func (t *Tailer) seed() error {
	capacity := t.ring.Cap()
	keep := make([]string, capacity)
	idx, count := 0, 0

	reader := bufio.NewReaderSize(t.file, readChunk)
	for {
		line, err := reader.ReadString('\n')
		t.offset += int64(len(line))
		if err == nil {
			keep[idx] = strings.TrimRight(line, "\r\n")
			idx = (idx + 1) % capacity
			if count < capacity {
				count++
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			if line != "" {
				t.pending = []byte(line)
			}
			break
		}
		return fmt.Errorf("read log file: %w", err)
	}

	start := 0
	if count == capacity {
		start = idx
	}
	for i := 0; i < count; i++ {
		t.ring.Append(logcat.ParseLine(keep[(start+i)%capacity]))
	}
	return nil
}

// Run polls the file until ctx is cancelled or the tailer hits a terminal
// error. The file handle is closed before Run returns.
func (t *Tailer) Run(ctx context.Context) error {
	defer close(t.events)
	defer func() {
		if t.file != nil {
			t.file.Close()
		}
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := t.poll(ctx); err != nil {
				t.state = StateError
				t.emit(ctx, Event{Err: err})
				return err
			}
		}
	}
}

// poll is one Following step: detect rotation, then consume any growth.
func (t *Tailer) poll(ctx context.Context) error {
	info, err := os.Stat(t.path)
	if err != nil {
		// Path gone; the writer may have replaced the file.
		return t.reopen(ctx)
	}
	current, err := t.file.Stat()
	if err != nil {
		return t.reopen(ctx)
	}
	if info.Size() < t.offset || !os.SameFile(info, current) {
		return t.reopen(ctx)
	}
	if info.Size() == t.offset {
		return nil
	}

	records, err := t.consume(info.Size())
	if len(records) > 0 {
		t.emit(ctx, Event{Records: records})
	}
	return err
}

// reopen handles the Rotated state: one attempt to open the new file from
// the start. Failure is terminal. Records buffered before the rotation
// stay in the ring; only content of the new file is read, so nothing is
// duplicated.
func (t *Tailer) reopen(ctx context.Context) error {
	t.state = StateRotated
	file, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("reopen rotated log file: %w", err)
	}
	t.file.Close()
	t.file = file
	t.offset = 0
	t.pending = nil
	t.state = StateFollowing

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat rotated log file: %w", err)
	}
	records, err := t.consume(info.Size())
	t.emit(ctx, Event{Rotated: true, Records: records})
	return err
}

// consume reads bytes [offset, limit), splits out complete lines, and
// appends each parsed record to the ring. Data after the last newline is
// carried in pending until the writer completes the line.
func (t *Tailer) consume(limit int64) ([]logcat.Record, error) {
	buf := make([]byte, readChunk)
	for t.offset < limit {
		n := limit - t.offset
		if n > int64(len(buf)) {
			n = int64(len(buf))
		}
		read, err := t.file.ReadAt(buf[:n], t.offset)
		if read > 0 {
			t.offset += int64(read)
			t.pending = append(t.pending, buf[:read]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return t.flushLines(), fmt.Errorf("read log file: %w", err)
		}
	}
	return t.flushLines(), nil
}

func (t *Tailer) flushLines() []logcat.Record {
	var records []logcat.Record
	for {
		i := bytes.IndexByte(t.pending, '\n')
		if i < 0 {
			break
		}
		line := strings.TrimRight(string(t.pending[:i]), "\r")
		t.pending = t.pending[i+1:]
		records = append(records, t.ring.Append(logcat.ParseLine(line)))
	}
	if len(t.pending) == 0 {
		t.pending = nil
	}
	return records
}

// emit delivers ev to the UI, giving up when the context ends so a gone
// consumer can never wedge the tailer.
func (t *Tailer) emit(ctx context.Context, ev Event) {
	select {
	case t.events <- ev:
	case <-ctx.Done():
	}
}
