package tail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/droidtail/droidtail/internal/logcat"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s for append: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append to %s: %v", path, err)
	}
}

func rawLines(records []logcat.Record) []string {
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.Raw
	}
	return lines
}

func TestOpenMissingFileFails(t *testing.T) {
	tailer := New(filepath.Join(t.TempDir(), "absent.log"), logcat.NewRing(8), Options{})
	if err := tailer.Open(); err == nil {
		t.Fatal("Open succeeded on a missing file")
	}
}

func TestOpenReplaySeedsRing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "first\nsecond\nthird\n")

	ring := logcat.NewRing(8)
	tailer := New(path, ring, Options{Replay: true})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	got := rawLines(ring.Snapshot())
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("seeded %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("seed[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOpenReplayKeepsOnlyNewest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var content string
	for i := 0; i < 10; i++ {
		content += fmt.Sprintf("line %d\n", i)
	}
	writeFile(t, path, content)

	ring := logcat.NewRing(3)
	tailer := New(path, ring, Options{Replay: true})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	got := rawLines(ring.Snapshot())
	want := []string{"line 7", "line 8", "line 9"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("seed[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOpenReplayHoldsUnterminatedFragment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "done\npartial")

	ring := logcat.NewRing(8)
	tailer := New(path, ring, Options{Replay: true})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	if got := rawLines(ring.Snapshot()); len(got) != 1 || got[0] != "done" {
		t.Fatalf("seeded lines = %v, want [done]", got)
	}

	// Completing the line surfaces it on the next poll.
	appendFile(t, path, " now\n")
	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	ev := <-tailer.events
	if got := rawLines(ev.Records); len(got) != 1 || got[0] != "partial now" {
		t.Fatalf("records = %v, want [partial now]", got)
	}
}

func TestOpenWithoutReplayStartsAtEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "old content\n")

	ring := logcat.NewRing(8)
	tailer := New(path, ring, Options{})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	if ring.Len() != 0 {
		t.Fatalf("ring seeded %d records without replay", ring.Len())
	}

	appendFile(t, path, "new content\n")
	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	ev := <-tailer.events
	if got := rawLines(ev.Records); len(got) != 1 || got[0] != "new content" {
		t.Fatalf("records = %v, want [new content]", got)
	}
}

func TestPollParsesAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "")

	ring := logcat.NewRing(8)
	tailer := New(path, ring, Options{})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	appendFile(t, path, "01-01 00:00:00.000  100  100 E MyTag: boom\n")
	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	ev := <-tailer.events
	if len(ev.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(ev.Records))
	}
	rec := ev.Records[0]
	if !rec.Parsed || rec.Level != logcat.LevelError || rec.Message != "boom" {
		t.Errorf("record = %+v, want parsed error record", rec)
	}
}

func TestPollNoGrowthEmitsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "stable\n")

	tailer := New(path, logcat.NewRing(8), Options{})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	select {
	case ev := <-tailer.events:
		t.Fatalf("unexpected event: %+v", ev)
	default:
	}
}

func TestTruncateAndRewriteDetectsRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "before one\nbefore two\n")

	ring := logcat.NewRing(16)
	tailer := New(path, ring, Options{Replay: true})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	// Writer truncates and starts over with shorter content.
	writeFile(t, path, "after\n")
	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}

	ev := <-tailer.events
	if !ev.Rotated {
		t.Fatal("event not marked Rotated")
	}
	if got := rawLines(ev.Records); len(got) != 1 || got[0] != "after" {
		t.Fatalf("post-rotation records = %v, want [after]", got)
	}

	// Pre-rotation history stays buffered, nothing duplicated.
	all := rawLines(ring.Snapshot())
	want := []string{"before one", "before two", "after"}
	if len(all) != len(want) {
		t.Fatalf("ring = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("ring[%d] = %q, want %q", i, all[i], want[i])
		}
	}

	// Following resumes on the new file.
	appendFile(t, path, "resumed\n")
	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll after rotation: %v", err)
	}
	ev = <-tailer.events
	if got := rawLines(ev.Records); len(got) != 1 || got[0] != "resumed" {
		t.Fatalf("records = %v, want [resumed]", got)
	}
}

func TestReplacedFileDetectsRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	writeFile(t, path, "original\n")

	tailer := New(path, logcat.NewRing(8), Options{Replay: true})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	// Replace with a new inode of identical size.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	writeFile(t, path, "replaced\n")

	if err := tailer.poll(context.Background()); err != nil {
		t.Fatalf("poll: %v", err)
	}
	ev := <-tailer.events
	if !ev.Rotated {
		t.Fatal("event not marked Rotated")
	}
	if got := rawLines(ev.Records); len(got) != 1 || got[0] != "replaced" {
		t.Fatalf("records = %v, want [replaced]", got)
	}
}

func TestVanishedFileIsTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "content\n")

	tailer := New(path, logcat.NewRing(8), Options{})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer tailer.file.Close()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Single reopen attempt fails: terminal.
	if err := tailer.poll(context.Background()); err == nil {
		t.Fatal("poll succeeded after the file vanished for good")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	writeFile(t, path, "")

	tailer := New(path, logcat.NewRing(8), Options{Interval: 5 * time.Millisecond})
	if err := tailer.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tailer.Run(ctx) }()

	appendFile(t, path, "hello\n")
	select {
	case ev := <-tailer.Events():
		if got := rawLines(ev.Records); len(got) != 1 || got[0] != "hello" {
			t.Errorf("records = %v, want [hello]", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event before timeout")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v on cancel, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop on cancel")
	}

	// Channel is closed once Run returns.
	for range tailer.Events() {
	}
}
