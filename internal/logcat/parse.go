package logcat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// threadtime layout: "MM-DD hh:mm:ss.mmm  PID  TID L Tag: message".
// The tag group is non-greedy so the split happens at the first "tag:"
// token; colons inside the message body stay in the message.
var threadtimeRe = regexp.MustCompile(
	`^(\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3})\s+(\d+)\s+(\d+)\s+([VDIWEF])\s(.*?): ?(.*)$`)

const threadtimeStamp = "01-02 15:04:05.000"

// ParseLine parses one raw log line. Lines that do not match the
// threadtime layout come back with Parsed=false and LevelUnknown; the raw
// text is always preserved. The line must already be newline-free; callers
// that read from a growing file hold incomplete trailing data until the
// newline arrives.
func ParseLine(raw string) Record {
	m := threadtimeRe.FindStringSubmatch(raw)
	if m == nil {
		return Record{Raw: raw, Level: LevelUnknown}
	}

	ts, err := time.Parse(threadtimeStamp, m[1])
	if err != nil {
		return Record{Raw: raw, Level: LevelUnknown}
	}
	pid, err := strconv.Atoi(m[2])
	if err != nil {
		return Record{Raw: raw, Level: LevelUnknown}
	}
	tid, err := strconv.Atoi(m[3])
	if err != nil {
		return Record{Raw: raw, Level: LevelUnknown}
	}

	return Record{
		Raw:       raw,
		Parsed:    true,
		Timestamp: ts,
		PID:       pid,
		TID:       tid,
		Level:     ParseLevel(rune(m[4][0])),
		Tag:       strings.TrimSpace(m[5]),
		Message:   m[6],
	}
}
