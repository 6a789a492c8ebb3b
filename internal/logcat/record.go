package logcat

import "time"

// Level is a logcat severity marker.
type Level int

// Levels in ascending severity. LevelUnknown sorts below all of them and
// is used for lines that did not parse.
const (
	LevelUnknown Level = iota
	LevelVerbose
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

// ParseLevel maps a single logcat level letter to a Level.
func ParseLevel(r rune) Level {
	switch r {
	case 'V':
		return LevelVerbose
	case 'D':
		return LevelDebug
	case 'I':
		return LevelInfo
	case 'W':
		return LevelWarning
	case 'E':
		return LevelError
	case 'F':
		return LevelFatal
	default:
		return LevelUnknown
	}
}

// String returns the logcat letter for the level, "?" when unknown.
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "V"
	case LevelDebug:
		return "D"
	case LevelInfo:
		return "I"
	case LevelWarning:
		return "W"
	case LevelError:
		return "E"
	case LevelFatal:
		return "F"
	default:
		return "?"
	}
}

// Record is one log line. It is immutable once appended to a Ring; the
// filter and renderer only ever read it.
type Record struct {
	Seq    uint64 // assigned by Ring.Append, strictly increasing
	Raw    string
	Parsed bool

	// Valid only when Parsed is true.
	Timestamp time.Time
	PID       int
	TID       int
	Level     Level
	Tag       string
	Message   string
}
