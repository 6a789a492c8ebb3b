// Package tail follows a growing log file and feeds parsed records into
// the ring buffer.
//
// The tailer is a small state machine: Opening seeds the ring with the
// tail of any existing content and positions the reader at EOF, Following
// polls the file for growth at a fixed interval, Rotated handles the
// writer truncating or replacing the file (one reopen attempt, from the
// start of the new file), and Error is terminal: the tailer stops and
// the viewer keeps running over buffered history.
//
// Only complete lines are handed to the parser; a trailing fragment
// without its newline is held until the writer finishes it. Rotation is
// detected by the file shrinking below the read offset or the path no
// longer naming the open file (os.SameFile).
//
// The tailer owns one goroutine (Run) and reports through an Event
// channel the UI drains. Cancelling the context stops the polling loop
// and closes the file handle before Run returns.
package tail
