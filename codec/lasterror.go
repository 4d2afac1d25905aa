package codec

import "sync"

// Status codes returned across the boundary.
const (
	StatusOK    int32 = 0
	StatusError int32 = 1
)

// LastError keeps the message of the most recent failure so that a
// foreign caller can fetch it after a non-zero status.
type LastError struct {
	mu  sync.Mutex
	msg string
	set bool
}

// Record stores err, or clears the slot when err is nil, and returns the
// matching status.
func (l *LastError) Record(err error) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err == nil {
		l.msg, l.set = "", false
		return StatusOK
	}
	l.msg, l.set = err.Error(), true
	return StatusError
}

// Message returns the stored message, if any.
func (l *LastError) Message() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.msg, l.set
}

func (l *LastError) Clear() {
	l.Record(nil)
}
