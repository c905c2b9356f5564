package notify

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNotice matches every *InvalidNoticeError via errors.Is.
	ErrInvalidNotice = errors.New("invalid notice")
	// ErrClosed is returned by Publish once the Store has been closed.
	ErrClosed = errors.New("notification store closed")
)

// InvalidNoticeError is returned by Publish when the draft is rejected. It is
// never retried: the producer has to fix the call.
type InvalidNoticeError struct {
	Field  string
	Reason string
}

func (e *InvalidNoticeError) Error() string {
	return fmt.Sprintf("invalid notice: %s %s", e.Field, e.Reason)
}

func (e *InvalidNoticeError) Is(target error) bool {
	return target == ErrInvalidNotice
}

// SubscriberError describes an observer that panicked during fan-out. The
// panic is recovered so the remaining observers still run.
type SubscriberError struct {
	Token     Token
	Change    Change
	Recovered any
	Stack     []byte
}

func (e *SubscriberError) Error() string {
	return fmt.Sprintf("subscriber %d panicked on %s: %v", e.Token, e.Change.Kind, e.Recovered)
}
