package storage

import "fmt"

// Kind classifies storage failures
type Kind int

const (
	KindInvalidConfiguration Kind = iota + 1
	KindInvalidArgument
	KindCapacityExceeded
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConfiguration:
		return "invalid configuration"
	case KindInvalidArgument:
		return "invalid argument"
	case KindCapacityExceeded:
		return "capacity exceeded"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrInvalidConfiguration = &Error{Kind: KindInvalidConfiguration}
	ErrInvalidArgument      = &Error{Kind: KindInvalidArgument}
	ErrCapacityExceeded     = &Error{Kind: KindCapacityExceeded}
)

// Error is returned by storage operations that reject their input
type Error struct {
	Kind      Kind
	Op        string
	Commodity Commodity
	Message   string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	switch {
	case e.Op != "" && e.Commodity != "":
		return fmt.Sprintf("%s %s: %s", e.Op, e.Commodity, msg)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	default:
		return msg
	}
}

// Is matches on Kind so callers can compare against the package sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
