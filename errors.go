package netsync

import (
	"errors"
	"fmt"
)

// Code is the closed set of codec outcomes.
type Code int

const (
	CodeSuccess            Code = 0
	CodeInvalidMasterEvent Code = 1
	CodeInvalidSlaveEvent  Code = 2
	CodeBufferTooSmall     Code = 3
	CodeNullReference      Code = 4
	CodeInvalidEventType   Code = 5

	// CodeUnknown is reported by CodeOf for errors that did not come from
	// this package.
	CodeUnknown Code = -1
)

var messages = [...]string{
	CodeSuccess:            "success",
	CodeInvalidMasterEvent: "invalid master event: not a sync message",
	CodeInvalidSlaveEvent:  "invalid slave event: malformed payload",
	CodeBufferTooSmall:     "buffer too small for payload",
	CodeNullReference:      "null reference",
	CodeInvalidEventType:   "invalid event: unknown kind or wrong body length",
}

const unknownMessage = "unknown error"

// Message describes code. It never returns an empty string.
func Message(code Code) string {
	if code >= 0 && int(code) < len(messages) {
		return messages[code]
	}
	return unknownMessage
}

func (c Code) String() string { return Message(c) }

// Error carries a Code together with the operation that produced it.
type Error struct {
	Code Code
	Op   string // "encode", "decode", ...
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := Message(e.Code)
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("netsync: %s: %s: %v", e.Op, msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("netsync: %s: %s", e.Op, msg)
	case e.Err != nil:
		return fmt.Sprintf("netsync: %s: %v", msg, e.Err)
	default:
		return "netsync: " + msg
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Code, so errors.Is(err, ErrBufferTooSmall)
// holds regardless of Op or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidMasterEvent = &Error{Code: CodeInvalidMasterEvent}
	ErrInvalidSlaveEvent  = &Error{Code: CodeInvalidSlaveEvent}
	ErrBufferTooSmall     = &Error{Code: CodeBufferTooSmall}
	ErrNullReference      = &Error{Code: CodeNullReference}
	ErrInvalidEventType   = &Error{Code: CodeInvalidEventType}
)

// CodeOf extracts the Code from err. nil maps to CodeSuccess.
func CodeOf(err error) Code {
	if err == nil {
		return CodeSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

var (
	errTrailing = errors.New("trailing bytes after body")
	errNoKind   = errors.New("flags and length match no event kind")
)

func newError(code Code, op string, cause error) *Error {
	return &Error{Code: code, Op: op, Err: cause}
}

// StoreError reports a StateStore failure seen by a Master or Follower.
// The codec result, if any, is unaffected.
type StoreError struct {
	Op      string // "publish" or "latest"
	Session string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("netsync: state store %s %q: %v", e.Op, e.Session, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
