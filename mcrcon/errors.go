package mcrcon

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind categorizes every error the package returns so callers can
// branch on it without inspecting message text.
type ErrorKind int

const (
	// KindUnknown is reported by KindOf for errors not produced here.
	KindUnknown ErrorKind = iota
	// KindConnectTimeout indicates authentication never completed.
	KindConnectTimeout
	// KindNotConnected indicates the connection is not authenticated and open.
	KindNotConnected
	// KindAlreadyConnected indicates Connect was called on a live connection.
	KindAlreadyConnected
	// KindNotPrepared indicates Execute was called without a successful Prepare.
	KindNotPrepared
	// KindArgument indicates invalid input caught before any I/O.
	KindArgument
	// KindTimeout indicates no matching event arrived within the deadline.
	KindTimeout
	// KindProtocol indicates the server reported an error event.
	KindProtocol
	// KindFaulted indicates an operation on a connection that already faulted.
	KindFaulted
	// KindDisconnected indicates the connection closed while waiting.
	KindDisconnected
	// KindConnection indicates a dial or socket failure.
	KindConnection
	// KindTargetNotFound indicates no player or entity matched the target.
	KindTargetNotFound
	// KindItemNotFound indicates an unknown item id.
	KindItemNotFound
	// KindSaveFailed indicates save-all did not report success.
	KindSaveFailed
	// KindStopFailed indicates stop did not report success.
	KindStopFailed
	// KindUnknownCommand indicates the server did not recognise the command.
	KindUnknownCommand
	// KindIncorrectArgument indicates the server rejected an argument.
	KindIncorrectArgument
	// KindUnexpectedReply indicates a reply matching no known grammar.
	KindUnexpectedReply
)

var kindNames = map[ErrorKind]string{
	KindUnknown:           "unknown",
	KindConnectTimeout:    "connect timeout",
	KindNotConnected:      "not connected",
	KindAlreadyConnected:  "already connected",
	KindNotPrepared:       "not prepared",
	KindArgument:          "invalid argument",
	KindTimeout:           "timed out",
	KindProtocol:          "protocol error",
	KindFaulted:           "connection faulted",
	KindDisconnected:      "disconnected",
	KindConnection:        "connection failed",
	KindTargetNotFound:    "target not found",
	KindItemNotFound:      "item not found",
	KindSaveFailed:        "save failed",
	KindStopFailed:        "stop failed",
	KindUnknownCommand:    "unknown command",
	KindIncorrectArgument: "incorrect argument",
	KindUnexpectedReply:   "unexpected reply",
}

// String returns a short human-readable name for the kind.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinel errors, one per kind. errors.Is matches any *Error of the same
// kind against these.
var (
	ErrConnectTimeout    = &Error{Kind: KindConnectTimeout}
	ErrNotConnected      = &Error{Kind: KindNotConnected}
	ErrAlreadyConnected  = &Error{Kind: KindAlreadyConnected}
	ErrNotPrepared       = &Error{Kind: KindNotPrepared}
	ErrArgument          = &Error{Kind: KindArgument}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrProtocol          = &Error{Kind: KindProtocol}
	ErrFaulted           = &Error{Kind: KindFaulted}
	ErrDisconnected      = &Error{Kind: KindDisconnected}
	ErrConnection        = &Error{Kind: KindConnection}
	ErrTargetNotFound    = &Error{Kind: KindTargetNotFound}
	ErrItemNotFound      = &Error{Kind: KindItemNotFound}
	ErrSaveFailed        = &Error{Kind: KindSaveFailed}
	ErrStopFailed        = &Error{Kind: KindStopFailed}
	ErrUnknownCommand    = &Error{Kind: KindUnknownCommand}
	ErrIncorrectArgument = &Error{Kind: KindIncorrectArgument}
	ErrUnexpectedReply   = &Error{Kind: KindUnexpectedReply}
)

// Error is the single error type returned by this package.
type Error struct {
	Kind    ErrorKind
	Op      string // Command or operation name, e.g. "give"
	Value   string // The offending value or reply text
	Message string // Additional context
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	switch {
	case e.Message != "" && e.Value != "":
		msg = fmt.Sprintf("%s: %s '%s'", msg, e.Message, e.Value)
	case e.Message != "":
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	case e.Value != "":
		msg = fmt.Sprintf("%s: '%s'", msg, e.Value)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Value == "" && t.Message == "" && t.Cause == nil
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// NewConnectionError creates a new connection error.
func NewConnectionError(message string, cause error) error {
	return &Error{Kind: KindConnection, Message: message, Cause: cause}
}

// Helper functions to create specific errors.

func newArgumentError(op, message, value string) error {
	return &Error{Kind: KindArgument, Op: op, Message: message, Value: value}
}

func newReplyError(kind ErrorKind, op, reply string) error {
	return &Error{Kind: kind, Op: op, Value: reply}
}

func newUnexpectedReplyError(op, reply string) error {
	return &Error{Kind: KindUnexpectedReply, Op: op, Value: reply}
}

func newTimeoutError(kind EventKind, timeout string) error {
	return &Error{Kind: KindTimeout, Message: fmt.Sprintf("waiting %s for next %s event", timeout, kind)}
}

// contextError reports an expired context deadline as a timeout.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "deadline exceeded", Cause: err}
	}
	return err
}

func newProtocolError(message string) error {
	return &Error{Kind: KindProtocol, Message: message}
}
