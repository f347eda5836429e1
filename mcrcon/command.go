package mcrcon

import (
	"context"
	"strings"
)

// Executor performs one request/response exchange: send text, return the
// correlated reply. Client and Correlator-backed types satisfy it.
type Executor interface {
	Exchange(ctx context.Context, text string) (string, error)
}

// CommandSpec describes one command as data: how arguments become wire
// text and how reply text becomes a typed result.
//
// Encode validates arguments and must not touch the network. Decode maps
// the raw reply to a result or to a classified *Error; it never retries.
type CommandSpec[A, R any] struct {
	Name   string
	Encode func(args A) (string, error)
	Decode func(args A, reply string) (R, error)
}

// Prepare validates args and builds the wire text.
func (s *CommandSpec[A, R]) Prepare(args A) (*PreparedCommand[A, R], error) {
	line, err := s.Encode(args)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(line) == "" {
		return nil, newArgumentError(s.Name, "empty command", "")
	}
	if len(line) > MaxCommandLength {
		return nil, newArgumentError(s.Name, "command exceeds maximum length", line[:32]+"...")
	}
	return &PreparedCommand[A, R]{spec: s, args: args, line: line}, nil
}

// runnable prepares args and erases the result type. A failed prepare
// yields a nil Runnable rather than a typed nil.
func (s *CommandSpec[A, R]) runnable(args A) (Runnable, error) {
	cmd, err := s.Prepare(args)
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

// PreparedCommand is a validated command ready to execute.
type PreparedCommand[A, R any] struct {
	spec *CommandSpec[A, R]
	args A
	line string
}

// Name returns the command name.
func (p *PreparedCommand[A, R]) Name() string {
	if p == nil || p.spec == nil {
		return ""
	}
	return p.spec.Name
}

// WireText returns the line sent to the server.
func (p *PreparedCommand[A, R]) WireText() string {
	if p == nil {
		return ""
	}
	return p.line
}

// Execute sends the command through ex and decodes the reply. Calling
// Execute on a command that was not produced by Prepare fails with
// ErrNotPrepared.
func (p *PreparedCommand[A, R]) Execute(ctx context.Context, ex Executor) (R, error) {
	var zero R
	if p == nil || p.spec == nil || p.line == "" {
		return zero, &Error{Kind: KindNotPrepared, Message: "command must be prepared before execution"}
	}

	reply, err := ex.Exchange(ctx, p.line)
	if err != nil {
		return zero, err
	}
	if err := checkReply(p.spec.Name, reply); err != nil {
		return zero, err
	}
	return p.spec.Decode(p.args, reply)
}

// Run executes the command and returns its result as an untyped value.
func (p *PreparedCommand[A, R]) Run(ctx context.Context, ex Executor) (any, error) {
	return p.Execute(ctx, ex)
}

// Runnable is a prepared command with its result type erased, as produced
// by CommandParser.
type Runnable interface {
	Name() string
	WireText() string
	Run(ctx context.Context, ex Executor) (any, error)
}

// RawCommand sends a line verbatim and returns the reply text.
type RawCommand struct {
	Line string
}

// Name returns the first word of the line.
func (c RawCommand) Name() string {
	name, _, _ := strings.Cut(strings.TrimSpace(c.Line), " ")
	return name
}

// WireText returns the line unchanged.
func (c RawCommand) WireText() string {
	return c.Line
}

// Run sends the line and applies the generic reply checks.
func (c RawCommand) Run(ctx context.Context, ex Executor) (any, error) {
	if strings.TrimSpace(c.Line) == "" {
		return nil, newArgumentError("", "empty command", "")
	}
	reply, err := ex.Exchange(ctx, c.Line)
	if err != nil {
		return nil, err
	}
	if err := checkReply(c.Name(), reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// checkReply classifies the failure replies every command can receive.
func checkReply(op, reply string) error {
	switch {
	case strings.HasPrefix(reply, unknownCommandPrefix):
		return newReplyError(KindUnknownCommand, op, reply)
	case strings.HasPrefix(reply, incorrectArgumentPrefix):
		return newReplyError(KindIncorrectArgument, op, reply)
	}
	return nil
}
