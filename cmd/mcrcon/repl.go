// =============================================================================
// repl.go - REPL Loop and One-Shot Command Execution
// =============================================================================
//
// This file implements the interactive loop and the one-shot mode used when
// commands are given on the command line. Both paths share one pipeline:
//
//	input line → dot-command?  → handled locally (.help, .raw, .status, .quit)
//	           → CommandParser → prepared command (validated, no I/O yet)
//	           → Client.Run    → typed result or classified error
//	           → formatResult  → terminal text
//
// =============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mcrcon/mcrcon-go/mcrcon"
)

// errQuit is returned by a session when the user asks to leave.
var errQuit = errors.New("quit")

// errConnectionLost is returned when the server closes the connection.
var errConnectionLost = errors.New("connection to server lost")

// session holds everything one REPL or one-shot run needs.
//
// GO CONCEPT: Accept Interfaces, Return Structs
// ---------------------------------------------
// out and errOut are io.Writer rather than *os.File, so tests can pass a
// bytes.Buffer and production passes os.Stdout/os.Stderr.
//
// Compare with Python: duck typing gives the same flexibility; any object
// with a write() method works as a file.
type session struct {
	client     *mcrcon.Client
	parser     *mcrcon.CommandParser
	translator *Translator
	out        io.Writer
	errOut     io.Writer
}

func newSession(client *mcrcon.Client, translator *Translator, out, errOut io.Writer) *session {
	return &session{
		client:     client,
		parser:     mcrcon.NewCommandParser(),
		translator: translator,
		out:        out,
		errOut:     errOut,
	}
}

// prompt returns the REPL prompt, e.g. "[127.0.0.1:25575] > ".
func (s *session) prompt() string {
	options := s.client.Options()
	return fmt.Sprintf("[%s] > ", mcrcon.Address(options.Host, options.Port))
}

// runREPL reads lines from editor until .quit, EOF or connection loss.
func runREPL(ctx context.Context, s *session, editor *LineEditor) error {
	for {
		if !s.client.IsConnected() {
			fmt.Fprintln(s.errOut, "Connection closed by server.")
			return errConnectionLost
		}

		line, err := editor.GetLine(s.prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.execute(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
	}
}

// runCommands executes each line in order and stops at the first failure.
func runCommands(ctx context.Context, s *session, lines []string) error {
	for _, line := range lines {
		if err := s.execute(ctx, strings.TrimSpace(line)); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return fmt.Errorf("%s: %w", line, err)
		}
	}
	return nil
}

// execute runs one line of input.
func (s *session) execute(ctx context.Context, line string) error {
	if strings.HasPrefix(line, ".") {
		return s.executeDotCommand(ctx, line)
	}

	cmd, err := s.parser.Parse(line)
	if err != nil {
		return err
	}
	result, err := s.client.Run(ctx, cmd)
	if err != nil {
		return err
	}
	s.printResult(result)
	return nil
}

// executeDotCommand handles the commands the REPL answers locally.
//
// GO CONCEPT: strings.Cut
// -----------------------
// strings.Cut(s, sep) splits s around the first sep and reports whether
// sep was found, which suits "keyword rest-of-line" parsing.
//
// Compare with Python: `keyword, _, rest = line.partition(" ")`.
func (s *session) executeDotCommand(ctx context.Context, line string) error {
	keyword, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(keyword) {
	case ".quit", ".exit":
		return errQuit

	case ".help":
		printHelp(s.out, rest)
		return nil

	case ".status":
		options := s.client.Options()
		fmt.Fprintf(s.out, "Server: %s\nState:  %s\n",
			mcrcon.Address(options.Host, options.Port), s.client.State())
		return nil

	case ".raw":
		if rest == "" {
			return fmt.Errorf(".raw requires a command")
		}
		reply, err := s.client.Exchange(ctx, rest)
		if err != nil {
			return err
		}
		if reply != "" {
			fmt.Fprintln(s.out, reply)
		}
		return nil

	default:
		return fmt.Errorf("unknown command '%s'. Type .help for available commands", keyword)
	}
}

func (s *session) printResult(result any) {
	if text := formatResult(result, s.translator); text != "" {
		fmt.Fprintln(s.out, text)
	}
}

// formatResult renders a command result as terminal text.
//
// GO CONCEPT: Type Switches
// -------------------------
// A type switch branches on the dynamic type held in an interface value.
// Inside each case, v has that concrete type.
//
// Compare with Python: `match result: case list(): ... case int(): ...`
// or a chain of isinstance() checks.
func formatResult(result any, translator *Translator) string {
	switch v := result.(type) {
	case []mcrcon.PlayerEntry:
		if len(v) == 0 {
			return "No players online."
		}
		lines := make([]string, len(v))
		for i, player := range v {
			if player.UUID != "" {
				lines[i] = fmt.Sprintf("%s (%s)", player.Name, player.UUID)
			} else {
				lines[i] = player.Name
			}
		}
		return strings.Join(lines, "\n")

	case mcrcon.RuleValue:
		return v.String()

	case int64:
		return fmt.Sprintf("%d", v)

	case mcrcon.Done:
		return "OK"

	case string:
		return translator.Translate(v)

	default:
		return fmt.Sprint(v)
	}
}
