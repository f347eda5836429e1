// =============================================================================
// lineeditor.go - Line Editor with Dual-Mode Operation
// =============================================================================
//
// This file implements the line editor behind the mcrcon REPL. It detects
// whether the terminal is interactive (TTY) or not (piped input, Emacs
// comint, scripts) and picks an input method:
//
//   - Interactive mode: ergochat/readline for line editing with Emacs
//     keybindings, persistent history, and Ctrl-R history search.
//   - Non-interactive mode: bufio.Scanner for plain line-by-line reading,
//     with the prompt printed manually to stdout.
//
// History lives in the file named by the history_file config setting
// (default ~/.mcrcon_history) with a 500-entry limit.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

// historySize is the maximum number of history entries to retain.
const historySize = 500

// LineEditor wraps line editing with dual-mode operation.
//
// GO CONCEPT: Struct Fields with Mixed Visibility
// ------------------------------------------------
// All fields are lowercase (unexported), so only this package can reach
// them. The exported methods GetLine(), Close() and IsInteractive() are
// the API.
//
// Compare with Python: Python marks "private" fields with a leading
// underscore by convention (`self._interactive`); nothing enforces it.
type LineEditor struct {
	// interactive is true when stdin is a TTY and false when it is piped.
	interactive bool

	// rl is the readline instance used in interactive mode; nil otherwise.
	rl *readline.Instance

	// scanner reads lines from stdin in non-interactive mode; nil otherwise.
	scanner *bufio.Scanner
}

// NewLineEditor creates a LineEditor with automatic mode detection.
//
// historyPath is the readline history file; an empty path disables
// persistent history. Under Emacs (INSIDE_EMACS set) the editor is always
// non-interactive because Emacs provides its own line editing.
func NewLineEditor(historyPath string) *LineEditor {
	// GO CONCEPT: TTY Detection
	// -------------------------
	// term.IsTerminal takes a raw file descriptor. os.Stdin.Fd() returns
	// a uintptr, so it is converted to int first.
	//
	// Compare with Python: `sys.stdin.isatty()` answers the same question.
	isInteractive := term.IsTerminal(int(os.Stdin.Fd())) &&
		os.Getenv("INSIDE_EMACS") == ""

	if !isInteractive {
		return &LineEditor{
			interactive: false,
			scanner:     bufio.NewScanner(os.Stdin),
		}
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:  historyPath,
		HistoryLimit: historySize,

		// History is saved manually so blank lines stay out of it.
		DisableAutoSaveHistory: true,

		Prompt: "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return &LineEditor{
			interactive: false,
			scanner:     bufio.NewScanner(os.Stdin),
		}
	}

	return &LineEditor{
		interactive: true,
		rl:          rl,
	}
}

// GetLine displays prompt and reads one line of input.
//
// It returns io.EOF on Ctrl-D, on Ctrl-C at an empty prompt, and when
// piped input is exhausted.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)

	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}

	trimmed := strings.TrimSpace(line)
	if trimmed != "" {
		le.rl.SaveToHistory(trimmed)
	}

	return line, nil
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Print(prompt)

	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return le.scanner.Text(), nil
}

// ReadPassword prompts for the RCON password without echoing it. It only
// works when stdin is a terminal.
func ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot prompt for password: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// Close releases the readline instance. It is safe to call more than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether the editor is using readline.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}
