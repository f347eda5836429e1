// =============================================================================
// lineeditor_test.go - Tests for Line Editor (lineeditor.go)
// =============================================================================
//
// Tests for the LineEditor dual-mode input system. Since the interactive mode
// (ergochat/readline) requires a real TTY, these tests exercise the non-
// interactive path using piped stdin.
//
// GO CONCEPT: Testing I/O-Dependent Code
// ----------------------------------------
// NewLineEditor inspects os.Stdin when it is created. Replacing os.Stdin
// with the read end of an os.Pipe() makes term.IsTerminal() return false,
// which forces the bufio.Scanner path, exactly as when input is piped in
// with "echo list | mcrcon".
//
// Compare with Python: `monkeypatch.setattr("sys.stdin", io.StringIO(...))`.
//
// =============================================================================

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
)

// newTestEditor creates a non-interactive LineEditor with piped stdin
// for testing. It returns the editor and the write end of the pipe.
// Callers write test input to the pipe and close it to signal EOF.
//
// The editor and pipe are automatically cleaned up when the test finishes.
func newTestEditor(t *testing.T) (*LineEditor, *os.File) {
	t.Helper()

	oldStdin := os.Stdin
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdin = reader
	t.Cleanup(func() {
		os.Stdin = oldStdin
		reader.Close()
		writer.Close()
	})

	editor := NewLineEditor("")
	t.Cleanup(func() { editor.Close() })

	return editor, writer
}

// captureStdout redirects os.Stdout while fn runs and returns what was
// written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = writer

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(reader)
		done <- string(data)
	}()

	func() {
		defer func() {
			os.Stdout = oldStdout
			writer.Close()
		}()
		fn()
	}()

	output := <-done
	reader.Close()
	return output
}

// TestNewLineEditorNonInteractive verifies that a piped stdin selects the
// scanner path.
func TestNewLineEditorNonInteractive(t *testing.T) {
	editor, _ := newTestEditor(t)

	if editor.IsInteractive() {
		t.Error("editor should be non-interactive when stdin is a pipe")
	}
	if editor.scanner == nil {
		t.Error("non-interactive editor should have a scanner")
	}
	if editor.rl != nil {
		t.Error("non-interactive editor should not have a readline instance")
	}
}

// TestNewLineEditorWithEmacsEnv verifies that INSIDE_EMACS forces
// non-interactive mode.
func TestNewLineEditorWithEmacsEnv(t *testing.T) {
	t.Setenv("INSIDE_EMACS", "29.1,comint")

	editor, _ := newTestEditor(t)
	if editor.IsInteractive() {
		t.Error("editor should be non-interactive under Emacs")
	}
}

// TestGetLineReadsLines verifies lines are returned in order, unmodified,
// followed by io.EOF.
func TestGetLineReadsLines(t *testing.T) {
	editor, writer := newTestEditor(t)

	inputs := []string{
		"list",
		"",
		"   ",
		`tellraw @a {"text":"§aHi"}`,
		"say " + strings.Repeat("x", 1000),
		"no newline",
	}
	fmt.Fprint(writer, strings.Join(inputs, "\n"))
	writer.Close()

	captureStdout(t, func() {
		for i, want := range inputs {
			got, err := editor.GetLine("> ")
			if err != nil {
				t.Fatalf("line %d: GetLine() error: %v", i, err)
			}
			if got != want {
				t.Errorf("line %d: GetLine() = %q, want %q", i, got, want)
			}
		}

		if _, err := editor.GetLine("> "); err != io.EOF {
			t.Errorf("GetLine() after input = %v, want io.EOF", err)
		}
	})
}

// TestGetLineReturnsEOFOnEmptyPipe verifies a closed, empty pipe is EOF.
func TestGetLineReturnsEOFOnEmptyPipe(t *testing.T) {
	editor, writer := newTestEditor(t)
	writer.Close()

	captureStdout(t, func() {
		if _, err := editor.GetLine("> "); err != io.EOF {
			t.Errorf("GetLine() = %v, want io.EOF", err)
		}
	})
}

// TestGetLineNonInteractivePromptsToStdout verifies the prompt is printed,
// which Emacs comint relies on for prompt matching.
func TestGetLineNonInteractivePromptsToStdout(t *testing.T) {
	editor, writer := newTestEditor(t)
	fmt.Fprint(writer, "seed\n")
	writer.Close()

	output := captureStdout(t, func() {
		_, _ = editor.GetLine("[127.0.0.1:25575] > ")
	})

	if output != "[127.0.0.1:25575] > " {
		t.Errorf("stdout = %q, want the prompt", output)
	}
}

// TestCloseIsIdempotent verifies Close can be called more than once.
func TestCloseIsIdempotent(t *testing.T) {
	editor, _ := newTestEditor(t)

	editor.Close()
	editor.Close()
}

// TestReadPasswordRequiresTerminal verifies ReadPassword refuses piped
// input instead of echoing the password.
func TestReadPasswordRequiresTerminal(t *testing.T) {
	_, writer := newTestEditor(t)
	fmt.Fprint(writer, "hunter2\n")
	writer.Close()

	if _, err := ReadPassword("Password: "); err == nil {
		t.Error("ReadPassword() should fail when stdin is a pipe")
	}
}

// TestHistorySizeIsPositive checks the history limit.
func TestHistorySizeIsPositive(t *testing.T) {
	if historySize <= 0 {
		t.Errorf("historySize = %d, should be positive", historySize)
	}
}
