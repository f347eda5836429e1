// =============================================================================
// translate_test.go - Tests for Formatting Code Translation (translate.go)
// =============================================================================
//
// The translator's output depends on the terminal's colour profile. Tests
// pin the profile with newTranslatorWithProfile so results do not depend
// on where `go test` runs.
//
// =============================================================================

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

// TestStripFormatting verifies codes are removed and other text kept.
func TestStripFormatting(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no codes", "Saved the game", "Saved the game"},
		{"colour", "§aGreen", "Green"},
		{"colour and reset", "§cError§r plain", "Error plain"},
		{"decorations", "§l§nBold underline", "Bold underline"},
		{"uppercase code", "§ARed§R", "Red"},
		{"unknown code kept", "§zKeep", "§zKeep"},
		{"trailing sign kept", "Trailing §", "Trailing §"},
		{"empty", "", ""},
		{"only codes", "§a§l§r", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFormatting(tc.input); got != tc.want {
				t.Errorf("StripFormatting(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

// TestTranslatePlain verifies plain translators strip codes.
func TestTranslatePlain(t *testing.T) {
	translator := NewTranslator(&bytes.Buffer{}, true)
	if !translator.IsPlain() {
		t.Fatal("NewTranslator(plain=true) should be plain")
	}

	if got := translator.Translate("§aWelcome§r home"); got != "Welcome home" {
		t.Errorf("Translate() = %q, want %q", got, "Welcome home")
	}
}

// TestTranslateNonTerminalIsPlain verifies that a writer which is not a
// terminal gets plain output even without --plain.
func TestTranslateNonTerminalIsPlain(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")

	translator := NewTranslator(&bytes.Buffer{}, false)
	if !translator.IsPlain() {
		t.Error("translator for a bytes.Buffer should be plain")
	}
}

// TestTranslateColour verifies styled output contains ANSI escapes and the
// original text, without the codes.
func TestTranslateColour(t *testing.T) {
	translator := newTranslatorWithProfile(&bytes.Buffer{}, termenv.TrueColor)
	if translator.IsPlain() {
		t.Fatal("TrueColor translator should not be plain")
	}

	tests := []struct {
		name   string
		input  string
		escape string
	}{
		{"red", "§cError", "38;2;255;85;85"},
		{"bold", "§lLoud", "1"},
		{"italic", "§oSlanted", "3"},
		{"underline", "§nUnder", "4"},
		{"strikethrough", "§mGone", "9"},
		{"obfuscated", "§kSecret", "7"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := translator.Translate(tc.input)
			text := tc.input[len("§")+1:]

			if !strings.Contains(got, "\x1b[") {
				t.Errorf("Translate(%q) = %q, want ANSI escapes", tc.input, got)
			}
			if !strings.Contains(got, tc.escape) {
				t.Errorf("Translate(%q) = %q, want SGR %s", tc.input, got, tc.escape)
			}
			if !strings.Contains(got, text) {
				t.Errorf("Translate(%q) = %q, missing text %q", tc.input, got, text)
			}
			if strings.ContainsRune(got, sectionSign) {
				t.Errorf("Translate(%q) = %q, still contains a code", tc.input, got)
			}
		})
	}
}

// TestTranslateResetIsUnstyled verifies text after §r is emitted as-is.
func TestTranslateResetIsUnstyled(t *testing.T) {
	translator := newTranslatorWithProfile(&bytes.Buffer{}, termenv.ANSI256)

	got := translator.Translate("§aGreen§r plain")
	if !strings.HasSuffix(got, " plain") {
		t.Errorf("Translate() = %q, want unstyled suffix %q", got, " plain")
	}
	if strings.HasPrefix(got, "Green") {
		t.Errorf("Translate() = %q, want styled prefix", got)
	}
}

// TestTranslateNoCodesUnchanged verifies text without codes is returned
// untouched, even in colour mode.
func TestTranslateNoCodesUnchanged(t *testing.T) {
	translator := newTranslatorWithProfile(&bytes.Buffer{}, termenv.TrueColor)

	input := "There are 0 of a max of 20 players online: "
	if got := translator.Translate(input); got != input {
		t.Errorf("Translate(%q) = %q", input, got)
	}
}

// TestTextFormatApply verifies the formatting state machine.
func TestTextFormatApply(t *testing.T) {
	var format textFormat

	if !format.apply('l') || !format.bold {
		t.Fatal("§l should set bold")
	}
	if !format.apply('a') {
		t.Fatal("§a should be a code")
	}
	if format.bold {
		t.Error("a colour code should clear decorations")
	}
	if format.color != formatColors['a'] {
		t.Errorf("color = %q, want %q", format.color, formatColors['a'])
	}
	if !format.apply('R') || !format.isZero() {
		t.Error("§R should reset all formatting")
	}
	if format.apply('x') {
		t.Error("§x is not a code")
	}
}
