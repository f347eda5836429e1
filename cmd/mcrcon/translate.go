// =============================================================================
// translate.go - Formatting Code Translation (Server Text → Terminal)
// =============================================================================
//
// Minecraft marks up chat and console text with "section sign" formatting
// codes: a '§' followed by one character. This file translates those codes
// into terminal styles so replies look the way they do in game.
//
//	§0-§9, §a-§f   Colours (black, dark blue, ... white)
//	§l             Bold
//	§m             Strikethrough
//	§n             Underline
//	§o             Italic
//	§k             Obfuscated (rendered as reverse video)
//	§r             Reset
//
// Examples:
//
//	"§aGreen §lbold"    → green "Green " + green bold "bold"
//	"§cError§r plain"   → red "Error" + unstyled " plain"
//
// In plain mode (--plain, or output that is not a terminal) codes are
// stripped instead.
//
// =============================================================================

package main

// GO CONCEPT: Third-Party Styling Libraries
// -----------------------------------------
// lipgloss builds ANSI-styled strings from a declarative Style value.
// A lipgloss.Renderer is bound to one output and knows its colour
// profile, so styles degrade gracefully on terminals with fewer colours.
// termenv supplies the profile constants.
//
// Compare with Python: `rich` plays the same role: `Text("hi", style="bold
// green")` rendered by a Console that detects the terminal's capabilities.
import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// sectionSign introduces a formatting code.
const sectionSign = '§'

// formatColors maps colour codes to their in-game RGB values.
var formatColors = map[rune]string{
	'0': "#000000", // black
	'1': "#0000AA", // dark_blue
	'2': "#00AA00", // dark_green
	'3': "#00AAAA", // dark_aqua
	'4': "#AA0000", // dark_red
	'5': "#AA00AA", // dark_purple
	'6': "#FFAA00", // gold
	'7': "#AAAAAA", // gray
	'8': "#555555", // dark_gray
	'9': "#5555FF", // blue
	'a': "#55FF55", // green
	'b': "#55FFFF", // aqua
	'c': "#FF5555", // red
	'd': "#FF55FF", // light_purple
	'e': "#FFFF55", // yellow
	'f': "#FFFFFF", // white
}

// textFormat is the formatting state accumulated while scanning a string.
type textFormat struct {
	color         string
	bold          bool
	italic        bool
	underline     bool
	strikethrough bool
	obfuscated    bool
}

func (f textFormat) isZero() bool {
	return f == textFormat{}
}

// apply updates the state for one code. It returns false for characters
// that are not formatting codes.
func (f *textFormat) apply(code rune) bool {
	code = toLowerASCII(code)
	if color, ok := formatColors[code]; ok {
		// A colour code also clears decorations.
		*f = textFormat{color: color}
		return true
	}

	switch code {
	case 'k':
		f.obfuscated = true
	case 'l':
		f.bold = true
	case 'm':
		f.strikethrough = true
	case 'n':
		f.underline = true
	case 'o':
		f.italic = true
	case 'r':
		*f = textFormat{}
	default:
		return false
	}
	return true
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Translator renders server text for one output stream.
type Translator struct {
	renderer *lipgloss.Renderer
	plain    bool
}

// NewTranslator creates a translator writing styles suitable for w. When
// plain is true, or w is not a colour-capable terminal, codes are stripped.
func NewTranslator(w io.Writer, plain bool) *Translator {
	renderer := lipgloss.NewRenderer(w)
	if renderer.ColorProfile() == termenv.Ascii {
		plain = true
	}
	return &Translator{renderer: renderer, plain: plain}
}

// newTranslatorWithProfile creates a translator with a fixed colour
// profile, regardless of what the output supports.
func newTranslatorWithProfile(w io.Writer, profile termenv.Profile) *Translator {
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(profile)
	return &Translator{renderer: renderer, plain: profile == termenv.Ascii}
}

// IsPlain reports whether the translator strips formatting.
func (t *Translator) IsPlain() bool {
	return t.plain
}

// Translate converts formatting codes in s to terminal styles, or strips
// them in plain mode.
//
// GO CONCEPT: Ranging Over a String Yields Runes
// -----------------------------------------------
// `for _, r := range s` decodes UTF-8 and yields one rune (Unicode code
// point) per iteration. '§' is two bytes in UTF-8, so byte indexing would
// split it; ranging over runes keeps it whole.
//
// Compare with Python: Python 3 strings are sequences of code points, so
// `for ch in s` behaves like Go's rune loop.
func (t *Translator) Translate(s string) string {
	if !strings.ContainsRune(s, sectionSign) {
		return s
	}

	var (
		out     strings.Builder
		segment strings.Builder
		format  textFormat
		pending bool
	)

	flush := func() {
		if segment.Len() == 0 {
			return
		}
		out.WriteString(t.render(segment.String(), format))
		segment.Reset()
	}

	for _, r := range s {
		if pending {
			pending = false
			next := format
			if next.apply(r) {
				flush()
				format = next
				continue
			}
			// Not a code: keep the sign and the character.
			segment.WriteRune(sectionSign)
		}
		if r == sectionSign {
			pending = true
			continue
		}
		segment.WriteRune(r)
	}
	if pending {
		segment.WriteRune(sectionSign)
	}
	flush()

	return out.String()
}

func (t *Translator) render(text string, format textFormat) string {
	if t.plain || format.isZero() {
		return text
	}

	style := t.renderer.NewStyle()
	if format.color != "" {
		style = style.Foreground(lipgloss.Color(format.color))
	}
	if format.bold {
		style = style.Bold(true)
	}
	if format.italic {
		style = style.Italic(true)
	}
	if format.underline {
		style = style.Underline(true)
	}
	if format.strikethrough {
		style = style.Strikethrough(true)
	}
	if format.obfuscated {
		style = style.Reverse(true)
	}
	return style.Render(text)
}

// StripFormatting removes all formatting codes from s.
func StripFormatting(s string) string {
	if !strings.ContainsRune(s, sectionSign) {
		return s
	}
	return (&Translator{plain: true}).Translate(s)
}
