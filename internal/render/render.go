// Package render draws a generation as a single line of text, highlighting
// every locked word together with the separators locked alongside it.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/specialistvlad/weasel/internal/match"
	"github.com/specialistvlad/weasel/internal/sequence"
)

// ColorMode controls whether highlight escapes are emitted.
type ColorMode string

const (
	// ColorAuto colors output only when the writer is a terminal.
	ColorAuto ColorMode = "auto"
	// ColorAlways always emits ANSI colors.
	ColorAlways ColorMode = "always"
	// ColorNever never emits escapes.
	ColorNever ColorMode = "never"
)

// ParseColorMode converts a flag value into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q: must be 'auto', 'always' or 'never'", s)
	}
}

// ColorLocked is the highlight for locked groups, the terminal's bright green.
var ColorLocked = lipgloss.Color("10")

// Terminal renders frames with lipgloss styles bound to one output.
type Terminal struct {
	locked lipgloss.Style
}

// NewTerminal returns a renderer whose color profile is chosen for w
// according to mode.
func NewTerminal(w io.Writer, mode ColorMode) *Terminal {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Terminal{
		locked: r.NewStyle().Bold(true).Foreground(ColorLocked),
	}
}

// Render implements evolve.Renderer. Cells are grouped by lock group id, so
// two words sharing a separator still render as separate segments.
func (t *Terminal) Render(seq sequence.Sequence, locks match.Locks) string {
	var b strings.Builder
	b.Grow(len(seq))
	for i := 0; i < len(seq); {
		if !locks.IsLocked(i) {
			b.WriteByte(seq[i])
			i++
			continue
		}
		group := locks.Group[i]
		j := i
		for j < len(seq) && locks.IsLocked(j) && locks.Group[j] == group {
			j++
		}
		b.WriteString(t.locked.Render(string(seq[i:j])))
		i = j
	}
	return b.String()
}

// IsTerminal reports whether w is a terminal, which decides the defaults for
// screen clearing and color.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
