package thread

import (
	"encoding/binary"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/zeebo/blake3"
)

// authorPalette holds dark, saturated backgrounds that stay readable under
// white text.
var authorPalette = []lipgloss.Color{
	"#8B0000", // dark red
	"#006400", // dark green
	"#00008B", // dark blue
	"#800080", // purple
	"#FF8C00", // dark orange
	"#DC143C", // crimson
	"#191970", // midnight blue
	"#808000", // olive
	"#4B0082", // indigo
	"#008080", // teal
	"#A52A2A", // brown
	"#483D8B", // dark slate blue
}

var authorForeground = lipgloss.Color("#FFFFFF")

// Styles is the styling context for one render. It is resolved once and
// passed down instead of re-checking the terminal at every line.
type Styles struct {
	interactive bool
	renderer    *lipgloss.Renderer
}

// NewStyles returns styles for output written to w. When interactive is
// false every styling helper returns its input unchanged.
func NewStyles(w io.Writer, interactive bool) Styles {
	r := lipgloss.NewRenderer(w)
	if interactive {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{interactive: interactive, renderer: r}
}

// Interactive reports whether styling is enabled.
func (s Styles) Interactive() bool { return s.interactive }

// AuthorColor returns the background assigned to author, or the empty
// color when styling is disabled. The choice depends only on the name.
func (s Styles) AuthorColor(author string) lipgloss.Color {
	if !s.interactive {
		return ""
	}
	return paletteColor(author)
}

// Header formats "author (time)" with the author highlighted. Styling is
// reset right after the name.
func (s Styles) Header(author, time string) string {
	name := author
	if s.interactive && s.renderer != nil {
		name = s.renderer.NewStyle().
			Background(s.AuthorColor(author)).
			Foreground(authorForeground).
			Render(author)
	}
	return name + " (" + time + ")"
}

// Title formats a story title line, bold when styling is enabled.
func (s Styles) Title(title string) string {
	if !s.interactive || s.renderer == nil {
		return title
	}
	return s.renderer.NewStyle().Bold(true).Render(title)
}

func paletteColor(author string) lipgloss.Color {
	sum := blake3.Sum256([]byte(author))
	idx := binary.BigEndian.Uint64(sum[:8]) % uint64(len(authorPalette))
	return authorPalette[idx]
}
