package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Markdown turns markdown source into wrapped terminal text.
type Markdown interface {
	Render(source string, width int) (string, error)
}

// GlamourMarkdown renders with glamour and keeps one renderer per width,
// recreating it when the width changes.
type GlamourMarkdown struct {
	interactive bool
	dark        bool
	renderer    *glamour.TermRenderer
	width       int
}

// NewGlamourMarkdown picks the glamour style for the output: no colors when
// not interactive, dark or light palette otherwise.
func NewGlamourMarkdown(interactive bool) *GlamourMarkdown {
	dark := true
	if interactive {
		dark = termenv.HasDarkBackground()
	}
	return &GlamourMarkdown{interactive: interactive, dark: dark}
}

func (g *GlamourMarkdown) style() glamouransi.StyleConfig {
	var style glamouransi.StyleConfig
	switch {
	case !g.interactive:
		style = styles.NoTTYStyleConfig
	case g.dark:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}
	style.Document.Margin = uintPtr(0)
	return style
}

func uintPtr(v uint) *uint { return &v }

// Render wraps source to width. Trailing newlines are trimmed.
func (g *GlamourMarkdown) Render(source string, width int) (string, error) {
	if width <= 0 {
		return source, nil
	}
	if g.renderer == nil || g.width != width {
		profile := termenv.TrueColor
		if !g.interactive {
			profile = termenv.Ascii
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(g.style()),
			glamour.WithWordWrap(width),
			glamour.WithColorProfile(profile),
		)
		if err != nil {
			return "", fmt.Errorf("creating markdown renderer: %w", err)
		}
		g.renderer = r
		g.width = width
	}
	out, err := g.renderer.Render(source)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	if !g.interactive {
		out = ansi.Strip(out)
	}
	return strings.TrimRight(out, "\n"), nil
}
