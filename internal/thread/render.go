package thread

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	defaultWidth = 80
	minBodyWidth = 40

	branchTee   = "├── "
	branchLast  = "└── "
	pipeIndent  = "│   "
	spaceIndent = "    "
)

// Renderer writes comment forests as an indented tree.
type Renderer struct {
	out      io.Writer
	styles   Styles
	markdown Markdown
	width    int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth sets the terminal width bodies are wrapped against.
func WithWidth(cols int) Option {
	return func(r *Renderer) {
		if cols > 0 {
			r.width = cols
		}
	}
}

// WithStyles sets the styling context.
func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = s }
}

// WithMarkdown replaces the body renderer.
func WithMarkdown(md Markdown) Option {
	return func(r *Renderer) { r.markdown = md }
}

// NewRenderer returns a renderer writing to w. Without options it produces
// plain, unstyled output wrapped for an 80 column terminal.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{out: w, width: defaultWidth}
	for _, opt := range opts {
		opt(r)
	}
	if r.styles.renderer == nil {
		r.styles = NewStyles(w, false)
	}
	if r.markdown == nil {
		r.markdown = NewGlamourMarkdown(r.styles.Interactive())
	}
	return r
}

// lineWriter remembers the first write error so the traversal can bail out.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) line(parts ...string) {
	if lw.err != nil {
		return
	}
	for _, p := range parts {
		if _, err := lw.w.WriteString(p); err != nil {
			lw.err = err
			return
		}
	}
	if err := lw.w.WriteByte('\n'); err != nil {
		lw.err = err
	}
}

// Render writes every root of forest, separated by one empty line.
func (r *Renderer) Render(forest []Comment) error {
	lw := &lineWriter{w: bufio.NewWriter(r.out)}
	for i, c := range forest {
		isLast := i == len(forest)-1
		r.comment(lw, c, "", isLast, true)
		if !isLast {
			lw.line()
		}
		if lw.err != nil {
			return fmt.Errorf("writing comment tree: %w", lw.err)
		}
	}
	if err := lw.w.Flush(); err != nil {
		return fmt.Errorf("writing comment tree: %w", err)
	}
	return nil
}

func (r *Renderer) comment(lw *lineWriter, c Comment, prefix string, isLast, isRoot bool) {
	if lw.err != nil {
		return
	}
	messages, remaining := Collapse(c)

	header := r.styles.Header(c.Author, c.Time)
	if isRoot {
		lw.line(header)
	} else {
		lw.line(prefix, connector(isLast), header)
	}

	textPrefix := childPrefix(prefix, isLast, isRoot)
	width := max(minBodyWidth, r.width-ansi.StringWidth(textPrefix))

	for i, msg := range messages {
		if msg.Text == "" {
			continue
		}
		if i > 0 {
			lw.line(textPrefix)
			lw.line(textPrefix, r.styles.Header(msg.Author, msg.Time))
		}
		r.body(lw, msg.Text, textPrefix, width)
	}

	if len(remaining) == 0 {
		return
	}
	lw.line(textPrefix)
	for i, child := range remaining {
		r.comment(lw, child, textPrefix, i == len(remaining)-1, false)
	}
}

func (r *Renderer) body(lw *lineWriter, text, textPrefix string, width int) {
	rendered, err := r.markdown.Render(text, width)
	if err != nil {
		log.Printf("markdown fallback to raw text: %v", err)
		rendered = text
	}
	for _, l := range strings.Split(rendered, "\n") {
		if strings.TrimSpace(ansi.Strip(l)) == "" {
			continue
		}
		lw.line(textPrefix, l)
	}
}

func connector(isLast bool) string {
	if isLast {
		return branchLast
	}
	return branchTee
}

// childPrefix is the indentation for a comment's body and its replies.
func childPrefix(prefix string, isLast, isRoot bool) string {
	switch {
	case isRoot:
		return prefix
	case isLast:
		return prefix + spaceIndent
	default:
		return prefix + pipeIndent
	}
}
