package thread

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainMarkdown returns the source unchanged and records requested widths.
type plainMarkdown struct {
	widths []int
}

func (p *plainMarkdown) Render(source string, width int) (string, error) {
	p.widths = append(p.widths, width)
	return source, nil
}

type failingMarkdown struct{}

func (failingMarkdown) Render(string, int) (string, error) {
	return "", errors.New("boom")
}

func renderPlain(t *testing.T, forest []Comment, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]Option{WithMarkdown(&plainMarkdown{})}, opts...)
	require.NoError(t, NewRenderer(&buf, opts...).Render(forest))
	return buf.String()
}

func TestRenderSingleComment(t *testing.T) {
	t.Run("with text", func(t *testing.T) {
		got := renderPlain(t, []Comment{leaf("A", "t1", "hi")})
		assert.Equal(t, "A (t1)\nhi\n", got)
	})

	t.Run("without text", func(t *testing.T) {
		got := renderPlain(t, []Comment{leaf("A", "t1", "")})
		assert.Equal(t, "A (t1)\n", got)
	})
}

func TestRenderFlattenedConversation(t *testing.T) {
	root := Comment{Author: "A", Time: "t1", Text: "hi", Children: []Comment{
		{Author: "B", Time: "t2", Text: "yo", Children: []Comment{
			leaf("A", "t3", "sup"),
		}},
	}}

	want := strings.Join([]string{
		"A (t1)",
		"hi",
		"",
		"B (t2)",
		"yo",
		"",
		"A (t3)",
		"sup",
	}, "\n") + "\n"
	got := renderPlain(t, []Comment{root})
	assert.Equal(t, want, got)
	assert.NotContains(t, got, branchTee)
	assert.NotContains(t, got, branchLast)
}

func TestRenderBranches(t *testing.T) {
	root := Comment{Author: "R", Time: "t1", Text: "root", Children: []Comment{
		leaf("C", "t2", "c"),
		leaf("D", "t3", "d"),
	}}

	want := strings.Join([]string{
		"R (t1)",
		"root",
		"",
		"├── C (t2)",
		"│   c",
		"└── D (t3)",
		"    d",
	}, "\n") + "\n"
	assert.Equal(t, want, renderPlain(t, []Comment{root}))
}

func TestRenderNestedConversationAndLeftovers(t *testing.T) {
	conversation := chain("C", "D", "C")
	conversation.Children[0].Children[0].Children = []Comment{
		leaf("E", "t9", "e"),
		{Author: "F", Time: "t10", Text: "f", Children: []Comment{leaf("G", "t11", "g")}},
	}
	root := Comment{Author: "R", Time: "t0", Text: "r", Children: []Comment{
		leaf("B", "tb", "b"),
		conversation,
	}}

	want := strings.Join([]string{
		"R (t0)",
		"r",
		"",
		"├── B (tb)",
		"│   b",
		"└── C (t1)",
		"    m1",
		"    ",
		"    D (t2)",
		"    m2",
		"    ",
		"    C (t3)",
		"    m3",
		"    ",
		"    ├── E (t9)",
		"    │   e",
		"    └── F (t10)",
		"        f",
		"        ",
		"        └── G (t11)",
		"            g",
	}, "\n") + "\n"
	assert.Equal(t, want, renderPlain(t, []Comment{root}))
}

func TestRenderSkipsEmptyTurnsInConversation(t *testing.T) {
	root := chain("A", "B", "A")
	root.Children[0].Text = ""

	want := "A (t1)\nm1\n\nA (t3)\nm3\n"
	assert.Equal(t, want, renderPlain(t, []Comment{root}))
}

func TestRenderSeparatesRoots(t *testing.T) {
	forest := []Comment{leaf("A", "t1", "a"), leaf("B", "t2", "b"), leaf("C", "t3", "c")}
	got := renderPlain(t, forest)

	assert.Equal(t, "A (t1)\na\n\nB (t2)\nb\n\nC (t3)\nc\n", got)
	assert.Equal(t, len(forest)-1, strings.Count(got, "\n\n"))
}

func TestRenderDropsBlankBodyLines(t *testing.T) {
	got := renderPlain(t, []Comment{leaf("A", "t1", "one\n\n   \ntwo\n")})
	assert.Equal(t, "A (t1)\none\ntwo\n", got)
}

func TestRenderBodyWidth(t *testing.T) {
	root := Comment{Author: "R", Time: "t1", Text: "r", Children: []Comment{
		{Author: "C", Time: "t2", Text: "c", Children: []Comment{leaf("C", "t3", "x")}},
		leaf("D", "t4", "d"),
	}}

	tests := []struct {
		name  string
		width int
		want  []int
	}{
		{"wide terminal", 100, []int{100, 96, 92, 96}},
		{"narrow terminal floors at forty", 30, []int{40, 40, 40, 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := &plainMarkdown{}
			var buf bytes.Buffer
			r := NewRenderer(&buf, WithMarkdown(md), WithWidth(tt.width))
			require.NoError(t, r.Render([]Comment{root}))
			assert.Equal(t, tt.want, md.widths)
		})
	}
}

func TestRenderMarkdownFailureFallsBackToSource(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithMarkdown(failingMarkdown{}))
	require.NoError(t, r.Render([]Comment{leaf("A", "t1", "**raw**")}))
	assert.Equal(t, "A (t1)\n**raw**\n", buf.String())
}

func TestRenderNonInteractiveHasNoEscapes(t *testing.T) {
	root := Comment{Author: "alice", Time: "now", Text: "# Title\n\nSome **bold** and `code`.", Children: []Comment{
		leaf("bob", "later", "- a\n- b"),
		leaf("carol", "later", "> quoted"),
	}}
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithStyles(NewStyles(&buf, false)))
	require.NoError(t, r.Render([]Comment{root, leaf("dave", "then", "plain")}))

	out := buf.String()
	assert.NotContains(t, out, "\x1b")
	assert.Contains(t, out, "alice (now)")
	assert.Contains(t, out, "bold")
}

func TestRenderInteractiveHeader(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithStyles(NewStyles(&buf, true)), WithMarkdown(&plainMarkdown{}))
	require.NoError(t, r.Render([]Comment{leaf("alice", "t1", "hi")}))

	first := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(first, "\x1b["), "header should start with a style sequence: %q", first)
	assert.True(t, strings.HasSuffix(first, "alice\x1b[0m (t1)"), "style should reset before the time: %q", first)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestRenderReturnsWriteErrors(t *testing.T) {
	r := NewRenderer(brokenWriter{}, WithMarkdown(&plainMarkdown{}))
	err := r.Render([]Comment{leaf("A", "t1", "hi")})
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
