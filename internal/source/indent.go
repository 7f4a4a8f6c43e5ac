package source

import (
	"strconv"
	"time"

	"github.com/fragmede/threadtree/internal/api"
	"github.com/fragmede/threadtree/internal/render"
	"github.com/fragmede/threadtree/internal/thread"
)

type indentNode struct {
	comment thread.Comment
	kids    []*indentNode
}

func (n *indentNode) build() thread.Comment {
	c := n.comment
	for _, k := range n.kids {
		c.Children = append(c.Children, k.build())
	}
	return c
}

// FromIndented rebuilds reply structure from rows listed in page order with
// their indent depth, as on the HN threads page. A row hangs off the closest
// earlier row that is one level shallower; rows at depth 0 start new roots.
func FromIndented(rows []api.ThreadComment, now time.Time) []thread.Comment {
	var roots []*indentNode
	var stack []*indentNode // stack[d] is the latest row at depth d

	for _, row := range rows {
		n := &indentNode{comment: thread.Comment{
			ID:     strconv.Itoa(row.ID),
			Author: row.Author,
			Time:   rowTime(row, now),
			Text:   render.HNToMarkdown(row.Text),
		}}
		if n.comment.Author == "" {
			n.comment.Author = deletedAuthor
		}

		depth := min(max(row.Indent, 0), len(stack))
		if depth == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[depth-1]
			parent.kids = append(parent.kids, n)
		}
		stack = append(stack[:depth], n)
	}

	forest := make([]thread.Comment, 0, len(roots))
	for _, r := range roots {
		forest = append(forest, r.build())
	}
	return forest
}

func rowTime(row api.ThreadComment, now time.Time) string {
	t := FormatTime(row.Time, now)
	if row.StoryTitle != "" {
		t += " | on: " + row.StoryTitle
	}
	return t
}
