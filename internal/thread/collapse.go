package thread

import "strings"

// minConversation is the shortest chain worth flattening.
const minConversation = 3

// Collapse walks down from c collecting the longest chain of replies that
// alternate between authors. When the chain is long enough it returns every
// turn plus the children left over after the last one; otherwise it returns
// c alone with its direct children.
func Collapse(c Comment) ([]Message, []Comment) {
	var conversation []Message
	var remaining []Comment

	current := c
	for {
		conversation = append(conversation, messageOf(current))

		if len(current.Children) == 0 {
			break
		}
		if len(current.Children) == 1 {
			child := current.Children[0]
			if child.Author == current.Author {
				remaining = current.Children
				break
			}
			current = child
			continue
		}

		author, ok := soleAuthor(current.Children)
		if !ok || author == current.Author {
			remaining = current.Children
			break
		}
		current = MergeReplies(current.Children)
	}

	if len(conversation) >= minConversation && alternates(conversation) {
		return conversation, remaining
	}
	return []Message{messageOf(c)}, c.Children
}

// MergeReplies folds sibling replies into one synthetic comment. Identity,
// author and time come from the first reply; non-empty texts are joined by a
// blank line and grandchildren are concatenated in order. The inputs are not
// modified.
func MergeReplies(replies []Comment) Comment {
	if len(replies) == 0 {
		return Comment{}
	}
	first := replies[0]
	merged := Comment{ID: first.ID, Author: first.Author, Time: first.Time}

	texts := make([]string, 0, len(replies))
	var grandchildren []Comment
	for _, r := range replies {
		if r.Text != "" {
			texts = append(texts, r.Text)
		}
		grandchildren = append(grandchildren, r.Children...)
	}
	merged.Text = strings.Join(texts, "\n\n")
	merged.Children = grandchildren
	return merged
}

// soleAuthor reports the author shared by every comment, if there is one.
func soleAuthor(comments []Comment) (string, bool) {
	if len(comments) == 0 {
		return "", false
	}
	author := comments[0].Author
	for _, c := range comments[1:] {
		if c.Author != author {
			return "", false
		}
	}
	return author, true
}

func alternates(msgs []Message) bool {
	for i := 1; i < len(msgs); i++ {
		if msgs[i].Author == msgs[i-1].Author {
			return false
		}
	}
	return true
}
