package thread

// Comment is one node of a comment tree. Children are in reply order.
type Comment struct {
	ID       string
	Author   string
	Time     string // display-ready
	Text     string // markdown source, may be empty
	Children []Comment
}

// Message is a single conversation turn produced while collapsing.
type Message struct {
	Author string
	Time   string
	Text   string
}

func messageOf(c Comment) Message {
	return Message{Author: c.Author, Time: c.Time, Text: c.Text}
}
