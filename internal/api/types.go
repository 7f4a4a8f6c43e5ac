package api

import (
	"encoding/json"
)

// Item is an HN item as served by the Firebase API. Only the fields needed
// to draw a comment thread are kept.
type Item struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	By      string `json:"by"`
	Time    int64  `json:"time"`
	Text    string `json:"text"`
	Parent  int    `json:"parent"`
	URL     string `json:"url"`
	Title   string `json:"title"`
	Dead    bool   `json:"dead"`
	Deleted bool   `json:"deleted"`

	// Kids is stored as a JSON array of ints and parsed lazily.
	RawKids json.RawMessage `json:"kids"`

	kids []int
}

// Kids returns the child item IDs in display order.
func (it *Item) Kids() []int {
	if it.kids != nil {
		return it.kids
	}
	if len(it.RawKids) == 0 {
		return nil
	}
	_ = json.Unmarshal(it.RawKids, &it.kids)
	return it.kids
}

// KidsJSON returns the raw JSON for kids (for cache storage).
func (it *Item) KidsJSON() string {
	if len(it.RawKids) == 0 {
		return "[]"
	}
	return string(it.RawKids)
}

// IsStory reports whether the item heads a discussion rather than being a reply.
func (it *Item) IsStory() bool {
	switch it.Type {
	case "story", "job", "poll":
		return true
	}
	return false
}
