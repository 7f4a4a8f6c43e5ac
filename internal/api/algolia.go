package api

import (
	"context"
	"fmt"
)

// AlgoliaItem is a node of the nested item tree returned by the Algolia HN
// API. Unlike Firebase, a single request returns every descendant.
type AlgoliaItem struct {
	ID         int           `json:"id"`
	Type       string        `json:"type"`
	Author     string        `json:"author"`
	CreatedAtI int64         `json:"created_at_i"`
	Title      string        `json:"title"`
	Text       string        `json:"text"`
	URL        string        `json:"url"`
	ParentID   int           `json:"parent_id"`
	Children   []AlgoliaItem `json:"children"`
}

// ToItem converts an Algolia node to an api.Item, dropping its children.
func (a AlgoliaItem) ToItem() *Item {
	return &Item{
		ID:      a.ID,
		Type:    a.Type,
		By:      a.Author,
		Time:    a.CreatedAtI,
		Text:    a.Text,
		Parent:  a.ParentID,
		URL:     a.URL,
		Title:   a.Title,
		Deleted: a.Author == "" && a.Text == "",
	}
}

// GetItemTree fetches an item with all of its descendants in one request.
func (c *Client) GetItemTree(ctx context.Context, id int) (*AlgoliaItem, error) {
	url := fmt.Sprintf("%s/items/%d", c.algoliaURL, id)

	var item AlgoliaItem
	if err := c.get(ctx, url, &item); err != nil {
		return nil, fmt.Errorf("fetching item tree: %w", err)
	}
	return &item, nil
}
