package source

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fragmede/threadtree/internal/api"
	"github.com/fragmede/threadtree/internal/render"
	"github.com/fragmede/threadtree/internal/thread"
)

const deletedAuthor = "[deleted]"

// Thread is a discussion ready to render. Title and URL are set when the
// requested item is a story; Comments then holds its top-level replies.
type Thread struct {
	Title    string
	URL      string
	Comments []thread.Comment
}

// ItemFetcher is the part of api.Client the loader needs.
type ItemFetcher interface {
	BatchGetItems(ctx context.Context, ids []int) ([]*api.Item, error)
}

// ItemCache stores fetched items between runs.
type ItemCache interface {
	FreshItems(ids []int, ttl time.Duration) (map[int]*api.Item, error)
	PutItem(item *api.Item) error
}

// HNLoader assembles comment trees from the HN Firebase API, one tree level
// per batch request.
type HNLoader struct {
	fetcher ItemFetcher
	cache   ItemCache
	ttl     time.Duration
	now     func() time.Time
}

// NewHNLoader returns a loader. cache may be nil.
func NewHNLoader(fetcher ItemFetcher, cache ItemCache, ttl time.Duration) *HNLoader {
	return &HNLoader{fetcher: fetcher, cache: cache, ttl: ttl, now: time.Now}
}

// Load fetches item id and all of its descendants.
func (l *HNLoader) Load(ctx context.Context, id int) (Thread, error) {
	byID, err := l.items(ctx, []int{id})
	if err != nil {
		return Thread{}, err
	}
	root, ok := byID[id]
	if !ok {
		return Thread{}, fmt.Errorf("loading item %d: %w", id, api.ErrNotFound)
	}

	seen := map[int]bool{id: true}
	level := root.Kids()
	for len(level) > 0 {
		fetched, err := l.items(ctx, level)
		if err != nil {
			return Thread{}, err
		}
		var next []int
		for _, kid := range level {
			item, ok := fetched[kid]
			if !ok || seen[kid] {
				continue
			}
			seen[kid] = true
			byID[kid] = item
			next = append(next, item.Kids()...)
		}
		level = next
	}

	now := l.now()
	if root.IsStory() {
		return Thread{
			Title:    root.Title,
			URL:      root.URL,
			Comments: l.children(root, byID, now),
		}, nil
	}
	c, _ := l.comment(root, byID, now)
	return Thread{Comments: []thread.Comment{c}}, nil
}

// items returns the requested items, from the cache when fresh and from the
// API otherwise. Items the API could not return are absent from the map.
func (l *HNLoader) items(ctx context.Context, ids []int) (map[int]*api.Item, error) {
	found := map[int]*api.Item{}
	if l.cache != nil {
		cached, err := l.cache.FreshItems(ids, l.ttl)
		if err != nil {
			log.Printf("reading item cache: %v", err)
		} else {
			found = cached
		}
	}

	var missing []int
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	fetched, err := l.fetcher.BatchGetItems(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("fetching %d items: %w", len(missing), err)
	}
	for _, item := range fetched {
		if item == nil {
			continue
		}
		found[item.ID] = item
		if l.cache != nil {
			if err := l.cache.PutItem(item); err != nil {
				log.Printf("caching item %d: %v", item.ID, err)
			}
		}
	}
	return found, nil
}

func (l *HNLoader) children(item *api.Item, byID map[int]*api.Item, now time.Time) []thread.Comment {
	var out []thread.Comment
	for _, kid := range item.Kids() {
		child, ok := byID[kid]
		if !ok {
			continue
		}
		if c, keep := l.comment(child, byID, now); keep {
			out = append(out, c)
		}
	}
	return out
}

func (l *HNLoader) comment(item *api.Item, byID map[int]*api.Item, now time.Time) (thread.Comment, bool) {
	return itemComment(item, l.children(item, byID, now), now)
}

// FromAlgolia converts a nested Algolia item tree.
func FromAlgolia(root *api.AlgoliaItem, now time.Time) Thread {
	item := root.ToItem()
	kids := algoliaChildren(root.Children, now)
	if item.IsStory() {
		return Thread{Title: item.Title, URL: item.URL, Comments: kids}
	}
	c, _ := itemComment(item, kids, now)
	return Thread{Comments: []thread.Comment{c}}
}

func algoliaChildren(nodes []api.AlgoliaItem, now time.Time) []thread.Comment {
	var out []thread.Comment
	for _, n := range nodes {
		if c, keep := itemComment(n.ToItem(), algoliaChildren(n.Children, now), now); keep {
			out = append(out, c)
		}
	}
	return out
}

// itemComment converts one HN item. Deleted or dead items are dropped unless
// replies hang off them, in which case they stay as an empty placeholder.
func itemComment(item *api.Item, children []thread.Comment, now time.Time) (thread.Comment, bool) {
	c := thread.Comment{
		ID:       strconv.Itoa(item.ID),
		Author:   item.By,
		Time:     FormatTime(item.Time, now),
		Text:     render.HNToMarkdown(item.Text),
		Children: children,
	}
	if item.Deleted || item.Dead {
		if len(children) == 0 {
			return c, false
		}
		c.Text = ""
	}
	if c.Author == "" {
		c.Author = deletedAuthor
	}
	return c, true
}

// FormatTime renders a unix timestamp relative to now ("3 hours ago").
func FormatTime(unix int64, now time.Time) string {
	if unix == 0 {
		return "unknown time"
	}
	return humanize.RelTime(time.Unix(unix, 0), now, "ago", "from now")
}
