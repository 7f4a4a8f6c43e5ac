package api

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	neturl "net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoThreads is returned when a threads page has no comment rows.
var ErrNoThreads = errors.New("no comments found on threads page")

// ThreadComment is one row of the HN threads page. Indent is the nesting
// depth the site draws it at, relative to the user's own comment.
type ThreadComment struct {
	ID         int
	Indent     int
	Author     string
	Time       int64
	Text       string // raw HN HTML
	StoryTitle string
	StoryID    int
}

const rowMarker = `class="athing comtr" `

var (
	rowIDRe    = regexp.MustCompile(`^id="(\d+)"`)
	indentRe   = regexp.MustCompile(`class="ind" indent="(\d+)"`)
	hnuserRe   = regexp.MustCompile(`class="hnuser">([^<]+)</a>`)
	ageRe      = regexp.MustCompile(`class="age" title="[^ ]+ (\d+)"`)
	onstoryRe  = regexp.MustCompile(`class="onstory">[^<]*on:\s*<a href="item\?id=(\d+)"[^>]*title="([^"]*)"`)
	commtextRe = regexp.MustCompile(`(?s)class="commtext[^"]*">(.*?)</div>\s*<div class="reply">`)
)

// GetThreadsPage scrapes the threads page of username: the user's recent
// comments, each followed by the replies it received.
func (c *Client) GetThreadsPage(ctx context.Context, username string) ([]ThreadComment, error) {
	url := fmt.Sprintf("%s/threads?id=%s", c.siteURL, neturl.QueryEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching threads page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("threads page for %s returned HTTP %d", username, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading threads page: %w", err)
	}
	return ParseThreadsHTML(string(body))
}

// ParseThreadsHTML extracts the comment rows of a threads page in page order.
func ParseThreadsHTML(body string) ([]ThreadComment, error) {
	rows := strings.Split(body, rowMarker)
	if len(rows) < 2 {
		return nil, ErrNoThreads
	}

	comments := make([]ThreadComment, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if tc, ok := parseThreadRow(row); ok {
			comments = append(comments, tc)
		}
	}
	if len(comments) == 0 {
		return nil, ErrNoThreads
	}
	return comments, nil
}

func parseThreadRow(row string) (ThreadComment, bool) {
	var tc ThreadComment
	if m := rowIDRe.FindStringSubmatch(row); len(m) > 1 {
		tc.ID, _ = strconv.Atoi(m[1])
	}
	if tc.ID == 0 {
		return tc, false
	}

	if m := indentRe.FindStringSubmatch(row); len(m) > 1 {
		tc.Indent, _ = strconv.Atoi(m[1])
	}
	if m := hnuserRe.FindStringSubmatch(row); len(m) > 1 {
		tc.Author = m[1]
	}
	if m := ageRe.FindStringSubmatch(row); len(m) > 1 {
		tc.Time, _ = strconv.ParseInt(m[1], 10, 64)
	}
	// Only the user's own comments link back to their story.
	if m := onstoryRe.FindStringSubmatch(row); len(m) > 2 {
		tc.StoryID, _ = strconv.Atoi(m[1])
		tc.StoryTitle = html.UnescapeString(m[2])
	}
	if m := commtextRe.FindStringSubmatch(row); len(m) > 1 {
		tc.Text = m[1]
	}
	return tc, true
}
