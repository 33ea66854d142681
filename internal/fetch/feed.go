package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Item is one feed entry reduced to summarizable text.
type Item struct {
	Title string
	URL   string
	Text  string
}

// FeedItems parses an RSS/Atom feed and returns up to limit newest items
// with their content flattened to plain text.
func (f *Fetcher) FeedItems(
	ctx context.Context,
	feedURL string,
	limit int,
) (string, []Item, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return "", nil, errors.New("feed URL is empty")
	}

	if limit <= 0 {
		return "", nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	parser := gofeed.NewParser()
	parser.Client = f.client
	parser.UserAgent = userAgent

	parsed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return "", nil, fmt.Errorf("parse feed (URL = %s): %w", feedURL, err)
	}

	items := make([]Item, 0, min(limit, len(parsed.Items)))
	for _, entry := range parsed.Items {
		if len(items) == limit {
			break
		}

		if entry == nil {
			continue
		}

		text := flattenHTML(entry.Content)
		if text == "" {
			text = flattenHTML(entry.Description)
		}
		if text == "" {
			continue
		}

		items = append(items, Item{
			Title: strings.TrimSpace(entry.Title),
			URL:   strings.TrimSpace(entry.Link),
			Text:  text,
		})
	}

	return strings.TrimSpace(parsed.Title), items, nil
}

func flattenHTML(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
