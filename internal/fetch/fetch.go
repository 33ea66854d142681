// Package fetch turns remote resources (web pages, feeds) into plain text
// suitable for the summarization pipeline.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

const (
	clientTimeout = 20 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
)

// Fetcher downloads pages and extracts their readable text.
type Fetcher struct {
	client *http.Client
	log    *slog.Logger
}

// NewFetcher builds a fetcher with a bounded-timeout HTTP client.
func NewFetcher(log *slog.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: clientTimeout},
		log:    log,
	}
}

// ExtractURL returns the first https URL found in free text.
func ExtractURL(text string) (string, error) {
	httpsURLRe, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		return "", fmt.Errorf("create regexp: %w", err)
	}

	match := httpsURLRe.FindString(text)
	if match == "" {
		return "", errors.New("no https URL found")
	}

	return strings.TrimSpace(match), nil
}

// PageText downloads pageURL and returns its readable text content.
func (f *Fetcher) PageText(ctx context.Context, pageURL string) (string, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return "", errors.New("page URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"pageURL", pageURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	text := readableText(doc)
	if text == "" {
		return "", fmt.Errorf("no readable text found at %s", pageURL)
	}

	return text, nil
}

func readableText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	root := doc.Find("article")
	if root.Length() == 0 {
		root = doc.Find("main")
	}
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	var parts []string
	root.Find("h1, h2, h3, p, li, blockquote").Each(func(_ int, s *goquery.Selection) {
		part := strings.TrimSpace(s.Text())
		if part != "" {
			parts = append(parts, part)
		}
	})

	if len(parts) == 0 {
		return strings.Join(strings.Fields(root.Text()), " ")
	}

	return strings.Join(parts, " ")
}
