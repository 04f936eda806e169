package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "ARTyBot/1.0"

// Fetcher retrieves a page and extracts its readable body text. Text inside
// a primary <article> container is preferred; otherwise all paragraph blocks
// on the page are concatenated.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxChars int
}

func New(timeout time.Duration, maxChars int) *Fetcher {
	return &Fetcher{
		client:   &http.Client{},
		timeout:  timeout,
		maxChars: maxChars,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.fetch(ctx, url, f.timeout, f.maxChars)
}

func (f *Fetcher) fetch(ctx context.Context, url string, timeout time.Duration, maxChars int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	scope := doc.Selection
	if article := doc.Find("article").First(); article.Length() > 0 {
		scope = article
	}

	var parts []string
	scope.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return truncate(strings.Join(parts, " "), maxChars), nil
}

// truncate cuts text to at most maxChars characters. The limit counts
// runes, not bytes, so a multi-byte character is never split.
func truncate(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
