// Package fetch pulls source content from the web: a single page's readable
// text, or the newest entry of an RSS/Atom feed.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ErrNoContent indicates a page yielded no extractable text.
var ErrNoContent = errors.New("no extractable text content")

// Content is webpage text prepared for repurposing.
type Content struct {
	Title     string
	Text      string
	WordCount int
}

// Fetcher retrieves and cleans webpage content.
type Fetcher struct {
	client *http.Client
}

// New creates a fetcher. A zero timeout defaults to 30 seconds.
func New(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// FetchURL downloads a page and extracts its readable title and text.
func (f *Fetcher) FetchURL(pageURL string) (*Content, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "ContentEngine/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", pageURL, ErrNoContent)
	}

	return &Content{
		Title:     strings.TrimSpace(article.Title),
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}, nil
}
