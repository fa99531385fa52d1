package fetch

import (
	"errors"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// ErrEmptyFeed indicates a feed parsed but contained no entries.
var ErrEmptyFeed = errors.New("feed has no entries")

// FetchFeedLatest resolves the newest entry of an RSS/Atom feed and fetches
// that entry's page content.
func (f *Fetcher) FetchFeedLatest(feedURL string) (*Content, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = "ContentEngine/1.0"

	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %s: %w", feedURL, err)
	}
	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", feedURL, ErrEmptyFeed)
	}

	item := feed.Items[0]
	if item.Link == "" {
		return nil, fmt.Errorf("%s: newest entry has no link", feedURL)
	}

	content, err := f.FetchURL(item.Link)
	if err != nil {
		return nil, err
	}
	if content.Title == "" && item.Title != "" {
		content.Title = item.Title
	}
	return content, nil
}
