package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Headline is a news headline used as prompt context.
type Headline struct {
	Title       string
	Link        string
	PublishedAt *time.Time
}

// HeadlineRepository fetches recent headlines for a ticker.
type HeadlineRepository interface {
	Recent(ctx context.Context, ticker string, since *time.Time) ([]Headline, error)
}

type rssHeadlineRepository struct {
	urlTemplate string
	maxItems    int
	parser      *gofeed.Parser
}

// NewRSSHeadlineRepository reads headlines from an RSS feed. urlTemplate must
// contain one %s, which is replaced by the escaped ticker.
func NewRSSHeadlineRepository(urlTemplate string, maxItems int) HeadlineRepository {
	parser := gofeed.NewParser()
	parser.UserAgent = "stock-digest/1.0"
	return &rssHeadlineRepository{
		urlTemplate: urlTemplate,
		maxItems:    maxItems,
		parser:      parser,
	}
}

func (r *rssHeadlineRepository) Recent(ctx context.Context, ticker string, since *time.Time) ([]Headline, error) {
	feedURL := fmt.Sprintf(r.urlTemplate, url.QueryEscape(ticker))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse headline feed: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -7)
	if since != nil {
		cutoff = *since
	}

	var headlines []Headline
	for _, item := range feed.Items {
		if r.maxItems > 0 && len(headlines) >= r.maxItems {
			break
		}
		if item.PublishedParsed != nil && item.PublishedParsed.Before(cutoff) {
			continue
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, Headline{
			Title:       title,
			Link:        item.Link,
			PublishedAt: item.PublishedParsed,
		})
	}
	return headlines, nil
}
