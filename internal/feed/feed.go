// Package feed lists podcast episodes directly from an RSS/Atom feed URL,
// bypassing the directory API when the caller already knows the feed.
package feed

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"podscribe/internal/services"
)

// Episode is one feed item carrying a downloadable audio enclosure.
type Episode struct {
	Title        string
	Published    time.Time
	Duration     string
	EnclosureURL string
	MIMEType     string
}

// Parser resolves feed URLs into episode lists.
type Parser struct {
	parser *gofeed.Parser
}

// NewParser returns a feed parser with default settings.
func NewParser() *Parser {
	return &Parser{parser: gofeed.NewParser()}
}

// Episodes fetches and parses the feed at feedURL, returning up to max items
// that carry audio enclosures, newest first per feed order. Items without an
// enclosure are skipped.
func (p *Parser) Episodes(ctx context.Context, feedURL string, max int) ([]Episode, error) {
	parsed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, services.Wrap(services.ErrSearch, "episodes", "parse feed", feedURL, err)
	}
	if parsed == nil {
		return nil, services.Wrap(services.ErrSearch, "episodes", "parse feed", "feed parser returned nothing", nil)
	}

	episodes := make([]Episode, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		enclosure := audioEnclosure(item)
		if enclosure == nil {
			continue
		}
		ep := Episode{
			Title:        strings.TrimSpace(item.Title),
			EnclosureURL: enclosure.URL,
			MIMEType:     enclosure.Type,
		}
		if item.PublishedParsed != nil {
			ep.Published = *item.PublishedParsed
		}
		if item.ITunesExt != nil {
			ep.Duration = strings.TrimSpace(item.ITunesExt.Duration)
		}
		episodes = append(episodes, ep)
		if max > 0 && len(episodes) >= max {
			break
		}
	}
	return episodes, nil
}

func audioEnclosure(item *gofeed.Item) *gofeed.Enclosure {
	for _, enclosure := range item.Enclosures {
		if enclosure == nil || strings.TrimSpace(enclosure.URL) == "" {
			continue
		}
		if enclosure.Type == "" || strings.HasPrefix(enclosure.Type, "audio/") {
			return enclosure
		}
	}
	return nil
}
