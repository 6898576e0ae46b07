package podcastindex

import "time"

// Podcast is one show returned by a directory search.
type Podcast struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Author      string            `json:"author"`
	Description string            `json:"description"`
	FeedURL     string            `json:"url"`
	Categories  map[string]string `json:"categories"`
}

// Episode is one entry in a show's feed, pointing at downloadable audio.
type Episode struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	DatePublished int64  `json:"datePublished"`
	Duration      int    `json:"duration"`
	EnclosureURL  string `json:"enclosureUrl"`
	EnclosureType string `json:"enclosureType"`
}

// Published returns the episode publish date as a time.Time.
func (e Episode) Published() time.Time {
	return time.Unix(e.DatePublished, 0)
}

type searchResponse struct {
	Feeds []Podcast `json:"feeds"`
}

type episodesResponse struct {
	Items []Episode `json:"items"`
}
