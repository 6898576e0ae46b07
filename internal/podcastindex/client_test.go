package podcastindex_test

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"podscribe/internal/podcastindex"
	"podscribe/internal/services"
)

func TestSearchByTermSetsAuthHeadersAndDecodesFeeds(t *testing.T) {
	var gotAuth, gotKey, gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/byterm" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "go time" {
			t.Fatalf("unexpected query term %q", q)
		}
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-Auth-Key")
		gotDate = r.Header.Get("X-Auth-Date")
		fmt.Fprint(w, `{"feeds":[{"id":12,"title":"Go Time","author":"Changelog","url":"https://example.com/feed.xml","categories":{"1":"Technology"}}]}`)
	}))
	defer server.Close()

	client := podcastindex.NewClientWithDoer(server.URL, "key", "secret", server.Client())
	feeds, err := client.SearchByTerm(context.Background(), "go time")
	if err != nil {
		t.Fatalf("SearchByTerm failed: %v", err)
	}
	if len(feeds) != 1 {
		t.Fatalf("expected one feed, got %d", len(feeds))
	}
	if feeds[0].ID != 12 || feeds[0].Title != "Go Time" {
		t.Fatalf("unexpected feed: %+v", feeds[0])
	}

	if gotKey != "key" {
		t.Fatalf("unexpected X-Auth-Key %q", gotKey)
	}
	if gotDate == "" {
		t.Fatal("expected X-Auth-Date to be set")
	}
	want := fmt.Sprintf("%x", sha1.Sum([]byte("key"+"secret"+gotDate)))
	if gotAuth != want {
		t.Fatalf("Authorization mismatch: got %q want %q", gotAuth, want)
	}
}

func TestSearchByTermEmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feeds":[]}`)
	}))
	defer server.Close()

	client := podcastindex.NewClientWithDoer(server.URL, "key", "secret", server.Client())
	feeds, err := client.SearchByTerm(context.Background(), "qwzxv nonsense")
	if err != nil {
		t.Fatalf("expected no error for empty results, got %v", err)
	}
	if len(feeds) != 0 {
		t.Fatalf("expected empty result set, got %d", len(feeds))
	}
}

func TestSearchByTermServerErrorIsSearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	client := podcastindex.NewClientWithDoer(server.URL, "key", "secret", server.Client())
	_, err := client.SearchByTerm(context.Background(), "anything")
	if !errors.Is(err, services.ErrSearch) {
		t.Fatalf("expected search error, got %v", err)
	}
}

func TestEpisodesByFeedPassesIDAndMax(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/episodes/byfeedid" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if id := r.URL.Query().Get("id"); id != "12" {
			t.Fatalf("unexpected feed id %q", id)
		}
		if max := r.URL.Query().Get("max"); max != "5" {
			t.Fatalf("unexpected max %q", max)
		}
		fmt.Fprint(w, `{"items":[{"id":900,"title":"Episode One","datePublished":1700000000,"duration":1800,"enclosureUrl":"https://cdn.example.com/ep1.mp3","enclosureType":"audio/mpeg"}]}`)
	}))
	defer server.Close()

	client := podcastindex.NewClientWithDoer(server.URL, "key", "secret", server.Client())
	episodes, err := client.EpisodesByFeed(context.Background(), 12, 5)
	if err != nil {
		t.Fatalf("EpisodesByFeed failed: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("expected one episode, got %d", len(episodes))
	}
	ep := episodes[0]
	if ep.EnclosureURL != "https://cdn.example.com/ep1.mp3" {
		t.Fatalf("unexpected enclosure: %q", ep.EnclosureURL)
	}
	if ep.Published().Unix() != 1700000000 {
		t.Fatalf("unexpected publish time: %v", ep.Published())
	}
}

func TestUnreachableServerIsSearchError(t *testing.T) {
	client := podcastindex.NewClientWithDoer("http://127.0.0.1:1", "key", "secret", http.DefaultClient)
	_, err := client.SearchByTerm(context.Background(), "anything")
	if !errors.Is(err, services.ErrSearch) {
		t.Fatalf("expected search error, got %v", err)
	}
}
