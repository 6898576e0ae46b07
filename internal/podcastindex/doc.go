// Package podcastindex implements a minimal client for the Podcast Index
// directory API (https://podcastindex.org): free-text show search and episode
// listings by feed ID.
package podcastindex
