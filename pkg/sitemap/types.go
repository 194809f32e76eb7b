// Package sitemap reads federated wiki sites over HTTP: the sitemap of
// recent pages at /system/sitemap.json and individual page documents at
// /<slug>.json.
package sitemap

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Time is a timestamp encoded as milliseconds since the Unix epoch
type Time struct {
	time.Time
}

// UnmarshalJSON accepts a millisecond number. null leaves the zero time.
func (t *Time) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	t.Time = time.UnixMilli(int64(ms)).UTC()
	return nil
}

// MarshalJSON writes milliseconds since the epoch
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UnixMilli())
}

// Entry is one page summary in a sitemap
type Entry struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Date     Time   `json:"date"`
	Synopsis string `json:"synopsis"`
}

// Since reports whether the entry changed at or after cutoff
func (e Entry) Since(cutoff time.Time) bool {
	return !e.Date.Before(cutoff)
}

// Sitemap is the page list of one site, newest first
type Sitemap struct {
	// Name is the site's host
	Name    string
	URL     string
	Entries []Entry
}

// Since returns the entries changed at or after cutoff
func (s *Sitemap) Since(cutoff time.Time) []Entry {
	var out []Entry
	for _, e := range s.Entries {
		if e.Since(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Item is one story element of a page
type Item struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Text string `json:"text,omitempty"`
}

// Change is one journal action
type Change struct {
	Type string `json:"type"`
	Date Time   `json:"date"`
}

// Page is a wiki page document
type Page struct {
	Title   string   `json:"title"`
	Story   []Item   `json:"story"`
	Journal []Change `json:"journal"`
}
