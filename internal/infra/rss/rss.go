// Package rss decodes the subset of RSS 2.0 the endpoint worker reads.
package rss

import (
	"encoding/xml"
	"fmt"
	"strings"
)

type Feed struct {
	XMLName xml.Name `xml:"rss"`
	Channel Channel  `xml:"channel"`
}

type Channel struct {
	Title string `xml:"title"`
	Items []Item `xml:"item"`
}

type Item struct {
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

// Parse decodes an RSS document.
func Parse(data []byte) (*Feed, error) {
	var feed Feed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse rss: %w", err)
	}
	return &feed, nil
}

// Titles returns one trimmed title per item in document order. Items
// without a title yield an empty string rather than being skipped.
func (f *Feed) Titles() []string {
	titles := make([]string, 0, len(f.Channel.Items))
	for _, item := range f.Channel.Items {
		titles = append(titles, strings.TrimSpace(item.Title))
	}
	return titles
}
