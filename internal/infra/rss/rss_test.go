package rss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitles(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>InfoQ - Development</title>
    <item><title>First</title><link>https://example.com/1</link></item>
    <item><title>   </title></item>
    <item><title><![CDATA[  Second & more  ]]></title></item>
  </channel>
</rss>`)

	feed, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "InfoQ - Development", feed.Channel.Title)
	assert.Len(t, feed.Channel.Items, 3)
	assert.Equal(t, "https://example.com/1", feed.Channel.Items[0].Link)
	assert.Equal(t, []string{"First", "", "Second & more"}, feed.Titles())
}

func TestTitlesKeepsUntitledItems(t *testing.T) {
	feed, err := Parse([]byte(`<rss><channel><item><link>https://example.com/a</link></item><item><title>B</title></item></channel></rss>`))
	require.NoError(t, err)

	assert.Equal(t, []string{"", "B"}, feed.Titles(), "every item maps to one title")
}

func TestParseEmptyChannel(t *testing.T) {
	feed, err := Parse([]byte(`<rss><channel></channel></rss>`))
	require.NoError(t, err)
	assert.Empty(t, feed.Titles())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "truncated", data: "<rss><channel>"},
		{name: "wrong root", data: "<feed><entry/></feed>"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}
