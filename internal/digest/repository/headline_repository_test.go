package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>AAPL headlines</title>
  <item><title>Apple beats estimates</title><link>https://news.test/1</link><pubDate>Mon, 02 Mar 2026 10:00:00 GMT</pubDate></item>
  <item><title>Apple supplier update</title><link>https://news.test/2</link><pubDate>Sun, 01 Mar 2026 10:00:00 GMT</pubDate></item>
  <item><title>Old news</title><link>https://news.test/3</link><pubDate>Mon, 02 Feb 2026 10:00:00 GMT</pubDate></item>
</channel>
</rss>`

func TestRSSHeadlineRepository_Recent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("s"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	since := time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC)

	repo := NewRSSHeadlineRepository(srv.URL+"/rss?s=%s", 5)
	headlines, err := repo.Recent(context.Background(), "AAPL", &since)
	require.NoError(t, err)
	require.Len(t, headlines, 2)
	assert.Equal(t, "Apple beats estimates", headlines[0].Title)
	assert.Equal(t, "https://news.test/2", headlines[1].Link)

	limited := NewRSSHeadlineRepository(srv.URL+"/rss?s=%s", 1)
	headlines, err = limited.Recent(context.Background(), "AAPL", &since)
	require.NoError(t, err)
	assert.Len(t, headlines, 1)
}

func TestRSSHeadlineRepository_FeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := NewRSSHeadlineRepository(srv.URL+"/rss?s=%s", 5)
	_, err := repo.Recent(context.Background(), "AAPL", nil)
	assert.Error(t, err)
}
