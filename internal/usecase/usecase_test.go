package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"provenance/internal/domain"
	http_infra "provenance/internal/infra/http"
	"provenance/internal/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>InfoQ</title>
    <item><title>Go 1.24 Released</title><link>https://example.com/1</link></item>
    <item><title>  Structured Logging in Practice  </title><link>https://example.com/2</link></item>
  </channel>
</rss>`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFeedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/xml", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEndpointWorkerCollectsFeed(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	articles := memory.NewArticleGateway([]domain.ArticleRecord{{ID: 1, Title: "stale", Available: true}}, 7)
	w := NewEndpointWorker(http_infra.NewRestClient(time.Second), articles, discardLogger())

	assert.Equal(t, "ready", w.Name())

	err := w.Execute(context.Background(), domain.EndpointTask{Endpoint: srv.URL, Accept: "application/xml"})
	require.NoError(t, err)

	all := articles.FindAll()
	require.Len(t, all, 2)
	assert.Equal(t, "Go 1.24 Released", all[0].Title)
	assert.Equal(t, "Structured Logging in Practice", all[1].Title)
	for _, a := range all {
		assert.True(t, a.Available)
	}
}

func TestEndpointWorkerIsNotIdempotent(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	articles := memory.NewArticleGateway(nil, 7)
	w := NewEndpointWorker(http_infra.NewRestClient(time.Second), articles, discardLogger())
	task := domain.EndpointTask{Endpoint: srv.URL, Accept: "application/xml"}

	require.NoError(t, w.Execute(context.Background(), task))
	first := articles.FindAll()
	require.NoError(t, w.Execute(context.Background(), task))
	second := articles.FindAll()

	require.Len(t, second, len(first))
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.NotEqual(t, first[0].ID, second[0].ID, "every run assigns new article ids")
}

func TestEndpointWorkerFailuresKeepArticles(t *testing.T) {
	testCases := []struct {
		name   string
		body   string
		status int
	}{
		{name: "server error", body: "oops", status: http.StatusInternalServerError},
		{name: "not found", body: "missing", status: http.StatusNotFound},
		{name: "not rss", body: "<html><body>hi</body></html>", status: http.StatusOK},
		{name: "malformed xml", body: "<rss><channel>", status: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newFeedServer(t, tc.body, tc.status)
			articles := memory.NewArticleGateway([]domain.ArticleRecord{{ID: 1, Title: "kept", Available: true}}, 7)
			w := NewEndpointWorker(http_infra.NewRestClient(time.Second), articles, discardLogger())

			err := w.Execute(context.Background(), domain.EndpointTask{Endpoint: srv.URL, Accept: "application/xml"})

			assert.Error(t, err)
			assert.Equal(t, []domain.ArticleRecord{{ID: 1, Title: "kept", Available: true}}, articles.FindAll())
		})
	}
}

type recordingArticles struct {
	domain.ArticleRepository
	replaced [][]string
	partial  int
}

func (r *recordingArticles) Replace(titles []string) []domain.ArticleRecord {
	r.replaced = append(r.replaced, titles)
	return r.ArticleRepository.Replace(titles)
}

func (r *recordingArticles) Save(title string) domain.ArticleRecord {
	r.partial++
	return r.ArticleRepository.Save(title)
}

func (r *recordingArticles) Clear() {
	r.partial++
	r.ArticleRepository.Clear()
}

func TestEndpointWorkerReplacesInOneStep(t *testing.T) {
	srv := newFeedServer(t, feedXML, http.StatusOK)
	articles := &recordingArticles{ArticleRepository: memory.NewArticleGateway(nil, 7)}
	w := NewEndpointWorker(http_infra.NewRestClient(time.Second), articles, discardLogger())

	require.NoError(t, w.Execute(context.Background(), domain.EndpointTask{Endpoint: srv.URL, Accept: "application/xml"}))

	assert.Equal(t, [][]string{{"Go 1.24 Released", "Structured Logging in Practice"}}, articles.replaced)
	assert.Zero(t, articles.partial, "the store is never cleared and refilled piecemeal")
}

type stubFetcher struct {
	err error
}

func (f stubFetcher) Get(context.Context, string, string) ([]byte, error) {
	return nil, f.err
}

func TestEndpointWorkerWrapsFetchError(t *testing.T) {
	sentinel := errors.New("connection refused")
	w := NewEndpointWorker(stubFetcher{err: sentinel}, memory.NewArticleGateway(nil, 1), discardLogger())

	err := w.Execute(context.Background(), domain.EndpointTask{Endpoint: "http://feeds.invalid"})

	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "http://feeds.invalid")
}

func TestEndpointWorkFinder(t *testing.T) {
	endpoints := memory.NewEndpointGateway([]domain.EndpointRecord{
		{ID: 1, URL: "http://a", Status: "ready"},
		{ID: 2, URL: "http://b", Status: "paused"},
	})
	f := NewEndpointWorkFinder(endpoints, "", discardLogger())

	tasks, err := f.FindRequested(context.Background(), "ready")
	require.NoError(t, err)
	assert.Equal(t, []domain.EndpointTask{{Endpoint: "http://a", Accept: DefaultEndpointAccept}}, tasks)

	none, err := f.FindRequested(context.Background(), "echo")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.NoError(t, f.MarkCompleted(context.Background(), tasks[0]))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.FindRequested(ctx, "ready")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArticleService(t *testing.T) {
	repo := memory.NewArticleGateway([]domain.ArticleRecord{
		{ID: 10101, Title: "one", Available: true},
		{ID: 10106, Title: "two", Available: false},
	}, 1)
	s := NewArticleService(repo, discardLogger())

	assert.Equal(t, []domain.ArticleInfo{{ID: 10101, Title: "one"}, {ID: 10106, Title: "two"}}, s.List(context.Background()))
	assert.Equal(t, []domain.ArticleInfo{{ID: 10101, Title: "one"}}, s.ListAvailable(context.Background()))

	repo.Clear()
	assert.Empty(t, s.List(context.Background()))
}

func TestHistoryService(t *testing.T) {
	repo := memory.NewOutcomeRepository(5, discardLogger())
	now := time.Now()
	outcome := domain.Success("ready", now, now)
	outcome.ID = "abc"
	require.NoError(t, repo.Save(context.Background(), outcome))

	s := NewHistoryService(repo)
	records, err := s.ListHistory(context.Background(), "ready", 1, 20)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc", records[0].ID)

	_, err = s.ListHistory(context.Background(), "ready", 0, 20)
	assert.Error(t, err)
}
