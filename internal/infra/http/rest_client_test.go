package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/xml", r.Header.Get("Accept"))
		_, _ = io.WriteString(w, "<rss/>")
	}))
	defer srv.Close()

	body, err := NewRestClient(time.Second).Get(context.Background(), srv.URL, "application/xml")

	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(body))
}

func TestRestClientStatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := NewRestClient(time.Second).Get(context.Background(), srv.URL, "")
		srv.Close()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnexpectedStatus)
		assert.Contains(t, err.Error(), http.StatusText(status))
	}
}

func TestRestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewRestClient(50*time.Millisecond).Get(context.Background(), srv.URL, "")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnexpectedStatus)
}

func TestRestClientInvalidURL(t *testing.T) {
	_, err := NewRestClient(time.Second).Get(context.Background(), "://bad", "")
	assert.Error(t, err)
}
