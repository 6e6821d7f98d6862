package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(ClientOptions{BaseURL: baseURL, Resource: "charts", Timeout: 2 * time.Second, Logger: logging.Nop()})
	require.NoError(t, err)
	return c
}

func TestNewClientValidatesOptions(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		resource string
		wantErr  bool
	}{
		{"ok", "http://127.0.0.1:8787", "charts", false},
		{"trailing slash", "https://api.example.com/v1/", "/news/", false},
		{"no scheme", "127.0.0.1:8787", "charts", true},
		{"ftp", "ftp://example.com", "charts", true},
		{"empty resource", "http://example.com", " ", true},
		{"nested resource", "http://example.com", "a/b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(ClientOptions{BaseURL: tt.baseURL, Resource: tt.resource, Logger: logging.Nop()})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientListDecodesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/charts", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		assert.Equal(t, version.UserAgent(), r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"a","category":"music","rank":2,"previousRank":1,"title":"IVE"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/v1/")
	items, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, reorder.Item{ID: "a", Category: "music", Rank: 2, PreviousRank: 1, Title: "IVE"}, items[0])
}

func TestClientUpdateSendsRankAndPreviousRank(t *testing.T) {
	var (
		mu   sync.Mutex
		body map[string]any
		path string
		ct   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		path = r.URL.EscapedPath()
		ct = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Update(context.Background(), reorder.Item{ID: "news 1", Category: "drama", Rank: 1, PreviousRank: 3})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "/charts/news%201", path)
	assert.Equal(t, "application/json", ct)
	assert.EqualValues(t, 1, body["rank"])
	assert.EqualValues(t, 3, body["previousRank"])
	assert.Equal(t, "drama", body["category"])
}

func TestClientNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rank conflict", http.StatusConflict)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Update(context.Background(), reorder.Item{ID: "a", Category: "music", Rank: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Code)
	assert.Equal(t, "rank conflict", se.Body)
	assert.Contains(t, se.Error(), "409 Conflict")

	_, err = c.List(context.Background())
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestClientUpdateRejectsEmptyID(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	err := c.Update(context.Background(), reorder.Item{Category: "music", Rank: 1})
	assert.Error(t, err)
}

func TestClientHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "deadline"))
}
