package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/hallyupress/newsdesk/internal/errors"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestServer(t *testing.T) (*Server, *sqlite.SQLiteStorage) {
	t.Helper()
	db, err := sqlite.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = Seed(context.Background(), db, "charts", seedNow)
	require.NoError(t, err)
	return NewServer(db, "127.0.0.1:0", logging.Nop()), db
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleHealthz(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := do(t, srv.Handler(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestHandleListReturnsSeededItems(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := do(t, srv.Handler(), http.MethodGet, "/charts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []reorder.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, len(SeedItems(seedNow)))

	w = do(t, srv.Handler(), http.MethodGet, "/empty", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandleGetItem(t *testing.T) {
	srv, _ := setupTestServer(t)
	id := SeedID("music", "IVE announces world tour dates")

	w := do(t, srv.Handler(), http.MethodGet, "/charts/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var it reorder.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &it))
	assert.Equal(t, 2, it.Rank)

	w = do(t, srv.Handler(), http.MethodGet, "/charts/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleUpdateMergesFields(t *testing.T) {
	srv, db := setupTestServer(t)
	id := SeedID("drama", "Signal sequel begins filming")

	w := do(t, srv.Handler(), http.MethodPut, "/charts/"+id, map[string]any{"rank": 1, "previousRank": 4})
	require.Equal(t, http.StatusOK, w.Code)

	got, err := db.GetItem(context.Background(), "charts", id)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rank)
	assert.Equal(t, 4, got.PreviousRank)
	assert.Equal(t, "Signal sequel begins filming", got.Title)
	assert.Equal(t, "drama", got.Category)
}

func TestHandleUpdateErrors(t *testing.T) {
	srv, _ := setupTestServer(t)
	id := SeedID("drama", "Signal sequel begins filming")

	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{"bad json", "/charts/" + id, "{", http.StatusBadRequest},
		{"id mismatch", "/charts/" + id, map[string]any{"id": "other", "rank": 1}, http.StatusBadRequest},
		{"rank zero", "/charts/" + id, map[string]any{"rank": 0}, http.StatusBadRequest},
		{"missing item", "/charts/missing", map[string]any{"rank": 1}, http.StatusNotFound},
		{"bad resource", "/Charts!/" + id, map[string]any{"rank": 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv.Handler(), http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandlerEchoesRequestID(t *testing.T) {
	srv, _ := setupTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/charts", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := setupTestServer(t)
	w := do(t, srv.Handler(), http.MethodDelete, "/charts/x", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServiceAgainstServerKeepsRanksDense(t *testing.T) {
	srv, db := setupTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client, err := NewClient(ClientOptions{BaseURL: ts.URL, Resource: "charts", Logger: logging.Nop()})
	require.NoError(t, err)
	toasts := apperrors.NewTUIHandler(nil)
	svc := reorder.NewService(client, reorder.Options{Concurrency: 3, Notifier: toasts, Logger: logging.Nop()})
	ctx := context.Background()
	require.NoError(t, svc.Reload(ctx))

	last := SeedID("music", "BTS member solo album pre-orders open")
	first := SeedID("music", "NewJeans tops the weekly digital chart")
	summary, err := svc.DragReorder(ctx, last, first)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Succeeded)
	assert.Zero(t, summary.Failed)

	items, err := db.ListItems(ctx, "charts")
	require.NoError(t, err)
	ranks := map[int]string{}
	for _, it := range reorder.CategoryView(items, "music") {
		_, dup := ranks[it.Rank]
		assert.False(t, dup, "duplicate rank %d", it.Rank)
		ranks[it.Rank] = it.ID
	}
	assert.Len(t, ranks, 5)
	assert.Equal(t, last, ranks[1])

	view := reorder.CategoryView(svc.Items(), "music")
	assert.Equal(t, last, view[0].ID, "board reflects server truth after resync")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv, _ := setupTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	_, db := setupTestServer(t)
	n, err := Seed(context.Background(), db, "charts", seedNow)
	require.NoError(t, err)

	count, err := db.CountItems(context.Background(), "charts")
	require.NoError(t, err)
	assert.Equal(t, n, count)
}
