package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "newsdesk.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.Error(t, err)
}

func TestNewSQLiteStorageIsReopenable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "newsdesk.db")
	s, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Session("").Set("homeScrollPosition", "120"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, ok, err := s.Session("").Get("homeScrollPosition")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "120", v)
}

func TestSessionStoreCRUD(t *testing.T) {
	ss := newTestStorage(t).Session("tab-1")

	_, ok, err := ss.Get("dramaScrollPosition")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, ss.Set("dramaScrollPosition", "10"))
	require.NoError(t, ss.Set("dramaScrollPosition", "20"))
	v, ok, err := ss.Get("dramaScrollPosition")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "20", v)

	require.NoError(t, ss.Remove("dramaScrollPosition"))
	require.NoError(t, ss.Remove("dramaScrollPosition"))
	_, ok, err = ss.Get("dramaScrollPosition")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionStoreKeysAreScoped(t *testing.T) {
	s := newTestStorage(t)
	a := s.Session("tab-a")
	b := s.Session("tab-b")

	require.NoError(t, a.Set("isBackToHome", "true"))
	require.NoError(t, a.Set("homeScrollPosition", "5"))
	require.NoError(t, b.Set("musicScrollPosition", "7"))

	keys, err := a.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"homeScrollPosition", "isBackToHome"}, keys)

	_, ok, err := b.Get("homeScrollPosition")
	require.NoError(t, err)
	require.False(t, ok)

	all, err := s.Session("").Keys()
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func testItem(id, category string, rank int) reorder.Item {
	return reorder.Item{
		ID:        id,
		Category:  category,
		Rank:      rank,
		Title:     "title " + id,
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestUpsertAndListItemsOrdering(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertItem(ctx, "charts", testItem("m2", "music", 2)))
	require.NoError(t, s.UpsertItem(ctx, "charts", testItem("d1", "drama", 1)))
	require.NoError(t, s.UpsertItem(ctx, "charts", testItem("m1", "music", 1)))
	require.NoError(t, s.UpsertItem(ctx, "news", testItem("n1", "news", 1)))

	items, err := s.ListItems(ctx, "charts")
	require.NoError(t, err)
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	require.Equal(t, []string{"d1", "m1", "m2"}, ids)
	require.True(t, items[0].UpdatedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))

	n, err := s.CountItems(ctx, "news")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUpdateItem(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	require.NoError(t, s.UpsertItem(ctx, "charts", testItem("a", "music", 1)))

	it := testItem("a", "music", 3)
	it.PreviousRank = 1
	require.NoError(t, s.UpdateItem(ctx, "charts", it))

	got, err := s.GetItem(ctx, "charts", "a")
	require.NoError(t, err)
	require.Equal(t, 3, got.Rank)
	require.Equal(t, 1, got.PreviousRank)

	err = s.UpdateItem(ctx, "charts", testItem("missing", "music", 1))
	require.True(t, errors.Is(err, ErrItemNotFound))

	_, err = s.GetItem(ctx, "charts", "missing")
	require.True(t, errors.Is(err, ErrItemNotFound))
}

func TestItemValidation(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.UpsertItem(ctx, "charts", testItem("", "music", 1))
	require.True(t, errors.Is(err, ErrInvalidItemID))

	err = s.UpsertItem(ctx, "charts", testItem("a", "music", 0))
	require.True(t, errors.Is(err, ErrInvalidRank))

	err = s.UpsertItem(ctx, "charts", testItem("a", " ", 1))
	require.Error(t, err)

	_, err = s.ListItems(ctx, "../etc")
	require.True(t, errors.Is(err, ErrInvalidResource))
}

func TestImportItemsKeepsLatestAndSkipsMalformed(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	input := `[
		{"id":"a","category":"music","rank":1,"title":"first"},
		{"id":"a","category":"music","rank":2,"title":"override"},
		{"id":"b","category":"music","rank":1},
		{"id":"","category":"music","rank":3},
		{"id":"c","category":"music","rank":0},
		"not an object"
	]`

	stats, err := s.ImportItems(ctx, strings.NewReader(input), ImportOptions{Resource: "charts"})
	require.NoError(t, err)
	require.Equal(t, 6, stats.TotalRows)
	require.Equal(t, 2, stats.ImportedRows)
	require.Equal(t, 3, stats.SkippedRows)
	require.Equal(t, 1, stats.DuplicateRows)
	require.Len(t, stats.Warnings, 3)

	got, err := s.GetItem(ctx, "charts", "a")
	require.NoError(t, err)
	require.Equal(t, "override", got.Title)
	require.Equal(t, 2, got.Rank)

	// idempotent
	_, err = s.ImportItems(ctx, strings.NewReader(input), ImportOptions{Resource: "charts"})
	require.NoError(t, err)
	n, err := s.CountItems(ctx, "charts")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestImportItemsDryRunDoesNotWrite(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	stats, err := s.ImportItems(ctx, strings.NewReader(`[{"id":"a","category":"news","rank":1}]`),
		ImportOptions{Resource: "news", DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, stats.ImportedRows)

	n, err := s.CountItems(ctx, "news")
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

func TestImportItemsRejectsNonArray(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.ImportItems(context.Background(), strings.NewReader(`{"id":"a"}`), ImportOptions{Resource: "news"})
	require.Error(t, err)
}
