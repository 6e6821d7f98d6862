package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hallyupress/newsdesk/internal/reorder"
)

var resourcePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateResource reports whether name can be used as a resource.
func ValidateResource(name string) error {
	if !resourcePattern.MatchString(name) {
		return fmt.Errorf("sqlite storage: %w: %q", ErrInvalidResource, name)
	}
	return nil
}

func validateItem(resource string, it reorder.Item) error {
	if err := ValidateResource(resource); err != nil {
		return err
	}
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("sqlite storage: %w", ErrInvalidItemID)
	}
	if strings.TrimSpace(it.Category) == "" {
		return fmt.Errorf("sqlite storage: validation error: category cannot be empty")
	}
	if it.Rank < 1 {
		return fmt.Errorf("sqlite storage: %w: got %d", ErrInvalidRank, it.Rank)
	}
	return nil
}

const itemColumns = `id, category, rank, previous_rank, title, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (reorder.Item, error) {
	var (
		it        reorder.Item
		updatedAt string
	)
	if err := row.Scan(&it.ID, &it.Category, &it.Rank, &it.PreviousRank, &it.Title, &updatedAt); err != nil {
		return reorder.Item{}, err
	}
	it.UpdatedAt = parseTime(updatedAt)
	return it, nil
}

// ListItems returns every item of resource ordered by category, rank,
// then most recent first.
func (s *SQLiteStorage) ListItems(ctx context.Context, resource string) ([]reorder.Item, error) {
	if err := ValidateResource(resource); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items
WHERE resource = ?
ORDER BY category ASC, rank ASC, updated_at DESC, id ASC`, resource)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list items: %w", err)
	}
	defer rows.Close()

	items := []reorder.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: scan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list items: %w", err)
	}
	return items, nil
}

// GetItem returns a single item.
func (s *SQLiteStorage) GetItem(ctx context.Context, resource, id string) (reorder.Item, error) {
	if err := ValidateResource(resource); err != nil {
		return reorder.Item{}, err
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE resource = ? AND id = ?`, resource, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reorder.Item{}, fmt.Errorf("sqlite storage: get item: %w: id %s", ErrItemNotFound, id)
	}
	if err != nil {
		return reorder.Item{}, fmt.Errorf("sqlite storage: get item: %w", err)
	}
	return it, nil
}

// UpdateItem overwrites an existing item.
func (s *SQLiteStorage) UpdateItem(ctx context.Context, resource string, it reorder.Item) error {
	if err := validateItem(resource, it); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE items
SET category = ?, rank = ?, previous_rank = ?, title = ?, updated_at = ?
WHERE resource = ? AND id = ?`,
		it.Category, it.Rank, it.PreviousRank, it.Title, formatTime(it.UpdatedAt), resource, it.ID)
	if err != nil {
		return fmt.Errorf("sqlite storage: update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sqlite storage: update item: %w: id %s", ErrItemNotFound, it.ID)
	}
	return nil
}

// UpsertItem inserts or replaces an item.
func (s *SQLiteStorage) UpsertItem(ctx context.Context, resource string, it reorder.Item) error {
	if err := validateItem(resource, it); err != nil {
		return err
	}
	return upsertItem(ctx, s.db, resource, it)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertItem(ctx context.Context, db execer, resource string, it reorder.Item) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO items (resource, `+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(resource, id) DO UPDATE SET
	category = excluded.category,
	rank = excluded.rank,
	previous_rank = excluded.previous_rank,
	title = excluded.title,
	updated_at = excluded.updated_at`,
		resource, it.ID, it.Category, it.Rank, it.PreviousRank, it.Title, formatTime(it.UpdatedAt))
	if err != nil {
		return fmt.Errorf("sqlite storage: upsert item %s: %w", it.ID, err)
	}
	return nil
}

// CountItems returns the number of items stored for resource.
func (s *SQLiteStorage) CountItems(ctx context.Context, resource string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE resource = ?`, resource).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count items: %w", err)
	}
	return n, nil
}
