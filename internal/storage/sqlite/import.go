package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hallyupress/newsdesk/internal/reorder"
)

// ImportOptions configures ImportItems.
type ImportOptions struct {
	Resource string
	DryRun   bool
}

// ImportStats summarizes an import run.
type ImportStats struct {
	TotalRows     int
	ImportedRows  int
	SkippedRows   int
	DuplicateRows int
	Warnings      []string
}

// ImportItems reads a JSON array of items from r and upserts the last valid
// row per ID.
//
// Malformed rows are skipped with warnings instead of aborting the import.
// Writes happen inside a single transaction and are idempotent.
func (s *SQLiteStorage) ImportItems(ctx context.Context, r io.Reader, opts ImportOptions) (ImportStats, error) {
	stats := ImportStats{}
	if err := ValidateResource(opts.Resource); err != nil {
		return stats, err
	}

	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return stats, fmt.Errorf("import: decode items: %w", err)
	}

	latest := make(map[string]reorder.Item)
	for i, msg := range raw {
		stats.TotalRows++
		var it reorder.Item
		if err := json.Unmarshal(msg, &it); err != nil {
			stats.SkippedRows++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("row %d: malformed item", i+1))
			continue
		}
		if err := validateItem(opts.Resource, it); err != nil {
			stats.SkippedRows++
			stats.Warnings = append(stats.Warnings, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if _, exists := latest[it.ID]; exists {
			stats.DuplicateRows++
		}
		latest[it.ID] = it
	}

	if opts.DryRun {
		stats.ImportedRows = len(latest)
		return stats, nil
	}

	if err := s.upsertAll(ctx, opts.Resource, latest); err != nil {
		return stats, err
	}
	stats.ImportedRows = len(latest)
	return stats, nil
}

func (s *SQLiteStorage) upsertAll(ctx context.Context, resource string, byID map[string]reorder.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("import: begin transaction: %w", err)
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := upsertItem(ctx, tx, resource, byID[id]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("import: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("import: commit transaction: %w", err)
	}
	return nil
}
