package reorder

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Failure records one update that did not succeed.
type Failure struct {
	ID  string
	Err error
}

// Summary is the settled outcome of a batch of updates.
type Summary struct {
	Succeeded int
	Failed    int
	Failures  []Failure
}

// Total returns the number of updates attempted.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed
}

// String renders the toast text, e.g. "3 succeeded, 1 failed".
func (s Summary) String() string {
	return fmt.Sprintf("%d succeeded, %d failed", s.Succeeded, s.Failed)
}

// Updater persists one item's new rank.
type Updater interface {
	Update(ctx context.Context, item Item) error
}

// ExecuteBatch sends every update concurrently, at most limit at a time,
// and waits for all of them to settle. Failures are tallied, never
// propagated, and do not cancel the remaining requests.
func ExecuteBatch(ctx context.Context, updater Updater, updates []Item, limit int) Summary {
	errs := make([]error, len(updates))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, u := range updates {
		g.Go(func() error {
			errs[i] = updater.Update(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	var summary Summary
	for i, err := range errs {
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, Failure{ID: updates[i].ID, Err: err})
			continue
		}
		summary.Succeeded++
	}
	return summary
}
