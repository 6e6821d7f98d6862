// Package reorder computes and persists rank changes for same-category
// rows of the back office (chart entries, news, reviews, vote campaigns).
//
// Planning is pure: the Plan* functions take a snapshot of the board and
// return the items whose rank must be rewritten. Service applies a plan
// optimistically, sends the updates concurrently and then resynchronises
// with the server.
package reorder

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrItemNotFound indicates that an item ID is not on the board.
	ErrItemNotFound = errors.New("item not found")
	// ErrCrossCategory indicates a drag between two different categories.
	ErrCrossCategory = errors.New("items belong to different categories")
	// ErrInvalidDirection indicates a direction other than up or down.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Item is one orderable row. Rank is unique within Category.
type Item struct {
	ID           string    `json:"id"`
	Category     string    `json:"category"`
	Rank         int       `json:"rank"`
	PreviousRank int       `json:"previousRank"`
	Title        string    `json:"title,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Direction is the direction of a single-step move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection parses "up" or "down" case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", fmt.Errorf("%w: %q (must be up or down)", ErrInvalidDirection, s)
	}
}

// withRank returns a copy of it moved to rank, remembering the old rank.
func (it Item) withRank(rank int) Item {
	it.PreviousRank = it.Rank
	it.Rank = rank
	return it
}
