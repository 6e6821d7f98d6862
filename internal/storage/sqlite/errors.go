package sqlite

import "errors"

var (
	// ErrInvalidItemID indicates an empty item ID.
	ErrInvalidItemID = errors.New("invalid item ID")
	// ErrItemNotFound indicates that an item cannot be found.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidRank indicates a rank below 1.
	ErrInvalidRank = errors.New("rank must be >= 1")
	// ErrInvalidResource indicates an empty or malformed resource name.
	ErrInvalidResource = errors.New("invalid resource")
)
