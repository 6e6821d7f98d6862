package reorder

import (
	"fmt"
	"sort"
)

// CanMove reports whether a single-step move is possible, i.e. the item is
// not already at that edge of its category.
func CanMove(items []Item, id string, dir Direction) bool {
	it, ok := find(items, id)
	if !ok {
		return false
	}
	view := CategoryView(items, it.Category)
	idx := indexOf(view, id)
	switch dir {
	case Up:
		return idx > 0
	case Down:
		return idx >= 0 && idx < len(view)-1
	default:
		return false
	}
}

// PlanMoveOneStep plans a single-step move of id within its category.
//
// Moving up takes the preceding item's rank minus one (floored at 1);
// moving down takes the following item's rank plus one. Only the moved item
// is rewritten. At either edge of the category the plan is empty.
func PlanMoveOneStep(items []Item, id string, dir Direction) ([]Item, error) {
	if dir != Up && dir != Down {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	it, ok := find(items, id)
	if !ok {
		return nil, fmt.Errorf("move %s: %w", id, ErrItemNotFound)
	}
	view := CategoryView(items, it.Category)
	idx := indexOf(view, id)

	var rank int
	switch {
	case dir == Up && idx > 0:
		rank = max(view[idx-1].Rank-1, 1)
	case dir == Down && idx < len(view)-1:
		rank = view[idx+1].Rank + 1
	default:
		return nil, nil
	}
	return []Item{it.withRank(rank)}, nil
}

// PlanDragReorder plans dropping draggedID onto targetID. The dragged item
// takes the target's position and every item of the category is assigned
// the dense ranks 1..N.
func PlanDragReorder(items []Item, draggedID, targetID string) ([]Item, error) {
	dragged, ok := find(items, draggedID)
	if !ok {
		return nil, fmt.Errorf("drag %s: %w", draggedID, ErrItemNotFound)
	}
	target, ok := find(items, targetID)
	if !ok {
		return nil, fmt.Errorf("drop on %s: %w", targetID, ErrItemNotFound)
	}
	if dragged.Category != target.Category {
		return nil, fmt.Errorf("drag %s (%s) onto %s (%s): %w",
			draggedID, dragged.Category, targetID, target.Category, ErrCrossCategory)
	}
	if draggedID == targetID {
		return nil, nil
	}

	view := CategoryView(items, dragged.Category)
	from := indexOf(view, draggedID)
	to := indexOf(view, targetID)

	reordered := make([]Item, 0, len(view))
	reordered = append(reordered, view[:from]...)
	reordered = append(reordered, view[from+1:]...)
	reordered = append(reordered[:to], append([]Item{view[from]}, reordered[to:]...)...)

	return assignDenseRanks(reordered), nil
}

// PlanSortByRecency plans a per-category re-rank by UpdatedAt descending.
// Categories are processed in name order.
func PlanSortByRecency(items []Item) []Item {
	categories := Categories(items)
	sort.Strings(categories)

	var updates []Item
	for _, c := range categories {
		var inCategory []Item
		for _, it := range items {
			if it.Category == c {
				inCategory = append(inCategory, it)
			}
		}
		updates = append(updates, assignDenseRanks(SortByRecency(inCategory))...)
	}
	return updates
}

func assignDenseRanks(ordered []Item) []Item {
	out := make([]Item, len(ordered))
	for i, it := range ordered {
		out[i] = it.withRank(i + 1)
	}
	return out
}

// Apply returns a copy of items with the planned updates merged in by ID.
func Apply(items []Item, updates []Item) []Item {
	byID := make(map[string]Item, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}
	out := make([]Item, len(items))
	for i, it := range items {
		if u, ok := byID[it.ID]; ok {
			it = u
		}
		out[i] = it
	}
	return out
}
