package reorder

import (
	"sort"
)

// SortByRank returns a copy of items ordered by rank ascending. Items with
// equal rank keep their relative input order.
func SortByRank(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

// SortByRecency returns a copy of items ordered by UpdatedAt descending,
// ties broken by ID so the result is deterministic.
func SortByRecency(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

// CategoryView returns the items of category in display order.
func CategoryView(items []Item, category string) []Item {
	view := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Category == category {
			view = append(view, it)
		}
	}
	return SortByRank(view)
}

// Categories returns the distinct categories in first-seen order.
func Categories(items []Item) []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// Board orders items by category (first-seen order) and then by rank.
func Board(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, c := range Categories(items) {
		out = append(out, CategoryView(items, c)...)
	}
	return out
}

func indexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func find(items []Item, id string) (Item, bool) {
	if i := indexOf(items, id); i >= 0 {
		return items[i], true
	}
	return Item{}, false
}
