package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hallyupress/newsdesk/internal/reorder"
)

var seedNamespace = uuid.MustParse("6f1d2c0e-8a0b-4f5e-9a57-3c1b8e4d2a10")

var seedTitles = map[string][]string{
	"drama": {
		"Queen of Tears finale breaks cable record",
		"Moving season two confirmed",
		"Lovely Runner cast reunites for fan meeting",
		"Signal sequel begins filming",
	},
	"music": {
		"NewJeans tops the weekly digital chart",
		"IVE announces world tour dates",
		"aespa teaser racks up ten million views",
		"SEVENTEEN sweeps music show wins",
		"BTS member solo album pre-orders open",
	},
	"celeb": {
		"IU named brand ambassador",
		"Airport fashion roundup",
		"Variety show guest lineup revealed",
	},
}

var seedOrder = []string{"drama", "music", "celeb"}

// SeedID returns the stable ID of a demo item.
func SeedID(category, title string) string {
	return uuid.NewSHA1(seedNamespace, []byte(category+"/"+title)).String()[:8]
}

// SeedItems returns demo items, ranked in listing order, with UpdatedAt
// spread backwards from now so that recency sorting reshuffles them.
func SeedItems(now time.Time) []reorder.Item {
	var items []reorder.Item
	for _, category := range seedOrder {
		titles := seedTitles[category]
		for i, title := range titles {
			items = append(items, reorder.Item{
				ID:        SeedID(category, title),
				Category:  category,
				Rank:      i + 1,
				Title:     title,
				UpdatedAt: now.Add(-time.Duration((i*7)%len(titles)+1) * time.Hour).UTC(),
			})
		}
	}
	return items
}

// Upserter stores seed items.
type Upserter interface {
	UpsertItem(ctx context.Context, resource string, it reorder.Item) error
}

// Seed writes SeedItems into store. Running it twice resets the demo data.
func Seed(ctx context.Context, store Upserter, resource string, now time.Time) (int, error) {
	items := SeedItems(now)
	for _, it := range items {
		if err := store.UpsertItem(ctx, resource, it); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
	}
	return len(items), nil
}
