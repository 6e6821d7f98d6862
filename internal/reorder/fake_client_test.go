package reorder

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// fakeClient is an in-memory CRUD API that stores whatever it is sent.
type fakeClient struct {
	mu       sync.Mutex
	items    map[string]Item
	order    []string
	fail     map[string]bool
	listErr  error
	updates  []Item
	lists    int
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	gate     chan struct{}
}

func newFakeClient(items ...Item) *fakeClient {
	c := &fakeClient{items: make(map[string]Item), fail: make(map[string]bool)}
	for _, it := range items {
		c.items[it.ID] = it
		c.order = append(c.order, it.ID)
	}
	return c
}

func (c *fakeClient) List(ctx context.Context) ([]Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out, nil
}

func (c *fakeClient) Update(ctx context.Context, item Item) error {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		seen := c.maxSeen.Load()
		if n <= seen || c.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if c.gate != nil {
		<-c.gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, item)
	if c.fail[item.ID] {
		return fmt.Errorf("PUT %s: status 500", item.ID)
	}
	c.items[item.ID] = item
	return nil
}

func (c *fakeClient) updateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.updates)
}

func (c *fakeClient) listCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lists
}
