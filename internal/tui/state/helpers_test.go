package state

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hallyupress/newsdesk/internal/clock"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/session"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// boardClient is an in-memory CRUD API ordered the way the server orders.
type boardClient struct {
	mu    sync.Mutex
	items map[string]reorder.Item
	lists int
}

func newBoardClient(items ...reorder.Item) *boardClient {
	c := &boardClient{items: make(map[string]reorder.Item)}
	for _, it := range items {
		c.items[it.ID] = it
	}
	return c
}

func (c *boardClient) List(ctx context.Context) ([]reorder.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	out := make([]reorder.Item, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (c *boardClient) Update(ctx context.Context, item reorder.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = item
	return nil
}

func (c *boardClient) listCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lists
}

func (c *boardClient) rank(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[id].Rank
}

// category builds n items named <prefix>1..<prefix>n with dense ranks.
func category(name, prefix string, n int) []reorder.Item {
	items := make([]reorder.Item, n)
	for i := range items {
		items[i] = reorder.Item{
			ID:        fmt.Sprintf("%s%02d", prefix, i+1),
			Category:  name,
			Rank:      i + 1,
			Title:     fmt.Sprintf("%s story %d", name, i+1),
			UpdatedAt: testNow.Add(-time.Duration(i+1) * time.Hour),
		}
	}
	return items
}

type testHarness struct {
	t       *testing.T
	model   *Model
	client  *boardClient
	clock   *clock.Fake
	session *session.AppSession
}

// newHarness builds a loaded model of width x height over items.
func newHarness(t *testing.T, height int, items ...reorder.Item) *testHarness {
	t.Helper()
	h := &testHarness{
		t:       t,
		client:  newBoardClient(items...),
		clock:   clock.NewFake(testNow),
		session: session.New(session.NewMemory(), logging.Nop()),
	}
	h.model = NewModel(Options{
		Client:      h.client,
		Concurrency: 4,
		Session:     h.session,
		Scheduler:   h.clock,
		Logger:      logging.Nop(),
	})
	h.model.now = func() time.Time { return testNow }
	h.model.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
	h.update(tea.WindowSizeMsg{Width: 100, Height: height})
	h.run(h.model.Init())
	return h
}

// update feeds msg to the model and runs whatever commands it returns.
func (h *testHarness) update(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.model.Update(msg)
	h.run(cmd)
}

// run executes cmd synchronously and feeds the results back.
func (h *testHarness) run(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case tea.QuitMsg:
	default:
		h.update(msg)
	}
}

func (h *testHarness) key(s string) {
	h.t.Helper()
	h.update(keyMsg(s))
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *testHarness) press(x, y int) {
	h.t.Helper()
	h.update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

func (h *testHarness) motion(x, y int) {
	h.t.Helper()
	h.update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

func (h *testHarness) release(x, y int) {
	h.t.Helper()
	h.update(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

func (h *testHarness) visibleIDs() []string {
	ids := make([]string, len(h.model.visible))
	for i, it := range h.model.visible {
		ids[i] = it.ID
	}
	return ids
}

func (h *testHarness) yOffset() int {
	return h.model.uiState.GetViewport().YOffset
}

func (h *testHarness) requireSelected(id string) {
	h.t.Helper()
	it, ok := h.model.selectedItem()
	require.True(h.t, ok)
	require.Equal(h.t, id, it.ID)
}
