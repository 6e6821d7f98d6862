package reorder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	apperrors "github.com/hallyupress/newsdesk/internal/errors"
	"github.com/hallyupress/newsdesk/internal/logging"
)

// Client is the CRUD API for one resource.
type Client interface {
	Updater
	List(ctx context.Context) ([]Item, error)
}

// Options configures a Service.
type Options struct {
	// Concurrency bounds in-flight update requests. Zero means unbounded.
	Concurrency int
	// Notifier receives the toasts. Defaults to the console handler.
	Notifier apperrors.ErrorHandler
	// Logger defaults to the global logger.
	Logger logging.Logger
	// OnChange is called with the new board after every optimistic apply
	// and every reload. It runs without the service lock held.
	OnChange func([]Item)
}

// Service keeps an optimistic copy of the board and reconciles it with
// the server after every batch.
type Service struct {
	client      Client
	notifier    apperrors.ErrorHandler
	logger      logging.Logger
	concurrency int
	onChange    func([]Item)

	mu    sync.RWMutex
	board []Item
}

// NewService returns a Service for client.
func NewService(client Client, opts Options) *Service {
	if client == nil {
		panic("reorder.NewService: client cannot be nil")
	}
	if opts.Notifier == nil {
		opts.Notifier = apperrors.NewDefaultCLIHandler()
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobal()
	}
	return &Service{
		client:      client,
		notifier:    opts.Notifier,
		logger:      opts.Logger.With("component", "reorder"),
		concurrency: opts.Concurrency,
		onChange:    opts.OnChange,
	}
}

// Items returns the board in display order.
func (s *Service) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.board))
	copy(out, s.board)
	return out
}

// Reload replaces the board with the server's list.
func (s *Service) Reload(ctx context.Context) error {
	items, err := s.client.List(ctx)
	if err != nil {
		return fmt.Errorf("reload board: %w", err)
	}
	s.mu.Lock()
	s.board = Board(items)
	s.mu.Unlock()
	s.logger.Debug("board reloaded", "items", len(items))
	s.changed()
	return nil
}

func (s *Service) changed() {
	if s.onChange != nil {
		s.onChange(s.Items())
	}
}

// CanMove reports whether id can move one step in dir.
func (s *Service) CanMove(id string, dir Direction) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CanMove(s.board, id, dir)
}

// MoveOneStep moves id one step up or down within its category. It is a
// no-op at the edges of the category.
func (s *Service) MoveOneStep(ctx context.Context, id string, dir Direction) (Summary, error) {
	s.mu.Lock()
	updates, err := PlanMoveOneStep(s.board, id, dir)
	if err != nil || len(updates) == 0 {
		s.mu.Unlock()
		return Summary{}, err
	}
	s.board = Apply(s.board, updates)
	swapNeighbour(s.board, id, dir)
	s.mu.Unlock()
	s.changed()

	s.logger.Info("move one step", "id", id, "direction", string(dir), "rank", updates[0].Rank)
	return s.commit(ctx, "move", updates), nil
}

// DragReorder drops draggedID onto targetID. Cross-category drops are
// rejected with a warning before anything is sent.
func (s *Service) DragReorder(ctx context.Context, draggedID, targetID string) (Summary, error) {
	s.mu.Lock()
	updates, err := PlanDragReorder(s.board, draggedID, targetID)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, ErrCrossCategory) {
			s.notifier.Warning("Items can only be reordered within the same category")
		}
		return Summary{}, err
	}
	if len(updates) == 0 {
		s.mu.Unlock()
		return Summary{}, nil
	}
	s.board = Board(Apply(s.board, updates))
	s.mu.Unlock()
	s.changed()

	s.logger.Info("drag reorder", "dragged", draggedID, "target", targetID, "updates", len(updates))
	return s.commit(ctx, "drag", updates), nil
}

// BulkSortByRecency re-ranks every category by recency.
func (s *Service) BulkSortByRecency(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	updates := PlanSortByRecency(s.board)
	if len(updates) == 0 {
		s.mu.Unlock()
		return Summary{}, nil
	}
	s.board = Board(Apply(s.board, updates))
	s.mu.Unlock()
	s.changed()

	s.logger.Info("bulk sort by recency", "updates", len(updates))
	return s.commit(ctx, "sort-recency", updates), nil
}

// commit sends the batch, reports the outcome and resynchronises the board
// with the server whatever the outcome.
func (s *Service) commit(ctx context.Context, op string, updates []Item) Summary {
	summary := ExecuteBatch(ctx, s.client, updates, s.concurrency)
	for _, f := range summary.Failures {
		s.logger.Warn("rank update failed", "op", op, "id", f.ID, "error", f.Err)
	}
	s.logger.Info("batch settled", "op", op, "succeeded", summary.Succeeded, "failed", summary.Failed)

	if summary.Failed == 0 {
		s.notifier.Success(summary.String())
	} else {
		s.notifier.Warning(summary.String())
	}

	if err := s.Reload(ctx); err != nil {
		s.logger.Error("refetch after batch failed", "op", op, "error", err)
		s.notifier.Error(fmt.Sprintf("Could not refresh list: %v", err))
	}
	return summary
}

// swapNeighbour swaps id with its neighbour in dir so a single-step move
// shows up immediately even when the new rank ties with another item.
func swapNeighbour(board []Item, id string, dir Direction) {
	i := indexOf(board, id)
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if i < 0 || j < 0 || j >= len(board) || board[j].Category != board[i].Category {
		return
	}
	board[i], board[j] = board[j], board[i]
}
