package main

import (
	"context"
	"fmt"

	"github.com/hallyupress/newsdesk/cmd"
	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/spf13/cobra"
)

const reorderCommandLong = `Change ranks on the board. Every command loads the board first, sends
the rank updates concurrently and reloads the board afterwards. Partial
failures are reported as "N succeeded, M failed" and exit non-zero.

USAGE:
    newsdesk reorder move <id> <up|down>
    newsdesk reorder drag <dragged-id> <target-id>
    newsdesk reorder sort-recency

OPTIONS:
    --concurrency <n>    In-flight update requests (default: batch_concurrency)
    -h, --help           Show this help`

// reorderRun is one reorder operation against a loaded service.
type reorderRun func(ctx context.Context, svc *reorder.Service) (reorder.Summary, error)

// NewReorderCmd creates the reorder command group with explicit dependencies.
func NewReorderCmd(newClient clientFactory) *cobra.Command {
	if newClient == nil {
		panic("NewReorderCmd: client factory cannot be nil")
	}

	var concurrency int

	reorderCmd := &cobra.Command{
		Use:   "reorder",
		Short: "Change ranks within a category",
		Long:  reorderCommandLong,
	}
	reorderCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "In-flight update requests")

	execute := func(c *cobra.Command, op string, run reorderRun) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		svc := reorder.NewService(client, reorder.Options{
			Concurrency: batchConcurrency(concurrency),
			Logger:      logging.GetGlobal(),
		})
		if err := svc.Reload(c.Context()); err != nil {
			return err
		}
		summary, err := run(c.Context(), svc)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if summary.Total() == 0 {
			colors.Info("Nothing to change")
			return nil
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%s: %d of %d updates failed", op, summary.Failed, summary.Total())
		}
		return nil
	}

	moveCmd := &cobra.Command{
		Use:   "move <id> <up|down>",
		Short: "Move an item one step within its category",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			dir, err := reorder.ParseDirection(args[1])
			if err != nil {
				return err
			}
			return execute(c, "move", func(ctx context.Context, svc *reorder.Service) (reorder.Summary, error) {
				return svc.MoveOneStep(ctx, args[0], dir)
			})
		},
	}

	dragCmd := &cobra.Command{
		Use:   "drag <dragged-id> <target-id>",
		Short: "Drop an item onto another item's position",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return execute(c, "drag", func(ctx context.Context, svc *reorder.Service) (reorder.Summary, error) {
				return svc.DragReorder(ctx, args[0], args[1])
			})
		},
	}

	sortCmd := &cobra.Command{
		Use:   "sort-recency",
		Short: "Re-rank every category by last update",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return execute(c, "sort-recency", func(ctx context.Context, svc *reorder.Service) (reorder.Summary, error) {
				return svc.BulkSortByRecency(ctx)
			})
		},
	}

	reorderCmd.AddCommand(moveCmd, dragCmd, sortCmd)
	return reorderCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewReorderCmd(boardClient))
}
