package main

import (
	"fmt"

	"github.com/hallyupress/newsdesk/cmd"
	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/session"
	"github.com/hallyupress/newsdesk/internal/tui/app"
	"github.com/hallyupress/newsdesk/internal/tui/state"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Open the interactive board.

Sections are tabs; enter opens an item. Scroll positions are saved per
section and per item and restored on back navigation. Pull the list down
with the mouse while at the top to reload.

KEYS:
    j/k, up/down     Move the cursor
    J/K              Move the selected item one step
    m                Pick up the selected item, m again to drop it
    s                Sort every category by recency
    r                Reload
    tab, 1-9         Switch section
    enter            Open the selected item
    n/p              Next or previous item in the same category
    esc              Cancel, dismiss, go back
    g                Home
    q                Quit`

// tuiDeps are the collaborators of the tui command.
type tuiDeps struct {
	newClient  clientFactory
	newBackend sessionFactory
	runner     app.ProgramRunner
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(deps tuiDeps) *cobra.Command {
	if deps.newClient == nil || deps.newBackend == nil || deps.runner == nil {
		panic("NewTUICmd: dependencies cannot be nil")
	}

	var startPath string
	var concurrency int

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			client, err := deps.newClient()
			if err != nil {
				return err
			}
			backend, closeFn := deps.newBackend()
			defer func() {
				if err := closeFn(); err != nil {
					colors.Debug("close session backend:", err.Error())
				}
			}()

			logger := logging.GetGlobal()
			model := state.NewModel(state.Options{
				Client:      client,
				Concurrency: batchConcurrency(concurrency),
				Session:     session.New(backend, logger),
				Logger:      logger,
				StartPath:   startPath,
			})
			if err := deps.runner.Run(model); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}

	tuiCmd.Flags().StringVar(&startPath, "start", "/", "First page to show, e.g. /music or /news/<id>")
	tuiCmd.Flags().IntVar(&concurrency, "concurrency", 0, "In-flight update requests")

	return tuiCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(tuiDeps{
		newClient:  boardClient,
		newBackend: sessionBackend,
		runner:     programRunner,
	}))
}
