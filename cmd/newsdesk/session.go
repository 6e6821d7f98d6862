package main

import (
	"fmt"
	"sort"

	"github.com/hallyupress/newsdesk/cmd"
	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/session"
	"github.com/spf13/cobra"
)

// NewSessionCmd creates the session command group with explicit dependencies.
func NewSessionCmd(newBackend sessionFactory) *cobra.Command {
	if newBackend == nil {
		panic("NewSessionCmd: backend factory cannot be nil")
	}

	open := func() (*session.AppSession, func()) {
		backend, closeFn := newBackend()
		return session.New(backend, logging.GetGlobal()), func() {
			if err := closeFn(); err != nil {
				colors.Debug("close session backend:", err.Error())
			}
		}
	}

	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect saved scroll positions",
		Long:  `Inspect or clear the scroll positions and navigation flags saved by the board.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved scroll positions and flags",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			sess, done := open()
			defer done()

			entries := sess.Entries()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(c.OutOrStdout(), "No saved scroll positions")
				return err
			}
			sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
			for _, e := range entries {
				if _, err := fmt.Fprintf(c.OutOrStdout(), "%s\t%s\n", e.Key, e.Value); err != nil {
					return err
				}
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every saved scroll position",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			sess, done := open()
			defer done()

			n := sess.Clear()
			colors.Success(fmt.Sprintf("Removed %d saved entries", n))
			return nil
		},
	}

	sessionCmd.AddCommand(listCmd, clearCmd)
	return sessionCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSessionCmd(sessionBackend))
}
