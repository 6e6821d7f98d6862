package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hallyupress/newsdesk/cmd"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

const listCommandLong = `Show the board in display order: categories in the order the API
returns them, items by rank within each category.

USAGE:
    newsdesk list [OPTIONS]

OPTIONS:
    --category <name>    Only show one category
    --format=<format>    Output format: table (default), json
    -h, --help           Show this help`

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(newClient clientFactory) *cobra.Command {
	if newClient == nil {
		panic("NewListCmd: client factory cannot be nil")
	}

	var category string
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show the board in display order",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("list: invalid format %q (must be table or json)", format)
			}
			client, err := newClient()
			if err != nil {
				return err
			}
			svc := reorder.NewService(client, reorder.Options{Logger: logging.GetGlobal()})
			if err := svc.Reload(c.Context()); err != nil {
				return err
			}
			items := svc.Items()
			if category != "" {
				items = reorder.CategoryView(items, category)
			}
			return printItems(c.OutOrStdout(), items, format)
		},
	}

	listCmd.Flags().StringVar(&category, "category", "", "Only show one category")
	listCmd.Flags().StringVar(&format, "format", formatTable, "Output format: table, json")

	return listCmd
}

func printItems(w io.Writer, items []reorder.Item, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []reorder.Item{}
		}
		return enc.Encode(items)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items found")
		return err
	}

	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{
			strconv.Itoa(it.Rank),
			it.Category,
			it.ID,
			it.UpdatedAt.UTC().Format("2006-01-02 15:04"),
			it.Title,
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RANK", "CATEGORY", "ID", "UPDATED", "TITLE").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func init() {
	cmd.RootCmd.AddCommand(NewListCmd(boardClient))
}
