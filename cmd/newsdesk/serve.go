package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hallyupress/newsdesk/cmd"
	"github.com/hallyupress/newsdesk/internal/api"
	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/config"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

const serveCommandLong = `Run a local CRUD API backed by SQLite for development.

ROUTES:
    GET /healthz
    GET /{resource}          List items
    GET /{resource}/{id}     Get one item
    PUT /{resource}/{id}     Update rank (and optionally title/updatedAt)

USAGE:
    newsdesk serve [OPTIONS]

OPTIONS:
    --addr <host:port>     Listen address (default: serve_addr)
    --resource <name>      Resource to seed or import into (default: api_resource)
    --seed                 Load demo items before serving
    --import <file>        Upsert items from a JSON array before serving
    -h, --help             Show this help`

// NewServeCmd creates the serve command with explicit dependencies.
func NewServeCmd(openDB databaseFactory) *cobra.Command {
	if openDB == nil {
		panic("NewServeCmd: database factory cannot be nil")
	}

	var addr string
	var resource string
	var seed bool
	var importPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local CRUD API for development",
		Long:  serveCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if addr == "" {
				addr = config.Get("serve_addr", "127.0.0.1:8787")
			}
			if resource == "" {
				resource = config.Get("api_resource", "charts")
			}
			if err := sqlite.ValidateResource(resource); err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return fmt.Errorf("serve: open database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					colors.Debug("close database:", err.Error())
				}
			}()

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if seed {
				n, err := api.Seed(ctx, db, resource, time.Now())
				if err != nil {
					return err
				}
				colors.Success(fmt.Sprintf("Seeded %d items into %s", n, resource))
			}
			if importPath != "" {
				if err := importFile(c, db, importPath, resource); err != nil {
					return err
				}
			}

			colors.Info(fmt.Sprintf("Serving /%s on http://%s (Ctrl+C to stop)", resource, addr))
			return api.NewServer(db, addr, logging.GetGlobal()).Start(ctx)
		},
	}

	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address")
	serveCmd.Flags().StringVar(&resource, "resource", "", "Resource to seed or import into")
	serveCmd.Flags().BoolVar(&seed, "seed", false, "Load demo items before serving")
	serveCmd.Flags().StringVar(&importPath, "import", "", "Upsert items from a JSON file before serving")

	return serveCmd
}

func importFile(c *cobra.Command, db *sqlite.SQLiteStorage, path, resource string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("serve: open import file: %w", err)
	}
	defer f.Close()

	stats, err := db.ImportItems(c.Context(), f, sqlite.ImportOptions{Resource: resource})
	if err != nil {
		return err
	}
	for _, w := range stats.Warnings {
		colors.Warning(w)
	}
	colors.Success(fmt.Sprintf("Imported %d of %d rows (%d skipped, %d duplicates)",
		stats.ImportedRows, stats.TotalRows, stats.SkippedRows, stats.DuplicateRows))
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(NewServeCmd(database))
}
