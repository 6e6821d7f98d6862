package main

import (
	"github.com/hallyupress/newsdesk/internal/api"
	"github.com/hallyupress/newsdesk/internal/config"
	"github.com/hallyupress/newsdesk/internal/reorder"
	"github.com/hallyupress/newsdesk/internal/session"
	"github.com/hallyupress/newsdesk/internal/storage"
	"github.com/hallyupress/newsdesk/internal/storage/sqlite"
	"github.com/hallyupress/newsdesk/internal/tui/app"
)

type (
	clientFactory   func() (reorder.Client, error)
	sessionFactory  func() (session.Backend, func() error)
	databaseFactory func() (*sqlite.SQLiteStorage, error)
)

// Dependencies are built lazily: configuration is only loaded once the root
// command's pre-run hook has fired.
var (
	boardClient    clientFactory     = newBoardClient
	sessionBackend sessionFactory    = storage.NewSessionBackendFromConfig
	database       databaseFactory   = storage.OpenDatabase
	programRunner  app.ProgramRunner = app.NewDefaultProgramRunner()
)

func newBoardClient() (reorder.Client, error) {
	c, err := api.NewClientFromConfig()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// batchConcurrency prefers an explicit flag over batch_concurrency.
func batchConcurrency(flag int) int {
	if flag > 0 {
		return flag
	}
	return config.GetInt("batch_concurrency", 8)
}
