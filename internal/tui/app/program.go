// Package app provides TUI application adapters for command wiring.
package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Model is a bubbletea model that pushes messages into its own program
// from background work.
type Model interface {
	tea.Model
	SetSender(send func(tea.Msg))
}

// ProgramRunner defines the interface for running a bubbletea program.
// This abstraction allows for easier testing and swapping of implementations.
type ProgramRunner interface {
	// Run starts the bubbletea program with the given model.
	Run(model Model) error
}

// DefaultProgramRunner is the default implementation of ProgramRunner
// that wraps tea.NewProgram with standard options.
type DefaultProgramRunner struct {
	options []tea.ProgramOption
}

// NewDefaultProgramRunner creates a new DefaultProgramRunner. Extra options
// are applied after tea.WithAltScreen and tea.WithMouseCellMotion.
func NewDefaultProgramRunner(extra ...tea.ProgramOption) *DefaultProgramRunner {
	options := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	return &DefaultProgramRunner{options: append(options, extra...)}
}

// Run starts a bubbletea program with the given model and attaches the
// program's Send to it before the first message is processed.
func (r *DefaultProgramRunner) Run(model Model) error {
	p := tea.NewProgram(model, r.options...)
	model.SetSender(p.Send)
	defer model.SetSender(nil)

	_, err := p.Run()
	return err
}
