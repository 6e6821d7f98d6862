// Package cmd holds the root command shared by the newsdesk binary.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hallyupress/newsdesk/internal/colors"
	"github.com/hallyupress/newsdesk/internal/config"
	"github.com/hallyupress/newsdesk/internal/logging"
	"github.com/hallyupress/newsdesk/internal/version"
	"github.com/spf13/cobra"
)

const description = "Ranking desk for the K-pop news back office."

// outputWriter is where PrintHelp writes. Nil means stdout.
var outputWriter io.Writer

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:               "newsdesk",
	Short:             description,
	Long:              description,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := logging.ShutdownGlobal(); err != nil {
			colors.Debug("logger shutdown:", err.Error())
		}
	},
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != cmd.Root() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s", strings.TrimSpace(cmd.Long), cmd.UsageString())
			return
		}
		PrintHelp(cmd)
	})

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output")
	RootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Only print warnings and errors")
}

// setup loads the configuration and wires console and file logging before
// any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	if debugFlag {
		config.Set("debug", "true")
	}
	if quietFlag {
		config.Set("quiet", "true")
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(cmd.Name()); err != nil {
		// File logging is optional; the command still runs.
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.CommandPath())
	return nil
}

// PrintHelp writes the top-level help in a fixed command order.
func PrintHelp(cmd *cobra.Command) {
	commandOrder := []string{
		"list",
		"reorder",
		"session",
		"tui",
		"serve",
		"help",
		"version",
	}

	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`newsdesk v%s

%s

USAGE:
    newsdesk [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug output
    --quiet         Only print warnings and errors
    -h, --help      Show help message
`, cmd.Version, description, strings.Join(cmdLines, "\n"))

	w := outputWriter
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprint(w, helpText)
}
