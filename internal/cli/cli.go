// Package cli implements the ist command-line interface: building
// independent spanning trees of the bubble-sort graph B_n and emitting
// them as DOT files.
//
// # Commands
//
// The main commands are:
//   - build: construct the n-1 trees for a given n and write DOT files
//   - build-all: run build for every n in [2,10]
//   - verify: re-parse emitted DOT files and check the testable properties
//     of spec.md §8
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking,
// via the charmbracelet/log library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/distspan/ist/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ist"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "ist",
		Short:        "ist builds independent spanning trees of the bubble-sort graph",
		Long:         `ist constructs n-1 edge-disjoint independent spanning trees rooted at the identity permutation of the bubble-sort graph B_n, using a two-level parallel decomposition, and emits them as Graphviz DOT files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.buildAllCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.completionCommand())

	return root
}
