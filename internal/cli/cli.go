// Package cli implements the citylines command-line interface.
//
// This package provides commands for running layout passes over scene
// files, inspecting analysis results, rendering pressure graphs, and
// serving the HTTP API. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - run: Execute a full layout pass over a scene and write the corrected scene
//   - analyze: Inspect a scene's visibility, overlaps and clusters without moving anything
//   - graph: Render the pressure graph as DOT or SVG
//   - serve: Start the HTTP API server
//   - watch: Interactive terminal view of repeated layout passes
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/edawolf/city-lines-sub002/pkg/buildinfo"
	"github.com/edawolf/city-lines-sub002/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "citylines"

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
		Use:          appName,
		Short:        "Citylines keeps scene layouts free of clutter",
		Long:         `Citylines analyzes the geometry of on-screen elements, detects crowding, off-screen drift and overlap, and applies prioritized corrective moves to keep a scene readable.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Scene Loading
// =============================================================================

// loadScene reads and validates a scene file (.toml or .json).
func loadScene(path string) (*scene.Scene, error) {
	return scene.Load(path)
}
