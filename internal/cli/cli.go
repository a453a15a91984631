// Package cli implements the pptlabs commands on top of cobra.
//
// stretch applies the resize engine to one slide of a .pptx file and saves
// it in place or to -o. shapes and preview inspect a slide before and after.
// config reads and writes the settings file (reference mode).
//
// Every command receives the shared logger through its context; the
// --verbose flag of cmd/pptlabs lowers its level to debug.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptlabs"
	"github.com/VantageDataChat/pptlabs/internal/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the settings file location (--config).
	configPath string
}

// New creates a new CLI instance logging to w.
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
		Use:          "pptlabs",
		Short:        "pptlabs aligns shape edges in PowerPoint files",
		Long:         `pptlabs stretches the shapes of a .pptx slide so that one of their edges lines up with a reference shape.`,
		Version:      pptlabs.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default: $XDG_CONFIG_HOME/pptlabs/config.toml)")

	root.AddCommand(c.stretchCommand())
	root.AddCommand(c.shapesCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.configCommand())

	return root
}

// settingsPath returns the settings file in use.
func (c *CLI) settingsPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the settings and warns about keys it does not know.
func (c *CLI) loadConfig() (*config.Config, string, error) {
	path, err := c.settingsPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	for _, k := range cfg.UnknownKeys() {
		c.Logger.Warn("Ignoring unknown setting", "key", k, "file", path)
	}
	return cfg, path, nil
}
