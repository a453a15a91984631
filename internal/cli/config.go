package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptlabs/internal/config"
)

// configCommand creates the settings management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write persistent settings",
	}

	cmd.AddCommand(c.configGetCommand())
	cmd.AddCommand(c.configSetCommand())
	cmd.AddCommand(c.configPathCommand())

	return cmd
}

// configGetCommand creates the "config get" subcommand. Without a key it
// prints every setting.
func (c *CLI) configGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "get [key]",
		Short:     "Print a setting",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{config.KeyReferenceMode},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				v, _ := cfg.Get(config.KeyReferenceMode)
				printKeyValue(cmd.OutOrStdout(), config.KeyReferenceMode, v)
				return nil
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

// configSetCommand creates the "config set" subcommand.
func (c *CLI) configSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set [key] [value]",
		Short:     "Change a setting",
		Example:   "  pptlabs config set reference-mode outermost",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{config.KeyReferenceMode},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("Saved settings", "file", path)

			v, _ := cfg.Get(args[0])
			printSuccess(cmd.OutOrStdout(), "%s = %s", args[0], v)
			return nil
		},
	}
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.settingsPath()
			if err != nil {
				return fmt.Errorf("get settings path: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
