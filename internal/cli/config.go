package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvs-project/punch/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config <command>",
	Short: "Manage punch configuration",
	Long: `Manage punch configuration stored in config.yaml in the storage directory.

Configuration options:
  output_format   - Default output format (text, json)
  color           - Colored output (true, false, auto)
  logging.level   - Diagnostic log level (debug, info, warn, error)
  logging.format  - Diagnostic log format (text, json)`,
	DisableFlagsInUseLine: true,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(w, cfg)
		}

		root, err := storageRoot()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "# punch configuration")
		fmt.Fprintf(w, "# Location: %s\n\n", config.Path(root))
		for _, key := range config.Keys() {
			value, _ := cfg.Get(key)
			if value == "" {
				value = "(auto)"
			}
			fmt.Fprintf(w, "%s: %s\n", key, value)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (not set)\n", args[0])
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in config.yaml.

Examples:
  punch config set output_format json
  punch config set color false
  punch config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := storageRoot()
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.Save(root, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
