package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jvs-project/punch/pkg/color"
	"github.com/jvs-project/punch/pkg/config"
	"github.com/jvs-project/punch/pkg/errclass"
	"github.com/jvs-project/punch/pkg/logging"
)

var (
	jsonOutput bool
	storageDir string
	noColor    bool
	logLevel   string

	// cfg is loaded from the storage root before any subcommand runs.
	cfg = config.Default()

	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "punch",
		Short: "punch - a personal time clock",
		Long: `punch records when you start and stop working in an append-only
timesheet and reports the hours worked per day.

Data lives in ~/.punch unless --dir or $PUNCH_HOME points elsewhere.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              rejectUnknownCommand,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errclass.ErrNoCommand.WithMessage("no command given (try 'punch --help')")
		},
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.PersistentFlags().StringVar(&storageDir, "dir", "", "storage directory (default $PUNCH_HOME or ~/.punch)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(inCmd)
	cmd.AddCommand(outCmd)
	cmd.AddCommand(statusCmd)
	cmd.AddCommand(reportCmd)
	cmd.AddCommand(doctorCmd)
	cmd.AddCommand(configCmd)
	cmd.AddCommand(completionCmd)
	return cmd
}

func rejectUnknownCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q", args[0])
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
	}
	return errclass.ErrUnknownCommand.WithMessage(msg)
}

// setup loads config.yaml from the storage root and applies it to logging,
// color and output format. Flags win over the file.
func setup(cmd *cobra.Command, args []string) error {
	root, err := storageRoot()
	if err != nil {
		return err
	}
	loaded, err := config.Load(root)
	if err != nil {
		return err
	}
	cfg = loaded

	if !cmd.Flags().Changed("json") && cfg.JSONOutput() {
		jsonOutput = true
	}

	levelStr := cfg.Logging.Level
	if logLevel != "" {
		levelStr = logLevel
	}
	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	logger := logging.NewLogger(level)
	logger.SetOutput(cmd.ErrOrStderr())
	if cfg.Logging.Format != "" {
		format, err := logging.ParseFormat(cfg.Logging.Format)
		if err != nil {
			return err
		}
		logger.SetFormat(format)
	}
	logging.SetGlobal(logger.WithFields(map[string]any{"command": cmd.Name()}))

	color.Init(noColor, cfg.Color)
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmtErr(os.Stderr, "%v", err)
		os.Exit(1)
	}
}

// outputJSON prints v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
