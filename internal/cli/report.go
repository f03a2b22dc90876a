package cli

import (
	"github.com/spf13/cobra"

	"github.com/jvs-project/punch/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print hours worked per day",
	Long: `Print hours worked per day, one line per day:

  Mon, 05 Jan 2015: 8:15

A session counts toward the day it started on. If you are punched in,
the current session runs until now. With --json each day is printed as
one JSON object per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClock()
		if err != nil {
			return err
		}
		defer c.Close()

		return c.Report(report.NewWriter(cmd.OutOrStdout(), jsonOutput).Emit)
	},
}
