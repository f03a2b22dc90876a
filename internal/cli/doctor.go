package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvs-project/punch/internal/doctor"
	"github.com/jvs-project/punch/pkg/color"
	"github.com/jvs-project/punch/pkg/errclass"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check timesheet and state marker consistency",
	Long: `Check timesheet and state marker consistency.

Replays the whole timesheet, reports corruption, and verifies that the
state marker matches the last record. With --fix the marker is rewritten
from the timesheet; the timesheet itself is never changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClock()
		if err != nil {
			return err
		}
		defer c.Close()

		doc := doctor.NewDoctor(c)
		var result *doctor.Result
		if doctorFix {
			result, err = doc.Fix()
		} else {
			result, err = doc.Check()
		}
		if err != nil {
			return fmt.Errorf("doctor: %w", err)
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			if err := outputJSON(w, result); err != nil {
				return err
			}
		} else {
			for _, r := range result.Repaired {
				fmt.Fprintf(w, "%s %s\n", color.Greenf("Repaired:"), r)
			}
			if len(result.Findings) == 0 {
				fmt.Fprintf(w, "Timesheet is healthy (%d intervals).\n", result.Intervals)
			} else {
				fmt.Fprintln(w, color.Boldf(fmt.Sprintf("Findings (%d):", len(result.Findings))))
				for _, f := range result.Findings {
					fmt.Fprintf(w, "  %s\n", severityLine(f))
				}
			}
		}

		if !result.Healthy {
			return errclass.ErrUnhealthy.WithMessagef("%d problem(s) found", len(result.Findings))
		}
		return nil
	},
}

func severityLine(f doctor.Finding) string {
	switch f.Severity {
	case "critical", "error":
		return color.Redf(fmt.Sprintf("[%s]", f.Severity)) + " " + f.Category + ": " + f.Description
	case "info":
		return color.Dimf(fmt.Sprintf("[%s] %s: %s", f.Severity, f.Category, f.Description))
	}
	return color.Warningf("[%s] %s: %s", f.Severity, f.Category, f.Description)
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "rewrite the state marker from the timesheet")
}
