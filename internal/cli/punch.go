package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jvs-project/punch/internal/clock"
	"github.com/jvs-project/punch/pkg/color"
	"github.com/jvs-project/punch/pkg/model"
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Punch in (start working)",
	Long: `Punch in, appending an "in" record to the timesheet.

Fails if you are already punched in; nothing is written in that case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPunch(cmd, model.RecordIn, (*clock.Clock).PunchIn)
	},
}

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Punch out (stop working)",
	Long: `Punch out, appending an "out" record to the timesheet.

Fails if you are not punched in; nothing is written in that case.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPunch(cmd, model.RecordOut, (*clock.Clock).PunchOut)
	},
}

func runPunch(cmd *cobra.Command, kind model.RecordKind, punch func(*clock.Clock) (time.Time, error)) error {
	c, err := openClock()
	if err != nil {
		return err
	}
	defer c.Close()

	at, err := punch(c)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(w, map[string]any{
			"kind": kind,
			"at":   model.FormatTimestamp(at),
		})
	}

	label := color.PunchedIn("Punched in")
	if kind == model.RecordOut {
		label = color.PunchedOut("Punched out")
	}
	fmt.Fprintf(w, "%s at %s\n", label, model.FormatTimestamp(at))
	return nil
}
