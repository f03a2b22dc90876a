package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvs-project/punch/pkg/color"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are punched in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openClock()
		if err != nil {
			return err
		}
		defer c.Close()

		working, err := c.IsWorking()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(w, map[string]any{"working": working})
		}
		if working {
			fmt.Fprintln(w, color.PunchedIn("You're punched in"))
		} else {
			fmt.Fprintln(w, color.PunchedOut("You're punched out"))
		}
		return nil
	},
}
