package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
	"github.com/ctsdownloads/tosk-task-manager/internal/history"
	"github.com/ctsdownloads/tosk-task-manager/internal/ui"
	"github.com/ctsdownloads/tosk-task-manager/internal/workflows"
	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "limit number of entries shown")
}

// resetHistoryCommandState resets the history command's global state for testing.
func resetHistoryCommandState() {
	historyLimit = 0
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the action history",
	Long: `Displays the history of planner actions in this workspace, oldest
first. Every mutating command appends one entry, including which device
performed it.

Examples:
  tosk tasks history          # Full history
  tosk tasks history -n 10    # Last 10 entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting tasks history command")

		spinner, cleanup := startSpinner("Loading history...", verbose)
		defer cleanup()

		result, err := workflows.ShowHistory(context.Background(), workflows.HistoryOptions{Limit: historyLimit})
		if err != nil {
			if errors.Is(err, terrors.ErrWorkspaceNotInitialized) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " No workspace found\n" +
					ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("tosk init") + " first"
				return nil
			}
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to read history: " + err.Error()
			return err
		}

		Logger.Debugf("Loaded %d of %d history entries", len(result.Entries), result.Total)

		spinner.FinalMSG = ""
		if len(result.Entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}

		for _, e := range result.Entries {
			fmt.Printf("%-19s  %-14s  %-17s  %s\n",
				formatHistoryTime(e.Timestamp), e.Device, e.Operation, formatHistoryDetails(e))
		}
		if historyLimit > 0 && result.Total > len(result.Entries) {
			fmt.Printf("\nShowing %d of %d entries\n", len(result.Entries), result.Total)
		}
		return nil
	},
}

// formatHistoryTime renders a history timestamp for display. Unparseable
// timestamps are shown as stored.
func formatHistoryTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// formatHistoryDetails renders the operation-specific fields of an entry.
func formatHistoryDetails(e history.Entry) string {
	switch {
	case e.Title != "" && e.TaskID > 0:
		return fmt.Sprintf("[%d] %s", e.TaskID, e.Title)
	case e.TaskID > 0:
		return fmt.Sprintf("[%d]", e.TaskID)
	case e.File != "" && e.Count > 0:
		return fmt.Sprintf("%s (%d task(s))", e.File, e.Count)
	case e.File != "":
		return e.File
	case e.Count > 0:
		return fmt.Sprintf("%d task(s)", e.Count)
	default:
		return ""
	}
}
