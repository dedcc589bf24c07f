package cli

import (
	"github.com/spf13/cobra"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive TUI mode",
	Long:  "Start an interactive terminal UI for scanning files, pasting snippets, and browsing history.",
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	var hist *history.Store
	if appConfig.History.Enabled {
		if store, err := openHistory(); err == nil {
			hist = store
			defer store.Close()
		}
	}

	svc, err := assembleService(hist)
	if err != nil {
		return err
	}

	return tui.Run(svc, hist)
}
