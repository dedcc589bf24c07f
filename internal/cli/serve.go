package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/web"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CodeGate API server",
	Long:  "Launches a JSON REST API for submitting code scans and polling results.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":3000", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
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

	s := web.NewServer(addrFlag, svc, hist)
	fmt.Fprintf(cmd.OutOrStdout(), "CodeGate API server listening on %s\n", addrFlag)
	return s.Start()
}
