package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/codegate-sec/codegate/internal/output"
)

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Analyze a pasted code snippet",
	Long:  "Reads Python code from standard input until EOF (Ctrl+D) and analyzes it.",
	RunE:  runPaste,
}

func init() {
	rootCmd.AddCommand(pasteCmd)
}

func runPaste(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), "Enter your code snippet below. Press Ctrl+D to finish.")

	code, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if len(code) == 0 {
		return fmt.Errorf("no code provided")
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	svc, err := buildService()
	if err != nil {
		return err
	}

	report, err := svc.Scan(context.Background(), string(code), "")
	if err != nil {
		return err
	}

	return formatter.Format(cmd.OutOrStdout(), report)
}
