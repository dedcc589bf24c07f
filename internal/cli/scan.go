package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codegate-sec/codegate/internal/output"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file>",
	Short: "Analyze a Python file for vulnerabilities",
	Long: `Runs the full analysis pipeline over a Python source file: the LLM
security review, local static analysis, and risk scoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !strings.HasSuffix(path, ".py") && verboseFlag {
		fmt.Fprintf(os.Stderr, "warning: %s does not look like a Python file; analysis may be inaccurate\n", path)
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	svc, err := buildService()
	if err != nil {
		return err
	}

	report, err := svc.ScanFile(context.Background(), path)
	if err != nil {
		return err
	}

	return formatter.Format(cmd.OutOrStdout(), report)
}
