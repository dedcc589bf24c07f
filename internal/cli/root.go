package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codegate-sec/codegate/internal/config"
)

var version = "dev"

var (
	outputFlag  string
	verboseFlag bool
	timeoutFlag time.Duration
	modelFlag   string
	noLLMFlag   bool
	noCacheFlag bool
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "codegate",
	Short: "CodeGate — security auditor for Python code",
	Long: `CodeGate analyzes Python source for security vulnerabilities and
structural problems. It combines an LLM-backed security review with a
local static analyzer and reports a combined 0-100 risk score.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all existing commands
		// pick up config-file and env-var defaults transparently.
		outputFlag = cfg.OutputFormat
		timeoutFlag = cfg.Timeout
		modelFlag = cfg.OpenAI.Model

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json, markdown, html")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 60*time.Second, "security review timeout")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "gpt-4o-mini", "LLM model for the security review")
	rootCmd.PersistentFlags().BoolVar(&noLLMFlag, "no-llm", false, "skip the LLM security review (static analysis only)")
	rootCmd.PersistentFlags().BoolVar(&noCacheFlag, "no-cache", false, "bypass the report cache")

	rootCmd.AddCommand(versionCmd)
}
