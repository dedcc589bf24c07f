package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/codegate-sec/codegate/internal/history"
	"github.com/codegate-sec/codegate/internal/output"
)

var (
	historyLimitFlag   int
	historyDetailsFlag string
	historyStatsFlag   bool
	historyClearFlag   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show scan history and statistics",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "l", 20, "number of recent scans to show")
	historyCmd.Flags().StringVarP(&historyDetailsFlag, "details", "d", "", "show detailed report for a specific scan ID")
	historyCmd.Flags().BoolVarP(&historyStatsFlag, "stats", "s", false, "show scan statistics")
	historyCmd.Flags().BoolVar(&historyClearFlag, "clear", false, "clear all scan history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	switch {
	case historyClearFlag:
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Scan history cleared.")
		return nil
	case historyStatsFlag:
		return showStatistics(cmd, store)
	case historyDetailsFlag != "":
		return showScanDetails(cmd, store, historyDetailsFlag)
	default:
		return showRecentScans(cmd, store, historyLimitFlag)
	}
}

func showRecentScans(cmd *cobra.Command, store *history.Store, limit int) error {
	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(entries) == 0 {
		fmt.Fprintln(w, "No scan history found. Run some scans to build up your history.")
		return nil
	}

	fmt.Fprintf(w, "\nRecent scans (last %d)\n", len(entries))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scan ID", "Date/Time", "File", "Risk", "Findings", "Duration"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, entry := range entries {
		file := entry.FilePath
		if file == "" {
			file = "pasted code"
		}
		if len(file) > 30 {
			file = "..." + file[len(file)-27:]
		}
		table.Append([]string{
			entry.ScanID,
			entry.Timestamp.Local().Format("01/02 15:04"),
			file,
			colorRisk(entry.RiskScore),
			fmt.Sprintf("%d", entry.FindingsCount),
			fmt.Sprintf("%.1fs", entry.ScanDuration),
		})
	}
	table.Render()

	fmt.Fprintln(w, "\nUse --details <scan_id> to view a full report, --stats for statistics.")
	return nil
}

func showScanDetails(cmd *cobra.Command, store *history.Store, scanID string) error {
	report, err := store.Get(context.Background(), scanID)
	if err != nil {
		return err
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Historical scan %s from %s\n",
		report.ScanID, report.Timestamp.Local().Format("2006-01-02 15:04:05"))
	return formatter.Format(cmd.OutOrStdout(), report)
}

func showStatistics(cmd *cobra.Command, store *history.Store) error {
	stats, err := store.Statistics(context.Background())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if stats.TotalScans == 0 {
		fmt.Fprintln(w, "No scan history available for statistics.")
		return nil
	}

	fmt.Fprintf(w, "\nTotal scans:          %d\n", stats.TotalScans)
	fmt.Fprintf(w, "Total findings:       %d\n", stats.TotalFindings)
	fmt.Fprintf(w, "Average risk score:   %.1f/100\n\n", stats.AverageRiskScore)

	fmt.Fprintln(w, "Risk distribution:")
	for _, level := range []string{"low", "medium", "high", "critical"} {
		count := stats.RiskDistribution[level]
		pct := float64(count) / float64(stats.TotalScans) * 100
		fmt.Fprintf(w, "  %-8s %3d (%.1f%%)\n", level, count, pct)
	}
	return nil
}

func colorRisk(score int) string {
	label := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 75:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case score >= 50:
		return color.RedString(label)
	case score >= 25:
		return color.YellowString(label)
	default:
		return color.GreenString(label)
	}
}
