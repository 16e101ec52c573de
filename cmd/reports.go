package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmcconville-hub/seofactory-audit/internal/store"
)

var (
	reportsURL     string
	reportsLimit   int
	purgeOlderThan time.Duration
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect stored audit reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		reports, err := st.ListReports(ctx, store.ReportFilter{URL: reportsURL, Limit: reportsLimit})
		if err != nil {
			return err
		}
		return printJSON(reports)
	},
}

var reportsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch one stored report by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		report, err := st.GetReport(ctx, args[0])
		if err != nil {
			return err
		}
		if report == nil {
			return eris.Errorf("reports: %s not found", args[0])
		}
		return printJSON(report)
	},
}

var reportsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete reports older than the given age",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.DeleteReportsBefore(ctx, time.Now().UTC().Add(-purgeOlderThan))
		if err != nil {
			return err
		}
		zap.L().Info("reports: purge complete", zap.Int("deleted", n))
		return nil
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsURL, "page-url", "", "filter by page URL")
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 50, "maximum reports to list")
	reportsPurgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 30*24*time.Hour, "age threshold")
	reportsCmd.AddCommand(reportsListCmd, reportsGetCmd, reportsPurgeCmd)
	rootCmd.AddCommand(reportsCmd)
}
