package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
	"github.com/pmcconville-hub/seofactory-audit/internal/site"
	"github.com/pmcconville-hub/seofactory-audit/internal/store"
)

var siteFromFiles []string

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Aggregate per-page audit reports into a site snapshot",
	Long:  "Loads unified audit reports from the configured store (or from report JSON files) and reduces them into one site-level audit result.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reports := map[string]*model.UnifiedAuditReport{}

		if len(siteFromFiles) > 0 {
			for _, path := range siteFromFiles {
				data, err := os.ReadFile(path)
				if err != nil {
					return eris.Wrapf(err, "site: read %s", path)
				}
				var report model.UnifiedAuditReport
				if err := json.Unmarshal(data, &report); err != nil {
					return eris.Wrapf(err, "site: parse %s", path)
				}
				reports[reportKey(&report, path)] = &report
			}
		} else {
			st, err := newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			stored, err := st.ListReports(ctx, store.ReportFilter{})
			if err != nil {
				return err
			}
			for i := range stored {
				r := stored[i]
				reports[reportKey(&r, r.ID)] = &r
			}
		}

		agg := site.NewAggregatorWithWeights(
			cfg.Audit.PageScoreWeight,
			cfg.Audit.ConsistencyWeight,
			cfg.Audit.PhaseBalanceWeight,
		)
		return printJSON(agg.Aggregate(reports))
	},
}

// reportKey prefers the page URL, falling back to the given identifier
// so keyless reports still aggregate.
func reportKey(r *model.UnifiedAuditReport, fallback string) string {
	if r.URL != "" {
		return r.URL
	}
	return fallback
}

func init() {
	siteCmd.Flags().StringSliceVar(&siteFromFiles, "from", nil, "report JSON files to aggregate instead of the store")
	rootCmd.AddCommand(siteCmd)
}
