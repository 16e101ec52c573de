package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pmcconville-hub/seofactory-audit/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "seofactory-audit",
	Short: "Content quality audit engine for generated SEO articles",
	Long:  "Runs rule-based linguistic, structural and semantic validators over generated content, aggregates per-page reports into site snapshots, and prioritizes remediation work.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return config.ValidateAudit(cfg.Audit)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
