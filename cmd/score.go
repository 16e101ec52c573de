package main

import (
	"github.com/spf13/cobra"

	"github.com/pmcconville-hub/seofactory-audit/internal/scorer"
)

var scoreSignals scorer.PageSignals
var scoreTopicType string

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Classify one page into an impact/effort quadrant",
	RunE: func(cmd *cobra.Command, args []string) error {
		scoreSignals.TopicType = scorer.TopicType(scoreTopicType)
		result := scorer.NewOpportunityScorer().Score(scoreSignals)
		return printJSON(result)
	},
}

func init() {
	scoreCmd.Flags().Int64Var(&scoreSignals.Impressions, "impressions", 0, "search impressions")
	scoreCmd.Flags().Int64Var(&scoreSignals.Clicks, "clicks", 0, "search clicks")
	scoreCmd.Flags().Float64Var(&scoreSignals.AuditScore, "audit-score", 0, "page audit score (0-100)")
	scoreCmd.Flags().Float64Var(&scoreSignals.CEAlignment, "alignment", 0, "central entity alignment (0-100)")
	scoreCmd.Flags().Float64Var(&scoreSignals.MatchConfidence, "confidence", 0, "query match confidence (0-1)")
	scoreCmd.Flags().StringVar(&scoreTopicType, "topic-type", string(scorer.TopicSupporting), "core or supporting")
	scoreCmd.Flags().IntVar(&scoreSignals.WordCount, "words", 0, "page word count")
	scoreCmd.Flags().BoolVar(&scoreSignals.HasStrikingDistance, "striking-distance", false, "page ranks in striking distance")
	rootCmd.AddCommand(scoreCmd)
}
