package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pmcconville-hub/seofactory-audit/internal/audit"
	"github.com/pmcconville-hub/seofactory-audit/internal/model"
	"github.com/pmcconville-hub/seofactory-audit/internal/rules"
)

var (
	auditEntity   string
	auditLanguage string
	auditURL      string
	auditSave     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit [file...]",
	Short: "Audit one or more content documents",
	Long:  "Reads content files (raw markdown/HTML, or JSON documents with structural metadata) and runs the full validator battery over each, printing unified audit reports.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		auditor, err := newAuditor()
		if err != nil {
			return err
		}

		reports := make([]*model.UnifiedAuditReport, len(args))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Audit.Concurrency)

		var failed atomic.Int64
		for i, path := range args {
			i, path := i, path
			g.Go(func() error {
				doc, err := loadDocument(path)
				if err != nil {
					failed.Add(1)
					zap.L().Error("audit: load document failed",
						zap.String("path", path),
						zap.Error(err),
					)
					return nil // keep auditing the rest of the batch
				}
				report, err := auditor.Audit(gctx, *doc)
				if err != nil {
					failed.Add(1)
					zap.L().Error("audit: document failed",
						zap.String("path", path),
						zap.Error(err),
					)
					return nil
				}
				reports[i] = report
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "audit: batch")
		}

		if auditSave {
			st, err := newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			for _, r := range reports {
				if r == nil {
					continue
				}
				if _, err := st.SaveReport(ctx, r); err != nil {
					return err
				}
			}
		}

		var out []*model.UnifiedAuditReport
		for _, r := range reports {
			if r != nil {
				out = append(out, r)
			}
		}
		if err := printJSON(out); err != nil {
			return err
		}
		if n := failed.Load(); n > 0 {
			return eris.Errorf("audit: %d document(s) failed", n)
		}
		return nil
	},
}

// newAuditor builds an Auditor from the configured rule catalog.
func newAuditor() (*audit.Auditor, error) {
	cat := rules.DefaultCatalog()
	if cfg.Audit.CatalogPath != "" {
		loaded, err := rules.LoadCatalog(cfg.Audit.CatalogPath)
		if err != nil {
			return nil, err
		}
		cat = loaded
	}
	return audit.New(cat), nil
}

// loadDocument reads a content file. JSON files unmarshal into a full
// document with structural metadata; anything else is treated as raw
// content with identity taken from flags.
func loadDocument(path string) (*model.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "audit: read %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var doc model.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, eris.Wrapf(err, "audit: parse %s", path)
		}
		applyFlagDefaults(&doc)
		return &doc, nil
	}

	doc := model.Document{Content: string(data)}
	applyFlagDefaults(&doc)
	return &doc, nil
}

func applyFlagDefaults(doc *model.Document) {
	if doc.CentralEntity == "" {
		doc.CentralEntity = auditEntity
	}
	if doc.Language == "" {
		doc.Language = auditLanguage
		if doc.Language == "" {
			doc.Language = cfg.Audit.Language
		}
	}
	if doc.URL == "" {
		doc.URL = auditURL
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func init() {
	auditCmd.Flags().StringVar(&auditEntity, "entity", "", "central entity the content should focus on")
	auditCmd.Flags().StringVar(&auditLanguage, "language", "", "document language (default from config)")
	auditCmd.Flags().StringVar(&auditURL, "url", "", "page URL the document publishes to")
	auditCmd.Flags().BoolVar(&auditSave, "save", false, "persist reports to the configured store")
	rootCmd.AddCommand(auditCmd)
}
