package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pmcconville-hub/seofactory-audit/internal/model"
	"github.com/pmcconville-hub/seofactory-audit/internal/site"
	"github.com/pmcconville-hub/seofactory-audit/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP audit API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		auditor, err := newAuditor()
		if err != nil {
			return err
		}
		st, err := newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		limiter := rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst)

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if !limiter.Allow() {
					writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
				next.ServeHTTP(w, req)
			})
		})

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/audit", func(w http.ResponseWriter, req *http.Request) {
			var doc model.Document
			if err := json.NewDecoder(req.Body).Decode(&doc); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			if doc.Content == "" {
				writeError(w, http.StatusBadRequest, "content is required")
				return
			}
			if doc.Language == "" {
				doc.Language = cfg.Audit.Language
			}

			report, err := auditor.Audit(req.Context(), doc)
			if err != nil {
				zap.L().Error("serve: audit failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "audit failed")
				return
			}
			if req.URL.Query().Get("save") == "true" {
				if id, err := st.SaveReport(req.Context(), report); err != nil {
					zap.L().Warn("serve: save report failed", zap.Error(err))
				} else {
					report.ID = id
				}
			}
			writeJSON(w, http.StatusOK, report)
		})

		r.Post("/site", func(w http.ResponseWriter, req *http.Request) {
			var reports map[string]*model.UnifiedAuditReport
			if err := json.NewDecoder(req.Body).Decode(&reports); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			agg := site.NewAggregatorWithWeights(
				cfg.Audit.PageScoreWeight,
				cfg.Audit.ConsistencyWeight,
				cfg.Audit.PhaseBalanceWeight,
			)
			writeJSON(w, http.StatusOK, agg.Aggregate(reports))
		})

		r.Get("/reports", func(w http.ResponseWriter, req *http.Request) {
			reports, err := st.ListReports(req.Context(), store.ReportFilter{
				URL:   req.URL.Query().Get("url"),
				Limit: 100,
			})
			if err != nil {
				zap.L().Error("serve: list reports failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "list failed")
				return
			}
			writeJSON(w, http.StatusOK, reports)
		})

		r.Get("/reports/{id}", func(w http.ResponseWriter, req *http.Request) {
			report, err := st.GetReport(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				zap.L().Error("serve: get report failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "get failed")
				return
			}
			if report == nil {
				writeError(w, http.StatusNotFound, "report not found")
				return
			}
			writeJSON(w, http.StatusOK, report)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
