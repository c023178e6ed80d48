package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Appraise/internal/hermes"
	"github.com/MikeSquared-Agency/Appraise/internal/metrics"
	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, sc *scoring.Scorer, m *metrics.Metrics, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	evaluations := NewEvaluationsHandler(s, h, sc, m, logger)
	ranking := NewRankingHandler(s, h, m, logger)
	explain := NewExplainHandler(sc)
	admin := NewAdminHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware)

		r.Post("/evaluations", evaluations.Create)
		r.Get("/evaluations", evaluations.List)
		r.Get("/evaluations/{id}", evaluations.Get)

		r.Post("/scoring/preview", evaluations.Preview)
		r.Get("/scoring/model", explain.Model)

		r.Get("/ranking", ranking.Ranked)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Delete("/ranking", ranking.Reset)
			r.Get("/stats", admin.Stats)
		})
	})

	return r
}

func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
