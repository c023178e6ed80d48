package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Appraise/internal/hermes"
	"github.com/MikeSquared-Agency/Appraise/internal/metrics"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

type RankingHandler struct {
	store   store.Store
	hermes  hermes.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewRankingHandler(s store.Store, h hermes.Client, m *metrics.Metrics, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{store: s, hermes: h, metrics: m, logger: logger}
}

// Ranked returns the caller's records, highest score first.
// GET /api/v1/ranking
func (h *RankingHandler) Ranked(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.store.Ranked(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}

// Reset empties the caller's ranking.
// DELETE /api/v1/ranking
func (h *RankingHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session := sessionID(r)
	removed, err := h.store.Reset(r.Context(), session)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.ObserveReset()
	h.logger.Info("ranking reset", "session", session, "removed", removed)

	if h.hermes != nil {
		evt := hermes.RankingResetEvent{Session: session, Removed: removed}
		if err := h.hermes.Publish(hermes.SubjectRankingReset(session), evt); err != nil {
			h.logger.Warn("failed to publish ranking reset", "session", session, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "reset", "removed": removed})
}
