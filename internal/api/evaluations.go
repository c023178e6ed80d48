package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Appraise/internal/hermes"
	"github.com/MikeSquared-Agency/Appraise/internal/metrics"
	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

type EvaluationsHandler struct {
	store   store.Store
	hermes  hermes.Client
	scorer  *scoring.Scorer
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewEvaluationsHandler(s store.Store, h hermes.Client, sc *scoring.Scorer, m *metrics.Metrics, logger *slog.Logger) *EvaluationsHandler {
	return &EvaluationsHandler{store: s, hermes: h, scorer: sc, metrics: m, logger: logger}
}

// Create scores a submission and appends it to the caller's ranking.
// POST /api/v1/evaluations
func (h *EvaluationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		h.metrics.ObserveRejected(metrics.SourceAPI)
		writeEvaluationError(w, err)
		return
	}

	ev, err := h.scorer.Evaluate(sub.Input())
	if err != nil {
		h.metrics.ObserveRejected(metrics.SourceAPI)
		writeEvaluationError(w, err)
		return
	}

	rec := &store.Record{Subject: sub.Subject, Evaluation: ev}
	if err := h.store.Append(r.Context(), sessionID(r), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.ObserveEvaluation(metrics.SourceAPI, ev)

	if h.hermes != nil {
		evt := hermes.NewEvaluationCompletedEvent(rec, metrics.SourceAPI)
		if err := h.hermes.Publish(hermes.SubjectEvaluationCompleted(rec.ID.String()), evt); err != nil {
			h.logger.Warn("failed to publish evaluation", "record_id", rec.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, rec)
}

// List returns the caller's records in insertion order.
func (h *EvaluationsHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *EvaluationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid evaluation id")
		return
	}

	rec, err := h.store.Get(r.Context(), sessionID(r), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "evaluation not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Preview scores a submission without storing it.
// POST /api/v1/scoring/preview
func (h *EvaluationsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sub, err := decodeSubmission(r)
	if err != nil {
		writeEvaluationError(w, err)
		return
	}
	ev, err := h.scorer.Evaluate(sub.Input())
	if err != nil {
		writeEvaluationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}
