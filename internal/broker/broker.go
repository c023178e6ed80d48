package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Appraise/internal/hermes"
	"github.com/MikeSquared-Agency/Appraise/internal/metrics"
	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

// Broker scores evaluation requests arriving over the event bus and
// periodically publishes session statistics.
type Broker struct {
	store    store.Store
	hermes   hermes.Client
	scorer   *scoring.Scorer
	metrics  *metrics.Metrics
	interval time.Duration
	logger   *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, h hermes.Client, sc *scoring.Scorer, m *metrics.Metrics, statsInterval time.Duration, logger *slog.Logger) *Broker {
	return &Broker{
		store:    s,
		hermes:   h,
		scorer:   sc,
		metrics:  m,
		interval: statsInterval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the stats loop. It is a no-op without an event bus.
func (b *Broker) Start(ctx context.Context) {
	if b.hermes == nil {
		return
	}
	b.wg.Add(1)
	go b.statsLoop(ctx)
}

func (b *Broker) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
}

func (b *Broker) statsLoop(ctx context.Context) {
	defer b.wg.Done()
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.publishStats(ctx)
		}
	}
}

func (b *Broker) publishStats(ctx context.Context) {
	stats, err := b.store.Stats(ctx)
	if err != nil {
		b.logger.Error("failed to collect stats", "error", err)
		return
	}
	evt := hermes.StatsEvent{
		Sessions:     stats.Sessions,
		TotalRecords: stats.TotalRecords,
		Timestamp:    stats.Timestamp,
	}
	if err := b.hermes.Publish(hermes.SubjectStats, evt); err != nil {
		b.logger.Warn("failed to publish stats", "error", err)
	}
}

// SetupSubscriptions registers the evaluation request subscription.
func (b *Broker) SetupSubscriptions() error {
	if b.hermes == nil {
		return nil
	}
	if err := b.hermes.Subscribe(hermes.SubjectEvaluationRequest, func(_ string, data []byte) {
		b.handleRequest(context.Background(), data)
	}); err != nil {
		return fmt.Errorf("subscribe evaluation requests: %w", err)
	}
	return nil
}

func (b *Broker) handleRequest(ctx context.Context, data []byte) {
	var req hermes.EvaluationRequestEvent
	if err := json.Unmarshal(data, &req); err != nil {
		b.logger.Warn("invalid evaluation request event", "error", err)
		b.reject(req, scoring.DecodeError(err))
		return
	}
	if req.Session == "" {
		b.reject(req, &scoring.InputError{Field: "session", Reason: "is required"})
		return
	}
	if !store.ValidSession(req.Session) {
		b.reject(req, &scoring.InputError{Field: "session", Reason: "is invalid"})
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		b.reject(req, err)
		return
	}
	ev, err := b.scorer.Evaluate(req.Input())
	if err != nil {
		b.reject(req, err)
		return
	}

	rec := &store.Record{Subject: req.Subject, Evaluation: ev}
	if err := b.store.Append(ctx, req.Session, rec); err != nil {
		b.logger.Error("failed to store evaluation from NATS request", "session", req.Session, "error", err)
		return
	}
	b.metrics.ObserveEvaluation(metrics.SourceNATS, ev)
	b.logger.Info("evaluation stored from NATS request",
		"record_id", rec.ID, "session", req.Session, "score", ev.Score, "band", ev.Band)

	evt := hermes.NewEvaluationCompletedEvent(rec, metrics.SourceNATS)
	if err := b.hermes.Publish(hermes.SubjectEvaluationCompleted(rec.ID.String()), evt); err != nil {
		b.logger.Warn("failed to publish evaluation", "record_id", rec.ID, "error", err)
	}
}

func (b *Broker) reject(req hermes.EvaluationRequestEvent, err error) {
	b.metrics.ObserveRejected(metrics.SourceNATS)
	evt := hermes.EvaluationRejectedEvent{
		Session: req.Session,
		Subject: req.Subject,
		Error:   err.Error(),
	}
	var inErr *scoring.InputError
	if errors.As(err, &inErr) {
		evt.Field = inErr.Field
	}
	b.logger.Info("evaluation request rejected", "session", req.Session, "error", err)
	if pubErr := b.hermes.Publish(hermes.SubjectEvaluationRejected, evt); pubErr != nil {
		b.logger.Warn("failed to publish rejection", "error", pubErr)
	}
}
