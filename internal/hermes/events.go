package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

// EvaluationRequestEvent asks the service to score a subject into a session
// ranking. It carries the same fields as the HTTP request.
type EvaluationRequestEvent struct {
	Session string `json:"session"`
	scoring.Submission
}

type EvaluationCompletedEvent struct {
	RecordID    string       `json:"record_id"`
	Session     string       `json:"session"`
	Subject     string       `json:"subject"`
	Discipline  float64      `json:"discipline"`
	Achievement float64      `json:"achievement"`
	Attitude    float64      `json:"attitude"`
	Score       float64      `json:"score"`
	Band        scoring.Band `json:"band"`
	Fallback    bool         `json:"fallback"`
	Source      string       `json:"source"`
}

// NewEvaluationCompletedEvent summarises a stored record for publication.
func NewEvaluationCompletedEvent(rec *store.Record, source string) EvaluationCompletedEvent {
	ev := rec.Evaluation
	return EvaluationCompletedEvent{
		RecordID:    rec.ID.String(),
		Session:     rec.Session,
		Subject:     rec.Subject,
		Discipline:  ev.Input.Discipline,
		Achievement: ev.Input.Achievement,
		Attitude:    ev.Input.Attitude,
		Score:       ev.Score,
		Band:        ev.Band,
		Fallback:    ev.Fallback,
		Source:      source,
	}
}

type EvaluationRejectedEvent struct {
	Session string `json:"session"`
	Subject string `json:"subject,omitempty"`
	Field   string `json:"field,omitempty"`
	Error   string `json:"error"`
}

type RankingResetEvent struct {
	Session string `json:"session"`
	Removed int    `json:"removed"`
}

type StatsEvent struct {
	Sessions     int       `json:"sessions"`
	TotalRecords int       `json:"total_records"`
	Timestamp    time.Time `json:"timestamp"`
}
