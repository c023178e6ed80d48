package store

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
)

// ErrNotFound is returned when a record ID is unknown to the session.
var ErrNotFound = errors.New("record not found")

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSession reports whether id can name a session. Session IDs end up as
// a single NATS subject token, so dots, spaces and wildcards are refused.
func ValidSession(id string) bool {
	return sessionPattern.MatchString(id)
}

// Record is one evaluated subject as kept in a session ranking.
type Record struct {
	ID         uuid.UUID          `json:"id"`
	Session    string             `json:"session"`
	Subject    string             `json:"subject"`
	Evaluation scoring.Evaluation `json:"evaluation"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Score is the crisp composite score of the record.
func (r *Record) Score() float64 { return r.Evaluation.Score }

// RankedRecord is a record positioned in the score-descending view.
type RankedRecord struct {
	Rank        int          `json:"rank"`
	ID          uuid.UUID    `json:"id"`
	Subject     string       `json:"subject"`
	Discipline  float64      `json:"discipline"`
	Achievement float64      `json:"achievement"`
	Attitude    float64      `json:"attitude"`
	Score       float64      `json:"score"`
	Band        scoring.Band `json:"band"`
	Tag         string       `json:"tag"`
	CreatedAt   time.Time    `json:"created_at"`
}

// SessionStats summarises the sessions currently held in memory.
type SessionStats struct {
	Sessions     int       `json:"sessions"`
	TotalRecords int       `json:"total_records"`
	Timestamp    time.Time `json:"timestamp"`
}

// Store is the ranking surface the API and broker depend on. Every method is
// scoped to a caller session.
type Store interface {
	Append(ctx context.Context, session string, rec *Record) error
	Get(ctx context.Context, session string, id uuid.UUID) (*Record, error)
	List(ctx context.Context, session string) ([]*Record, error)
	Ranked(ctx context.Context, session string) ([]RankedRecord, error)
	Reset(ctx context.Context, session string) (int, error)
	Stats(ctx context.Context) (*SessionStats, error)
	Close() error
}
