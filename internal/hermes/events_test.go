package hermes

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "appraise.evaluation.abc.completed", SubjectEvaluationCompleted("abc"))
	assert.Equal(t, "appraise.ranking.class-7.reset", SubjectRankingReset("class-7"))
	assert.Contains(t, StreamSubjects, SubjectStats)
	assert.Contains(t, StreamSubjects, SubjectEvaluationRejected)
	assert.NotContains(t, StreamSubjects, SubjectEvaluationRequest)
}

func TestEvaluationRequestEventFlattensSubmission(t *testing.T) {
	raw := `{"session":"class-7","subject":"Ani","discipline":80,"achievement":75.5,"attitude":90}`

	var evt EvaluationRequestEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &evt))

	assert.Equal(t, "class-7", evt.Session)
	assert.Equal(t, "Ani", evt.Subject)
	require.NotNil(t, evt.Achievement)
	assert.Equal(t, 75.5, *evt.Achievement)
	require.NoError(t, evt.Validate())
}

func TestEvaluationRequestEventMissingScore(t *testing.T) {
	var evt EvaluationRequestEvent
	require.NoError(t, json.Unmarshal([]byte(`{"session":"s","subject":"Ani","discipline":80}`), &evt))
	assert.EqualError(t, evt.Validate(), "all scores must be numbers")
}

func TestNewEvaluationCompletedEvent(t *testing.T) {
	sc := scoring.NewScorer(scoring.PolicyReject, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ev, err := sc.Evaluate(scoring.Input{Discipline: 90, Achievement: 90, Attitude: 90})
	require.NoError(t, err)

	rec := &store.Record{ID: uuid.New(), Session: "class-7", Subject: "Ani", Evaluation: ev}
	evt := NewEvaluationCompletedEvent(rec, "api")

	assert.Equal(t, rec.ID.String(), evt.RecordID)
	assert.Equal(t, "class-7", evt.Session)
	assert.Equal(t, 90.0, evt.Attitude)
	assert.InDelta(t, 92.0, evt.Score, 1e-9)
	assert.Equal(t, scoring.BandVeryGood, evt.Band)
	assert.False(t, evt.Fallback)
	assert.Equal(t, "api", evt.Source)
}
