package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEvaluationError maps validation failures to 400 and anything else
// to 500.
func writeEvaluationError(w http.ResponseWriter, err error) {
	var inErr *scoring.InputError
	if errors.As(err, &inErr) {
		body := map[string]string{"error": inErr.Error()}
		if inErr.Field != "" {
			body["field"] = inErr.Field
		}
		writeJSON(w, http.StatusBadRequest, body)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// decodeSubmission reads and validates a submission body.
func decodeSubmission(r *http.Request) (*scoring.Submission, error) {
	var sub scoring.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		return nil, scoring.DecodeError(err)
	}
	sub.Normalize()
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return &sub, nil
}
