package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// InputError reports a rejected field. Callers surface it as a validation
// failure rather than an internal error.
type InputError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Submission is a raw evaluation request as it arrives from a form, the API
// or the event bus. Scores are pointers so a missing value can be told apart
// from zero.
type Submission struct {
	Subject     string   `json:"subject"`
	Discipline  *float64 `json:"discipline"`
	Achievement *float64 `json:"achievement"`
	Attitude    *float64 `json:"attitude"`
}

// Validate applies the form rules in order: subject present, every score
// present and numeric, every score within 0-100.
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Subject) == "" {
		return &InputError{Field: "subject", Reason: "is required"}
	}
	for _, v := range []*float64{s.Discipline, s.Achievement, s.Attitude} {
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return &InputError{Reason: "all scores must be numbers"}
		}
	}
	for _, v := range []*float64{s.Discipline, s.Achievement, s.Attitude} {
		if *v < MinScore || *v > MaxScore {
			return &InputError{Reason: "scores must be within 0-100"}
		}
	}
	return nil
}

// Input returns the scores of a validated submission.
func (s *Submission) Input() Input {
	return Input{
		Discipline:  *s.Discipline,
		Achievement: *s.Achievement,
		Attitude:    *s.Attitude,
	}
}

// Normalize trims the subject in place.
func (s *Submission) Normalize() {
	s.Subject = strings.TrimSpace(s.Subject)
}

// DecodeError maps a JSON decode failure of a submission to an InputError.
// A score sent as a non-number reads the same as a missing score.
func DecodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch typeErr.Field {
		case "discipline", "achievement", "attitude":
			return &InputError{Reason: "all scores must be numbers"}
		}
	}
	return &InputError{Reason: "invalid request body"}
}
