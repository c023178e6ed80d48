package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MikeSquared-Agency/Appraise/internal/fuzzy"
)

// MinScore and MaxScore bound every crisp input.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// InputPolicy decides what Evaluate does with finite values outside [0,100].
type InputPolicy string

const (
	PolicyReject InputPolicy = "reject"
	PolicyClamp  InputPolicy = "clamp"
)

// ParseInputPolicy validates a policy name from configuration.
func ParseInputPolicy(s string) (InputPolicy, error) {
	switch InputPolicy(s) {
	case PolicyReject, PolicyClamp:
		return InputPolicy(s), nil
	case "":
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown input policy %q", s)
	}
}

// Input is the three crisp scores of one subject.
type Input struct {
	Discipline  float64 `json:"discipline"`
	Achievement float64 `json:"achievement"`
	Attitude    float64 `json:"attitude"`
}

// Memberships groups the fuzzified vector of each input dimension.
type Memberships struct {
	Discipline  fuzzy.MembershipVector `json:"discipline"`
	Achievement fuzzy.MembershipVector `json:"achievement"`
	Attitude    fuzzy.MembershipVector `json:"attitude"`
}

// Evaluation is the full outcome of scoring one input, including every
// intermediate stage for breakdown views. Each Evaluate call returns its own
// Firings slice, so callers may modify it freely.
type Evaluation struct {
	Input       Input             `json:"input"`
	Memberships Memberships       `json:"memberships"`
	Firings     []fuzzy.Firing    `json:"firings"`
	Activations fuzzy.Activations `json:"activations"`
	Score       float64           `json:"score"`
	Band        Band              `json:"band"`
	Tag         string            `json:"tag"`
	Fallback    bool              `json:"fallback"`
	Clamped     bool              `json:"clamped,omitempty"`
}

// Scorer runs the fuzzy pipeline. It holds no per-evaluation state and is
// safe for concurrent use.
type Scorer struct {
	policy InputPolicy
	logger *slog.Logger
	cache  *lru.Cache[Input, Evaluation]
}

// NewScorer creates a Scorer with the given out-of-range policy.
func NewScorer(policy InputPolicy, logger *slog.Logger) *Scorer {
	if policy == "" {
		policy = PolicyReject
	}
	return &Scorer{policy: policy, logger: logger}
}

// Policy returns the configured out-of-range policy.
func (s *Scorer) Policy() InputPolicy { return s.policy }

// EnableCache memoizes evaluations of the most recent size distinct inputs.
// It must be called before the Scorer is shared.
func (s *Scorer) EnableCache(size int) error {
	cache, err := lru.New[Input, Evaluation](size)
	if err != nil {
		return fmt.Errorf("evaluation cache: %w", err)
	}
	s.cache = cache
	return nil
}

// Evaluate fuzzifies the input, runs the rule bank, defuzzifies and
// classifies. Non-finite values are always rejected; out-of-range values are
// rejected or clamped depending on the policy.
func (s *Scorer) Evaluate(in Input) (Evaluation, error) {
	in, clamped, err := s.prepare(in)
	if err != nil {
		return Evaluation{}, err
	}
	if s.cache != nil {
		if ev, ok := s.cache.Get(in); ok {
			ev.Firings = slices.Clone(ev.Firings)
			ev.Clamped = clamped
			return ev, nil
		}
	}

	ev := s.evaluate(in)
	ev.Clamped = clamped
	if s.cache != nil {
		cached := ev
		cached.Firings = slices.Clone(ev.Firings)
		s.cache.Add(in, cached)
	}
	return ev, nil
}

func (s *Scorer) evaluate(in Input) Evaluation {
	m := Memberships{
		Discipline:  fuzzy.Fuzzify(in.Discipline),
		Achievement: fuzzy.Fuzzify(in.Achievement),
		Attitude:    fuzzy.Fuzzify(in.Attitude),
	}
	inf := fuzzy.Infer(m.Discipline, m.Achievement, m.Attitude)
	score, fallback := fuzzy.DefuzzifyDetailed(inf.Activations)
	band := Classify(score)

	if fallback {
		s.logger.Warn("no rule fired, using fallback score",
			"discipline", in.Discipline, "achievement", in.Achievement, "attitude", in.Attitude)
	}
	s.logger.Debug("evaluated",
		"discipline", in.Discipline,
		"achievement", in.Achievement,
		"attitude", in.Attitude,
		"score", score,
		"band", band,
	)

	return Evaluation{
		Input:       in,
		Memberships: m,
		Firings:     inf.Firings,
		Activations: inf.Activations,
		Score:       score,
		Band:        band,
		Tag:         band.Tag(),
		Fallback:    fallback,
	}
}

func (s *Scorer) prepare(in Input) (Input, bool, error) {
	fields := []struct {
		name string
		v    *float64
	}{
		{"discipline", &in.Discipline},
		{"achievement", &in.Achievement},
		{"attitude", &in.Attitude},
	}

	clamped := false
	for _, f := range fields {
		v := *f.v
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return in, false, &InputError{Field: f.name, Reason: "must be a finite number"}
		}
		if v >= MinScore && v <= MaxScore {
			continue
		}
		if s.policy != PolicyClamp {
			return in, false, &InputError{Field: f.name, Reason: fmt.Sprintf("must be within %g-%g", MinScore, MaxScore)}
		}
		*f.v = clamp(v, MinScore, MaxScore)
		clamped = true
	}
	return in, clamped, nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
