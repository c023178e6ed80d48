package fuzzy

import (
	"fmt"
	"math"
)

// Category is an output term of the inference stage.
type Category int

const (
	VeryLow Category = iota
	LowOutput
	MediumOutput
	HighOutput
	VeryHigh
)

// Categories lists the output terms from worst to best.
var Categories = [...]Category{VeryLow, LowOutput, MediumOutput, HighOutput, VeryHigh}

func (c Category) String() string {
	switch c {
	case VeryLow:
		return "very_low"
	case LowOutput:
		return "low"
	case MediumOutput:
		return "medium"
	case HighOutput:
		return "high"
	case VeryHigh:
		return "very_high"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Rule maps one (discipline, achievement, attitude) antecedent to a consequent.
type Rule struct {
	Discipline  Level    `json:"discipline"`
	Achievement Level    `json:"achievement"`
	Attitude    Level    `json:"attitude"`
	Then        Category `json:"then"`
}

func (r Rule) String() string {
	return fmt.Sprintf("IF discipline=%s AND achievement=%s AND attitude=%s THEN %s",
		r.Discipline, r.Achievement, r.Attitude, r.Then)
}

// ruleBank is the fixed domain table. It covers 25 of the 27 antecedent
// triples; (high, medium, low) and (low, medium, high) have no rule and
// contribute nothing to any category.
var ruleBank = [...]Rule{
	{High, High, High, VeryHigh},
	{High, High, Medium, VeryHigh},
	{Medium, High, High, VeryHigh},

	{High, Medium, High, HighOutput},
	{Medium, High, Medium, HighOutput},
	{Medium, Medium, High, HighOutput},
	{High, Medium, Medium, HighOutput},
	{High, High, Low, HighOutput},
	{High, Low, High, HighOutput},

	{Medium, Medium, Medium, MediumOutput},
	{High, Low, Medium, MediumOutput},
	{Medium, High, Low, MediumOutput},
	{Low, High, High, MediumOutput},
	{Medium, Low, High, MediumOutput},
	{Low, High, Medium, MediumOutput},

	{Medium, Medium, Low, LowOutput},
	{Medium, Low, Medium, LowOutput},
	{Low, Medium, Medium, LowOutput},
	{High, Low, Low, LowOutput},
	{Low, High, Low, LowOutput},
	{Low, Low, High, LowOutput},

	{Low, Low, Low, VeryLow},
	{Low, Medium, Low, VeryLow},
	{Low, Low, Medium, VeryLow},
	{Medium, Low, Low, VeryLow},
}

// Rules returns a copy of the rule bank in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(ruleBank))
	copy(out, ruleBank[:])
	return out
}

// Activations holds the aggregated strength of each output category.
type Activations struct {
	VeryLow  float64 `json:"very_low"`
	Low      float64 `json:"low"`
	Medium   float64 `json:"medium"`
	High     float64 `json:"high"`
	VeryHigh float64 `json:"very_high"`
}

// Get returns the activation for a category.
func (a Activations) Get(c Category) float64 {
	switch c {
	case VeryLow:
		return a.VeryLow
	case LowOutput:
		return a.Low
	case MediumOutput:
		return a.Medium
	case HighOutput:
		return a.High
	case VeryHigh:
		return a.VeryHigh
	default:
		return 0
	}
}

func (a *Activations) raise(c Category, v float64) {
	switch c {
	case VeryLow:
		a.VeryLow = math.Max(a.VeryLow, v)
	case LowOutput:
		a.Low = math.Max(a.Low, v)
	case MediumOutput:
		a.Medium = math.Max(a.Medium, v)
	case HighOutput:
		a.High = math.Max(a.High, v)
	case VeryHigh:
		a.VeryHigh = math.Max(a.VeryHigh, v)
	}
}

// Firing is the strength one rule fired with.
type Firing struct {
	Rule     Rule    `json:"rule"`
	Strength float64 `json:"strength"`
}

// Inference is the result of evaluating the rule bank.
type Inference struct {
	Firings     []Firing    `json:"firings"`
	Activations Activations `json:"activations"`
}

// Infer evaluates every rule with min as AND and aggregates rules sharing a
// consequent with max.
func Infer(discipline, achievement, attitude MembershipVector) Inference {
	inf := Inference{Firings: make([]Firing, 0, len(ruleBank))}
	for _, r := range ruleBank {
		strength := math.Min(discipline.Degree(r.Discipline),
			math.Min(achievement.Degree(r.Achievement), attitude.Degree(r.Attitude)))
		inf.Firings = append(inf.Firings, Firing{Rule: r, Strength: strength})
		inf.Activations.raise(r.Then, strength)
	}
	return inf
}
