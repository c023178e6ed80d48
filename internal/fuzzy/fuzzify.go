package fuzzy

import "fmt"

// Level is one of the three linguistic terms every input is fuzzified into.
type Level int

const (
	Low Level = iota
	Medium
	High
)

// Levels lists the input terms in display order.
var Levels = [...]Level{Low, Medium, High}

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// MarshalText lets levels appear by name in JSON output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// MembershipVector holds the degree of one crisp input in each term.
// Degrees are independent and need not sum to 1.
type MembershipVector struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Degree returns the membership degree for a term.
func (v MembershipVector) Degree(l Level) float64 {
	switch l {
	case Low:
		return v.Low
	case Medium:
		return v.Medium
	case High:
		return v.High
	default:
		return 0
	}
}

// Shape describes the membership function used for one term on the 0-100
// domain.
type Shape struct {
	Level  Level     `json:"level"`
	Kind   string    `json:"kind"`
	Params []float64 `json:"params"`
}

// Shapes returns the fixed term shapes used by Fuzzify.
func Shapes() []Shape {
	return []Shape{
		{Level: Low, Kind: "trapezoidal", Params: []float64{0, 0, 30, 50}},
		{Level: Medium, Kind: "triangular", Params: []float64{40, 60, 70}},
		{Level: High, Kind: "trapezoidal", Params: []float64{60, 70, 100, 100}},
	}
}

// Fuzzify converts a crisp score into its low/medium/high degrees. The terms
// overlap on purpose so neighbouring rules fire together.
func Fuzzify(value float64) MembershipVector {
	return MembershipVector{
		Low:    Trapezoidal(value, 0, 0, 30, 50),
		Medium: Triangular(value, 40, 60, 70),
		High:   Trapezoidal(value, 60, 70, 100, 100),
	}
}
