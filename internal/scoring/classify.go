package scoring

// Band is the display classification of a crisp score.
type Band string

const (
	BandVeryGood Band = "Very Good"
	BandGood     Band = "Good"
	BandAdequate Band = "Adequate"
	BandPoor     Band = "Poor"
)

// BandThreshold is the inclusive lower bound of a band.
type BandThreshold struct {
	Band Band    `json:"band"`
	Min  float64 `json:"min"`
	Tag  string  `json:"tag"`
}

// bandLadder is evaluated top-down. These thresholds are independent of the
// five inference centroids (92/78/62/45/25); there are four bands, not five.
var bandLadder = [...]BandThreshold{
	{Band: BandVeryGood, Min: 85, Tag: "success"},
	{Band: BandGood, Min: 70, Tag: "info"},
	{Band: BandAdequate, Min: 55, Tag: "warning"},
}

// Bands returns the classification ladder, best band first. Poor has no
// lower bound and is listed last with Min 0.
func Bands() []BandThreshold {
	out := make([]BandThreshold, 0, len(bandLadder)+1)
	out = append(out, bandLadder[:]...)
	return append(out, BandThreshold{Band: BandPoor, Tag: "danger"})
}

// Classify maps a crisp score to its band. The first matching threshold wins.
func Classify(score float64) Band {
	for _, t := range bandLadder {
		if score >= t.Min {
			return t.Band
		}
	}
	return BandPoor
}

// Tag returns the presentation tag used when rendering the band.
func (b Band) Tag() string {
	for _, t := range bandLadder {
		if t.Band == b {
			return t.Tag
		}
	}
	return "danger"
}
