package fuzzy

// FallbackScore is returned when no rule fired at all.
const FallbackScore = 50.0

// centroids are the representative crisp values of the output categories.
var centroids = [...]float64{
	VeryLow:      25,
	LowOutput:    45,
	MediumOutput: 62,
	HighOutput:   78,
	VeryHigh:     92,
}

// Centroid returns the representative crisp value of a category.
func Centroid(c Category) float64 {
	if c < VeryLow || c > VeryHigh {
		return 0
	}
	return centroids[c]
}

// Defuzzify collapses the activations into one crisp value with a weighted
// centroid. A zero denominator yields FallbackScore.
func Defuzzify(a Activations) float64 {
	score, _ := DefuzzifyDetailed(a)
	return score
}

// DefuzzifyDetailed is Defuzzify that also reports whether the fallback was used.
func DefuzzifyDetailed(a Activations) (score float64, fallback bool) {
	var num, den float64
	for _, c := range Categories {
		v := a.Get(c)
		num += v * centroids[c]
		den += v
	}
	if den == 0 {
		return FallbackScore, true
	}
	return num / den, false
}
