// Package fuzzy implements the Mamdani inference pipeline behind the
// composite score: membership functions, fuzzification, the fixed rule
// bank, and centroid defuzzification.
package fuzzy

// Triangular returns the degree of x in the triangle (a, b, c) with a < b < c.
// The zero guard runs before the peak check, so x == a and x == c are 0.
func Triangular(x, a, b, c float64) float64 {
	if x <= a || x >= c {
		return 0
	}
	if x == b {
		return 1
	}
	if x > a && x < b {
		return (x - a) / (b - a)
	}
	if x > b && x < c {
		return (c - x) / (c - b)
	}
	// NaN falls through every comparison.
	return 0
}

// Trapezoidal returns the degree of x in the trapezoid (a, b, c, d) with
// a <= b <= c <= d. The plateau [b, c] is 1, but the zero guard runs first:
// a shoulder shape such as (0, 0, 30, 50) still yields 0 at x == 0.
func Trapezoidal(x, a, b, c, d float64) float64 {
	if x <= a || x >= d {
		return 0
	}
	if x >= b && x <= c {
		return 1
	}
	if x > a && x < b {
		return (x - a) / (b - a)
	}
	if x > c && x < d {
		return (d - x) / (d - c)
	}
	return 0
}
