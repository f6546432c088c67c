// Package gauge turns calorie and nutrient magnitudes into display values:
// ring progress ratios and proportional bar lengths.
//
// Every function is pure and safe to call from any goroutine.
package gauge

import "math"

// RingRatio returns numerator / denominator.
//
// A zero denominator yields 0, as does any NaN or infinite input or result,
// so a renderer never receives a non-finite value. The ratio is not clamped;
// use ClampUnit before drawing a ring that cannot exceed a full turn.
func RingRatio(numerator, denominator float64) float64 {
	if denominator == 0 || !finite(numerator) || !finite(denominator) {
		return 0
	}
	r := numerator / denominator
	if !finite(r) {
		return 0
	}
	return r
}

// ClampUnit clamps r into [0, 1]. NaN maps to 0.
func ClampUnit(r float64) float64 {
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// BarExtents maps two non-negative magnitudes to bar lengths.
//
// While both a*scale and b*scale stay below maxWidth the mapping is linear.
// Otherwise the larger magnitude takes exactly maxWidth and the smaller one
// keeps its proportion to it. Both magnitudes zero yields (0, 0).
//
// Negative magnitudes are the caller's to reject; the results are still
// clamped into [0, maxWidth].
func BarExtents(a, b, scale, maxWidth float64) (lenA, lenB float64) {
	if a*scale < maxWidth && b*scale < maxWidth {
		return clampWidth(a*scale, maxWidth), clampWidth(b*scale, maxWidth)
	}

	larger := math.Max(a, b)
	if larger <= 0 || !finite(larger) {
		return 0, 0
	}
	if a > b {
		return maxWidth, clampWidth(b/a*maxWidth, maxWidth)
	}
	return clampWidth(a/b*maxWidth, maxWidth), maxWidth
}

// BarSizer carries a configured scale and maximum width.
type BarSizer struct {
	Scale    float64 // length units per unit of magnitude
	MaxWidth float64
}

// DefaultBarSizer matches the small bar-chart widget: 1 point per 20 kcal,
// at most 90 points wide.
var DefaultBarSizer = BarSizer{Scale: 1.0 / 20.0, MaxWidth: 90}

// Extents is BarExtents with the sizer's scale and width.
func (s BarSizer) Extents(a, b float64) (float64, float64) {
	return BarExtents(a, b, s.Scale, s.MaxWidth)
}

func clampWidth(v, maxWidth float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > maxWidth {
		return maxWidth
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
