package boing

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Curve maps normalized time t in [0, 1] to a horizontal and a vertical scale
// factor. Curves must be pure and must not panic for any t.
type Curve func(t float64) (xScale, yScale float64)

const (
	// squashDepth is the deepest squash offset reached by the built-in curves.
	squashDepth = -0.5

	// piecewiseSplit is where PiecewiseBounce hands over from the cubic
	// squash to the elastic recoil.
	piecewiseSplit = 1.0 / 12
)

var (
	// PressCurve squashes the sprite from rest into the pressed pose.
	PressCurve = ElasticBounce(0, squashDepth)

	// ReleaseCurve springs the sprite from the pressed pose back to rest.
	ReleaseCurve = ElasticBounce(squashDepth, 0)
)

// ElasticBounce returns a curve driven by a single damped elastic oscillation
// going from start to end over the whole duration. For an offset e the curve
// yields (1-e, 1+e), so width and height always move in opposite directions.
// t is clamped to [0, 1].
func ElasticBounce(start, end float64) Curve {
	return func(t float64) (float64, float64) {
		e := elasticOut(clampUnit(t), start, end, 1)
		return 1 - e, 1 + e
	}
}

// PiecewiseBounce is a one-shot squash and recoil. For t in [0, 1/12) it
// eases out cubically from 0 to -0.5; for t in [1/12, 1) it eases out
// elastically from -0.5 back to 0. It yields (1-e/2, 1+e) and (1, 1) for
// t >= 1.
func PiecewiseBounce(t float64) (float64, float64) {
	if t >= 1 {
		return 1, 1
	}
	t = clampUnit(t)

	var e float64
	if t < piecewiseSplit {
		e = float64(ease.OutCubic(float32(t), 0, squashDepth, piecewiseSplit))
	} else {
		e = elasticOut(t-piecewiseSplit, squashDepth, 0, 1-piecewiseSplit)
	}
	return 1 - e/2, 1 + e
}

// elasticOut evaluates gween's elastic ease-out (period 0.3 of the duration)
// from start to end at time t of duration d.
func elasticOut(t, start, end, d float64) float64 {
	return float64(ease.OutElastic(float32(t), float32(start), float32(end-start), float32(d)))
}

// clampUnit clamps t to [0, 1]. NaN maps to 0.
func clampUnit(t float64) float64 {
	switch {
	case math.IsNaN(t), t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// EasingProfile names the pair of curves used for the press and release
// phases.
type EasingProfile string

const (
	// EasingElastic uses PressCurve and ReleaseCurve.
	EasingElastic EasingProfile = "elastic"
	// EasingPiecewise uses PressCurve and PiecewiseBounce for the release.
	EasingPiecewise EasingProfile = "piecewise"
)

// Valid reports whether p names a known profile.
func (p EasingProfile) Valid() bool {
	return p == EasingElastic || p == EasingPiecewise
}

// Curves returns the press and release curves for the profile. Unknown
// profiles fall back to EasingElastic.
func (p EasingProfile) Curves() (press, release Curve) {
	if p == EasingPiecewise {
		return PressCurve, PiecewiseBounce
	}
	return PressCurve, ReleaseCurve
}
