package animation

import "math"

// Easing curves map linear fade progress in [0, 1] to eased progress.
// Assign one to a [FadeController]'s Curve field.

// LinearCurve returns progress unchanged.
func LinearCurve(t float64) float64 { return t }

// Ease is the general-purpose curve, equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates; the default for layer fade-ins.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut accelerates through the middle.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns an easing function matching CSS cubic-bezier() with
// control points (x1,y1) and (x2,y2). The curve runs from (0,0) to (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		// Newton-Raphson converges quickly for well-behaved control points.
		u := t
		for iter := 0; iter < 8; iter++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback guarantees a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for iter := 0; iter < 12; iter++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}
		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
