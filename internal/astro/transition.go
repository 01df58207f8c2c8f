package astro

import "fmt"

// AngleFunc returns an angle in degrees at a Julian Day.
type AngleFunc func(jd JulianDay) float64

const (
	// DefaultTolerance is the bracket width, in days, at which bisection
	// stops (about 0.09 s).
	DefaultTolerance = 1e-6

	// DefaultMaxIterations bounds the bisection.
	DefaultMaxIterations = 60
)

type transitionConfig struct {
	tolerance float64
	maxIter   int
}

// TransitionOption tunes FindTransition.
type TransitionOption func(*transitionConfig)

// WithTolerance sets the stopping bracket width in days.
func WithTolerance(days float64) TransitionOption {
	return func(c *transitionConfig) {
		if days > 0 {
			c.tolerance = days
		}
	}
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) TransitionOption {
	return func(c *transitionConfig) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// FindTransition locates the Julian Day in [start, end] at which fn
// crosses target, by bisection on the residual fn(jd)-target wrapped into
// (-180, 180].
//
// The caller must supply a bracket holding exactly one crossing. With
// several crossings, or a bracket that straddles the point where the
// residual wraps from +180 to -180, bisection converges to one of the
// sign changes and may return a spurious root. At the iteration cap the
// midpoint of the remaining bracket is returned. ErrNoBracket is returned
// when the residual has the same sign at both ends.
func FindTransition(start, end JulianDay, target float64, fn AngleFunc, opts ...TransitionOption) (JulianDay, error) {
	cfg := transitionConfig{tolerance: DefaultTolerance, maxIter: DefaultMaxIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if end < start {
		start, end = end, start
	}

	rs := WrapSigned(fn(start) - target)
	if rs == 0 {
		return start, nil
	}
	re := WrapSigned(fn(end) - target)
	if re == 0 {
		return end, nil
	}
	if (rs < 0) == (re < 0) {
		return 0, fmt.Errorf("%w: target %.4f in [%.6f, %.6f]", ErrNoBracket, target, float64(start), float64(end))
	}

	for i := 0; i < cfg.maxIter && float64(end-start) > cfg.tolerance; i++ {
		mid := (start + end) / 2
		rm := WrapSigned(fn(mid) - target)
		if rm == 0 {
			return mid, nil
		}
		if (rm < 0) == (rs < 0) {
			start, rs = mid, rm
		} else {
			end = mid
		}
	}

	return (start + end) / 2, nil
}

// Elongation returns the sidereal Moon minus Sun angle as an AngleFunc.
func Elongation(a Ayanamsa) AngleFunc {
	return func(jd JulianDay) float64 {
		return LongitudesAt(jd, a).Elongation()
	}
}

// MoonSidereal returns the Moon's sidereal longitude as an AngleFunc.
func MoonSidereal(a Ayanamsa) AngleFunc {
	return func(jd JulianDay) float64 {
		return LongitudesAt(jd, a).Moon
	}
}
