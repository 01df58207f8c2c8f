// Package astro provides the low-order astronomical model behind the
// panchanga: Julian Day conversion, solar and lunar ecliptic longitude,
// ayanamsa, sunrise/sunset and a bisection solver for angular events.
//
// All angles are in degrees. Every function is pure and safe for
// concurrent use.
package astro

import "math"

// Mod360 normalizes an angle into [0, 360).
func Mod360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// math.Mod can hand back -0 or a value that rounds up to 360.
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// Mod24 normalizes fractional hours into [0, 24).
func Mod24(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	if h >= 24 {
		h -= 24
	}
	return h
}

// WrapSigned maps an angle into (-180, 180].
func WrapSigned(deg float64) float64 {
	deg = Mod360(deg)
	if deg > 180 {
		deg -= 360
	}
	return deg
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func sinD(d float64) float64 { return math.Sin(deg2rad(d)) }

func cosD(d float64) float64 { return math.Cos(deg2rad(d)) }

func tanD(d float64) float64 { return math.Tan(deg2rad(d)) }

func atan2D(y, x float64) float64 { return rad2deg(math.Atan2(y, x)) }

// asinD and acosD clamp their argument so edge-of-domain rounding never
// produces NaN.
func asinD(x float64) float64 { return rad2deg(math.Asin(clampUnit(x))) }

func acosD(x float64) float64 { return rad2deg(math.Acos(clampUnit(x))) }

func clampUnit(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}
