package calendar

import (
	"fmt"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

// MeanSynodicRate is the mean daily gain of the Moon on the Sun, degrees.
const MeanSynodicRate = 12.19

// fullMoonWindow is the half-width in days of the bracket placed around a
// linear full moon estimate. Four days keeps the residual well inside
// (-180, 180] even at the slowest lunar speed.
const fullMoonWindow = 4

// Masa is the lunar month, 1 = Chaitra through 12 = Phalguna. Months end
// at full moon and are named after the nakshatra the Moon occupies then.
type Masa int

const (
	Chaitra Masa = iota + 1
	Vaishakha
	Jyeshtha
	Ashadha
	Shravana
	Bhadrapada
	Ashvina
	Kartika
	Margashirsha
	Pausha
	Magha
	Phalguna
)

// Name returns the month name.
func (m Masa) Name() string {
	if m < Chaitra || m > Phalguna {
		return ""
	}
	return masaNames[m-1]
}

// MasaForNakshatra returns the month named by a full moon in n.
func MasaForNakshatra(n Nakshatra) Masa {
	if n < 1 || n > 27 {
		return 0
	}
	return purnimaMasa[n]
}

// NextFullMoon returns the first instant at or after jd when the
// elongation reaches 180 degrees.
func NextFullMoon(jd astro.JulianDay, a astro.Ayanamsa) (astro.JulianDay, error) {
	fn := astro.Elongation(a)
	est := jd.AddDays(astro.Mod360(180-fn(jd)) / MeanSynodicRate)

	lo := est.AddDays(-fullMoonWindow)
	if lo < jd {
		lo = jd
	}
	full, err := astro.FindTransition(lo, est.AddDays(fullMoonWindow), 180, fn)
	if err != nil {
		return 0, fmt.Errorf("full moon after %.5f: %w", float64(jd), err)
	}
	return full, nil
}

// MasaAt returns the month in force at jd together with the full moon
// that ends it.
func MasaAt(jd astro.JulianDay, a astro.Ayanamsa) (Masa, astro.JulianDay, error) {
	full, err := NextFullMoon(jd, a)
	if err != nil {
		return 0, 0, err
	}
	n, _ := NakshatraAt(astro.MoonSidereal(a)(full))
	return MasaForNakshatra(n), full, nil
}

// MasaApprox estimates the month by projecting the Moon forward at the
// mean synodic rate instead of solving for the full moon. It can be off
// by one month near nakshatra boundaries.
//
// Deprecated: use MasaAt. Kept as a fallback when the solver fails.
func MasaApprox(jd astro.JulianDay, a astro.Ayanamsa) Masa {
	l := astro.LongitudesAt(jd, a)
	days := astro.Mod360(180-l.Elongation()) / MeanSynodicRate
	// The Moon gains MeanSynodicRate on a Sun that moves about a degree
	// a day.
	moon := astro.Mod360(l.Moon + days*(MeanSynodicRate+0.9856))
	n, _ := NakshatraAt(moon)
	return MasaForNakshatra(n)
}

// MasaFor returns MasaAt's month, falling back to MasaApprox when the full
// moon cannot be solved.
func MasaFor(jd astro.JulianDay, a astro.Ayanamsa) Masa {
	if m, _, err := MasaAt(jd, a); err == nil {
		return m
	}
	return MasaApprox(jd, a)
}
