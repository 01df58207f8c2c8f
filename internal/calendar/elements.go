// Package calendar derives the five limbs of the panchanga (tithi, vaara,
// nakshatra, yoga, karana) together with the month, season and era
// numbers, from sidereal longitudes produced by package astro.
package calendar

import (
	"math"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

// Angular widths of the divisions, in degrees.
const (
	TithiSpan     = 12.0
	KaranaSpan    = 6.0
	NakshatraSpan = 360.0 / 27
	PadaSpan      = 360.0 / 108
	RituSpan      = 60.0
)

// sector returns which of count equal slices of the circle deg falls in,
// 0 based. Rounding at the top of the circle wraps to 0.
func sector(deg, width float64, count int) int {
	i := int(math.Floor(astro.Mod360(deg) / width))
	return ((i % count) + count) % count
}

// wrapIndex folds any integer into 1..n, so 0 becomes n and n+1 becomes 1.
func wrapIndex(i, n int) int {
	return ((i-1)%n+n)%n + 1
}

// ============================================================================
// Tithi and paksha
// ============================================================================

// Paksha is the lunar fortnight.
type Paksha int

const (
	Shukla  Paksha = iota // waxing
	Krishna               // waning
)

func (p Paksha) String() string {
	if p < Shukla || p > Krishna {
		return ""
	}
	return pakshaNames[p]
}

// Tithi is the lunar day, 1..30. Tithis 1-15 fall in the bright half
// and 16-30 in the dark half; 30 is Amavasya.
type Tithi int

// TithiAt returns the tithi for a Moon-Sun elongation in degrees.
func TithiAt(elongation float64) Tithi {
	return Tithi(wrapIndex(sector(elongation, TithiSpan, 30)+1, 30))
}

// Paksha returns the fortnight the tithi belongs to.
func (t Tithi) Paksha() Paksha {
	if t > 15 {
		return Krishna
	}
	return Shukla
}

// Number returns the 1..15 number within the fortnight.
func (t Tithi) Number() int {
	return wrapIndex(int(t), 15)
}

// Name returns the tithi name. The fifteenth tithi of the dark half is
// Amavasya rather than Purnima.
func (t Tithi) Name() string {
	if t < 1 || t > 30 {
		return ""
	}
	if t == 30 {
		return "Amavasya"
	}
	return tithiNames[t.Number()-1]
}

// StartElongation is the elongation at which the tithi begins.
func (t Tithi) StartElongation() float64 {
	return float64(t-1) * TithiSpan
}

// ============================================================================
// Vaara
// ============================================================================

// Vaara is the weekday, 0 = Ravivaara (Sunday) through 6 = Shanivaara.
type Vaara int

// VaaraAt returns the weekday of a Julian Day. Pass the Julian Day of the
// local civil date (astro.CivilMoment.DateJD) so the weekday does not
// slip when the UT date differs from the local one.
func VaaraAt(jd astro.JulianDay) Vaara {
	n := int(math.Floor(float64(jd) + 1.5))
	return Vaara(((n % 7) + 7) % 7)
}

// Name returns the weekday name.
func (v Vaara) Name() string {
	if v < 0 || v > 6 {
		return ""
	}
	return vaaraNames[v]
}

// ============================================================================
// Nakshatra and pada
// ============================================================================

// Nakshatra is the lunar mansion, 1..27.
type Nakshatra int

// NakshatraAt returns the nakshatra and its quarter (pada, 1..4) for a
// sidereal Moon longitude.
func NakshatraAt(moon float64) (Nakshatra, int) {
	n := Nakshatra(sector(moon, NakshatraSpan, 27) + 1)
	pada := sector(moon, PadaSpan, 108)%4 + 1
	return n, pada
}

// Name returns the nakshatra name.
func (n Nakshatra) Name() string {
	if n < 1 || n > 27 {
		return ""
	}
	return nakshatraNames[n-1]
}

// ============================================================================
// Yoga
// ============================================================================

// Yoga is the luni-solar yoga, 1..27.
type Yoga int

// YogaAt returns the yoga for sidereal Sun and Moon longitudes.
func YogaAt(sun, moon float64) Yoga {
	return Yoga(sector(sun+moon, NakshatraSpan, 27) + 1)
}

// Name returns the yoga name.
func (y Yoga) Name() string {
	if y < 1 || y > 27 {
		return ""
	}
	return yogaNames[y-1]
}

// ============================================================================
// Karana
// ============================================================================

// Karana is the half-tithi, 1..60 through the synodic month. Index 1 is
// Kimstughna; 58, 59 and 60 are Shakuni, Chatushpada and Naga; the rest
// cycle through the seven movable karanas starting with Bava at 2.
type Karana int

// KaranaAt returns the karana for a Moon-Sun elongation in degrees.
func KaranaAt(elongation float64) Karana {
	return Karana(sector(elongation, KaranaSpan, 60) + 1)
}

// Fixed reports whether k is one of the four karanas that occur once a
// month.
func (k Karana) Fixed() bool {
	return k == 1 || k >= 58
}

// Name returns the karana name.
func (k Karana) Name() string {
	switch {
	case k < 1 || k > 60:
		return ""
	case k == 1:
		return "Kimstughna"
	case k == 58:
		return "Shakuni"
	case k == 59:
		return "Chatushpada"
	case k == 60:
		return "Naga"
	}
	return movableKaranaNames[(k-2)%7]
}

// ============================================================================
// Ayana and ritu
// ============================================================================

// Ayana is the solar half-year.
type Ayana int

const (
	Uttarayana   Ayana = iota // northward course
	Dakshinayana              // southward course
)

// AyanaAt returns the ayana for a sidereal Sun longitude: Uttarayana
// from 270 degrees round to 90.
func AyanaAt(sun float64) Ayana {
	s := astro.Mod360(sun)
	if s >= 270 || s < 90 {
		return Uttarayana
	}
	return Dakshinayana
}

// Name returns the ayana name.
func (a Ayana) Name() string {
	if a < Uttarayana || a > Dakshinayana {
		return ""
	}
	return ayanaNames[a]
}

// Ritu is the season, 0 = Vasanta through 5 = Shishira.
type Ritu int

// RituAt returns the season for a sidereal Sun longitude; each ritu
// spans two signs starting at Mesha.
func RituAt(sun float64) Ritu {
	return Ritu(sector(sun, RituSpan, 6))
}

// Name returns the season name.
func (r Ritu) Name() string {
	if r < 0 || r > 5 {
		return ""
	}
	return rituNames[r]
}

// ============================================================================
// Samvat
// ============================================================================

// SamvatShaka returns the Shaka era year for a Gregorian year.
func SamvatShaka(year int) int { return year - 78 }

// SamvatVikram returns the Vikram era year for a Gregorian year.
func SamvatVikram(year int) int { return year + 57 }
