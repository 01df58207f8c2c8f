package astro

// Lunar longitude after Meeus, Astronomical Algorithms, ch. 47, using the
// 59 longitude terms of table 47.A; the row whose longitude coefficient
// is zero is omitted. Accuracy is of the order of ten arc-seconds near
// the present epoch.

type moonTerm struct {
	d, m, mp, f int
	coef        float64 // 1e-6 degree
}

// moonLongitudeTerms are indexed by multiples of mean elongation (D), Sun
// mean anomaly (M), Moon mean anomaly (M') and argument of latitude (F).
var moonLongitudeTerms = [...]moonTerm{
	{0, 0, 1, 0, 6288774},
	{2, 0, -1, 0, 1274027},
	{2, 0, 0, 0, 658314},
	{0, 0, 2, 0, 213618},
	{0, 1, 0, 0, -185116},
	{0, 0, 0, 2, -114332},
	{2, 0, -2, 0, 58793},
	{2, -1, -1, 0, 57066},
	{2, 0, 1, 0, 53322},
	{2, -1, 0, 0, 45758},
	{0, 1, -1, 0, -40923},
	{1, 0, 0, 0, -34720},
	{0, 1, 1, 0, -30383},
	{2, 0, 0, -2, 15327},
	{0, 0, 1, 2, -12528},
	{0, 0, 1, -2, 10980},
	{4, 0, -1, 0, 10675},
	{0, 0, 3, 0, 10034},
	{4, 0, -2, 0, 8548},
	{2, 1, -1, 0, -7888},
	{2, 1, 0, 0, -6766},
	{1, 0, -1, 0, -5163},
	{1, 1, 0, 0, 4987},
	{2, -1, 1, 0, 4036},
	{2, 0, 2, 0, 3994},
	{4, 0, 0, 0, 3861},
	{2, 0, -3, 0, 3665},
	{0, 1, -2, 0, -2689},
	{2, 0, -1, 2, -2602},
	{2, -1, -2, 0, 2390},
	{1, 0, 1, 0, -2348},
	{2, -2, 0, 0, 2236},
	{0, 1, 2, 0, -2120},
	{0, 2, 0, 0, -2069},
	{2, -2, -1, 0, 2048},
	{2, 0, 1, -2, -1773},
	{2, 0, 0, 2, -1595},
	{4, -1, -1, 0, 1215},
	{0, 0, 2, 2, -1110},
	{3, 0, -1, 0, -892},
	{2, 1, 1, 0, -810},
	{4, -1, -2, 0, 759},
	{0, 2, -1, 0, -713},
	{2, 2, -1, 0, -700},
	{2, 1, -2, 0, 691},
	{2, -1, 0, -2, 596},
	{4, 0, 1, 0, 549},
	{0, 0, 4, 0, 537},
	{4, -1, 0, 0, 520},
	{1, 0, -2, 0, -487},
	{2, 1, 0, -2, -399},
	{0, 0, 2, -2, -381},
	{1, 1, 1, 0, 351},
	{3, 0, -2, 0, -340},
	{4, 0, -3, 0, 330},
	{2, -1, 2, 0, 327},
	{0, 2, 1, 0, -323},
	{1, 1, -1, 0, 299},
	{2, 0, 3, 0, 294},
}

// moonArguments holds the fundamental arguments for a given T.
type moonArguments struct {
	lp float64 // mean longitude L'
	d  float64 // mean elongation
	m  float64 // Sun mean anomaly
	mp float64 // Moon mean anomaly
	f  float64 // argument of latitude
	e  float64 // eccentricity factor for terms in M
}

func newMoonArguments(t float64) moonArguments {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	return moonArguments{
		lp: Mod360(218.3164477 + 481267.88123421*t - 0.0015786*t2 + t3/538841 - t4/65194000),
		d:  Mod360(297.8501921 + 445267.1114034*t - 0.0018819*t2 + t3/545868 - t4/113065000),
		m:  Mod360(357.5291092 + 35999.0502909*t - 0.0001536*t2 + t3/24490000),
		mp: Mod360(134.9633964 + 477198.8675055*t + 0.0087414*t2 + t3/69699 - t4/14712000),
		f:  Mod360(93.2720950 + 483202.0175233*t - 0.0036539*t2 - t3/3526000 + t4/863310000),
		e:  1 - 0.002516*t - 0.0000074*t2,
	}
}

// MoonMeanLongitude returns the Moon's mean longitude L'.
func MoonMeanLongitude(t float64) float64 {
	return newMoonArguments(t).lp
}

// MoonLongitude returns the Moon's apparent tropical ecliptic longitude.
// The result is in [0, 360).
func MoonLongitude(t float64) float64 {
	a := newMoonArguments(t)

	var sum float64
	for _, term := range moonLongitudeTerms {
		arg := float64(term.d)*a.d + float64(term.m)*a.m + float64(term.mp)*a.mp + float64(term.f)*a.f
		c := term.coef
		switch term.m {
		case 1, -1:
			c *= a.e
		case 2, -2:
			c *= a.e * a.e
		}
		sum += c * sinD(arg)
	}

	// Venus, Jupiter and flattening of the Earth.
	a1 := Mod360(119.75 + 131.849*t)
	a2 := Mod360(53.09 + 479264.290*t)
	sum += 3958*sinD(a1) + 1962*sinD(a.lp-a.f) + 318*sinD(a2)

	return Mod360(a.lp + sum/1e6 + nutationInLongitude(t, a.lp))
}

// nutationInLongitude is the four-term approximation of delta-psi, in
// degrees.
func nutationInLongitude(t, moonMeanLong float64) float64 {
	omega := moonNode(t)
	l := sunMeanLongitude(t)
	arcsec := -17.20*sinD(omega) -
		1.32*sinD(2*l) -
		0.23*sinD(2*moonMeanLong) +
		0.21*sinD(2*omega)
	return arcsec / 3600
}
