package astro

// Solar position after Meeus, Astronomical Algorithms, ch. 25 (low
// accuracy method, about 0.01 degree). T is Julian centuries since J2000.0.

func sunMeanLongitude(t float64) float64 {
	return Mod360(280.46646 + 36000.76983*t + 0.0003032*t*t)
}

func sunMeanAnomaly(t float64) float64 {
	return Mod360(357.52911 + 35999.05029*t - 0.0001537*t*t)
}

func earthEccentricity(t float64) float64 {
	return 0.016708634 - 0.000042037*t - 0.0000001267*t*t
}

// moonNode is the longitude of the Moon's ascending node.
func moonNode(t float64) float64 {
	return Mod360(125.04452 - 1934.136261*t)
}

// sunEquationOfCenter is the three-term correction from mean to true
// longitude.
func sunEquationOfCenter(t float64) float64 {
	m := sunMeanAnomaly(t)
	return (1.914602-0.004817*t-0.000014*t*t)*sinD(m) +
		(0.019993-0.000101*t)*sinD(2*m) +
		0.000289*sinD(3*m)
}

// SunTrueLongitude returns the Sun's geometric longitude, referred to the
// mean equinox of date.
func SunTrueLongitude(t float64) float64 {
	return Mod360(sunMeanLongitude(t) + sunEquationOfCenter(t))
}

// SunLongitude returns the Sun's apparent tropical ecliptic longitude,
// corrected for nutation and aberration. The result is in [0, 360).
func SunLongitude(t float64) float64 {
	return Mod360(SunTrueLongitude(t) - 0.00569 - 0.00478*sinD(moonNode(t)))
}

// Obliquity returns the apparent obliquity of the ecliptic.
func Obliquity(t float64) float64 {
	seconds := 21.448 - t*(46.8150+t*(0.00059-t*0.001813))
	eps0 := 23 + (26+seconds/60)/60
	return eps0 + 0.00256*cosD(moonNode(t))
}

// SunDeclination returns the Sun's apparent declination.
func SunDeclination(t float64) float64 {
	return asinD(sinD(Obliquity(t)) * sinD(SunLongitude(t)))
}

// EquationOfTime returns apparent minus mean solar time, in minutes.
func EquationOfTime(t float64) float64 {
	l0 := sunMeanLongitude(t)
	m := sunMeanAnomaly(t)
	e := earthEccentricity(t)
	y := tanD(Obliquity(t) / 2)
	y *= y

	eq := y*sinD(2*l0) -
		2*e*sinD(m) +
		4*e*y*sinD(m)*cosD(2*l0) -
		0.5*y*y*sinD(4*l0) -
		1.25*e*e*sinD(2*m)

	// radians of hour angle -> minutes of time
	return rad2deg(eq) * 4
}
