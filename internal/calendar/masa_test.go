package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

func TestMasaForNakshatra(t *testing.T) {
	tests := []struct {
		n    Nakshatra
		want Masa
	}{
		{1, Ashvina},
		{3, Kartika},
		{13, Phalguna},
		{14, Chaitra},
		{15, Chaitra},
		{16, Vaishakha},
		{22, Shravana},
		{26, Bhadrapada},
		{27, Ashvina},
		{0, 0},
		{28, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MasaForNakshatra(tt.n), "nakshatra %d", tt.n)
	}

	// Every month is named by at least two nakshatras.
	seen := map[Masa]int{}
	for n := Nakshatra(1); n <= 27; n++ {
		seen[MasaForNakshatra(n)]++
	}
	assert.Len(t, seen, 12)
	for m, count := range seen {
		assert.GreaterOrEqual(t, count, 2, m.Name())
	}
}

func TestMasa_Name(t *testing.T) {
	assert.Equal(t, "Chaitra", Chaitra.Name())
	assert.Equal(t, "Phalguna", Phalguna.Name())
	assert.Equal(t, "", Masa(13).Name())
}

func TestNextFullMoon(t *testing.T) {
	tests := []struct {
		from time.Time
		want time.Time
	}{
		{time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 25, 17, 54, 0, 0, time.UTC)},
		{time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 21, 10, 17, 0, 0, time.UTC)},
		// Just after a full moon the next one is a month away.
		{time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 24, 12, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(FormatDate(tt.from), func(t *testing.T) {
			jd, err := NextFullMoon(astro.JulianDayOf(tt.from), astro.Lahiri)
			require.NoError(t, err)
			assert.WithinDuration(t, tt.want, astro.FromJulianDay(jd), 15*time.Minute)
		})
	}
}

func TestNextFullMoon_IndependentOfAyanamsa(t *testing.T) {
	from := astro.JulianDayOf(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	a, err := NextFullMoon(from, astro.Lahiri)
	require.NoError(t, err)
	b, err := NextFullMoon(from, astro.FaganBradley)
	require.NoError(t, err)
	assert.InDelta(t, float64(a), float64(b), 1e-5)
}

func TestMasaAt(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		want Masa
	}{
		// Full moon of 23 April 2024 in Swati.
		{"chaitra purnima", time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Chaitra},
		// Full moon of 17 October 2024 at the Revati/Ashwini junction.
		{"ashvina purnima", time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC), Ashvina},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, full, err := MasaAt(astro.JulianDayOf(tt.from), astro.Lahiri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m, "got %s", m.Name())
			assert.True(t, astro.FromJulianDay(full).After(tt.from))
		})
	}
}

func TestMasaApprox_NearFullMoon(t *testing.T) {
	jd := astro.JulianDayOf(time.Date(2024, 4, 23, 12, 0, 0, 0, time.UTC))
	exact, _, err := MasaAt(jd, astro.Lahiri)
	require.NoError(t, err)
	assert.Equal(t, exact, MasaApprox(jd, astro.Lahiri))
}

func TestMasaFor(t *testing.T) {
	jd := astro.JulianDayOf(time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC))
	m, _, err := MasaAt(jd, astro.Lahiri)
	assert.NoError(t, err)
	assert.Equal(t, m, MasaFor(jd, astro.Lahiri))
}
