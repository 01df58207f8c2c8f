package calendar

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

func TestFindKalashtami_Janmashtami2024(t *testing.T) {
	from := astro.JulianDayOf(time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC))

	w, err := FindKalashtami(from, astro.Lahiri, 0)
	require.NoError(t, err)

	// Ashtami ran from 03:39 IST on 26 August to 02:19 IST on 27 August.
	assert.WithinDuration(t, time.Date(2024, 8, 25, 22, 9, 0, 0, time.UTC), w.StartTime(), 15*time.Minute)
	assert.WithinDuration(t, time.Date(2024, 8, 26, 20, 49, 0, 0, time.UTC), w.EndTime(), 15*time.Minute)
}

func TestFindKalashtami_Invariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 8))
	base := astro.JulianDayOf(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC))

	for i := 0; i < 40; i++ {
		from := base.AddDays(rng.Float64() * 365.25 * 50)
		for _, a := range astro.Ayanamsas() {
			w, err := FindKalashtami(from, a, DefaultHorizonDays)
			require.NoError(t, err)

			fn := astro.Elongation(a)
			assert.InDelta(t, 0, astro.WrapSigned(fn(w.Start)-KalashtamiStart), 1e-4)
			assert.InDelta(t, 0, astro.WrapSigned(fn(w.End)-KalashtamiEnd), 1e-4)
			assert.Greater(t, w.End, from)
			assert.Less(t, float64(w.Start-from), 31.0)

			hours := w.Duration().Hours()
			assert.True(t, hours > 19 && hours < 27, "window lasts %v hours", hours)

			mid := (w.Start + w.End) / 2
			assert.Equal(t, Tithi(23), TithiAt(fn(mid)))
		}
	}
}

func TestFindKalashtami_InProgress(t *testing.T) {
	from := astro.JulianDayOf(time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC))
	w, err := FindKalashtami(from, astro.Lahiri, 0)
	require.NoError(t, err)

	for _, into := range []float64{0.01, 0.1, 0.5, 0.8} {
		inside := w.Start.AddDays(into)
		got, err := FindKalashtami(inside, astro.Lahiri, 0)
		require.NoError(t, err)
		assert.InDelta(t, float64(w.Start), float64(got.Start), 1e-5, "from start+%v", into)
		assert.True(t, got.Contains(inside))
	}

	// Once it has ended the next month's window is returned.
	next, err := FindKalashtami(w.End.AddDays(0.01), astro.Lahiri, 0)
	require.NoError(t, err)
	assert.InDelta(t, 29.5, float64(next.Start-w.Start), 1.5)
}

func TestFindKalashtami_HorizonExhausted(t *testing.T) {
	from := astro.JulianDayOf(time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC))
	w, err := FindKalashtami(from, astro.Lahiri, 0)
	require.NoError(t, err)

	_, err = FindKalashtami(w.End.AddDays(1), astro.Lahiri, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, astro.ErrTransitionNotFound)
	assert.Contains(t, err.Error(), "within 5 days")
}

func TestKalashtamisBetween(t *testing.T) {
	from := astro.JulianDayOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	to := astro.JulianDayOf(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	windows, err := KalashtamisBetween(from, to, astro.Lahiri)
	require.NoError(t, err)
	assert.True(t, len(windows) == 12 || len(windows) == 13, "got %d windows", len(windows))

	for i, w := range windows {
		assert.GreaterOrEqual(t, w.Start, from)
		assert.Less(t, w.Start, to)
		if i > 0 {
			gap := float64(w.Start - windows[i-1].Start)
			assert.InDelta(t, 29.5, gap, 1.5, "gap before window %d", i)
		}
	}
}

func TestFindTithiEnd(t *testing.T) {
	rng := rand.New(rand.NewPCG(30, 12))
	base := astro.JulianDayOf(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	fn := astro.Elongation(astro.Lahiri)

	for i := 0; i < 200; i++ {
		jd := base.AddDays(rng.Float64() * 365.25 * 30)
		end, err := FindTithiEnd(jd, astro.Lahiri)
		require.NoError(t, err)

		before := TithiAt(fn(jd))
		assert.Greater(t, end, jd)
		assert.Less(t, float64(end-jd), 1.2)

		boundary := astro.Mod360(before.StartElongation() + TithiSpan)
		assert.InDelta(t, 0, astro.WrapSigned(fn(end)-boundary), 1e-4)

		after := TithiAt(fn(end.AddDays(1e-4)))
		assert.Equal(t, Tithi(wrapIndex(int(before)+1, 30)), after)
	}
}
