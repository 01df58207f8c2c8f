package calendar

import (
	"fmt"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

// Kalashtami is Krishna paksha Ashtami, the 23rd tithi.
const (
	KalashtamiStart = 264.0
	KalashtamiEnd   = 276.0

	// DefaultHorizonDays bounds the forward search. Two synodic months
	// always contain an occurrence.
	DefaultHorizonDays = 60
)

// Window is a span between two solved transitions.
type Window struct {
	Start astro.JulianDay
	End   astro.JulianDay
}

// Contains reports whether jd falls in [Start, End).
func (w Window) Contains(jd astro.JulianDay) bool {
	return jd >= w.Start && jd < w.End
}

// StartTime returns Start as a UTC instant.
func (w Window) StartTime() time.Time { return astro.FromJulianDay(w.Start) }

// EndTime returns End as a UTC instant.
func (w Window) EndTime() time.Time { return astro.FromJulianDay(w.End) }

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.EndTime().Sub(w.StartTime())
}

// FindKalashtami returns the first Kalashtami window that has not ended by
// from. A window already in progress at from is returned. horizonDays <= 0
// means DefaultHorizonDays.
func FindKalashtami(from astro.JulianDay, a astro.Ayanamsa, horizonDays int) (Window, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	fn := astro.Elongation(a)

	// A tithi lasts under 27 hours, so starting two days early catches a
	// window already in progress at from.
	scan := from.AddDays(-2)
	prev := astro.WrapSigned(fn(scan) - KalashtamiStart)
	for day := 1; day <= horizonDays+2; day++ {
		jd := scan.AddDays(float64(day))
		cur := astro.WrapSigned(fn(jd) - KalashtamiStart)

		if prev < 0 && cur >= 0 {
			w, err := solveWindow(jd, fn)
			if err != nil {
				return Window{}, err
			}
			if w.End > from {
				return w, nil
			}
		}
		prev = cur
	}

	return Window{}, fmt.Errorf("%w: kalashtami not found within %d days", astro.ErrTransitionNotFound, horizonDays)
}

// solveWindow refines a start crossing known to lie in (jd-1, jd].
func solveWindow(jd astro.JulianDay, fn astro.AngleFunc) (Window, error) {
	start, err := astro.FindTransition(jd.AddDays(-2), jd.AddDays(1), KalashtamiStart, fn)
	if err != nil {
		return Window{}, fmt.Errorf("kalashtami start: %w", err)
	}
	// A tithi never lasts two days.
	end, err := astro.FindTransition(start, start.AddDays(2), KalashtamiEnd, fn)
	if err != nil {
		return Window{}, fmt.Errorf("kalashtami end: %w", err)
	}
	return Window{Start: start, End: end}, nil
}

// KalashtamisBetween returns every Kalashtami window that starts in
// [from, to).
func KalashtamisBetween(from, to astro.JulianDay, a astro.Ayanamsa) ([]Window, error) {
	var out []Window
	cursor := from
	for cursor < to {
		w, err := FindKalashtami(cursor, a, DefaultHorizonDays)
		if err != nil {
			return out, err
		}
		if w.Start >= to {
			break
		}
		if w.Start >= from {
			out = append(out, w)
		}
		cursor = w.End.AddDays(1)
	}
	return out, nil
}

// FindTithiEnd returns the instant the tithi in force at jd ends.
func FindTithiEnd(jd astro.JulianDay, a astro.Ayanamsa) (astro.JulianDay, error) {
	fn := astro.Elongation(a)
	target := TithiAt(fn(jd)).StartElongation() + TithiSpan

	end, err := astro.FindTransition(jd, jd.AddDays(2), astro.Mod360(target), fn)
	if err != nil {
		return 0, fmt.Errorf("tithi end after %.5f: %w", float64(jd), err)
	}
	return end, nil
}
