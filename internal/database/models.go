package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zapponejosh/panchanga-api/internal/astro"
)

// Location is a saved observer place.
type Location struct {
	ID        int64     `json:"id" yaml:"-"`
	Name      string    `json:"name" yaml:"name"`
	Latitude  float64   `json:"latitude" yaml:"latitude"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
	TimeZone  string    `json:"time_zone" yaml:"time_zone"`
	Ayanamsa  string    `json:"ayanamsa" yaml:"ayanamsa"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// Validate checks the coordinates, timezone and ayanamsa, filling in
// defaultAyanamsa when none is set and normalizing the ayanamsa name.
func (l *Location) Validate(defaultAyanamsa string) error {
	var errs []error

	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := l.Geo().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := astro.LoadZone(l.TimeZone); err != nil {
		errs = append(errs, err)
	}

	if l.Ayanamsa == "" {
		l.Ayanamsa = defaultAyanamsa
	}
	if a, err := astro.ParseAyanamsa(l.Ayanamsa); err != nil {
		errs = append(errs, err)
	} else {
		l.Ayanamsa = a.String()
	}

	return errors.Join(errs...)
}

// Geo returns the coordinates as an astro.GeoLocation.
func (l Location) Geo() astro.GeoLocation {
	return astro.GeoLocation{Latitude: l.Latitude, Longitude: l.Longitude}
}

// ObservanceKind names a recurring window.
type ObservanceKind string

const (
	KindKalashtami ObservanceKind = "kalashtami"
)

// IsValid checks if an observance kind is known.
func (k ObservanceKind) IsValid() bool {
	return k == KindKalashtami
}

// Observance is a solved window stored for a location.
type Observance struct {
	ID         int64          `json:"id"`
	LocationID int64          `json:"location_id"`
	Kind       ObservanceKind `json:"kind"`
	Start      time.Time      `json:"start"`
	End        time.Time      `json:"end"`
	Masa       string         `json:"masa,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Validate checks the kind and that the window is not empty.
func (o *Observance) Validate() error {
	if !o.Kind.IsValid() {
		return fmt.Errorf("unknown observance kind %q", o.Kind)
	}
	if !o.End.After(o.Start) {
		return fmt.Errorf("observance ends at %s before it starts at %s", o.End, o.Start)
	}
	return nil
}

const timeLayout = time.RFC3339

func formatUTC(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}
