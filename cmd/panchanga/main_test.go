package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata() options {
	return options{
		date:      "1993-07-12",
		timeOfDay: "12:26",
		zone:      "Asia/Kolkata",
		ayanamsa:  "lahiri",
		lat:       22.57,
		lon:       88.36,
		horizon:   60,
	}
}

func TestRun_JSON(t *testing.T) {
	o := kolkata()
	o.asJSON = true
	o.kalashtami = true

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, time.Now(), &out))

	var rep report
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	assert.Equal(t, "Somavaara", rep.Vaara)
	assert.Equal(t, 1915, rep.Shaka)
	assert.Equal(t, "lahiri", rep.Ayanamsa.String())
	require.NotNil(t, rep.Sunrise)
	require.NotNil(t, rep.Kalashtami)
	assert.True(t, rep.Kalashtami.End.After(rep.Kalashtami.Start))
}

func TestRun_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), kolkata(), time.Now(), &out))

	text := out.String()
	for _, want := range []string{"Somavaara", "Rahu Kaala", "Shaka 1915", "Sunrise / Sunset"} {
		assert.Contains(t, text, want)
	}
}

func TestRun_Now(t *testing.T) {
	o := kolkata()
	o.date, o.timeOfDay, o.asJSON = "", "", true

	now := time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC)
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), o, now, &out))
	assert.Contains(t, out.String(), `"moment": "2024-03-02T02:00:00+05:30"`)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*options)
		want   string
	}{
		{"ayanamsa", func(o *options) { o.ayanamsa = "kp" }, "ayanamsa"},
		{"zone", func(o *options) { o.zone = "Nowhere/Town" }, "timezone"},
		{"date", func(o *options) { o.date = "12-07-1993" }, "YYYY-MM-DD"},
		{"latitude", func(o *options) { o.lat = 95 }, "latitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := kolkata()
			tt.modify(&o)
			err := run(context.Background(), o, time.Now(), &bytes.Buffer{})
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), "error %q", err)
		})
	}
}
