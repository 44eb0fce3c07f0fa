package main

import (
	"slices"
	"testing"

	"wavefloat/internal/sims/floating"
)

func TestParseWave(t *testing.T) {
	tests := []struct {
		in   string
		want scheduledWave
	}{
		{in: "ne@120", want: scheduledWave{tick: 120, zone: floating.NorthEast}},
		{in: "southwest@3", want: scheduledWave{tick: 3, zone: floating.SouthWest}},
		{in: "se", want: scheduledWave{tick: 0, zone: floating.SouthEast}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseWave(tc.in)
			if err != nil {
				t.Fatalf("parseWave: %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseWave(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}

	for _, bad := range []string{"up@1", "ne@-4", "nw@soon", ""} {
		if _, err := parseWave(bad); err == nil {
			t.Fatalf("parseWave(%q) expected error", bad)
		}
	}
}

func TestWaveScheduleFiresInOrder(t *testing.T) {
	s, err := newWaveSchedule([]string{"ne@5", "sw@2", "nw@2"}, 0, 1)
	if err != nil {
		t.Fatalf("newWaveSchedule: %v", err)
	}
	var fired [][]floating.Interaction
	for tick := uint64(0); tick < 8; tick++ {
		if zones := s.due(tick); len(zones) > 0 {
			fired = append(fired, zones)
		}
	}
	if len(fired) != 2 {
		t.Fatalf("expected two firing ticks, got %v", fired)
	}
	if !slices.Equal(fired[0], []floating.Interaction{floating.SouthWest, floating.NorthWest}) {
		t.Fatalf("tick 2 fired %v", fired[0])
	}
	if !slices.Equal(fired[1], []floating.Interaction{floating.NorthEast}) {
		t.Fatalf("tick 5 fired %v", fired[1])
	}

	s.reset()
	if zones := s.due(10); len(zones) != 3 {
		t.Fatalf("after reset expected all three waves to be due, got %v", zones)
	}
}

func TestWaveScheduleAutoplayIsSeeded(t *testing.T) {
	run := func() []floating.Interaction {
		s, err := newWaveSchedule(nil, 10, 42)
		if err != nil {
			t.Fatalf("newWaveSchedule: %v", err)
		}
		var out []floating.Interaction
		for tick := uint64(0); tick < 100; tick++ {
			out = append(out, s.due(tick)...)
		}
		return out
	}
	a, b := run(), run()
	if len(a) != 10 {
		t.Fatalf("expected a wave every 10 ticks, got %d", len(a))
	}
	if !slices.Equal(a, b) {
		t.Fatalf("same seed produced different waves: %v vs %v", a, b)
	}
}

func TestOverrides(t *testing.T) {
	l := kvList{"mass=0.2", " z =1.1"}
	got, err := l.overrides()
	if err != nil {
		t.Fatalf("overrides: %v", err)
	}
	if got["mass"] != "0.2" || got["z"] != "1.1" {
		t.Fatalf("unexpected overrides %v", got)
	}
	if _, err := (kvList{"mass"}).overrides(); err == nil {
		t.Fatalf("expected error for missing '='")
	}
}
