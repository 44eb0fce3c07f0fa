package ui

import (
	"testing"

	"wavefloat/internal/core"
)

func TestLayoutControlsRightAligned(t *testing.T) {
	rows := layoutControls(3, 240)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i, r := range rows {
		if r.plusRect.Max.X != 240-panelPadding {
			t.Fatalf("row %d plus button ends at %d", i, r.plusRect.Max.X)
		}
		if r.minusRect.Max.X != r.plusRect.Min.X-buttonGap {
			t.Fatalf("row %d buttons overlap", i)
		}
		if i > 0 && r.top-rows[i-1].top != lineHeight {
			t.Fatalf("row %d spacing = %d", i, r.top-rows[i-1].top)
		}
	}
	if layoutControls(2, 0) != nil {
		t.Fatal("zero-width panel should have no layout")
	}
}

func TestStepValueClamps(t *testing.T) {
	ctrl := core.ParameterControl{Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true}
	cases := []struct {
		name    string
		current float64
		dir     int
		want    float64
		ok      bool
	}{
		{"up", 0.5, 1, 0.55, true},
		{"down", 0.5, -1, 0.45, true},
		{"clamped_max", 0.98, 1, 1, true},
		{"at_min", 0, -1, 0, false},
		{"no_direction", 0.3, 0, 0.3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := stepValue(ctrl, tc.current, tc.dir)
			if ok != tc.ok || (got-tc.want) > 1e-12 || (tc.want-got) > 1e-12 {
				t.Fatalf("stepValue = %g, %v; want %g, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestFormatFloatPrecisionFollowsStep(t *testing.T) {
	cases := []struct {
		step float64
		want string
	}{
		{0.5, "0.5"},
		{0.05, "0.50"},
		{0.005, "0.500"},
		{0.0005, "0.5000"},
		{0, "0.50"},
	}
	for _, tc := range cases {
		if got := formatFloat(tc.step, 0.5); got != tc.want {
			t.Fatalf("step %g: %q, want %q", tc.step, got, tc.want)
		}
	}
}
