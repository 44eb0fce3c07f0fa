package core

import (
	"slices"
	"testing"
)

func TestFloatGridLayout(t *testing.T) {
	g := NewFloatGrid(3, 4)
	if len(g.Values()) != 12 {
		t.Fatalf("len = %d, want 12", len(g.Values()))
	}
	g.Values()[g.Index(2, 1)] = 7
	if g.At(2, 1) != 7 || g.Values()[9] != 7 {
		t.Fatal("row-major indexing mismatch")
	}

	clone := g.Clone()
	g.Clear()
	if g.At(2, 1) != 0 {
		t.Fatal("Clear left data behind")
	}
	if clone.At(2, 1) != 7 {
		t.Fatal("Clone shares storage with source")
	}
}

func TestNewFloatGridClampsDimensions(t *testing.T) {
	g := NewFloatGrid(0, -3)
	if g.Rows != 1 || g.Cols != 1 || len(g.Values()) != 1 {
		t.Fatalf("got %dx%d (%d values), want 1x1", g.Rows, g.Cols, len(g.Values()))
	}
}

func TestRegisterAndNames(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("core-test-nil", nil)
	if len(Sims()) != before {
		t.Fatal("invalid registrations must be ignored")
	}
	Register("zz-core-test", func(map[string]string) (Sim, error) { return nil, nil })
	Register("aa-core-test", func(map[string]string) (Sim, error) { return nil, nil })
	names := Names()
	if !slices.IsSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "zz-core-test") || !slices.Contains(names, "aa-core-test") {
		t.Fatalf("registered names missing: %v", names)
	}
}

func TestParameterHelpers(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Water", Params: []Parameter{{Key: "wave_speed", Value: "0.5"}}},
	}}
	if p, ok := snap.Lookup("wave_speed"); !ok || p.Value != "0.5" {
		t.Fatalf("Lookup = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup found a missing key")
	}

	ctl := ParameterControl{Min: 0, Max: 2, HasMin: true, HasMax: true}
	if ctl.Clamp(-1) != 0 || ctl.Clamp(3) != 2 || ctl.Clamp(1.5) != 1.5 {
		t.Fatal("Clamp did not respect bounds")
	}
	if (ParameterControl{}).Clamp(-5) != -5 {
		t.Fatal("unbounded control should not clamp")
	}
}
