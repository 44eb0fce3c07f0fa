package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"wavefloat/internal/sims/floating"
)

func TestRunBatchWritesTrace(t *testing.T) {
	world, err := floating.New(floating.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	schedule, err := newWaveSchedule([]string{"ne@0"}, 0, 1)
	if err != nil {
		t.Fatalf("newWaveSchedule: %v", err)
	}

	var buf bytes.Buffer
	if err := runBatch(&buf, world, schedule, 30, 1.0/60, 10); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if world.Ticks() != 30 {
		t.Fatalf("expected 30 ticks, got %d", world.Ticks())
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	// header plus one row per body at ticks 10, 20 and 30
	if len(records) != 1+3*len(world.Bodies()) {
		t.Fatalf("expected %d records, got %d", 1+3*len(world.Bodies()), len(records))
	}
	if records[0][0] != "tick" || records[1][0] != "10" || records[len(records)-1][0] != "30" {
		t.Fatalf("unexpected trace layout: %v", records)
	}
}

func TestRunBatchWithoutTraceWritesNothing(t *testing.T) {
	world, err := floating.New(floating.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	schedule, _ := newWaveSchedule(nil, 0, 1)
	var buf bytes.Buffer
	if err := runBatch(&buf, world, schedule, 5, 1.0/60, 0); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	cfg, err := loadConfig(options{scene: "regatta", sets: kvList{"wave_amplitude=0.05"}})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Waves.Amplitude != 0.05 {
		t.Fatalf("override not applied: %v", cfg.Waves.Amplitude)
	}
	if len(cfg.Bodies) != 4 {
		t.Fatalf("expected regatta bodies, got %d", len(cfg.Bodies))
	}
	if _, err := loadConfig(options{scene: "nope"}); err == nil {
		t.Fatalf("expected error for unknown scene")
	}
}

func TestPeakDisplacement(t *testing.T) {
	if got := peakDisplacement([]float64{0.1, -0.3, 0.2}); got != 0.3 {
		t.Fatalf("peakDisplacement = %v, want 0.3", got)
	}
}
