package floating

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"wavefloat/internal/body"
)

func writeScene(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func TestLoadConfigMergesOntoDefaults(t *testing.T) {
	path := writeScene(t, `
name: harbor
grid:
  rows: 40
  columns: 60
physics:
  wave_speed: 0.3
bodies:
  - shape: cuboid
    mass: 0.5
    size: [0.2, 0.2, 0.1]
    position: [0, 0, 0.9]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "harbor" || cfg.Grid.Rows != 40 || cfg.Grid.Columns != 60 {
		t.Fatalf("scene fields not applied: %+v", cfg)
	}
	if cfg.Grid.XSize != 2 || cfg.Grid.Anchor != [3]float64{0, 0, 0.5} {
		t.Fatalf("defaults lost: %+v", cfg.Grid)
	}
	if cfg.Physics.WaveSpeed != 0.3 || cfg.Physics.Gravity != StandardGravity {
		t.Fatalf("physics = %+v", cfg.Physics)
	}
	if len(cfg.Bodies) != 1 || cfg.Bodies[0].Shape != body.KindCuboid || cfg.Bodies[0].Size != [3]float64{0.2, 0.2, 0.1} {
		t.Fatalf("bodies = %+v", cfg.Bodies)
	}
	if _, err := New(cfg); err != nil {
		t.Fatalf("loaded scene does not build: %v", err)
	}
}

func TestLoadConfigEmptyFileIsDefault(t *testing.T) {
	cfg, err := LoadConfig(writeScene(t, ""))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("empty scene = %+v, want defaults", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file: expected fs.ErrNotExist, got %v", err)
	}
	if _, err := LoadConfig(writeScene(t, "physics:\n  wave_sped: 1\n")); err == nil {
		t.Fatal("unknown field should be rejected")
	}
	if _, err := LoadConfig(writeScene(t, "tps: 0\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFromMapAppliesOverrides(t *testing.T) {
	base := DefaultConfig()
	cfg, err := FromMap(base, map[string]string{
		"wave_speed": "0.8",
		"rows":       "50",
		"mass":       " 0.2 ",
		"Z":          "1.1",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Physics.WaveSpeed != 0.8 || cfg.Grid.Rows != 50 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Bodies[0].Mass != 0.2 || cfg.Bodies[0].Position[2] != 1.1 {
		t.Fatalf("body overrides not applied: %+v", cfg.Bodies[0])
	}
	if base.Bodies[0].Mass != 0.1 {
		t.Fatal("FromMap mutated the base config")
	}
}

func TestFromMapErrors(t *testing.T) {
	cases := []struct {
		name string
		base Config
		kv   map[string]string
	}{
		{"unknown_key", DefaultConfig(), map[string]string{"viscosity": "1"}},
		{"bad_float", DefaultConfig(), map[string]string{"gravity": "heavy"}},
		{"bad_int", DefaultConfig(), map[string]string{"rows": "1.5"}},
		{"no_bodies", Config{TPS: 60}, map[string]string{"mass": "1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromMap(tc.base, tc.kv); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestOverrideKeysSorted(t *testing.T) {
	keys := OverrideKeys()
	if !slices.IsSorted(keys) || !slices.Contains(keys, "wave_speed") {
		t.Fatalf("keys = %v", keys)
	}
}
