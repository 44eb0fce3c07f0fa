package floating

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"wavefloat/internal/body"
	"wavefloat/internal/fluid"
)

// Reference physical constants.
const (
	StandardGravity = 9.80665 // m/s^2
	WaterDensity    = 997.0   // kg/m^3
)

// ErrInvalidConfig reports a configuration that cannot describe a world.
var ErrInvalidConfig = errors.New("floating: invalid config")

// GridConfig places and sizes the water surface.
type GridConfig struct {
	Rows    int        `yaml:"rows"`
	Columns int        `yaml:"columns"`
	XSize   float64    `yaml:"x_size"`
	YSize   float64    `yaml:"y_size"`
	Anchor  [3]float64 `yaml:"anchor"`
}

// BoundsConfig is the box the bodies bounce inside.
type BoundsConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
	ZMin float64 `yaml:"z_min"`
	ZMax float64 `yaml:"z_max"`
}

// BodyConfig describes one rigid body. Radius applies to spheres, Size to cuboids.
type BodyConfig struct {
	Shape    string     `yaml:"shape"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius,omitempty"`
	Size     [3]float64 `yaml:"size,omitempty"`
	Position [3]float64 `yaml:"position"`
	Velocity [3]float64 `yaml:"velocity,omitempty"`
}

// Physics holds the coupling constants. The defaults are ad hoc values tuned
// for the reference scene.
type Physics struct {
	WaveSpeed         float64 `yaml:"wave_speed"`
	Gravity           float64 `yaml:"gravity"`
	WaterDensity      float64 `yaml:"water_density"`
	GradientCoupling  float64 `yaml:"gradient_coupling"`
	HorizontalDamping float64 `yaml:"horizontal_damping"`
	VerticalDamping   float64 `yaml:"vertical_damping"`
}

// WaveConfig shapes the disturbances injected by interactions.
type WaveConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	SigmaX    float64 `yaml:"sigma_x"`
	SigmaY    float64 `yaml:"sigma_y"`
	// ZoneOffset is the zone center distance from the anchor as a fraction of the extent.
	ZoneOffset float64 `yaml:"zone_offset"`
}

// Config controls the floating-body world.
type Config struct {
	Name    string       `yaml:"name"`
	TPS     int          `yaml:"tps"`
	Grid    GridConfig   `yaml:"grid"`
	Bounds  BoundsConfig `yaml:"bounds"`
	Bodies  []BodyConfig `yaml:"bodies"`
	Physics Physics      `yaml:"physics"`
	Waves   WaveConfig   `yaml:"waves"`
}

// DefaultConfig returns the beach ball scene.
func DefaultConfig() Config {
	return Config{
		Name: "beachball",
		TPS:  60,
		Grid: GridConfig{
			Rows:    100,
			Columns: 100,
			XSize:   2,
			YSize:   2,
			Anchor:  [3]float64{0, 0, 0.5},
		},
		Bounds: BoundsConfig{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: 0, ZMax: 1.5},
		Bodies: []BodyConfig{
			{Shape: body.KindSphere, Mass: 0.1, Radius: 0.25, Position: [3]float64{0, 0, 1}},
		},
		Physics: DefaultPhysics(),
		Waves: WaveConfig{
			Amplitude:  0.02,
			SigmaX:     0.1,
			SigmaY:     0.1,
			ZoneOffset: 0.25,
		},
	}
}

// DefaultPhysics returns the reference coupling constants.
func DefaultPhysics() Physics {
	return Physics{
		WaveSpeed:         fluid.DefaultWaveSpeed,
		Gravity:           StandardGravity,
		WaterDensity:      WaterDensity,
		GradientCoupling:  0.1,
		HorizontalDamping: 0.99,
		VerticalDamping:   0.5,
	}
}

// RegattaConfig returns a scene with three balls and a crate dropped at
// different heights over each quadrant.
func RegattaConfig() Config {
	c := DefaultConfig()
	c.Name = "regatta"
	c.Bodies = []BodyConfig{
		{Shape: body.KindSphere, Mass: 0.05, Radius: 0.12, Position: [3]float64{-0.5, -0.5, 0.8}},
		{Shape: body.KindSphere, Mass: 0.08, Radius: 0.15, Position: [3]float64{0.5, -0.5, 0.9}},
		{Shape: body.KindSphere, Mass: 0.03, Radius: 0.1, Position: [3]float64{-0.5, 0.5, 1.0}, Velocity: [3]float64{0.3, 0, 0}},
		{Shape: body.KindCuboid, Mass: 0.2, Size: [3]float64{0.3, 0.2, 0.1}, Position: [3]float64{0.5, 0.5, 0.9}},
	}
	return c
}

// LoadConfig reads a YAML scene on top of DefaultConfig. Unknown fields are
// rejected; a listed bodies section replaces the default bodies.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("floating: load %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("floating: unmarshal %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("floating: %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the fields that are not covered by the fluid and body
// constructors.
func (c Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, c.TPS)
	}
	p := c.Physics
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"wave_speed", p.WaveSpeed},
		{"gravity", p.Gravity},
		{"water_density", p.WaterDensity},
		{"gradient_coupling", p.GradientCoupling},
	} {
		if v.val < 0 || math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return fmt.Errorf("%w: %s %g", ErrInvalidConfig, v.name, v.val)
		}
	}
	if !(p.HorizontalDamping >= 0 && p.HorizontalDamping <= 1) || !(p.VerticalDamping >= 0 && p.VerticalDamping <= 1) {
		return fmt.Errorf("%w: damping factors must lie in [0, 1]", ErrInvalidConfig)
	}
	if !(c.Waves.SigmaX > 0) || !(c.Waves.SigmaY > 0) {
		return fmt.Errorf("%w: wave sigma %gx%g", ErrInvalidConfig, c.Waves.SigmaX, c.Waves.SigmaY)
	}
	for i, b := range c.Bodies {
		if b.Shape != body.KindSphere && b.Shape != body.KindCuboid {
			return fmt.Errorf("%w: body %d has unknown shape %q", ErrInvalidConfig, i, b.Shape)
		}
	}
	return nil
}

type setter func(c *Config, raw string) error

func intField(field func(c *Config) *int) setter {
	return func(c *Config, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

func floatField(field func(c *Config) *float64) setter {
	return func(c *Config, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*field(c) = v
		return nil
	}
}

// firstBody targets the first configured body.
func firstBody(field func(b *BodyConfig) *float64) setter {
	return func(c *Config, raw string) error {
		if len(c.Bodies) == 0 {
			return errors.New("scene has no bodies")
		}
		return floatField(func(c *Config) *float64 { return field(&c.Bodies[0]) })(c, raw)
	}
}

var overrides = map[string]setter{
	"tps":                intField(func(c *Config) *int { return &c.TPS }),
	"rows":               intField(func(c *Config) *int { return &c.Grid.Rows }),
	"columns":            intField(func(c *Config) *int { return &c.Grid.Columns }),
	"x_size":             floatField(func(c *Config) *float64 { return &c.Grid.XSize }),
	"y_size":             floatField(func(c *Config) *float64 { return &c.Grid.YSize }),
	"water_level":        floatField(func(c *Config) *float64 { return &c.Grid.Anchor[2] }),
	"wave_speed":         floatField(func(c *Config) *float64 { return &c.Physics.WaveSpeed }),
	"gravity":            floatField(func(c *Config) *float64 { return &c.Physics.Gravity }),
	"water_density":      floatField(func(c *Config) *float64 { return &c.Physics.WaterDensity }),
	"gradient_coupling":  floatField(func(c *Config) *float64 { return &c.Physics.GradientCoupling }),
	"horizontal_damping": floatField(func(c *Config) *float64 { return &c.Physics.HorizontalDamping }),
	"vertical_damping":   floatField(func(c *Config) *float64 { return &c.Physics.VerticalDamping }),
	"wave_amplitude":     floatField(func(c *Config) *float64 { return &c.Waves.Amplitude }),
	"wave_sigma_x":       floatField(func(c *Config) *float64 { return &c.Waves.SigmaX }),
	"wave_sigma_y":       floatField(func(c *Config) *float64 { return &c.Waves.SigmaY }),
	"wave_zone_offset":   floatField(func(c *Config) *float64 { return &c.Waves.ZoneOffset }),
	"mass":               firstBody(func(b *BodyConfig) *float64 { return &b.Mass }),
	"radius":             firstBody(func(b *BodyConfig) *float64 { return &b.Radius }),
	"z":                  firstBody(func(b *BodyConfig) *float64 { return &b.Position[2] }),
}

// OverrideKeys lists the keys FromMap understands, sorted.
func OverrideKeys() []string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromMap applies flag-style key/value overrides on top of base. Keys are
// applied in sorted order so the first reported error is stable.
func FromMap(base Config, kv map[string]string) (Config, error) {
	c := base
	c.Bodies = append([]BodyConfig(nil), base.Bodies...)
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		set, ok := overrides[strings.ToLower(k)]
		if !ok {
			return base, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, k)
		}
		if err := set(&c, strings.TrimSpace(kv[k])); err != nil {
			return base, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, k, kv[k], err)
		}
	}
	return c, nil
}
