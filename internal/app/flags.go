package app

import (
	"flag"
	"fmt"

	"wavefloat/internal/core"
	"wavefloat/internal/sims/floating"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Scene    string
	Config   string
	Scale    int
	HUDWidth int
	Watch    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scene: "beachball", Scale: 6, HUDWidth: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "registered scene to load")
	fs.StringVar(&c.Config, "config", c.Config, "YAML scene file (overrides -scene)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per surface node")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload the -config file when it changes")
}

// LoadWorld builds the world selected by the flags.
func (c *Config) LoadWorld() (*floating.World, error) {
	if c.Config != "" {
		cfg, err := floating.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		return floating.New(cfg)
	}
	factory, ok := core.Sims()[c.Scene]
	if !ok {
		return nil, fmt.Errorf("app: unknown scene %q (have %v)", c.Scene, core.Names())
	}
	sim, err := factory(nil)
	if err != nil {
		return nil, err
	}
	w, ok := sim.(*floating.World)
	if !ok {
		return nil, fmt.Errorf("app: scene %q is not a floating world", c.Scene)
	}
	return w, nil
}

// Status formats the tick counter line shown in the HUD.
func Status(w *floating.World, paused bool) string {
	state := "running"
	if paused {
		state = "paused"
	}
	return fmt.Sprintf("tick %d  t=%.2fs  %s", w.Ticks(), w.Time(), state)
}
