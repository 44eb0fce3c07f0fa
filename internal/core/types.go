package core

import "sort"

// Size describes the node dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a fixed-step simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset()
	Step(dt float64)
}

// Factory constructs a Sim from optional key/value overrides.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
