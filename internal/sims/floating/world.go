// Package floating couples rigid bodies to a height-field water surface
// inside an axis-aligned box.
package floating

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"wavefloat/internal/body"
	"wavefloat/internal/core"
	"wavefloat/internal/fluid"
)

// World owns one water surface, one bounds box and an ordered list of bodies.
// Step is not safe for concurrent use; hosts read state between steps.
type World struct {
	cfg    Config
	field  *fluid.HeightField
	bounds Bounds
	bodies []body.Body

	ticks uint64
	time  float64
}

// New validates cfg and builds the world at rest.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bounds, err := NewBounds(cfg.Bounds)
	if err != nil {
		return nil, err
	}
	field, err := fluid.New(fluid.Params{
		Rows:      cfg.Grid.Rows,
		Columns:   cfg.Grid.Columns,
		XSize:     cfg.Grid.XSize,
		YSize:     cfg.Grid.YSize,
		Anchor:    mgl64.Vec3(cfg.Grid.Anchor),
		WaveSpeed: cfg.Physics.WaveSpeed,
	})
	if err != nil {
		return nil, fmt.Errorf("floating: water surface: %w", err)
	}
	bodies := make([]body.Body, 0, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		b, err := newBody(bc)
		if err != nil {
			return nil, fmt.Errorf("floating: body %d: %w", i, err)
		}
		bodies = append(bodies, b)
	}
	cfg.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	return &World{cfg: cfg, field: field, bounds: bounds, bodies: bodies}, nil
}

func newBody(bc BodyConfig) (body.Body, error) {
	var (
		b   body.Body
		err error
	)
	switch bc.Shape {
	case body.KindSphere:
		b, err = body.NewSphere(bc.Mass, bc.Radius, mgl64.Vec3(bc.Position))
	case body.KindCuboid:
		b, err = body.NewCuboid(bc.Mass, mgl64.Vec3(bc.Size), mgl64.Vec3(bc.Position))
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidConfig, bc.Shape)
	}
	if err != nil {
		return nil, err
	}
	b.SetVelocity(mgl64.Vec3(bc.Velocity))
	return b, nil
}

func (w *World) Name() string { return w.cfg.Name }

// Size reports the surface resolution as columns x rows.
func (w *World) Size() core.Size {
	return core.Size{W: w.field.Columns(), H: w.field.Rows()}
}

// Config returns a copy of the active configuration.
func (w *World) Config() Config {
	c := w.cfg
	c.Bodies = append([]BodyConfig(nil), w.cfg.Bodies...)
	return c
}

// Field exposes the water surface for read-only use between steps.
func (w *World) Field() *fluid.HeightField { return w.field }

// Bodies exposes the bodies in processing order.
func (w *World) Bodies() []body.Body { return w.bodies }

func (w *World) Bounds() Bounds { return w.bounds }

// Ticks returns the number of completed steps since construction or Reset.
func (w *World) Ticks() uint64 { return w.ticks }

// Time returns the simulated time in seconds.
func (w *World) Time() float64 { return w.time }

// Reset flattens the water and puts every body back at its configured
// position and velocity.
func (w *World) Reset() {
	w.field.Reset()
	for i, b := range w.bodies {
		b.SetPosition(mgl64.Vec3(w.cfg.Bodies[i].Position))
		b.SetVelocity(mgl64.Vec3(w.cfg.Bodies[i].Velocity))
	}
	w.ticks = 0
	w.time = 0
}

// Step advances the water surface, then integrates each body in order.
func (w *World) Step(dt float64) {
	w.field.Advance(dt)
	for _, b := range w.bodies {
		w.stepBody(b, dt)
	}
	w.ticks++
	w.time += dt
}

func (w *World) stepBody(b body.Body, dt float64) {
	p := w.cfg.Physics

	pos := b.Position().Add(b.Velocity().Mul(dt))
	b.SetPosition(pos)
	vel := b.Velocity()

	box := b.BoundingBox()
	zBounce := false
	for axis := 0; axis < 3; axis++ {
		if (box.Min[axis] <= w.bounds.Min[axis] && vel[axis] < 0) ||
			(box.Max[axis] >= w.bounds.Max[axis] && vel[axis] > 0) {
			vel[axis] = -vel[axis]
			if axis == 2 {
				zBounce = true
			}
		}
	}

	// A bounce tick only reflects; gravity resumes on the next tick.
	if !zBounce {
		vel[2] -= p.Gravity * dt
	}

	surface, ok := w.field.HeightAt(pos.X(), pos.Y())
	if ok && box.Min.Z() <= surface {
		grad, _ := w.field.GradientAt(pos.X(), pos.Y())
		force := mgl64.Vec3{
			-p.GradientCoupling * grad.X(),
			-p.GradientCoupling * grad.Y(),
			b.SubmergedVolume(surface) * p.WaterDensity * p.Gravity,
		}
		m := b.Mass()
		for i := 0; i < 3; i++ {
			vel[i] += force[i] / m * dt
		}
		vel[0] *= p.HorizontalDamping
		vel[1] *= p.HorizontalDamping
		vel[2] *= p.VerticalDamping
	}

	b.SetVelocity(vel)
}

// Interact injects the configured disturbance at the center of zone.
func (w *World) Interact(zone Interaction) error {
	if !zone.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownInteraction, int(zone))
	}
	sx, sy := zone.signs()
	xSize, ySize := w.field.Extents()
	wc := w.cfg.Waves
	return w.field.InjectDisturbance(wc.Amplitude, sx*wc.ZoneOffset*xSize, sy*wc.ZoneOffset*ySize, wc.SigmaX, wc.SigmaY)
}

// ZoneCenter returns the world-space xy center of zone.
func (w *World) ZoneCenter(zone Interaction) mgl64.Vec2 {
	sx, sy := zone.signs()
	xSize, ySize := w.field.Extents()
	a := w.field.Anchor()
	off := w.cfg.Waves.ZoneOffset
	return mgl64.Vec2{a.X() + sx*off*xSize, a.Y() + sy*off*ySize}
}
