package body

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	_ Body = (*Sphere)(nil)
	_ Body = (*Cuboid)(nil)
)

func TestConstructorsRejectInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		err  error
		make func() error
	}{
		{"sphere_zero_mass", ErrInvalidMass, func() error { _, err := NewSphere(0, 1, mgl64.Vec3{}); return err }},
		{"sphere_nan_mass", ErrInvalidMass, func() error { _, err := NewSphere(math.NaN(), 1, mgl64.Vec3{}); return err }},
		{"sphere_negative_radius", ErrInvalidShape, func() error { _, err := NewSphere(1, -0.1, mgl64.Vec3{}); return err }},
		{"sphere_inf_radius", ErrInvalidShape, func() error { _, err := NewSphere(1, math.Inf(1), mgl64.Vec3{}); return err }},
		{"cuboid_negative_mass", ErrInvalidMass, func() error { _, err := NewCuboid(-2, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}); return err }},
		{"cuboid_flat", ErrInvalidShape, func() error { _, err := NewCuboid(1, mgl64.Vec3{1, 0, 1}, mgl64.Vec3{}); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.make(); !errors.Is(err, c.err) {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
		})
	}
}

func TestSphereBoundingBoxFollowsPosition(t *testing.T) {
	s, err := NewSphere(0.1, 0.25, mgl64.Vec3{0, 0, 1})
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	s.SetPosition(mgl64.Vec3{1, -1, 0.5})
	box := s.BoundingBox()
	if box.Min != (mgl64.Vec3{0.75, -1.25, 0.25}) || box.Max != (mgl64.Vec3{1.25, -0.75, 0.75}) {
		t.Fatalf("box = %+v", box)
	}
	if box.Center() != s.Position() {
		t.Fatalf("center %v != position %v", box.Center(), s.Position())
	}
	if !box.Contains(mgl64.Vec3{1, -1, 0.25}) || box.Contains(mgl64.Vec3{1, -1, 0.8}) {
		t.Fatal("Contains disagrees with box extents")
	}
}

func TestSphereSubmergedVolume(t *testing.T) {
	const r = 0.25
	s, err := NewSphere(0.1, r, mgl64.Vec3{0, 0, 1})
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	full := 4.0 / 3.0 * math.Pi * r * r * r

	if v := s.SubmergedVolume(1 - r); v != 0 {
		t.Fatalf("plane at bottom: %g, want 0", v)
	}
	if v := s.SubmergedVolume(-3); v != 0 {
		t.Fatalf("plane below: %g, want 0", v)
	}
	if v := s.SubmergedVolume(1 + r); math.Abs(v-full) > 1e-15 {
		t.Fatalf("plane at top: %g, want %g", v, full)
	}
	if v := s.SubmergedVolume(10); math.Abs(v-full) > 1e-15 {
		t.Fatalf("plane above: %g, want %g", v, full)
	}
	if v := s.SubmergedVolume(1); math.Abs(v-full/2) > 1e-12 {
		t.Fatalf("plane at center: %g, want half volume %g", v, full/2)
	}

	prev := 0.0
	for i := 1; i < 100; i++ {
		plane := 1 - r + 2*r*float64(i)/100
		v := s.SubmergedVolume(plane)
		if v <= prev {
			t.Fatalf("volume not increasing at plane %g: %g <= %g", plane, v, prev)
		}
		prev = v
	}
	if prev >= full {
		t.Fatalf("partial volume %g reached full volume", prev)
	}
}

func TestCuboidSubmergedVolume(t *testing.T) {
	c, err := NewCuboid(2, mgl64.Vec3{0.4, 0.2, 0.1}, mgl64.Vec3{0, 0, 0.5})
	if err != nil {
		t.Fatalf("NewCuboid: %v", err)
	}
	cases := []struct {
		plane float64
		want  float64
	}{
		{0.3, 0},
		{0.45, 0},
		{0.5, 0.4 * 0.2 * 0.05},
		{0.55, 0.4 * 0.2 * 0.1},
		{2, 0.4 * 0.2 * 0.1},
	}
	for _, tc := range cases {
		if got := c.SubmergedVolume(tc.plane); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("plane %g: volume %g, want %g", tc.plane, got, tc.want)
		}
	}
	box := c.BoundingBox()
	if !box.Size().ApproxEqualThreshold(c.Size(), 1e-15) {
		t.Fatalf("box size %v, want %v", box.Size(), c.Size())
	}
}

func TestVelocityRoundTrip(t *testing.T) {
	s, err := NewSphere(1, 1, mgl64.Vec3{})
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	s.SetVelocity(mgl64.Vec3{1, 2, 3})
	if s.Velocity() != (mgl64.Vec3{1, 2, 3}) || s.Mass() != 1 || s.Kind() != KindSphere {
		t.Fatalf("unexpected state: v=%v m=%g kind=%s", s.Velocity(), s.Mass(), s.Kind())
	}
}
