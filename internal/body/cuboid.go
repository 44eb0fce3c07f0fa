package body

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// KindCuboid identifies axis-aligned boxes in snapshots and config files.
const KindCuboid = "cuboid"

// Cuboid is an axis-aligned box that never rotates.
type Cuboid struct {
	state
	size mgl64.Vec3
}

// NewCuboid validates mass and edge lengths and centers the box on pos.
func NewCuboid(mass float64, size, pos mgl64.Vec3) (*Cuboid, error) {
	s, err := newState(mass, pos)
	if err != nil {
		return nil, err
	}
	if !positive(size.X()) || !positive(size.Y()) || !positive(size.Z()) {
		return nil, fmt.Errorf("%w: cuboid size %v", ErrInvalidShape, size)
	}
	return &Cuboid{state: s, size: size}, nil
}

func (c *Cuboid) Kind() string { return KindCuboid }

// Size returns the edge lengths in m.
func (c *Cuboid) Size() mgl64.Vec3 { return c.size }

func (c *Cuboid) Volume() float64 { return c.size.X() * c.size.Y() * c.size.Z() }

func (c *Cuboid) BoundingBox() AABB {
	half := c.size.Mul(0.5)
	return AABB{Min: c.position.Sub(half), Max: c.position.Add(half)}
}

// SubmergedVolume is the footprint times the immersed depth, clamped to the box height.
func (c *Cuboid) SubmergedVolume(planeZ float64) float64 {
	depth := planeZ - (c.position.Z() - 0.5*c.size.Z())
	if depth <= 0 {
		return 0
	}
	if depth >= c.size.Z() {
		return c.Volume()
	}
	return c.size.X() * c.size.Y() * depth
}
