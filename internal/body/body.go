// Package body holds the rigid bodies that float on the water surface. A body
// only carries physics state; renderers read it between steps.
package body

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidMass reports a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("body: mass must be positive")
	// ErrInvalidShape reports non-positive or non-finite shape dimensions.
	ErrInvalidShape = errors.New("body: invalid shape")
)

// Body is the physics capability the world integrates.
type Body interface {
	Kind() string
	Mass() float64
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	// BoundingBox returns the world-space box around the current position.
	BoundingBox() AABB
	// SubmergedVolume returns the volume (m^3) lying below the plane z = planeZ.
	SubmergedVolume(planeZ float64) float64
	Volume() float64
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Size returns the edge lengths of the box.
func (b AABB) Size() mgl64.Vec3 { return b.Max.Sub(b.Min) }

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

type state struct {
	mass     float64
	position mgl64.Vec3
	velocity mgl64.Vec3
}

func newState(mass float64, pos mgl64.Vec3) (state, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return state{}, fmt.Errorf("%w: %g", ErrInvalidMass, mass)
	}
	return state{mass: mass, position: pos}, nil
}

func (s *state) Mass() float64            { return s.mass }
func (s *state) Position() mgl64.Vec3     { return s.position }
func (s *state) SetPosition(p mgl64.Vec3) { s.position = p }
func (s *state) Velocity() mgl64.Vec3     { return s.velocity }
func (s *state) SetVelocity(v mgl64.Vec3) { s.velocity = v }

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
