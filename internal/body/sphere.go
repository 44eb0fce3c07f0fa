package body

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// KindSphere identifies spheres in snapshots and config files.
const KindSphere = "sphere"

// Sphere is a solid ball.
type Sphere struct {
	state
	radius float64
}

// NewSphere validates mass and radius and places the sphere at pos.
func NewSphere(mass, radius float64, pos mgl64.Vec3) (*Sphere, error) {
	s, err := newState(mass, pos)
	if err != nil {
		return nil, err
	}
	if !positive(radius) {
		return nil, fmt.Errorf("%w: sphere radius %g", ErrInvalidShape, radius)
	}
	return &Sphere{state: s, radius: radius}, nil
}

func (s *Sphere) Kind() string { return KindSphere }

// Radius returns the sphere radius in m.
func (s *Sphere) Radius() float64 { return s.radius }

// Volume returns 4/3*pi*r^3.
func (s *Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.radius * s.radius * s.radius
}

func (s *Sphere) BoundingBox() AABB {
	r := mgl64.Vec3{s.radius, s.radius, s.radius}
	return AABB{Min: s.position.Sub(r), Max: s.position.Add(r)}
}

// SubmergedVolume uses the spherical cap formula pi*h^2*(3r-h)/3 where h is
// the depth of the plane above the lowest point of the sphere.
func (s *Sphere) SubmergedVolume(planeZ float64) float64 {
	bottom := s.position.Z() - s.radius
	if planeZ <= bottom {
		return 0
	}
	if planeZ >= s.position.Z()+s.radius {
		return s.Volume()
	}
	h := planeZ - bottom
	return math.Pi * h * h * (3*s.radius - h) / 3
}
