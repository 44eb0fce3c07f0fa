package floating

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidBounds reports a box with min > max on some axis.
var ErrInvalidBounds = errors.New("floating: invalid bounds")

// Bounds is the immutable axis-aligned box bodies are kept inside.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// NewBounds checks min <= max on every axis.
func NewBounds(c BoundsConfig) (Bounds, error) {
	b := Bounds{
		Min: mgl64.Vec3{c.XMin, c.YMin, c.ZMin},
		Max: mgl64.Vec3{c.XMax, c.YMax, c.ZMax},
	}
	for axis := 0; axis < 3; axis++ {
		if !(b.Min[axis] <= b.Max[axis]) {
			return Bounds{}, fmt.Errorf("%w: axis %c min %g > max %g", ErrInvalidBounds, "xyz"[axis], b.Min[axis], b.Max[axis])
		}
	}
	return b, nil
}
