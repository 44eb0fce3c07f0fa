package floating

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyState is the render-facing view of a body.
type BodyState struct {
	Kind     string     `json:"kind"`
	Mass     float64    `json:"mass"`
	Position mgl64.Vec3 `json:"position"`
	Velocity mgl64.Vec3 `json:"velocity"`
	// Orientation is a w, x, y, z quaternion. Bodies never rotate.
	Orientation [4]float64 `json:"orientation"`
	HalfExtents mgl64.Vec3 `json:"half_extents"`
}

// Snapshot is a copy of the world state taken between steps.
type Snapshot struct {
	Scene   string      `json:"scene"`
	Tick    uint64      `json:"tick"`
	Time    float64     `json:"time"`
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Extents [2]float64  `json:"extents"`
	Anchor  mgl64.Vec3  `json:"anchor"`
	Heights []float64   `json:"heights,omitempty"`
	Bodies  []BodyState `json:"bodies"`
}

// Snapshot copies the current state. Heights are only included when
// withHeights is set since they dominate the payload.
func (w *World) Snapshot(withHeights bool) Snapshot {
	xSize, ySize := w.field.Extents()
	s := Snapshot{
		Scene:   w.cfg.Name,
		Tick:    w.ticks,
		Time:    w.time,
		Rows:    w.field.Rows(),
		Columns: w.field.Columns(),
		Extents: [2]float64{xSize, ySize},
		Anchor:  w.field.Anchor(),
		Bodies:  make([]BodyState, 0, len(w.bodies)),
	}
	if withHeights {
		s.Heights = append([]float64(nil), w.field.Heights()...)
	}
	q := mgl64.QuatIdent()
	for _, b := range w.bodies {
		s.Bodies = append(s.Bodies, BodyState{
			Kind:        b.Kind(),
			Mass:        b.Mass(),
			Position:    b.Position(),
			Velocity:    b.Velocity(),
			Orientation: [4]float64{q.W, q.V.X(), q.V.Y(), q.V.Z()},
			HalfExtents: b.BoundingBox().Size().Mul(0.5),
		})
	}
	return s
}
