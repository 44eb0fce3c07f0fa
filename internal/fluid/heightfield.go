// Package fluid implements the height-field water surface: a regular grid of
// vertical displacements advanced with an explicit leapfrog scheme for the 2D
// linear wave equation.
package fluid

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"wavefloat/internal/core"
)

// DefaultWaveSpeed is the reference wave propagation speed in m/s.
const DefaultWaveSpeed = 0.5

// MinGridNodes is the smallest row/column count the one-sided edge stencils support.
const MinGridNodes = 3

var (
	// ErrInvalidGrid reports unusable grid dimensions or extents.
	ErrInvalidGrid = errors.New("fluid: invalid grid")
	// ErrInvalidDisturbance reports a disturbance with a non-positive spread.
	ErrInvalidDisturbance = errors.New("fluid: invalid disturbance")
)

// Params configures a HeightField.
type Params struct {
	Rows    int
	Columns int
	XSize   float64 // in m
	YSize   float64 // in m
	// Anchor is the world-space center of the surface; heights are relative to Anchor.Z().
	Anchor    mgl64.Vec3
	WaveSpeed float64 // in m/s
}

// HeightField is a rectangular horizontal water surface centered on an anchor
// point. Samples are stored row-major (row*columns+column); row 0 is the
// southern edge (-y) and column 0 the western edge (-x).
//
// Stability of Advance requires the Courant condition c*dt/min(dX, dY) <= 1.
// It is not checked at runtime.
type HeightField struct {
	rows, cols   int
	xSize, ySize float64
	dX, dY       float64
	anchor       mgl64.Vec3
	c            float64

	cur  *core.FloatGrid
	prev *core.FloatGrid
	next *core.FloatGrid
}

// New validates p and allocates a flat surface.
func New(p Params) (*HeightField, error) {
	if p.Rows < MinGridNodes || p.Columns < MinGridNodes {
		return nil, fmt.Errorf("%w: %dx%d nodes, need at least %dx%d", ErrInvalidGrid, p.Rows, p.Columns, MinGridNodes, MinGridNodes)
	}
	if !(p.XSize > 0) || !(p.YSize > 0) || math.IsInf(p.XSize, 0) || math.IsInf(p.YSize, 0) {
		return nil, fmt.Errorf("%w: extents %gx%g must be positive", ErrInvalidGrid, p.XSize, p.YSize)
	}
	if !(p.WaveSpeed >= 0) || math.IsInf(p.WaveSpeed, 0) {
		return nil, fmt.Errorf("%w: wave speed %g", ErrInvalidGrid, p.WaveSpeed)
	}
	return &HeightField{
		rows:   p.Rows,
		cols:   p.Columns,
		xSize:  p.XSize,
		ySize:  p.YSize,
		dX:     p.XSize / float64(p.Columns-1),
		dY:     p.YSize / float64(p.Rows-1),
		anchor: p.Anchor,
		c:      p.WaveSpeed,
		cur:    core.NewFloatGrid(p.Rows, p.Columns),
		prev:   core.NewFloatGrid(p.Rows, p.Columns),
		next:   core.NewFloatGrid(p.Rows, p.Columns),
	}, nil
}

// Rows returns the number of grid rows (y direction).
func (f *HeightField) Rows() int { return f.rows }

// Columns returns the number of grid columns (x direction).
func (f *HeightField) Columns() int { return f.cols }

// Extents returns the physical size of the surface in x and y.
func (f *HeightField) Extents() (xSize, ySize float64) { return f.xSize, f.ySize }

// Spacing returns the grid spacing in x and y.
func (f *HeightField) Spacing() (dX, dY float64) { return f.dX, f.dY }

// Anchor returns the world-space center of the surface.
func (f *HeightField) Anchor() mgl64.Vec3 { return f.anchor }

// WaveSpeed returns the active wave speed in m/s.
func (f *HeightField) WaveSpeed() float64 { return f.c }

// SetWaveSpeed changes the wave speed used by subsequent Advance calls.
// Negative or non-finite values are ignored.
func (f *HeightField) SetWaveSpeed(c float64) {
	if !(c >= 0) || math.IsInf(c, 0) {
		return
	}
	f.c = c
}

// Heights exposes the current displacements. The slice is owned by the field
// and is replaced on the next Advance; callers must treat it as read-only.
func (f *HeightField) Heights() []float64 { return f.cur.Values() }

// PreviousHeights exposes the displacements of the previous time step.
func (f *HeightField) PreviousHeights() []float64 { return f.prev.Values() }

// Height returns the displacement (relative to the anchor) at (row, col).
func (f *HeightField) Height(row, col int) float64 { return f.cur.At(row, col) }

// NodePosition returns the world-space position of the node at (row, col).
func (f *HeightField) NodePosition(row, col int) mgl64.Vec3 {
	x, y := f.nodeModelXY(row, col)
	return mgl64.Vec3{f.anchor.X() + x, f.anchor.Y() + y, f.anchor.Z() + f.cur.At(row, col)}
}

func (f *HeightField) nodeModelXY(row, col int) (float64, float64) {
	return -0.5*f.xSize + float64(col)*f.dX, -0.5*f.ySize + float64(row)*f.dY
}

// Reset flattens the surface.
func (f *HeightField) Reset() {
	f.cur.Clear()
	f.prev.Clear()
	f.next.Clear()
}

// Courant returns the Courant number for the given time step.
func (f *HeightField) Courant(dt float64) float64 {
	return CourantNumber(f.c, dt, f.dX, f.dY)
}

// CourantNumber returns c*dt/min(dX, dY). On a square grid the explicit step
// stays bounded up to about 1/sqrt(2).
func CourantNumber(c, dt, dX, dY float64) float64 {
	return c * dt / math.Min(dX, dY)
}

// Advance moves the surface one time step forward using the second-order wave
// equation. Edge nodes are then copied from their inward neighbours, which
// avoids phase jumps for waves reaching the boundary.
func (f *HeightField) Advance(dt float64) {
	cur := f.cur.Values()
	prev := f.prev.Values()
	next := f.next.Values()

	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			i := row*f.cols + col
			spatial := -f.c * f.c * (f.secondDerivativeX(cur, row, col) + f.secondDerivativeY(cur, row, col))
			next[i] = 2*cur[i] - prev[i] - dt*dt*spatial
		}
	}
	f.copyEdges(next)

	f.prev, f.cur, f.next = f.cur, f.next, f.prev
}

// copyEdges overwrites the boundary rows and columns of h with their nearest
// interior values: west/east columns first, then south/north rows.
func (f *HeightField) copyEdges(h []float64) {
	last := f.cols - 1
	for row := 0; row < f.rows; row++ {
		base := row * f.cols
		h[base] = h[base+1]
		h[base+last] = h[base+last-1]
	}
	north := (f.rows - 1) * f.cols
	for col := 0; col < f.cols; col++ {
		h[col] = h[col+f.cols]
		h[north+col] = h[north+col-f.cols]
	}
}

// InjectDisturbance adds a 2D Gaussian bump centered on (xCenter, yCenter),
// given relative to the anchor. The same values are added to the previous
// step so the temporal difference in the next Advance is unaffected.
func (f *HeightField) InjectDisturbance(amplitude, xCenter, yCenter, sigmaX, sigmaY float64) error {
	if !(sigmaX > 0) || !(sigmaY > 0) {
		return fmt.Errorf("%w: sigma %gx%g must be positive", ErrInvalidDisturbance, sigmaX, sigmaY)
	}
	cur := f.cur.Values()
	prev := f.prev.Values()
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			x, y := f.nodeModelXY(row, col)
			v := Gaussian(x, y, amplitude, xCenter, yCenter, sigmaX, sigmaY)
			i := row*f.cols + col
			cur[i] += v
			prev[i] += v
		}
	}
	return nil
}

// Gaussian evaluates amplitude*exp(-((x-xc)/sx)^2/2 - ((y-yc)/sy)^2/2).
func Gaussian(x, y, amplitude, xCenter, yCenter, sigmaX, sigmaY float64) float64 {
	u := (x - xCenter) / sigmaX
	v := (y - yCenter) / sigmaY
	return amplitude * math.Exp(-u*u/2-v*v/2)
}

// ClosestNode returns the grid node nearest to the world-space point (x, y).
// ok is false when the point lies outside the surface.
func (f *HeightField) ClosestNode(x, y float64) (row, col int, ok bool) {
	lx := x - f.anchor.X()
	ly := y - f.anchor.Y()
	if !(lx >= -0.5*f.xSize && lx <= 0.5*f.xSize && ly >= -0.5*f.ySize && ly <= 0.5*f.ySize) {
		return 0, 0, false
	}
	row = int(math.Round((ly/f.ySize + 0.5) * float64(f.rows-1)))
	col = int(math.Round((lx/f.xSize + 0.5) * float64(f.cols-1)))
	return row, col, true
}

// HeightAt returns the world-space surface height at the node nearest to (x, y).
func (f *HeightField) HeightAt(x, y float64) (float64, bool) {
	row, col, ok := f.ClosestNode(x, y)
	if !ok {
		return 0, false
	}
	return f.anchor.Z() + f.cur.At(row, col), true
}

// GradientAt returns (dh/dx, dh/dy) at the node nearest to (x, y).
func (f *HeightField) GradientAt(x, y float64) (mgl64.Vec2, bool) {
	row, col, ok := f.ClosestNode(x, y)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return f.Gradient(row, col), true
}

// Gradient returns (dh/dx, dh/dy) at (row, col).
func (f *HeightField) Gradient(row, col int) mgl64.Vec2 {
	h := f.cur.Values()
	return mgl64.Vec2{f.firstDerivativeX(h, row, col), f.firstDerivativeY(h, row, col)}
}

// NormalAt returns the unit surface normal at (row, col), the normalized cross
// product of the tangents (1, 0, dh/dx) and (0, 1, dh/dy).
func (f *HeightField) NormalAt(row, col int) mgl64.Vec3 {
	g := f.Gradient(row, col)
	tx := mgl64.Vec3{1, 0, g.X()}
	ty := mgl64.Vec3{0, 1, g.Y()}
	return tx.Cross(ty).Normalize()
}

// Normals writes one normal per node into dst, growing it if needed, and
// returns it. Nothing is cached between calls.
func (f *HeightField) Normals(dst []mgl64.Vec3) []mgl64.Vec3 {
	n := f.rows * f.cols
	if cap(dst) < n {
		dst = make([]mgl64.Vec3, n)
	}
	dst = dst[:n]
	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			dst[row*f.cols+col] = f.NormalAt(row, col)
		}
	}
	return dst
}

func (f *HeightField) firstDerivativeX(h []float64, row, col int) float64 {
	i := row*f.cols + col
	switch col {
	case 0:
		return (h[i+1] - h[i]) / f.dX
	case f.cols - 1:
		return (h[i] - h[i-1]) / f.dX
	default:
		return (h[i+1] - h[i-1]) / (2 * f.dX)
	}
}

func (f *HeightField) firstDerivativeY(h []float64, row, col int) float64 {
	i := row*f.cols + col
	switch row {
	case 0:
		return (h[i+f.cols] - h[i]) / f.dY
	case f.rows - 1:
		return (h[i] - h[i-f.cols]) / f.dY
	default:
		return (h[i+f.cols] - h[i-f.cols]) / (2 * f.dY)
	}
}

// secondDerivativeX uses a central stencil inside and a one-sided
// three-point stencil (first-order) on the western/eastern edges.
func (f *HeightField) secondDerivativeX(h []float64, row, col int) float64 {
	i := row*f.cols + col
	d2 := f.dX * f.dX
	switch col {
	case 0:
		return (-2*h[i] + 4*h[i+1] - 2*h[i+2]) / d2
	case f.cols - 1:
		return (-2*h[i-2] + 4*h[i-1] - 2*h[i]) / d2
	default:
		return (h[i+1] - 2*h[i] + h[i-1]) / d2
	}
}

func (f *HeightField) secondDerivativeY(h []float64, row, col int) float64 {
	i := row*f.cols + col
	w := f.cols
	d2 := f.dY * f.dY
	switch row {
	case 0:
		return (-2*h[i] + 4*h[i+w] - 2*h[i+2*w]) / d2
	case f.rows - 1:
		return (-2*h[i-2*w] + 4*h[i-w] - 2*h[i]) / d2
	default:
		return (h[i+w] - 2*h[i] + h[i-w]) / d2
	}
}
