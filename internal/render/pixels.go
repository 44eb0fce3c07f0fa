package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Palette controls how the water surface is shaded.
type Palette struct {
	Trough color.RGBA
	Crest  color.RGBA
	Body   color.RGBA
	// HeightRange is the displacement mapped to the full trough..crest blend.
	HeightRange float64
	Ambient     float64
	Light       mgl64.Vec3
}

// DefaultPalette is a blue water look lit from the south-west.
func DefaultPalette() Palette {
	return Palette{
		Trough:      color.RGBA{R: 10, G: 50, B: 110, A: 255},
		Crest:       color.RGBA{R: 120, G: 200, B: 240, A: 255},
		Body:        color.RGBA{R: 240, G: 90, B: 60, A: 255},
		HeightRange: 0.02,
		Ambient:     0.35,
		Light:       mgl64.Vec3{-0.3, -0.5, 1}.Normalize(),
	}
}

// Shade returns the color of a node with normal n and displacement h.
func (p Palette) Shade(n mgl64.Vec3, h float64) color.RGBA {
	lambert := math.Max(0, n.Dot(p.Light))
	t := 0.5
	if p.HeightRange > 0 {
		t = clamp01(0.5 + 0.5*h/p.HeightRange)
	}
	k := p.Ambient + (1-p.Ambient)*lambert
	return color.RGBA{
		R: channel((lerp(p.Trough.R, p.Crest.R, t)) * k),
		G: channel((lerp(p.Trough.G, p.Crest.G, t)) * k),
		B: channel((lerp(p.Trough.B, p.Crest.B, t)) * k),
		A: 255,
	}
}

// fillShadedRGBA writes one pixel per node into buf. Row 0 of the grid is the
// southern edge, so rows are flipped to put north at the top of the image.
func fillShadedRGBA(buf []byte, normals []mgl64.Vec3, heights []float64, rows, cols int, p Palette) {
	for row := 0; row < rows; row++ {
		py := rows - 1 - row
		for col := 0; col < cols; col++ {
			i := row*cols + col
			c := p.Shade(normals[i], heights[i])
			base := (py*cols + col) * 4
			buf[base+0] = c.R
			buf[base+1] = c.G
			buf[base+2] = c.B
			buf[base+3] = c.A
		}
	}
}

func lerp(a, b uint8, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
