//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"wavefloat/internal/body"
)

// SurfacePainter uploads a Canvas into an ebiten image each frame.
type SurfacePainter struct {
	canvas *Canvas
	img    *ebiten.Image
}

// NewSurfacePainter allocates the GPU image for c.
func NewSurfacePainter(c *Canvas) *SurfacePainter {
	w, h := c.Size()
	return &SurfacePainter{canvas: c, img: ebiten.NewImage(w, h)}
}

// Blit repaints the canvas from s and bodies and draws it at the origin of dst.
func (sp *SurfacePainter) Blit(dst *ebiten.Image, s Surface, bodies []body.Body) error {
	if err := sp.canvas.Paint(s, bodies); err != nil {
		return err
	}
	sp.img.WritePixels(sp.canvas.Image().Pix)
	dst.DrawImage(sp.img, nil)
	return nil
}

// Canvas returns the CPU-side canvas.
func (sp *SurfacePainter) Canvas() *Canvas { return sp.canvas }
