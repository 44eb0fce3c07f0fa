// Package render turns the water surface and bodies into top-down images.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"wavefloat/internal/body"
)

// Surface is the read-only view of a height field the canvas needs.
type Surface interface {
	Rows() int
	Columns() int
	Extents() (xSize, ySize float64)
	Anchor() mgl64.Vec3
	Heights() []float64
	Normals(dst []mgl64.Vec3) []mgl64.Vec3
}

// Canvas rasterizes a surface at scale pixels per node.
type Canvas struct {
	rows, cols int
	scale      int
	palette    Palette

	nodes   []byte
	normals []mgl64.Vec3
	img     *image.RGBA
}

// NewCanvas allocates a canvas for a rows x cols surface.
func NewCanvas(rows, cols, scale int, p Palette) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	return &Canvas{
		rows:    rows,
		cols:    cols,
		scale:   scale,
		palette: p,
		nodes:   make([]byte, 4*rows*cols),
		img:     image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale)),
	}
}

// Image returns the canvas backing image. It is overwritten by Paint.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the image dimensions in pixels.
func (c *Canvas) Size() (int, int) { return c.cols * c.scale, c.rows * c.scale }

// Paint shades every node and then draws the footprint of each body.
func (c *Canvas) Paint(s Surface, bodies []body.Body) error {
	if s.Rows() != c.rows || s.Columns() != c.cols {
		return fmt.Errorf("render: surface is %dx%d, canvas expects %dx%d", s.Rows(), s.Columns(), c.rows, c.cols)
	}
	c.normals = s.Normals(c.normals)
	fillShadedRGBA(c.nodes, c.normals, s.Heights(), c.rows, c.cols, c.palette)
	c.upscale()
	for _, b := range bodies {
		c.drawBody(s, b)
	}
	return nil
}

func (c *Canvas) upscale() {
	stride := c.img.Stride
	for py := 0; py < c.rows; py++ {
		for px := 0; px < c.cols; px++ {
			src := c.nodes[(py*c.cols+px)*4 : (py*c.cols+px)*4+4]
			for dy := 0; dy < c.scale; dy++ {
				off := (py*c.scale+dy)*stride + px*c.scale*4
				for dx := 0; dx < c.scale; dx++ {
					copy(c.img.Pix[off+dx*4:off+dx*4+4], src)
				}
			}
		}
	}
}

// WorldToPixel maps a world-space xy point to image coordinates.
func (c *Canvas) WorldToPixel(s Surface, x, y float64) (float64, float64) {
	xSize, ySize := s.Extents()
	a := s.Anchor()
	col := ((x-a.X())/xSize + 0.5) * float64(c.cols-1)
	row := ((y-a.Y())/ySize + 0.5) * float64(c.rows-1)
	return (col + 0.5) * float64(c.scale), (float64(c.rows-1) - row + 0.5) * float64(c.scale)
}

func (c *Canvas) drawBody(s Surface, b body.Body) {
	box := b.BoundingBox()
	x0, y0 := c.WorldToPixel(s, box.Min.X(), box.Max.Y())
	x1, y1 := c.WorldToPixel(s, box.Max.X(), box.Min.Y())
	cx, cy := (x0+x1)/2, (y0+y1)/2
	rx, ry := (x1-x0)/2, (y1-y0)/2
	round := b.Kind() == body.KindSphere

	bounds := c.img.Bounds()
	minX := max(bounds.Min.X, int(math.Floor(x0)))
	maxX := min(bounds.Max.X, int(math.Ceil(x1)))
	minY := max(bounds.Min.Y, int(math.Floor(y0)))
	maxY := min(bounds.Max.Y, int(math.Ceil(y1)))
	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			fx, fy := float64(px)+0.5, float64(py)+0.5
			if fx < x0 || fx > x1 || fy < y0 || fy > y1 {
				continue
			}
			if round && rx > 0 && ry > 0 {
				u, v := (fx-cx)/rx, (fy-cy)/ry
				if u*u+v*v > 1 {
					continue
				}
			}
			c.img.SetRGBA(px, py, c.palette.Body)
		}
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
