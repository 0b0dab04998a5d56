// Package raster draws the orb into an in-memory image so frames can be
// rendered without a window.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Canvas is an engine.Surface over an RGBA image.
type Canvas struct {
	img *image.RGBA
	bg  *image.Uniform
	z   vector.Rasterizer
}

func NewCanvas(width, height int, bg color.Color) *Canvas {
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		bg:  image.NewUniform(bg),
	}
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) SetBackground(bg color.Color) { c.bg = image.NewUniform(bg) }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image when the size changed.
func (c *Canvas) Resize(width, height int) {
	if w, h := c.Size(); w == width && h == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
}

func (c *Canvas) FillCircle(x, y, r float64, col color.Color) {
	if !(r > 0) {
		return
	}
	c.fill(x-r, y-r, x+r, y+r, col, func(z *vector.Rasterizer, ox, oy float64) {
		cx, cy := float32(x-ox), float32(y-oy)
		rr, k := float32(r), float32(r*kappa)
		z.MoveTo(cx+rr, cy)
		z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
		z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
		z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
		z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
		z.ClosePath()
	})
}

// StrokeLine draws the segment as a quad of the given width.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || !(width > 0) {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2
	c.fill(math.Min(x0, x1)-width, math.Min(y0, y1)-width, math.Max(x0, x1)+width, math.Max(y0, y1)+width, col,
		func(z *vector.Rasterizer, ox, oy float64) {
			z.MoveTo(float32(x0+nx-ox), float32(y0+ny-oy))
			z.LineTo(float32(x1+nx-ox), float32(y1+ny-oy))
			z.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
			z.LineTo(float32(x0-nx-ox), float32(y0-ny-oy))
			z.ClosePath()
		})
}

// fill rasterises path inside the clipped bounding box and composites col
// over the image. path receives the box origin to translate into.
func (c *Canvas) fill(minX, minY, maxX, maxY float64, col color.Color, path func(z *vector.Rasterizer, ox, oy float64)) {
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(c.img.Bounds())
	if box.Empty() {
		return
	}
	c.z.Reset(box.Dx(), box.Dy())
	c.z.DrawOp = draw.Over
	path(&c.z, float64(box.Min.X), float64(box.Min.Y))
	c.z.Draw(c.img, box, image.NewUniform(col), image.Point{})
}
