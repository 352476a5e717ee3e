package main

import (
	"image/color"
	"math"
)

// Frame is everything a surface needs to draw one tick.
type Frame struct {
	Vertices  []Vertex
	Transform [16]float64 // MVP, row-major
	Viewport  ViewportState
	PointSize float64
	Rule      FragmentRule
	Elapsed   float64
}

// Surface receives frames from the driver. Submit must not block on
// presentation; the driver never waits for a frame to appear.
type Surface interface {
	Submit(frame Frame)
}

// Rasterizer projects points and shades the pixels they cover. The nearest
// point wins each pixel.
type Rasterizer struct {
	width  int
	height int
	colors []color.RGBA
	depth  []float64
	lit    []bool
	drawn  int
}

func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Resize reallocates the buffers only when the pixel count grows.
func (r *Rasterizer) Resize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	n := width * height
	if cap(r.colors) < n {
		r.colors = make([]color.RGBA, n)
		r.depth = make([]float64, n)
		r.lit = make([]bool, n)
	}
	r.colors = r.colors[:n]
	r.depth = r.depth[:n]
	r.lit = r.lit[:n]
}

func (r *Rasterizer) Clear() {
	for i := range r.lit {
		r.lit[i] = false
		r.depth[i] = math.Inf(1)
		r.colors[i] = color.RGBA{}
	}
	r.drawn = 0
}

// Draw rasterizes the frame into the buffers, resizing them to the frame's
// viewport first.
func (r *Rasterizer) Draw(f Frame) {
	r.Resize(f.Viewport.Width, f.Viewport.Height)
	r.Clear()
	if r.width == 0 || r.height == 0 {
		return
	}

	rule := f.Rule
	if rule == nil {
		rule = GradientRule
	}
	size := int(math.Max(1, math.Round(f.PointSize)))
	half := float64(size) / 2
	w, h := float64(r.width), float64(r.height)
	m := &f.Transform

	for _, v := range f.Vertices {
		x, y, z := v.a, v.b, v.Z
		cw := m[12]*x + m[13]*y + m[14]*z + m[15]
		if cw <= 0 {
			continue
		}
		ndcX := (m[0]*x + m[1]*y + m[2]*z + m[3]) / cw
		ndcY := (m[4]*x + m[5]*y + m[6]*z + m[7]) / cw
		ndcZ := (m[8]*x + m[9]*y + m[10]*z + m[11]) / cw
		if ndcZ < -1 || ndcZ > 1 {
			continue
		}

		px := (ndcX + 1) * 0.5 * w
		py := (1 - ndcY) * 0.5 * h
		x0 := int(math.Floor(px - half + 0.5))
		y0 := int(math.Floor(py - half + 0.5))
		for dy := 0; dy < size; dy++ {
			sy := y0 + dy
			if sy < 0 || sy >= r.height {
				continue
			}
			for dx := 0; dx < size; dx++ {
				sx := x0 + dx
				if sx < 0 || sx >= r.width {
					continue
				}
				idx := sy*r.width + sx
				if ndcZ >= r.depth[idx] {
					continue
				}
				r.depth[idx] = ndcZ
				r.lit[idx] = true
				r.colors[idx] = rule(float64(sx)+0.5, h-float64(sy)-0.5, w, h)
			}
		}
		r.drawn++
	}
}

func (r *Rasterizer) Width() int  { return r.width }
func (r *Rasterizer) Height() int { return r.height }

// Drawn is the number of points in front of the camera and inside the
// near/far range during the last Draw.
func (r *Rasterizer) Drawn() int { return r.drawn }

// At returns the color of pixel (x, y), top-left origin, and whether any
// point covered it.
func (r *Rasterizer) At(x, y int) (color.RGBA, bool) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return color.RGBA{}, false
	}
	idx := y*r.width + x
	return r.colors[idx], r.lit[idx]
}

// FillRGBA writes the raster into buf as RGBA bytes. Uncovered pixels become
// the background color.
func (r *Rasterizer) FillRGBA(buf []byte, background color.RGBA) {
	for i, c := range r.colors {
		if !r.lit[i] {
			c = background
		}
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}
