package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TermSurface rasterizes frames into half-block terminal cells: each cell
// holds two vertical pixels, the upper one in the foreground of '▀'.
type TermSurface struct {
	raster *Rasterizer
	cache  *PerformanceCache
	out    string
	frames int
}

func NewTermSurface() *TermSurface {
	return &TermSurface{
		raster: NewRasterizer(),
		cache:  NewPerformanceCache(),
	}
}

func (ts *TermSurface) Submit(frame Frame) {
	ts.raster.Draw(frame)
	ts.out = ts.halfBlocks()
	ts.frames++
}

// String is the most recently submitted frame.
func (ts *TermSurface) String() string { return ts.out }

// Frames counts submitted frames.
func (ts *TermSurface) Frames() int { return ts.frames }

func (ts *TermSurface) Raster() *Rasterizer { return ts.raster }

type halfCell struct {
	glyph  string
	fg, bg lipgloss.Color
}

func (ts *TermSurface) cellAt(x, y int) (halfCell, bool) {
	top, topLit := ts.raster.At(x, y)
	bottom, bottomLit := ts.raster.At(x, y+1)
	switch {
	case topLit && bottomLit:
		return halfCell{glyph: "▀", fg: rgbaToHex(top), bg: rgbaToHex(bottom)}, true
	case topLit:
		return halfCell{glyph: "▀", fg: rgbaToHex(top)}, true
	case bottomLit:
		return halfCell{glyph: "▄", fg: rgbaToHex(bottom)}, true
	}
	return halfCell{}, false
}

func (ts *TermSurface) halfBlocks() string {
	width, height := ts.raster.Width(), ts.raster.Height()
	sb := ts.cache.GetBuilder()
	defer ts.cache.ReturnBuilder(sb)

	for y := 0; y < height; y += 2 {
		x := 0
		for x < width {
			cell, ok := ts.cellAt(x, y)
			if !ok {
				sb.WriteString(" ")
				x++
				continue
			}

			// Group horizontal runs with the same glyph and colors
			start := x
			x++
			for x < width {
				next, ok := ts.cellAt(x, y)
				if !ok || next != cell {
					break
				}
				x++
			}

			style := ts.cache.GetStyleFGBG(cell.fg, cell.bg)
			sb.WriteString(style.Render(strings.Repeat(cell.glyph, x-start)))
		}
		if y+2 < height {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
