package main

import (
	"image/color"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// PerformanceCache reuses styles and string builders across frames. A full
// terminal redraws every style each tick, so building them once matters.
type PerformanceCache struct {
	styleCache  map[cellKey]lipgloss.Style
	styleMu     sync.RWMutex
	builderPool sync.Pool
}

type cellKey struct {
	fg, bg lipgloss.Color
}

func NewPerformanceCache() *PerformanceCache {
	return &PerformanceCache{
		styleCache: make(map[cellKey]lipgloss.Style, 3000),
		builderPool: sync.Pool{
			New: func() interface{} {
				return new(strings.Builder)
			},
		},
	}
}

// GetStyleFGBG returns a cached style; an empty color leaves that side at the
// terminal default.
func (pc *PerformanceCache) GetStyleFGBG(fg, bg lipgloss.Color) lipgloss.Style {
	key := cellKey{fg: fg, bg: bg}
	pc.styleMu.RLock()
	style, ok := pc.styleCache[key]
	pc.styleMu.RUnlock()
	if ok {
		return style
	}

	pc.styleMu.Lock()
	defer pc.styleMu.Unlock()
	if style, ok = pc.styleCache[key]; ok {
		return style
	}
	style = lipgloss.NewStyle()
	if fg != "" {
		style = style.Foreground(fg)
	}
	if bg != "" {
		style = style.Background(bg)
	}
	pc.styleCache[key] = style
	return style
}

// StyleCount is the number of distinct cell styles built so far.
func (pc *PerformanceCache) StyleCount() int {
	pc.styleMu.RLock()
	defer pc.styleMu.RUnlock()
	return len(pc.styleCache)
}

func (pc *PerformanceCache) GetBuilder() *strings.Builder {
	sb := pc.builderPool.Get().(*strings.Builder)
	sb.Reset()
	return sb
}

func (pc *PerformanceCache) ReturnBuilder(sb *strings.Builder) {
	pc.builderPool.Put(sb)
}

func rgbaToHex(c color.RGBA) lipgloss.Color {
	return uint8ToHex(c.R, c.G, c.B)
}

func uint8ToHex(r, g, b uint8) lipgloss.Color {
	const hex = "0123456789ABCDEF"
	var res [7]byte
	res[0] = '#'
	res[1] = hex[r>>4]
	res[2] = hex[r&0x0F]
	res[3] = hex[g>>4]
	res[4] = hex[g&0x0F]
	res[5] = hex[b>>4]
	res[6] = hex[b&0x0F]
	return lipgloss.Color(string(res[:]))
}

func parseHex(hex string) (uint8, uint8, uint8, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}

	r := hexToUint8(hex[1], hex[2])
	g := hexToUint8(hex[3], hex[4])
	b := hexToUint8(hex[5], hex[6])

	return r, g, b, true
}

func hexToUint8(h, l byte) uint8 {
	return (unhex(h) << 4) | unhex(l)
}

func unhex(b byte) uint8 {
	switch {
	case '0' <= b && b <= '9':
		return b - '0'
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}
