package sandbox

import (
	"math"

	"github.com/vovakirdan/hamster-habitat/internal/core"
)

// viewport maps canvas coordinates onto a block of screen cells.
// The canvas is stretched to fill the block; terminal cells are roughly
// twice as tall as they are wide, so a 1000x700 canvas in an 80x20 block
// keeps its proportions well enough.
type viewport struct {
	area   core.Rect
	worldW float64
	worldH float64
}

func newViewport(area core.Rect, worldW, worldH float64) viewport {
	return viewport{area: area, worldW: worldW, worldH: worldH}
}

func (v viewport) valid() bool {
	return v.area.W > 0 && v.area.H > 0 && v.worldW > 0 && v.worldH > 0
}

// toCell returns the cell holding canvas point p, clamped to the area.
func (v viewport) toCell(p core.Vec2) (int, int) {
	if !v.valid() {
		return v.area.X, v.area.Y
	}
	cx := int(math.Floor(p.X / v.worldW * float64(v.area.W)))
	cy := int(math.Floor(p.Y / v.worldH * float64(v.area.H)))
	cx = core.Clamp(cx, 0, v.area.W-1)
	cy = core.Clamp(cy, 0, v.area.H-1)
	return v.area.X + cx, v.area.Y + cy
}

// rectToCells returns the smallest cell block covering r. It is never empty.
func (v viewport) rectToCells(r core.RectF) core.Rect {
	x0, y0 := v.toCell(core.V(r.X, r.Y))
	x1, y1 := v.toCell(core.V(r.X+r.Width, r.Y+r.Height))
	return core.NewRect(x0, y0, max(1, x1-x0+1), max(1, y1-y0+1))
}
