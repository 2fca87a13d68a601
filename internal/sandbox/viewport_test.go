package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/hamster-habitat/internal/core"
)

func TestViewportToCell(t *testing.T) {
	v := newViewport(core.NewRect(0, 2, 100, 70), 1000, 700)

	tests := []struct {
		name   string
		p      core.Vec2
		wx, wy int
	}{
		{"origin", core.V(0, 0), 0, 2},
		{"middle", core.V(505, 355), 50, 37},
		{"far corner clamps", core.V(1000, 700), 99, 71},
		{"negative clamps", core.V(-50, -50), 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.toCell(tt.p)
			assert.Equal(t, tt.wx, x)
			assert.Equal(t, tt.wy, y)
		})
	}
}

func TestViewportRectToCellsCoversObjects(t *testing.T) {
	v := newViewport(core.NewRect(0, 4, 80, 19), 1000, 700)

	// The default bowl is 80x40 at (200, 600).
	bowl := core.CenteredRect(core.V(200, 600), 80, 40)
	r := v.rectToCells(bowl)
	assert.Equal(t, core.NewRect(12, 19, 8, 2), r)
	x, y := v.toCell(core.V(200, 600))
	assert.True(t, r.Contains(x, y))
}

func TestViewportRectToCellsNeverEmpty(t *testing.T) {
	v := newViewport(core.NewRect(0, 0, 10, 5), 1000, 700)

	r := v.rectToCells(core.RectF{X: 500, Y: 350, Width: 1, Height: 1})
	assert.Equal(t, 1, r.W)
	assert.Equal(t, 1, r.H)

	r = v.rectToCells(core.RectF{X: 0, Y: 0, Width: 1000, Height: 700})
	assert.Equal(t, core.NewRect(0, 0, 10, 5), r)
}

func TestViewportInvalid(t *testing.T) {
	v := newViewport(core.NewRect(0, 0, 0, 0), 1000, 700)
	assert.False(t, v.valid())
	x, y := v.toCell(core.V(500, 350))
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
}
