package sandbox

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/hamster-habitat/internal/core"
	"github.com/vovakirdan/hamster-habitat/internal/habitat"
)

// HUD geometry
const (
	nameWidth     = 9
	barWidth      = 6
	minCanvasRows = 8
	wheelRimDots  = 24
	wheelSpokes   = 4
	wheelHubInset = 15.0
)

// Visual characters
const (
	wallGap     = ' '
	tubeChar    = '·'
	foodChar    = '●'
	emptyBowl   = '○'
	waterChar   = '█'
	emptyBottle = '░'
	rimChar     = 'o'
	spokeChar   = '*'
	hubChar     = '+'
	tunnelChar  = '▒'
	barFull     = '█'
	barEmpty    = '░'
)

// stateIcons mark a creature's activity above its sprite.
var stateIcons = map[habitat.State]struct {
	r rune
	c core.Color
}{
	habitat.StateExploring: {'?', core.ColorYellow},
	habitat.StateEating:    {'*', core.ColorGold},
	habitat.StateDrinking:  {'~', core.ColorBrightBlue},
	habitat.StateSleeping:  {'z', core.ColorWhite},
	habitat.StatePlaying:   {'!', core.ColorGreen},
}

// hudRows returns how many rows above the canvas the HUD takes on a screen
// of height h: a title row plus one row per creature if they fit.
func (s *Sandbox) hudRows(h int) int {
	full := 1 + len(s.creatures)
	if h-full-1 >= minCanvasRows {
		return full
	}
	return 1
}

// viewportFor places the canvas between the HUD and the feedback row.
func (s *Sandbox) viewportFor(w, h int) viewport {
	top := s.hudRows(h)
	area := core.NewRect(0, top, w, max(0, h-top-1))
	return newViewport(area, s.cfg.Canvas.Width, s.cfg.Canvas.Height)
}

// Render draws the habitat. dst is expected to be cleared.
func (s *Sandbox) Render(dst *core.Screen) {
	if dst.Width() != s.config.ScreenW || dst.Height() != s.config.ScreenH {
		s.Resize(dst.Width(), dst.Height())
	}
	if !s.view.valid() {
		dst.DrawTextCentered(dst.Height()/2, "terminal too small")
		return
	}

	s.renderRooms(dst)
	s.renderTubes(dst)
	s.renderObjects(dst)
	s.renderCreatures(dst)
	s.renderHUD(dst)

	if s.feedback != "" {
		dst.DrawTextColored((dst.Width()-core.TextWidth(s.feedback))/2, dst.Height()-1, s.feedback, core.ColorGreen)
	}
	if s.paused {
		s.renderPause(dst)
	}
}

func (s *Sandbox) renderRooms(dst *core.Screen) {
	for _, r := range s.layout.Rooms() {
		box := s.view.rectToCells(r.Bounds)
		if box.W < 2 || box.H < 2 {
			continue
		}
		dst.DrawBoxColored(box, core.ColorTan)

		for _, o := range r.Openings {
			s.carveOpening(dst, r, o)
		}

		if core.TextWidth(r.Name) <= box.W-2 && box.H > 2 {
			dst.DrawTextColored(box.X+1, box.Y+1, r.Name, core.ColorCharcoal)
		}
	}
}

// carveOpening blanks the wall cells an opening spans.
func (s *Sandbox) carveOpening(dst *core.Screen, r habitat.Room, o habitat.Opening) {
	b := r.Bounds
	var from, to core.Vec2
	switch o.Edge {
	case habitat.EdgeTop:
		from, to = core.V(o.From, b.Y), core.V(o.To, b.Y)
	case habitat.EdgeBottom:
		from, to = core.V(o.From, b.Y+b.Height), core.V(o.To, b.Y+b.Height)
	case habitat.EdgeLeft:
		from, to = core.V(b.X, o.From), core.V(b.X, o.To)
	case habitat.EdgeRight:
		from, to = core.V(b.X+b.Width, o.From), core.V(b.X+b.Width, o.To)
	default:
		return
	}
	x0, y0 := s.view.toCell(from)
	x1, y1 := s.view.toCell(to)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dst.SetColored(x, y, wallGap, core.ColorDefault)
		}
	}
}

func (s *Sandbox) renderTubes(dst *core.Screen) {
	for _, c := range s.layout.Connectors() {
		x0, y0 := s.view.toCell(c.A.Point)
		x1, y1 := s.view.toCell(c.B.Point)
		dst.DrawLine(x0, y0, x1, y1, tubeChar, core.ColorGray)
	}
}

func (s *Sandbox) renderObjects(dst *core.Screen) {
	if bowl, ok := s.env.Food(); ok {
		box := s.view.rectToCells(bowl.Bounds())
		filled := fillCells(bowl.Level(), bowl.Max(), box.W*box.H)
		i := 0
		for y := box.Y; y < box.Bottom(); y++ {
			for x := box.X; x < box.Right(); x++ {
				if i < filled {
					dst.SetColored(x, y, foodChar, core.ColorGold)
				} else {
					dst.SetColored(x, y, emptyBowl, core.ColorBrown)
				}
				i++
			}
		}
		label := fmt.Sprintf("%d%%", int(math.Round(bowl.Level())))
		dst.DrawTextColored(box.X-core.TextWidth(label)-1, box.Y, label, core.ColorBrightWhite)
	}

	if bottle, ok := s.env.Water(); ok {
		box := s.view.rectToCells(bottle.Bounds())
		rows := fillCells(bottle.Level(), bottle.Max(), box.H)
		for y := box.Y; y < box.Bottom(); y++ {
			r, c := emptyBottle, core.ColorCyan
			if box.Bottom()-y <= rows {
				r, c = waterChar, core.ColorBrightBlue
			}
			for x := box.X; x < box.Right(); x++ {
				dst.SetColored(x, y, r, c)
			}
		}
		label := fmt.Sprintf("%d%%", int(math.Round(bottle.Level())))
		dst.DrawTextColored(box.Right()+1, box.Y, label, core.ColorBrightWhite)
	}

	if wheel, ok := s.env.WheelToy(); ok {
		s.renderWheel(dst, wheel)
	}

	if tunnel, ok := s.env.TunnelToy(); ok {
		box := s.view.rectToCells(tunnel.Bounds())
		for y := box.Y; y < box.Bottom(); y++ {
			for x := box.X; x < box.Right(); x++ {
				dst.SetColored(x, y, tunnelChar, core.ColorBrown)
			}
		}
	}
}

func (s *Sandbox) renderWheel(dst *core.Screen, w *habitat.Wheel) {
	center := w.Position()
	cx, cy := s.view.toCell(center)

	for i := 0; i < wheelRimDots; i++ {
		a := 2 * math.Pi * float64(i) / wheelRimDots
		x, y := s.view.toCell(center.Add(core.FromAngle(a, w.Radius())))
		dst.SetColored(x, y, rimChar, core.ColorGray)
	}
	for i := 0; i < wheelSpokes; i++ {
		a := w.Rotation() + 2*math.Pi*float64(i)/wheelSpokes
		x, y := s.view.toCell(center.Add(core.FromAngle(a, w.Radius()-wheelHubInset)))
		dst.DrawLine(cx, cy, x, y, spokeChar, core.ColorWhite)
	}
	dst.SetColored(cx, cy, hubChar, core.ColorWhite)

	if w.Occupied() {
		_, top := s.view.toCell(center.Sub(core.V(0, w.Radius())))
		dst.DrawTextColored(cx-core.TextWidth(s.labels.Running)/2, top-1, s.labels.Running, core.ColorGreen)
	}
}

func (s *Sandbox) renderCreatures(dst *core.Screen) {
	_, hasTunnel := s.env.TunnelToy()
	for _, c := range s.creatures {
		if c.Hiding() && hasTunnel {
			continue
		}
		color, _ := core.ParseColor(c.Color())
		x, y := s.view.toCell(c.Position())
		dst.DrawTextColored(x-1, y, sprite(c), color)

		if icon, ok := stateIcons[c.State()]; ok && y-1 >= s.view.area.Y {
			dst.SetColored(x, y-1, icon.r, icon.c)
		}
	}
}

// sprite returns the creature's three-cell body for its facing and
// animation frame.
func sprite(c *habitat.Creature) string {
	tail := '~'
	if int(c.Frame())%2 == 1 {
		tail = '-'
	}
	if c.State() == habitat.StateSleeping {
		tail = '_'
	}
	if c.FacingRight() {
		return string([]rune{tail, 'O', '>'})
	}
	return string([]rune{'<', 'O', tail})
}

func (s *Sandbox) renderHUD(dst *core.Screen) {
	secs := float64(s.tick) * s.dt / 1000
	dst.DrawTextColored(1, 0, fmt.Sprintf("%s  %6.1fs", s.Title(), secs), core.ColorBrightWhite)

	var levels []string
	if bowl, ok := s.env.Food(); ok {
		levels = append(levels, fmt.Sprintf("%s %3.0f%%", s.labels.Food, bowl.Level()))
	}
	if bottle, ok := s.env.Water(); ok {
		levels = append(levels, fmt.Sprintf("%s %3.0f%%", s.labels.Water, bottle.Level()))
	}
	right := strings.Join(levels, "  ")
	dst.DrawTextColored(dst.Width()-core.TextWidth(right)-1, 0, right, core.ColorBrightWhite)

	if s.hudRows(dst.Height()) == 1 {
		return
	}
	for i, c := range s.creatures {
		s.renderNeeds(dst, 1+i, c)
	}
}

// renderNeeds draws one creature's need bars. Energy is shown as the
// inverse of tiredness.
func (s *Sandbox) renderNeeds(dst *core.Screen, y int, c *habitat.Creature) {
	color, _ := core.ParseColor(c.Color())
	dst.DrawTextColored(1, y, c.Name(), color)
	x := 1 + nameWidth

	for _, n := range []struct {
		label string
		value float64
		color core.Color
	}{
		{s.labels.Hunger, c.Hunger(), core.ColorOrange},
		{s.labels.Thirst, c.Thirst(), core.ColorBlue},
		{s.labels.Energy, 100 - c.Tiredness(), core.ColorGold},
		{s.labels.Happy, c.Happiness(), core.ColorGreen},
	} {
		dst.DrawTextColored(x, y, n.label, core.ColorGray)
		x += core.TextWidth(n.label) + 1
		dst.DrawTextColored(x, y, bar(n.value, barWidth), n.color)
		x += barWidth + 2
	}
	dst.DrawTextColored(x, y, c.State().String(), core.ColorGray)
}

func (s *Sandbox) renderPause(dst *core.Screen) {
	width := max(core.TextWidth(s.labels.Paused), core.TextWidth(s.labels.PressSpace)) + 4
	box := core.NewRect(
		s.view.area.X+(s.view.area.W-width)/2,
		s.view.area.Y+s.view.area.H/2-2,
		width,
		4,
	)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(width-core.TextWidth(s.labels.Paused))/2, box.Y+1, s.labels.Paused, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(width-core.TextWidth(s.labels.PressSpace))/2, box.Y+2, s.labels.PressSpace, core.ColorGray)
}

// bar renders value in [0, 100] as a fixed-width gauge.
func bar(value float64, width int) string {
	filled := core.Clamp(int(math.Round(value/100*float64(width))), 0, width)
	return strings.Repeat(string(barFull), filled) + strings.Repeat(string(barEmpty), width-filled)
}

// fillCells returns how many of n cells a level out of maxLevel fills.
// Any food at all shows at least one cell.
func fillCells(level, maxLevel float64, n int) int {
	if maxLevel <= 0 || level <= 0 {
		return 0
	}
	return core.Clamp(int(math.Ceil(level/maxLevel*float64(n))), 1, n)
}
