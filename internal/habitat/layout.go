package habitat

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
)

// ErrInvalidLayout is matched by every ValidationError returned from NewLayout.
var ErrInvalidLayout = errors.New("habitat: invalid layout")

// ValidationError contains details about a layout validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap lets callers test with errors.Is(err, ErrInvalidLayout).
func (e ValidationError) Unwrap() error { return ErrInvalidLayout }

// Edge identifies one side of a room.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// ParseEdge converts a config edge name.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "top":
		return EdgeTop, nil
	case "bottom":
		return EdgeBottom, nil
	case "left":
		return EdgeLeft, nil
	case "right":
		return EdgeRight, nil
	default:
		return 0, fmt.Errorf("unknown edge %q", s)
	}
}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

// Inward returns the unit normal pointing from the edge into the room.
func (e Edge) Inward() core.Vec2 {
	switch e {
	case EdgeTop:
		return core.V(0, 1)
	case EdgeBottom:
		return core.V(0, -1)
	case EdgeLeft:
		return core.V(1, 0)
	default:
		return core.V(-1, 0)
	}
}

// along returns the coordinate of p measured along the edge.
func (e Edge) along(p core.Vec2) float64 {
	if e == EdgeTop || e == EdgeBottom {
		return p.X
	}
	return p.Y
}

// Opening is a closed interval along a room edge where clamping is skipped.
type Opening struct {
	Edge     Edge
	From, To float64
}

// Contains reports whether coord lies in [From, To].
func (o Opening) Contains(coord float64) bool {
	return coord >= o.From && coord <= o.To
}

// Room is one rectangular area of the enclosure.
type Room struct {
	Name     string
	Bounds   core.RectF
	Margin   float64
	Openings []Opening
}

// Center returns the middle of the room.
func (r Room) Center() core.Vec2 {
	return core.V(r.Bounds.X+r.Bounds.Width/2, r.Bounds.Y+r.Bounds.Height/2)
}

// Contains reports whether p is inside the room, edges included.
func (r Room) Contains(p core.Vec2) bool {
	return r.Bounds.Contains(p)
}

// ContainsLoose reports whether p is inside the room grown by its margin.
func (r Room) ContainsLoose(p core.Vec2) bool {
	m := r.Margin
	b := core.RectF{X: r.Bounds.X - m, Y: r.Bounds.Y - m, Width: r.Bounds.Width + 2*m, Height: r.Bounds.Height + 2*m}
	return b.Contains(p)
}

// Open reports whether coord falls inside any opening on edge e.
func (r Room) Open(e Edge, coord float64) bool {
	for _, o := range r.Openings {
		if o.Edge == e && o.Contains(coord) {
			return true
		}
	}
	return false
}

// distance returns how far p is from the room rectangle (0 inside).
func (r Room) distance(p core.Vec2) float64 {
	dx := math.Max(0, math.Max(r.Bounds.X-p.X, p.X-(r.Bounds.X+r.Bounds.Width)))
	dy := math.Max(0, math.Max(r.Bounds.Y-p.Y, p.Y-(r.Bounds.Y+r.Bounds.Height)))
	return math.Hypot(dx, dy)
}

// Port is one end of a connector.
type Port struct {
	Room  string
	Point core.Vec2
	Edge  Edge
}

// Connector is a tube linking two rooms. It is traversable both ways.
type Connector struct {
	Name            string
	A, B            Port
	DetectionRadius float64
	CooldownTicks   int
	ArrivalOffset   float64
}

// Near reports whether p lies in the square detection window around port.
func (c Connector) Near(port Port, p core.Vec2) bool {
	return math.Abs(p.X-port.Point.X) <= c.DetectionRadius && math.Abs(p.Y-port.Point.Y) <= c.DetectionRadius
}

// Arrival returns the landing point for a creature exiting at port.
func (c Connector) Arrival(port Port) core.Vec2 {
	return port.Point.Add(port.Edge.Inward().Scale(c.ArrivalOffset))
}

// Crossing is a connector traversal from one port to its pair.
type Crossing struct {
	Connector Connector
	From, To  Port
}

type hop struct {
	via Port // port in the source room
	to  string
}

// Layout is the room and connector table of the enclosure.
type Layout struct {
	rooms      []Room
	index      map[string]int
	connectors []Connector
	adj        map[string][]hop
}

// NewLayout validates the configured table and derives openings for every
// connector port.
func NewLayout(cfg config.LayoutConfig) (*Layout, error) {
	if len(cfg.Rooms) == 0 {
		return nil, ValidationError{Code: "EMPTY_LAYOUT", Message: "layout has no rooms"}
	}

	l := &Layout{
		index: make(map[string]int, len(cfg.Rooms)),
		adj:   make(map[string][]hop, len(cfg.Rooms)),
	}

	for _, rc := range cfg.Rooms {
		if rc.Name == "" {
			return nil, ValidationError{Code: "UNNAMED_ROOM", Message: "room has no name"}
		}
		if _, dup := l.index[rc.Name]; dup {
			return nil, ValidationError{Code: "DUPLICATE_ROOM", Message: fmt.Sprintf("room %q defined twice", rc.Name)}
		}
		if rc.MaxX <= rc.MinX || rc.MaxY <= rc.MinY {
			return nil, ValidationError{
				Code:    "INVERTED_BOUNDS",
				Message: fmt.Sprintf("room %q has bounds (%g,%g)-(%g,%g)", rc.Name, rc.MinX, rc.MinY, rc.MaxX, rc.MaxY),
			}
		}
		room := Room{
			Name:   rc.Name,
			Bounds: core.RectF{X: rc.MinX, Y: rc.MinY, Width: rc.MaxX - rc.MinX, Height: rc.MaxY - rc.MinY},
			Margin: rc.Margin,
		}
		for _, oc := range rc.Openings {
			edge, err := ParseEdge(oc.Edge)
			if err != nil {
				return nil, ValidationError{Code: "BAD_EDGE", Message: fmt.Sprintf("room %q opening: %v", rc.Name, err)}
			}
			room.Openings = append(room.Openings, Opening{Edge: edge, From: math.Min(oc.From, oc.To), To: math.Max(oc.From, oc.To)})
		}
		l.index[rc.Name] = len(l.rooms)
		l.rooms = append(l.rooms, room)
	}

	for _, cc := range cfg.Connectors {
		conn, err := l.buildConnector(cc)
		if err != nil {
			return nil, err
		}
		for _, p := range []Port{conn.A, conn.B} {
			r := &l.rooms[l.index[p.Room]]
			c := p.Edge.along(p.Point)
			r.Openings = append(r.Openings, Opening{Edge: p.Edge, From: c - conn.DetectionRadius, To: c + conn.DetectionRadius})
		}
		l.adj[conn.A.Room] = append(l.adj[conn.A.Room], hop{via: conn.A, to: conn.B.Room})
		l.adj[conn.B.Room] = append(l.adj[conn.B.Room], hop{via: conn.B, to: conn.A.Room})
		l.connectors = append(l.connectors, conn)
	}

	return l, nil
}

func (l *Layout) buildConnector(cc config.ConnectorConfig) (Connector, error) {
	name := cc.Name
	if name == "" {
		name = cc.A.Room + "-" + cc.B.Room
	}
	if cc.DetectionRadius <= 0 {
		return Connector{}, ValidationError{Code: "BAD_RADIUS", Message: fmt.Sprintf("connector %q: detection radius must be positive", name)}
	}
	if cc.ArrivalOffset <= cc.DetectionRadius {
		return Connector{}, ValidationError{
			Code:    "BAD_OFFSET",
			Message: fmt.Sprintf("connector %q: arrival offset %g must exceed detection radius %g", name, cc.ArrivalOffset, cc.DetectionRadius),
		}
	}
	if cc.CooldownTicks < 0 {
		return Connector{}, ValidationError{Code: "BAD_COOLDOWN", Message: fmt.Sprintf("connector %q: negative cooldown", name)}
	}

	conn := Connector{
		Name:            name,
		DetectionRadius: cc.DetectionRadius,
		CooldownTicks:   cc.CooldownTicks,
		ArrivalOffset:   cc.ArrivalOffset,
	}
	for i, pc := range []config.PortConfig{cc.A, cc.B} {
		idx, ok := l.index[pc.Room]
		if !ok {
			return Connector{}, ValidationError{Code: "UNKNOWN_ROOM", Message: fmt.Sprintf("connector %q references room %q", name, pc.Room)}
		}
		edge, err := ParseEdge(pc.Edge)
		if err != nil {
			return Connector{}, ValidationError{Code: "BAD_EDGE", Message: fmt.Sprintf("connector %q: %v", name, err)}
		}
		port := Port{Room: pc.Room, Point: core.V(pc.X, pc.Y), Edge: edge}
		room := l.rooms[idx]
		if !room.ContainsLoose(port.Point) {
			return Connector{}, ValidationError{Code: "PORT_OUTSIDE_ROOM", Message: fmt.Sprintf("connector %q: port (%g,%g) is not on room %q", name, pc.X, pc.Y, pc.Room)}
		}
		if !room.Contains(conn.Arrival(port)) {
			return Connector{}, ValidationError{Code: "ARRIVAL_OUTSIDE_ROOM", Message: fmt.Sprintf("connector %q: arrival point leaves room %q", name, pc.Room)}
		}
		if i == 0 {
			conn.A = port
		} else {
			conn.B = port
		}
	}
	if conn.A.Room == conn.B.Room {
		return Connector{}, ValidationError{Code: "SELF_LOOP", Message: fmt.Sprintf("connector %q links room %q to itself", name, conn.A.Room)}
	}
	return conn, nil
}

// Rooms returns the room table in configuration order.
func (l *Layout) Rooms() []Room { return l.rooms }

// Connectors returns the connector table in configuration order.
func (l *Layout) Connectors() []Connector { return l.connectors }

// Room looks up a room by name.
func (l *Layout) Room(name string) (Room, bool) {
	idx, ok := l.index[name]
	if !ok {
		return Room{}, false
	}
	return l.rooms[idx], true
}

// RoomAt resolves the room containing p: strict bounds first, then bounds
// grown by each room's margin.
func (l *Layout) RoomAt(p core.Vec2) (Room, bool) {
	for _, r := range l.rooms {
		if r.Contains(p) {
			return r, true
		}
	}
	for _, r := range l.rooms {
		if r.ContainsLoose(p) {
			return r, true
		}
	}
	return Room{}, false
}

// NearestRoom returns the room whose rectangle is closest to p.
func (l *Layout) NearestRoom(p core.Vec2) Room {
	best := l.rooms[0]
	bestDist := best.distance(p)
	for _, r := range l.rooms[1:] {
		if d := r.distance(p); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

// PortsIn returns every connector port located in the named room.
func (l *Layout) PortsIn(room string) []Port {
	hops := l.adj[room]
	ports := make([]Port, 0, len(hops))
	for _, h := range hops {
		ports = append(ports, h.via)
	}
	return ports
}

// Crossing finds a connector whose detection window around either end
// contains p.
func (l *Layout) Crossing(p core.Vec2) (Crossing, bool) {
	for _, c := range l.connectors {
		if c.Near(c.A, p) {
			return Crossing{Connector: c, From: c.A, To: c.B}, true
		}
		if c.Near(c.B, p) {
			return Crossing{Connector: c, From: c.B, To: c.A}, true
		}
	}
	return Crossing{}, false
}

// NextPort returns the port in room from that starts the shortest connector
// path to room to. It reports false when from == to or no path exists.
func (l *Layout) NextPort(from, to string) (Port, bool) {
	if from == to {
		return Port{}, false
	}
	if _, ok := l.index[to]; !ok {
		return Port{}, false
	}

	first := map[string]Port{}
	visited := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, h := range l.adj[cur] {
			if visited[h.to] {
				continue
			}
			visited[h.to] = true
			if cur == from {
				first[h.to] = h.via
			} else {
				first[h.to] = first[cur]
			}
			if h.to == to {
				return first[h.to], true
			}
			queue = append(queue, h.to)
		}
	}
	return Port{}, false
}
