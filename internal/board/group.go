package board

// Group is a maximal 4-connected set of same-color stones together with its
// liberty set. Groups are transient: they are recomputed after any mutation
// that touches them and must not be held across board changes.
type Group struct {
	color     Color
	stones    map[Point]struct{}
	liberties map[Point]struct{}
}

func newGroup(c Color) *Group {
	return &Group{
		color:     c,
		stones:    make(map[Point]struct{}),
		liberties: make(map[Point]struct{}),
	}
}

// Color returns the group's stone color.
func (g *Group) Color() Color { return g.color }

// Size returns the number of stones in the group.
func (g *Group) Size() int { return len(g.stones) }

// Liberties returns the number of distinct liberties.
func (g *Group) Liberties() int { return len(g.liberties) }

// InAtari reports whether the group has exactly one liberty.
func (g *Group) InAtari() bool { return len(g.liberties) == 1 }

// HasStone reports whether p is one of the group's stones.
func (g *Group) HasStone(p Point) bool {
	_, ok := g.stones[p]
	return ok
}

// HasLiberty reports whether p is one of the group's liberties.
func (g *Group) HasLiberty(p Point) bool {
	_, ok := g.liberties[p]
	return ok
}

// Stones returns the group's stones in unspecified order.
func (g *Group) Stones() []Point {
	out := make([]Point, 0, len(g.stones))
	for p := range g.stones {
		out = append(out, p)
	}
	return out
}

// LibertyPoints returns the group's liberties in unspecified order.
func (g *Group) LibertyPoints() []Point {
	out := make([]Point, 0, len(g.liberties))
	for p := range g.liberties {
		out = append(out, p)
	}
	return out
}

// SharedLiberties returns the liberties common to both groups.
func (g *Group) SharedLiberties(other *Group) []Point {
	if other == nil {
		return nil
	}
	var out []Point
	for p := range g.liberties {
		if _, ok := other.liberties[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// BoundingBox returns the smallest rectangle containing every stone of the
// group. The second return value is false for an empty group.
func (g *Group) BoundingBox() (minX, minY, maxX, maxY int, ok bool) {
	first := true
	for p := range g.stones {
		if first {
			minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY, !first
}
