package board

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Color is the content of a single board point.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the opposing color. Empty has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// Point is a board coordinate. (0,0) is the top-left corner; x grows to the
// right and y grows downward.
type Point struct {
	X, Y int
}

// Stone records a placed stone together with the move number that played it.
// The history is consumed by collaborators (UI, SGF export); the board itself
// never reads it.
type Stone struct {
	X, Y       int
	Color      Color
	MoveNumber int
}

// Board holds the grid state and a lazily maintained group cache. It knows
// nothing about rules; legality lives in the rules package.
//
// The group cache is an arena of Groups with stable indices plus a
// coordinate-to-index map. Invalidation removes coordinates from the map and
// returns the arena slot to a free list, so two coordinates can never alias a
// stale shared Group value.
type Board struct {
	size    int
	grid    []Color
	cache   map[Point]int
	arena   []*Group
	free    []int
	history []Stone
}

// New creates an empty board. Only 9, 13 and 19 are legal sizes; anything
// else is a programmer error and is rejected here rather than deep inside a
// flood fill.
func New(size int) (*Board, error) {
	switch size {
	case 9, 13, 19:
	default:
		return nil, fmt.Errorf("invalid board size %d: must be 9, 13, or 19", size)
	}
	return &Board{
		size:  size,
		grid:  make([]Color, size*size),
		cache: make(map[Point]int),
	}, nil
}

// Size returns the side length of the board.
func (b *Board) Size() int { return b.size }

// InBounds reports whether (x, y) is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// ColorAt returns the color at (x, y), or Empty for out-of-bounds points.
func (b *Board) ColorAt(x, y int) Color {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.grid[y*b.size+x]
}

// IsEmpty reports whether (x, y) holds no stone.
func (b *Board) IsEmpty(x, y int) bool {
	return b.ColorAt(x, y) == Empty
}

// Neighbors returns the in-bounds orthogonal neighbors of (x, y).
func (b *Board) Neighbors(x, y int) []Point {
	out := make([]Point, 0, 4)
	for _, d := range [4]Point{{0, 1}, {0, -1}, {1, 0}, {-1, 0}} {
		nx, ny := x+d.X, y+d.Y
		if b.InBounds(nx, ny) {
			out = append(out, Point{nx, ny})
		}
	}
	return out
}

// PlaceStone puts a stone of the given color on an empty point. It returns
// false without mutating anything if the point is out of bounds, occupied, or
// the color is Empty.
func (b *Board) PlaceStone(x, y int, c Color) bool {
	return b.PlaceStoneMove(x, y, c, 0)
}

// PlaceStoneMove is PlaceStone with an explicit move number recorded in the
// stone history.
func (b *Board) PlaceStoneMove(x, y int, c Color, moveNumber int) bool {
	if c == Empty || !b.InBounds(x, y) || !b.IsEmpty(x, y) {
		return false
	}
	b.grid[y*b.size+x] = c
	b.history = append(b.history, Stone{X: x, Y: y, Color: c, MoveNumber: moveNumber})
	b.invalidate(x, y)
	return true
}

// RemoveStone clears an occupied point. Returns false for out-of-bounds or
// already-empty points.
func (b *Board) RemoveStone(x, y int) bool {
	if !b.InBounds(x, y) || b.IsEmpty(x, y) {
		return false
	}
	b.grid[y*b.size+x] = Empty
	b.invalidate(x, y)
	for i, s := range b.history {
		if s.X == x && s.Y == y {
			b.history = append(b.history[:i], b.history[i+1:]...)
			break
		}
	}
	return true
}

// RemoveGroup clears every stone of the group and returns the removed points.
func (b *Board) RemoveGroup(g *Group) []Point {
	if g == nil {
		return nil
	}
	removed := make([]Point, 0, g.Size())
	for _, p := range g.Stones() {
		if b.RemoveStone(p.X, p.Y) {
			removed = append(removed, p)
		}
	}
	return removed
}

// GroupAt returns the connected group containing the stone at (x, y), or nil
// for empty or out-of-bounds points. Results are cached until a mutation
// touches the group.
func (b *Board) GroupAt(x, y int) *Group {
	idx, ok := b.groupIndexAt(x, y)
	if !ok {
		return nil
	}
	return b.arena[idx]
}

// GroupIndexAt returns a stable arena index for the group at (x, y). Two
// coordinates belong to the same group exactly when their indices are equal,
// which gives callers a dedup key without comparing group contents.
func (b *Board) GroupIndexAt(x, y int) (int, bool) {
	return b.groupIndexAt(x, y)
}

func (b *Board) groupIndexAt(x, y int) (int, bool) {
	if !b.InBounds(x, y) || b.IsEmpty(x, y) {
		return 0, false
	}
	if idx, ok := b.cache[Point{x, y}]; ok {
		return idx, true
	}
	g := b.floodFill(x, y)
	idx := b.store(g)
	for p := range g.stones {
		b.cache[p] = idx
	}
	return idx, true
}

// floodFill computes the maximal 4-connected same-color component containing
// (x, y) and its liberty set via BFS. Every point is visited at most once;
// empty neighbors become liberties, same-color neighbors are enqueued, and
// opponent or off-board neighbors are ignored.
func (b *Board) floodFill(x, y int) *Group {
	color := b.ColorAt(x, y)
	g := newGroup(color)
	visited := make(map[Point]bool)
	queue := []Point{{x, y}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p] {
			continue
		}
		visited[p] = true
		g.stones[p] = struct{}{}

		for _, n := range b.Neighbors(p.X, p.Y) {
			if visited[n] {
				continue
			}
			switch b.ColorAt(n.X, n.Y) {
			case Empty:
				g.liberties[n] = struct{}{}
			case color:
				queue = append(queue, n)
			}
		}
	}
	return g
}

func (b *Board) store(g *Group) int {
	if n := len(b.free); n > 0 {
		idx := b.free[n-1]
		b.free = b.free[:n-1]
		b.arena[idx] = g
		return idx
	}
	b.arena = append(b.arena, g)
	return len(b.arena) - 1
}

// invalidate purges every cached group that owns a point in the 3x3
// neighborhood of (x, y). Diagonals are included so that merges and splits
// caused by the mutation cannot leave a stale entry behind.
func (b *Board) invalidate(x, y int) {
	seen := make(map[int]bool)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			idx, ok := b.cache[Point{x + dx, y + dy}]
			if !ok || seen[idx] {
				continue
			}
			seen[idx] = true
			for p := range b.arena[idx].stones {
				delete(b.cache, p)
			}
			b.arena[idx] = nil
			b.free = append(b.free, idx)
		}
	}
}

// AllGroups returns every group on the board exactly once, scanning row-major.
func (b *Board) AllGroups() []*Group {
	var groups []*Group
	visited := make(map[Point]bool)
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if visited[Point{x, y}] || b.IsEmpty(x, y) {
				continue
			}
			g := b.GroupAt(x, y)
			if g == nil {
				continue
			}
			groups = append(groups, g)
			for _, p := range g.Stones() {
				visited[p] = true
			}
		}
	}
	return groups
}

// Liberties returns the liberty count of the group at (x, y), or 0 for empty
// points.
func (b *Board) Liberties(x, y int) int {
	g := b.GroupAt(x, y)
	if g == nil {
		return 0
	}
	return g.Liberties()
}

// Hash returns a content hash of the full grid, used for superko position
// equality. The whole board is rehashed on every call; an incremental Zobrist
// hash would be faster but must keep the same equality semantics.
func (b *Board) Hash() string {
	sum := sha256.Sum256(append([]byte(nil), byteSlice(b.grid)...))
	return hex.EncodeToString(sum[:])
}

func byteSlice(grid []Color) []byte {
	out := make([]byte, len(grid))
	for i, c := range grid {
		out[i] = byte(c)
	}
	return out
}

// Copy returns an independent snapshot of the board. The grid and stone
// history are cloned; the group cache starts empty and is rebuilt on demand,
// which keeps Copy a flat-array clone on the legality-check hot path.
func (b *Board) Copy() *Board {
	nb := &Board{
		size:    b.size,
		grid:    append([]Color(nil), b.grid...),
		cache:   make(map[Point]int),
		history: append([]Stone(nil), b.history...),
	}
	return nb
}

// History returns the stone placement history in order.
func (b *Board) History() []Stone {
	return append([]Stone(nil), b.history...)
}

// CountStones returns the number of black, white and empty points.
func (b *Board) CountStones() (black, white, empty int) {
	for _, c := range b.grid {
		switch c {
		case Black:
			black++
		case White:
			white++
		default:
			empty++
		}
	}
	return black, white, empty
}

// String renders a text diagram of the board for logs and tool output.
func (b *Board) String() string {
	var sb strings.Builder

	sb.WriteString("   ")
	for x := 0; x < b.size; x++ {
		sb.WriteString(fmt.Sprintf(" %c", columnLetter(x)))
	}
	sb.WriteString("\n")

	for y := 0; y < b.size; y++ {
		row := b.size - y
		sb.WriteString(fmt.Sprintf("%2d ", row))
		for x := 0; x < b.size; x++ {
			switch b.ColorAt(x, y) {
			case Black:
				sb.WriteString(" X")
			case White:
				sb.WriteString(" O")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", row))
	}

	sb.WriteString("   ")
	for x := 0; x < b.size; x++ {
		sb.WriteString(fmt.Sprintf(" %c", columnLetter(x)))
	}
	sb.WriteString("\n")

	return sb.String()
}
