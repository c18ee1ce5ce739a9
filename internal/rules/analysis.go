package rules

import (
	"sort"

	"github.com/dmmcquay/goban-engine/internal/board"
)

// GroupStatus summarizes a group for collaborators (UI overlays, move
// suggestion). It is a read-only snapshot, not authoritative game state.
type GroupStatus struct {
	Exists    bool
	Color     board.Color
	Size      int
	Liberties int
	InAtari   bool
	Eyes      []board.Point
}

// CheckGroupStatus reports liberty count, atari flag and candidate eye points
// for the group at (x, y).
func (e *Engine) CheckGroupStatus(b *board.Board, x, y int) GroupStatus {
	g := b.GroupAt(x, y)
	if g == nil {
		return GroupStatus{}
	}
	return GroupStatus{
		Exists:    true,
		Color:     g.Color(),
		Size:      g.Size(),
		Liberties: g.Liberties(),
		InAtari:   g.InAtari(),
		Eyes:      e.findEyes(b, g),
	}
}

// findEyes scans the empty points around a group's stones for candidate eyes.
func (e *Engine) findEyes(b *board.Board, g *board.Group) []board.Point {
	var eyes []board.Point
	checked := make(map[board.Point]bool)
	for _, s := range g.Stones() {
		for _, n := range b.Neighbors(s.X, s.Y) {
			if checked[n] || !b.IsEmpty(n.X, n.Y) {
				continue
			}
			checked[n] = true
			if isEye(b, n.X, n.Y, g.Color()) {
				eyes = append(eyes, n)
			}
		}
	}
	return eyes
}

// isEye reports whether an empty point looks like an eye for color: all four
// orthogonal neighbors are friendly or off-board, and at least three of the
// diagonals are friendly, with off-board diagonals counting as friendly.
// This is a local heuristic; false positives (shared and false eyes) are
// expected and accepted.
func isEye(b *board.Board, x, y int, c board.Color) bool {
	if !b.IsEmpty(x, y) {
		return false
	}
	for _, n := range b.Neighbors(x, y) {
		if b.ColorAt(n.X, n.Y) != c {
			return false
		}
	}
	friendly := 0
	for _, d := range [4]board.Point{{X: x - 1, Y: y - 1}, {X: x - 1, Y: y + 1}, {X: x + 1, Y: y - 1}, {X: x + 1, Y: y + 1}} {
		if !b.InBounds(d.X, d.Y) || b.ColorAt(d.X, d.Y) == c {
			friendly++
		}
	}
	return friendly >= 3
}

// CandidateMove is a suggested move with the number of stones it captures.
type CandidateMove struct {
	Point    board.Point
	Captures int
}

// AtariMove is a suggested move putting an opponent group into atari.
type AtariMove struct {
	Point     board.Point
	GroupSize int
}

// FindCapturingMoves scans the board for legal moves that capture opponent
// stones, largest capture first. O(size^2) per call; fine for boards up
// to 19x19.
func (e *Engine) FindCapturingMoves(b *board.Board, c board.Color) []CandidateMove {
	opponent := c.Opponent()

	// Opponent groups down to their last liberty.
	var vulnerable []*board.Group
	seen := make(map[int]bool)
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if b.ColorAt(x, y) != opponent {
				continue
			}
			idx, ok := b.GroupIndexAt(x, y)
			if !ok || seen[idx] {
				continue
			}
			seen[idx] = true
			if g := b.GroupAt(x, y); g != nil && g.InAtari() {
				vulnerable = append(vulnerable, g)
			}
		}
	}

	var moves []CandidateMove
	checked := make(map[board.Point]bool)
	for _, g := range vulnerable {
		for _, lib := range g.LibertyPoints() {
			if checked[lib] {
				continue
			}
			checked[lib] = true
			if e.IsLegalMove(b, lib.X, lib.Y, c, nil) != Success {
				continue
			}
			captures := 0
			libSeen := make(map[int]bool)
			for _, n := range b.Neighbors(lib.X, lib.Y) {
				if b.ColorAt(n.X, n.Y) != opponent {
					continue
				}
				idx, ok := b.GroupIndexAt(n.X, n.Y)
				if !ok || libSeen[idx] {
					continue
				}
				libSeen[idx] = true
				if ng := b.GroupAt(n.X, n.Y); ng != nil && ng.InAtari() {
					captures += ng.Size()
				}
			}
			if captures > 0 {
				moves = append(moves, CandidateMove{Point: lib, Captures: captures})
			}
		}
	}

	sort.SliceStable(moves, func(i, j int) bool { return moves[i].Captures > moves[j].Captures })
	return moves
}

// FindAtariMoves scans the board for legal moves that reduce a two-liberty
// opponent group to one liberty, biggest target first.
func (e *Engine) FindAtariMoves(b *board.Board, c board.Color) []AtariMove {
	opponent := c.Opponent()
	var moves []AtariMove
	checked := make(map[int]bool)

	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if b.ColorAt(x, y) != opponent {
				continue
			}
			idx, ok := b.GroupIndexAt(x, y)
			if !ok || checked[idx] {
				continue
			}
			checked[idx] = true

			g := b.GroupAt(x, y)
			if g == nil || g.Liberties() != 2 {
				continue
			}
			for _, lib := range g.LibertyPoints() {
				if e.IsLegalMove(b, lib.X, lib.Y, c, nil) != Success {
					continue
				}
				sim := b.Copy()
				sim.PlaceStone(lib.X, lib.Y, c)
				if sg := sim.GroupAt(x, y); sg != nil && sg.InAtari() {
					moves = append(moves, AtariMove{Point: lib, GroupSize: g.Size()})
				}
			}
		}
	}

	sort.SliceStable(moves, func(i, j int) bool { return moves[i].GroupSize > moves[j].GroupSize })
	return moves
}

// LegalMoves returns every point where the color may legally play.
func (e *Engine) LegalMoves(b *board.Board, c board.Color, koPoint *board.Point) []board.Point {
	var moves []board.Point
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if e.IsLegalMove(b, x, y, c, koPoint) == Success {
				moves = append(moves, board.Point{X: x, Y: y})
			}
		}
	}
	return moves
}
