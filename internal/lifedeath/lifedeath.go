package lifedeath

import (
	"github.com/dmmcquay/goban-engine/internal/board"
)

// Status is the estimated life/death state of a group. The estimator is a
// heuristic advisory layer: it suggests dead-stone markings and is never
// authoritative. Disagreements with a full life-and-death search are
// expected.
type Status string

const (
	Alive     Status = "alive"
	Dead      Status = "dead"
	Unsettled Status = "unsettled"
	Seki      Status = "seki"
)

// GroupAnalysis pairs a group with its estimated status.
type GroupAnalysis struct {
	Group  *board.Group
	Status Status
}

// Analyzer estimates group status from liberty counts, eye shape and coarse
// escape/eye-space heuristics.
type Analyzer struct {
	b *board.Board
}

// New creates an analyzer over the given board.
func New(b *board.Board) *Analyzer {
	return &Analyzer{b: b}
}

// AnalyzeAll estimates the status of every group on the board, then upgrades
// groups participating in a detected seki.
func (a *Analyzer) AnalyzeAll() []GroupAnalysis {
	groups := a.b.AllGroups()
	out := make([]GroupAnalysis, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupAnalysis{Group: g, Status: a.AnalyzeGroup(g)})
	}

	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			if groups[i].Color() == groups[j].Color() {
				continue
			}
			if a.isSeki(groups[i], groups[j]) {
				out[i].Status = Seki
				out[j].Status = Seki
			}
		}
	}
	return out
}

// AnalyzeGroup estimates one group's status.
func (a *Analyzer) AnalyzeGroup(g *board.Group) Status {
	if g == nil || g.Size() == 0 {
		return Dead
	}

	libs := g.Liberties()
	if libs == 0 {
		return Dead
	}

	if libs >= 2 {
		eyes := a.countRealEyes(g)
		if eyes >= 2 {
			return Alive
		}
		if eyes == 1 && libs >= 4 {
			return Alive
		}
	}

	if a.canEscape(g) {
		return Unsettled
	}

	if a.eyeSpace(g) >= 6 {
		return Unsettled
	}

	switch {
	case libs >= 5:
		return Alive
	case libs <= 1:
		return Dead
	default:
		return Unsettled
	}
}

// SuggestDeadStones collects the stones of groups estimated dead, plus
// unsettled groups down to their last liberty.
func (a *Analyzer) SuggestDeadStones() map[board.Point]bool {
	dead := make(map[board.Point]bool)
	for _, ga := range a.AnalyzeAll() {
		remove := ga.Status == Dead ||
			(ga.Status == Unsettled && ga.Group.Liberties() <= 1)
		if !remove {
			continue
		}
		for _, p := range ga.Group.Stones() {
			dead[p] = true
		}
	}
	return dead
}

// countRealEyes counts eye points whose occupied neighbors all belong to the
// group itself, rejecting eyes shared with other groups at this coarse level.
func (a *Analyzer) countRealEyes(g *board.Group) int {
	eyes := 0
	checked := make(map[board.Point]bool)
	for _, s := range g.Stones() {
		for _, n := range a.b.Neighbors(s.X, s.Y) {
			if checked[n] || !a.b.IsEmpty(n.X, n.Y) {
				continue
			}
			checked[n] = true
			if a.isEyeShape(n.X, n.Y, g.Color()) && a.isOwnEye(n.X, n.Y, g) {
				eyes++
			}
		}
	}
	return eyes
}

// isEyeShape checks the local eye pattern: all orthogonal neighbors friendly,
// and enough friendly diagonals (3 of 4 in the center, all but one at the
// edge or corner).
func (a *Analyzer) isEyeShape(x, y int, c board.Color) bool {
	if !a.b.IsEmpty(x, y) {
		return false
	}
	for _, n := range a.b.Neighbors(x, y) {
		if a.b.ColorAt(n.X, n.Y) != c {
			return false
		}
	}
	friendly, total := 0, 0
	for _, d := range [4]board.Point{{X: x - 1, Y: y - 1}, {X: x - 1, Y: y + 1}, {X: x + 1, Y: y - 1}, {X: x + 1, Y: y + 1}} {
		if !a.b.InBounds(d.X, d.Y) {
			continue
		}
		total++
		if a.b.ColorAt(d.X, d.Y) == c {
			friendly++
		}
	}
	if total == 4 {
		return friendly >= 3
	}
	return friendly >= total-1
}

// isOwnEye requires every occupied neighbor of the eye point to be a stone of
// this group; an eye walled by two different groups is not credited to
// either.
func (a *Analyzer) isOwnEye(x, y int, g *board.Group) bool {
	for _, n := range a.b.Neighbors(x, y) {
		if a.b.IsEmpty(n.X, n.Y) {
			continue
		}
		if !g.HasStone(n) {
			return false
		}
	}
	return true
}

// canEscape estimates running potential: big groups with breathing room can
// run, groups pinned on the first line with few liberties cannot.
func (a *Analyzer) canEscape(g *board.Group) bool {
	if g.Size() >= 4 && g.Liberties() >= 3 {
		return true
	}

	minX, minY, maxX, maxY, ok := g.BoundingBox()
	if !ok {
		return false
	}
	edge := min4(minX, minY, a.b.Size()-1-maxX, a.b.Size()-1-maxY)
	if edge == 0 && g.Liberties() <= 2 {
		return false
	}
	return g.Liberties() >= 3
}

// eyeSpace estimates the empty points inside the group's bounding box that
// the group itself surrounds; roughly 6 points are needed to form two eyes.
func (a *Analyzer) eyeSpace(g *board.Group) int {
	if g.Size() < 4 {
		return 0
	}
	minX, minY, maxX, maxY, ok := g.BoundingBox()
	if !ok {
		return 0
	}
	space := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !a.b.IsEmpty(x, y) {
				continue
			}
			owned := 0
			for _, n := range a.b.Neighbors(x, y) {
				if g.HasStone(n) {
					owned++
				}
			}
			if owned >= 3 {
				space++
			}
		}
	}
	return space
}

func min4(a, b, c, d int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}
