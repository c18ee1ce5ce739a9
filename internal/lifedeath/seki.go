package lifedeath

import (
	"github.com/dmmcquay/goban-engine/internal/board"
)

// SekiRegion is a detected mutual-life standoff: the stones of both groups
// plus their shared liberties.
type SekiRegion struct {
	Points []board.Point
}

// SekiRegions finds pairs of opposite-color groups locked in seki and returns
// the merged region for each pair.
func (a *Analyzer) SekiRegions() []SekiRegion {
	groups := a.b.AllGroups()
	var regions []SekiRegion

	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			g1, g2 := groups[i], groups[j]
			if g1.Color() == g2.Color() {
				continue
			}
			if !a.isSeki(g1, g2) {
				continue
			}
			points := append(g1.Stones(), g2.Stones()...)
			points = append(points, g1.SharedLiberties(g2)...)
			regions = append(regions, SekiRegion{Points: points})
		}
	}
	return regions
}

// isSeki checks two opposite-color groups for mutual life: they share at
// least two liberties, and neither color can occupy any shared liberty
// without putting its own merged group into immediate self-atari or
// self-capture. Simulated placements do not resolve captures; this is a
// local standoff test, not a life-and-death search.
func (a *Analyzer) isSeki(g1, g2 *board.Group) bool {
	shared := g1.SharedLiberties(g2)
	if len(shared) < 2 {
		return false
	}

	for _, p := range shared {
		if !a.unsafeToFill(p, g1.Color()) || !a.unsafeToFill(p, g2.Color()) {
			return false
		}
	}
	return true
}

// unsafeToFill simulates placing a stone of color c at p and reports whether
// the resulting group is left with at most one liberty.
func (a *Analyzer) unsafeToFill(p board.Point, c board.Color) bool {
	sim := a.b.Copy()
	if !sim.PlaceStone(p.X, p.Y, c) {
		return false
	}
	g := sim.GroupAt(p.X, p.Y)
	return g != nil && g.Liberties() <= 1
}
