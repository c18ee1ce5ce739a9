package scoring

import (
	"github.com/dmmcquay/goban-engine/internal/board"
)

// Ownership classifies a board point in the territory map.
type Ownership int

const (
	OwnerNeutral Ownership = iota
	OwnerBlack
	OwnerWhite
	// OwnerDame marks a single empty point bordered by both colors.
	OwnerDame
	// OwnerSeki marks points inside a mutual-life standoff; assigned by
	// callers from life/death analysis, never by the flood fill itself.
	OwnerSeki
)

func (o Ownership) String() string {
	switch o {
	case OwnerBlack:
		return "black"
	case OwnerWhite:
		return "white"
	case OwnerDame:
		return "dame"
	case OwnerSeki:
		return "seki"
	default:
		return "neutral"
	}
}

// TerritoryCount is the point tally per bucket.
type TerritoryCount struct {
	Black   int
	White   int
	Neutral int
	Dame    int
}

// Territory computes territory ownership for a finished board. The map is
// recomputed from scratch on every Calculate call; nothing is maintained
// incrementally.
type Territory struct {
	b        *board.Board
	ownerMap [][]Ownership
}

// NewTerritory creates a territory calculator over the given board.
func NewTerritory(b *board.Board) *Territory {
	m := make([][]Ownership, b.Size())
	for i := range m {
		m[i] = make([]Ownership, b.Size())
	}
	return &Territory{b: b, ownerMap: m}
}

// Calculate floods every maximal empty region of the board (with dead stones
// removed first) and assigns it to the sole bordering color, or to neutral
// when the borders are mixed. A single-point region bordered by both colors
// counts as dame.
func (t *Territory) Calculate(deadStones map[board.Point]bool) TerritoryCount {
	work := t.b.Copy()
	for p := range deadStones {
		work.RemoveStone(p.X, p.Y)
	}

	for y := range t.ownerMap {
		for x := range t.ownerMap[y] {
			t.ownerMap[y][x] = OwnerNeutral
		}
	}

	var count TerritoryCount
	visited := make(map[board.Point]bool)

	for y := 0; y < work.Size(); y++ {
		for x := 0; x < work.Size(); x++ {
			if !work.IsEmpty(x, y) || visited[board.Point{X: x, Y: y}] {
				continue
			}
			region, owner := floodRegion(work, x, y, visited)
			for _, p := range region {
				t.ownerMap[p.Y][p.X] = owner
			}
			switch owner {
			case OwnerBlack:
				count.Black += len(region)
			case OwnerWhite:
				count.White += len(region)
			case OwnerDame:
				count.Dame += len(region)
			default:
				count.Neutral += len(region)
			}
		}
	}

	return count
}

// OwnerAt returns the ownership assigned by the last Calculate call.
func (t *Territory) OwnerAt(x, y int) Ownership {
	if y < 0 || y >= len(t.ownerMap) || x < 0 || x >= len(t.ownerMap) {
		return OwnerNeutral
	}
	return t.ownerMap[y][x]
}

// floodRegion collects one maximal 4-connected empty region and the set of
// colors bordering it, then decides the owner.
func floodRegion(b *board.Board, startX, startY int, visited map[board.Point]bool) ([]board.Point, Ownership) {
	var region []board.Point
	borders := make(map[board.Color]bool)
	queue := []board.Point{{X: startX, Y: startY}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p] || !b.IsEmpty(p.X, p.Y) {
			continue
		}
		visited[p] = true
		region = append(region, p)

		for _, n := range b.Neighbors(p.X, p.Y) {
			if c := b.ColorAt(n.X, n.Y); c == board.Empty {
				if !visited[n] {
					queue = append(queue, n)
				}
			} else {
				borders[c] = true
			}
		}
	}

	switch len(borders) {
	case 1:
		if borders[board.Black] {
			return region, OwnerBlack
		}
		return region, OwnerWhite
	case 0:
		return region, OwnerNeutral
	default:
		if len(region) == 1 {
			return region, OwnerDame
		}
		return region, OwnerNeutral
	}
}
