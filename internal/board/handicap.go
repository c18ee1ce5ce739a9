package board

import "fmt"

// starPoints lists the hoshi positions per board size.
var starPoints = map[int][]Point{
	19: {
		{3, 3}, {3, 9}, {3, 15}, {9, 3}, {9, 9},
		{9, 15}, {15, 3}, {15, 9}, {15, 15},
	},
	13: {{3, 3}, {3, 9}, {9, 3}, {9, 9}, {6, 6}},
	9:  {{2, 2}, {2, 6}, {6, 2}, {6, 6}, {4, 4}},
}

// handicapPoints is the fixed placement table per board size. Handicap stones
// are looked up, never computed.
var handicapPoints = map[int]map[int][]Point{
	19: {
		2: {{3, 15}, {15, 3}},
		3: {{3, 15}, {15, 3}, {3, 3}},
		4: {{3, 15}, {15, 3}, {3, 3}, {15, 15}},
		5: {{3, 15}, {15, 3}, {3, 3}, {15, 15}, {9, 9}},
		6: {{3, 15}, {15, 3}, {3, 3}, {15, 15}, {3, 9}, {15, 9}},
		7: {{3, 15}, {15, 3}, {3, 3}, {15, 15}, {3, 9}, {15, 9}, {9, 9}},
		8: {{3, 15}, {15, 3}, {3, 3}, {15, 15}, {3, 9}, {15, 9}, {9, 3}, {9, 15}},
		9: {{3, 15}, {15, 3}, {3, 3}, {15, 15}, {3, 9}, {15, 9}, {9, 3}, {9, 15}, {9, 9}},
	},
	13: {
		2: {{3, 9}, {9, 3}},
		3: {{3, 9}, {9, 3}, {3, 3}},
		4: {{3, 9}, {9, 3}, {3, 3}, {9, 9}},
		5: {{3, 9}, {9, 3}, {3, 3}, {9, 9}, {6, 6}},
		6: {{3, 9}, {9, 3}, {3, 3}, {9, 9}, {3, 6}, {9, 6}},
		7: {{3, 9}, {9, 3}, {3, 3}, {9, 9}, {3, 6}, {9, 6}, {6, 6}},
		8: {{3, 9}, {9, 3}, {3, 3}, {9, 9}, {3, 6}, {9, 6}, {6, 3}, {6, 9}},
		9: {{3, 9}, {9, 3}, {3, 3}, {9, 9}, {3, 6}, {9, 6}, {6, 3}, {6, 9}, {6, 6}},
	},
	9: {
		2: {{2, 6}, {6, 2}},
		3: {{2, 6}, {6, 2}, {2, 2}},
		4: {{2, 6}, {6, 2}, {2, 2}, {6, 6}},
		5: {{2, 6}, {6, 2}, {2, 2}, {6, 6}, {4, 4}},
	},
}

// StarPoints returns the hoshi positions for the board's size.
func (b *Board) StarPoints() []Point {
	return append([]Point(nil), starPoints[b.size]...)
}

// HandicapPoints returns the fixed handicap placements for the given count,
// or nil when the size/count combination has no table entry.
func (b *Board) HandicapPoints(handicap int) []Point {
	table, ok := handicapPoints[b.size]
	if !ok {
		return nil
	}
	return append([]Point(nil), table[handicap]...)
}

// ApplyHandicap seeds the board with black handicap stones and returns the
// points placed. The board must be empty at the seeded points.
func (b *Board) ApplyHandicap(handicap int) ([]Point, error) {
	if handicap == 0 {
		return nil, nil
	}
	points := b.HandicapPoints(handicap)
	if len(points) == 0 {
		return nil, fmt.Errorf("no handicap placement for %d stones on a %dx%d board", handicap, b.size, b.size)
	}
	for _, p := range points {
		if !b.PlaceStone(p.X, p.Y, Black) {
			return nil, fmt.Errorf("handicap point %v is not placeable", p)
		}
	}
	return points, nil
}
