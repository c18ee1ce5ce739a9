package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinate helpers for the two external notations the engine's
// collaborators speak: GTP-style ("D4", column letters skip I, rows count
// from the bottom) and SGF-style ("cd", both axes are 0-indexed letters from
// 'a'). The board itself only uses integer coordinates.

func columnLetter(x int) byte {
	c := byte('A' + x)
	if x >= 8 {
		c++ // skip I
	}
	return c
}

// FormatGTP renders a point in GTP notation for the given board size.
func FormatGTP(p Point, size int) string {
	return fmt.Sprintf("%c%d", columnLetter(p.X), size-p.Y)
}

// ParseGTP parses GTP notation ("D4", "Q16") into a point. "pass" is not a
// point and is rejected; callers handle passes before coordinates.
func ParseGTP(s string, size int) (Point, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Point{}, fmt.Errorf("invalid coordinate %q", s)
	}
	col := s[0]
	if col < 'A' || col > 'Z' || col == 'I' {
		return Point{}, fmt.Errorf("invalid column in coordinate %q", s)
	}
	x := int(col - 'A')
	if col > 'I' {
		x--
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Point{}, fmt.Errorf("invalid row in coordinate %q", s)
	}
	p := Point{X: x, Y: size - row}
	if p.X < 0 || p.X >= size || p.Y < 0 || p.Y >= size {
		return Point{}, fmt.Errorf("coordinate %q is off a %dx%d board", s, size, size)
	}
	return p, nil
}

// FormatSGF renders a point in SGF letter-pair notation ('a' = 0, no letters
// skipped).
func FormatSGF(p Point) string {
	return string([]byte{byte('a' + p.X), byte('a' + p.Y)})
}

// ParseSGF parses SGF letter-pair notation into a point.
func ParseSGF(s string, size int) (Point, error) {
	if len(s) != 2 {
		return Point{}, fmt.Errorf("invalid SGF coordinate %q", s)
	}
	x := int(s[0] - 'a')
	y := int(s[1] - 'a')
	if x < 0 || x >= size || y < 0 || y >= size {
		return Point{}, fmt.Errorf("SGF coordinate %q is off a %dx%d board", s, size, size)
	}
	return Point{X: x, Y: y}, nil
}
