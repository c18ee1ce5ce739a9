package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ValidSizes(t *testing.T) {
	for _, size := range []int{9, 13, 19} {
		b, err := New(size)
		require.NoError(t, err)
		assert.Equal(t, size, b.Size())

		black, white, empty := b.CountStones()
		assert.Equal(t, 0, black)
		assert.Equal(t, 0, white)
		assert.Equal(t, size*size, empty)
	}
}

func TestNew_InvalidSizes(t *testing.T) {
	for _, size := range []int{0, 1, 8, 10, 20, -5} {
		_, err := New(size)
		assert.Error(t, err, "size %d should be rejected", size)
	}
}

func TestPlaceStone(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	assert.True(t, b.PlaceStone(4, 4, Black))
	assert.Equal(t, Black, b.ColorAt(4, 4))

	// Occupied point
	assert.False(t, b.PlaceStone(4, 4, White))
	assert.Equal(t, Black, b.ColorAt(4, 4))

	// Out of bounds
	assert.False(t, b.PlaceStone(-1, 0, Black))
	assert.False(t, b.PlaceStone(9, 9, Black))

	// Empty is not a placeable color
	assert.False(t, b.PlaceStone(0, 0, Empty))
	assert.True(t, b.IsEmpty(0, 0))
}

func TestRemoveStone(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStone(2, 2, White))
	assert.True(t, b.RemoveStone(2, 2))
	assert.True(t, b.IsEmpty(2, 2))

	// Already empty
	assert.False(t, b.RemoveStone(2, 2))
	// Out of bounds
	assert.False(t, b.RemoveStone(-1, 0))
}

func TestGroupAt_SingleStone(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStone(4, 4, Black))
	g := b.GroupAt(4, 4)
	require.NotNil(t, g)
	assert.Equal(t, Black, g.Color())
	assert.Equal(t, 1, g.Size())
	assert.Equal(t, 4, g.Liberties())
}

func TestGroupAt_CornerAndEdgeLiberties(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStone(0, 0, Black))
	assert.Equal(t, 2, b.Liberties(0, 0))

	require.True(t, b.PlaceStone(4, 0, White))
	assert.Equal(t, 3, b.Liberties(4, 0))
}

func TestGroupAt_ConnectedStones(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	// Horizontal three-stone chain
	for _, x := range []int{3, 4, 5} {
		require.True(t, b.PlaceStone(x, 4, Black))
	}

	g := b.GroupAt(4, 4)
	require.NotNil(t, g)
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 8, g.Liberties())

	// Same group from every member coordinate
	for _, x := range []int{3, 4, 5} {
		idx1, ok1 := b.GroupIndexAt(3, 4)
		idx2, ok2 := b.GroupIndexAt(x, 4)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, idx1, idx2)
	}
}

func TestGroupAt_DiagonalNotConnected(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStone(4, 4, Black))
	require.True(t, b.PlaceStone(5, 5, Black))

	idx1, ok1 := b.GroupIndexAt(4, 4)
	idx2, ok2 := b.GroupIndexAt(5, 5)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.NotEqual(t, idx1, idx2, "diagonal stones are separate groups")
}

func TestGroupAt_EmptyPoint(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)
	assert.Nil(t, b.GroupAt(4, 4))
	assert.Nil(t, b.GroupAt(-1, 2))
	assert.Equal(t, 0, b.Liberties(4, 4))
}

func TestGroupCache_InvalidationOnMerge(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStone(3, 4, Black))
	require.True(t, b.PlaceStone(5, 4, Black))

	// Prime the cache with the two separate groups.
	assert.Equal(t, 1, b.GroupAt(3, 4).Size())
	assert.Equal(t, 1, b.GroupAt(5, 4).Size())

	// Joining move merges them; cached entries must not survive.
	require.True(t, b.PlaceStone(4, 4, Black))
	g := b.GroupAt(3, 4)
	require.NotNil(t, g)
	assert.Equal(t, 3, g.Size())

	idxA, _ := b.GroupIndexAt(3, 4)
	idxB, _ := b.GroupIndexAt(5, 4)
	assert.Equal(t, idxA, idxB)
}

func TestGroupCache_InvalidationOnRemoval(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	for _, x := range []int{3, 4, 5} {
		require.True(t, b.PlaceStone(x, 4, Black))
	}
	require.NotNil(t, b.GroupAt(4, 4))

	// Splitting the chain invalidates the whole cached group.
	require.True(t, b.RemoveStone(4, 4))
	left := b.GroupAt(3, 4)
	right := b.GroupAt(5, 4)
	require.NotNil(t, left)
	require.NotNil(t, right)
	assert.Equal(t, 1, left.Size())
	assert.Equal(t, 1, right.Size())
}

func TestGroupCache_MatchesFreshComputation(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	moves := []struct {
		x, y int
		c    Color
	}{
		{4, 4, Black}, {4, 5, Black}, {5, 4, White}, {3, 4, White},
		{4, 3, White}, {5, 5, White}, {3, 5, White},
	}
	for _, m := range moves {
		require.True(t, b.PlaceStone(m.x, m.y, m.c))
	}

	// Cached group answers equal those computed on a fresh copy.
	fresh := b.Copy()
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			g1 := b.GroupAt(x, y)
			g2 := fresh.GroupAt(x, y)
			if g1 == nil {
				assert.Nil(t, g2)
				continue
			}
			require.NotNil(t, g2)
			assert.Equal(t, g1.Size(), g2.Size(), "size mismatch at (%d,%d)", x, y)
			assert.Equal(t, g1.Liberties(), g2.Liberties(), "liberties mismatch at (%d,%d)", x, y)
		}
	}
}

func TestRemoveGroup(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	for _, x := range []int{3, 4, 5} {
		require.True(t, b.PlaceStone(x, 4, White))
	}
	g := b.GroupAt(4, 4)
	require.NotNil(t, g)

	removed := b.RemoveGroup(g)
	assert.Len(t, removed, 3)
	for _, x := range []int{3, 4, 5} {
		assert.True(t, b.IsEmpty(x, 4))
	}

	assert.Nil(t, b.RemoveGroup(nil))
}

func TestAllGroups(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStone(1, 1, Black))
	require.True(t, b.PlaceStone(1, 2, Black))
	require.True(t, b.PlaceStone(7, 7, White))
	require.True(t, b.PlaceStone(4, 4, Black))

	groups := b.AllGroups()
	assert.Len(t, groups, 3)

	total := 0
	for _, g := range groups {
		total += g.Size()
	}
	assert.Equal(t, 4, total)
}

func TestHash_ReflectsGridOnly(t *testing.T) {
	b1, err := New(9)
	require.NoError(t, err)
	b2, err := New(9)
	require.NoError(t, err)

	assert.Equal(t, b1.Hash(), b2.Hash())

	require.True(t, b1.PlaceStone(4, 4, Black))
	assert.NotEqual(t, b1.Hash(), b2.Hash())

	// Same grid, different move numbers: identical hash.
	require.True(t, b2.PlaceStoneMove(4, 4, Black, 17))
	assert.Equal(t, b1.Hash(), b2.Hash())

	// Color matters.
	require.True(t, b1.PlaceStone(5, 5, Black))
	require.True(t, b2.PlaceStone(5, 5, White))
	assert.NotEqual(t, b1.Hash(), b2.Hash())
}

func TestCopy_Independence(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)
	require.True(t, b.PlaceStoneMove(4, 4, Black, 1))

	c := b.Copy()
	assert.Equal(t, b.Hash(), c.Hash())
	assert.Len(t, c.History(), 1)

	// Mutating the copy leaves the original untouched and vice versa.
	require.True(t, c.PlaceStone(5, 5, White))
	assert.True(t, b.IsEmpty(5, 5))
	require.True(t, b.PlaceStone(3, 3, White))
	assert.True(t, c.IsEmpty(3, 3))

	// Copy rebuilds its own group cache.
	g := c.GroupAt(4, 4)
	require.NotNil(t, g)
	assert.Equal(t, 1, g.Size())
}

func TestHistory_TracksMoveNumbers(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	require.True(t, b.PlaceStoneMove(4, 4, Black, 1))
	require.True(t, b.PlaceStoneMove(5, 5, White, 2))

	h := b.History()
	require.Len(t, h, 2)
	assert.Equal(t, Stone{X: 4, Y: 4, Color: Black, MoveNumber: 1}, h[0])
	assert.Equal(t, Stone{X: 5, Y: 5, Color: White, MoveNumber: 2}, h[1])

	// Removal drops the stone from history.
	require.True(t, b.RemoveStone(4, 4))
	h = b.History()
	require.Len(t, h, 1)
	assert.Equal(t, 5, h[0].X)
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, White, Black.Opponent())
	assert.Equal(t, Black, White.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}

func TestString_Diagram(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)
	require.True(t, b.PlaceStone(0, 0, Black))
	require.True(t, b.PlaceStone(8, 8, White))

	s := b.String()
	assert.Contains(t, s, " X")
	assert.Contains(t, s, " O")
	// Column letters skip I.
	assert.Contains(t, s, "A B C D E F G H J")
}
