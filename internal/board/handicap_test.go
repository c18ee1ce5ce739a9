package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarPoints(t *testing.T) {
	b19, err := New(19)
	require.NoError(t, err)
	assert.Len(t, b19.StarPoints(), 9)
	assert.Contains(t, b19.StarPoints(), Point{9, 9})

	b13, err := New(13)
	require.NoError(t, err)
	assert.Len(t, b13.StarPoints(), 5)
	assert.Contains(t, b13.StarPoints(), Point{6, 6})

	b9, err := New(9)
	require.NoError(t, err)
	assert.Len(t, b9.StarPoints(), 5)
	assert.Contains(t, b9.StarPoints(), Point{4, 4})
}

func TestHandicapPoints(t *testing.T) {
	b, err := New(19)
	require.NoError(t, err)

	assert.Len(t, b.HandicapPoints(2), 2)
	assert.Len(t, b.HandicapPoints(9), 9)
	assert.Nil(t, b.HandicapPoints(0))
	assert.Nil(t, b.HandicapPoints(10))

	// Two stones sit on opposite corners.
	two := b.HandicapPoints(2)
	assert.Contains(t, two, Point{3, 15})
	assert.Contains(t, two, Point{15, 3})
}

func TestHandicapPoints_SmallBoard(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	assert.Len(t, b.HandicapPoints(5), 5)
	// A 9x9 board has no 6-stone placement.
	assert.Nil(t, b.HandicapPoints(6))
}

func TestApplyHandicap(t *testing.T) {
	b, err := New(19)
	require.NoError(t, err)

	points, err := b.ApplyHandicap(4)
	require.NoError(t, err)
	assert.Len(t, points, 4)
	for _, p := range points {
		assert.Equal(t, Black, b.ColorAt(p.X, p.Y))
	}

	black, white, _ := b.CountStones()
	assert.Equal(t, 4, black)
	assert.Equal(t, 0, white)
}

func TestApplyHandicap_Zero(t *testing.T) {
	b, err := New(19)
	require.NoError(t, err)

	points, err := b.ApplyHandicap(0)
	require.NoError(t, err)
	assert.Nil(t, points)
}

func TestApplyHandicap_Unsupported(t *testing.T) {
	b, err := New(9)
	require.NoError(t, err)

	_, err = b.ApplyHandicap(6)
	assert.Error(t, err)
}
