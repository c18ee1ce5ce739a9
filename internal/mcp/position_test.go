package mcp

import (
	"testing"

	"github.com/dmmcquay/goban-engine/internal/board"
	"github.com/dmmcquay/goban-engine/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, s := range []string{"black", "Black", "b", " B "} {
		c, err := parseColor(s)
		require.NoError(t, err)
		assert.Equal(t, board.Black, c)
	}
	for _, s := range []string{"white", "w"} {
		c, err := parseColor(s)
		require.NoError(t, err)
		assert.Equal(t, board.White, c)
	}
	_, err := parseColor("green")
	assert.Error(t, err)
	_, err = parseColor("")
	assert.Error(t, err)
}

func TestParsePosition_Defaults(t *testing.T) {
	pos, err := parsePosition(map[string]interface{}{})
	require.NoError(t, err)

	assert.Equal(t, rules.Chinese, pos.RuleSet)
	assert.Equal(t, 19, pos.BoardSize)
	assert.Equal(t, 0.0, pos.Komi)
	assert.Equal(t, 0, pos.Handicap)
	assert.Empty(t, pos.Moves)
}

func TestParsePosition_FullArguments(t *testing.T) {
	// JSON numbers decode as float64.
	args := map[string]interface{}{
		"boardSize": float64(9),
		"ruleSet":   "japanese",
		"komi":      float64(6.5),
		"handicap":  float64(2),
		"moves": []interface{}{
			map[string]interface{}{"color": "white", "coord": "E5"},
			map[string]interface{}{"color": "black", "coord": "pass"},
		},
	}

	pos, err := parsePosition(args)
	require.NoError(t, err)

	assert.Equal(t, rules.Japanese, pos.RuleSet)
	assert.Equal(t, 9, pos.BoardSize)
	assert.Equal(t, 6.5, pos.Komi)
	assert.Equal(t, 2, pos.Handicap)
	require.Len(t, pos.Moves, 2)

	assert.Equal(t, board.White, pos.Moves[0].Color)
	require.NotNil(t, pos.Moves[0].Point)
	assert.Equal(t, board.Point{X: 4, Y: 4}, *pos.Moves[0].Point)

	assert.Equal(t, board.Black, pos.Moves[1].Color)
	assert.Nil(t, pos.Moves[1].Point, "pass has no point")
}

func TestParsePosition_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{"boardSize not a number", map[string]interface{}{"boardSize": "nine"}},
		{"unknown rule set", map[string]interface{}{"ruleSet": "korean"}},
		{"ruleSet not a string", map[string]interface{}{"ruleSet": 1.0}},
		{"komi not a number", map[string]interface{}{"komi": "big"}},
		{"moves not an array", map[string]interface{}{"moves": "D4"}},
		{"move not an object", map[string]interface{}{
			"moves": []interface{}{"D4"},
		}},
		{"move missing color", map[string]interface{}{
			"moves": []interface{}{map[string]interface{}{"coord": "D4"}},
		}},
		{"move bad coordinate", map[string]interface{}{
			"moves": []interface{}{map[string]interface{}{"color": "black", "coord": "I4"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePosition(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestReplay_EmptyPosition(t *testing.T) {
	state, err := Replay(&Position{RuleSet: rules.Chinese, BoardSize: 9})
	require.NoError(t, err)

	assert.Equal(t, board.Black, state.NextColor)
	assert.Nil(t, state.KoPoint)
	assert.Equal(t, 0, state.MoveNumber)
	black, white, _ := state.Board.CountStones()
	assert.Equal(t, 0, black)
	assert.Equal(t, 0, white)
}

func TestReplay_HandicapWhiteFirst(t *testing.T) {
	state, err := Replay(&Position{
		RuleSet:   rules.Chinese,
		BoardSize: 9,
		Handicap:  2,
	})
	require.NoError(t, err)

	black, white, _ := state.Board.CountStones()
	assert.Equal(t, 2, black)
	assert.Equal(t, 0, white)
	assert.Equal(t, board.White, state.NextColor)
}

func moveAt(color board.Color, x, y int) Move {
	p := board.Point{X: x, Y: y}
	return Move{Color: color, Point: &p}
}

func TestReplay_CountsCaptures(t *testing.T) {
	// Black surrounds a lone white stone at (4,4).
	state, err := Replay(&Position{
		RuleSet:   rules.Chinese,
		BoardSize: 9,
		Moves: []Move{
			moveAt(board.White, 4, 4),
			moveAt(board.Black, 4, 3),
			moveAt(board.Black, 4, 5),
			moveAt(board.Black, 3, 4),
			moveAt(board.Black, 5, 4),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, state.CapturedWhite)
	assert.Equal(t, 0, state.CapturedBlack)
	assert.True(t, state.Board.IsEmpty(4, 4))
	assert.Equal(t, 5, state.MoveNumber)
	assert.Equal(t, board.White, state.NextColor)
}

// koMoves builds the classic single-stone ko shape and has black take the ko.
// After the capture the ko point is (2,2).
func koMoves() []Move {
	return []Move{
		moveAt(board.Black, 2, 1),
		moveAt(board.White, 3, 1),
		moveAt(board.Black, 1, 2),
		moveAt(board.White, 4, 2),
		moveAt(board.Black, 2, 3),
		moveAt(board.White, 3, 3),
		moveAt(board.White, 2, 2),
		moveAt(board.Black, 3, 2),
	}
}

func TestReplay_TracksKoPoint(t *testing.T) {
	state, err := Replay(&Position{
		RuleSet:   rules.Chinese,
		BoardSize: 9,
		Moves:     koMoves(),
	})
	require.NoError(t, err)

	require.NotNil(t, state.KoPoint)
	assert.Equal(t, board.Point{X: 2, Y: 2}, *state.KoPoint)
	assert.Equal(t, 1, state.CapturedWhite)
}

func TestReplay_IllegalKoRecapture(t *testing.T) {
	moves := append(koMoves(), moveAt(board.White, 2, 2))

	_, err := Replay(&Position{
		RuleSet:   rules.Chinese,
		BoardSize: 9,
		Moves:     moves,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal")
}

func TestReplay_PassClearsKoPoint(t *testing.T) {
	moves := append(koMoves(), Move{Color: board.White})

	state, err := Replay(&Position{
		RuleSet:   rules.Chinese,
		BoardSize: 9,
		Moves:     moves,
	})
	require.NoError(t, err)

	assert.Nil(t, state.KoPoint)
	assert.Equal(t, board.Black, state.NextColor)
}

func TestReplay_IllegalOccupiedPoint(t *testing.T) {
	_, err := Replay(&Position{
		RuleSet:   rules.Chinese,
		BoardSize: 9,
		Moves: []Move{
			moveAt(board.Black, 4, 4),
			moveAt(board.White, 4, 4),
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "move 2")
}

func TestReplay_InvalidBoardSize(t *testing.T) {
	_, err := Replay(&Position{RuleSet: rules.Chinese, BoardSize: 10})
	assert.Error(t, err)
}
