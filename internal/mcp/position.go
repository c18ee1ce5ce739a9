package mcp

import (
	"fmt"
	"strings"

	"github.com/dmmcquay/goban-engine/internal/board"
	"github.com/dmmcquay/goban-engine/internal/rules"
)

// Move is one move in a tool request: a color and either a GTP coordinate or
// a pass.
type Move struct {
	Color board.Color
	Point *board.Point
}

// Position is the replayable game description tools accept.
type Position struct {
	RuleSet   rules.RuleSet
	Komi      float64
	BoardSize int
	Handicap  int
	Moves     []Move
}

// GameState is a position after replay: the board, the rules engine that
// replayed it, and the running capture counts.
type GameState struct {
	Board         *board.Board
	Engine        *rules.Engine
	KoPoint       *board.Point
	CapturedBlack int
	CapturedWhite int
	MoveNumber    int
	NextColor     board.Color
}

// parseColor accepts the color spellings tool clients use.
func parseColor(s string) (board.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b":
		return board.Black, nil
	case "white", "w":
		return board.White, nil
	}
	return board.Empty, fmt.Errorf("invalid color %q", s)
}

// parsePosition extracts a Position from tool arguments. Missing fields take
// the usual defaults: 19x19 Chinese rules, rule set default komi, no handicap.
func parsePosition(args map[string]interface{}) (*Position, error) {
	pos := &Position{
		RuleSet:   rules.Chinese,
		BoardSize: 19,
	}

	if val, ok := args["boardSize"]; ok {
		size, err := asInt(val)
		if err != nil {
			return nil, fmt.Errorf("boardSize: %w", err)
		}
		pos.BoardSize = size
	}

	if val, ok := args["ruleSet"]; ok {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("ruleSet must be a string")
		}
		rs, err := rules.ParseRuleSet(s)
		if err != nil {
			return nil, err
		}
		pos.RuleSet = rs
	}

	if val, ok := args["komi"]; ok {
		komi, err := asFloat(val)
		if err != nil {
			return nil, fmt.Errorf("komi: %w", err)
		}
		pos.Komi = komi
	}

	if val, ok := args["handicap"]; ok {
		h, err := asInt(val)
		if err != nil {
			return nil, fmt.Errorf("handicap: %w", err)
		}
		pos.Handicap = h
	}

	if val, ok := args["moves"]; ok {
		list, ok := val.([]interface{})
		if !ok {
			return nil, fmt.Errorf("moves must be an array")
		}
		pos.Moves = make([]Move, 0, len(list))
		for i, item := range list {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("move %d: must be an object with color and coord", i+1)
			}
			colorStr, _ := m["color"].(string)
			c, err := parseColor(colorStr)
			if err != nil {
				return nil, fmt.Errorf("move %d: %w", i+1, err)
			}
			coordStr, _ := m["coord"].(string)
			if strings.EqualFold(strings.TrimSpace(coordStr), "pass") {
				pos.Moves = append(pos.Moves, Move{Color: c})
				continue
			}
			p, err := board.ParseGTP(coordStr, pos.BoardSize)
			if err != nil {
				return nil, fmt.Errorf("move %d: %w", i+1, err)
			}
			pos.Moves = append(pos.Moves, Move{Color: c, Point: &p})
		}
	}

	return pos, nil
}

// Replay builds a board from a Position, executing every move through the
// rules engine. An illegal move in the sequence is an error; the tools refuse
// to analyze positions that could not have arisen.
func Replay(pos *Position) (*GameState, error) {
	b, err := board.New(pos.BoardSize)
	if err != nil {
		return nil, err
	}

	engine := rules.New(pos.RuleSet, pos.Komi)
	state := &GameState{
		Board:     b,
		Engine:    engine,
		NextColor: board.Black,
	}

	if pos.Handicap > 0 {
		if _, err := b.ApplyHandicap(pos.Handicap); err != nil {
			return nil, err
		}
		// Handicap stones placed, white moves first.
		state.NextColor = board.White
	}

	for i, m := range pos.Moves {
		if m.Point == nil {
			// Pass: ko restriction lifts, turn alternates.
			state.KoPoint = nil
			state.NextColor = m.Color.Opponent()
			continue
		}

		result := engine.IsLegalMove(b, m.Point.X, m.Point.Y, m.Color, state.KoPoint)
		if result != rules.Success {
			return nil, fmt.Errorf("move %d (%s %s) is illegal: %s",
				i+1, m.Color, board.FormatGTP(*m.Point, pos.BoardSize), result)
		}

		state.MoveNumber++
		ok, captured, koPoint := engine.ExecuteMove(b, m.Point.X, m.Point.Y, m.Color, state.MoveNumber)
		if !ok {
			return nil, fmt.Errorf("move %d (%s %s) could not be placed",
				i+1, m.Color, board.FormatGTP(*m.Point, pos.BoardSize))
		}

		// Captured points held stones of the opponent's color.
		switch m.Color {
		case board.Black:
			state.CapturedWhite += len(captured)
		case board.White:
			state.CapturedBlack += len(captured)
		}

		state.KoPoint = koPoint
		state.NextColor = m.Color.Opponent()
	}

	return state, nil
}

func asInt(val interface{}) (int, error) {
	switch v := val.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	}
	return 0, fmt.Errorf("expected a number, got %T", val)
}

func asFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", val)
}
