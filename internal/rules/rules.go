package rules

import (
	"fmt"

	"github.com/dmmcquay/goban-engine/internal/board"
)

// MoveResult is the closed set of outcomes a legality check can produce.
// These are expected values, not errors.
type MoveResult int

const (
	Success MoveResult = iota
	Illegal
	Ko
	Suicide
	Occupied
	OutOfBounds
	Superko
)

func (r MoveResult) String() string {
	switch r {
	case Success:
		return "success"
	case Ko:
		return "ko"
	case Suicide:
		return "suicide"
	case Occupied:
		return "occupied"
	case OutOfBounds:
		return "out_of_bounds"
	case Superko:
		return "superko"
	default:
		return "illegal"
	}
}

// RuleSet selects a rule variant.
type RuleSet string

const (
	Chinese    RuleSet = "chinese"
	Japanese   RuleSet = "japanese"
	AGA        RuleSet = "aga"
	Ing        RuleSet = "ing"
	NewZealand RuleSet = "new_zealand"
)

// ParseRuleSet validates a rule set name from configuration or tool input.
func ParseRuleSet(s string) (RuleSet, error) {
	switch RuleSet(s) {
	case Chinese, Japanese, AGA, Ing, NewZealand:
		return RuleSet(s), nil
	}
	return "", fmt.Errorf("unknown rule set %q", s)
}

// ScoringMethod distinguishes area counting from territory counting.
type ScoringMethod int

const (
	ScoreArea ScoringMethod = iota
	ScoreTerritory
)

// SuperkoPolicy controls whole-board repetition checks.
type SuperkoPolicy int

const (
	SuperkoOff SuperkoPolicy = iota
	SuperkoPositional
	SuperkoSituational
)

// Features is the per-rule-set behavior table: a plain struct selected by an
// enum match, not a stringly-keyed dictionary.
type Features struct {
	Scoring        ScoringMethod
	SuicideAllowed bool
	Superko        SuperkoPolicy
	PassStones     int
	TerritoryInSeki bool
	KomiDefault    float64
}

// FeaturesFor returns the feature set for a rule variant. Ing and New
// Zealand reuse the Chinese move-legality features and differ only in
// scoring and default komi.
func FeaturesFor(rs RuleSet) Features {
	switch rs {
	case Japanese:
		return Features{
			Scoring:        ScoreTerritory,
			SuicideAllowed: false,
			Superko:        SuperkoSituational,
			PassStones:     1,
			KomiDefault:    6.5,
		}
	case AGA:
		return Features{
			Scoring:        ScoreArea,
			SuicideAllowed: false,
			Superko:        SuperkoSituational,
			PassStones:     1,
			KomiDefault:    7.5,
		}
	case Ing:
		return Features{
			Scoring:        ScoreArea,
			SuicideAllowed: false,
			Superko:        SuperkoPositional,
			KomiDefault:    8.0,
		}
	case NewZealand:
		return Features{
			Scoring:        ScoreArea,
			SuicideAllowed: false,
			Superko:        SuperkoPositional,
			KomiDefault:    7.5,
		}
	default:
		return Features{
			Scoring:        ScoreArea,
			SuicideAllowed: false,
			Superko:        SuperkoPositional,
			KomiDefault:    7.5,
		}
	}
}

const (
	// maxHistory bounds the recorded position hashes.
	maxHistory = 50
	// superkoWindow is how far back a repeated position is rejected.
	superkoWindow = 8
)

// Engine decides move legality and executes accepted moves. It owns the
// position-hash history used for superko detection; one hash is appended per
// executed move, never for mere legality checks.
//
// The engine performs no locking. Callers that share an Engine and its
// authoritative board across goroutines must serialize access; speculative
// evaluation always runs on a board copy.
type Engine struct {
	ruleSet  RuleSet
	features Features
	komi     float64
	history  []string
}

// New creates a rules engine for the given variant. A zero komi selects the
// variant's default.
func New(rs RuleSet, komi float64) *Engine {
	f := FeaturesFor(rs)
	if komi == 0 {
		komi = f.KomiDefault
	}
	return &Engine{
		ruleSet:  rs,
		features: f,
		komi:     komi,
	}
}

// RuleSet returns the active rule variant.
func (e *Engine) RuleSet() RuleSet { return e.ruleSet }

// Komi returns the compensation added to white's score.
func (e *Engine) Komi() float64 { return e.komi }

// Features returns the active feature table.
func (e *Engine) Features() Features { return e.features }

// IsLegalMove checks a candidate move without mutating the board. The checks
// run in a fixed order: bounds, occupancy, ko point, then a simulated
// placement on a board copy where captures resolve before the suicide check
// (a capturing move may rescue the placing group), and finally superko
// against the recent position history.
func (e *Engine) IsLegalMove(b *board.Board, x, y int, c board.Color, koPoint *board.Point) MoveResult {
	if !b.InBounds(x, y) {
		return OutOfBounds
	}
	if !b.IsEmpty(x, y) {
		return Occupied
	}
	if koPoint != nil && koPoint.X == x && koPoint.Y == y {
		return Ko
	}

	sim := b.Copy()
	sim.PlaceStone(x, y, c)

	captured := 0
	for _, g := range e.capturedGroups(sim, x, y, c.Opponent()) {
		captured += g.Size()
		sim.RemoveGroup(g)
	}

	if !e.features.SuicideAllowed && captured == 0 {
		if g := sim.GroupAt(x, y); g != nil && g.Liberties() == 0 {
			return Suicide
		}
	}

	if e.features.Superko != SuperkoOff {
		hash := sim.Hash()
		start := len(e.history) - superkoWindow
		if start < 0 {
			start = 0
		}
		for _, h := range e.history[start:] {
			if h == hash {
				return Superko
			}
		}
	}

	return Success
}

// ExecuteMove places a stone on the authoritative board, removes captured
// opponent groups, computes the new ko point, and records the position hash.
// A false return means the placement itself failed (occupied or out of
// bounds), which after a successful IsLegalMove is a caller contract
// violation.
func (e *Engine) ExecuteMove(b *board.Board, x, y int, c board.Color, moveNumber int) (bool, []board.Point, *board.Point) {
	if !b.PlaceStoneMove(x, y, c, moveNumber) {
		return false, nil, nil
	}

	var captured []board.Point
	for _, g := range e.capturedGroups(b, x, y, c.Opponent()) {
		captured = append(captured, b.RemoveGroup(g)...)
	}

	koPoint := e.koPoint(b, x, y, captured)

	e.history = append(e.history, b.Hash())
	if len(e.history) > maxHistory {
		e.history = e.history[len(e.history)-maxHistory:]
	}

	return true, captured, koPoint
}

// capturedGroups collects the opponent groups adjacent to the just-played
// stone that have no liberties left. Adjacent points sharing a group are
// deduplicated by arena index.
func (e *Engine) capturedGroups(b *board.Board, x, y int, opponent board.Color) []*board.Group {
	var captured []*board.Group
	seen := make(map[int]bool)
	for _, n := range b.Neighbors(x, y) {
		if b.ColorAt(n.X, n.Y) != opponent {
			continue
		}
		idx, ok := b.GroupIndexAt(n.X, n.Y)
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		if g := b.GroupAt(n.X, n.Y); g != nil && g.Liberties() == 0 {
			captured = append(captured, g)
		}
	}
	return captured
}

// koPoint computes the ko point after a move: exactly one stone captured and
// the capturing stone standing alone with a single liberty marks the captured
// point as forbidden for one turn.
func (e *Engine) koPoint(b *board.Board, x, y int, captured []board.Point) *board.Point {
	if len(captured) != 1 {
		return nil
	}
	g := b.GroupAt(x, y)
	if g == nil || g.Size() != 1 || g.Liberties() != 1 {
		return nil
	}
	ko := captured[0]
	return &ko
}

// PositionHistory returns the recorded position hashes, oldest first.
func (e *Engine) PositionHistory() []string {
	return append([]string(nil), e.history...)
}

// ClearHistory forgets all recorded positions, for a new game.
func (e *Engine) ClearHistory() {
	e.history = e.history[:0]
}
