package scoring

import (
	"github.com/dmmcquay/goban-engine/internal/board"
	"github.com/dmmcquay/goban-engine/internal/rules"
)

// Winner names the side a score favors.
type Winner string

const (
	WinnerBlack Winner = "black"
	WinnerWhite Winner = "white"
	WinnerDraw  Winner = "draw"
)

// Result is the full score breakdown for a finished position.
type Result struct {
	BlackScore     float64 `json:"blackScore"`
	WhiteScore     float64 `json:"whiteScore"`
	BlackTerritory int     `json:"blackTerritory"`
	WhiteTerritory int     `json:"whiteTerritory"`
	BlackStones    int     `json:"blackStones,omitempty"`
	WhiteStones    int     `json:"whiteStones,omitempty"`
	BlackCaptures  int     `json:"blackCaptures,omitempty"`
	WhiteCaptures  int     `json:"whiteCaptures,omitempty"`
	Dame           int     `json:"dame"`
	Winner         Winner  `json:"winner"`
	Margin         float64 `json:"margin"`
	Method         string  `json:"scoringMethod"`
}

// System scores a finished board under one rule variant. capturedBlack and
// capturedWhite are the stones of that color captured during play; dead
// stones are removed before territory is computed and, under territory
// counting, credited to the opponent.
type System interface {
	CalculateScore(b *board.Board, capturedBlack, capturedWhite int, deadStones map[board.Point]bool) Result
}

// NewSystem returns the scoring system for a rule set. A zero komi selects
// the variant's default.
func NewSystem(rs rules.RuleSet, komi float64) System {
	if komi == 0 {
		komi = rules.FeaturesFor(rs).KomiDefault
	}
	switch rs {
	case rules.Japanese:
		return &territoryScoring{komi: komi}
	case rules.Ing:
		return &ingScoring{areaScoring{komi: komi, method: string(rules.Ing)}}
	case rules.AGA:
		return &areaScoring{komi: komi, method: string(rules.AGA)}
	case rules.NewZealand:
		return &areaScoring{komi: komi, method: string(rules.NewZealand)}
	default:
		return &areaScoring{komi: komi, method: string(rules.Chinese)}
	}
}

// countLiveStones tallies stones per color, skipping those marked dead.
func countLiveStones(b *board.Board, deadStones map[board.Point]bool) (black, white int) {
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			if deadStones[board.Point{X: x, Y: y}] {
				continue
			}
			switch b.ColorAt(x, y) {
			case board.Black:
				black++
			case board.White:
				white++
			}
		}
	}
	return black, white
}

// countDeadStones splits the dead-stone set by color as it stands on the
// board.
func countDeadStones(b *board.Board, deadStones map[board.Point]bool) (deadBlack, deadWhite int) {
	for p := range deadStones {
		switch b.ColorAt(p.X, p.Y) {
		case board.Black:
			deadBlack++
		case board.White:
			deadWhite++
		}
	}
	return deadBlack, deadWhite
}

func decide(blackScore, whiteScore float64) (Winner, float64) {
	switch {
	case blackScore > whiteScore:
		return WinnerBlack, blackScore - whiteScore
	case whiteScore > blackScore:
		return WinnerWhite, whiteScore - blackScore
	default:
		return WinnerDraw, 0
	}
}

// areaScoring implements Chinese-style counting: live stones plus enclosed
// territory. White receives komi/2 rather than the full komi; komi is
// expressed in points of territory and halved when converted to stone units.
// This convention is preserved exactly for compatibility with existing game
// records, even though full-komi area counting is the more common rendering.
type areaScoring struct {
	komi   float64
	method string
}

func (s *areaScoring) CalculateScore(b *board.Board, capturedBlack, capturedWhite int, deadStones map[board.Point]bool) Result {
	territory := NewTerritory(b).Calculate(deadStones)
	blackStones, whiteStones := countLiveStones(b, deadStones)

	blackScore := float64(blackStones + territory.Black)
	whiteScore := float64(whiteStones+territory.White) + s.komi/2

	winner, margin := decide(blackScore, whiteScore)

	return Result{
		BlackScore:     blackScore,
		WhiteScore:     whiteScore,
		BlackTerritory: territory.Black,
		WhiteTerritory: territory.White,
		BlackStones:    blackStones,
		WhiteStones:    whiteStones,
		Dame:           territory.Dame,
		Winner:         winner,
		Margin:         margin,
		Method:         s.method,
	}
}

// territoryScoring implements Japanese-style counting: enclosed territory
// plus prisoners, with dead stones credited to the opponent and white
// receiving the full komi.
type territoryScoring struct {
	komi float64
}

func (s *territoryScoring) CalculateScore(b *board.Board, capturedBlack, capturedWhite int, deadStones map[board.Point]bool) Result {
	territory := NewTerritory(b).Calculate(deadStones)
	deadBlack, deadWhite := countDeadStones(b, deadStones)

	blackScore := float64(territory.Black + capturedWhite + deadWhite)
	whiteScore := float64(territory.White+capturedBlack+deadBlack) + s.komi

	winner, margin := decide(blackScore, whiteScore)

	return Result{
		BlackScore:     blackScore,
		WhiteScore:     whiteScore,
		BlackTerritory: territory.Black,
		WhiteTerritory: territory.White,
		BlackCaptures:  capturedWhite + deadWhite,
		WhiteCaptures:  capturedBlack + deadBlack,
		Dame:           territory.Dame,
		Winner:         winner,
		Margin:         margin,
		Method:         string(rules.Japanese),
	}
}

// ingScoring counts area like the Chinese rules but decides the winner
// against fixed fill-the-board targets instead of comparing the two scores
// directly; the margin is measured against the player's own target.
type ingScoring struct {
	areaScoring
}

func (s *ingScoring) CalculateScore(b *board.Board, capturedBlack, capturedWhite int, deadStones map[board.Point]bool) Result {
	res := s.areaScoring.CalculateScore(b, capturedBlack, capturedWhite, deadStones)
	res.Method = string(rules.Ing)

	total := float64(b.Size() * b.Size())
	blackTarget := (total + 1) / 2
	whiteTarget := (total - 1) / 2

	switch {
	case res.BlackScore >= blackTarget:
		res.Winner = WinnerBlack
		res.Margin = res.BlackScore - blackTarget
	case res.WhiteScore >= whiteTarget:
		res.Winner = WinnerWhite
		res.Margin = res.WhiteScore - whiteTarget
	default:
		res.Winner = WinnerDraw
		res.Margin = 0
	}

	return res
}
