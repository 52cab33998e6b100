package engine

import (
	"fmt"

	"github.com/tanktourney/tanktourney/board"
)

// Reason is why a match ended, mirroring
// original_source/common/GameResult.h's GameResult::Reason.
type Reason int

const (
	AllTanksDead Reason = iota
	MaxSteps
	ZeroShells
)

func (r Reason) String() string {
	switch r {
	case AllTanksDead:
		return "ALL_TANKS_DEAD"
	case MaxSteps:
		return "MAX_STEPS"
	case ZeroShells:
		return "ZERO_SHELLS"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of one match. It owns a freshly copied final
// board — no result ever references memory a plugin might still hold,
// per spec.md §9 "Shared ownership of result boards".
type Result struct {
	Winner         int // 0 = tie, else 1 or 2
	Reason         Reason
	RemainingTanks [2]int // index 0 = player 1, index 1 = player 2
	FinalBoard     *board.Board
	Rounds         int
}

// Description renders the result line exactly as spec.md §6 specifies
// for the comparative output file.
func (r Result) Description() string {
	switch r.Reason {
	case AllTanksDead:
		if r.Winner == 0 {
			return "Tie, both players have zero tanks"
		}
		return winnerLine(r)
	case ZeroShells:
		return "Tie, both players have zero shells for 40 steps"
	case MaxSteps:
		return tieMaxStepsLine(r)
	default:
		return winnerLine(r)
	}
}

func winnerLine(r Result) string {
	alive := r.RemainingTanks[r.Winner-1]
	return fmt.Sprintf("Player %d won with %d tanks still alive", r.Winner, alive)
}

func tieMaxStepsLine(r Result) string {
	return fmt.Sprintf("Tie, reached max steps = %d, player 1 has %d tanks, player 2 has %d tanks",
		r.Rounds, r.RemainingTanks[0], r.RemainingTanks[1])
}
