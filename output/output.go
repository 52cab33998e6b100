// Package output renders the two text-file formats spec.md §6
// specifies: the comparative orchestrator's grouped result listing and
// the competition orchestrator's score table. Both writers work purely
// on in-memory values — callers own where the bytes ultimately land
// (stdout, a real file, a test buffer).
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/tanktourney/tanktourney/engine"
)

// ComparativeGroup is every game-manager name that produced an
// equivalent outcome (same winner, reason, rounds, and final board),
// plus one representative result to describe and render the group.
type ComparativeGroup struct {
	GMNames []string
	Result  engine.Result
}

// WriteComparative renders the comparative_results_<timestamp>.txt
// format from spec.md §6: a small header block, then one group per
// distinct outcome, most-frequent-first.
func WriteComparative(w io.Writer, mapName, algo1, algo2 string, groups []ComparativeGroup) error {
	sorted := make([]ComparativeGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].GMNames) > len(sorted[j].GMNames)
	})

	if _, err := fmt.Fprintf(w, "game_map=%s\nalgorithm1=%s\nalgorithm2=%s\n\n", mapName, algo1, algo2); err != nil {
		return err
	}

	for i, g := range sorted {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, joinNames(g.GMNames)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, g.Result.Description()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, g.Result.Rounds); err != nil {
			return err
		}
		for _, line := range g.Result.FinalBoard.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// Score is one algorithm's aggregate standing in a competition run:
// win = 3, tie = 1 each, per spec.md §4.8.
type Score struct {
	AlgoName string
	Points   int
}

// WriteCompetition renders the competition_<timestamp>.txt format from
// spec.md §6: a header block, then the score table sorted descending.
func WriteCompetition(w io.Writer, mapsFolder, gmName string, scores []Score) error {
	sorted := make([]Score, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	if _, err := fmt.Fprintf(w, "game_maps_folder=%s\ngame_manager=%s\n\n", mapsFolder, gmName); err != nil {
		return err
	}

	for _, s := range sorted {
		if _, err := fmt.Fprintf(w, "%s %d\n", s.AlgoName, s.Points); err != nil {
			return err
		}
	}
	return nil
}
