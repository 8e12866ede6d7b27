package simulation

import "github.com/cardlab/gosim/engine"

// movesDisrupted reports whether an opponent's move changed the set of legal
// moves available to the current player, compared to what was available
// before the opponent acted. Used to detect "solitaire" genomes where
// players never actually affect each other.
func movesDisrupted(before, after []engine.LegalMove) bool {
	if len(before) != len(after) {
		return true
	}
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}
