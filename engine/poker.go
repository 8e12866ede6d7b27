package engine

import (
	"github.com/cardrank/cardrank"
)

// cardrankRankOf maps an engine rank (0=A,1-9=2-10,10=J,11=Q,12=K) to the
// cardrank.Rank value (Two=0 .. Ace=12).
var cardrankRankOf = [13]cardrank.Rank{
	cardrank.Ace, cardrank.Two, cardrank.Three, cardrank.Four, cardrank.Five,
	cardrank.Six, cardrank.Seven, cardrank.Eight, cardrank.Nine, cardrank.Ten,
	cardrank.Jack, cardrank.Queen, cardrank.King,
}

// cardrankSuitOf maps an engine suit (0=H,1=D,2=C,3=S) to cardrank.Suit.
var cardrankSuitOf = [4]cardrank.Suit{
	cardrank.Heart, cardrank.Diamond, cardrank.Club, cardrank.Spade,
}

// toCardrankCard converts an engine Card to the cardrank library's packed
// representation. Returns cardrank.InvalidCard if the engine card is out of
// range, which can't happen for cards produced by this package's deck.
func toCardrankCard(c Card) cardrank.Card {
	if int(c.Rank) >= len(cardrankRankOf) || int(c.Suit) >= len(cardrankSuitOf) {
		return cardrank.InvalidCard
	}
	return cardrank.New(cardrankRankOf[c.Rank], cardrankSuitOf[c.Suit])
}

func toCardrankHand(cards []Card) []cardrank.Card {
	out := make([]cardrank.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardrankCard(c))
	}
	return out
}

// bestCactusRank returns the best (lowest) cardrank.EvalRank achievable from
// any 5-card selection out of v, using the library's Cactus Kev evaluator.
// Evolved games rarely deal exactly 5 cards per hand, so this enumerates
// combinations rather than relying on cardrank's Holdem/Omaha Type evals,
// which only accept pocket+board totals of 5, 6 or 7.
func bestCactusRank(v []cardrank.Card) cardrank.EvalRank {
	n := len(v)
	best := cardrank.Invalid
	var combo [5]cardrank.Card
	var pick func(start, k int)
	pick = func(start, k int) {
		if k == 5 {
			if r := cardrank.RankCactus(combo[0], combo[1], combo[2], combo[3], combo[4]); r < best {
				best = r
			}
			return
		}
		for i := start; i < n; i++ {
			combo[k] = v[i]
			pick(i+1, k+1)
		}
	}
	pick(0, 0)
	return best
}

// FindBestPokerWinner evaluates every active (non-folded) player's hand via
// cardrank's Cactus Kev evaluator (best 5-card selection out of however many
// cards the player holds) and returns the seat index with the strongest
// hand. Hands shorter than 5 cards fall back to EvaluateHandStrength, since
// cardrank's evaluators require at least 5 cards. Ties are broken by seat
// order (lowest index); true splits are resolved by ResolveShowdown/AwardPot
// upstream. Returns -1 if no player qualifies.
func FindBestPokerWinner(gs *GameState, numPlayers int) int8 {
	best := -1
	bestRank := cardrank.Invalid
	bestHeuristic := -1.0
	usedHeuristic := false
	for i := 0; i < numPlayers && i < len(gs.Players); i++ {
		p := &gs.Players[i]
		if p.HasFolded || len(p.Hand) == 0 {
			continue
		}
		if len(p.Hand) >= 5 {
			r := bestCactusRank(toCardrankHand(p.Hand))
			if best < 0 || usedHeuristic || r < bestRank {
				bestRank, best, usedHeuristic = r, i, false
			}
			continue
		}
		if best >= 0 && !usedHeuristic {
			continue // a qualifying 5+ card hand always beats a heuristic fallback
		}
		h := EvaluateHandStrength(p.Hand)
		if best < 0 || h > bestHeuristic {
			bestHeuristic, best, usedHeuristic = h, i, true
		}
	}
	if best < 0 {
		return -1
	}
	return int8(best)
}

// HandStrengthCactus normalizes a 5+ card hand's best Cactus Kev rank (1 =
// royal flush, cardrank.Nothing = worst) onto the same 0-1 scale
// EvaluateHandStrength uses, so the greedy betting AI can judge poker-sized
// hands by actual hand ranking instead of the pair-counting heuristic.
// Returns -1 for hands shorter than 5 cards, where cardrank has nothing to
// evaluate.
func HandStrengthCactus(hand []Card) float64 {
	if len(hand) < 5 {
		return -1
	}
	rank := bestCactusRank(toCardrankHand(hand))
	if rank == cardrank.Invalid {
		return -1
	}
	return 1.0 - float64(rank-1)/float64(cardrank.Nothing-1)
}

// BestPokerHandDesc names the strongest 5-card selection out of hand (e.g.
// "Full House") for display/logging purposes. Returns "" for hands shorter
// than 5 cards.
func BestPokerHandDesc(hand []Card) string {
	if len(hand) < 5 {
		return ""
	}
	best := bestCactusRank(toCardrankHand(hand))
	return best.Fixed().Name()
}
