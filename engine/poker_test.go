package engine

import "testing"

func TestBestCactusRank_FlushBeatsStraight(t *testing.T) {
	straight := []Card{
		{Rank: 0, Suit: 0}, {Rank: 1, Suit: 1}, {Rank: 2, Suit: 2},
		{Rank: 3, Suit: 3}, {Rank: 4, Suit: 0},
	}
	flush := []Card{
		{Rank: 0, Suit: 0}, {Rank: 2, Suit: 0}, {Rank: 5, Suit: 0},
		{Rank: 7, Suit: 0}, {Rank: 9, Suit: 0},
	}
	straightRank := bestCactusRank(toCardrankHand(straight))
	flushRank := bestCactusRank(toCardrankHand(flush))
	if flushRank >= straightRank {
		t.Errorf("expected flush (rank %d) to beat straight (rank %d)", flushRank, straightRank)
	}
}

func TestBestCactusRank_PicksBestFiveOfMore(t *testing.T) {
	// Seven-card hand containing four of a kind among junk cards.
	hand := []Card{
		{Rank: 6, Suit: 0}, {Rank: 6, Suit: 1}, {Rank: 6, Suit: 2}, {Rank: 6, Suit: 3},
		{Rank: 1, Suit: 0}, {Rank: 2, Suit: 1}, {Rank: 3, Suit: 2},
	}
	rank := bestCactusRank(toCardrankHand(hand))
	if rank.Fixed() != 166 { // cardrank.FourOfAKind
		t.Errorf("expected four-of-a-kind class, got fixed rank %d", rank.Fixed())
	}
}

func TestFindBestPokerWinner_StrongestHandWins(t *testing.T) {
	gs := GetState()
	defer PutState(gs)
	gs.Players = make([]PlayerState, 2)
	gs.Players[0].Hand = []Card{ // pair of aces
		{Rank: 0, Suit: 0}, {Rank: 0, Suit: 1}, {Rank: 2, Suit: 2}, {Rank: 5, Suit: 3}, {Rank: 7, Suit: 0},
	}
	gs.Players[1].Hand = []Card{ // full house
		{Rank: 3, Suit: 0}, {Rank: 3, Suit: 1}, {Rank: 3, Suit: 2}, {Rank: 4, Suit: 0}, {Rank: 4, Suit: 1},
	}

	winner := FindBestPokerWinner(gs, 2)
	if winner != 1 {
		t.Errorf("expected player 1's full house to win, got winner %d", winner)
	}
}

func TestFindBestPokerWinner_FoldedPlayersExcluded(t *testing.T) {
	gs := GetState()
	defer PutState(gs)
	gs.Players = make([]PlayerState, 2)
	gs.Players[0].Hand = []Card{
		{Rank: 3, Suit: 0}, {Rank: 3, Suit: 1}, {Rank: 3, Suit: 2}, {Rank: 4, Suit: 0}, {Rank: 4, Suit: 1},
	}
	gs.Players[0].HasFolded = true
	gs.Players[1].Hand = []Card{
		{Rank: 2, Suit: 0}, {Rank: 5, Suit: 1}, {Rank: 7, Suit: 2}, {Rank: 9, Suit: 0}, {Rank: 11, Suit: 1},
	}

	winner := FindBestPokerWinner(gs, 2)
	if winner != 1 {
		t.Errorf("expected player 1 to win by default since player 0 folded, got %d", winner)
	}
}

func TestFindBestPokerWinner_NoActivePlayers(t *testing.T) {
	gs := GetState()
	defer PutState(gs)
	gs.Players = make([]PlayerState, 2)
	gs.Players[0].HasFolded = true
	gs.Players[1].HasFolded = true

	if winner := FindBestPokerWinner(gs, 2); winner != -1 {
		t.Errorf("expected -1 when no player qualifies, got %d", winner)
	}
}

func TestFindBestPokerWinner_ShortHandFallsBackToHeuristic(t *testing.T) {
	gs := GetState()
	defer PutState(gs)
	gs.Players = make([]PlayerState, 2)
	gs.Players[0].Hand = []Card{{Rank: 0, Suit: 0}, {Rank: 0, Suit: 1}} // pair of aces, 2 cards
	gs.Players[1].Hand = []Card{{Rank: 2, Suit: 0}}                    // single low card

	winner := FindBestPokerWinner(gs, 2)
	if winner != 0 {
		t.Errorf("expected player 0's pair to beat a lone low card via heuristic fallback, got %d", winner)
	}
}

func TestBestPokerHandDesc_ShortHand(t *testing.T) {
	if desc := BestPokerHandDesc([]Card{{Rank: 0, Suit: 0}}); desc != "" {
		t.Errorf("expected empty description for a hand under 5 cards, got %q", desc)
	}
}

func TestBestPokerHandDesc_FourOfAKind(t *testing.T) {
	hand := []Card{
		{Rank: 6, Suit: 0}, {Rank: 6, Suit: 1}, {Rank: 6, Suit: 2}, {Rank: 6, Suit: 3}, {Rank: 1, Suit: 0},
	}
	if desc := BestPokerHandDesc(hand); desc == "" {
		t.Errorf("expected a non-empty description for a qualifying hand")
	}
}
