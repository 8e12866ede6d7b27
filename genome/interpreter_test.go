package genome

import (
	"testing"

	"github.com/cardlab/gosim/engine"
)

// TestAppendDrawMovesOpponentHandTeamAware confirms the typed interpreter's
// draw-phase move generation agrees with engine.GameState.DrawCard about who
// counts as an "opponent" in a partnership game: a teammate's hand is never
// offered as a legal draw source.
func TestAppendDrawMovesOpponentHandTeamAware(t *testing.T) {
	state := engine.NewGameState(4)
	state.InitializeTeams([][]int{{0, 2}, {1, 3}})
	state.CurrentPlayer = 0
	for i := range state.Players {
		state.Players[i].Hand = []engine.Card{{Rank: uint8(i), Suit: 0}}
	}

	phase := &DrawPhase{Source: engine.LocationOpponentHand, Count: 1, Mandatory: true}
	moves := appendDrawMoves(nil, state, 0, 0, phase)

	if len(moves) == 0 {
		t.Fatal("expected at least one draw move to be generated")
	}
	for _, m := range moves {
		if m.TargetLoc != engine.LocationOpponentHand {
			t.Errorf("expected TargetLoc to stay LocationOpponentHand, got %v", m.TargetLoc)
		}
	}

	// Now empty out the first opposing seat (seat 1) and confirm no move is
	// generated, rather than falling back to drawing from the teammate.
	state.Players[1].Hand = nil
	moves = appendDrawMoves(nil, state, 0, 0, phase)
	if len(moves) != 0 {
		t.Errorf("expected no draw move when the first opposing seat is empty, got %d", len(moves))
	}
}

// TestAppendDrawMovesOpponentHandNoTeams confirms the plain 2-player
// fallback still works when no team configuration exists.
func TestAppendDrawMovesOpponentHandNoTeams(t *testing.T) {
	state := engine.NewGameState(2)
	state.CurrentPlayer = 0
	state.Players[1].Hand = []engine.Card{{Rank: 5, Suit: 1}}

	phase := &DrawPhase{Source: engine.LocationOpponentHand, Count: 1, Mandatory: true}
	moves := appendDrawMoves(nil, state, 0, 0, phase)

	if len(moves) == 0 {
		t.Fatal("expected a draw move to be generated from seat 1's hand")
	}
}

// TestAppendBiddingMovesRespectsMaxBid confirms the interpreter's bidding
// move generation, used by solo contract games like Oh Hell! as well as
// partnership Spades, never offers a bid above MaxBid.
func TestAppendBiddingMovesRespectsMaxBid(t *testing.T) {
	state := engine.NewGameState(2)
	state.Players[0].CurrentBid = -1
	state.Players[0].Hand = make([]engine.Card, 5)

	phase := &BiddingPhase{MinBid: 0, MaxBid: 5, AllowNil: true}
	moves := appendBiddingMoves(nil, state, 0, 0, phase)

	if len(moves) == 0 {
		t.Fatal("expected at least one bid move")
	}
	for _, m := range moves {
		if bid := engine.MoveBidOffset - m.CardIndex; bid > phase.MaxBid {
			t.Errorf("bid move offers %d, above MaxBid %d", bid, phase.MaxBid)
		}
	}
}

// TestAppendBiddingMovesSkipsAlreadyBidPlayer confirms a player who already
// placed a bid this hand is not offered another bidding move.
func TestAppendBiddingMovesSkipsAlreadyBidPlayer(t *testing.T) {
	state := engine.NewGameState(2)
	state.Players[0].CurrentBid = 3 // already bid
	state.Players[0].Hand = make([]engine.Card, 5)

	phase := &BiddingPhase{MinBid: 0, MaxBid: 5, AllowNil: true}
	moves := appendBiddingMoves(nil, state, 0, 0, phase)

	if len(moves) != 0 {
		t.Errorf("expected no bid moves once a player has already bid, got %d", len(moves))
	}
}

// TestAppendTrickMovesFollowSuit confirms a player holding the led suit must
// follow it when LeadSuitRequired is set.
func TestAppendTrickMovesFollowSuit(t *testing.T) {
	state := engine.NewGameState(2)
	state.CurrentTrick = []engine.TrickCard{{PlayerID: 1, Card: engine.Card{Rank: 4, Suit: 2}}}
	state.Players[0].Hand = []engine.Card{
		{Rank: 9, Suit: 2}, // matches led suit
		{Rank: 3, Suit: 0},
	}

	phase := &TrickPhase{LeadSuitRequired: true, TrumpSuit: 255, HighCardWins: true, BreakingSuit: 255}
	moves := appendTrickMoves(nil, state, 0, 0, phase)

	if len(moves) != 1 {
		t.Fatalf("expected exactly 1 legal move (the led-suit card), got %d", len(moves))
	}
	if moves[0].CardIndex != 0 {
		t.Errorf("expected the led-suit card (index 0) to be the only legal play, got index %d", moves[0].CardIndex)
	}
}

// TestAppendTrickMovesAnyCardWhenVoid confirms a player void in the led suit
// may play anything.
func TestAppendTrickMovesAnyCardWhenVoid(t *testing.T) {
	state := engine.NewGameState(2)
	state.CurrentTrick = []engine.TrickCard{{PlayerID: 1, Card: engine.Card{Rank: 4, Suit: 2}}}
	state.Players[0].Hand = []engine.Card{
		{Rank: 9, Suit: 0},
		{Rank: 3, Suit: 1},
	}

	phase := &TrickPhase{LeadSuitRequired: true, TrumpSuit: 255, HighCardWins: true, BreakingSuit: 255}
	moves := appendTrickMoves(nil, state, 0, 0, phase)

	if len(moves) != 2 {
		t.Errorf("expected both cards to be legal when void in the led suit, got %d", len(moves))
	}
}

// TestGenerateLegalMovesTypedDrawPhase exercises the top-level dispatcher for
// a simple DrawPhase-only turn structure.
func TestGenerateLegalMovesTypedDrawPhase(t *testing.T) {
	state := engine.NewGameState(2)
	state.Deck = []engine.Card{{Rank: 1, Suit: 0}}
	state.CurrentPlayer = 0

	g := &GameGenome{
		TurnStructure: TurnStructure{
			Phases: []Phase{&DrawPhase{Source: engine.LocationDeck, Count: 1, Mandatory: true}},
		},
	}

	moves := GenerateLegalMovesTyped(state, g)
	if len(moves) == 0 {
		t.Fatal("expected at least one legal move from a non-empty deck")
	}
}
