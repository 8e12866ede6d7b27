package engine

import "testing"

// TestNextOpposingSeatNoTeams covers the plain 2-player fallback: with no
// team assignments at all, the next seat in turn order is always "opposing".
func TestNextOpposingSeatNoTeams(t *testing.T) {
	s := NewGameState(2)

	opp, ok := s.NextOpposingSeat(0)
	if !ok || opp != 1 {
		t.Fatalf("expected seat 1, got seat=%d ok=%v", opp, ok)
	}

	opp, ok = s.NextOpposingSeat(1)
	if !ok || opp != 0 {
		t.Fatalf("expected seat 0, got seat=%d ok=%v", opp, ok)
	}
}

// TestNextOpposingSeatPartnership covers a 4-player partnership layout
// (team 0 = seats 0,2; team 1 = seats 1,3, Spades/Hearts-style) where the
// next seat in turn order is a teammate and must be skipped.
func TestNextOpposingSeatPartnership(t *testing.T) {
	s := NewGameState(4)
	s.InitializeTeams([][]int{{0, 2}, {1, 3}})

	opp, ok := s.NextOpposingSeat(0)
	if !ok || opp != 1 {
		t.Fatalf("seat 0 (team 0): expected first opposing seat 1, got seat=%d ok=%v", opp, ok)
	}

	opp, ok = s.NextOpposingSeat(2)
	if !ok || opp != 3 {
		t.Fatalf("seat 2 (team 0): expected first opposing seat 3, got seat=%d ok=%v", opp, ok)
	}
}

// TestNextOpposingSeatAllSameTeam ensures that when every seat shares a team
// (degenerate/misconfigured case) there is no opposing seat to target.
func TestNextOpposingSeatAllSameTeam(t *testing.T) {
	s := NewGameState(2)
	s.InitializeTeams([][]int{{0, 1}})

	if _, ok := s.NextOpposingSeat(0); ok {
		t.Fatal("expected no opposing seat when all players share one team")
	}
}

// TestDrawCardOpponentHandRespectsTeams exercises DrawCard(LocationOpponentHand)
// end to end: in a partnership game, drawing must pull from the first seat NOT
// on the drawing player's team, never a teammate's hand.
func TestDrawCardOpponentHandRespectsTeams(t *testing.T) {
	s := NewGameState(4)
	s.InitializeTeams([][]int{{0, 2}, {1, 3}})

	// Give every seat a single, distinguishable card.
	for i := range s.Players {
		s.Players[i].Hand = []Card{{Rank: uint8(i), Suit: 0}}
	}

	if !s.DrawCard(0, LocationOpponentHand) {
		t.Fatal("expected DrawCard from opponent hand to succeed")
	}

	// Seat 0's teammate (seat 2) must still have its card; the drawn card
	// must have come from seat 1 (the first opposing seat).
	if len(s.Players[2].Hand) != 1 {
		t.Error("teammate's hand should not have been touched")
	}
	if len(s.Players[1].Hand) != 0 {
		t.Error("expected the card to be drawn from seat 1, the first opposing seat")
	}

	found := false
	for _, c := range s.Players[0].Hand {
		if c.Rank == 1 {
			found = true
		}
	}
	if !found {
		t.Error("expected seat 1's card to end up in the drawing player's hand")
	}
}

// TestDrawCardOpponentHandEmptyHand ensures drawing fails cleanly rather than
// panicking when the opposing hand has nothing left to take.
func TestDrawCardOpponentHandEmptyHand(t *testing.T) {
	s := NewGameState(2)

	if s.DrawCard(0, LocationOpponentHand) {
		t.Error("expected draw to fail when the opposing hand is empty")
	}
}

// TestDrawCardOpponentHandInvalidPlayer guards the bounds check added
// alongside the team-aware lookup.
func TestDrawCardOpponentHandInvalidPlayer(t *testing.T) {
	s := NewGameState(2)
	s.Players[1].Hand = []Card{{Rank: 5, Suit: 1}}

	if s.DrawCard(9, LocationOpponentHand) {
		t.Error("expected draw to fail for an out-of-range player id")
	}
}
