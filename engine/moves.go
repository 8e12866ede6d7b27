package engine

// DrawCard moves a card from source to player hand
func (s *GameState) DrawCard(playerID uint8, source Location) bool {
	// Bounds check to prevent panic on invalid playerID
	if int(playerID) >= len(s.Players) {
		return false
	}

	var srcPile *[]Card

	switch source {
	case LocationDeck:
		srcPile = &s.Deck
	case LocationDiscard:
		srcPile = &s.Discard
	case LocationOpponentHand:
		// Draw from an opposing player's hand. In team games (PlayerToTeam
		// populated, spec §Teams) "opponent" means the next seat NOT on the
		// drawing player's team, so e.g. partnership Hearts variants can't
		// target a teammate's hand; untyped/no-team games fall back to the
		// plain next-seat rule.
		if s.NumPlayers == 0 || int(playerID) >= len(s.Players) {
			return false
		}
		opponentID, ok := s.NextOpposingSeat(playerID)
		if !ok {
			return false
		}
		srcPile = &s.Players[opponentID].Hand
	case LocationOpponentDiscard:
		// Optional extension: draw from opponent's discard (not standard)
		// Would need per-player discard piles
		return false
	default:
		return false
	}

	if len(*srcPile) == 0 {
		return false
	}

	// Pop from source
	card := (*srcPile)[len(*srcPile)-1]
	*srcPile = (*srcPile)[:len(*srcPile)-1]

	// Add to player hand
	s.Players[playerID].Hand = append(s.Players[playerID].Hand, card)
	return true
}

// NextOpposingSeat walks the seating order starting after playerID and
// returns the first seat not on the same team. With no team assignments
// (PlayerToTeam nil, or every seat unassigned) this degenerates to the
// plain next-seat rule a 2-player game needs.
func (s *GameState) NextOpposingSeat(playerID uint8) (uint8, bool) {
	n := int(s.NumPlayers)
	if n == 0 {
		return 0, false
	}
	myTeam := int8(-1)
	if int(playerID) < len(s.PlayerToTeam) {
		myTeam = s.PlayerToTeam[playerID]
	}
	for step := 1; step < n; step++ {
		candidate := (int(playerID) + step) % n
		if candidate >= len(s.Players) {
			continue
		}
		candidateTeam := int8(-1)
		if candidate < len(s.PlayerToTeam) {
			candidateTeam = s.PlayerToTeam[candidate]
		}
		if myTeam < 0 || candidateTeam < 0 || candidateTeam != myTeam {
			return uint8(candidate), true
		}
	}
	return 0, false
}

// PlayCard moves a card from player hand to target location
func (s *GameState) PlayCard(playerID uint8, cardIndex int, target Location) bool {
	// Bounds check to prevent panic on invalid playerID
	if int(playerID) >= len(s.Players) {
		return false
	}

	hand := &s.Players[playerID].Hand

	if cardIndex < 0 || cardIndex >= len(*hand) {
		return false
	}

	// Remove from hand
	card := (*hand)[cardIndex]
	*hand = append((*hand)[:cardIndex], (*hand)[cardIndex+1:]...)

	// Add to target
	switch target {
	case LocationDiscard:
		s.Discard = append(s.Discard, card)
	case LocationTableau:
		if len(s.Tableau) == 0 {
			s.Tableau = append(s.Tableau, make([]Card, 0, 10))
		}
		s.Tableau[0] = append(s.Tableau[0], card)
	default:
		return false
	}

	return true
}

// ShuffleDeck randomizes deck order (in-place)
func (s *GameState) ShuffleDeck(seed uint64) {
	// Simple LCG for deterministic shuffle
	rng := seed
	n := len(s.Deck)

	for i := n - 1; i > 0; i-- {
		rng = rng*6364136223846793005 + 1442695040888963407
		j := int(rng % uint64(i+1))
		s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i]
	}
}
