package engine

import "encoding/binary"

// LegalMove represents a possible action
type LegalMove struct {
	PhaseIndex int
	CardIndex  int // -1 if not card-specific
	TargetLoc  Location
}

// GenerateLegalMoves returns all valid moves for current player
func GenerateLegalMoves(state *GameState, genome *Genome) []LegalMove {
	moves := make([]LegalMove, 0, 10)
	currentPlayer := state.CurrentPlayer

	for phaseIdx, phase := range genome.TurnPhases {
		switch phase.PhaseType {
		case 1: // DrawPhase
			if len(phase.Data) < 6 {
				continue
			}
			source := Location(phase.Data[0])
			mandatory := phase.Data[5] == 1

			// Check if can draw
			canDraw := false
			switch source {
			case LocationDeck:
				canDraw = len(state.Deck) > 0
			case LocationDiscard:
				canDraw = len(state.Discard) > 0
			case LocationOpponentHand:
				numPlayers := state.NumPlayers
				if numPlayers == 0 {
					numPlayers = 2
				}
				opponentID := (currentPlayer + 1) % numPlayers
				canDraw = int(opponentID) < len(state.Players) && len(state.Players[opponentID].Hand) > 0
			}

			if canDraw || mandatory {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  -1,
					TargetLoc:  source,
				})
			}

		case 2: // PlayPhase
			if len(phase.Data) < 9 {
				continue
			}
			target := Location(phase.Data[0])
			minCards := int(phase.Data[1])
			maxCards := int(phase.Data[2])
			passIfUnable := phase.Data[4] == 1
			var conditionBytes []byte
			condLen := int(binary.BigEndian.Uint32(phase.Data[5:9]))
			if condLen > 0 && len(phase.Data) >= 9+condLen {
				conditionBytes = phase.Data[9 : 9+condLen]
			}
			hand := state.Players[currentPlayer].Hand
			playable := 0

			// For now, only support single-card plays
			if minCards <= 1 && maxCards >= 1 {
				if target == LocationTableau && state.TableauMode == 3 {
					// SEQUENCE mode: each suit owns a pile; a card is legal if
					// its pile is empty (starts a new run) or it continues the
					// pile's top card per SequenceDirection.
					for cardIdx, card := range hand {
						pile := int(card.Suit)
						if pile >= len(state.Tableau) {
							continue
						}
						top := state.Tableau[pile]
						if len(top) == 0 || isValidSequencePlay(card, top[len(top)-1], state.SequenceDirection) {
							moves = append(moves, LegalMove{
								PhaseIndex: phaseIdx,
								CardIndex:  cardIdx,
								TargetLoc:  target,
							})
							playable++
						}
					}
				} else {
					for cardIdx, card := range hand {
						if conditionBytes != nil && !EvaluateCardCondition(state, currentPlayer, card, conditionBytes) {
							continue
						}
						moves = append(moves, LegalMove{
							PhaseIndex: phaseIdx,
							CardIndex:  cardIdx,
							TargetLoc:  target,
						})
						playable++
					}
				}

				if playable == 0 && passIfUnable {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  MovePass,
						TargetLoc:  target,
					})
				}
			}

		case 3: // DiscardPhase
			// Always allow discard if have cards
			if len(state.Players[currentPlayer].Hand) > 0 {
				for cardIdx := range state.Players[currentPlayer].Hand {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationDiscard,
					})
				}
			}

		case 4: // TrickPhase
			if len(phase.Data) < 4 {
				continue
			}
			leadSuitRequired := phase.Data[0] == 1
			// trumpSuit := phase.Data[1]  // 255 = none
			// highCardWins := phase.Data[2] == 1
			breakingSuit := phase.Data[3] // 255 = none

			hand := state.Players[currentPlayer].Hand
			if len(hand) == 0 {
				continue
			}

			// Determine if we're leading or following
			isLeading := len(state.CurrentTrick) == 0

			if isLeading {
				// Leading: can play any card, except breaking suit until broken
				for cardIdx, card := range hand {
					// If breaking suit (e.g., Hearts) and not broken yet, can't lead it
					if breakingSuit != 255 && card.Suit == breakingSuit && !state.HeartsBroken {
						// Check if player has any non-breaking suit cards
						hasOther := false
						for _, c := range hand {
							if c.Suit != breakingSuit {
								hasOther = true
								break
							}
						}
						if hasOther {
							continue // Can't lead breaking suit
						}
						// If only breaking suit cards, can lead them
					}
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationTableau, // Use tableau as trick area
					})
				}
			} else {
				// Following: must follow suit if able
				leadSuit := state.CurrentTrick[0].Card.Suit

				if leadSuitRequired {
					// Check if we have cards of lead suit
					hasLeadSuit := false
					for _, card := range hand {
						if card.Suit == leadSuit {
							hasLeadSuit = true
							break
						}
					}

					if hasLeadSuit {
						// Must follow suit
						for cardIdx, card := range hand {
							if card.Suit == leadSuit {
								moves = append(moves, LegalMove{
									PhaseIndex: phaseIdx,
									CardIndex:  cardIdx,
									TargetLoc:  LocationTableau,
								})
							}
						}
					} else {
						// Can't follow suit - can play any card
						for cardIdx := range hand {
							moves = append(moves, LegalMove{
								PhaseIndex: phaseIdx,
								CardIndex:  cardIdx,
								TargetLoc:  LocationTableau,
							})
						}
					}
				} else {
					// No suit following required - can play any card
					for cardIdx := range hand {
						moves = append(moves, LegalMove{
							PhaseIndex: phaseIdx,
							CardIndex:  cardIdx,
							TargetLoc:  LocationTableau,
						})
					}
				}
			}

		case 5: // BettingPhase
			if state.BettingComplete {
				continue
			}
			bettingData, err := ParseBettingPhaseData(phase.Data)
			if err != nil {
				continue
			}
			if CountActivePlayers(state) <= 1 {
				state.BettingComplete = true
				continue
			}
			if AllBetsMatched(state) && CountActingPlayers(state) == 0 {
				state.BettingComplete = true
				continue
			}
			for _, action := range GenerateBettingMoves(state, bettingData, int(currentPlayer)) {
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  MoveBettingCheck - int(action),
					TargetLoc:  LocationDeck,
				})
			}

		case 6: // ClaimPhase
			if state.CurrentClaim == nil {
				hand := state.Players[currentPlayer].Hand
				for cardIdx := range hand {
					moves = append(moves, LegalMove{
						PhaseIndex: phaseIdx,
						CardIndex:  cardIdx,
						TargetLoc:  LocationDiscard,
					})
				}
			} else if currentPlayer != state.CurrentClaim.ClaimerID {
				moves = append(moves,
					LegalMove{PhaseIndex: phaseIdx, CardIndex: MoveChallenge, TargetLoc: LocationDiscard},
					LegalMove{PhaseIndex: phaseIdx, CardIndex: MovePass, TargetLoc: LocationDiscard},
				)
			}

		case 7: // BiddingPhase
			if state.BiddingComplete || state.Players[currentPlayer].CurrentBid >= 0 {
				continue
			}
			biddingPhase, ok := parseBiddingPhaseData(phase.Data)
			if !ok {
				continue
			}
			handSize := len(state.Players[currentPlayer].Hand)
			for _, bid := range GenerateBidMoves(biddingPhase, handSize) {
				targetLoc := LocationDeck
				if bid.IsNil {
					targetLoc = LocationDiscard
				}
				moves = append(moves, LegalMove{
					PhaseIndex: phaseIdx,
					CardIndex:  MoveBidOffset - bid.Value,
					TargetLoc:  targetLoc,
				})
			}
		}
	}

	return moves
}

// parseBiddingPhaseData extracts a BiddingPhase (and its contract scoring)
// from a BiddingPhase's wire payload: reserved:1, min_bid:1, max_bid:1,
// allow_nil flag (bit 0):1, points_per_trick_bid:1, overtrick_points:1,
// failed_contract_penalty:1, nil_bonus:2, nil_penalty:2, bag_limit:1,
// bag_penalty:2, reserved:2 = 16 bytes.
func parseBiddingPhaseData(data []byte) (BiddingPhase, bool) {
	if len(data) < 14 {
		return BiddingPhase{}, false
	}
	return BiddingPhase{
		MinBid:   int(data[1]),
		MaxBid:   int(data[2]),
		AllowNil: data[3]&0x01 != 0,
		Scoring: ContractScoring{
			PointsPerTrickBid:     int(data[4]),
			OvertrickPoints:       int(data[5]),
			FailedContractPenalty: int(data[6]),
			NilBonus:              int(binary.BigEndian.Uint16(data[7:9])),
			NilPenalty:            int(binary.BigEndian.Uint16(data[9:11])),
			BagLimit:              int(data[11]),
			BagPenalty:            int(binary.BigEndian.Uint16(data[12:14])),
		},
	}, true
}

// ApplyMove executes a legal move, mutating state
func ApplyMove(state *GameState, move *LegalMove, genome *Genome) {
	if move.PhaseIndex >= len(genome.TurnPhases) {
		return
	}

	phase := genome.TurnPhases[move.PhaseIndex]
	currentPlayer := state.CurrentPlayer

	switch phase.PhaseType {
	case 1: // DrawPhase
		if len(phase.Data) >= 5 {
			count := int(binary.BigEndian.Uint32(phase.Data[1:5]))
			for i := 0; i < count; i++ {
				state.DrawCard(currentPlayer, move.TargetLoc)
			}
		}

	case 2: // PlayPhase
		if move.CardIndex >= 0 {
			if move.TargetLoc == LocationTableau {
				applyTableauPlay(state, currentPlayer, move.CardIndex)
			} else {
				state.PlayCard(currentPlayer, move.CardIndex, move.TargetLoc)
			}
		}

	case 3: // DiscardPhase
		if move.CardIndex >= 0 {
			state.PlayCard(currentPlayer, move.CardIndex, LocationDiscard)
		}

	case 4: // TrickPhase
		if move.CardIndex >= 0 && move.CardIndex < len(state.Players[currentPlayer].Hand) {
			card := state.Players[currentPlayer].Hand[move.CardIndex]

			// Remove card from hand
			state.Players[currentPlayer].Hand = append(
				state.Players[currentPlayer].Hand[:move.CardIndex],
				state.Players[currentPlayer].Hand[move.CardIndex+1:]...,
			)

			// Add to current trick
			state.CurrentTrick = append(state.CurrentTrick, TrickCard{
				PlayerID: currentPlayer,
				Card:     card,
			})

			// Check if this card breaks hearts (or other breaking suit)
			if len(phase.Data) >= 4 {
				breakingSuit := phase.Data[3]
				if breakingSuit != 255 && card.Suit == breakingSuit {
					state.HeartsBroken = true
				}
			}

			// Check if trick is complete
			numPlayers := int(state.NumPlayers)
			if numPlayers == 0 {
				numPlayers = 2 // Default to 2 players
			}
			if len(state.CurrentTrick) >= numPlayers {
				// Resolve trick
				resolveTrick(state, genome, phase)
				return // Don't advance turn normally - resolveTrick sets next player
			}
		}

	case 5: // BettingPhase
		bettingData, err := ParseBettingPhaseData(phase.Data)
		if err != nil {
			break
		}
		action := BettingAction(MoveBettingCheck - move.CardIndex)
		ApplyBettingAction(state, bettingData, int(currentPlayer), action)

		if CountActivePlayers(state) <= 1 || (AllBetsMatched(state) && CountActingPlayers(state) == 0) {
			state.BettingComplete = true
			winners := ResolveShowdown(state)
			if len(winners) == 1 {
				AwardPot(state, winners)
			} else if len(winners) > 1 {
				if winner := FindBestPokerWinner(state, int(state.NumPlayers)); winner >= 0 {
					AwardPot(state, []int{int(winner)})
				}
			}
			state.TurnNumber++
			return
		}

		advanceToNextActingPlayer(state)
		state.TurnNumber++
		return

	case 6: // ClaimPhase
		applyClaimMove(state, move, currentPlayer)
		state.TurnNumber++
		AdvanceTurn(state)
		return

	case 7: // BiddingPhase
		if _, ok := parseBiddingPhaseData(phase.Data); ok {
			ApplyBidMove(state, int(currentPlayer), decodeBidMove(move))
		}
		state.TurnNumber++
		if allPlayersHaveBid(state) {
			state.BiddingComplete = true
		} else {
			AdvanceTurn(state)
		}
		return
	}

	// Advance turn, respecting direction/skip state for any seat count
	numPlayers := state.NumPlayers
	if numPlayers == 0 {
		numPlayers = 2
	}
	state.NumPlayers = numPlayers
	AdvanceTurn(state)
	state.TurnNumber++
}

// advanceToNextActingPlayer moves CurrentPlayer to the next seat that has
// neither folded nor gone all-in, wrapping according to PlayDirection. Used
// by BettingPhase, where a plain AdvanceTurn would stop on a seat that can
// no longer act.
func advanceToNextActingPlayer(state *GameState) {
	numPlayers := int(state.NumPlayers)
	if numPlayers == 0 {
		numPlayers = 2
	}
	step := int(state.PlayDirection)
	next := int(state.CurrentPlayer)
	for i := 0; i < numPlayers; i++ {
		next = (next + step + numPlayers) % numPlayers
		p := &state.Players[next]
		if !p.HasFolded && !p.IsAllIn {
			state.CurrentPlayer = uint8(next)
			return
		}
	}
	// No one left who can act; leave CurrentPlayer as-is, the next
	// GenerateLegalMoves call will mark BettingComplete.
}

// applyClaimMove applies a ClaimPhase move: either a claimer plays (possibly
// bluffing) cards to the discard pile and registers a claim, or a challenger
// challenges/passes on the pending claim.
func applyClaimMove(state *GameState, move *LegalMove, currentPlayer uint8) {
	switch move.CardIndex {
	case MoveChallenge:
		if state.CurrentClaim == nil {
			return
		}
		state.CurrentClaim.Challenged = true
		state.CurrentClaim.ChallengerID = currentPlayer

		claimTrue := true
		for _, c := range state.CurrentClaim.CardsPlayed {
			if c.Rank != state.CurrentClaim.ClaimedRank {
				claimTrue = false
				break
			}
		}
		loser := state.CurrentClaim.ClaimerID
		if claimTrue {
			loser = currentPlayer
		}
		state.Players[loser].Hand = append(state.Players[loser].Hand, state.Discard...)
		state.Discard = state.Discard[:0]
		state.CurrentClaim = nil

	case MovePass:
		// Accept the claim at face value; nothing changes.

	default:
		if move.CardIndex < 0 || move.CardIndex >= len(state.Players[currentPlayer].Hand) {
			return
		}
		card := state.Players[currentPlayer].Hand[move.CardIndex]
		state.Players[currentPlayer].Hand = append(
			state.Players[currentPlayer].Hand[:move.CardIndex],
			state.Players[currentPlayer].Hand[move.CardIndex+1:]...,
		)
		state.Discard = append(state.Discard, card)

		if state.CurrentClaim == nil {
			state.CurrentClaim = &Claim{
				ClaimerID:    currentPlayer,
				ClaimedRank:  state.NextClaimRank,
				ClaimedCount: 1,
				CardsPlayed:  []Card{card},
			}
			state.NextClaimRank = (state.NextClaimRank + 1) % 13
		} else {
			state.CurrentClaim.CardsPlayed = append(state.CurrentClaim.CardsPlayed, card)
			state.CurrentClaim.ClaimedCount++
		}
	}
}

// decodeBidMove reverses the MoveBidOffset encoding GenerateBidMoves uses.
func decodeBidMove(move *LegalMove) BidMove {
	if move.TargetLoc == LocationDiscard {
		return BidMove{IsNil: true}
	}
	return BidMove{Value: MoveBidOffset - move.CardIndex}
}

// allPlayersHaveBid reports whether every active player has placed a bid
// this hand.
func allPlayersHaveBid(state *GameState) bool {
	for i := 0; i < int(state.NumPlayers); i++ {
		if state.Players[i].CurrentBid < 0 {
			return false
		}
	}
	return true
}

// calculateTrickPoints scores the cards in the current trick. If the genome
// carries explicit TriggerTrickWin CardScoring rules, those are used
// (Rank==255 matches any rank within the rule's suit). Otherwise it falls
// back to Hearts-style scoring: one point per card of breakingSuit, plus 13
// for the Queen of Spades.
func calculateTrickPoints(state *GameState, genome *Genome, breakingSuit uint8) int32 {
	if len(genome.CardScoring) > 0 {
		points := int32(0)
		for _, tc := range state.CurrentTrick {
			for _, rule := range genome.CardScoring {
				if rule.Trigger != TriggerTrickWin {
					continue
				}
				if rule.Suit != tc.Card.Suit {
					continue
				}
				if rule.Rank != 255 && rule.Rank != tc.Card.Rank {
					continue
				}
				points += int32(rule.Points)
			}
		}
		return points
	}

	points := int32(0)
	for _, tc := range state.CurrentTrick {
		if breakingSuit != 255 && tc.Card.Suit == breakingSuit {
			points++ // Each Heart = 1 point
		}
		// Queen of Spades = 13 points in Hearts
		if tc.Card.Suit == 3 && tc.Card.Rank == 10 { // Spades (3), Queen (10)
			points += 13
		}
	}
	return points
}

// resolveTrick determines the winner and scores points
func resolveTrick(state *GameState, genome *Genome, phase PhaseDescriptor) {
	if len(state.CurrentTrick) == 0 {
		return
	}

	// Parse phase data
	trumpSuit := uint8(255) // None
	highCardWins := true
	breakingSuit := uint8(255)
	if len(phase.Data) >= 4 {
		trumpSuit = phase.Data[1]
		highCardWins = phase.Data[2] == 1
		breakingSuit = phase.Data[3]
	}

	leadSuit := state.CurrentTrick[0].Card.Suit
	winnerIdx := 0
	winningCard := state.CurrentTrick[0].Card

	for i := 1; i < len(state.CurrentTrick); i++ {
		tc := state.CurrentTrick[i]
		card := tc.Card

		// Determine if this card beats the current winner
		beats := false

		if trumpSuit != 255 {
			// Trump game rules
			winnerIsTrump := winningCard.Suit == trumpSuit
			cardIsTrump := card.Suit == trumpSuit

			if cardIsTrump && !winnerIsTrump {
				// Trump beats non-trump
				beats = true
			} else if cardIsTrump && winnerIsTrump {
				// Both trump - compare ranks
				if highCardWins {
					beats = card.Rank > winningCard.Rank
				} else {
					beats = card.Rank < winningCard.Rank
				}
			} else if !cardIsTrump && !winnerIsTrump && card.Suit == leadSuit {
				// Neither trump - must follow suit to win
				if winningCard.Suit == leadSuit {
					if highCardWins {
						beats = card.Rank > winningCard.Rank
					} else {
						beats = card.Rank < winningCard.Rank
					}
				} else {
					// Current winner didn't follow suit, this card does
					beats = true
				}
			}
		} else {
			// No trump - only lead suit counts
			if card.Suit == leadSuit {
				if winningCard.Suit != leadSuit {
					beats = true
				} else if highCardWins {
					beats = card.Rank > winningCard.Rank
				} else {
					beats = card.Rank < winningCard.Rank
				}
			}
		}

		if beats {
			winnerIdx = i
			winningCard = card
		}
	}

	winner := state.CurrentTrick[winnerIdx].PlayerID

	points := calculateTrickPoints(state, genome, breakingSuit)
	state.Players[winner].Score += points
	state.Players[winner].TricksWon++

	// Clear current trick
	state.CurrentTrick = state.CurrentTrick[:0]

	// Winner leads next trick
	state.CurrentPlayer = winner
	state.TrickLeader = winner
	state.TurnNumber++
}

// isValidSequencePlay reports whether card may be placed on a pile whose top
// card is topCard, under the given SequenceDirection (0=ascending,
// 1=descending, 2=both). Suit must match the pile, and there is no
// wraparound: an ascending run stops at King (13) and a descending run stops
// at 2, so Ace (14) never extends a run past either boundary.
func isValidSequencePlay(card, topCard Card, direction uint8) bool {
	if card.Suit != topCard.Suit {
		return false
	}
	ascendingOK := topCard.Rank < 13 && card.Rank == topCard.Rank+1
	descendingOK := topCard.Rank > 2 && card.Rank == topCard.Rank-1

	switch direction {
	case 0:
		return ascendingOK
	case 1:
		return descendingOK
	case 2:
		return ascendingOK || descendingOK
	default:
		return false
	}
}

// applyTableauPlay removes a card from playerID's hand and resolves it
// against the tableau according to state.TableauMode: NONE leaves it on
// pile 0, WAR triggers a two-card battle, MATCH_RANK captures a same-rank
// pile card for points (Scopa-style), and SEQUENCE appends to the
// suit-indexed pile (legality already enforced by GenerateLegalMoves).
func applyTableauPlay(state *GameState, playerID uint8, cardIndex int) {
	hand := &state.Players[playerID].Hand
	if cardIndex < 0 || cardIndex >= len(*hand) {
		return
	}
	card := (*hand)[cardIndex]
	*hand = append((*hand)[:cardIndex], (*hand)[cardIndex+1:]...)

	switch state.TableauMode {
	case 2: // MATCH_RANK
		if len(state.Tableau) == 0 {
			state.Tableau = append(state.Tableau, make([]Card, 0, 10))
		}
		pile := state.Tableau[0]
		match := -1
		for i := len(pile) - 1; i >= 0; i-- {
			if pile[i].Rank == card.Rank {
				match = i
				break
			}
		}
		if match >= 0 {
			state.Tableau[0] = append(pile[:match], pile[match+1:]...)
			state.Players[playerID].Score += 2
		} else {
			state.Tableau[0] = append(pile, card)
		}

	case 3: // SEQUENCE
		pileIdx := int(card.Suit)
		if len(state.Tableau) == 0 {
			state.Tableau = append(state.Tableau, make([]Card, 0, 10))
			pileIdx = 0
		} else if pileIdx >= len(state.Tableau) || pileIdx < 0 {
			pileIdx = 0
		}
		state.Tableau[pileIdx] = append(state.Tableau[pileIdx], card)

	default: // NONE, WAR
		if len(state.Tableau) == 0 {
			state.Tableau = append(state.Tableau, make([]Card, 0, 10))
		}
		state.Tableau[0] = append(state.Tableau[0], card)
		if state.TableauMode == 1 {
			resolveWarBattle(state)
		}
	}
}

// resolveWarBattle handles War game card comparison
func resolveWarBattle(state *GameState) {
	// Check if both players have played (tableau has 2 cards)
	if len(state.Tableau) == 0 || len(state.Tableau[0]) < 2 {
		return
	}

	tableau := state.Tableau[0]
	card1 := tableau[len(tableau)-2] // Second-to-last card (player 0's card)
	card2 := tableau[len(tableau)-1] // Last card (player 1's card)

	// Compare ranks (Ace high: A=12, K=11, ..., 2=0)
	var winner uint8
	if card1.Rank > card2.Rank {
		winner = 0
	} else if card2.Rank > card1.Rank {
		winner = 1
	} else {
		// Tie - break by turn_number parity per spec: even favors player 0.
		if state.TurnNumber%2 == 0 {
			winner = 0
		} else {
			winner = 1
		}
	}

	// Winner takes all cards from tableau
	for _, card := range tableau {
		state.Players[winner].Hand = append(state.Players[winner].Hand, card)
	}

	// Clear tableau
	state.Tableau[0] = state.Tableau[0][:0]
}

// CheckWinConditions evaluates win conditions, returns winner ID or -1.
// When a winner is found and PlayerToTeam covers that seat, WinningTeam is
// set to the winner's team; otherwise WinningTeam is left unchanged.
// Exported so mcts package can use it
func CheckWinConditions(state *GameState, genome *Genome) (winner int8) {
	defer func() {
		if winner >= 0 && int(winner) < len(state.PlayerToTeam) {
			state.WinningTeam = state.PlayerToTeam[winner]
		}
	}()
	for _, wc := range genome.WinConditions {
		switch wc.WinType {
		case 0: // empty_hand
			for playerID, player := range state.Players {
				if len(player.Hand) == 0 {
					return int8(playerID)
				}
			}
		case 1: // high_score (highest score wins, triggers when anyone reaches threshold)
			maxScore := int32(-1)
			winner := int8(-1)
			triggered := false
			for playerID, player := range state.Players {
				if player.Score >= wc.Threshold {
					triggered = true
				}
				if player.Score > maxScore {
					maxScore = player.Score
					winner = int8(playerID)
				}
			}
			if triggered && winner >= 0 {
				return winner
			}
		case 2: // first_to_score
			for playerID, player := range state.Players {
				if player.Score >= wc.Threshold {
					return int8(playerID)
				}
			}
		case 3: // capture_all
			for playerID, player := range state.Players {
				if len(player.Hand) == 52 {
					return int8(playerID)
				}
			}
		case 4: // low_score (Hearts: lowest score wins when anyone reaches threshold)
			minScore := int32(999999)
			winner := int8(-1)
			triggered := false
			for playerID, player := range state.Players {
				if player.Score >= wc.Threshold {
					triggered = true
				}
				if player.Score < minScore {
					minScore = player.Score
					winner = int8(playerID)
				}
			}
			if triggered && winner >= 0 {
				return winner
			}
		case 5: // all_hands_empty (trick-taking: hand ends when all empty)
			allEmpty := true
			for _, player := range state.Players {
				if len(player.Hand) > 0 {
					allEmpty = false
					break
				}
			}
			if allEmpty {
				// In trick-taking games, lowest score wins when hand ends
				minScore := int32(999999)
				winner := int8(-1)
				for playerID, player := range state.Players {
					if player.Score < minScore {
						minScore = player.Score
						winner = int8(playerID)
					}
				}
				return winner
			}
		case 6: // best_hand (poker showdown) - resolved by the betting phase, not a turn-based check
			continue
		case 7: // most_captured - proxy by score, since MATCH_RANK capture awards score points
			if allHandsEmpty(state) && len(state.Deck) == 0 {
				best := int8(-1)
				bestScore := int32(-1)
				for playerID, player := range state.Players {
					if player.Score > bestScore {
						bestScore = player.Score
						best = int8(playerID)
					}
				}
				if best >= 0 {
					return best
				}
			}
		case 8: // most_tricks
			if len(state.Deck) == 0 && allHandsEmpty(state) {
				best := int8(-1)
				var bestTricks uint8
				for playerID, player := range state.Players {
					if best == -1 || player.TricksWon > bestTricks {
						bestTricks = player.TricksWon
						best = int8(playerID)
					}
				}
				if best >= 0 {
					return best
				}
			}
		case 9: // fewest_tricks
			if len(state.Deck) == 0 && allHandsEmpty(state) {
				best := int8(-1)
				var fewestTricks uint8 = 255
				for playerID, player := range state.Players {
					if player.TricksWon < fewestTricks {
						fewestTricks = player.TricksWon
						best = int8(playerID)
					}
				}
				if best >= 0 {
					return best
				}
			}
		case 10: // most_chips
			playersWithChips := 0
			leader := int8(-1)
			leaderChips := int64(-1)
			for playerID, player := range state.Players {
				if player.Chips > 0 {
					playersWithChips++
				}
				if player.Chips > leaderChips {
					leaderChips = player.Chips
					leader = int8(playerID)
				}
			}
			if playersWithChips <= 1 && leader >= 0 {
				return leader
			}
		}
	}
	return -1
}

// allHandsEmpty reports whether every player's hand is empty.
func allHandsEmpty(state *GameState) bool {
	for _, player := range state.Players {
		if len(player.Hand) > 0 {
			return false
		}
	}
	return true
}
