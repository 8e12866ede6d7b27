package engine

// Sentinel CardIndex values used to encode non-card moves (challenges,
// betting actions, bids) inside a LegalMove without a separate move-kind
// field. Real card indices are always >= 0, so every sentinel here is
// negative and the ranges never overlap.
const (
	// MoveChallenge and MovePass are the two responses a non-claimer may
	// make during a ClaimPhase once a claim is pending.
	MoveChallenge = -2
	MovePass      = -3

	// Betting actions are encoded as -10-int(action), so BettingCheck (0)
	// maps to -10 and BettingFold (5) maps to -15. MoveBettingCheck and
	// MoveBettingFold bound that contiguous range.
	MoveBettingCheck = -10
	MoveBettingFold  = -15

	// Bid moves are encoded as MoveBidOffset-bid.Value, keeping the whole
	// bidding range well clear of the betting and claim sentinels above.
	MoveBidOffset = -100
)

// BiddingPhase holds contract-bidding parameters (Spades-style nil/blind bids).
type BiddingPhase struct {
	MinBid   int
	MaxBid   int
	AllowNil bool
	Scoring  ContractScoring
}

// BidMove represents one possible bid a player can make.
type BidMove struct {
	Value int
	IsNil bool
}

// GenerateBidMoves returns every bid a player may make: an optional Nil bid,
// plus every integer bid between MinBid and MaxBid. A bid can never exceed
// the number of cards the player holds, since a player cannot promise more
// tricks than they have cards to play.
func GenerateBidMoves(phase BiddingPhase, handSize int) []BidMove {
	maxBid := phase.MaxBid
	if handSize < maxBid {
		maxBid = handSize
	}
	if maxBid < phase.MinBid {
		moves := make([]BidMove, 0, 1)
		if phase.AllowNil {
			moves = append(moves, BidMove{IsNil: true})
		}
		return moves
	}

	moves := make([]BidMove, 0, maxBid-phase.MinBid+2)
	if phase.AllowNil {
		moves = append(moves, BidMove{IsNil: true})
	}
	for v := phase.MinBid; v <= maxBid; v++ {
		moves = append(moves, BidMove{Value: v})
	}
	return moves
}

// ApplyBidMove records a player's bid for the current hand.
func ApplyBidMove(gs *GameState, playerID int, bid BidMove) {
	if playerID < 0 || playerID >= len(gs.Players) {
		return
	}
	p := &gs.Players[playerID]
	p.CurrentBid = bid.Value
	p.IsNilBid = bid.IsNil
}

// ScoreContractHand applies Spades-style contract scoring for one player once
// a hand's tricks are fully played: a bid made earns PointsPerTrickBid per
// bid trick plus OvertrickPoints per trick won beyond the bid (accumulating
// as bags); a bid missed costs FailedContractPenalty per bid trick. A
// fulfilled Nil bid earns NilBonus; a broken one costs NilPenalty.
func ScoreContractHand(gs *GameState, playerID int, scoring ContractScoring) {
	if playerID < 0 || playerID >= len(gs.Players) {
		return
	}
	p := &gs.Players[playerID]
	tricksWon := int(p.TricksWon)

	if p.IsNilBid {
		if tricksWon == 0 {
			p.Score += int32(scoring.NilBonus)
		} else {
			p.Score -= int32(scoring.NilPenalty)
		}
		return
	}

	bid := p.CurrentBid
	if bid <= 0 {
		return
	}

	if tricksWon >= bid {
		p.Score += int32(bid * scoring.PointsPerTrickBid)
		overtricks := tricksWon - bid
		if overtricks > 0 {
			p.Score += int32(overtricks * scoring.OvertrickPoints)
			gs.addBags(playerID, overtricks, scoring)
		}
	} else {
		p.Score -= int32(bid * scoring.FailedContractPenalty)
	}
}

// addBags accumulates overtrick bags for a player's team and applies the
// penalty once BagLimit is reached, resetting the counter.
func (gs *GameState) addBags(playerID int, overtricks int, scoring ContractScoring) {
	if scoring.BagLimit <= 0 || gs.AccumulatedBags == nil || gs.PlayerToTeam == nil {
		return
	}
	team := int(gs.PlayerToTeam[playerID])
	if team < 0 || team >= len(gs.AccumulatedBags) {
		return
	}
	gs.AccumulatedBags[team] += int8(overtricks)
	for int(gs.AccumulatedBags[team]) >= scoring.BagLimit {
		gs.AccumulatedBags[team] -= int8(scoring.BagLimit)
		if team < len(gs.TeamScores) {
			gs.TeamScores[team] -= int32(scoring.BagPenalty)
		}
	}
}
