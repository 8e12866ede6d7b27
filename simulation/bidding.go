package simulation

import (
	"encoding/binary"
	"math/rand"

	"github.com/cardlab/gosim/engine"
)

// hasBiddingPhase reports whether a bytecode genome has a BiddingPhase.
func hasBiddingPhase(genome *engine.Genome) bool {
	for _, p := range genome.TurnPhases {
		if p.PhaseType == engine.PhaseTypeBidding {
			return true
		}
	}
	return false
}

// getBiddingPhaseData parses the first BiddingPhase's wire data into an
// engine.BiddingPhase, or nil if none is present.
func getBiddingPhaseData(genome *engine.Genome) *engine.BiddingPhase {
	for _, p := range genome.TurnPhases {
		if p.PhaseType != engine.PhaseTypeBidding {
			continue
		}
		if len(p.Data) < 16 {
			return nil
		}
		return &engine.BiddingPhase{
			MinBid:   int(p.Data[1]),
			MaxBid:   int(p.Data[2]),
			AllowNil: p.Data[3]&0x01 != 0,
			Scoring: engine.ContractScoring{
				PointsPerTrickBid:      int(p.Data[4]),
				OvertrickPoints:        int(p.Data[5]),
				FailedContractPenalty:  int(p.Data[6]),
				NilBonus:               int(binary.BigEndian.Uint16(p.Data[7:9])),
				NilPenalty:             int(binary.BigEndian.Uint16(p.Data[9:11])),
				BagLimit:               int(p.Data[11]),
				BagPenalty:             int(binary.BigEndian.Uint16(p.Data[12:14])),
			},
		}
	}
	return nil
}

// runBiddingRound has each player bid once, in turn order, using the
// bytecode genome's BiddingPhase parameters. Mirrors runBiddingRoundTyped
// for the bytecode-based simulation path.
func runBiddingRound(state *engine.GameState, genome *engine.Genome, aiTypes []AIPlayerType) {
	phase := getBiddingPhaseData(genome)
	if phase == nil {
		return
	}

	state.BiddingComplete = false
	for i := 0; i < int(state.NumPlayers); i++ {
		state.Players[i].CurrentBid = -1
		state.Players[i].IsNilBid = false
	}

	startPlayer := int(state.CurrentPlayer)
	for i := 0; i < int(state.NumPlayers); i++ {
		playerIdx := (startPlayer + i) % int(state.NumPlayers)

		var bid engine.BidMove
		aiType := RandomAI
		if playerIdx < len(aiTypes) {
			aiType = aiTypes[playerIdx]
		}

		switch aiType {
		case GreedyAI:
			bid = selectGreedyBid(state, *phase, playerIdx)
		default:
			handSize := len(state.Players[playerIdx].Hand)
			bidMoves := engine.GenerateBidMoves(*phase, handSize)
			if len(bidMoves) > 0 {
				bid = bidMoves[rand.Intn(len(bidMoves))]
			} else {
				bid = engine.BidMove{Value: 1}
			}
		}

		engine.ApplyBidMove(state, playerIdx, bid)
		state.TurnNumber++
	}

	state.BiddingComplete = true
}
