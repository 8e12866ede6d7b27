package genome

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
)

// ErrInvalidGenome is returned by Compile when the genome fails structural
// validation. The evolution engine treats this as a discard-and-replace
// signal for the offending candidate.
var ErrInvalidGenome = errors.New("invalid genome")

// bytecodeVersion is the only version Compile ever emits. Decoders must
// still accept the legacy 36-byte V1 header (see engine.ParseHeader).
const bytecodeVersion uint8 = 2

const (
	headerSize     = 39 // V2 header: version..sequence_direction
	headerSizeExt  = 47 // V2 header extended with card_scoring/hand_eval offsets
	setupSize      = 13 // cards_per_player:4 + initial_discard_count:4 + starting_chips:4 + trump_suit:1
	conditionSize  = 7  // opcode:1 + operator:1 + value:4 + reference:1
	effectSentinel = 60
)

// Compile converts a validated GameGenome into its canonical V2 bytecode
// form. Compilation is deterministic: the same genome always produces the
// same byte sequence, independent of map iteration order or process state.
//
// The layout mirrors engine.ParseGenome byte for byte:
//
//	[header][setup][turn_structure][win_conditions][effects trailer?][scoring][card_scoring?][hand_eval?]
func Compile(g *GameGenome) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil genome", ErrInvalidGenome)
	}
	if len(g.TurnStructure.Phases) == 0 {
		return nil, fmt.Errorf("%w: no phases", ErrInvalidGenome)
	}
	if len(g.WinConditions) == 0 {
		return nil, fmt.Errorf("%w: no win conditions", ErrInvalidGenome)
	}
	if g.MinTurns > 0 && g.TurnStructure.MaxTurns < g.MinTurns {
		return nil, fmt.Errorf("%w: max_turns below min_turns", ErrInvalidGenome)
	}
	if g.Setup.CardsPerPlayer*g.EffectivePlayerCount() > StandardDeckSize {
		return nil, fmt.Errorf("%w: setup needs more than %d cards", ErrInvalidGenome, StandardDeckSize)
	}

	setup := encodeSetup(g)
	turnStructure, err := encodeTurnStructure(g)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenome, err)
	}
	winConditions := encodeWinConditions(g)
	effectsTrailer := encodeEffects(g)
	scoring := encodeScoring(g)

	useExtended := len(g.CardScoring) > 0 || (g.HandEval != nil && g.HandEval.Method != EvalMethodNone)
	hSize := headerSize
	if useExtended {
		hSize = headerSizeExt
	}

	setupOffset := hSize
	turnOffset := setupOffset + len(setup)
	winOffset := turnOffset + len(turnStructure)
	scoringOffset := winOffset + len(winConditions) + len(effectsTrailer)

	var cardScoring, handEval []byte
	cardScoringOffset, handEvalOffset := 0, 0
	if useExtended {
		cardScoring = encodeCardScoring(g.CardScoring)
		handEval = encodeHandEvaluation(g.HandEval)
		cardScoringOffset = scoringOffset + len(scoring)
		handEvalOffset = cardScoringOffset + len(cardScoring)
	}

	out := make([]byte, 0, handEvalOffset+len(handEval)+64)
	out = append(out, encodeHeader(g, hSize, setupOffset, turnOffset, winOffset, scoringOffset, cardScoringOffset, handEvalOffset)...)
	out = append(out, setup...)
	out = append(out, turnStructure...)
	out = append(out, winConditions...)
	out = append(out, effectsTrailer...)
	out = append(out, scoring...)
	if useExtended {
		out = append(out, cardScoring...)
		out = append(out, handEval...)
	}

	return out, nil
}

// genomeIDHash computes the stable 64-bit hash stored in the header.
// GenomeID is preferred; Name is the fallback for genomes minted before an
// ID was assigned.
func genomeIDHash(g *GameGenome) uint64 {
	key := g.GenomeID
	if key == "" {
		key = g.Name
	}
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

func encodeHeader(g *GameGenome, hSize, setupOffset, turnOffset, winOffset, scoringOffset, cardScoringOffset, handEvalOffset int) []byte {
	buf := make([]byte, hSize)
	buf[0] = bytecodeVersion
	binary.BigEndian.PutUint32(buf[1:5], 1) // legacy version field
	binary.BigEndian.PutUint64(buf[5:13], genomeIDHash(g))
	binary.BigEndian.PutUint32(buf[13:17], uint32(g.EffectivePlayerCount()))
	binary.BigEndian.PutUint32(buf[17:21], uint32(g.TurnStructure.MaxTurns))
	binary.BigEndian.PutUint32(buf[21:25], uint32(setupOffset))
	binary.BigEndian.PutUint32(buf[25:29], uint32(turnOffset))
	binary.BigEndian.PutUint32(buf[29:33], uint32(winOffset))
	binary.BigEndian.PutUint32(buf[33:37], uint32(scoringOffset))
	buf[37] = uint8(g.TurnStructure.TableauMode)
	buf[38] = uint8(g.TurnStructure.SequenceDirection)
	if hSize >= headerSizeExt {
		binary.BigEndian.PutUint32(buf[39:43], uint32(cardScoringOffset))
		binary.BigEndian.PutUint32(buf[43:47], uint32(handEvalOffset))
	}
	return buf
}

func encodeSetup(g *GameGenome) []byte {
	buf := make([]byte, setupSize)
	binary.BigEndian.PutUint32(buf[0:4], uint32(g.Setup.CardsPerPlayer))
	binary.BigEndian.PutUint32(buf[4:8], uint32(g.Setup.DealToTableau))
	binary.BigEndian.PutUint32(buf[8:12], uint32(g.Setup.StartingChips))
	buf[12] = 0xFF // trump_suit: no genome-level rotating trump modeled yet
	return buf
}

func encodeCondition(c *Condition) []byte {
	buf := make([]byte, conditionSize)
	if c == nil {
		return buf
	}
	buf[0] = c.OpCode
	buf[1] = c.Operator
	binary.BigEndian.PutUint32(buf[2:6], uint32(c.Value))
	buf[6] = c.RefLoc
	return buf
}

func encodeTurnStructure(g *GameGenome) ([]byte, error) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(len(g.TurnStructure.Phases)))

	for _, phase := range g.TurnStructure.Phases {
		encoded, err := encodePhase(phase)
		if err != nil {
			return nil, err
		}
		buf = append(buf, encoded...)
	}
	return buf, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func encodePhase(phase Phase) ([]byte, error) {
	switch p := phase.(type) {
	case *DrawPhase:
		buf := []byte{p.PhaseType(), uint8(p.Source)}
		countBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(countBuf, uint32(p.Count))
		buf = append(buf, countBuf...)
		buf = append(buf, boolByte(p.Mandatory), boolByte(p.Condition != nil))
		if p.Condition != nil {
			buf = append(buf, encodeCondition(p.Condition)...)
		}
		return buf, nil

	case *PlayPhase:
		condBytes := []byte{}
		if p.ValidPlayCondition != nil {
			condBytes = encodeCondition(p.ValidPlayCondition)
		}
		buf := []byte{p.PhaseType(), uint8(p.Target), uint8(p.MinCards), uint8(p.MaxCards),
			boolByte(p.Mandatory), boolByte(p.PassIfUnable)}
		lenBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBuf, uint32(len(condBytes)))
		buf = append(buf, lenBuf...)
		buf = append(buf, condBytes...)
		return buf, nil

	case *DiscardPhase:
		buf := []byte{p.PhaseType(), uint8(p.Target)}
		countBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(countBuf, uint32(p.Count))
		buf = append(buf, countBuf...)
		buf = append(buf, boolByte(p.Mandatory))
		return buf, nil

	case *TrickPhase:
		return []byte{p.PhaseType(), boolByte(p.LeadSuitRequired), p.TrumpSuit, boolByte(p.HighCardWins), p.BreakingSuit}, nil

	case *BettingPhase:
		buf := []byte{p.PhaseType()}
		minBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(minBuf, uint32(p.MinBet))
		raiseBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(raiseBuf, uint32(p.MaxRaises))
		buf = append(buf, minBuf...)
		buf = append(buf, raiseBuf...)
		return buf, nil

	case *ClaimPhase:
		// ClaimPhase carries no genome-level parameters today; the
		// interpreter derives claim/challenge behavior from state at
		// runtime. Reserve the full 10-byte payload the decoder expects.
		return append([]byte{p.PhaseType()}, make([]byte, 10)...), nil

	case *BiddingPhase:
		buf := make([]byte, 17)
		buf[0] = p.PhaseType()
		buf[1] = 0 // opcode reserved
		buf[2] = uint8(p.MinBid)
		buf[3] = uint8(p.MaxBid)
		buf[4] = boolByte(p.AllowNil)
		buf[5] = uint8(p.PointsPerTrickBid)
		buf[6] = uint8(p.OvertrickPoints)
		buf[7] = uint8(p.FailedContractPenalty)
		binary.BigEndian.PutUint16(buf[8:10], uint16(p.NilBonus))
		binary.BigEndian.PutUint16(buf[10:12], uint16(p.NilPenalty))
		buf[12] = uint8(p.BagLimit)
		binary.BigEndian.PutUint16(buf[13:15], uint16(p.BagPenalty))
		// buf[15:17] reserved, left zero
		return buf, nil

	default:
		return nil, fmt.Errorf("unsupported phase type %T", phase)
	}
}

// EncodePhasePayload returns a phase's wire payload with the leading
// phase-type tag byte stripped, matching the layout engine.PhaseDescriptor.Data
// expects. Callers that build engine.PhaseDescriptor values from a typed
// Phase (rather than decoding bytecode) use this to stay in sync with the
// format encodePhase/ParsePhases agree on.
func EncodePhasePayload(phase Phase) ([]byte, error) {
	encoded, err := encodePhase(phase)
	if err != nil {
		return nil, err
	}
	if len(encoded) == 0 {
		return nil, nil
	}
	return encoded[1:], nil
}

func encodeWinConditions(g *GameGenome) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(len(g.WinConditions)))
	for _, wc := range g.WinConditions {
		rec := make([]byte, 5)
		rec[0] = uint8(wc.Type)
		binary.BigEndian.PutUint32(rec[1:5], uint32(wc.Threshold))
		buf = append(buf, rec...)
	}
	return buf
}

// encodeEffects emits the special-effects trailer. Returns nil when there
// are no effects so the win-conditions section is the last thing the
// decoder's sequential offset walk sees, matching engine.parseEffects
// which treats a missing sentinel byte as "no effects section".
func encodeEffects(g *GameGenome) []byte {
	if len(g.Effects) == 0 {
		return nil
	}
	buf := []byte{effectSentinel, uint8(len(g.Effects))}
	for _, e := range g.Effects {
		buf = append(buf, e.TriggerRank, uint8(e.Effect), e.Target, e.Value)
	}
	return buf
}

// encodeScoring emits the generic scoring section pointed to by the
// header's scoring offset. Contract scoring lives inline in the
// BiddingPhase payload; this section is reserved for future per-team
// point rules and is empty (count=0) today.
func encodeScoring(g *GameGenome) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, 0)
	return buf
}

// encodeCardScoring mirrors engine.ParseCardScoringRules's wire format:
// count:2 + (suit:1 + rank:1 + points:2 + trigger:1) * count.
func encodeCardScoring(rules []CardScoringRule) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(len(rules)))
	for _, r := range rules {
		rec := make([]byte, 5)
		rec[0] = r.Suit
		rec[1] = r.Rank
		binary.BigEndian.PutUint16(rec[2:4], uint16(r.Points))
		rec[4] = uint8(r.Trigger)
		buf = append(buf, rec...)
	}
	return buf
}

// encodeHandEvaluation mirrors engine.ParseHandEvaluation's wire format.
func encodeHandEvaluation(h *HandEvaluation) []byte {
	if h == nil || h.Method == EvalMethodNone {
		return []byte{0}
	}
	buf := []byte{uint8(h.Method), h.TargetValue, h.BustThreshold, uint8(len(h.CardValues))}
	for _, cv := range h.CardValues {
		buf = append(buf, cv.Rank, cv.Value, cv.AltValue)
	}
	buf = append(buf, uint8(len(h.Patterns)))
	for _, p := range h.Patterns {
		buf = append(buf, p.Priority, p.RequiredCount, p.SameSuitCount, p.SequenceLength, boolByte(p.SequenceWrap))
		buf = append(buf, uint8(len(p.SameRankGroups)))
		buf = append(buf, p.SameRankGroups...)
		buf = append(buf, uint8(len(p.RequiredRanks)))
		buf = append(buf, p.RequiredRanks...)
	}
	return buf
}
