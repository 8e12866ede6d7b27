package mcts

import (
	"math/rand"

	"github.com/cardlab/gosim/engine"
)

const (
	DefaultExplorationParam = 1.414 // sqrt(2)
)

// Search performs MCTS from the given state and returns the best move
func Search(state *engine.GameState, genome *engine.Genome, iterations int, explorationParam float64) *engine.LegalMove {
	if explorationParam == 0 {
		explorationParam = DefaultExplorationParam
	}

	// Create root node
	root := GetNode()
	defer PutNode(root)

	root.State = state.Clone()
	root.PlayerID = state.CurrentPlayer
	root.TeamID = teamOf(root.State, root.PlayerID)
	root.UntriedMoves = engine.GenerateLegalMoves(root.State, genome)

	// Run MCTS iterations
	for i := 0; i < iterations; i++ {
		node := root

		// 1. Selection - traverse tree using UCB1
		for !node.IsTerminal() && node.IsFullyExpanded() {
			node = node.BestChild(explorationParam)
			if node == nil {
				break
			}
		}

		// If selection resulted in nil node, skip this iteration
		if node == nil {
			continue
		}

		// 2. Expansion - add a new child node
		if !node.IsTerminal() && len(node.UntriedMoves) > 0 {
			node = expand(node, genome)
		}

		// 3. Simulation - play out randomly to terminal state
		winner, winningTeam := simulate(node.State, genome)

		// 4. Backpropagation - update statistics
		backpropagate(node, winner, winningTeam)
	}

	// Return most visited child's move
	bestChild := root.MostVisitedChild()
	if bestChild == nil || bestChild.Move == nil {
		// Fallback to first legal move if MCTS fails
		moves := engine.GenerateLegalMoves(state, genome)
		if len(moves) > 0 {
			return &moves[0]
		}
		return nil
	}

	// Create a copy of the move to return
	moveCopy := *bestChild.Move
	return &moveCopy
}

// expand adds a new child node for an untried move
func expand(node *MCTSNode, genome *engine.Genome) *MCTSNode {
	// Pick a random untried move
	moveIndex := rand.Intn(len(node.UntriedMoves))
	move := node.UntriedMoves[moveIndex]

	// Remove from untried moves
	node.UntriedMoves[moveIndex] = node.UntriedMoves[len(node.UntriedMoves)-1]
	node.UntriedMoves = node.UntriedMoves[:len(node.UntriedMoves)-1]

	// Create child state
	childState := node.State.Clone()
	engine.ApplyMove(childState, &move, genome)

	// Create child node
	child := GetNode()
	child.State = childState
	child.Move = &move
	child.Parent = node
	child.PlayerID = childState.CurrentPlayer
	child.TeamID = teamOf(childState, child.PlayerID)
	child.UntriedMoves = engine.GenerateLegalMoves(childState, genome)

	node.Children = append(node.Children, child)

	return child
}

// simulate plays out the game from the current state and reports both the
// winning seat and, for team genomes, its team (-1 if the genome has no
// teams or the rollout timed out to a draw).
func simulate(state *engine.GameState, genome *engine.Genome) (winner int8, winningTeam int8) {
	simState := state.Clone()
	defer engine.PutState(simState)

	maxSimulationTurns := int(genome.Header.MaxTurns) * 2 // Safety limit

	for i := 0; i < maxSimulationTurns; i++ {
		// Check win conditions
		winner := engine.CheckWinConditions(simState, genome)
		if winner >= 0 {
			return winner, teamOf(simState, uint8(winner))
		}

		// Generate legal moves
		moves := engine.GenerateLegalMoves(simState, genome)
		if len(moves) == 0 {
			// No legal moves - game is stuck
			return -1, -1
		}

		// Light playout: bias the rollout policy toward capturing moves
		// instead of picking uniformly at random, the way a greedy player
		// would. Pure-random rollouts dilute the win-rate signal in
		// capture-heavy genomes (War/Scopa-style TABLEAU_MODE_WAR or
		// MATCH_RANK) where capturing is almost always the stronger move.
		move := selectRolloutMove(moves, rand.Intn)
		engine.ApplyMove(simState, &move, genome)
	}

	// Timeout - return draw
	return -1, -1
}

// selectRolloutMove picks the rollout move for MCTS's simulation phase.
// When any legal move captures into the shared tableau it is preferred
// over non-capturing alternatives; ties among capturing (or, absent any,
// among all) moves are broken uniformly via rngIntn.
func selectRolloutMove(moves []engine.LegalMove, rngIntn func(int) int) engine.LegalMove {
	capturing := make([]engine.LegalMove, 0, len(moves))
	for _, m := range moves {
		if m.TargetLoc == engine.LocationTableau {
			capturing = append(capturing, m)
		}
	}
	if len(capturing) > 0 {
		return capturing[rngIntn(len(capturing))]
	}
	return moves[rngIntn(len(moves))]
}

// backpropagate updates node statistics up the tree. A node is credited
// with the win when the winning seat is the node's own player OR, in team
// genomes, when the winning seat shares the node's team (TeamID) — a
// partnership hand won by your partner should steer the search exactly
// like winning it yourself.
func backpropagate(node *MCTSNode, winner int8, winningTeam int8) {
	for node != nil {
		node.Visits++

		if winner >= 0 {
			if uint8(winner) == node.PlayerID {
				node.Wins += 1.0
			} else if node.TeamID >= 0 && winningTeam >= 0 && node.TeamID == winningTeam {
				node.Wins += 1.0
			}
		}

		node = node.Parent
	}
}

// SearchWithVariant allows specifying different MCTS variants
type SearchParams struct {
	Iterations       int
	ExplorationParam float64
	// Future extensions:
	// UseRAVE         bool
	// UseProgWiden    bool
	// ParallelWorkers int
}

// SearchWithParams runs MCTS with custom parameters
func SearchWithParams(state *engine.GameState, genome *engine.Genome, params SearchParams) *engine.LegalMove {
	return Search(state, genome, params.Iterations, params.ExplorationParam)
}
