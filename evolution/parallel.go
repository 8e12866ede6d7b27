package evolution

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/cardlab/gosim/evolution/fitness"
	"github.com/cardlab/gosim/genome"
	"github.com/cardlab/gosim/simulation"
)

// AIType constants for convenience.
const (
	AITypeRandom   = simulation.RandomAI
	AITypeGreedy   = simulation.GreedyAI
	AITypeMCTS100  = simulation.MCTS100AI
	AITypeMCTS500  = simulation.MCTS500AI
	AITypeMCTS1000 = simulation.MCTS1000AI
	AITypeMCTS2000 = simulation.MCTS2000AI
)

// EvaluationTask represents a single genome evaluation task.
type EvaluationTask struct {
	Index          int
	Genome         *genome.GameGenome
	NumSimulations int
	UseMCTS        bool
}

// EvaluationResult holds the result of a genome evaluation.
type EvaluationResult struct {
	Index   int
	Metrics *fitness.FitnessMetrics
}

// ParallelEvaluator evaluates genomes in parallel using goroutines.
type ParallelEvaluator struct {
	NumWorkers int
	Evaluator  *fitness.Evaluator
	Style      string
}

// NewParallelEvaluator creates a new parallel evaluator.
func NewParallelEvaluator(style string, numWorkers int) *ParallelEvaluator {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &ParallelEvaluator{
		NumWorkers: numWorkers,
		Evaluator:  fitness.NewEvaluator(style, nil),
		Style:      style,
	}
}

// phase2Fraction is the top slice of Phase 1 survivors promoted to Phase 2
// ("top ~20%", spec §4.7).
const phase2Fraction = 0.2

// EvaluatePopulation runs the full two-phase evaluation (spec §4.7) over
// genomes in parallel: a cheap Phase 1 screen for everyone, then an
// expensive Phase 2 batch for the top ~20% of screen survivors.
func (pe *ParallelEvaluator) EvaluatePopulation(
	genomes []*genome.GameGenome,
	numSimulations int,
	useMCTS bool,
) []*fitness.FitnessMetrics {
	if len(genomes) == 0 {
		return nil
	}

	metricsArray := pe.runPhase1(genomes, numSimulations, useMCTS)
	pe.promoteToPhase2(genomes, metricsArray, numSimulations, useMCTS)
	return metricsArray
}

// runPhase1 evaluates every genome with the cheap Random-only screen.
func (pe *ParallelEvaluator) runPhase1(
	genomes []*genome.GameGenome,
	numSimulations int,
	useMCTS bool,
) []*fitness.FitnessMetrics {
	// Create task channel
	tasks := make(chan EvaluationTask, len(genomes))
	results := make(chan EvaluationResult, len(genomes))

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < pe.NumWorkers; i++ {
		wg.Add(1)
		go pe.worker(tasks, results, &wg, numSimulations, useMCTS)
	}

	// Submit tasks
	for i, g := range genomes {
		tasks <- EvaluationTask{
			Index:          i,
			Genome:         g,
			NumSimulations: numSimulations,
			UseMCTS:        useMCTS,
		}
	}
	close(tasks)

	// Wait for workers and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect results in order
	metricsArray := make([]*fitness.FitnessMetrics, len(genomes))
	for result := range results {
		metricsArray[result.Index] = result.Metrics
	}

	return metricsArray
}

// promoteToPhase2 discards zero-fitness Phase 1 candidates (per spec §4.7),
// then re-evaluates the top ~20% of the survivors with the expensive mixed
// batch, overwriting their metrics in place.
func (pe *ParallelEvaluator) promoteToPhase2(
	genomes []*genome.GameGenome,
	metricsArray []*fitness.FitnessMetrics,
	numSimulations int,
	useMCTS bool,
) {
	type survivor struct {
		index   int
		fitness float64
	}
	survivors := make([]survivor, 0, len(metricsArray))
	for i, m := range metricsArray {
		if m != nil && m.Valid && m.TotalFitness > 0 {
			survivors = append(survivors, survivor{index: i, fitness: m.TotalFitness})
		}
	}
	if len(survivors) == 0 {
		return
	}

	sort.Slice(survivors, func(a, b int) bool { return survivors[a].fitness > survivors[b].fitness })

	promoted := int(math.Ceil(float64(len(survivors)) * phase2Fraction))
	if promoted < 1 {
		promoted = 1
	}
	if promoted > len(survivors) {
		promoted = len(survivors)
	}

	tasks := make(chan int, promoted)
	var wg sync.WaitGroup
	for w := 0; w < pe.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				metricsArray[idx] = pe.evaluateGenomeExpensive(genomes[idx], numSimulations, useMCTS)
			}
		}()
	}
	for _, s := range survivors[:promoted] {
		tasks <- s.index
	}
	close(tasks)
	wg.Wait()
}

// worker processes evaluation tasks.
func (pe *ParallelEvaluator) worker(
	tasks <-chan EvaluationTask,
	results chan<- EvaluationResult,
	wg *sync.WaitGroup,
	numSimulations int,
	useMCTS bool,
) {
	defer wg.Done()

	for task := range tasks {
		metrics := pe.evaluateGenome(task.Genome, numSimulations, useMCTS)
		results <- EvaluationResult{
			Index:   task.Index,
			Metrics: metrics,
		}
	}
}

// cheapScreenGames is the Phase 1 game count from spec §4.7's two-phase
// evaluation: a cheap Random-only screen run for every candidate.
const cheapScreenGames = 10

// expensiveEvalFloor is the minimum Phase 2 game count ("100+ simulations")
// for the candidates that survive the cheap screen.
const expensiveEvalFloor = 100

// evaluateGenome runs Phase 1 (cheap screen) of the two-phase evaluation
// described in spec §4.7. Candidates that fail the screen (zero fitness)
// stop here; EvaluatePopulation promotes the rest to Phase 2.
func (pe *ParallelEvaluator) evaluateGenome(
	g *genome.GameGenome,
	numSimulations int,
	useMCTS bool,
) *fitness.FitnessMetrics {
	// Validate genome first
	if !genome.IsValid(g) {
		return &fitness.FitnessMetrics{
			Valid:        false,
			TotalFitness: 0.0,
		}
	}

	bytecode, err := genome.Compile(g)
	if err != nil {
		return &fitness.FitnessMetrics{Valid: false, TotalFitness: 0.0}
	}

	return pe.Evaluator.EvaluateCached(g, bytecode, func() *fitness.SimulationResults {
		screenGames := cheapScreenGames
		if numSimulations > 0 && numSimulations < screenGames {
			screenGames = numSimulations
		}
		stats := simulation.RunBatchTyped(g, screenGames, simulation.RandomAI, 0, 0)
		return convertAggregatedStats(&stats, genome.DefaultPlayerCount)
	})
}

// evaluateGenomeExpensive runs Phase 2 of the two-phase evaluation: a
// larger batch mixing Random, Greedy, and (when useMCTS) MCTS AI, replacing
// whatever Phase 1 cached for this genome's bytecode.
func (pe *ParallelEvaluator) evaluateGenomeExpensive(
	g *genome.GameGenome,
	numSimulations int,
	useMCTS bool,
) *fitness.FitnessMetrics {
	if !genome.IsValid(g) {
		return &fitness.FitnessMetrics{Valid: false, TotalFitness: 0.0}
	}

	bytecode, err := genome.Compile(g)
	if err != nil {
		return &fitness.FitnessMetrics{Valid: false, TotalFitness: 0.0}
	}

	total := numSimulations
	if total < expensiveEvalFloor {
		total = expensiveEvalFloor
	}

	aiTypes := []simulation.AIPlayerType{simulation.RandomAI, simulation.GreedyAI}
	if useMCTS {
		aiTypes = append(aiTypes, simulation.MCTS100AI)
	}

	hash := fitness.ContentHash(bytecode)
	merged := runMixedBatch(g, total, aiTypes)
	pe.Evaluator.CachePut(hash, merged)

	return pe.Evaluator.Evaluate(g, merged)
}

// runMixedBatch splits total games evenly across aiTypes and merges the
// resulting SimulationResults into one, as spec §4.7 Phase 2 requires
// ("100+ simulations mixing Random, Greedy, and MCTS").
func runMixedBatch(g *genome.GameGenome, total int, aiTypes []simulation.AIPlayerType) *fitness.SimulationResults {
	per := total / len(aiTypes)
	if per < 1 {
		per = 1
	}

	var merged *fitness.SimulationResults
	for i, aiType := range aiTypes {
		games := per
		if i == len(aiTypes)-1 {
			games = total - per*(len(aiTypes)-1)
		}
		if games < 1 {
			games = 1
		}
		mctsIters := 0
		if aiType == simulation.MCTS100AI {
			mctsIters = 100
		}
		stats := simulation.RunBatchTyped(g, games, aiType, mctsIters, 0)
		results := convertAggregatedStats(&stats, genome.DefaultPlayerCount)
		merged = mergeSimulationResults(merged, results)
	}
	return merged
}

// mergeSimulationResults combines two SimulationResults, summing counters
// and weighting averages by game count so a parallel merge matches a serial
// one, per spec §5's associative-reduction requirement.
func mergeSimulationResults(a, b *fitness.SimulationResults) *fitness.SimulationResults {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	out := &fitness.SimulationResults{
		PlayerCount: a.PlayerCount,
	}

	totalGames := a.TotalGames + b.TotalGames
	out.TotalGames = totalGames

	if len(a.Wins) < len(b.Wins) {
		a.Wins, b.Wins = b.Wins, a.Wins
	}
	out.Wins = make([]int, len(a.Wins))
	for i := range out.Wins {
		out.Wins[i] = a.Wins[i]
		if i < len(b.Wins) {
			out.Wins[i] += b.Wins[i]
		}
	}

	out.Draws = a.Draws + b.Draws
	out.Errors = a.Errors + b.Errors
	out.AvgTurns = weightedAvg(a.AvgTurns, a.TotalGames, b.AvgTurns, b.TotalGames)

	out.TotalDecisions = a.TotalDecisions + b.TotalDecisions
	out.TotalValidMoves = a.TotalValidMoves + b.TotalValidMoves
	out.ForcedDecisions = a.ForcedDecisions + b.ForcedDecisions
	out.TotalHandSize = a.TotalHandSize + b.TotalHandSize
	out.TotalInteractions = a.TotalInteractions + b.TotalInteractions
	out.TotalActions = a.TotalActions + b.TotalActions

	out.TotalClaims = a.TotalClaims + b.TotalClaims
	out.TotalBluffs = a.TotalBluffs + b.TotalBluffs
	out.TotalChallenges = a.TotalChallenges + b.TotalChallenges
	out.SuccessfulBluffs = a.SuccessfulBluffs + b.SuccessfulBluffs
	out.SuccessfulCatches = a.SuccessfulCatches + b.SuccessfulCatches

	out.TotalBets = a.TotalBets + b.TotalBets
	out.BettingBluffs = a.BettingBluffs + b.BettingBluffs
	out.FoldWins = a.FoldWins + b.FoldWins
	out.ShowdownWins = a.ShowdownWins + b.ShowdownWins
	out.AllInCount = a.AllInCount + b.AllInCount

	out.LeadChanges = a.LeadChanges + b.LeadChanges
	out.DecisiveTurnPct = weightedAvg(a.DecisiveTurnPct, a.TotalGames, b.DecisiveTurnPct, b.TotalGames)
	out.ClosestMargin = weightedAvg(a.ClosestMargin, a.TotalGames, b.ClosestMargin, b.TotalGames)
	out.TrailingWinners = a.TrailingWinners + b.TrailingWinners

	out.MoveDisruptionEvents = a.MoveDisruptionEvents + b.MoveDisruptionEvents
	out.ContentionEvents = a.ContentionEvents + b.ContentionEvents
	out.ForcedResponseEvents = a.ForcedResponseEvents + b.ForcedResponseEvents
	out.OpponentTurnCount = a.OpponentTurnCount + b.OpponentTurnCount

	if len(a.TeamWins) > 0 || len(b.TeamWins) > 0 {
		if len(a.TeamWins) < len(b.TeamWins) {
			a.TeamWins, b.TeamWins = b.TeamWins, a.TeamWins
		}
		out.TeamWins = make([]int, len(a.TeamWins))
		for i := range out.TeamWins {
			out.TeamWins[i] = a.TeamWins[i]
			if i < len(b.TeamWins) {
				out.TeamWins[i] += b.TeamWins[i]
			}
		}
	}

	return out
}

func weightedAvg(a float64, an int, b float64, bn int) float64 {
	if an+bn == 0 {
		return 0
	}
	return (a*float64(an) + b*float64(bn)) / float64(an+bn)
}

// convertAggregatedStats converts simulation.AggregatedStats to fitness.SimulationResults.
func convertAggregatedStats(stats *simulation.AggregatedStats, playerCount int) *fitness.SimulationResults {
	if stats == nil {
		return &fitness.SimulationResults{
			TotalGames:  0,
			PlayerCount: playerCount,
		}
	}

	// Convert wins array
	wins := make([]int, len(stats.Wins))
	for i, w := range stats.Wins {
		wins[i] = int(w)
	}

	var teamWins []int
	if len(stats.TeamWins) > 0 {
		teamWins = make([]int, len(stats.TeamWins))
		for i, w := range stats.TeamWins {
			teamWins[i] = int(w)
		}
	}

	return &fitness.SimulationResults{
		TotalGames:  int(stats.TotalGames),
		Wins:        wins,
		TeamWins:    teamWins,
		PlayerCount: playerCount,
		Draws:       int(stats.Draws),
		AvgTurns:    float64(stats.AvgTurns),
		Errors:      int(stats.Errors),
		// Decision instrumentation
		TotalDecisions:    int(stats.TotalDecisions),
		TotalValidMoves:   int(stats.TotalValidMoves),
		ForcedDecisions:   int(stats.ForcedDecisions),
		TotalHandSize:     int(stats.TotalHandSize),
		TotalInteractions: int(stats.TotalInteractions),
		TotalActions:      int(stats.TotalActions),
		// Tension metrics
		LeadChanges:     int(stats.LeadChanges),
		DecisiveTurnPct: stats.DecisiveTurnPct,
		ClosestMargin:   float64(stats.ClosestMargin),
		TrailingWinners: int(stats.TrailingWinners),
		// Bluffing metrics
		TotalClaims:       int(stats.TotalClaims),
		TotalBluffs:       int(stats.TotalBluffs),
		TotalChallenges:   int(stats.TotalChallenges),
		SuccessfulBluffs:  int(stats.SuccessfulBluffs),
		SuccessfulCatches: int(stats.SuccessfulCatches),
		// Betting metrics
		TotalBets:    int(stats.TotalBets),
		AllInCount:   int(stats.AllInCount),
		ShowdownWins: int(stats.ShowdownWins),
		FoldWins:     int(stats.FoldWins),
		// Interactivity (solitaire detection) metrics
		MoveDisruptionEvents: int(stats.MoveDisruptionEvents),
		ContentionEvents:     int(stats.ContentionEvents),
		ForcedResponseEvents: int(stats.ForcedResponseEvents),
		OpponentTurnCount:    int(stats.OpponentTurnCount),
	}
}

// EvaluateIndividuals evaluates a slice of individuals in parallel.
// It updates each individual's Fitness, FitnessMetrics and Evaluated fields in place.
func (pe *ParallelEvaluator) EvaluateIndividuals(
	individuals []*Individual,
	numSimulations int,
	useMCTS bool,
) {
	if len(individuals) == 0 {
		return
	}

	// Extract genomes
	genomes := make([]*genome.GameGenome, len(individuals))
	for i, ind := range individuals {
		genomes[i] = ind.Genome
	}

	// Evaluate in parallel
	metrics := pe.EvaluatePopulation(genomes, numSimulations, useMCTS)

	// Update individuals
	for i, m := range metrics {
		individuals[i].Fitness = m.TotalFitness
		individuals[i].FitnessMetrics = m
		individuals[i].Evaluated = true
	}
}

// Close releases any resources (no-op for goroutine-based implementation).
func (pe *ParallelEvaluator) Close() {
	// No resources to release with goroutine pool
}
