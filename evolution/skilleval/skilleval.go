// Package skilleval provides post-hoc, seating-symmetric skill evaluation
// for evolved genomes: MCTS vs Random, played from both seats, to quantify
// how much room a game leaves for skillful play above pure luck.
package skilleval

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/cardlab/gosim/engine"
	"github.com/cardlab/gosim/genome"
	"github.com/cardlab/gosim/simulation"
)

// batchSize bounds how many games run between deadline checks, giving each
// evaluation a soft-timeout boundary without interrupting a game mid-move.
const batchSize = 25

// Result is the skill-gap measurement for a single genome.
type Result struct {
	GenomeName     string
	GamesRequested int
	GamesPlayed    int
	MCTSWinsAsP0   int // MCTS seated as player 0, vs Random as player 1
	MCTSWinsAsP1   int // MCTS seated as player 1, vs Random as player 0
	RandomWins     int
	Draws          int
	Errors         int
	OverallWinRate float64 // MCTS wins / games actually played
	TimedOut       bool
	Err            error
}

// Config controls a single genome's evaluation.
type Config struct {
	NumGames       int           // total games; split evenly between seatings
	MCTSIterations simulation.AIPlayerType // one of simulation.MCTS100AI..MCTS2000AI
	Seed           uint64
	Timeout        time.Duration // soft deadline, checked at batch boundaries
}

// DefaultConfig returns the evaluation parameters used when a caller does
// not override them: 200 games at the 500-iteration MCTS tier, no deadline.
func DefaultConfig(seed uint64) Config {
	return Config{
		NumGames:       200,
		MCTSIterations: simulation.MCTS500AI,
		Seed:           seed,
		Timeout:        0,
	}
}

// Evaluate compiles g to bytecode and plays cfg.NumGames/2 games with MCTS
// as player 0 vs Random as player 1, then the same number with seating
// reversed. This symmetric protocol removes first-player bias from the
// reported skill gap (§4.9 of the design: "Skill Evaluation").
func Evaluate(ctx context.Context, name string, g *genome.GameGenome, cfg Config) *Result {
	result := &Result{GenomeName: name, GamesRequested: cfg.NumGames}

	bytecode, err := genome.Compile(g)
	if err != nil {
		result.Err = fmt.Errorf("compile: %w", err)
		return result
	}
	compiled, err := engine.ParseGenome(bytecode)
	if err != nil {
		result.Err = fmt.Errorf("parse bytecode: %w", err)
		return result
	}

	perSeating := cfg.NumGames / 2
	deadline := time.Time{}
	if cfg.Timeout > 0 {
		deadline = time.Now().Add(cfg.Timeout)
	}

	mctsAsP0 := cfg.MCTSIterations
	if mctsAsP0 == 0 {
		mctsAsP0 = simulation.MCTS500AI
	}

	// playSeating plays up to `games` games with MCTS in the given seat vs
	// Random in the other, in chunks of batchSize so the soft deadline and
	// context cancellation are only ever observed at a batch boundary
	// (never mid-game).
	playSeating := func(mctsSeat int, games int) (mctsWins, randomWins, draws, errs, played int, timedOut bool) {
		remaining := games
		seed := cfg.Seed
		for remaining > 0 {
			if err := ctx.Err(); err != nil {
				return mctsWins, randomWins, draws, errs, played, true
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return mctsWins, randomWins, draws, errs, played, true
			}

			chunk := batchSize
			if chunk > remaining {
				chunk = remaining
			}

			var stats simulation.AggregatedStats
			if mctsSeat == 0 {
				stats = simulation.RunBatchAsymmetric(compiled, chunk, mctsAsP0, simulation.RandomAI, 0, seed)
				mctsWins += int(stats.Player0Wins)
				randomWins += int(stats.Player1Wins)
			} else {
				stats = simulation.RunBatchAsymmetric(compiled, chunk, simulation.RandomAI, mctsAsP0, 0, seed)
				mctsWins += int(stats.Player1Wins)
				randomWins += int(stats.Player0Wins)
			}
			draws += int(stats.Draws)
			errs += int(stats.Errors)
			played += chunk
			remaining -= chunk
			seed++
		}
		return mctsWins, randomWins, draws, errs, played, false
	}

	p0MCTSWins, p0RandomWins, p0Draws, p0Errs, p0Played, timedOut1 := playSeating(0, perSeating)
	result.MCTSWinsAsP0 = p0MCTSWins

	p1MCTSWins, p1RandomWins, p1Draws, p1Errs, p1Played, timedOut2 := playSeating(1, perSeating)
	result.MCTSWinsAsP1 = p1MCTSWins

	result.RandomWins = p0RandomWins + p1RandomWins
	result.Draws = p0Draws + p1Draws
	result.Errors = p0Errs + p1Errs
	result.GamesPlayed = p0Played + p1Played
	result.TimedOut = timedOut1 || timedOut2

	if result.GamesPlayed > 0 {
		totalMCTSWins := result.MCTSWinsAsP0 + result.MCTSWinsAsP1
		result.OverallWinRate = float64(totalMCTSWins) / float64(result.GamesPlayed)
	}

	return result
}

// Candidate pairs a genome with the display name used in Result.
type Candidate struct {
	Name   string
	Genome *genome.GameGenome
}

// EvaluateTopK runs Evaluate for every candidate across a bounded worker
// pool, honoring each evaluation's own timeout independently so one slow
// genome cannot stall the others (§4.9: "Parallel across genomes via a
// worker pool; each evaluation carries its own timeout").
func EvaluateTopK(candidates []Candidate, cfg Config, numWorkers int) []*Result {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(candidates) && len(candidates) > 0 {
		numWorkers = len(candidates)
	}

	results := make([]*Result, len(candidates))
	jobs := make(chan int, len(candidates))
	for i := range candidates {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				c := candidates[idx]
				ctx := context.Background()
				var cancel context.CancelFunc
				if cfg.Timeout > 0 {
					ctx, cancel = context.WithTimeout(ctx, cfg.Timeout*2)
				}
				results[idx] = Evaluate(ctx, c.Name, c.Genome, cfg)
				if cancel != nil {
					cancel()
				}
			}
		}()
	}
	wg.Wait()

	return results
}
