package simulation

import (
	"testing"

	"github.com/cardlab/gosim/engine"
	"github.com/cardlab/gosim/genome"
)

// goldenWarGenome compiles the reference War genome to bytecode and parses
// it back through the engine, exercising the exact path a real evolution
// run takes: typed genome -> bytecode -> interpreter genome.
func goldenWarGenome(t testing.TB) *engine.Genome {
	t.Helper()
	bytecode, err := genome.Compile(genome.CreateWarGenome())
	if err != nil {
		t.Fatalf("failed to compile War genome: %v", err)
	}
	g, err := engine.ParseGenome(bytecode)
	if err != nil {
		t.Fatalf("failed to parse War genome bytecode: %v", err)
	}
	return g
}

func TestRunSingleGameWithGoldenGenome(t *testing.T) {
	g := goldenWarGenome(t)

	result := RunSingleGame(g, RandomAI, 0, 42)

	if result.Error != "" {
		t.Errorf("Game failed: %s", result.Error)
	}

	if result.WinnerID < -1 || result.WinnerID > 1 {
		t.Errorf("Invalid winner ID: %d", result.WinnerID)
	}

	if result.TurnCount == 0 {
		t.Error("Game should have at least one turn")
	}

	t.Logf("Game completed: winner=%d, turns=%d, duration=%dns",
		result.WinnerID, result.TurnCount, result.DurationNs)
}

func TestRunBatchWithGoldenGenome(t *testing.T) {
	g := goldenWarGenome(t)

	stats := RunBatch(g, 10, RandomAI, 0, 12345)

	if stats.TotalGames != 10 {
		t.Errorf("Expected 10 games, got %d", stats.TotalGames)
	}

	if stats.Errors > 0 {
		t.Errorf("Got %d errors", stats.Errors)
	}

	totalWins := stats.Wins[0] + stats.Wins[1] + stats.Draws
	if totalWins != 10 {
		t.Errorf("Wins don't add up: %d+%d+%d = %d",
			stats.Wins[0], stats.Wins[1], stats.Draws, totalWins)
	}

	t.Logf("Batch results: P0=%d P1=%d Draws=%d, Avg turns=%.1f",
		stats.Wins[0], stats.Wins[1], stats.Draws, stats.AvgTurns)
}

// TestAggregateResultsTeamWins confirms per-team win counts accumulate from
// each game's WinningTeam, the signal evolution/parallel.go's
// convertAggregatedStats forwards into fitness.SimulationResults.TeamWins
// for team-balance scoring.
func TestAggregateResultsTeamWins(t *testing.T) {
	results := []GameResult{
		{WinnerID: 0, WinningTeam: 0},
		{WinnerID: 2, WinningTeam: 0},
		{WinnerID: 1, WinningTeam: 1},
		{WinnerID: -1, WinningTeam: -1}, // draw, no team credited
	}

	stats := aggregateResults(results)

	if len(stats.TeamWins) != 2 {
		t.Fatalf("expected 2 teams tracked, got %d", len(stats.TeamWins))
	}
	if stats.TeamWins[0] != 2 {
		t.Errorf("expected team 0 to have 2 wins, got %d", stats.TeamWins[0])
	}
	if stats.TeamWins[1] != 1 {
		t.Errorf("expected team 1 to have 1 win, got %d", stats.TeamWins[1])
	}
}

func BenchmarkRunSingleGame(b *testing.B) {
	g := goldenWarGenome(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RunSingleGame(g, RandomAI, 0, uint64(i))
	}
}
