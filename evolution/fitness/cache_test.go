package fitness

import (
	"sync"
	"testing"

	"github.com/cardlab/gosim/genome"
)

func TestContentHashStable(t *testing.T) {
	a := ContentHash([]byte{1, 2, 3, 4})
	b := ContentHash([]byte{1, 2, 3, 4})
	if a != b {
		t.Errorf("ContentHash not deterministic: %d != %d", a, b)
	}

	c := ContentHash([]byte{1, 2, 3, 5})
	if a == c {
		t.Error("expected different bytecode to hash differently")
	}
}

func TestEvalCacheGetPut(t *testing.T) {
	cache := NewEvalCache(4)

	if _, ok := cache.Get(1); ok {
		t.Error("expected miss on empty cache")
	}

	results := &SimulationResults{TotalGames: 10}
	cache.Put(1, results)

	got, ok := cache.Get(1)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got.TotalGames != 10 {
		t.Errorf("expected TotalGames 10, got %d", got.TotalGames)
	}

	if cache.Len() != 1 {
		t.Errorf("expected Len 1, got %d", cache.Len())
	}
}

func TestEvalCacheEviction(t *testing.T) {
	cache := NewEvalCache(2)
	cache.Put(1, &SimulationResults{TotalGames: 1})
	cache.Put(2, &SimulationResults{TotalGames: 2})
	cache.Put(3, &SimulationResults{TotalGames: 3})

	if cache.Len() > 2 {
		t.Errorf("expected bounded cache, got Len %d", cache.Len())
	}

	if _, ok := cache.Get(1); ok {
		t.Error("expected oldest entry evicted under LRU pressure")
	}
}

func TestEvalCachePurge(t *testing.T) {
	cache := NewEvalCache(4)
	cache.Put(1, &SimulationResults{TotalGames: 1})
	cache.Purge()

	if cache.Len() != 0 {
		t.Errorf("expected empty cache after Purge, got Len %d", cache.Len())
	}
}

func TestEvalCacheConcurrentAccess(t *testing.T) {
	cache := NewEvalCache(64)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hash := uint64(i % 8)
			cache.Put(hash, &SimulationResults{TotalGames: i})
			cache.Get(hash)
		}(i)
	}
	wg.Wait()
}

func TestEvaluatorEvaluateCachedSkipsSimulateOnHit(t *testing.T) {
	evaluator := NewEvaluator("balanced", nil)
	g := genomeForCacheTest()
	bytecode := []byte{1, 2, 3}

	calls := 0
	simulate := func() *SimulationResults {
		calls++
		return &SimulationResults{
			TotalGames:      10,
			Wins:            []int{5, 5},
			TotalDecisions:  20,
			TotalValidMoves: 40,
		}
	}

	first := evaluator.EvaluateCached(g, bytecode, simulate)
	second := evaluator.EvaluateCached(g, bytecode, simulate)

	if calls != 1 {
		t.Errorf("expected simulate called once (cache hit on second call), got %d calls", calls)
	}
	if first.TotalFitness != second.TotalFitness {
		t.Error("expected identical fitness for a cached bytecode hash")
	}

	otherBytecode := []byte{4, 5, 6}
	evaluator.EvaluateCached(g, otherBytecode, simulate)
	if calls != 2 {
		t.Errorf("expected simulate called again for different bytecode, got %d calls", calls)
	}
}

func TestEvaluatorClearCache(t *testing.T) {
	evaluator := NewEvaluator("balanced", nil)
	g := genomeForCacheTest()
	bytecode := []byte{9, 9, 9}

	calls := 0
	simulate := func() *SimulationResults {
		calls++
		return &SimulationResults{TotalGames: 10, Wins: []int{5, 5}}
	}

	evaluator.EvaluateCached(g, bytecode, simulate)
	evaluator.ClearCache()
	evaluator.EvaluateCached(g, bytecode, simulate)

	if calls != 2 {
		t.Errorf("expected ClearCache to force re-simulation, got %d calls", calls)
	}
}

func genomeForCacheTest() *genome.GameGenome {
	return genome.CreateWarGenome()
}
