package layernav

import (
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// EstimateAcceptance repeats q with its position jittered uniformly by
// ±spread on each axis and returns the fraction of searches that found at
// least one compatible surface. Searches run concurrently over the same layer.
// A zero seed picks a time based one.
func EstimateAcceptance(layer *Layer, q CompatibilityQuery, trials int, spread Real, seed int64) Real {
	if trials <= 0 || layer == nil {
		return 0
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	hits := runTrials(trials, seed, func(rng *rand.Rand) bool {
		trial := q
		trial.Position = r3.Add(q.Position, vec(
			(2*rng.Float64()-1)*spread,
			(2*rng.Float64()-1)*spread,
			(2*rng.Float64()-1)*spread,
		))
		return len(layer.CompatibleSurfaces(trial)) > 0
	})
	return Real(hits) / Real(trials)
}

// runTrials splits trials over one goroutine per CPU and counts how many
// returned true. Each worker owns its RNG so the count only depends on seed
// and the worker count.
func runTrials(trials int, seed int64, trial func(rng *rand.Rand) bool) int64 {
	workers := max(1, min(runtime.NumCPU(), trials))
	share := func(w int) int {
		n := trials / workers
		if w < trials%workers {
			n++
		}
		return n
	}

	var (
		wg   sync.WaitGroup
		hits atomic.Int64
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(wid int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed ^ int64(uint64(wid)*goldenRatioSeedMask)))
			var local int64
			for i, n := 0, share(wid); i < n; i++ {
				if trial(rng) {
					local++
				}
			}
			hits.Add(local)
		}(w)
	}
	wg.Wait()
	DebugLog("trials done", zap.Int("trials", trials), zap.Int("workers", workers), zap.Int64("hits", hits.Load()))
	return hits.Load()
}
