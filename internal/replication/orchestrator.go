package replication

import (
	"sync"
	"time"

	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/pkg/rng"
)

// batchChunkSize is the unit at which batched mode reports progress and
// honours cancellation, per spec §5.
const batchChunkSize = 5

// fixedAveragingBudgetMs is the constant added to the two-phase estimate to
// account for the cost of aggregating once all seeds are in, per spec §4.7.
const fixedAveragingBudgetMs = 500.0

// runSeed builds seed k's random stream and invokes run. It is the only
// place a seed index turns into a Source, so SeedMode/fixed's
// reproducibility contract (spec §4.1/§4.7) holds regardless of which
// execution mode calls it.
func runSeed(mode rng.SeedMode, k int, run EngineRunner, cancel des.CancelFunc) (SeedOutput, error) {
	source := rng.New(rng.SeedForIndex(mode, k))
	return run(source, cancel)
}

// runSeedRange runs every seed index in seeds, sharded across a bounded
// worker pool (seeds are embarrassingly parallel, spec §5), mirroring the
// teacher's semaphore-plus-WaitGroup fan-out. It stops launching new seeds
// once cancel reports true or any seed errors, and returns only the
// outputs for seeds that actually completed, in seeds' order.
func runSeedRange(seeds []int, mode rng.SeedMode, maxParallel int, run EngineRunner, cancel des.CancelFunc) ([]SeedOutput, error) {
	if maxParallel < 1 {
		maxParallel = 1
	}

	outputs := make([]SeedOutput, len(seeds))
	errs := make([]error, len(seeds))
	done := make([]bool, len(seeds))

	semaphore := make(chan struct{}, maxParallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var stopped bool

	for i, k := range seeds {
		semaphore <- struct{}{}
		mu.Lock()
		stop := stopped || (cancel != nil && cancel())
		mu.Unlock()
		if stop {
			<-semaphore
			break
		}

		wg.Add(1)
		go func(idx, seedIdx int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			out, err := runSeed(mode, seedIdx, run, cancel)
			mu.Lock()
			outputs[idx] = out
			errs[idx] = err
			done[idx] = true
			if err != nil {
				stopped = true
			}
			mu.Unlock()
		}(i, k)
	}
	wg.Wait()

	completed := make([]SeedOutput, 0, len(seeds))
	for i := range seeds {
		if !done[i] {
			break
		}
		if errs[i] != nil {
			return nil, errs[i]
		}
		completed = append(completed, outputs[i])
	}
	return completed, nil
}

// RunReplications is the single-shot execution mode (spec §4.7 mode 1): run
// all N seeds and reduce.
//
// cancel is polled once per seed (the minimum granularity spec §5
// requires); a cancelled run returns whatever seeds completed, with
// Incomplete set, and no error.
func RunReplications(numSeeds int, mode rng.SeedMode, maxParallel int, run EngineRunner, cancel des.CancelFunc) (AggregatedRecord, error) {
	if numSeeds < 1 {
		return AggregatedRecord{}, nil
	}

	seeds := make([]int, numSeeds)
	for i := range seeds {
		seeds[i] = i
	}

	outputs, err := runSeedRange(seeds, mode, maxParallel, run, cancel)
	if err != nil {
		return AggregatedRecord{}, err
	}
	return Aggregate(outputs, numSeeds), nil
}

// TwoPhaseEstimate is the result of the first phase of spec §4.7 mode 2:
// seed 0 is treated as a warm-up (spec §9's open question on JIT warm-up,
// kept for parity even though an AOT-compiled target does not strictly
// need it) and seed 1's elapsed time extrapolates the remaining N-2 seeds.
type TwoPhaseEstimate struct {
	FirstSeedResult  SeedOutput
	SecondSeedResult SeedOutput
	SecondSeedTimeMs float64
	EstimatedTotalMs float64
	SeedsCompleted   int
}

// GetFirstTwoSeedsTiming runs seeds 0 and 1 and produces a timing estimate
// for the full batch, per spec §4.7 mode 2 / §6's getFirstTwoSeedsTiming
// action. The orchestrator times its own two runs here — spec.md's "the
// orchestrator exposes the measured per-seed time so the caller can enforce
// [budgets]" requires the measurement to come from the thing actually
// running the seeds, not from a caller guessing before either seed starts.
// Seed 0 is treated as a warm-up (spec §9's open question on JIT warm-up);
// seed 1's own elapsed time is what extrapolates the remaining N-2 seeds.
func GetFirstTwoSeedsTiming(numSeeds int, mode rng.SeedMode, run EngineRunner) (TwoPhaseEstimate, error) {
	batchStart := time.Now()
	first, err := runSeed(mode, 0, run, nil)
	if err != nil {
		return TwoPhaseEstimate{}, err
	}

	secondStart := time.Now()
	second, err := runSeed(mode, 1, run, nil)
	if err != nil {
		return TwoPhaseEstimate{}, err
	}
	secondSeedTimeMs := msSince(secondStart)
	elapsedMs := msSince(batchStart)

	remaining := float64(numSeeds-2) * secondSeedTimeMs
	if remaining < 0 {
		remaining = 0
	}

	return TwoPhaseEstimate{
		FirstSeedResult:  first,
		SecondSeedResult: second,
		SecondSeedTimeMs: secondSeedTimeMs,
		EstimatedTotalMs: elapsedMs + remaining + fixedAveragingBudgetMs,
		SeedsCompleted:   2,
	}, nil
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// RunRemainingSeeds is the follow-up call of spec §4.7 mode 2: given the
// first two seeds' already-computed results, run seeds 2..N-1 and
// aggregate across all N.
func RunRemainingSeeds(numSeeds int, mode rng.SeedMode, maxParallel int, run EngineRunner, first, second SeedOutput, cancel des.CancelFunc) (AggregatedRecord, error) {
	if numSeeds <= 2 {
		outputs := []SeedOutput{first, second}[:numSeeds]
		return Aggregate(outputs, numSeeds), nil
	}

	seeds := make([]int, numSeeds-2)
	for i := range seeds {
		seeds[i] = i + 2
	}

	rest, err := runSeedRange(seeds, mode, maxParallel, run, cancel)
	if err != nil {
		return AggregatedRecord{}, err
	}

	outputs := make([]SeedOutput, 0, numSeeds)
	outputs = append(outputs, first, second)
	outputs = append(outputs, rest...)

	return Aggregate(outputs, numSeeds), nil
}

// BatchedEstimate is reported after each chunk of batched mode (spec §4.7
// mode 3): a rolling window over the last five chunks' average
// milliseconds-per-seed, projected across the seeds still remaining.
type BatchedEstimate struct {
	SeedsCompleted     int
	AvgMsPerSeed       float64
	EstimatedRemaining float64
}

// rollingWindowSize bounds how many past chunk timings feed the projection,
// per spec §4.7 mode 3's "last five chunks" rule.
const rollingWindowSize = 5

// BatchedRunner drives batched mode: seeds run in chunks of batchChunkSize,
// and after each chunk the caller's onChunk callback receives a rolling
// projection of the remaining time, so a caller honouring strict
// per-request latency (spec §5) can decide whether to keep going.
type BatchedRunner struct {
	mode        rng.SeedMode
	maxParallel int
	run         EngineRunner
	chunkMs     []float64
}

// NewBatchedRunner constructs a batched-mode driver for one orchestration.
func NewBatchedRunner(mode rng.SeedMode, maxParallel int, run EngineRunner) *BatchedRunner {
	return &BatchedRunner{mode: mode, maxParallel: maxParallel, run: run}
}

// RunBatched runs numSeeds seeds in chunks of batchChunkSize, invoking
// chunkElapsedMs (caller-measured, per spec §5) and onChunk after each
// chunk. cancel is checked between chunks; a cancelled run returns the
// aggregate of whatever chunks completed with Incomplete set.
func (b *BatchedRunner) RunBatched(numSeeds int, cancel des.CancelFunc, chunkElapsedMs func(chunkSeeds int) float64, onChunk func(BatchedEstimate)) (AggregatedRecord, error) {
	if numSeeds < 1 {
		return AggregatedRecord{}, nil
	}

	var outputs []SeedOutput
	for start := 0; start < numSeeds; start += batchChunkSize {
		if cancel != nil && cancel() {
			break
		}

		end := start + batchChunkSize
		if end > numSeeds {
			end = numSeeds
		}
		seeds := make([]int, end-start)
		for i := range seeds {
			seeds[i] = start + i
		}

		chunkOutputs, err := runSeedRange(seeds, b.mode, b.maxParallel, b.run, cancel)
		if err != nil {
			return AggregatedRecord{}, err
		}
		outputs = append(outputs, chunkOutputs...)

		if chunkElapsedMs != nil {
			b.chunkMs = append(b.chunkMs, chunkElapsedMs(len(chunkOutputs))/float64(len(chunkOutputs)))
			if len(b.chunkMs) > rollingWindowSize {
				b.chunkMs = b.chunkMs[len(b.chunkMs)-rollingWindowSize:]
			}
		}

		if onChunk != nil {
			avg := averageOf(b.chunkMs)
			remainingSeeds := numSeeds - len(outputs)
			onChunk(BatchedEstimate{
				SeedsCompleted:     len(outputs),
				AvgMsPerSeed:       avg,
				EstimatedRemaining: avg * float64(remainingSeeds),
			})
		}

		if len(chunkOutputs) < len(seeds) {
			break
		}
	}

	return Aggregate(outputs, numSeeds), nil
}

func averageOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
