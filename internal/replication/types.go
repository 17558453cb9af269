// Package replication is the N-seed orchestrator: it runs an engine-agnostic
// closure once per seed and reduces the results into {avg, min, max}
// triples, per spec §4.7. It owns no engine state and is a pure driver.
package replication

import (
	"github.com/trafficsim/simcore/internal/accumulate"
	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/pkg/rng"
)

// Triple is the {avg, min, max} reduction of one metric across N seeds.
type Triple struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SeedOutput is the flattened, engine-agnostic shape one seed's run reduces
// to. Each engine's Result struct is different (boomgate.Result,
// carpark.Result, twowaypassing.Result); the caller supplying an EngineRunner
// is responsible for flattening its engine's fields into these two maps so
// the orchestrator never needs to know about any particular engine.
type SeedOutput struct {
	Scalars       map[string]float64
	Distributions map[string]accumulate.Distribution
}

// EngineRunner executes one seed's replication and returns its flattened
// output. source is the seed's exclusively-owned random stream (spec §5);
// cancel is threaded into the engine's own run loop and checked between
// events.
type EngineRunner func(source *rng.Source, cancel des.CancelFunc) (SeedOutput, error)
