// Package api is the thin JSON request/response boundary of spec.md §6: one
// route per engine kind, decoding an action/scenarioYaml envelope and
// calling straight into internal/replication. Grounded on the teacher's
// internal/simd/http_server.go routing and writeJSON/writeError helpers.
package api

import "github.com/trafficsim/simcore/internal/replication"

// Action enumerates the four operations spec.md §6 names.
type Action string

const (
	ActionRunSimulation         Action = "runSimulation"
	ActionGetFirstTwoSeedsTiming Action = "getFirstTwoSeedsTiming"
	ActionRunRemainingSeeds      Action = "runRemainingSeeds"
	ActionRunSimulationBatched   Action = "runSimulationBatched"
)

// Request is the request contract of spec.md §6. ScenarioYAML carries the
// full scenario document (engine discriminator, per-engine parameters, and
// the replication block's numSeeds/seedMode) the same way the teacher's
// simd.RunInput carries a raw scenario_yaml string rather than pre-parsed
// fields, so the YAML schema in pkg/config stays the single source of
// truth for parameter validation.
type Request struct {
	Action       Action  `json:"action"`
	ScenarioYAML string  `json:"scenarioYaml"`
	MaxParallel  int     `json:"maxParallel,omitempty"`

	// Populated only for runRemainingSeeds, per spec.md §6.
	FirstSeedResult  *replication.SeedOutput `json:"firstSeedResult,omitempty"`
	SecondSeedResult *replication.SeedOutput `json:"secondSeedResult,omitempty"`
	SeedsCompleted   int                     `json:"seedsCompleted,omitempty"`
	ElapsedMs        float64                 `json:"elapsedMs,omitempty"`
	SecondSeedTimeMs float64                 `json:"secondSeedTimeMs,omitempty"`
}

// Response is the response contract of spec.md §6.
type Response struct {
	Success         bool                         `json:"success"`
	RunID           string                       `json:"runId,omitempty"`
	Results         *replication.AggregatedRecord `json:"results,omitempty"`
	ExecutionTimeMs float64                      `json:"executionTimeMs"`

	// Two-phase protocol additions, spec.md §6.
	SecondSeedTime     float64                 `json:"secondSeedTime,omitempty"`
	EstimatedTotalTime float64                 `json:"estimatedTotalTime,omitempty"`
	FirstSeedResult    *replication.SeedOutput `json:"firstSeedResult,omitempty"`
	SecondSeedResult   *replication.SeedOutput `json:"secondSeedResult,omitempty"`
	SeedsCompleted     int                     `json:"seedsCompleted,omitempty"`

	Error string `json:"error,omitempty"`
}
