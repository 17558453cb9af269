package replication

import "github.com/trafficsim/simcore/pkg/utils"

// AggregatedRecord is the orchestrator's output, spec §4.7/§6: every scalar
// and distribution reduced to a Triple, plus the seed count actually run.
type AggregatedRecord struct {
	Scalars       map[string]Triple            `json:"scalars"`
	Distributions map[string]map[int]Triple    `json:"distributions"`
	NumSeeds      int                           `json:"numSeeds"`
	Incomplete    bool                          `json:"incomplete,omitempty"`
}

// reduceScalars collects the N per-seed values for every scalar key and
// emits {avg, min, max}. A key missing from a later seed would be a bug in
// the EngineRunner (every seed of the same engine must emit the same scalar
// keys); reduceScalars does not guard against it.
func reduceScalars(outputs []SeedOutput) map[string]Triple {
	if len(outputs) == 0 {
		return map[string]Triple{}
	}
	keys := make(map[string]struct{})
	for _, o := range outputs {
		for k := range o.Scalars {
			keys[k] = struct{}{}
		}
	}
	out := make(map[string]Triple, len(keys))
	for k := range keys {
		values := make([]float64, 0, len(outputs))
		for _, o := range outputs {
			values = append(values, o.Scalars[k])
		}
		out[k] = reduceTriple(values)
	}
	return out
}

// reduceDistributions collects, for every distribution name and every
// integer key appearing in any seed, the N per-seed percentages (missing
// keys treated as 0 per spec §4.7) and emits a Triple per key.
func reduceDistributions(outputs []SeedOutput) map[string]map[int]Triple {
	if len(outputs) == 0 {
		return map[string]map[int]Triple{}
	}
	names := make(map[string]struct{})
	for _, o := range outputs {
		for name := range o.Distributions {
			names[name] = struct{}{}
		}
	}

	out := make(map[string]map[int]Triple, len(names))
	for name := range names {
		stateKeys := make(map[int]struct{})
		for _, o := range outputs {
			for k := range o.Distributions[name] {
				stateKeys[k] = struct{}{}
			}
		}
		perState := make(map[int]Triple, len(stateKeys))
		for state := range stateKeys {
			values := make([]float64, 0, len(outputs))
			for _, o := range outputs {
				dist := o.Distributions[name]
				values = append(values, dist[state])
			}
			perState[state] = reduceTriple(values)
		}
		out[name] = perState
	}
	return out
}

func reduceTriple(values []float64) Triple {
	if len(values) == 0 {
		return Triple{}
	}
	min, max := values[0], values[0]
	for _, v := range values {
		min = utils.MinFloat64(min, v)
		max = utils.MaxFloat64(max, v)
	}
	return Triple{Avg: utils.Mean(values), Min: min, Max: max}
}

// Aggregate reduces a set of per-seed outputs into the final record, per
// spec §4.7's reduction rule. numSeeds is the seed count the caller
// requested, which may exceed len(outputs) when the run was cancelled
// early — in that case Incomplete is set and the record reflects only the
// seeds that actually completed.
func Aggregate(outputs []SeedOutput, numSeeds int) AggregatedRecord {
	return AggregatedRecord{
		Scalars:       reduceScalars(outputs),
		Distributions: reduceDistributions(outputs),
		NumSeeds:      len(outputs),
		Incomplete:    len(outputs) < numSeeds,
	}
}
