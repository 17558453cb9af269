// Package engines maps a loaded pkg/config.Scenario onto the domain Params
// struct its engine expects, and flattens that engine's Result into the
// engine-agnostic replication.SeedOutput shape, so internal/cli and
// internal/api can drive internal/replication without either of them
// knowing three different Result types.
package engines

import (
	"fmt"

	"github.com/trafficsim/simcore/internal/accumulate"
	"github.com/trafficsim/simcore/internal/boomgate"
	"github.com/trafficsim/simcore/internal/carpark"
	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/internal/replication"
	"github.com/trafficsim/simcore/internal/twowaypassing"
	"github.com/trafficsim/simcore/pkg/config"
	"github.com/trafficsim/simcore/pkg/rng"
)

// BuildRunner resolves scenario.Engine to the matching parameter block and
// returns an EngineRunner closure over it. Validation of the scenario
// (including that the matching block is present) is the config package's
// job (pkg/config.LoadScenarioFile); BuildRunner assumes a scenario that
// has already passed that validation.
func BuildRunner(scenario *config.Scenario) (replication.EngineRunner, error) {
	switch scenario.Engine {
	case config.EngineBoomGate:
		return boomGateRunner(toBoomGateParams(scenario.BoomGate)), nil
	case config.EngineTwoWayPassing:
		return twoWayPassingRunner(toTwoWayPassParams(scenario.TwoWayPass)), nil
	case config.EngineCarPark:
		return carParkRunner(toCarParkParams(scenario.CarPark)), nil
	default:
		return nil, fmt.Errorf("engines: unknown engine %q", scenario.Engine)
	}
}

func toBoomGateParams(p *config.BoomGateParams) boomgate.Params {
	return boomgate.Params{
		SimulationHours:         p.SimulationHours,
		ArrivalRatePerHour:      p.ArrivalRatePerHour,
		MinHeadwaySeconds:       p.MinHeadwaySeconds,
		ServicePart1MeanSeconds: p.ServicePart1MeanSeconds,
		ServicePart2MeanSeconds: p.ServicePart2MeanSeconds,
		Part1IsExponential:      p.Part1IsExponential,
		Part2IsExponential:      p.Part2IsExponential,
		MaxConcurrentCustomers:  p.MaxConcurrentCustomers,
	}
}

func toTwoWayPassParams(p *config.TwoWayPassParams) twowaypassing.Params {
	segments := make([]twowaypassing.Segment, len(p.Segments))
	for i, s := range p.Segments {
		kind := twowaypassing.OneWay
		if s.Type == config.SegmentTwoWay {
			kind = twowaypassing.TwoWay
		}
		segments[i] = twowaypassing.Segment{ID: s.ID, Kind: kind, LengthMeters: s.LengthMeters}
	}
	return twowaypassing.Params{
		Segments:             segments,
		SpeedMetersPerSecond: p.SpeedMetersPerSecond,
		SimulationSeconds:    p.SimulationSeconds,
		MinGapSeconds:        p.MinGapSeconds,
		SwitchOverSeconds:    p.SwitchOverSeconds,
		LambdaAPerSecond:     p.LambdaAPerSecond,
		LambdaBPerSecond:     p.LambdaBPerSecond,
		WarmupSeconds:        p.WarmupSeconds,
	}
}

func toCarParkParams(p *config.CarParkParams) carpark.Params {
	return carpark.Params{
		SimulationHours:        p.SimulationHours,
		EntryRatePerHour:       p.EntryRatePerHour,
		ExitRatePerHour:        p.ExitRatePerHour,
		EntryHeadwaySeconds:    p.EntryHeadwaySeconds,
		ExitHeadwaySeconds:     p.ExitHeadwaySeconds,
		EntryServiceSeconds:    p.EntryServiceSeconds,
		ExitServiceSeconds:     p.ExitServiceSeconds,
		Priority:               carpark.Priority(p.Priority),
		MaxConcurrentCustomers: p.MaxConcurrentCustomers,
	}
}

func boomGateRunner(p boomgate.Params) replication.EngineRunner {
	return func(source *rng.Source, cancel des.CancelFunc) (replication.SeedOutput, error) {
		result, err := boomgate.Run(source, p, cancel)
		if err != nil {
			return replication.SeedOutput{}, err
		}
		return replication.SeedOutput{
			Scalars: map[string]float64{
				"totalCustomers":             float64(result.TotalCustomers),
				"avgArrivalsPerHour":         result.AvgArrivalsPerHour,
				"avgServiceTime":             result.AvgServiceTime,
				"serverUtilization":          result.ServerUtilization,
				"avgWaitPerArrival":          result.AvgWaitPerArrival,
				"avgWaitPerWaiter":           result.AvgWaitPerWaiter,
				"probabilityOfWaiting":       result.ProbabilityOfWaiting,
				"constrainedArrivalFraction": result.ConstrainedArrivalFraction,
			},
			Distributions: map[string]accumulate.Distribution{
				"systemState": result.SystemStatePercentages,
				"hourlyMax":   result.HourlyMaxPercentages,
			},
		}, nil
	}
}

// twoWayPassingRunner flattens Result into SeedOutput. Queue-length
// statistics are per segment (spec §4.5), so each is keyed by
// "<metric>:<segmentID>" rather than collapsed across segments.
func twoWayPassingRunner(p twowaypassing.Params) replication.EngineRunner {
	return func(source *rng.Source, cancel des.CancelFunc) (replication.SeedOutput, error) {
		result, err := twowaypassing.Run(source, p, cancel)
		if err != nil {
			return replication.SeedOutput{}, err
		}
		out := replication.SeedOutput{
			Scalars: map[string]float64{
				"servedA":            float64(result.ServedA),
				"servedB":            float64(result.ServedB),
				"avgWaitA":           result.AvgWaitA,
				"avgWaitB":           result.AvgWaitB,
				"probabilityOfWaitA": result.ProbabilityOfWaitA,
				"probabilityOfWaitB": result.ProbabilityOfWaitB,
			},
			Distributions: map[string]accumulate.Distribution{},
		}
		for _, seg := range result.Segments {
			out.Scalars["maxQueueLengthA:"+seg.SegmentID] = float64(seg.MaxQueueLengthA)
			out.Scalars["maxQueueLengthB:"+seg.SegmentID] = float64(seg.MaxQueueLengthB)
			out.Distributions["queueLengthA:"+seg.SegmentID] = seg.QueueLengthPercentagesA
			out.Distributions["queueLengthB:"+seg.SegmentID] = seg.QueueLengthPercentagesB
			out.Distributions["hourlyMaxA:"+seg.SegmentID] = seg.HourlyMaxPercentagesA
			out.Distributions["hourlyMaxB:"+seg.SegmentID] = seg.HourlyMaxPercentagesB
		}
		return out, nil
	}
}

func carParkRunner(p carpark.Params) replication.EngineRunner {
	return func(source *rng.Source, cancel des.CancelFunc) (replication.SeedOutput, error) {
		result, err := carpark.Run(source, p, cancel)
		if err != nil {
			return replication.SeedOutput{}, err
		}
		return replication.SeedOutput{
			Scalars: map[string]float64{
				"utilization":         result.Utilization,
				"totalEntries":        float64(result.TotalEntries),
				"entryDelayFraction":  result.EntryDelayFraction,
				"avgWaitEntryArrival": result.AvgWaitEntryArrival,
				"avgWaitEntryQueued":  result.AvgWaitEntryQueued,
				"totalExits":          float64(result.TotalExits),
				"exitDelayFraction":   result.ExitDelayFraction,
				"avgWaitExitArrival":  result.AvgWaitExitArrival,
				"avgWaitExitQueued":   result.AvgWaitExitQueued,
			},
			Distributions: map[string]accumulate.Distribution{
				"entryQueue":      result.EntryQueuePercentages,
				"entryHourlyMax":  result.EntryHourlyMaxPercentages,
				"exitQueue":       result.ExitQueuePercentages,
				"exitHourlyMax":   result.ExitHourlyMaxPercentages,
			},
		}, nil
	}
}
