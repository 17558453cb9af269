package engines

import (
	"testing"

	"github.com/trafficsim/simcore/pkg/config"
	"github.com/trafficsim/simcore/pkg/rng"
)

func TestBuildRunnerBoomGate(t *testing.T) {
	scenario := &config.Scenario{
		Engine: config.EngineBoomGate,
		BoomGate: &config.BoomGateParams{
			SimulationHours:         1,
			ArrivalRatePerHour:      60,
			MinHeadwaySeconds:       2,
			ServicePart1MeanSeconds: 3,
			Part1IsExponential:      true,
		},
	}
	run, err := BuildRunner(scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := run(rng.New(1), nil)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if _, ok := out.Scalars["totalCustomers"]; !ok {
		t.Error("expected totalCustomers scalar")
	}
	if _, ok := out.Scalars["avgArrivalsPerHour"]; !ok {
		t.Error("expected avgArrivalsPerHour scalar")
	}
	if _, ok := out.Scalars["avgServiceTime"]; !ok {
		t.Error("expected avgServiceTime scalar")
	}
	if _, ok := out.Distributions["systemState"]; !ok {
		t.Error("expected systemState distribution")
	}
}

func TestBuildRunnerCarPark(t *testing.T) {
	scenario := &config.Scenario{
		Engine: config.EngineCarPark,
		CarPark: &config.CarParkParams{
			SimulationHours:     1,
			EntryRatePerHour:    300,
			ExitRatePerHour:     300,
			EntryServiceSeconds: 5,
			ExitServiceSeconds:  5,
			Priority:            config.PriorityFCFS,
		},
	}
	run, err := BuildRunner(scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := run(rng.New(1), nil)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if _, ok := out.Scalars["utilization"]; !ok {
		t.Error("expected utilization scalar")
	}
}

func TestBuildRunnerTwoWayPassing(t *testing.T) {
	scenario := &config.Scenario{
		Engine: config.EngineTwoWayPassing,
		TwoWayPass: &config.TwoWayPassParams{
			Segments:             []config.Segment{{ID: "s1", Type: config.SegmentOneWay, LengthMeters: 30}},
			SpeedMetersPerSecond: 5.56,
			SimulationSeconds:    3600,
			LambdaAPerSecond:     15.0 / 3600,
			LambdaBPerSecond:     15.0 / 3600,
		},
	}
	run, err := BuildRunner(scenario)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := run(rng.New(1), nil)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if _, ok := out.Scalars["servedA"]; !ok {
		t.Error("expected servedA scalar")
	}
	if _, ok := out.Scalars["maxQueueLengthA:s1"]; !ok {
		t.Error("expected per-segment maxQueueLengthA:s1 scalar")
	}
	if _, ok := out.Distributions["queueLengthA:s1"]; !ok {
		t.Error("expected per-segment queueLengthA:s1 distribution")
	}
}

func TestBuildRunnerUnknownEngine(t *testing.T) {
	scenario := &config.Scenario{Engine: "not_an_engine"}
	if _, err := BuildRunner(scenario); err == nil {
		t.Error("expected an error for unknown engine")
	}
}
