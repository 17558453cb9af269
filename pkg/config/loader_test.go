package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validBoomGateScenario() *Scenario {
	return &Scenario{
		Engine:      EngineBoomGate,
		Replication: ReplicationParams{NumSeeds: 10, SeedMode: "fixed"},
		BoomGate: &BoomGateParams{
			SimulationHours:         8,
			ArrivalRatePerHour:      300,
			MinHeadwaySeconds:       3,
			ServicePart1MeanSeconds: 5,
			ServicePart2MeanSeconds: 2,
		},
	}
}

func TestScenarioValidationValidBoomGate(t *testing.T) {
	if err := validateScenario(validBoomGateScenario()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScenarioValidationUnknownEngine(t *testing.T) {
	s := validBoomGateScenario()
	s.Engine = "nonsense"
	if err := validateScenario(s); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestScenarioValidationMissingBlock(t *testing.T) {
	s := validBoomGateScenario()
	s.BoomGate = nil
	if err := validateScenario(s); err == nil {
		t.Error("expected error when selected engine's block is missing")
	}
}

func TestScenarioValidationReplication(t *testing.T) {
	tests := []struct {
		name    string
		repl    ReplicationParams
		wantErr bool
	}{
		{"valid fixed", ReplicationParams{NumSeeds: 5, SeedMode: "fixed"}, false},
		{"valid random", ReplicationParams{NumSeeds: 1, SeedMode: "random"}, false},
		{"zero seeds", ReplicationParams{NumSeeds: 0, SeedMode: "fixed"}, true},
		{"bad seed mode", ReplicationParams{NumSeeds: 5, SeedMode: "weird"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validBoomGateScenario()
			s.Replication = tt.repl
			err := validateScenario(s)
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestScenarioValidationTwoWayPassing(t *testing.T) {
	valid := &Scenario{
		Engine:      EngineTwoWayPassing,
		Replication: ReplicationParams{NumSeeds: 3, SeedMode: "fixed"},
		TwoWayPass: &TwoWayPassParams{
			Segments: []Segment{
				{ID: "s1", Type: SegmentOneWay, LengthMeters: 100},
				{ID: "s2", Type: SegmentTwoWay, LengthMeters: 50},
			},
			SpeedMetersPerSecond: 10,
			SimulationSeconds:    3600,
			MinGapSeconds:        2,
			SwitchOverSeconds:    5,
			LambdaAPerSecond:     0.1,
			LambdaBPerSecond:     0.05,
		},
	}
	if err := validateScenario(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noSegments := *valid
	noSegments.TwoWayPass = &TwoWayPassParams{SpeedMetersPerSecond: 10, SimulationSeconds: 100}
	if err := validateScenario(&noSegments); err == nil {
		t.Error("expected error with no segments")
	}

	dup := *valid
	dupParams := *valid.TwoWayPass
	dupParams.Segments = []Segment{
		{ID: "s1", Type: SegmentOneWay, LengthMeters: 100},
		{ID: "s1", Type: SegmentTwoWay, LengthMeters: 50},
	}
	dup.TwoWayPass = &dupParams
	if err := validateScenario(&dup); err == nil {
		t.Error("expected error for duplicate segment id")
	}

	badType := *valid
	badTypeParams := *valid.TwoWayPass
	badTypeParams.Segments = []Segment{{ID: "s1", Type: "diagonal", LengthMeters: 10}}
	badType.TwoWayPass = &badTypeParams
	if err := validateScenario(&badType); err == nil {
		t.Error("expected error for unknown segment type")
	}
}

func TestScenarioValidationCarPark(t *testing.T) {
	valid := &Scenario{
		Engine:      EngineCarPark,
		Replication: ReplicationParams{NumSeeds: 3, SeedMode: "fixed"},
		CarPark: &CarParkParams{
			SimulationHours:     8,
			EntryRatePerHour:    100,
			ExitRatePerHour:     90,
			EntryHeadwaySeconds: 2,
			ExitHeadwaySeconds:  2,
			EntryServiceSeconds: 4,
			ExitServiceSeconds:  3,
			Priority:            PriorityFCFS,
		},
	}
	if err := validateScenario(valid); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	badPriority := *valid
	p := *valid.CarPark
	p.Priority = "RANDOM"
	badPriority.CarPark = &p
	if err := validateScenario(&badPriority); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestLoadScenarioInvalidFile(t *testing.T) {
	_, err := LoadScenarioFile("/nonexistent/path/scenario.yaml")
	if err == nil {
		t.Error("expected error when loading nonexistent scenario file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	malformedFile := filepath.Join(tmpDir, "malformed.yaml")

	content := `
engine: boom_gate
boom_gate:
  simulation_hours: [unclosed
`
	if err := os.WriteFile(malformedFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	_, err := LoadScenarioFile(malformedFile)
	if err == nil {
		t.Error("expected error when parsing malformed YAML")
	}
}

func TestLoadScenarioFileRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "scenario.yaml")

	content := `
engine: boom_gate
replication:
  num_seeds: 10
  seed_mode: fixed
boom_gate:
  simulation_hours: 4
  arrival_rate_per_hour: 200
  min_headway_seconds: 3
  service_part1_mean_seconds: 5
  service_part2_mean_seconds: 1
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	scenario, err := LoadScenarioFile(path)
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}
	if scenario.Engine != EngineBoomGate {
		t.Errorf("expected engine %q, got %q", EngineBoomGate, scenario.Engine)
	}
	if scenario.BoomGate.SimulationHours != 4 {
		t.Errorf("expected simulation_hours 4, got %v", scenario.BoomGate.SimulationHours)
	}
	if scenario.Replication.NumSeeds != 10 {
		t.Errorf("expected num_seeds 10, got %d", scenario.Replication.NumSeeds)
	}
}
