package config

import (
	"errors"
	"fmt"
	"os"
)

// LoadScenarioFile loads and parses a scenario file from disk.
func LoadScenarioFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	scenario, err := ParseScenarioYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}
	return scenario, nil
}

// validateScenario checks the engine discriminator, the replication block,
// and the one selected engine's parameter block. Field errors are collected
// rather than returned on first failure, so a caller sees every problem in
// one pass.
func validateScenario(s *Scenario) error {
	var errs []error

	switch s.Engine {
	case EngineBoomGate:
		if s.BoomGate == nil {
			errs = append(errs, fmt.Errorf("engine %q selected but boom_gate block is missing", s.Engine))
		} else {
			errs = append(errs, validateBoomGate(s.BoomGate)...)
		}
	case EngineTwoWayPassing:
		if s.TwoWayPass == nil {
			errs = append(errs, fmt.Errorf("engine %q selected but two_way_passing block is missing", s.Engine))
		} else {
			errs = append(errs, validateTwoWayPass(s.TwoWayPass)...)
		}
	case EngineCarPark:
		if s.CarPark == nil {
			errs = append(errs, fmt.Errorf("engine %q selected but car_park block is missing", s.Engine))
		} else {
			errs = append(errs, validateCarPark(s.CarPark)...)
		}
	default:
		errs = append(errs, fmt.Errorf("unknown engine %q (must be %s, %s, or %s)", s.Engine, EngineBoomGate, EngineTwoWayPassing, EngineCarPark))
	}

	errs = append(errs, validateReplication(&s.Replication)...)

	return errors.Join(errs...)
}

func validateReplication(r *ReplicationParams) []error {
	var errs []error
	if r.NumSeeds <= 0 {
		errs = append(errs, fmt.Errorf("replication.num_seeds must be positive, got %d", r.NumSeeds))
	}
	if r.SeedMode != "fixed" && r.SeedMode != "random" {
		errs = append(errs, fmt.Errorf("replication.seed_mode must be 'fixed' or 'random', got %q", r.SeedMode))
	}
	return errs
}

func validateBoomGate(p *BoomGateParams) []error {
	var errs []error
	if p.SimulationHours <= 0 {
		errs = append(errs, fmt.Errorf("boom_gate.simulation_hours must be positive"))
	}
	if p.ArrivalRatePerHour < 0 {
		errs = append(errs, fmt.Errorf("boom_gate.arrival_rate_per_hour cannot be negative"))
	}
	if p.MinHeadwaySeconds < 0 {
		errs = append(errs, fmt.Errorf("boom_gate.min_headway_seconds cannot be negative"))
	}
	if p.ServicePart1MeanSeconds < 0 || p.ServicePart2MeanSeconds < 0 {
		errs = append(errs, fmt.Errorf("boom_gate service means cannot be negative"))
	}
	return errs
}

func validateTwoWayPass(p *TwoWayPassParams) []error {
	var errs []error
	if len(p.Segments) == 0 {
		errs = append(errs, fmt.Errorf("two_way_passing.segments must have at least one segment"))
	}
	ids := make(map[string]bool)
	for i, seg := range p.Segments {
		if seg.ID == "" {
			errs = append(errs, fmt.Errorf("two_way_passing.segments[%d]: id cannot be empty", i))
		}
		if ids[seg.ID] {
			errs = append(errs, fmt.Errorf("two_way_passing.segments[%d]: duplicate segment id %s", i, seg.ID))
		}
		ids[seg.ID] = true
		if seg.Type != SegmentOneWay && seg.Type != SegmentTwoWay {
			errs = append(errs, fmt.Errorf("two_way_passing.segments[%d]: type must be %q or %q, got %q", i, SegmentOneWay, SegmentTwoWay, seg.Type))
		}
		if seg.LengthMeters <= 0 {
			errs = append(errs, fmt.Errorf("two_way_passing.segments[%d]: length_meters must be positive", i))
		}
	}
	if p.SpeedMetersPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("two_way_passing.speed_meters_per_second must be positive"))
	}
	if p.SimulationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("two_way_passing.simulation_seconds must be positive"))
	}
	if p.MinGapSeconds < 0 {
		errs = append(errs, fmt.Errorf("two_way_passing.min_gap_seconds cannot be negative"))
	}
	if p.SwitchOverSeconds < 0 {
		errs = append(errs, fmt.Errorf("two_way_passing.switch_over_seconds cannot be negative"))
	}
	if p.LambdaAPerSecond < 0 || p.LambdaBPerSecond < 0 {
		errs = append(errs, fmt.Errorf("two_way_passing lambda rates cannot be negative"))
	}
	if p.WarmupSeconds < 0 {
		errs = append(errs, fmt.Errorf("two_way_passing.warmup_seconds cannot be negative"))
	}
	return errs
}

func validateCarPark(p *CarParkParams) []error {
	var errs []error
	if p.SimulationHours <= 0 {
		errs = append(errs, fmt.Errorf("car_park.simulation_hours must be positive"))
	}
	if p.EntryRatePerHour < 0 || p.ExitRatePerHour < 0 {
		errs = append(errs, fmt.Errorf("car_park arrival rates cannot be negative"))
	}
	if p.EntryHeadwaySeconds < 0 || p.ExitHeadwaySeconds < 0 {
		errs = append(errs, fmt.Errorf("car_park headways cannot be negative"))
	}
	if p.EntryServiceSeconds < 0 || p.ExitServiceSeconds < 0 {
		errs = append(errs, fmt.Errorf("car_park service times cannot be negative"))
	}
	switch p.Priority {
	case PriorityFCFS, PriorityCARS, PriorityPeople:
	default:
		errs = append(errs, fmt.Errorf("car_park.priority must be %s, %s, or %s, got %q", PriorityFCFS, PriorityCARS, PriorityPeople, p.Priority))
	}
	return errs
}
