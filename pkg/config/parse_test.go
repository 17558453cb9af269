package config

import "testing"

func TestParseScenarioYAMLStringCarPark(t *testing.T) {
	yamlText := `
engine: car_park
replication:
  num_seeds: 5
  seed_mode: fixed
car_park:
  simulation_hours: 8
  entry_rate_per_hour: 120
  exit_rate_per_hour: 100
  entry_headway_seconds: 2
  exit_headway_seconds: 2
  entry_service_seconds: 5
  exit_service_seconds: 4
  priority: CARS
`

	scenario, err := ParseScenarioYAMLString(yamlText)
	if err != nil {
		t.Fatalf("ParseScenarioYAMLString failed: %v", err)
	}
	if scenario.CarPark == nil {
		t.Fatalf("expected non-nil car_park block")
	}
	if scenario.CarPark.Priority != PriorityCARS {
		t.Fatalf("expected priority CARS, got %q", scenario.CarPark.Priority)
	}
	if scenario.Replication.NumSeeds != 5 {
		t.Fatalf("expected num_seeds 5, got %d", scenario.Replication.NumSeeds)
	}
}

func TestParseScenarioYAMLStringInvalid(t *testing.T) {
	yamlText := `
engine: car_park
replication:
  num_seeds: 5
  seed_mode: fixed
`
	_, err := ParseScenarioYAMLString(yamlText)
	if err == nil {
		t.Fatalf("expected validation error for missing car_park block")
	}
}

func TestParseScenarioYAMLStringUnknownEngine(t *testing.T) {
	yamlText := `
engine: spaceship
replication: {num_seeds: 1, seed_mode: fixed}
`
	_, err := ParseScenarioYAMLString(yamlText)
	if err == nil {
		t.Fatalf("expected validation error for unknown engine")
	}
}
