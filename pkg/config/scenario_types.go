package config

// Scenario is a complete simulation input: exactly one engine's parameter
// block, selected by Engine, plus the shared replication settings.
type Scenario struct {
	Engine      string             `yaml:"engine"` // boom_gate, two_way_passing, car_park
	LogLevel    string             `yaml:"log_level,omitempty"`
	Replication ReplicationParams  `yaml:"replication"`
	BoomGate    *BoomGateParams    `yaml:"boom_gate,omitempty"`
	TwoWayPass  *TwoWayPassParams  `yaml:"two_way_passing,omitempty"`
	CarPark     *CarParkParams     `yaml:"car_park,omitempty"`
}

const (
	EngineBoomGate      = "boom_gate"
	EngineTwoWayPassing = "two_way_passing"
	EngineCarPark       = "car_park"
)

// ReplicationParams controls how many seeded runs the orchestrator performs
// and how those seeds are derived.
type ReplicationParams struct {
	NumSeeds int    `yaml:"num_seeds"`
	SeedMode string `yaml:"seed_mode"` // fixed, random
}

// BoomGateParams parametrizes the single-server M/G/1 boom gate engine.
type BoomGateParams struct {
	SimulationHours         float64 `yaml:"simulation_hours"`
	ArrivalRatePerHour      float64 `yaml:"arrival_rate_per_hour"`
	MinHeadwaySeconds       float64 `yaml:"min_headway_seconds"`
	ServicePart1MeanSeconds float64 `yaml:"service_part1_mean_seconds"`
	ServicePart2MeanSeconds float64 `yaml:"service_part2_mean_seconds"`
	Part1IsExponential      bool    `yaml:"part1_is_exponential"`
	Part2IsExponential      bool    `yaml:"part2_is_exponential"`
	MaxConcurrentCustomers  int     `yaml:"max_concurrent_customers,omitempty"`
}

// Segment is one stretch of the two-way-passing corridor.
type Segment struct {
	ID            string  `yaml:"id"`
	Type          string  `yaml:"type"` // one-way, two-way
	LengthMeters  float64 `yaml:"length_meters"`
}

const (
	SegmentOneWay = "one-way"
	SegmentTwoWay = "two-way"
)

// TwoWayPassParams parametrizes the multi-segment passing-corridor engine.
type TwoWayPassParams struct {
	Segments             []Segment `yaml:"segments"`
	SpeedMetersPerSecond float64   `yaml:"speed_meters_per_second"`
	SimulationSeconds    float64   `yaml:"simulation_seconds"`
	MinGapSeconds        float64   `yaml:"min_gap_seconds"`
	SwitchOverSeconds    float64   `yaml:"switch_over_seconds"`
	LambdaAPerSecond     float64   `yaml:"lambda_a_per_second"`
	LambdaBPerSecond     float64   `yaml:"lambda_b_per_second"`
	WarmupSeconds        float64   `yaml:"warmup_seconds"`
}

// CarParkParams parametrizes the dual-queue, single-server car-park engine.
type CarParkParams struct {
	SimulationHours        float64 `yaml:"simulation_hours"`
	EntryRatePerHour       float64 `yaml:"entry_rate_per_hour"`
	ExitRatePerHour        float64 `yaml:"exit_rate_per_hour"`
	EntryHeadwaySeconds    float64 `yaml:"entry_headway_seconds"`
	ExitHeadwaySeconds     float64 `yaml:"exit_headway_seconds"`
	EntryServiceSeconds    float64 `yaml:"entry_service_seconds"`
	ExitServiceSeconds     float64 `yaml:"exit_service_seconds"`
	Priority               string  `yaml:"priority"` // FCFS, CARS, PEOPLE
	MaxConcurrentCustomers int     `yaml:"max_concurrent_customers,omitempty"`
}

const (
	PriorityFCFS   = "FCFS"
	PriorityCARS   = "CARS"
	PriorityPeople = "PEOPLE"
)
