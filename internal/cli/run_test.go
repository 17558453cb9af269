package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/trafficsim/simcore/internal/accumulate"
	"github.com/trafficsim/simcore/internal/des"
	"github.com/trafficsim/simcore/internal/replication"
	"github.com/trafficsim/simcore/pkg/rng"
)

func fakeRunner(source *rng.Source, cancel des.CancelFunc) (replication.SeedOutput, error) {
	return replication.SeedOutput{
		Scalars:       map[string]float64{"draw": source.Float64()},
		Distributions: map[string]accumulate.Distribution{"state": {0: 100}},
	}, nil
}

func TestRunCmdScenarioFlagIsRequired(t *testing.T) {
	flag := runCmd.Flags().Lookup("scenario")
	if flag == nil {
		t.Fatal("scenario flag must be registered")
	}
	if _, ok := flag.Annotations[cobra.BashCompOneRequiredFlag]; !ok {
		t.Error("scenario flag must be marked required")
	}
}

func TestRunCmdModeDefaultsToSingleShot(t *testing.T) {
	flag := runCmd.Flags().Lookup("mode")
	if flag == nil || flag.DefValue != "single-shot" {
		t.Fatalf("expected mode to default to single-shot, got %v", flag)
	}
}

func TestExecuteBatchSingleShot(t *testing.T) {
	rec, err := executeBatch("single-shot", 4, rng.SeedModeFixed, 2, fakeRunner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.NumSeeds != 4 {
		t.Errorf("expected 4 seeds, got %d", rec.NumSeeds)
	}
}

func TestExecuteBatchTwoPhase(t *testing.T) {
	rec, err := executeBatch("two-phase", 5, rng.SeedModeFixed, 2, fakeRunner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.NumSeeds != 5 {
		t.Errorf("expected 5 seeds, got %d", rec.NumSeeds)
	}
}

func TestExecuteBatchBatched(t *testing.T) {
	rec, err := executeBatch("batched", 12, rng.SeedModeFixed, 2, fakeRunner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.NumSeeds != 12 {
		t.Errorf("expected 12 seeds, got %d", rec.NumSeeds)
	}
}

func TestExecuteBatchUnknownMode(t *testing.T) {
	if _, err := executeBatch("bogus", 1, rng.SeedModeFixed, 1, fakeRunner); err == nil {
		t.Error("expected an error for an unknown execution mode")
	}
}
