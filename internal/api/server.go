package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/trafficsim/simcore/internal/engines"
	"github.com/trafficsim/simcore/internal/replication"
	"github.com/trafficsim/simcore/pkg/config"
	"github.com/trafficsim/simcore/pkg/logger"
	"github.com/trafficsim/simcore/pkg/rng"
	"github.com/trafficsim/simcore/pkg/utils"
)

// Server is the stdlib http.ServeMux wrapper described in SPEC_FULL.md §6:
// no router library, one route per engine kind, plus a health check.
type Server struct {
	mux *http.ServeMux
}

// NewServer builds the route table: one handler per engine kind, matching
// the teacher's one-handler-per-resource-suffix shape in http_server.go.
func NewServer() *Server {
	s := &Server{mux: http.NewServeMux()}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/boom_gate", s.handleEngine(config.EngineBoomGate))
	s.mux.HandleFunc("/v1/two_way_passing", s.handleEngine(config.EngineTwoWayPassing))
	s.mux.HandleFunc("/v1/car_park", s.handleEngine(config.EngineCarPark))

	return s
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleEngine returns a handler bound to one engine kind. It parses the
// request's scenario YAML, rejects a scenario that names a different
// engine than the route, and dispatches on Action per spec.md §6.
func (s *Server) handleEngine(engineName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		scenario, err := config.ParseScenarioYAMLString(req.ScenarioYAML)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid scenario: "+err.Error())
			return
		}
		if scenario.Engine != engineName {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("scenario engine %q does not match route %q", scenario.Engine, engineName))
			return
		}

		run, err := engines.BuildRunner(scenario)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		mode := rng.SeedMode(scenario.Replication.SeedMode)
		numSeeds := scenario.Replication.NumSeeds
		maxParallel := req.MaxParallel
		if maxParallel <= 0 {
			maxParallel = runtime.NumCPU()
		}

		runID := utils.GenerateRunID()
		logger.Info("replication request received", "run_id", runID, "engine", engineName, "action", req.Action, "num_seeds", numSeeds)

		resp, status := s.dispatch(req, run, mode, numSeeds, maxParallel)
		resp.RunID = runID
		s.writeJSON(w, status, resp)
	}
}

func (s *Server) dispatch(req Request, run replication.EngineRunner, mode rng.SeedMode, numSeeds, maxParallel int) (Response, int) {
	start := time.Now()

	switch req.Action {
	case ActionRunSimulation:
		rec, err := replication.RunReplications(numSeeds, mode, maxParallel, run, nil)
		if err != nil {
			return errorResponse(err), http.StatusInternalServerError
		}
		return Response{Success: true, Results: &rec, ExecutionTimeMs: elapsedMs(start)}, http.StatusOK

	case ActionGetFirstTwoSeedsTiming:
		est, err := replication.GetFirstTwoSeedsTiming(numSeeds, mode, run)
		if err != nil {
			return errorResponse(err), http.StatusInternalServerError
		}
		return Response{
			Success:            true,
			ExecutionTimeMs:    elapsedMs(start),
			SecondSeedTime:     est.SecondSeedTimeMs,
			EstimatedTotalTime: est.EstimatedTotalMs,
			FirstSeedResult:    &est.FirstSeedResult,
			SecondSeedResult:   &est.SecondSeedResult,
			SeedsCompleted:     est.SeedsCompleted,
		}, http.StatusOK

	case ActionRunRemainingSeeds:
		if req.FirstSeedResult == nil || req.SecondSeedResult == nil {
			return errorResponse(fmt.Errorf("firstSeedResult and secondSeedResult are required")), http.StatusBadRequest
		}
		rec, err := replication.RunRemainingSeeds(numSeeds, mode, maxParallel, run, *req.FirstSeedResult, *req.SecondSeedResult, nil)
		if err != nil {
			return errorResponse(err), http.StatusInternalServerError
		}
		return Response{Success: true, Results: &rec, ExecutionTimeMs: elapsedMs(start)}, http.StatusOK

	case ActionRunSimulationBatched:
		batcher := replication.NewBatchedRunner(mode, maxParallel, run)
		chunkStart := time.Now()
		rec, err := batcher.RunBatched(numSeeds, nil, func(int) float64 {
			elapsed := elapsedMs(chunkStart)
			chunkStart = time.Now()
			return elapsed
		}, nil)
		if err != nil {
			return errorResponse(err), http.StatusInternalServerError
		}
		return Response{Success: true, Results: &rec, ExecutionTimeMs: elapsedMs(start)}, http.StatusOK

	default:
		return errorResponse(fmt.Errorf("unknown action %q", req.Action)), http.StatusBadRequest
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

func errorResponse(err error) Response {
	return Response{Success: false, Error: err.Error()}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, Response{Success: false, Error: message})
}
