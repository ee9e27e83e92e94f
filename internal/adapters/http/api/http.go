// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/rivers/internal/app"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the engine.
type Dependencies interface {
	// Predict scores one matchup.
	Predict(ctx context.Context, req app.Request) (model.Prediction, error)

	// PredictBatch scores a slate of matchups concurrently.
	PredictBatch(ctx context.Context, reqs []app.Request, workerCount int) ([]app.BatchResult, error)

	// Teams lists the team ids in the active snapshot.
	Teams(ctx context.Context) []types.TeamID

	// Ready reports whether a snapshot is installed and usable.
	Ready(ctx context.Context) bool
}

// Server wires HTTP routes for the prediction API.
type Server struct {
	healthHandler  *HealthHandler
	predictHandler *PredictHandler
	teamsHandler   *TeamsHandler
}

// Options tune request handling limits.
type Options struct {
	// MaxBatchSize caps matchups per batch request. Zero means the
	// default of 64.
	MaxBatchSize int
	// WorkerCount sets the batch worker pool size. Zero lets the
	// engine pick.
	WorkerCount int
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts Options) *Server {
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 64
	}
	return &Server{
		healthHandler:  NewHealthHandler(deps),
		predictHandler: NewPredictHandler(deps, opts),
		teamsHandler:   NewTeamsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/predict/batch", MetricsMiddleware(s.predictHandler.HandlePredictBatch, "predict_batch"))
}
