// Package worker defines the worker pool that drains the batch
// matchup queue through the prediction engine.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/rivers/internal/adapters/mq/queue"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	"github.com/okian/rivers/pkg/logger"
	"github.com/okian/rivers/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
)

// Predictor scores one matchup. The app layer adapts its engine onto
// this flat signature.
type Predictor interface {
	Predict(ctx context.Context, home, away types.TeamID, week, season int, weather *model.WeatherContext) (model.Prediction, error)
}

// Collector receives each matchup's result, keyed by its batch slot.
// Implementations must be safe for concurrent use.
type Collector interface {
	Collect(seq int, p model.Prediction, err error)
}

// Queue defines how workers receive matchups.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Matchup
}

// Worker drains matchups and writes predictions to the collector.
type Worker struct {
	queue     Queue
	predictor Predictor
	collector Collector
	name      string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(q Queue, predictor Predictor, collector Collector, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		predictor: predictor,
		collector: collector,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop until ctx is canceled or the queue
// closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	matchups := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case m, ok := <-matchups:
			if !ok {
				// Channel closed, worker should stop
				return
			}
			w.process(ctx, m)
		}
	}
}

// Shutdown gracefully stops the worker. Safe to call after Stop.
func (w *Worker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
		// Already signalled
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process scores a single matchup and hands the result to the
// collector. Errors are per-slot; one bad matchup never sinks the
// batch.
func (w *Worker) process(ctx context.Context, m queue.Matchup) {
	p, err := w.predictor.Predict(ctx, m.Home, m.Away, m.Week, m.Season, m.Weather)
	if err != nil {
		w.logger.Warn(ctx, "batch prediction failed",
			logger.String("home", string(m.Home)),
			logger.String("away", string(m.Away)),
			logger.Error(err),
		)
	}
	w.collector.Collect(m.Seq, p, err)
}

// Pool manages multiple workers over one queue.
type Pool struct {
	workers []*Worker

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, predictor Predictor, collector Collector) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(q, predictor, collector, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		select {
		case <-w.shutdown:
			// Already signalled
		default:
			close(w.shutdown)
		}
	}

	for _, w := range p.workers {
		select {
		case <-w.done:
			// Worker finished
		case <-time.After(workerShutdownTimeout):
			// Worker timeout
		}
	}
}

// Shutdown gracefully shuts down the entire pool, closing the queue
// first so no new matchups arrive.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.workers[0].queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}
