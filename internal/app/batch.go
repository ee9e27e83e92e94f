package app

import (
	"context"
	"sync"

	matchupqueue "github.com/okian/rivers/internal/adapters/mq/queue"
	workerpool "github.com/okian/rivers/internal/adapters/mq/worker"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// predictorAdapter adapts the Engine to the worker.Predictor interface.
type predictorAdapter struct {
	engine *Engine
}

func (a *predictorAdapter) Predict(
	ctx context.Context,
	home, away types.TeamID,
	week, season int,
	weather *model.WeatherContext,
) (model.Prediction, error) {
	return a.engine.Predict(ctx, Request{
		Home:    home,
		Away:    away,
		Week:    week,
		Season:  season,
		Weather: weather,
	})
}

// BatchResult pairs one batch slot with its prediction or error.
type BatchResult struct {
	Prediction model.Prediction
	Err        error
}

// batchCollector gathers worker results into their batch slots and
// signals when all slots are filled.
type batchCollector struct {
	mu      sync.Mutex
	results []BatchResult
	pending int
	done    chan struct{}
}

func newBatchCollector(n int) *batchCollector {
	return &batchCollector{
		results: make([]BatchResult, n),
		pending: n,
		done:    make(chan struct{}),
	}
}

func (c *batchCollector) Collect(seq int, p model.Prediction, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < 0 || seq >= len(c.results) || c.pending == 0 {
		return
	}
	c.results[seq] = BatchResult{Prediction: p, Err: err}
	c.pending--
	if c.pending == 0 {
		close(c.done)
	}
}

// PredictBatch scores a slate of matchups concurrently over one
// snapshot. Results come back in request order; each slot carries its
// own error so one bad matchup never sinks the batch.
func (e *Engine) PredictBatch(ctx context.Context, reqs []Request, workerCount int) ([]BatchResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	q := matchupqueue.NewInMemoryQueue(matchupqueue.WithCapacity(len(reqs)))
	collector := newBatchCollector(len(reqs))

	pool := workerpool.NewPool(workerCount, q, &predictorAdapter{engine: e}, collector)

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool.Start(poolCtx)
	defer pool.Stop()

	for i, req := range reqs {
		ok := q.Enqueue(ctx, matchupqueue.Matchup{
			Seq:     i,
			Home:    req.Home,
			Away:    req.Away,
			Week:    req.Week,
			Season:  req.Season,
			Weather: req.Weather,
		})
		if !ok {
			collector.Collect(i, model.Prediction{}, ErrCancelled)
		}
	}
	_ = q.Close()

	select {
	case <-collector.done:
		return collector.results, nil
	case <-ctx.Done():
		return nil, ErrCancelled
	}
}
