package worker_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/okian/rivers/internal/adapters/mq/queue"
	"github.com/okian/rivers/internal/adapters/mq/worker"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	"github.com/okian/rivers/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubPredictor returns a canned prediction and fails one matchup.
type stubPredictor struct {
	failHome types.TeamID
}

func (s *stubPredictor) Predict(
	_ context.Context,
	home, away types.TeamID,
	week, season int,
	_ *model.WeatherContext,
) (model.Prediction, error) {
	if home == s.failHome {
		return model.Prediction{}, errors.New("boom")
	}
	return model.Prediction{Home: home, Away: away, Week: week, Season: season, Winner: home}, nil
}

// mapCollector records results keyed by slot.
type mapCollector struct {
	mu      sync.Mutex
	results map[int]error
	preds   map[int]model.Prediction
	done    chan struct{}
	want    int
}

func newMapCollector(want int) *mapCollector {
	return &mapCollector{
		results: make(map[int]error),
		preds:   make(map[int]model.Prediction),
		done:    make(chan struct{}),
		want:    want,
	}
}

func (c *mapCollector) Collect(seq int, p model.Prediction, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[seq] = err
	c.preds[seq] = p
	if len(c.results) == c.want {
		close(c.done)
	}
}

func TestPool(t *testing.T) {
	Convey("Given a pool draining a closed queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		collector := newMapCollector(3)

		pool := worker.NewPool(2, q, &stubPredictor{failHome: "BAD"}, collector)
		pool.Start(ctx)

		So(q.Enqueue(ctx, queue.Matchup{Seq: 0, Home: "AAA", Away: "BBB", Week: 6, Season: 2025}), ShouldBeTrue)
		So(q.Enqueue(ctx, queue.Matchup{Seq: 1, Home: "BAD", Away: "AAA", Week: 6, Season: 2025}), ShouldBeTrue)
		So(q.Enqueue(ctx, queue.Matchup{Seq: 2, Home: "BBB", Away: "AAA", Week: 6, Season: 2025}), ShouldBeTrue)
		So(q.Close(), ShouldBeNil)

		Convey("When waiting for the collector", func() {
			select {
			case <-collector.done:
			case <-time.After(5 * time.Second):
				t.Fatal("collector timed out")
			}
			pool.Stop()

			Convey("Then every slot should be filled once", func() {
				collector.mu.Lock()
				defer collector.mu.Unlock()
				So(collector.results, ShouldHaveLength, 3)
				So(collector.results[0], ShouldBeNil)
				So(collector.results[2], ShouldBeNil)
				So(collector.preds[0].Winner, ShouldEqual, types.TeamID("AAA"))
			})

			Convey("And the failing matchup should carry its error", func() {
				collector.mu.Lock()
				defer collector.mu.Unlock()
				So(collector.results[1], ShouldNotBeNil)
			})
		})
	})
}
