package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/rivers/internal/adapters/http/api"
	"github.com/okian/rivers/internal/app"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// stubDeps fakes the engine behind the handlers.
type stubDeps struct {
	ready   bool
	predict func(req app.Request) (model.Prediction, error)
}

func (s *stubDeps) Predict(_ context.Context, req app.Request) (model.Prediction, error) {
	return s.predict(req)
}

func (s *stubDeps) PredictBatch(_ context.Context, reqs []app.Request, _ int) ([]app.BatchResult, error) {
	results := make([]app.BatchResult, len(reqs))
	for i, req := range reqs {
		p, err := s.predict(req)
		results[i] = app.BatchResult{Prediction: p, Err: err}
	}
	return results, nil
}

func (s *stubDeps) Teams(_ context.Context) []types.TeamID {
	return []types.TeamID{"BUF", "MIA"}
}

func (s *stubDeps) Ready(_ context.Context) bool { return s.ready }

func okPrediction(req app.Request) (model.Prediction, error) {
	return model.Prediction{
		Home: req.Home, Away: req.Away, Week: req.Week, Season: req.Season,
		HomeScore: 60, AwayScore: 40, Winner: req.Home, Confidence: 0.9,
	}, nil
}

func newTestServer(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, api.Options{MaxBatchSize: 2}).Register(context.Background(), mux)
	return mux
}

func TestHandlePredict(t *testing.T) {
	Convey("Given the prediction API over a stub engine", t, func() {
		deps := &stubDeps{ready: true, predict: okPrediction}
		mux := newTestServer(deps)

		post := func(path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When posting a valid matchup", func() {
			rec := post("/predict", `{"home":"BUF","away":"MIA","week":6,"season":2025}`)

			Convey("Then the prediction should come back with an id", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					PredictionID string           `json:"prediction_id"`
					Prediction   model.Prediction `json:"prediction"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.PredictionID, ShouldNotBeEmpty)
				So(resp.Prediction.Winner, ShouldEqual, types.TeamID("BUF"))
			})
		})

		Convey("When posting a full franchise name", func() {
			rec := post("/predict", `{"home":"Buffalo Bills","away":"MIA","week":6,"season":2025}`)

			Convey("Then the alias should resolve", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When posting malformed input", func() {
			Convey("Then bad JSON should get a 400", func() {
				So(post("/predict", `{`).Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("And an unknown team should get a 400", func() {
				So(post("/predict", `{"home":"ZZZ","away":"MIA","week":6,"season":2025}`).Code, ShouldEqual, http.StatusBadRequest)
			})

			Convey("And a self-matchup should get a 400", func() {
				So(post("/predict", `{"home":"BUF","away":"BUF","week":6,"season":2025}`).Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the engine reports its boundary errors", func() {
			check := func(err error, wantStatus int, wantCode string) {
				deps.predict = func(app.Request) (model.Prediction, error) {
					return model.Prediction{}, fmt.Errorf("wrapped: %w", err)
				}
				rec := post("/predict", `{"home":"BUF","away":"MIA","week":6,"season":2025}`)
				So(rec.Code, ShouldEqual, wantStatus)
				var resp struct {
					Code string `json:"code"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, wantCode)
			}

			Convey("Then not-ready should map to 503", func() {
				check(app.ErrNotReady, http.StatusServiceUnavailable, "not_ready")
			})
			Convey("Then unknown-team should map to 404", func() {
				check(app.ErrUnknownTeam, http.StatusNotFound, "unknown_team")
			})
			Convey("Then data-corruption should map to 500", func() {
				check(app.ErrDataCorruption, http.StatusInternalServerError, "data_corruption")
			})
			Convey("Then cancelled should map to 499", func() {
				check(app.ErrCancelled, 499, "cancelled")
			})
		})

		Convey("When posting a batch", func() {
			rec := post("/predict/batch", `{"matchups":[
				{"home":"BUF","away":"MIA","week":6,"season":2025},
				{"home":"MIA","away":"BUF","week":6,"season":2025}
			]}`)

			Convey("Then results should come back in order", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					BatchID string `json:"batch_id"`
					Results []struct {
						Home string `json:"home"`
					} `json:"results"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.BatchID, ShouldNotBeEmpty)
				So(resp.Results, ShouldHaveLength, 2)
				So(resp.Results[0].Home, ShouldEqual, "BUF")
				So(resp.Results[1].Home, ShouldEqual, "MIA")
			})
		})

		Convey("When a batch exceeds the size limit", func() {
			rec := post("/predict/batch", `{"matchups":[
				{"home":"BUF","away":"MIA","week":6,"season":2025},
				{"home":"MIA","away":"BUF","week":6,"season":2025},
				{"home":"BUF","away":"MIA","week":6,"season":2025}
			]}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestHandleHealthAndTeams(t *testing.T) {
	Convey("Given the API over a stub engine", t, func() {
		deps := &stubDeps{ready: true, predict: okPrediction}
		mux := newTestServer(deps)

		get := func(path string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When the engine is ready", func() {
			rec := get("/healthz")

			Convey("Then health should report 200", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"ready":true`)
			})
		})

		Convey("When the engine is not ready", func() {
			deps.ready = false
			rec := get("/healthz")

			Convey("Then health should report 503", func() {
				So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When listing teams", func() {
			rec := get("/teams")

			Convey("Then ids and full names should be returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"id":"BUF"`)
				So(rec.Body.String(), ShouldContainSubstring, `"name":"Buffalo Bills"`)
			})
		})
	})
}
