package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/okian/rivers/internal/app"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// matchupRequest mirrors the JSON schema for POST /predict.
type matchupRequest struct {
	Home    string          `json:"home"`
	Away    string          `json:"away"`
	Week    int             `json:"week"`
	Season  int             `json:"season"`
	Weather *weatherPayload `json:"weather,omitempty"`
}

// weatherPayload is the optional weather block of a matchup request.
type weatherPayload struct {
	TemperatureF  float64 `json:"temperature_f"`
	WindMPH       float64 `json:"wind_mph"`
	Precipitation string  `json:"precipitation"`
	Venue         string  `json:"venue"`
}

// batchRequest mirrors the JSON schema for POST /predict/batch.
type batchRequest struct {
	Matchups []matchupRequest `json:"matchups"`
}

// predictionResponse wraps a prediction with a request id.
type predictionResponse struct {
	PredictionID string           `json:"prediction_id"`
	Prediction   model.Prediction `json:"prediction"`
}

// batchEntryResponse is one slot of a batch response.
type batchEntryResponse struct {
	Home       string            `json:"home"`
	Away       string            `json:"away"`
	Error      string            `json:"error,omitempty"`
	Prediction *model.Prediction `json:"prediction,omitempty"`
}

// batchResponse mirrors the JSON schema of the batch endpoint.
type batchResponse struct {
	BatchID string               `json:"batch_id"`
	Results []batchEntryResponse `json:"results"`
}

func (m *matchupRequest) toAppRequest() (app.Request, error) {
	home, ok := types.ResolveTeam(m.Home)
	if !ok {
		return app.Request{}, errors.New("unknown home team: " + m.Home)
	}
	away, ok := types.ResolveTeam(m.Away)
	if !ok {
		return app.Request{}, errors.New("unknown away team: " + m.Away)
	}
	if home == away {
		return app.Request{}, errors.New("home and away must differ")
	}

	req := app.Request{Home: home, Away: away, Week: m.Week, Season: m.Season}
	if m.Weather != nil {
		req.Weather = &model.WeatherContext{
			TemperatureF:  m.Weather.TemperatureF,
			WindMPH:       m.Weather.WindMPH,
			Precipitation: types.ParsePrecipitation(m.Weather.Precipitation),
			Venue:         types.ParseVenue(m.Weather.Venue),
		}
	}
	return req, nil
}

// PredictHandler serves the single and batch prediction endpoints.
type PredictHandler struct {
	deps Dependencies
	opts Options
}

// NewPredictHandler creates a prediction handler.
func NewPredictHandler(deps Dependencies, opts Options) *PredictHandler {
	return &PredictHandler{deps: deps, opts: opts}
}

// HandlePredict handles POST /predict.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body matchupRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := body.toAppRequest()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.deps.Predict(r.Context(), req)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictionResponse{
		PredictionID: uuid.NewString(),
		Prediction:   p,
	})
}

// HandlePredictBatch handles POST /predict/batch.
func (h *PredictHandler) HandlePredictBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body batchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(body.Matchups) == 0 {
		writeError(w, http.StatusBadRequest, "matchups must not be empty")
		return
	}
	if len(body.Matchups) > h.opts.MaxBatchSize {
		writeError(w, http.StatusBadRequest, "batch exceeds maximum size")
		return
	}

	reqs := make([]app.Request, len(body.Matchups))
	for i := range body.Matchups {
		req, err := body.Matchups[i].toAppRequest()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		reqs[i] = req
	}

	results, err := h.deps.PredictBatch(r.Context(), reqs, h.opts.WorkerCount)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	resp := batchResponse{
		BatchID: uuid.NewString(),
		Results: make([]batchEntryResponse, len(results)),
	}
	for i, res := range results {
		entry := batchEntryResponse{
			Home: string(reqs[i].Home),
			Away: string(reqs[i].Away),
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
		} else {
			p := res.Prediction
			entry.Prediction = &p
		}
		resp.Results[i] = entry
	}

	writeJSON(w, http.StatusOK, resp)
}
