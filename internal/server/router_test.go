package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/diabetect-backend/internal/cache"
	"github.com/yungbote/diabetect-backend/internal/handlers"
	"github.com/yungbote/diabetect-backend/internal/logger"
	"github.com/yungbote/diabetect-backend/internal/ml"
	"github.com/yungbote/diabetect-backend/internal/services"
	"github.com/yungbote/diabetect-backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func trainedModelDir(t *testing.T) string {
	t.Helper()
	rng := rand.New(rand.NewSource(3))
	records := make([]types.HealthRecord, 120)
	for i := range records {
		outcome := i % 2
		records[i] = types.HealthRecord{
			Pregnancies:              float64(rng.Intn(8)),
			Glucose:                  95 + 55*float64(outcome) + rng.Float64()*10,
			BloodPressure:            70 + rng.Float64()*15,
			SkinThickness:            22 + rng.Float64()*12,
			Insulin:                  85 + 80*float64(outcome) + rng.Float64()*25,
			BMI:                      25 + 9*float64(outcome) + rng.Float64()*3,
			DiabetesPedigreeFunction: rng.Float64(),
			Age:                      26 + rng.Float64()*25,
			Outcome:                  outcome,
		}
	}
	res, err := ml.NewTrainer(logger.NewNop(), 42).Train(records)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	dir := t.TempDir()
	if err := ml.SaveArtifacts(dir, res.Pipelines, res.Registry); err != nil {
		t.Fatalf("SaveArtifacts() error = %v", err)
	}
	return dir
}

func testRouter(t *testing.T, modelDir string) *gin.Engine {
	t.Helper()
	log := logger.NewNop()
	c := cache.New(nil, log, time.Hour, time.Hour)
	// Degraded-path tests pass an empty dir on purpose; the load error is
	// expected there, and the loaded-path tests assert on /health instead.
	predictionService, _ := services.NewPredictionService(modelDir, c, nil, log)
	statsService := services.NewStatsService(nil, log)
	return NewRouter(RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		HealthHandler:  handlers.NewHealthHandler(predictionService),
		MetricsHandler: handlers.NewMetricsHandler(predictionService),
		PredictHandler: handlers.NewPredictHandler(predictionService),
		StatsHandler:   handlers.NewStatsHandler(statsService),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRootIndex(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", w.Code)
	}
}

func TestHealthLoaded(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", w.Code)
	}
	var body handlers.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if !body.OK || body.BestModel == "" {
		t.Fatalf("health body = %+v, want ok with a best model", body)
	}
}

func TestHealthDegraded(t *testing.T) {
	router := testRouter(t, t.TempDir())
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /health status = %d, want 503", w.Code)
	}
	var body handlers.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health body: %v", err)
	}
	if body.OK {
		t.Fatal("degraded health must report ok=false")
	}
}

func TestPredictSingleField(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodPost, "/predict", []byte(`{"Glucose": 150}`))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /predict status = %d, body = %s", w.Code, w.Body.String())
	}
	var res types.PredictionResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode prediction: %v", err)
	}
	if res.Probability < 0 || res.Probability > 1 {
		t.Fatalf("prob %v out of range", res.Probability)
	}
	if res.Label != "Positive" && res.Label != "Negative" {
		t.Fatalf("unexpected label %q", res.Label)
	}
}

func TestPredictIgnoresUnknownFields(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodPost, "/predict", []byte(`{"Glucose": 150, "FavoriteColor": "blue"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("POST /predict status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestPredictEmptyBody(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodPost, "/predict", []byte(`{}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /predict status = %d, want 400", w.Code)
	}
	var env handlers.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Error.Code != "no_features" {
		t.Fatalf("error code = %q, want no_features", env.Error.Code)
	}
}

func TestPredictNonNumericField(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodPost, "/predict", []byte(`{"Glucose": "high"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("POST /predict status = %d, want 400", w.Code)
	}
	var env handlers.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Error.Code != "invalid_request" {
		t.Fatalf("error code = %q, want invalid_request", env.Error.Code)
	}
}

func TestPredictDegraded(t *testing.T) {
	router := testRouter(t, t.TempDir())
	w := doJSON(t, router, http.MethodPost, "/predict", []byte(`{"Glucose": 150}`))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("POST /predict status = %d, want 503", w.Code)
	}
}

func TestMetricsDocument(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", w.Code)
	}
	var reg ml.Registry
	if err := json.Unmarshal(w.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if err := reg.Validate(); err != nil {
		t.Fatalf("served registry invalid: %v", err)
	}

	// Health and metrics must agree on the selected model.
	hw := doJSON(t, router, http.MethodGet, "/health", nil)
	var health handlers.HealthResponse
	if err := json.Unmarshal(hw.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if reg.ModelNames[reg.BestModelName] != health.BestModel {
		t.Fatalf("metrics best %q != health best %q", reg.ModelNames[reg.BestModelName], health.BestModel)
	}
}

func TestMetricsDegraded(t *testing.T) {
	router := testRouter(t, t.TempDir())
	w := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /metrics status = %d, want 503", w.Code)
	}
}

func TestStatsWithoutStore(t *testing.T) {
	router := testRouter(t, trainedModelDir(t))
	w := doJSON(t, router, http.MethodGet, "/api/stats", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /api/stats status = %d, want 503", w.Code)
	}
	var env handlers.ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if env.Error.Code != "stats_unavailable" {
		t.Fatalf("error code = %q, want stats_unavailable", env.Error.Code)
	}
}
