package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/recommender"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type stubRecommendService struct {
	recs     []recommender.Recommendation
	strategy string
	recsErr  error

	score      float64
	predictErr error

	trainLog *models.TrainingLog
	trainErr error

	lastLog    *models.TrainingLog
	lastLogErr error

	trainCalls int
}

func (s *stubRecommendService) GetRecommendations(context.Context, uint, int) ([]recommender.Recommendation, string, error) {
	return s.recs, s.strategy, s.recsErr
}

func (s *stubRecommendService) PredictOne(context.Context, uint, uint) (float64, error) {
	return s.score, s.predictErr
}

func (s *stubRecommendService) Train(context.Context, string) (*models.TrainingLog, error) {
	s.trainCalls++
	return s.trainLog, s.trainErr
}

func (s *stubRecommendService) GetLastTrainingLog(context.Context) (*models.TrainingLog, error) {
	return s.lastLog, s.lastLogErr
}

func newRecommendationApp(service *stubRecommendService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	h := NewRecommendationHandler(service, logger)
	app := fiber.New()
	app.Get("/recommendations", h.GetRecommendations)
	app.Get("/recommendations/predict", h.PredictScore)
	app.Post("/recommendations/train", h.TrainModel)
	app.Get("/recommendations/train/last-log", h.GetLastTrainingLog)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestGetRecommendationsOK(t *testing.T) {
	service := &stubRecommendService{
		recs: []recommender.Recommendation{
			{MovieID: 3, Title: "Three", Score: 4.7},
			{MovieID: 1, Title: "One", Score: 4.2},
		},
		strategy: recommender.StrategyCollaborative,
	}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodGet, "/recommendations?user_id=7&limit=2", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T, want object", body["data"])
	}
	if data["strategy"] != recommender.StrategyCollaborative {
		t.Errorf("strategy = %v, want %q", data["strategy"], recommender.StrategyCollaborative)
	}
	recs, ok := data["recommendations"].([]interface{})
	if !ok || len(recs) != 2 {
		t.Errorf("recommendations = %v, want 2 entries", data["recommendations"])
	}
}

func TestGetRecommendationsUserIDHeader(t *testing.T) {
	service := &stubRecommendService{strategy: recommender.StrategyContentBased}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	req.Header.Set("X-User-ID", "7")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetRecommendationsMissingUserID(t *testing.T) {
	app := newRecommendationApp(&stubRecommendService{})

	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetRecommendationsTimeout(t *testing.T) {
	service := &stubRecommendService{recsErr: recommender.ErrRankingTimeout}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodGet, "/recommendations?user_id=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}

func TestPredictScoreOK(t *testing.T) {
	service := &stubRecommendService{score: 3.84}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/predict?user_id=7&movie_id=42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	if data["predicted_score"] != 3.84 {
		t.Errorf("predicted_score = %v, want 3.84", data["predicted_score"])
	}
}

func TestPredictScoreNoModel(t *testing.T) {
	service := &stubRecommendService{predictErr: recommender.ErrModelNotFound}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/predict?user_id=7&movie_id=42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPredictScoreMissingMovieID(t *testing.T) {
	app := newRecommendationApp(&stubRecommendService{})

	req := httptest.NewRequest(http.MethodGet, "/recommendations/predict?user_id=7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestTrainModelOK(t *testing.T) {
	service := &stubRecommendService{
		trainLog: &models.TrainingLog{Status: "success", ModelVersion: "v1", TrainRMSE: 0.63},
	}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodPost, "/recommendations/train", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if service.trainCalls != 1 {
		t.Errorf("Train calls = %d, want 1", service.trainCalls)
	}
}

func TestTrainModelInsufficientData(t *testing.T) {
	service := &stubRecommendService{trainErr: recommender.ErrInsufficientData}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodPost, "/recommendations/train", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestGetLastTrainingLogEmpty(t *testing.T) {
	app := newRecommendationApp(&stubRecommendService{})

	req := httptest.NewRequest(http.MethodGet, "/recommendations/train/last-log", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetLastTrainingLogOK(t *testing.T) {
	service := &stubRecommendService{
		lastLog: &models.TrainingLog{Status: "success", ModelVersion: "v2"},
	}
	app := newRecommendationApp(service)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/train/last-log", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	if data["model_version"] != "v2" {
		t.Errorf("model_version = %v, want v2", data["model_version"])
	}
}
