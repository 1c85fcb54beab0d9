package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/recommender"

	"github.com/sirupsen/logrus"
)

type stubRatingRepo struct {
	snapshot []recommender.Rating
	count    int64
	ratedIDs []uint
}

func (s *stubRatingRepo) Upsert(context.Context, uint, uint, float64) (*models.Rating, error) {
	return nil, nil
}
func (s *stubRatingRepo) Delete(context.Context, uint, uint) error { return nil }
func (s *stubRatingRepo) Snapshot(context.Context) ([]recommender.Rating, error) {
	return s.snapshot, nil
}
func (s *stubRatingRepo) CountByUser(context.Context, uint) (int64, error) { return s.count, nil }
func (s *stubRatingRepo) RatedMovieIDs(context.Context, uint) ([]uint, error) {
	return s.ratedIDs, nil
}

type stubMovieRepo struct {
	mu   sync.Mutex
	logs []*models.TrainingLog
}

func (s *stubMovieRepo) Create(context.Context, *models.Movie) error   { return nil }
func (s *stubMovieRepo) Update(context.Context, *models.Movie) error   { return nil }
func (s *stubMovieRepo) Delete(context.Context, uint) error            { return nil }
func (s *stubMovieRepo) FindByID(context.Context, uint) (*models.Movie, error) {
	return nil, nil
}
func (s *stubMovieRepo) FindAll(context.Context, int, int, string, string, string) ([]models.Movie, int64, error) {
	return nil, 0, nil
}
func (s *stubMovieRepo) SlugExists(context.Context, string, uint) (bool, error) {
	return false, nil
}
func (s *stubMovieRepo) AllMovieIDs(context.Context) ([]uint, error) { return nil, nil }
func (s *stubMovieRepo) MoviesByIDs(context.Context, []uint) (map[uint]recommender.CatalogMovie, error) {
	return nil, nil
}
func (s *stubMovieRepo) TopByAverageRating(context.Context, int) ([]recommender.CatalogMovie, error) {
	return nil, nil
}
func (s *stubMovieRepo) TopByGenreMatch(context.Context, []string, int) ([]recommender.CatalogMovie, error) {
	return nil, nil
}

func (s *stubMovieRepo) CreateTrainingLog(_ context.Context, log *models.TrainingLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *stubMovieRepo) GetLastTrainingLog(context.Context) (*models.TrainingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.logs) == 0 {
		return nil, nil
	}
	return s.logs[len(s.logs)-1], nil
}

type stubObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (s *stubObjects) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	if s.objects == nil {
		s.objects = make(map[string][]byte)
	}
	s.objects[key] = data
	return nil
}

func (s *stubObjects) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, recommender.ErrModelNotFound
	}
	return data, nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTrainingService(t *testing.T, ratingRepo *stubRatingRepo, movieRepo *stubMovieRepo, objects *stubObjects) (RecommendService, *recommender.Store) {
	t.Helper()

	trainer := recommender.NewTrainer(recommender.TrainerConfig{
		Factors: 10,
		Epochs:  5,
	})
	store := recommender.NewStore(filepath.Join(t.TempDir(), "model.json"), "models/model.json", objects, discardLogger())
	predictor := recommender.NewPredictor(2)
	orchestrator := recommender.NewOrchestrator(ratingRepo, stubPrefs{}, movieRepo, store, predictor, recommender.OrchestratorConfig{
		HistoryThreshold: 5,
		RankingTimeout:   time.Second,
	}, discardLogger())

	return NewRecommendService(ratingRepo, movieRepo, trainer, store, orchestrator, discardLogger()), store
}

type stubPrefs struct{}

func (stubPrefs) PreferredGenreNames(context.Context, uint) ([]string, error) { return nil, nil }

func TestTrainPersistsModelAndLogsRun(t *testing.T) {
	ratingRepo := &stubRatingRepo{
		snapshot: []recommender.Rating{
			{UserID: 1, MovieID: 1, Score: 5.0},
			{UserID: 1, MovieID: 2, Score: 1.0},
			{UserID: 2, MovieID: 1, Score: 4.5},
		},
	}
	movieRepo := &stubMovieRepo{}
	svc, store := newTrainingService(t, ratingRepo, movieRepo, &stubObjects{})

	log, err := svc.Train(context.Background(), "manual")
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if log.Status != "success" {
		t.Errorf("Status = %q, want success", log.Status)
	}
	if log.TriggerType != "manual" {
		t.Errorf("TriggerType = %q, want manual", log.TriggerType)
	}
	if log.RatingCount != 3 || log.UserCount != 2 || log.MovieCount != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/2/2", log.RatingCount, log.UserCount, log.MovieCount)
	}

	model, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after training: %v", err)
	}
	if model.Version != log.ModelVersion {
		t.Errorf("persisted version %q != logged version %q", model.Version, log.ModelVersion)
	}

	last, err := svc.GetLastTrainingLog(context.Background())
	if err != nil {
		t.Fatalf("GetLastTrainingLog: %v", err)
	}
	if last == nil || last.ModelVersion != log.ModelVersion {
		t.Errorf("last log = %+v, want the run just recorded", last)
	}
}

func TestTrainNoRatingsKeepsPriorModel(t *testing.T) {
	ratingRepo := &stubRatingRepo{
		snapshot: []recommender.Rating{{UserID: 1, MovieID: 1, Score: 4.0}},
	}
	movieRepo := &stubMovieRepo{}
	svc, store := newTrainingService(t, ratingRepo, movieRepo, &stubObjects{})

	if _, err := svc.Train(context.Background(), "manual"); err != nil {
		t.Fatalf("Train: %v", err)
	}
	prior, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Second run over an emptied rating store fails without touching the
	// persisted artifact.
	ratingRepo.snapshot = nil
	_, err = svc.Train(context.Background(), "manual")
	if !errors.Is(err, recommender.ErrInsufficientData) {
		t.Fatalf("Train error = %v, want ErrInsufficientData", err)
	}

	store.Invalidate()
	kept, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after failed run: %v", err)
	}
	if kept.Version != prior.Version {
		t.Errorf("model version changed across a failed run: %q -> %q", prior.Version, kept.Version)
	}

	last, err := svc.GetLastTrainingLog(context.Background())
	if err != nil {
		t.Fatalf("GetLastTrainingLog: %v", err)
	}
	if last == nil || last.Status != "failed" {
		t.Errorf("last log = %+v, want a failed run record", last)
	}
	if last != nil && last.ErrorMessage == "" {
		t.Error("failed run recorded without an error message")
	}
}

func TestTrainStorageFailureRecorded(t *testing.T) {
	ratingRepo := &stubRatingRepo{
		snapshot: []recommender.Rating{{UserID: 1, MovieID: 1, Score: 4.0}},
	}
	movieRepo := &stubMovieRepo{}
	objects := &stubObjects{putErr: errors.New("connection refused")}
	svc, _ := newTrainingService(t, ratingRepo, movieRepo, objects)

	_, err := svc.Train(context.Background(), "manual")
	if !errors.Is(err, recommender.ErrStorage) {
		t.Fatalf("Train error = %v, want ErrStorage", err)
	}

	last, err := svc.GetLastTrainingLog(context.Background())
	if err != nil {
		t.Fatalf("GetLastTrainingLog: %v", err)
	}
	if last == nil || last.Status != "failed" {
		t.Errorf("last log = %+v, want a failed run record", last)
	}
}
