package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/recommender"
	"github.com/mathiaselorm/FlixFinder/internal/repository"

	"github.com/sirupsen/logrus"
)

type RecommendService interface {
	GetRecommendations(ctx context.Context, userID uint, n int) ([]recommender.Recommendation, string, error)
	PredictOne(ctx context.Context, userID, movieID uint) (float64, error)
	// Train runs a full training pass synchronously and records the outcome.
	Train(ctx context.Context, trigger string) (*models.TrainingLog, error)
	GetLastTrainingLog(ctx context.Context) (*models.TrainingLog, error)
}

type recommendService struct {
	ratingRepo   repository.RatingRepository
	movieRepo    repository.MovieRepository
	trainer      *recommender.Trainer
	store        *recommender.Store
	orchestrator *recommender.Orchestrator
	logger       *logrus.Logger

	// Training is heavyweight and infrequent; concurrent triggers queue up
	// rather than racing on the persisted artifact.
	trainMu sync.Mutex
}

func NewRecommendService(
	ratingRepo repository.RatingRepository,
	movieRepo repository.MovieRepository,
	trainer *recommender.Trainer,
	store *recommender.Store,
	orchestrator *recommender.Orchestrator,
	logger *logrus.Logger,
) RecommendService {
	return &recommendService{
		ratingRepo:   ratingRepo,
		movieRepo:    movieRepo,
		trainer:      trainer,
		store:        store,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func (s *recommendService) GetRecommendations(ctx context.Context, userID uint, n int) ([]recommender.Recommendation, string, error) {
	if n <= 0 {
		n = 10
	}
	return s.orchestrator.Recommend(ctx, userID, n)
}

func (s *recommendService) PredictOne(ctx context.Context, userID, movieID uint) (float64, error) {
	return s.orchestrator.PredictOne(ctx, userID, movieID)
}

func (s *recommendService) Train(ctx context.Context, trigger string) (*models.TrainingLog, error) {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	start := time.Now()

	snapshot, err := s.ratingRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ratings: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"trigger": trigger,
		"ratings": len(snapshot),
	}).Info("Model training started")

	model, err := s.trainer.Train(snapshot)
	if err != nil {
		// Training failed before anything was persisted; the previously saved
		// model stays intact.
		s.recordFailure(ctx, trigger, int64(len(snapshot)), start, err)
		return nil, err
	}

	if err := s.store.Save(ctx, model); err != nil {
		s.recordFailure(ctx, trigger, int64(len(snapshot)), start, err)
		return nil, err
	}

	log := &models.TrainingLog{
		TriggerType:  trigger,
		Status:       "success",
		ModelVersion: model.Version,
		RatingCount:  model.RatingCount,
		UserCount:    len(model.UserBias),
		MovieCount:   len(model.ItemBias),
		TrainRMSE:    model.TrainRMSE,
		DurationMs:   time.Since(start).Milliseconds(),
		TrainedAt:    model.TrainedAt,
	}
	if err := s.movieRepo.CreateTrainingLog(ctx, log); err != nil {
		s.logger.WithError(err).Warn("Failed to record training log")
	}

	s.logger.WithFields(logrus.Fields{
		"version":  model.Version,
		"users":    log.UserCount,
		"movies":   log.MovieCount,
		"rmse":     log.TrainRMSE,
		"duration": time.Since(start),
	}).Info("Model training completed")
	return log, nil
}

func (s *recommendService) recordFailure(ctx context.Context, trigger string, ratings int64, start time.Time, cause error) {
	log := &models.TrainingLog{
		TriggerType:  trigger,
		Status:       "failed",
		RatingCount:  ratings,
		DurationMs:   time.Since(start).Milliseconds(),
		ErrorMessage: cause.Error(),
		TrainedAt:    time.Now().UTC(),
	}
	if err := s.movieRepo.CreateTrainingLog(ctx, log); err != nil {
		s.logger.WithError(err).Warn("Failed to record training log")
	}
	s.logger.WithError(cause).WithField("trigger", trigger).Error("Model training failed")
}

func (s *recommendService) GetLastTrainingLog(ctx context.Context) (*models.TrainingLog, error) {
	return s.movieRepo.GetLastTrainingLog(ctx)
}
