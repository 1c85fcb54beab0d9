package handlers

import (
	"errors"
	"strconv"

	"github.com/mathiaselorm/FlixFinder/internal/recommender"
	"github.com/mathiaselorm/FlixFinder/internal/services"
	"github.com/mathiaselorm/FlixFinder/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RecommendationHandler struct {
	service services.RecommendService
	logger  *logrus.Logger
}

func NewRecommendationHandler(service services.RecommendService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger,
	}
}

// GetRecommendations godoc
// @Summary Personalized movie recommendations
// @Description Ranked movie list for a user. Served by the collaborative model when the user has enough rating history, by content-based genre ranking otherwise.
// @Tags recommendations
// @Produce json
// @Param user_id query int true "User ID (or X-User-ID header)"
// @Param limit query int false "Number of recommendations" default(10)
// @Success 200 {object} utils.StandardResponse "Ranked recommendations"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 503 {object} utils.StandardResponse "Recommendations temporarily unavailable"
// @Router /recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := strconv.ParseUint(c.Query("user_id", c.Get("X-User-ID")), 10, 32)
	if err != nil || userID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "user_id is required")
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	recs, strategy, err := h.service.GetRecommendations(ctx, uint(userID), limit)
	if err != nil {
		if errors.Is(err, recommender.ErrRankingTimeout) {
			return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Recommendations temporarily unavailable")
		}
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to get recommendations")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve recommendations")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Recommendations retrieved successfully", fiber.Map{
		"strategy":        strategy,
		"recommendations": recs,
	})
}

// PredictScore godoc
// @Summary Predict a single rating
// @Description Estimated score for a (user, movie) pair from the current trained model
// @Tags recommendations
// @Produce json
// @Param user_id query int true "User ID"
// @Param movie_id query int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Predicted score"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "No trained model available"
// @Router /recommendations/predict [get]
func (h *RecommendationHandler) PredictScore(c *fiber.Ctx) error {
	ctx := c.Context()

	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "user_id is required")
	}
	movieID, err := strconv.ParseUint(c.Query("movie_id"), 10, 32)
	if err != nil || movieID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "movie_id is required")
	}

	score, err := h.service.PredictOne(ctx, uint(userID), uint(movieID))
	if err != nil {
		if errors.Is(err, recommender.ErrModelNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "No trained model available")
		}
		h.logger.WithError(err).Error("Failed to predict score")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to predict score")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Score predicted successfully", fiber.Map{
		"user_id":         userID,
		"movie_id":        movieID,
		"predicted_score": score,
	})
}

// TrainModel godoc
// @Summary Train the recommendation model
// @Description Synchronously retrain the matrix-factorization model from all stored ratings and persist it
// @Tags recommendations
// @Produce json
// @Success 200 {object} utils.StandardResponse "Training completed"
// @Failure 422 {object} utils.StandardResponse "Insufficient data to train"
// @Failure 500 {object} utils.StandardResponse "Training failed"
// @Router /recommendations/train [post]
func (h *RecommendationHandler) TrainModel(c *fiber.Ctx) error {
	ctx := c.Context()

	log, err := h.service.Train(ctx, "manual")
	if err != nil {
		if errors.Is(err, recommender.ErrInsufficientData) {
			return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Insufficient data: no ratings to train on")
		}
		h.logger.WithError(err).Error("Model training failed")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Model training failed")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Model trained successfully", log)
}

// GetLastTrainingLog godoc
// @Summary Last training run
// @Description Outcome of the most recent model training run
// @Tags recommendations
// @Produce json
// @Success 200 {object} utils.StandardResponse "Last training log"
// @Failure 404 {object} utils.StandardResponse "No training has run yet"
// @Router /recommendations/train/last-log [get]
func (h *RecommendationHandler) GetLastTrainingLog(c *fiber.Ctx) error {
	log, err := h.service.GetLastTrainingLog(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get last training log")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve training log")
	}
	if log == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No training has run yet")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Training log retrieved successfully", log)
}
