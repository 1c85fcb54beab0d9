package handlers

import (
	"errors"
	"strconv"

	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/repository"
	"github.com/mathiaselorm/FlixFinder/internal/services"
	"github.com/mathiaselorm/FlixFinder/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary Get all movies
// @Description Get list of all movies with pagination, search, and sorting
// @Tags movies
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param search query string false "Search by title or overview"
// @Param sort_by query string false "Sort by field (id, title, release_date, average_rating, created_at, updated_at)" default(updated_at)
// @Param order query string false "Sort order (ASC/DESC)" default(DESC)
// @Success 200 {object} utils.StandardResponse "List of movies"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	ctx := c.Context()

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := c.Query("search", "")
	sortBy := c.Query("sort_by", "updated_at")
	order := c.Query("order", "DESC")

	movies, total, err := h.service.GetAllMovies(ctx, page, limit, search, sortBy, order)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get movies")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve movies")
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a single movie by its ID
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	movie, err := h.service.GetMovieByID(ctx, uint(id))
	if err != nil {
		h.logger.WithError(err).WithField("id", id).Error("Failed to get movie")
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// CreateMovie godoc
// @Summary Create a new movie
// @Description Create a new movie entry with its genre tags
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie request object"
// @Success 201 {object} utils.StandardResponse "Movie created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	ctx := c.Context()

	var req MovieRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	movie := &models.Movie{
		Title:       req.Title,
		Overview:    req.Overview,
		ReleaseDate: req.ReleaseDate,
		PosterURL:   req.PosterURL,
	}
	// NULL, not "", so movies without a MovieLens id never collide under the
	// unique index.
	if req.MovieLensID != "" {
		movie.MovieLensID = &req.MovieLensID
	}

	if err := h.service.CreateMovie(ctx, movie, req.Genres); err != nil {
		h.logger.WithError(err).Error("Failed to create movie")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully", movie)
}

// RateMovie godoc
// @Summary Rate a movie
// @Description Submit or replace the user's rating for a movie. The movie's average rating is updated in the same transaction.
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param rating body RatingRequest true "Rating request object"
// @Success 200 {object} utils.StandardResponse "Rating saved"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/rating [put]
func (h *MovieHandler) RateMovie(c *fiber.Ctx) error {
	ctx := c.Context()

	movieID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.UserID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "user_id is required")
	}

	rating, err := h.service.RateMovie(ctx, req.UserID, uint(movieID), req.Score)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":  req.UserID,
			"movie_id": movieID,
		}).Error("Failed to save rating")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Rating saved successfully", rating)
}

// DeleteRating godoc
// @Summary Remove a rating
// @Description Delete the user's rating for a movie and recompute the movie's average rating
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} utils.StandardResponse "Rating removed"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Rating not found"
// @Router /movies/{id}/rating [delete]
func (h *MovieHandler) DeleteRating(c *fiber.Ctx) error {
	ctx := c.Context()

	movieID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "user_id is required")
	}

	if err := h.service.RemoveRating(ctx, uint(userID), uint(movieID)); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Rating not found")
		}
		h.logger.WithError(err).Error("Failed to delete rating")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete rating")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Rating removed successfully", nil)
}

// GetGenres godoc
// @Summary List genres
// @Description Get all genres in the catalog
// @Tags genres
// @Produce json
// @Success 200 {object} utils.StandardResponse "List of genres"
// @Router /genres [get]
func (h *MovieHandler) GetGenres(c *fiber.Ctx) error {
	genres, err := h.service.GetGenres(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get genres")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve genres")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Genres retrieved successfully", genres)
}

// GetPreferredGenres godoc
// @Summary Get a user's preferred genres
// @Tags preferences
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.StandardResponse "Preferred genres"
// @Failure 400 {object} utils.StandardResponse "Invalid user ID"
// @Router /users/{id}/preferred-genres [get]
func (h *MovieHandler) GetPreferredGenres(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	genres, err := h.service.GetPreferredGenres(c.Context(), uint(userID))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get preferred genres")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve preferred genres")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Preferred genres retrieved successfully", genres)
}

// SetPreferredGenres godoc
// @Summary Replace a user's preferred genres
// @Description Set the genre names the content-based fallback ranks against
// @Tags preferences
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param genres body PreferredGenresRequest true "Preferred genre names"
// @Success 200 {object} utils.StandardResponse "Preferences saved"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Router /users/{id}/preferred-genres [put]
func (h *MovieHandler) SetPreferredGenres(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req PreferredGenresRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.service.SetPreferredGenres(c.Context(), uint(userID), req.Genres); err != nil {
		h.logger.WithError(err).Error("Failed to set preferred genres")
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Preferred genres saved successfully", nil)
}
