package routes

import (
	"github.com/mathiaselorm/FlixFinder/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, movieHandler *handlers.MovieHandler, recHandler *handlers.RecommendationHandler) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Movie routes - catalog and ratings
	movies := v1.Group("/movies")
	{
		movies.Get("/", movieHandler.GetAllMovies)
		movies.Get("/:id", movieHandler.GetMovieByID)
		movies.Post("/", movieHandler.CreateMovie)
		movies.Put("/:id/rating", movieHandler.RateMovie)
		movies.Delete("/:id/rating", movieHandler.DeleteRating)
	}

	// Genre routes
	v1.Get("/genres", movieHandler.GetGenres)

	// User preference routes - input to the content-based fallback
	users := v1.Group("/users")
	{
		users.Get("/:id/preferred-genres", movieHandler.GetPreferredGenres)
		users.Put("/:id/preferred-genres", movieHandler.SetPreferredGenres)
	}

	// Recommendation routes - engine surface
	recs := v1.Group("/recommendations")
	{
		recs.Get("/", recHandler.GetRecommendations)
		recs.Get("/predict", recHandler.PredictScore)
		recs.Post("/train", recHandler.TrainModel)
		recs.Get("/train/last-log", recHandler.GetLastTrainingLog)
	}
}
