package recommender

import "context"

// Rating is one observed (user, movie, score) triple from the rating store.
type Rating struct {
	UserID  uint    `json:"user_id"`
	MovieID uint    `json:"movie_id"`
	Score   float64 `json:"score"`
}

// CatalogMovie is the engine's read-only view of a movie in the catalog.
type CatalogMovie struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	PosterURL     string  `json:"poster_url,omitempty"`
	AverageRating float64 `json:"average_rating"`
}

// Recommendation pairs a movie with a ranking score. For the collaborative
// strategy the score is a personalized prediction; for the content-based
// strategy it is the movie's catalog average rating. Callers may display the
// two interchangeably but should not compare them across strategies.
type Recommendation struct {
	MovieID   uint    `json:"movie_id"`
	Title     string  `json:"title"`
	PosterURL string  `json:"poster_url,omitempty"`
	Score     float64 `json:"score"`
}

// RatingSource supplies rating data to the engine.
type RatingSource interface {
	// Snapshot enumerates every rating triple currently stored.
	Snapshot(ctx context.Context) ([]Rating, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	RatedMovieIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PreferenceSource supplies a user's stated genre preferences.
type PreferenceSource interface {
	PreferredGenreNames(ctx context.Context, userID uint) ([]string, error)
}

// Catalog supplies movie metadata and pre-ranked catalog views.
type Catalog interface {
	AllMovieIDs(ctx context.Context) ([]uint, error)
	MoviesByIDs(ctx context.Context, ids []uint) (map[uint]CatalogMovie, error)
	TopByAverageRating(ctx context.Context, n int) ([]CatalogMovie, error)
	// TopByGenreMatch ranks movies sharing at least one of the given genres by
	// (overlap count desc, average rating desc).
	TopByGenreMatch(ctx context.Context, genres []string, n int) ([]CatalogMovie, error)
}

// ModelSource hands out a shared, read-only reference to the current model.
type ModelSource interface {
	Load(ctx context.Context) (*Model, error)
}

// ObjectStore is the secondary durable location for model artifacts. Get must
// return ErrModelNotFound when no artifact exists under the key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
