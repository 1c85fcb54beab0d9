package services

import (
	"context"
	"fmt"

	"github.com/mathiaselorm/FlixFinder/internal/config"
	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/repository"
	"github.com/mathiaselorm/FlixFinder/internal/utils"

	"github.com/sirupsen/logrus"
)

type MovieService interface {
	// Catalog operations
	CreateMovie(ctx context.Context, movie *models.Movie, genreNames []string) error
	GetMovieByID(ctx context.Context, id uint) (*models.Movie, error)
	GetAllMovies(ctx context.Context, page, limit int, search, sortBy, order string) ([]models.Movie, int64, error)
	GetGenres(ctx context.Context) ([]models.Genre, error)

	// Rating operations
	RateMovie(ctx context.Context, userID, movieID uint, score float64) (*models.Rating, error)
	RemoveRating(ctx context.Context, userID, movieID uint) error

	// Genre preference operations
	GetPreferredGenres(ctx context.Context, userID uint) ([]models.Genre, error)
	SetPreferredGenres(ctx context.Context, userID uint, genreNames []string) error
}

type movieService struct {
	repo       repository.MovieRepository
	genreRepo  repository.GenreRepository
	ratingRepo repository.RatingRepository
	prefRepo   repository.PreferenceRepository
	config     *config.Config
	logger     *logrus.Logger
}

func NewMovieService(
	repo repository.MovieRepository,
	genreRepo repository.GenreRepository,
	ratingRepo repository.RatingRepository,
	prefRepo repository.PreferenceRepository,
	cfg *config.Config,
	logger *logrus.Logger,
) MovieService {
	return &movieService{
		repo:       repo,
		genreRepo:  genreRepo,
		ratingRepo: ratingRepo,
		prefRepo:   prefRepo,
		config:     cfg,
		logger:     logger,
	}
}

func (s *movieService) CreateMovie(ctx context.Context, movie *models.Movie, genreNames []string) error {
	if movie.Title == "" {
		return fmt.Errorf("movie title is required")
	}

	slug, err := s.uniqueSlug(ctx, movie.Title)
	if err != nil {
		return fmt.Errorf("failed to generate slug: %w", err)
	}
	movie.Slug = slug

	for _, name := range genreNames {
		genre, err := s.genreRepo.FindOrCreate(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to resolve genre %q: %w", name, err)
		}
		movie.Genres = append(movie.Genres, *genre)
	}

	return s.repo.Create(ctx, movie)
}

// uniqueSlug derives a slug from the title, appending -2, -3, ... until it is
// free in the catalog.
func (s *movieService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := utils.Slugify(title)
	slug := base
	for counter := 2; ; counter++ {
		taken, err := s.repo.SlugExists(ctx, slug, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *movieService) GetMovieByID(ctx context.Context, id uint) (*models.Movie, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *movieService) GetAllMovies(ctx context.Context, page, limit int, search, sortBy, order string) ([]models.Movie, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.FindAll(ctx, page, limit, search, sortBy, order)
}

func (s *movieService) GetGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.FindAll(ctx)
}

func (s *movieService) RateMovie(ctx context.Context, userID, movieID uint, score float64) (*models.Rating, error) {
	rc := s.config.Recommender
	if score < rc.ScaleMin || score > rc.ScaleMax {
		return nil, fmt.Errorf("score must be between %.1f and %.1f", rc.ScaleMin, rc.ScaleMax)
	}

	if _, err := s.repo.FindByID(ctx, movieID); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.Upsert(ctx, userID, movieID, score)
	if err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"movie_id": movieID,
		"score":    score,
	}).Debug("Rating saved")
	return rating, nil
}

func (s *movieService) RemoveRating(ctx context.Context, userID, movieID uint) error {
	return s.ratingRepo.Delete(ctx, userID, movieID)
}

func (s *movieService) GetPreferredGenres(ctx context.Context, userID uint) ([]models.Genre, error) {
	return s.prefRepo.ListByUser(ctx, userID)
}

func (s *movieService) SetPreferredGenres(ctx context.Context, userID uint, genreNames []string) error {
	if len(genreNames) == 0 {
		return s.prefRepo.ReplaceForUser(ctx, userID, nil)
	}

	genres, err := s.genreRepo.FindByNames(ctx, genreNames)
	if err != nil {
		return err
	}
	found := make(map[string]uint, len(genres))
	for _, genre := range genres {
		found[genre.Name] = genre.ID
	}

	genreIDs := make([]uint, 0, len(genreNames))
	seen := make(map[uint]struct{}, len(genreNames))
	for _, name := range genreNames {
		id, ok := found[name]
		if !ok {
			return fmt.Errorf("unknown genre %q", name)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		genreIDs = append(genreIDs, id)
	}
	return s.prefRepo.ReplaceForUser(ctx, userID, genreIDs)
}
