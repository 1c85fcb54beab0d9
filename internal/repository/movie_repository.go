package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mathiaselorm/FlixFinder/internal/database"
	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/recommender"

	"gorm.io/gorm"
)

type MovieRepository interface {
	// CRUD operations
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, movie *models.Movie) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	FindAll(ctx context.Context, page, limit int, search, sortBy, order string) ([]models.Movie, int64, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)

	// Catalog view consumed by the recommendation engine
	AllMovieIDs(ctx context.Context) ([]uint, error)
	MoviesByIDs(ctx context.Context, ids []uint) (map[uint]recommender.CatalogMovie, error)
	TopByAverageRating(ctx context.Context, n int) ([]recommender.CatalogMovie, error)
	TopByGenreMatch(ctx context.Context, genres []string, n int) ([]recommender.CatalogMovie, error)

	// Training log operations
	CreateTrainingLog(ctx context.Context, log *models.TrainingLog) error
	GetLastTrainingLog(ctx context.Context) (*models.TrainingLog, error)
}

type movieRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *movieRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *movieRepository) Update(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Save(movie).Error
}

func (r *movieRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Movie{}, id).Error
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).Preload("Genres").First(&movie, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("movie not found")
		}
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, page, limit int, search, sortBy, order string) ([]models.Movie, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var movies []models.Movie
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Movie{})

	if search != "" {
		searchPattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR overview ILIKE ?", searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	validSortFields := map[string]bool{
		"id": true, "title": true, "release_date": true, "average_rating": true,
		"created_at": true, "updated_at": true,
	}
	if !validSortFields[sortBy] {
		sortBy = "updated_at"
	}
	if order != "ASC" && order != "asc" {
		order = "DESC"
	}
	query = query.Order(sortBy + " " + order)

	offset := (page - 1) * limit
	if err := query.Preload("Genres").Offset(offset).Limit(limit).Find(&movies).Error; err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

func (r *movieRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *movieRepository) AllMovieIDs(ctx context.Context) ([]uint, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *movieRepository) MoviesByIDs(ctx context.Context, ids []uint) (map[uint]recommender.CatalogMovie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := make(map[uint]recommender.CatalogMovie, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []recommender.CatalogMovie
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Select("id, title, poster_url, average_rating").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}

func (r *movieRepository) TopByAverageRating(ctx context.Context, n int) ([]recommender.CatalogMovie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rows []recommender.CatalogMovie
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Select("id, title, poster_url, average_rating").
		Order("average_rating DESC, id ASC").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}

// TopByGenreMatch ranks movies sharing at least one of the given genres by
// overlap count, then average rating, then id for a stable order.
func (r *movieRepository) TopByGenreMatch(ctx context.Context, genres []string, n int) ([]recommender.CatalogMovie, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	type matchRow struct {
		ID            uint
		Title         string
		PosterURL     string
		AverageRating float64
		MatchCount    int
	}

	var rows []matchRow
	err := r.db.WithContext(ctx).Model(&models.Movie{}).
		Select("movies.id, movies.title, movies.poster_url, movies.average_rating, COUNT(genres.id) AS match_count").
		Joins("JOIN movie_genres ON movie_genres.movie_id = movies.id").
		Joins("JOIN genres ON genres.id = movie_genres.genre_id").
		Where("genres.name IN ?", genres).
		Group("movies.id, movies.title, movies.poster_url, movies.average_rating").
		Order("match_count DESC, movies.average_rating DESC, movies.id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]recommender.CatalogMovie, 0, len(rows))
	for _, row := range rows {
		result = append(result, recommender.CatalogMovie{
			ID:            row.ID,
			Title:         row.Title,
			PosterURL:     row.PosterURL,
			AverageRating: row.AverageRating,
		})
	}
	return result, nil
}

func (r *movieRepository) CreateTrainingLog(ctx context.Context, log *models.TrainingLog) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(log).Error
}

func (r *movieRepository) GetLastTrainingLog(ctx context.Context) (*models.TrainingLog, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var log models.TrainingLog
	err := r.db.WithContext(ctx).Order("trained_at DESC").First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
