package repository

import (
	"context"
	"time"

	"github.com/mathiaselorm/FlixFinder/internal/database"
	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/utils"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	FindByNames(ctx context.Context, names []string) ([]models.Genre, error)
	FindOrCreate(ctx context.Context, name string) (*models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
}

type genreRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *genreRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if genre.Slug == "" {
		genre.Slug = utils.Slugify(genre.Name)
	}
	return r.db.WithContext(ctx).Create(genre).Error
}

func (r *genreRepository) FindByNames(ctx context.Context, names []string) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Where("name IN ?", names).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) FindOrCreate(ctx context.Context, name string) (*models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&genre, models.Genre{
		Name: name,
		Slug: utils.Slugify(name),
	}).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}
