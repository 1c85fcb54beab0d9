package repository

import (
	"context"
	"time"

	"github.com/mathiaselorm/FlixFinder/internal/database"
	"github.com/mathiaselorm/FlixFinder/internal/models"

	"gorm.io/gorm"
)

type PreferenceRepository interface {
	// PreferredGenreNames lists the names of the genres the user has marked as
	// preferred, in a stable order.
	PreferredGenreNames(ctx context.Context, userID uint) ([]string, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Genre, error)
	ReplaceForUser(ctx context.Context, userID uint, genreIDs []uint) error
}

type preferenceRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewPreferenceRepository(db *database.Database) PreferenceRepository {
	return &preferenceRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *preferenceRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *preferenceRepository) PreferredGenreNames(ctx context.Context, userID uint) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var names []string
	err := r.db.WithContext(ctx).Model(&models.GenrePreference{}).
		Joins("JOIN genres ON genres.id = genre_preferences.genre_id").
		Where("genre_preferences.user_id = ?", userID).
		Order("genres.name ASC").
		Pluck("genres.name", &names).Error
	return names, err
}

func (r *preferenceRepository) ListByUser(ctx context.Context, userID uint) ([]models.Genre, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var genres []models.Genre
	err := r.db.WithContext(ctx).Model(&models.Genre{}).
		Joins("JOIN genre_preferences ON genre_preferences.genre_id = genres.id").
		Where("genre_preferences.user_id = ?", userID).
		Order("genres.name ASC").
		Find(&genres).Error
	return genres, err
}

// ReplaceForUser swaps the user's preference set atomically.
func (r *preferenceRepository) ReplaceForUser(ctx context.Context, userID uint, genreIDs []uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.GenrePreference{}).Error; err != nil {
			return err
		}
		if len(genreIDs) == 0 {
			return nil
		}
		prefs := make([]models.GenrePreference, 0, len(genreIDs))
		for _, gid := range genreIDs {
			prefs = append(prefs, models.GenrePreference{UserID: userID, GenreID: gid})
		}
		return tx.Create(&prefs).Error
	})
}
