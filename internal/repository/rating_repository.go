package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/mathiaselorm/FlixFinder/internal/database"
	"github.com/mathiaselorm/FlixFinder/internal/models"
	"github.com/mathiaselorm/FlixFinder/internal/recommender"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRatingNotFound is returned when deleting a rating that does not exist.
var ErrRatingNotFound = errors.New("rating not found")

type RatingRepository interface {
	// Upsert creates the user's rating for a movie or replaces the prior
	// score. The movie's average rating is recomputed in the same transaction.
	Upsert(ctx context.Context, userID, movieID uint, score float64) (*models.Rating, error)
	Delete(ctx context.Context, userID, movieID uint) error

	// Engine-facing views
	Snapshot(ctx context.Context) ([]recommender.Rating, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	RatedMovieIDs(ctx context.Context, userID uint) ([]uint, error)
}

type ratingRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewRatingRepository(db *database.Database) RatingRepository {
	return &ratingRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *ratingRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *ratingRepository) Upsert(ctx context.Context, userID, movieID uint, score float64) (*models.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var saved models.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rating := models.Rating{UserID: userID, MovieID: movieID, Score: score}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      score,
				"updated_at": time.Now().UTC(),
			}),
		}).Create(&rating).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&saved).Error; err != nil {
			return err
		}
		return refreshAverageRating(tx, movieID)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID, movieID uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND movie_id = ?", userID, movieID).Delete(&models.Rating{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRatingNotFound
		}
		return refreshAverageRating(tx, movieID)
	})
}

// refreshAverageRating keeps movies.average_rating in sync with the rating
// rows, inside the caller's transaction. Stored at two decimals, zero when no
// ratings remain.
func refreshAverageRating(tx *gorm.DB, movieID uint) error {
	var avg float64
	if err := tx.Model(&models.Rating{}).
		Where("movie_id = ?", movieID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}
	avg = math.Round(avg*100) / 100
	return tx.Model(&models.Movie{}).
		Where("id = ?", movieID).
		Update("average_rating", avg).Error
}

func (r *ratingRepository) Snapshot(ctx context.Context) ([]recommender.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var triples []recommender.Rating
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("user_id, movie_id, score").
		Order("user_id ASC, movie_id ASC").
		Scan(&triples).Error
	return triples, err
}

func (r *ratingRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ratingRepository) RatedMovieIDs(ctx context.Context, userID uint) ([]uint, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Order("movie_id ASC").
		Pluck("movie_id", &ids).Error
	return ids, err
}
