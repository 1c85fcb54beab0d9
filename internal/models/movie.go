package models

import (
	"time"
)

type Movie struct {
	ID            uint      `gorm:"primaryKey" json:"id" example:"1"`
	MovieLensID   *string   `gorm:"uniqueIndex;size:20" json:"movielens_id,omitempty" example:"862"`
	Title         string    `gorm:"not null;index" json:"title" example:"Toy Story"`
	Slug          string    `gorm:"uniqueIndex;size:255" json:"slug" example:"toy-story"`
	Overview      string    `gorm:"type:text" json:"overview" example:"A cowboy doll is profoundly threatened..."`
	ReleaseDate   string    `gorm:"index" json:"release_date" example:"1995-10-30"`
	PosterURL     string    `json:"poster_url" example:"https://image.tmdb.org/t/p/w500/uXDfjJbdP4ijW5hWSBrPrlKpxab.jpg"`
	AverageRating float64   `gorm:"index;default:0" json:"average_rating" example:"4.25"`
	Genres        []Genre   `gorm:"many2many:movie_genres;" json:"genres,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`
}

func (Movie) TableName() string {
	return "movies"
}

// TrainingLog records one run of the recommendation model trainer.
type TrainingLog struct {
	ID           uint      `gorm:"primaryKey" json:"id" example:"1"`
	TriggerType  string    `gorm:"index" json:"trigger_type" example:"manual"`
	Status       string    `gorm:"index" json:"status" example:"success"`
	ModelVersion string    `gorm:"index" json:"model_version,omitempty" example:"1b7e3f2a-9c41-4f6e-8a64-2d1f0c9b7e11"`
	RatingCount  int64     `json:"rating_count" example:"100836"`
	UserCount    int       `json:"user_count" example:"610"`
	MovieCount   int       `json:"movie_count" example:"9724"`
	TrainRMSE    float64   `json:"train_rmse" example:"0.63"`
	DurationMs   int64     `json:"duration_ms" example:"5400"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	TrainedAt    time.Time `gorm:"index" json:"trained_at"`
	CreatedAt    time.Time `json:"created_at"`
}

func (TrainingLog) TableName() string {
	return "training_logs"
}
