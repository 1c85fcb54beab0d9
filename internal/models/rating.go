package models

import "time"

// Rating is one user's score for one movie. A user holds at most one rating
// per movie; re-submitting replaces the prior score.
type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_ratings_user_movie;not null;index" json:"user_id"`
	MovieID   uint      `gorm:"uniqueIndex:idx_ratings_user_movie;not null;index" json:"movie_id"`
	Score     float64   `gorm:"not null;index" json:"score" example:"4.5"` // 0.0 - 5.0
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}
