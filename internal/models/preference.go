package models

import "time"

// GenrePreference marks a genre a user has stated they like. The content-based
// recommendation fallback ranks movies against this set.
type GenrePreference struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_prefs_user_genre;not null;index" json:"user_id"`
	GenreID   uint      `gorm:"uniqueIndex:idx_prefs_user_genre;not null;index" json:"genre_id"`
	Genre     *Genre    `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (GenrePreference) TableName() string {
	return "genre_preferences"
}
