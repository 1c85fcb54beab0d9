package handlers

type MovieRequest struct {
	MovieLensID string   `json:"movielens_id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	PosterURL   string   `json:"poster_url"`
	Genres      []string `json:"genres"`
}

type RatingRequest struct {
	UserID uint    `json:"user_id"`
	Score  float64 `json:"score" example:"4.5"`
}

type PreferredGenresRequest struct {
	Genres []string `json:"genres" example:"Action,Comedy"`
}
