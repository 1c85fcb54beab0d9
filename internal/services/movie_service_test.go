package services

import (
	"context"
	"strings"
	"testing"

	"github.com/mathiaselorm/FlixFinder/internal/config"
	"github.com/mathiaselorm/FlixFinder/internal/models"
)

type stubGenreRepo struct {
	genres map[string]uint

	findByNamesCalls int
}

func (s *stubGenreRepo) Create(context.Context, *models.Genre) error { return nil }

func (s *stubGenreRepo) FindByNames(_ context.Context, names []string) ([]models.Genre, error) {
	s.findByNamesCalls++
	var out []models.Genre
	for _, name := range names {
		if id, ok := s.genres[name]; ok {
			out = append(out, models.Genre{ID: id, Name: name})
		}
	}
	return out, nil
}

func (s *stubGenreRepo) FindOrCreate(_ context.Context, name string) (*models.Genre, error) {
	if id, ok := s.genres[name]; ok {
		return &models.Genre{ID: id, Name: name}, nil
	}
	id := uint(len(s.genres) + 1)
	s.genres[name] = id
	return &models.Genre{ID: id, Name: name}, nil
}

func (s *stubGenreRepo) FindAll(context.Context) ([]models.Genre, error) { return nil, nil }

type stubPrefRepo struct {
	replaced map[uint][]uint
}

func (s *stubPrefRepo) PreferredGenreNames(context.Context, uint) ([]string, error) {
	return nil, nil
}

func (s *stubPrefRepo) ListByUser(context.Context, uint) ([]models.Genre, error) { return nil, nil }

func (s *stubPrefRepo) ReplaceForUser(_ context.Context, userID uint, genreIDs []uint) error {
	if s.replaced == nil {
		s.replaced = make(map[uint][]uint)
	}
	s.replaced[userID] = genreIDs
	return nil
}

func newPreferenceService(genreRepo *stubGenreRepo, prefRepo *stubPrefRepo) MovieService {
	cfg := &config.Config{
		Recommender: config.RecommenderConfig{ScaleMin: 0, ScaleMax: 5},
	}
	return NewMovieService(&stubMovieRepo{}, genreRepo, &stubRatingRepo{}, prefRepo, cfg, discardLogger())
}

func TestSetPreferredGenres(t *testing.T) {
	genreRepo := &stubGenreRepo{genres: map[string]uint{"Action": 1, "Comedy": 2}}
	prefRepo := &stubPrefRepo{}
	svc := newPreferenceService(genreRepo, prefRepo)

	// Duplicated names collapse to one preference row each.
	err := svc.SetPreferredGenres(context.Background(), 7, []string{"Comedy", "Action", "Comedy"})
	if err != nil {
		t.Fatalf("SetPreferredGenres: %v", err)
	}
	if genreRepo.findByNamesCalls != 1 {
		t.Errorf("FindByNames calls = %d, want a single batched lookup", genreRepo.findByNamesCalls)
	}
	got := prefRepo.replaced[7]
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("replaced genre ids = %v, want [2 1]", got)
	}
}

func TestSetPreferredGenresUnknownName(t *testing.T) {
	genreRepo := &stubGenreRepo{genres: map[string]uint{"Action": 1}}
	prefRepo := &stubPrefRepo{}
	svc := newPreferenceService(genreRepo, prefRepo)

	err := svc.SetPreferredGenres(context.Background(), 7, []string{"Action", "Horrorr"})
	if err == nil || !strings.Contains(err.Error(), "Horrorr") {
		t.Fatalf("SetPreferredGenres error = %v, want unknown-genre error naming the input", err)
	}
	if len(prefRepo.replaced) != 0 {
		t.Errorf("preferences replaced despite unknown genre: %v", prefRepo.replaced)
	}
}

func TestSetPreferredGenresClears(t *testing.T) {
	genreRepo := &stubGenreRepo{genres: map[string]uint{"Action": 1}}
	prefRepo := &stubPrefRepo{}
	svc := newPreferenceService(genreRepo, prefRepo)

	if err := svc.SetPreferredGenres(context.Background(), 7, nil); err != nil {
		t.Fatalf("SetPreferredGenres(nil): %v", err)
	}
	got, ok := prefRepo.replaced[7]
	if !ok || len(got) != 0 {
		t.Errorf("replaced = %v (present=%v), want an empty replacement", got, ok)
	}
	if genreRepo.findByNamesCalls != 0 {
		t.Errorf("FindByNames calls = %d, want 0 when clearing", genreRepo.findByNamesCalls)
	}
}
