package recommender

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRatings struct {
	count     int64
	ratedIDs  []uint
	countErr  error
	countCall int
}

func (f *fakeRatings) Snapshot(context.Context) ([]Rating, error) { return nil, nil }

func (f *fakeRatings) CountByUser(context.Context, uint) (int64, error) {
	f.countCall++
	return f.count, f.countErr
}

func (f *fakeRatings) RatedMovieIDs(context.Context, uint) ([]uint, error) {
	return f.ratedIDs, nil
}

type fakePrefs struct {
	genres []string
	calls  int
}

func (f *fakePrefs) PreferredGenreNames(context.Context, uint) ([]string, error) {
	f.calls++
	return f.genres, nil
}

type fakeCatalog struct {
	ids    []uint
	movies map[uint]CatalogMovie

	topRated []CatalogMovie
	topGenre []CatalogMovie

	topRatedCalls int
	topGenreCalls int
}

func (f *fakeCatalog) AllMovieIDs(context.Context) ([]uint, error) { return f.ids, nil }

func (f *fakeCatalog) MoviesByIDs(_ context.Context, ids []uint) (map[uint]CatalogMovie, error) {
	out := make(map[uint]CatalogMovie, len(ids))
	for _, id := range ids {
		if mv, ok := f.movies[id]; ok {
			out[id] = mv
		}
	}
	return out, nil
}

func (f *fakeCatalog) TopByAverageRating(_ context.Context, n int) ([]CatalogMovie, error) {
	f.topRatedCalls++
	if len(f.topRated) > n {
		return f.topRated[:n], nil
	}
	return f.topRated, nil
}

func (f *fakeCatalog) TopByGenreMatch(_ context.Context, _ []string, n int) ([]CatalogMovie, error) {
	f.topGenreCalls++
	if len(f.topGenre) > n {
		return f.topGenre[:n], nil
	}
	return f.topGenre, nil
}

type fakeModels struct {
	model *Model
	err   error
	calls int
}

func (f *fakeModels) Load(context.Context) (*Model, error) {
	f.calls++
	return f.model, f.err
}

func orchestratorCatalog() *fakeCatalog {
	return &fakeCatalog{
		ids: []uint{1, 2, 3, 4, 5},
		movies: map[uint]CatalogMovie{
			1: {ID: 1, Title: "One", AverageRating: 4.0},
			2: {ID: 2, Title: "Two", AverageRating: 3.5},
			3: {ID: 3, Title: "Three", AverageRating: 4.5},
			4: {ID: 4, Title: "Four", AverageRating: 2.0},
			5: {ID: 5, Title: "Five", AverageRating: 3.0},
		},
		topRated: []CatalogMovie{
			{ID: 3, Title: "Three", AverageRating: 4.5},
			{ID: 1, Title: "One", AverageRating: 4.0},
		},
		topGenre: []CatalogMovie{
			{ID: 5, Title: "Five", AverageRating: 3.0},
			{ID: 2, Title: "Two", AverageRating: 3.5},
		},
	}
}

func newTestOrchestrator(ratings *fakeRatings, prefs *fakePrefs, catalog *fakeCatalog, models *fakeModels) *Orchestrator {
	return NewOrchestrator(ratings, prefs, catalog, models, NewPredictor(2), OrchestratorConfig{
		HistoryThreshold: 5,
		RankingTimeout:   time.Second,
	}, testLogger())
}

func TestRecommendSparseUserNeverLoadsModel(t *testing.T) {
	ratings := &fakeRatings{count: 5}
	prefs := &fakePrefs{}
	catalog := orchestratorCatalog()
	models := &fakeModels{model: flatModel(nil)}
	o := newTestOrchestrator(ratings, prefs, catalog, models)

	recs, strategy, err := o.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if strategy != StrategyContentBased {
		t.Errorf("strategy = %q, want %q", strategy, StrategyContentBased)
	}
	if models.calls != 0 {
		t.Errorf("model loaded %d times for a user at the history threshold, want 0", models.calls)
	}
	if len(recs) == 0 {
		t.Error("content-based fallback returned no recommendations")
	}
}

func TestRecommendCollaborativeExcludesRated(t *testing.T) {
	ratings := &fakeRatings{count: 6, ratedIDs: []uint{1, 2}}
	prefs := &fakePrefs{}
	catalog := orchestratorCatalog()
	models := &fakeModels{model: flatModel(map[uint]float64{3: 4.0, 4: 2.0, 5: 3.0})}
	o := newTestOrchestrator(ratings, prefs, catalog, models)

	recs, strategy, err := o.Recommend(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if strategy != StrategyCollaborative {
		t.Errorf("strategy = %q, want %q", strategy, StrategyCollaborative)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, r := range recs {
		if r.MovieID == 1 || r.MovieID == 2 {
			t.Errorf("recommendation includes already-rated movie %d", r.MovieID)
		}
	}
	if recs[0].MovieID != 3 || recs[1].MovieID != 5 {
		t.Errorf("got order [%d, %d], want [3, 5]", recs[0].MovieID, recs[1].MovieID)
	}
	if recs[0].Title != "Three" {
		t.Errorf("Title = %q, want metadata joined from catalog", recs[0].Title)
	}
}

func TestRecommendDegradesWhenModelMissing(t *testing.T) {
	ratings := &fakeRatings{count: 20}
	prefs := &fakePrefs{genres: []string{"Action"}}
	catalog := orchestratorCatalog()
	models := &fakeModels{err: ErrModelNotFound}
	o := newTestOrchestrator(ratings, prefs, catalog, models)

	recs, strategy, err := o.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if strategy != StrategyContentBased {
		t.Errorf("strategy = %q, want %q", strategy, StrategyContentBased)
	}
	if catalog.topGenreCalls != 1 {
		t.Errorf("TopByGenreMatch calls = %d, want 1", catalog.topGenreCalls)
	}
	if len(recs) == 0 {
		t.Error("degraded request returned no recommendations")
	}
}

func TestRecommendContentBasedNoPreferences(t *testing.T) {
	ratings := &fakeRatings{count: 0}
	prefs := &fakePrefs{}
	catalog := orchestratorCatalog()
	o := newTestOrchestrator(ratings, prefs, catalog, &fakeModels{err: ErrModelNotFound})

	recs, strategy, err := o.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if strategy != StrategyContentBased {
		t.Errorf("strategy = %q, want %q", strategy, StrategyContentBased)
	}
	if catalog.topRatedCalls != 1 {
		t.Errorf("TopByAverageRating calls = %d, want 1", catalog.topRatedCalls)
	}
	if catalog.topGenreCalls != 0 {
		t.Errorf("TopByGenreMatch calls = %d, want 0 with no preferences", catalog.topGenreCalls)
	}
	if len(recs) == 0 || recs[0].MovieID != 3 {
		t.Errorf("top pick = %+v, want highest average rating first", recs)
	}
}

func TestRecommendContentBasedWithPreferences(t *testing.T) {
	ratings := &fakeRatings{count: 2}
	prefs := &fakePrefs{genres: []string{"Action", "Comedy"}}
	catalog := orchestratorCatalog()
	o := newTestOrchestrator(ratings, prefs, catalog, &fakeModels{err: ErrModelNotFound})

	recs, _, err := o.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if catalog.topGenreCalls != 1 {
		t.Errorf("TopByGenreMatch calls = %d, want 1", catalog.topGenreCalls)
	}
	if recs[0].Score != 3.0 {
		t.Errorf("Score = %v, want the movie's average rating", recs[0].Score)
	}
}

func TestRecommendTimeoutPropagates(t *testing.T) {
	ratings := &fakeRatings{count: 20}
	catalog := orchestratorCatalog()
	models := &fakeModels{model: flatModel(nil)}
	o := NewOrchestrator(ratings, &fakePrefs{}, catalog, models, NewPredictor(1), OrchestratorConfig{
		HistoryThreshold: 5,
		RankingTimeout:   time.Nanosecond,
	}, testLogger())

	// Enough candidates that the nanosecond deadline expires mid-ranking.
	catalog.ids = make([]uint, 200000)
	for i := range catalog.ids {
		catalog.ids[i] = uint(i + 1)
	}

	_, _, err := o.Recommend(context.Background(), 10, 10)
	if !errors.Is(err, ErrRankingTimeout) {
		t.Fatalf("Recommend error = %v, want ErrRankingTimeout", err)
	}
}

func TestPredictOne(t *testing.T) {
	m := flatModel(map[uint]float64{7: 1.5})
	m.GlobalMean = 2.0
	o := newTestOrchestrator(&fakeRatings{}, &fakePrefs{}, orchestratorCatalog(), &fakeModels{model: m})

	got, err := o.PredictOne(context.Background(), 10, 7)
	if err != nil {
		t.Fatalf("PredictOne: %v", err)
	}
	if got != 3.5 {
		t.Errorf("PredictOne = %v, want 3.5", got)
	}
}

func TestPredictOneNoModel(t *testing.T) {
	o := newTestOrchestrator(&fakeRatings{}, &fakePrefs{}, orchestratorCatalog(), &fakeModels{err: ErrModelNotFound})

	_, err := o.PredictOne(context.Background(), 10, 7)
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("PredictOne error = %v, want ErrModelNotFound", err)
	}
}
