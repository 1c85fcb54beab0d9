package recommender

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// Strategy names reported alongside recommendation lists.
const (
	StrategyCollaborative = "collaborative"
	StrategyContentBased  = "content_based"
)

// OrchestratorConfig holds the per-request routing policy.
type OrchestratorConfig struct {
	// HistoryThreshold is the rating count above which a user is served by the
	// collaborative model instead of the content-based fallback.
	HistoryThreshold int

	// RankingTimeout bounds the candidate full-scan ranking.
	RankingTimeout time.Duration
}

// Orchestrator picks a recommendation strategy per request: collaborative
// filtering for users with enough rating history, content-based genre ranking
// for everyone else. A model that cannot be loaded degrades the request to
// content-based with a logged warning instead of failing it.
type Orchestrator struct {
	ratings   RatingSource
	prefs     PreferenceSource
	catalog   Catalog
	models    ModelSource
	predictor *Predictor
	cfg       OrchestratorConfig
	logger    *logrus.Logger
}

func NewOrchestrator(
	ratings RatingSource,
	prefs PreferenceSource,
	catalog Catalog,
	models ModelSource,
	predictor *Predictor,
	cfg OrchestratorConfig,
	logger *logrus.Logger,
) *Orchestrator {
	if cfg.HistoryThreshold <= 0 {
		cfg.HistoryThreshold = 5
	}
	if cfg.RankingTimeout <= 0 {
		cfg.RankingTimeout = 5 * time.Second
	}
	return &Orchestrator{
		ratings:   ratings,
		prefs:     prefs,
		catalog:   catalog,
		models:    models,
		predictor: predictor,
		cfg:       cfg,
		logger:    logger,
	}
}

// Recommend returns up to n ranked movies for the user and the name of the
// strategy that produced them. The output shape is identical for both
// strategies, so callers stay strategy-agnostic.
func (o *Orchestrator) Recommend(ctx context.Context, userID uint, n int) ([]Recommendation, string, error) {
	count, err := o.ratings.CountByUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if count > int64(o.cfg.HistoryThreshold) {
		recs, err := o.collaborative(ctx, userID, n)
		switch {
		case err == nil:
			return recs, StrategyCollaborative, nil
		case errors.Is(err, ErrRankingTimeout):
			return nil, "", err
		default:
			o.logger.WithError(err).WithField("user_id", userID).
				Warn("Collaborative model unavailable, degrading to content-based ranking")
		}
	}

	recs, err := o.contentBased(ctx, userID, n)
	if err != nil {
		return nil, "", err
	}
	return recs, StrategyContentBased, nil
}

// PredictOne estimates a single (user, movie) score with the current model.
func (o *Orchestrator) PredictOne(ctx context.Context, userID, movieID uint) (float64, error) {
	model, err := o.models.Load(ctx)
	if err != nil {
		return 0, err
	}
	return model.Predict(userID, movieID), nil
}

func (o *Orchestrator) collaborative(ctx context.Context, userID uint, n int) ([]Recommendation, error) {
	model, err := o.models.Load(ctx)
	if err != nil {
		return nil, err
	}

	rated, err := o.ratings.RatedMovieIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := o.catalog.AllMovieIDs(ctx)
	if err != nil {
		return nil, err
	}

	ratedSet := make(map[uint]struct{}, len(rated))
	for _, id := range rated {
		ratedSet[id] = struct{}{}
	}
	candidates := make([]uint, 0, len(all))
	for _, id := range all {
		if _, ok := ratedSet[id]; !ok {
			candidates = append(candidates, id)
		}
	}

	rankCtx, cancel := context.WithTimeout(ctx, o.cfg.RankingTimeout)
	defer cancel()
	top, err := o.predictor.TopN(rankCtx, model, userID, candidates, n)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(top))
	for i, s := range top {
		ids[i] = s.MovieID
	}
	movies, err := o.catalog.MoviesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(top))
	for _, s := range top {
		mv, ok := movies[s.MovieID]
		if !ok {
			continue
		}
		recs = append(recs, Recommendation{
			MovieID:   s.MovieID,
			Title:     mv.Title,
			PosterURL: mv.PosterURL,
			Score:     s.Score,
		})
	}
	return recs, nil
}

func (o *Orchestrator) contentBased(ctx context.Context, userID uint, n int) ([]Recommendation, error) {
	prefs, err := o.prefs.PreferredGenreNames(ctx, userID)
	if err != nil {
		return nil, err
	}

	var movies []CatalogMovie
	if len(prefs) == 0 {
		movies, err = o.catalog.TopByAverageRating(ctx, n)
	} else {
		movies, err = o.catalog.TopByGenreMatch(ctx, prefs, n)
	}
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(movies))
	for _, mv := range movies {
		recs = append(recs, Recommendation{
			MovieID:   mv.ID,
			Title:     mv.Title,
			PosterURL: mv.PosterURL,
			Score:     mv.AverageRating,
		})
	}
	return recs, nil
}
