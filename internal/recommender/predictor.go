package recommender

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// batchSize is how many candidates a ranking worker scores between
// cancellation checks.
const batchSize = 512

// Scored pairs a movie with its predicted score.
type Scored struct {
	MovieID uint    `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Predictor ranks candidate movies for a user with a trained model. Scoring is
// parallel across candidates; the final order is deterministic regardless of
// worker scheduling: predicted score descending, movie id ascending on ties.
//
// Ranking is a full scan over the candidate set. Fine at moderate catalog
// sizes; a production-scale catalog would need an approximate nearest-neighbor
// index instead.
type Predictor struct {
	workers int
}

func NewPredictor(workers int) *Predictor {
	if workers <= 0 {
		workers = 4
	}
	return &Predictor{workers: workers}
}

// TopN scores every candidate and returns the n best. Fewer than n candidates
// returns them all, never padded. A context deadline hit while scoring returns
// ErrRankingTimeout.
func (p *Predictor) TopN(ctx context.Context, m *Model, userID uint, candidates []uint, n int) ([]Scored, error) {
	if m == nil {
		return nil, ErrModelNotFound
	}
	if n <= 0 || len(candidates) == 0 {
		return nil, nil
	}

	scored := make([]Scored, len(candidates))
	chunk := (len(candidates) + p.workers - 1) / p.workers

	var wg sync.WaitGroup
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if (i-start)%batchSize == 0 && ctx.Err() != nil {
					return
				}
				scored[i] = Scored{MovieID: candidates[i], Score: m.Predict(userID, candidates[i])}
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingTimeout, err)
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].MovieID < scored[j].MovieID
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}
