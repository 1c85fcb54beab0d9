package recommender

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TrainerConfig tunes the matrix-factorization trainer. The rating scale is
// part of the config: the same code path handles datasets rated on scales
// other than 0-5.
type TrainerConfig struct {
	// Factors is the dimension of the latent vectors.
	Factors int

	// Epochs is the number of SGD passes over the rating set.
	Epochs int

	// LearningRate is the SGD step size.
	LearningRate float64

	// Regularization is the L2 penalty applied to biases and factors.
	Regularization float64

	// RandomSeed fixes factor initialization so identical input data yields
	// an identical factorization across runs.
	RandomSeed int64

	// ScaleMin and ScaleMax bound the rating scale.
	ScaleMin float64
	ScaleMax float64
}

// DefaultTrainerConfig returns the tuning the engine ships with.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Factors:        50,
		Epochs:         20,
		LearningRate:   0.005,
		Regularization: 0.02,
		RandomSeed:     42,
		ScaleMin:       0.0,
		ScaleMax:       5.0,
	}
}

// Trainer fits biased matrix-factorization models by stochastic gradient
// descent, minimizing regularized squared error against observed ratings:
//
//	sum_{u,i} (r_ui - mu - b_u - b_i - p_u . q_i)^2
//	        + lambda * (b_u^2 + b_i^2 + ||p_u||^2 + ||q_i||^2)
//
// Training is deterministic for a given seed: ratings are visited in a fixed
// order and all randomness comes from the seeded source.
type Trainer struct {
	cfg TrainerConfig
}

func NewTrainer(cfg TrainerConfig) *Trainer {
	def := DefaultTrainerConfig()
	if cfg.Factors <= 0 {
		cfg.Factors = def.Factors
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = def.Epochs
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.ScaleMax <= cfg.ScaleMin {
		cfg.ScaleMin = def.ScaleMin
		cfg.ScaleMax = def.ScaleMax
	}
	return &Trainer{cfg: cfg}
}

// Train fits a model over the full rating snapshot. An empty snapshot returns
// ErrInsufficientData; the caller must not overwrite a previously persisted
// model in that case.
func (t *Trainer) Train(ratings []Rating) (*Model, error) {
	if len(ratings) == 0 {
		return nil, ErrInsufficientData
	}

	// Fixed visiting order keeps the factorization reproducible regardless of
	// how the snapshot was enumerated.
	sorted := make([]Rating, len(ratings))
	copy(sorted, ratings)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].UserID != sorted[j].UserID {
			return sorted[i].UserID < sorted[j].UserID
		}
		return sorted[i].MovieID < sorted[j].MovieID
	})

	userIndex := make(map[uint]int)
	itemIndex := make(map[uint]int)
	var users, items []uint
	var sum float64
	for _, r := range sorted {
		if _, ok := userIndex[r.UserID]; !ok {
			userIndex[r.UserID] = len(users)
			users = append(users, r.UserID)
		}
		if _, ok := itemIndex[r.MovieID]; !ok {
			itemIndex[r.MovieID] = len(items)
			items = append(items, r.MovieID)
		}
		sum += r.Score
	}
	mean := sum / float64(len(sorted))

	k := t.cfg.Factors
	rng := rand.New(rand.NewSource(t.cfg.RandomSeed))

	p := make([][]float64, len(users))
	for u := range p {
		p[u] = make([]float64, k)
		for f := range p[u] {
			p[u][f] = rng.NormFloat64() * 0.1
		}
	}
	q := make([][]float64, len(items))
	for i := range q {
		q[i] = make([]float64, k)
		for f := range q[i] {
			q[i][f] = rng.NormFloat64() * 0.1
		}
	}
	bu := make([]float64, len(users))
	bi := make([]float64, len(items))

	lr := t.cfg.LearningRate
	reg := t.cfg.Regularization

	for epoch := 0; epoch < t.cfg.Epochs; epoch++ {
		for _, r := range sorted {
			u := userIndex[r.UserID]
			i := itemIndex[r.MovieID]

			var dot float64
			for f := 0; f < k; f++ {
				dot += p[u][f] * q[i][f]
			}
			errUI := r.Score - (mean + bu[u] + bi[i] + dot)

			bu[u] += lr * (errUI - reg*bu[u])
			bi[i] += lr * (errUI - reg*bi[i])
			for f := 0; f < k; f++ {
				puf := p[u][f]
				qif := q[i][f]
				p[u][f] += lr * (errUI*qif - reg*puf)
				q[i][f] += lr * (errUI*puf - reg*qif)
			}
		}
	}

	var se float64
	for _, r := range sorted {
		u := userIndex[r.UserID]
		i := itemIndex[r.MovieID]
		var dot float64
		for f := 0; f < k; f++ {
			dot += p[u][f] * q[i][f]
		}
		diff := r.Score - (mean + bu[u] + bi[i] + dot)
		se += diff * diff
	}
	rmse := math.Sqrt(se / float64(len(sorted)))

	model := &Model{
		Version:        uuid.NewString(),
		TrainedAt:      time.Now().UTC(),
		Factors:        k,
		Regularization: reg,
		ScaleMin:       t.cfg.ScaleMin,
		ScaleMax:       t.cfg.ScaleMax,
		RatingCount:    int64(len(sorted)),
		TrainRMSE:      rmse,
		GlobalMean:     mean,
		UserBias:       make(map[uint]float64, len(users)),
		ItemBias:       make(map[uint]float64, len(items)),
		UserFactors:    make(map[uint][]float64, len(users)),
		ItemFactors:    make(map[uint][]float64, len(items)),
	}
	for id, u := range userIndex {
		model.UserBias[id] = bu[u]
		model.UserFactors[id] = p[u]
	}
	for id, i := range itemIndex {
		model.ItemBias[id] = bi[i]
		model.ItemFactors[id] = q[i]
	}
	return model, nil
}
