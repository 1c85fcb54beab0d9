package recommender

import "time"

// Model is a trained latent-factor model over the user x movie rating matrix.
// It is immutable once produced: a new training run supersedes it with a fresh
// instance, it is never mutated in place. That makes a shared *Model safe to
// read from any number of goroutines without locking.
//
// The JSON form is the persisted artifact format. Every field needed to
// produce predictions is embedded, so an artifact deserializes without any
// external schema.
type Model struct {
	Version        string    `json:"version"`
	TrainedAt      time.Time `json:"trained_at"`
	Factors        int       `json:"factors"`
	Regularization float64   `json:"regularization"`
	ScaleMin       float64   `json:"scale_min"`
	ScaleMax       float64   `json:"scale_max"`
	RatingCount    int64     `json:"rating_count"`
	TrainRMSE      float64   `json:"train_rmse"`

	GlobalMean  float64            `json:"global_mean"`
	UserBias    map[uint]float64   `json:"user_bias"`
	ItemBias    map[uint]float64   `json:"item_bias"`
	UserFactors map[uint][]float64 `json:"user_factors"`
	ItemFactors map[uint][]float64 `json:"item_factors"`
}

// Predict estimates how the user would score the movie, clamped to the rating
// scale the model was trained on. Unknown users or movies never error: the
// estimate degrades to whichever bias terms are known, down to the global mean
// when neither side appeared in training.
func (m *Model) Predict(userID, movieID uint) float64 {
	est := m.GlobalMean
	bu, knownUser := m.UserBias[userID]
	bi, knownItem := m.ItemBias[movieID]
	if knownUser {
		est += bu
	}
	if knownItem {
		est += bi
	}
	if knownUser && knownItem {
		pu := m.UserFactors[userID]
		qi := m.ItemFactors[movieID]
		for f := range pu {
			est += pu[f] * qi[f]
		}
	}
	return m.clamp(est)
}

// Knows reports whether the user appeared in the training data.
func (m *Model) Knows(userID uint) bool {
	_, ok := m.UserBias[userID]
	return ok
}

func (m *Model) clamp(v float64) float64 {
	if v < m.ScaleMin {
		return m.ScaleMin
	}
	if v > m.ScaleMax {
		return m.ScaleMax
	}
	return v
}
