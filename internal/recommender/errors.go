package recommender

import "errors"

var (
	// ErrInsufficientData means training was attempted with zero ratings. The
	// run fails without touching any previously persisted model.
	ErrInsufficientData = errors.New("insufficient data: no ratings to train on")

	// ErrModelNotFound means no trained model exists in any storage location.
	// Callers should treat this as "recommendations unavailable" and fall back
	// to content-based ranking.
	ErrModelNotFound = errors.New("model not found")

	// ErrStorage wraps model persistence read/write failures. Retriable.
	ErrStorage = errors.New("model storage failure")

	// ErrRankingTimeout means candidate ranking exceeded its deadline.
	ErrRankingTimeout = errors.New("ranking timed out")
)
