// Package recommender implements the movie recommendation engine: a biased
// matrix-factorization model trained offline over the full rating matrix,
// dual-location model persistence with an in-process cache, per-user candidate
// ranking, and a content-based genre fallback for users with thin rating
// history. The Orchestrator is the single entry point for serving callers.
package recommender
