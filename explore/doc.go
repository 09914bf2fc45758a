// Package explore assembles the final result list from the reranked
// candidates, balancing known-good picks against discovery.
//
// The limit is split 70/20/10 across three strategies. Exploitation takes
// the top reranked candidates. Exploration runs Thompson Sampling over
// per-item Beta(alpha, beta) arms, giving uncertain items a chance
// proportional to how plausible their success still is. Serendipity picks
// uniformly among the remaining well-rated items.
//
// Sampling is deterministic per request: the RNG is seeded from the query
// text, the profile revision and the bandit state, so a repeated request
// returns the identical list until feedback moves the inputs.
package explore
