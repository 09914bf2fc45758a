// Package fusion merges the per-method retrieval lists into one ranked
// candidate list using reciprocal rank fusion.
//
// Fusion works on ranks, not raw scores, so signals with incomparable score
// scales (cosine similarity, keyword weight sums, endorsement counts) combine
// without calibration. The package is pure: no storage, no AI calls.
package fusion
