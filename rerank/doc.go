// Package rerank re-scores the fused candidate list with an LLM relevance
// judge.
//
// Candidates are capped and split into fixed-size batches, judged
// concurrently through a bounded worker pool, and blended:
//
//	final = rrfWeight × normalized(fused) + llmWeight × relevance/10
//
// Rate-limited calls retry with exponential backoff. Any batch that still
// fails keeps its normalized fusion score with zero confidence and marks the
// request degraded. Reranking can lower result quality but never causes a
// request to fail.
package rerank
