package rerank

import "errors"

var (
	// ErrJudgeRequired indicates no relevance judge was provided.
	ErrJudgeRequired = errors.New("relevance judge is required")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidBatchSize indicates a batch size outside the supported range.
	ErrInvalidBatchSize = errors.New("batch size must be between 6 and 10")
)
