package intent

import "errors"

var (
	// ErrExtractorRequired indicates no intent extractor was provided.
	ErrExtractorRequired = errors.New("intent extractor is required")

	// ErrEmptyQuery indicates the query text was empty after trimming.
	ErrEmptyQuery = errors.New("query text is empty")
)
