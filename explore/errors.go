package explore

import "errors"

var (
	// ErrInvalidShares indicates bucket shares that are negative or do not
	// sum to 1.
	ErrInvalidShares = errors.New("bucket shares must be non-negative and sum to 1")
)
