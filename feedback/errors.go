package feedback

import "errors"

var (
	// ErrProfilesRequired indicates no profile repository was provided.
	ErrProfilesRequired = errors.New("profile repository is required")

	// ErrBanditRequired indicates no bandit repository was provided.
	ErrBanditRequired = errors.New("bandit repository is required")

	// ErrInteractionsRequired indicates no interaction repository was provided.
	ErrInteractionsRequired = errors.New("interaction repository is required")

	// ErrCatalogRequired indicates no catalog repository was provided.
	ErrCatalogRequired = errors.New("catalog repository is required")

	// ErrRecorderClosed indicates the recorder pool has been released.
	ErrRecorderClosed = errors.New("feedback recorder is closed")
)
