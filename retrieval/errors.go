package retrieval

import "errors"

var (
	// ErrCatalogRequired indicates no catalog repository was provided.
	ErrCatalogRequired = errors.New("catalog repository is required")

	// ErrProfilesRequired indicates no profile repository was provided.
	ErrProfilesRequired = errors.New("profile repository is required")

	// ErrEmbedderRequired indicates no embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrNoRetrievers indicates the fan-out group has no retrievers.
	ErrNoRetrievers = errors.New("at least one retriever is required")
)
