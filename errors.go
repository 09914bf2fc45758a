package appscout

import "errors"

var (
	// ErrInvalidInput indicates the request carried neither query text nor a
	// usable profile.
	ErrInvalidInput = errors.New("request needs query text or a profile with history")

	// ErrNoCandidates indicates every retrieval signal came back empty.
	ErrNoCandidates = errors.New("no candidates found for query")

	// ErrStoresRequired indicates the engine was built without storage.
	ErrStoresRequired = errors.New("stores are required")

	// ErrProviderRequired indicates the engine was built without an AI
	// provider.
	ErrProviderRequired = errors.New("AI provider is required")
)
