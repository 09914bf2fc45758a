package badger

import (
	"github.com/appscout/appscout/storage"
)

// Stores bundles every repository sharing one backend. Intended for tests
// and for the single-process CLI, which open everything at once.
type Stores struct {
	Backend      *Backend
	Catalog      storage.CatalogRepository
	Profiles     storage.ProfileRepository
	Bandit       storage.BanditRepository
	Interactions storage.InteractionRepository
}

// Close closes the shared backend.
func (s *Stores) Close() error {
	return s.Backend.Close()
}

// OpenStores opens a backend at filePath and constructs all repositories on
// top of it.
func OpenStores(filePath string, inMemory bool) (*Stores, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	catalog, err := NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	profiles, err := NewProfileRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	bandit, err := NewBanditRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	interactions, err := NewInteractionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Stores{
		Backend:      backend,
		Catalog:      catalog,
		Profiles:     profiles,
		Bandit:       bandit,
		Interactions: interactions,
	}, nil
}

// NewMemoryStores creates in-memory repositories for testing.
func NewMemoryStores() (*Stores, error) {
	return OpenStores("", true)
}
