package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
//
// Returns storage.CatalogRepository interface to enforce abstraction.
func NewCatalogRepository(backend *Backend) (storage.CatalogRepository, error) {
	return &CatalogRepository{backend: backend}, nil
}

// Close is a no-op; the shared backend owns the database handle.
func (r *CatalogRepository) Close() error {
	return nil
}

// AddItems adds catalog items along with their keyword and category indices.
func (r *CatalogRepository) AddItems(ctx context.Context, items ...*core.Item) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if err := core.ValidateItem(item); err != nil {
				return err
			}
			if item.InsertedAt.IsZero() {
				item.InsertedAt = time.Now().UTC()
			}

			if err := tx.Set(makeItemKey(item.Id), storage.MarshalItem(item)); err != nil {
				return err
			}

			idValue := storage.MarshalID(item.Id)
			for term := range item.Keywords {
				if err := tx.Set(makeItemKeywordKey(term, item.Id), idValue); err != nil {
					return err
				}
			}
			for _, category := range item.Categories {
				if err := tx.Set(makeItemCategoryKey(category, item.Id), idValue); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)
}

// GetItem retrieves a single item by ID.
func (r *CatalogRepository) GetItem(ctx context.Context, id core.ID) (*core.Item, error) {
	var result *core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readItem(tx, makeItemKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetItems retrieves multiple items by their IDs.
// Missing items are silently skipped.
func (r *CatalogRepository) GetItems(ctx context.Context, ids ...core.ID) ([]*core.Item, error) {
	results := make([]*core.Item, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			if item != nil {
				results = append(results, item)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindSimilar finds items similar to the given vector by scanning the item
// prefix. Embeddings are unit length, so cosine similarity reduces to a dot
// product. Items without an embedding are skipped.
func (r *CatalogRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int, exclude map[core.ID]bool) ([]*core.ItemMatch, error) {
	var results []*core.ItemMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var item *core.Item
			err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalItem(val)
				return err
			})
			if err != nil {
				return err
			}
			if item == nil || len(item.Vector) == 0 {
				continue
			}
			if exclude[item.Id] {
				continue
			}

			similarity := dotProduct(vector, item.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.ItemMatch{
					Item:       item,
					Similarity: similarity,
				})
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Similarity descending, ties by ascending item id for determinism
	slices.SortFunc(results, func(a, b *core.ItemMatch) int {
		if a.Similarity != b.Similarity {
			if a.Similarity > b.Similarity {
				return -1
			}
			return 1
		}
		if a.Item.Id < b.Item.Id {
			return -1
		}
		if a.Item.Id > b.Item.Id {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FindByKeyword retrieves items whose keyword map contains term, via the
// keyword index.
func (r *CatalogRepository) FindByKeyword(ctx context.Context, term string) ([]*core.Item, error) {
	ids, err := r.collectIndexedIds(makePartialItemKeywordKey(term))
	if err != nil {
		return nil, err
	}
	return r.GetItems(ctx, ids...)
}

// FindByCategory retrieves up to limit items carrying the category, ordered
// by rating descending, ties by ascending id.
func (r *CatalogRepository) FindByCategory(ctx context.Context, category string, limit int) ([]*core.Item, error) {
	ids, err := r.collectIndexedIds(makePartialItemCategoryKey(category))
	if err != nil {
		return nil, err
	}
	items, err := r.GetItems(ctx, ids...)
	if err != nil {
		return nil, err
	}
	sortByRating(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// TopRated retrieves the limit highest-rated items not in exclude.
func (r *CatalogRepository) TopRated(ctx context.Context, limit int, exclude map[core.ID]bool) ([]*core.Item, error) {
	var items []*core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var item *core.Item
			err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalItem(val)
				return err
			})
			if err != nil {
				return err
			}
			if item == nil || exclude[item.Id] {
				continue
			}
			items = append(items, item)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	sortByRating(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// collectIndexedIds iterates an index prefix and decodes the stored IDs.
func (r *CatalogRepository) collectIndexedIds(prefix []byte) ([]core.ID, error) {
	var ids []core.ID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				id, err := storage.UnmarshalID(val)
				if err != nil {
					return err
				}
				ids = append(ids, id)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// readItem reads and unmarshals an item, returning nil when the key is absent.
func readItem(tx *badger.Txn, key []byte) (*core.Item, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var item *core.Item
	err = entry.Value(func(val []byte) error {
		var err error
		item, err = storage.UnmarshalItem(val)
		return err
	})
	return item, err
}

// sortByRating orders items by rating descending, ties by ascending id.
func sortByRating(items []*core.Item) {
	slices.SortFunc(items, func(a, b *core.Item) int {
		if a.Rating != b.Rating {
			if a.Rating > b.Rating {
				return -1
			}
			return 1
		}
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
