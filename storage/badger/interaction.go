package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/appscout/appscout/core"
	"github.com/appscout/appscout/storage"
)

// InteractionRepository implements storage.InteractionRepository for BadgerDB.
// The log is append-only; events are never rewritten.
type InteractionRepository struct {
	backend *Backend
}

var _ storage.InteractionRepository = (*InteractionRepository)(nil)

// NewInteractionRepository creates a new InteractionRepository.
func NewInteractionRepository(backend *Backend) (storage.InteractionRepository, error) {
	return &InteractionRepository{backend: backend}, nil
}

// Close is a no-op; the shared backend owns the database handle.
func (r *InteractionRepository) Close() error {
	return nil
}

// AppendEvent appends an interaction event to the log.
// Keys combine timestamp and event id, so two events in the same microsecond
// still get distinct keys.
func (r *InteractionRepository) AppendEvent(ctx context.Context, event *core.InteractionEvent) error {
	if err := core.ValidateEvent(event); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeEventKey(event.Timestamp, event.EventId)
		if err := tx.Set(key, storage.MarshalEvent(event)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// EventsSince returns all events recorded at or after since, in
// chronological order.
func (r *InteractionRepository) EventsSince(ctx context.Context, since time.Time) ([]*core.InteractionEvent, error) {
	var results []*core.InteractionEvent
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(eventPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(makePartialEventKey(since)); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				event, err := storage.UnmarshalEvent(val)
				if err != nil {
					return err
				}
				results = append(results, event)
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
	return results, nil
}
