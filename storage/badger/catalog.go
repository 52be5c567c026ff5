package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/storage"
)

// CatalogRepository implements storage.CatalogRepository for BadgerDB.
type CatalogRepository struct {
	backend *Backend
}

var _ storage.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(backend *Backend) (storage.CatalogRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &CatalogRepository{
		backend: backend,
	}, nil
}

// Close releases resources. CatalogRepository has no resources to release.
func (r *CatalogRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *CatalogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveSnapshot replaces the stored snapshot. The meta record is removed first
// and written last, so an interrupted save leaves no loadable snapshot.
func (r *CatalogRepository) SaveSnapshot(ctx context.Context, snap *storage.Snapshot) error {
	if err := r.checkOpen(ctx); err != nil {
		return err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Delete([]byte(snapshotMetaKey)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	if err := r.backend.DropPrefix(snapshotPrefixes...); err != nil {
		return err
	}

	err = r.backend.WithBatch(func(wb *badger.WriteBatch) error {
		if err := wb.Set([]byte(snapshotLabelsKey), storage.MarshalLabels(&snap.Labels)); err != nil {
			return err
		}
		for i := range snap.Investors {
			inv := &snap.Investors[i]
			if err := wb.Set(makePositionKey(investorPrefix, i), storage.MarshalInvestor(inv)); err != nil {
				return err
			}
			if err := wb.Set(makeInvestorIndexKey(inv.Id), encodePosition(i)); err != nil {
				return err
			}
		}
		for i := range snap.Startups {
			s := &snap.Startups[i]
			if err := wb.Set(makePositionKey(startupPrefix, i), storage.MarshalStartup(s)); err != nil {
				return err
			}
			if err := wb.Set(makeStartupIndexKey(s.Id), encodePosition(i)); err != nil {
				return err
			}
		}
		for i := range snap.Interactions {
			if err := wb.Set(makePositionKey(interactionPrefix, i), storage.MarshalInteraction(&snap.Interactions[i])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	meta := snap.Meta
	meta.Investors = len(snap.Investors)
	meta.Startups = len(snap.Startups)
	meta.Interactions = len(snap.Interactions)

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(snapshotMetaKey), storage.MarshalMeta(&meta)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	r.backend.logger.Debug("saved catalog snapshot",
		"fingerprint", meta.Fingerprint,
		"investors", meta.Investors,
		"startups", meta.Startups)
	return nil
}

// LoadSnapshot reads the stored snapshot.
func (r *CatalogRepository) LoadSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	snap := &storage.Snapshot{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx)
		if err != nil {
			return err
		}
		if meta == nil {
			return storage.ErrNotFound
		}
		snap.Meta = *meta

		item, err := tx.Get([]byte(snapshotLabelsKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("%w: missing labels", storage.ErrCorruptSnapshot)
			}
			return err
		}
		err = item.Value(func(val []byte) error {
			labels, err := storage.UnmarshalLabels(val)
			if err != nil {
				return err
			}
			snap.Labels = *labels
			return nil
		})
		if err != nil {
			return err
		}

		snap.Investors = make([]core.Investor, 0, meta.Investors)
		err = scanPrefix(ctx, tx, investorPrefix, func(val []byte) error {
			inv, err := storage.UnmarshalInvestor(val)
			if err != nil {
				return err
			}
			snap.Investors = append(snap.Investors, *inv)
			return nil
		})
		if err != nil {
			return err
		}

		snap.Startups = make([]core.Startup, 0, meta.Startups)
		err = scanPrefix(ctx, tx, startupPrefix, func(val []byte) error {
			s, err := storage.UnmarshalStartup(val)
			if err != nil {
				return err
			}
			snap.Startups = append(snap.Startups, *s)
			return nil
		})
		if err != nil {
			return err
		}

		snap.Interactions = make([]core.Interaction, 0, meta.Interactions)
		return scanPrefix(ctx, tx, interactionPrefix, func(val []byte) error {
			in, err := storage.UnmarshalInteraction(val)
			if err != nil {
				return err
			}
			snap.Interactions = append(snap.Interactions, *in)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	if len(snap.Investors) != snap.Meta.Investors ||
		len(snap.Startups) != snap.Meta.Startups ||
		len(snap.Interactions) != snap.Meta.Interactions {
		return nil, fmt.Errorf("%w: record counts differ from meta", storage.ErrCorruptSnapshot)
	}
	return snap, nil
}

// LoadMeta reads the snapshot metadata.
func (r *CatalogRepository) LoadMeta(ctx context.Context) (*storage.Meta, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	var meta *storage.Meta
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readMeta(tx)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, storage.ErrNotFound
	}
	return meta, nil
}

// GetInvestor reads a single investor by ID.
func (r *CatalogRepository) GetInvestor(ctx context.Context, id core.ID) (*core.Investor, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	var inv *core.Investor
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return readIndexed(tx, makeInvestorIndexKey(id), investorPrefix, func(val []byte) error {
			var err error
			inv, err = storage.UnmarshalInvestor(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetStartup reads a single startup by ID.
func (r *CatalogRepository) GetStartup(ctx context.Context, id core.StartupID) (*core.Startup, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	var s *core.Startup
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return readIndexed(tx, makeStartupIndexKey(id), startupPrefix, func(val []byte) error {
			var err error
			s, err = storage.UnmarshalStartup(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *CatalogRepository) checkOpen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

// readMeta is a helper to read snapshot metadata within a transaction.
// Returns nil if no snapshot is stored.
func readMeta(tx *badger.Txn) (*storage.Meta, error) {
	item, err := tx.Get([]byte(snapshotMetaKey))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var meta *storage.Meta
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		meta, unmarshalErr = storage.UnmarshalMeta(val)
		return unmarshalErr
	})
	return meta, err
}

// readIndexed resolves an index key to its record and passes the record
// value to fn. Returns storage.ErrNotFound if the index key is missing.
func readIndexed(tx *badger.Txn, indexKey []byte, prefix string, fn func(val []byte) error) error {
	item, err := tx.Get(indexKey)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		return err
	}

	var pos int
	err = item.Value(func(val []byte) error {
		var ok bool
		if pos, ok = decodePosition(val); !ok {
			return fmt.Errorf("%w: bad index entry for %q", storage.ErrCorruptSnapshot, indexKey)
		}
		return nil
	})
	if err != nil {
		return err
	}

	item, err = tx.Get(makePositionKey(prefix, pos))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: dangling index entry for %q", storage.ErrCorruptSnapshot, indexKey)
		}
		return err
	}
	return item.Value(fn)
}

// scanPrefix passes every value under prefix to fn in key order.
func scanPrefix(ctx context.Context, tx *badger.Txn, prefix string, fn func(val []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := iter.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
