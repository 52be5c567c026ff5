package storage

import (
	"context"

	"github.com/poiesic/venturematch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CatalogRepository persists catalog snapshots. At most one snapshot is
// stored; saving replaces the previous one.
type CatalogRepository interface {
	Repository

	// SaveSnapshot replaces the stored snapshot with snap.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error

	// LoadSnapshot reads the stored snapshot with investors, startups and
	// interactions in their original order.
	// Returns ErrNotFound if no snapshot has been saved.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	// LoadMeta reads only the snapshot metadata.
	// Returns ErrNotFound if no snapshot has been saved.
	LoadMeta(ctx context.Context) (*Meta, error)

	// GetInvestor reads a single investor from the stored snapshot.
	// Returns ErrNotFound if the investor doesn't exist.
	GetInvestor(ctx context.Context, id core.ID) (*core.Investor, error)

	// GetStartup reads a single startup from the stored snapshot.
	// Returns ErrNotFound if the startup doesn't exist.
	GetStartup(ctx context.Context, id core.StartupID) (*core.Startup, error)
}
