package badger

import (
	"context"
	"os"
	"testing"

	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	f, err := os.Open("../../catalog/testdata/investors.json")
	require.NoError(t, err)
	defer f.Close()

	dataset, err := catalog.LoadDataset(f)
	require.NoError(t, err)

	b, err := catalog.NewBuilder()
	require.NoError(t, err)
	defer b.Release()

	c, err := b.Build(context.Background(), dataset)
	require.NoError(t, err)
	return c
}

func newTestRepository(t *testing.T) (storage.CatalogRepository, *Backend) {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		if !backend.IsClosed() {
			backend.Close()
		}
	})
	return repo, backend
}

func TestCatalogRepository_Empty(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.LoadSnapshot(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.LoadMeta(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repo.GetInvestor(ctx, core.IDFromContent("nobody"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalogRepository_SaveAndLoad(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	c := buildCatalog(t)

	require.NoError(t, repo.SaveSnapshot(ctx, storage.NewSnapshot(c)))

	meta, err := repo.LoadMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, c.Fingerprint(), meta.Fingerprint)
	assert.Equal(t, len(c.Investors()), meta.Investors)
	assert.Equal(t, len(c.Startups()), meta.Startups)
	assert.Equal(t, len(c.Interactions()), meta.Interactions)

	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)

	loaded, err := snap.Catalog()
	require.NoError(t, err)
	assert.Equal(t, c.Fingerprint(), loaded.Fingerprint())

	// Load order survives the round trip.
	for i, inv := range c.Investors() {
		assert.Equal(t, inv.Id, loaded.Investors()[i].Id)
	}
	for i, s := range c.Startups() {
		assert.Equal(t, s.Id, loaded.Startups()[i].Id)
	}
}

func TestCatalogRepository_GetByID(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	c := buildCatalog(t)
	require.NoError(t, repo.SaveSnapshot(ctx, storage.NewSnapshot(c)))

	want := c.Investors()[1]
	inv, err := repo.GetInvestor(ctx, want.Id)
	require.NoError(t, err)
	assert.Equal(t, want.Name, inv.Name)
	assert.Equal(t, want.Features, inv.Features)

	wantStartup := c.Startups()[0]
	s, err := repo.GetStartup(ctx, wantStartup.Id)
	require.NoError(t, err)
	assert.Equal(t, wantStartup.Name, s.Name)
	assert.Equal(t, wantStartup.InvestorId, s.InvestorId)

	_, err = repo.GetStartup(ctx, "42_0")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalogRepository_SaveReplacesPrevious(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	c := buildCatalog(t)
	require.NoError(t, repo.SaveSnapshot(ctx, storage.NewSnapshot(c)))

	// A smaller second snapshot must not leave records of the first behind.
	first := c.Investors()[0]
	var startups []core.Startup
	var interactions []core.Interaction
	for _, s := range c.Startups() {
		if s.InvestorId == first.Id {
			startups = append(startups, s)
			interactions = append(interactions, core.Interaction{StartupId: s.Id, Investors: []core.ID{first.Id}})
		}
	}
	smaller, err := catalog.New(c.Vocabulary(), []core.Investor{first}, startups, interactions)
	require.NoError(t, err)
	require.NoError(t, repo.SaveSnapshot(ctx, storage.NewSnapshot(smaller)))

	snap, err := repo.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Investors, 1)
	assert.Len(t, snap.Startups, len(startups))

	loaded, err := snap.Catalog()
	require.NoError(t, err)
	assert.Equal(t, smaller.Fingerprint(), loaded.Fingerprint())

	_, err = repo.GetInvestor(ctx, c.Investors()[1].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCatalogRepository_Closed(t *testing.T) {
	repo, backend := newTestRepository(t)
	require.NoError(t, backend.Close())

	_, err := repo.LoadMeta(context.Background())
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestCatalogRepository_CanceledContext(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.SaveSnapshot(ctx, &storage.Snapshot{})
	assert.ErrorIs(t, err, context.Canceled)
}
