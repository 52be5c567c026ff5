package catalog

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadTestDataset(t *testing.T) []RawInvestor {
	t.Helper()
	f, err := os.Open("testdata/investors.json")
	require.NoError(t, err)
	defer f.Close()

	dataset, err := LoadDataset(f)
	require.NoError(t, err)
	return dataset
}

func buildTestCatalog(t *testing.T, opts ...BuildOption) *Catalog {
	t.Helper()
	b, err := NewBuilder(opts...)
	require.NoError(t, err)
	t.Cleanup(b.Release)

	c, err := b.Build(context.Background(), loadTestDataset(t))
	require.NoError(t, err)
	return c
}
