//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/semanticshop/storefront/internal/testutil"
)

// TestMain shares one MongoDB container across the package's integration tests.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

// setupMongoRepository connects to the shared container using a database
// unique to the test.
func setupMongoRepository(t *testing.T, cfg MongoConfig) *MongoRepository {
	t.Helper()
	repo, err := NewMongoRepository(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close(context.Background())
	})
	return repo
}
