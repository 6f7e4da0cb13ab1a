package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-import/internal/domain"
	"catalog-import/internal/repository"
)

func TestPostgresMasterRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	repo := repository.NewPostgresMasterRepository(testDB.Pool)
	ctx := context.Background()

	t.Run("upsert and list ordered by id", func(t *testing.T) {
		testDB.TruncateTables(t, "master_records")

		require.NoError(t, repo.UpsertMasters(ctx, domain.MasterGeneric, []domain.MasterRecord{
			{ID: "g2", Name: "Ascorbic Acid", Aliases: []string{"vitamin c"}},
			{ID: "g1", Name: "Paracetamol"},
		}))

		records, err := repo.ListMasters(ctx, domain.MasterGeneric)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "g1", records[0].ID)
		assert.Equal(t, "g2", records[1].ID)
		assert.Equal(t, []string{"vitamin c"}, records[1].Aliases)
	})

	t.Run("upsert replaces existing record", func(t *testing.T) {
		testDB.TruncateTables(t, "master_records")

		require.NoError(t, repo.UpsertMasters(ctx, domain.MasterManufacturer, []domain.MasterRecord{{ID: "m1", Name: "Acme"}}))
		require.NoError(t, repo.UpsertMasters(ctx, domain.MasterManufacturer, []domain.MasterRecord{{ID: "m1", Name: "Acme Pharma", Aliases: []string{"acme"}}}))

		records, err := repo.ListMasters(ctx, domain.MasterManufacturer)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Acme Pharma", records[0].Name)
		assert.Equal(t, []string{"acme"}, records[0].Aliases)
	})

	t.Run("kinds are separate lists", func(t *testing.T) {
		testDB.TruncateTables(t, "master_records")

		require.NoError(t, repo.UpsertMasters(ctx, domain.MasterCategory, []domain.MasterRecord{{ID: "c1", Name: "Analgesics"}}))

		generics, err := repo.ListMasters(ctx, domain.MasterGeneric)
		require.NoError(t, err)
		assert.Empty(t, generics)
	})
}
