package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

func newCatalogueRepo(t *testing.T) CatalogueRepository {
	t.Helper()
	fs := store.NewFileStore(t.TempDir(), zap.NewNop())
	repo := NewCatalogueRepository(fs)

	// Start from empty documents rather than the bundled seeds.
	require.NoError(t, fs.Save(FurnishersDoc, []*models.Furnisher{}))
	require.NoError(t, fs.Save(DataTypesDoc, []*models.DataType{}))
	require.NoError(t, fs.Save(AttributesDoc, []*models.Attribute{}))
	return repo
}

func TestCatalogueRepository_CreateThenGetFurnisher(t *testing.T) {
	repo := newCatalogueRepo(t)
	ctx := context.Background()

	f := &models.Furnisher{ID: "furnisher-1", Name: "Acme", RegionsCovered: []string{}}
	require.NoError(t, repo.CreateFurnisher(ctx, f))

	got, err := repo.GetFurnisher(ctx, "furnisher-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestCatalogueRepository_CreateFurnisher_DuplicateID(t *testing.T) {
	repo := newCatalogueRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateFurnisher(ctx, &models.Furnisher{ID: "furnisher-1", Name: "Acme"}))
	err := repo.CreateFurnisher(ctx, &models.Furnisher{ID: "furnisher-1", Name: "Other"})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	// The stored collection is unchanged.
	furnishers, err := repo.ListFurnishers(ctx)
	require.NoError(t, err)
	require.Len(t, furnishers, 1)
	assert.Equal(t, "Acme", furnishers[0].Name)
}

func TestCatalogueRepository_GetFurnisher_NotFound(t *testing.T) {
	repo := newCatalogueRepo(t)

	_, err := repo.GetFurnisher(context.Background(), "furnisher-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogueRepository_DeleteFurnisher_Cascades(t *testing.T) {
	repo := newCatalogueRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateFurnisher(ctx, &models.Furnisher{ID: "furnisher-1", Name: "Acme"}))
	require.NoError(t, repo.CreateFurnisher(ctx, &models.Furnisher{ID: "furnisher-2", Name: "Bravo"}))
	require.NoError(t, repo.CreateDataType(ctx, &models.DataType{ID: "data-type-1", FurnisherID: "furnisher-1", Name: "Credit"}))
	require.NoError(t, repo.CreateDataType(ctx, &models.DataType{ID: "data-type-2", FurnisherID: "furnisher-1", Name: "Income"}))
	require.NoError(t, repo.CreateDataType(ctx, &models.DataType{ID: "data-type-3", FurnisherID: "furnisher-2", Name: "Utility"}))
	require.NoError(t, repo.CreateAttributes(ctx, []*models.Attribute{
		{ID: "attribute-1", DataTypeID: "data-type-1", Name: "score"},
		{ID: "attribute-2", DataTypeID: "data-type-2", Name: "salary"},
		{ID: "attribute-3", DataTypeID: "data-type-3", Name: "onTime"},
	}))

	removedTypes, removedAttrs, err := repo.DeleteFurnisher(ctx, "furnisher-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removedTypes)
	assert.Equal(t, 2, removedAttrs)

	_, err = repo.GetFurnisher(ctx, "furnisher-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	dataTypes, err := repo.ListDataTypes(ctx)
	require.NoError(t, err)
	require.Len(t, dataTypes, 1)
	assert.Equal(t, "data-type-3", dataTypes[0].ID)

	attributes, err := repo.ListAttributes(ctx)
	require.NoError(t, err)
	require.Len(t, attributes, 1)
	assert.Equal(t, "attribute-3", attributes[0].ID)
}

func TestCatalogueRepository_DeleteDataType_CascadesToAttributes(t *testing.T) {
	repo := newCatalogueRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateDataType(ctx, &models.DataType{ID: "data-type-1", FurnisherID: "furnisher-1", Name: "Credit"}))
	require.NoError(t, repo.CreateAttributes(ctx, []*models.Attribute{
		{ID: "attribute-1", DataTypeID: "data-type-1", Name: "score"},
		{ID: "attribute-2", DataTypeID: "data-type-1", Name: "band"},
	}))

	removed, err := repo.DeleteDataType(ctx, "data-type-1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	attributes, err := repo.ListAttributes(ctx)
	require.NoError(t, err)
	assert.Empty(t, attributes)
}

func TestCatalogueRepository_UpdateAttribute_NotFound(t *testing.T) {
	repo := newCatalogueRepo(t)

	err := repo.UpdateAttribute(context.Background(), &models.Attribute{ID: "attribute-missing", Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogueRepository_CreateAttributes_RejectsDuplicateInBatch(t *testing.T) {
	repo := newCatalogueRepo(t)
	ctx := context.Background()

	err := repo.CreateAttributes(ctx, []*models.Attribute{
		{ID: "attribute-1", DataTypeID: "data-type-1", Name: "a"},
		{ID: "attribute-1", DataTypeID: "data-type-1", Name: "b"},
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	attributes, err := repo.ListAttributes(ctx)
	require.NoError(t, err)
	assert.Empty(t, attributes)
}
