package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/repositories"
	"github.com/copa-network/copa-console/pkg/store"
)

func newVocabularyService(t *testing.T) VocabularyService {
	t.Helper()
	fs := store.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, fs.Save(repositories.VocabularyDoc, []any{}))
	return NewVocabularyService(repositories.NewVocabularyRepository(fs), zap.NewNop())
}

func seedVocabularyType(t *testing.T, svc VocabularyService) (*models.VocabularyType, *models.Property) {
	t.Helper()
	ctx := context.Background()

	vt, err := svc.CreateType(ctx, &models.VocabularyType{Name: "CreditReport", Category: "financial"})
	require.NoError(t, err)
	p, err := svc.AddProperty(ctx, vt.ID, &models.Property{Name: "creditScore", ValueType: models.ValueKindInteger})
	require.NoError(t, err)
	return vt, p
}

func TestCreateTypeDefaults(t *testing.T) {
	svc := newVocabularyService(t)

	vt, err := svc.CreateType(context.Background(), &models.VocabularyType{Name: "Income"})
	require.NoError(t, err)
	assert.Regexp(t, `^data-type-\d+$`, vt.ID)
	assert.NotNil(t, vt.Properties)
	assert.NotNil(t, vt.Sources)
	assert.False(t, vt.CreatedAt.IsZero())
}

func TestListTypesCategoryAndSearch(t *testing.T) {
	svc := newVocabularyService(t)
	ctx := context.Background()
	seedVocabularyType(t, svc)
	_, err := svc.CreateType(ctx, &models.VocabularyType{Name: "UtilityBill", Category: "utilities"})
	require.NoError(t, err)

	types, err := svc.ListTypes(ctx, "financial", "")
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "CreditReport", types[0].Name)

	types, err = svc.ListTypes(ctx, "", "utility")
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "UtilityBill", types[0].Name)

	// single-character search is ignored, not applied
	types, err = svc.ListTypes(ctx, "", "u")
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestUpdateTypePatch(t *testing.T) {
	svc := newVocabularyService(t)
	vt, _ := seedVocabularyType(t, svc)

	desc := "consumer credit file"
	updated, err := svc.UpdateType(context.Background(), vt.ID, &VocabularyTypePatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "CreditReport", updated.Name)
	assert.Equal(t, desc, updated.Description)
}

func TestPropertyLifecycle(t *testing.T) {
	svc := newVocabularyService(t)
	ctx := context.Background()
	vt, p := seedVocabularyType(t, svc)

	required := true
	updated, err := svc.UpdateProperty(ctx, vt.ID, p.ID, &PropertyPatch{Required: &required})
	require.NoError(t, err)
	assert.True(t, updated.Required)

	// duplicate property ID is rejected
	_, err = svc.AddProperty(ctx, vt.ID, &models.Property{ID: p.ID, Name: "again"})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, svc.DeleteProperty(ctx, vt.ID, p.ID))
	fetched, err := svc.GetType(ctx, vt.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Properties)

	err = svc.DeleteProperty(ctx, vt.ID, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSourceLifecycle(t *testing.T) {
	svc := newVocabularyService(t)
	ctx := context.Background()
	vt, _ := seedVocabularyType(t, svc)

	src, err := svc.AddSource(ctx, vt.ID, &models.Source{EntityID: "furnisher-1", EntityName: "Acme"})
	require.NoError(t, err)
	assert.False(t, src.AddedAt.IsZero())

	_, err = svc.AddSource(ctx, vt.ID, &models.Source{EntityID: "furnisher-1"})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	freq := "monthly"
	updated, err := svc.UpdateSource(ctx, vt.ID, "furnisher-1", &SourcePatch{UpdateFrequency: &freq})
	require.NoError(t, err)
	assert.Equal(t, "monthly", updated.UpdateFrequency)
	assert.Equal(t, "Acme", updated.EntityName)

	require.NoError(t, svc.DeleteSource(ctx, vt.ID, "furnisher-1"))
	err = svc.DeleteSource(ctx, vt.ID, "furnisher-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMappingLifecycle(t *testing.T) {
	svc := newVocabularyService(t)
	ctx := context.Background()
	vt, p := seedVocabularyType(t, svc)

	m, err := svc.AddMapping(ctx, vt.ID, p.ID, &models.ProviderMapping{EntityID: "furnisher-1", ProviderFieldName: "score"})
	require.NoError(t, err)
	assert.False(t, m.AddedAt.IsZero())

	_, err = svc.AddMapping(ctx, vt.ID, p.ID, &models.ProviderMapping{EntityID: "furnisher-1"})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.AddMapping(ctx, vt.ID, "missing", &models.ProviderMapping{EntityID: "furnisher-2"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.DeleteMapping(ctx, vt.ID, p.ID, "furnisher-1"))
	err = svc.DeleteMapping(ctx, vt.ID, p.ID, "furnisher-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestBulkAddMappingsSkips(t *testing.T) {
	svc := newVocabularyService(t)
	ctx := context.Background()
	vt, p := seedVocabularyType(t, svc)

	_, err := svc.AddMapping(ctx, vt.ID, p.ID, &models.ProviderMapping{EntityID: "furnisher-1"})
	require.NoError(t, err)

	result, err := svc.BulkAddMappings(ctx, vt.ID, p.ID, []*models.ProviderMapping{
		{EntityID: "furnisher-1"},
		{EntityID: ""},
		{EntityID: "furnisher-2"},
		{EntityID: "furnisher-3"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 2, result.Skipped)

	fetched, err := svc.GetType(ctx, vt.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Properties[0].ProviderMappings, 3)
}

func TestBulkRemoveMappingsSkipsUnmatched(t *testing.T) {
	svc := newVocabularyService(t)
	ctx := context.Background()
	vt, p := seedVocabularyType(t, svc)

	_, err := svc.BulkAddMappings(ctx, vt.ID, p.ID, []*models.ProviderMapping{
		{EntityID: "furnisher-1"},
		{EntityID: "furnisher-2"},
	})
	require.NoError(t, err)

	result, err := svc.BulkRemoveMappings(ctx, vt.ID, p.ID, []string{"furnisher-1", "furnisher-9"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)
	assert.Equal(t, 1, result.Skipped)

	fetched, err := svc.GetType(ctx, vt.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Properties[0].ProviderMappings, 1)
	assert.Equal(t, "furnisher-2", fetched.Properties[0].ProviderMappings[0].EntityID)
}
