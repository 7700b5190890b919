package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

func newVocabularyRepo(t *testing.T) VocabularyRepository {
	t.Helper()
	fs := store.NewFileStore(t.TempDir(), zap.NewNop())
	repo := NewVocabularyRepository(fs)
	require.NoError(t, fs.Save(VocabularyDoc, []*models.VocabularyType{}))
	return repo
}

func TestVocabularyRepository_Mutate_PersistsNestedEdit(t *testing.T) {
	repo := newVocabularyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.VocabularyType{
		ID:         "data-type-1",
		Name:       "CreditReport",
		Properties: []*models.Property{},
		Sources:    []*models.Source{},
	}))

	_, err := repo.Mutate(ctx, "data-type-1", func(vt *models.VocabularyType) error {
		vt.Properties = append(vt.Properties, &models.Property{ID: "property-1", Name: "score"})
		return nil
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, "data-type-1")
	require.NoError(t, err)
	require.Len(t, got.Properties, 1)
	assert.Equal(t, "score", got.Properties[0].Name)
}

func TestVocabularyRepository_Mutate_ErrorAbortsWrite(t *testing.T) {
	repo := newVocabularyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.VocabularyType{ID: "data-type-1", Name: "CreditReport"}))

	boom := errors.New("boom")
	_, err := repo.Mutate(ctx, "data-type-1", func(vt *models.VocabularyType) error {
		vt.Name = "changed"
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.Get(ctx, "data-type-1")
	require.NoError(t, err)
	assert.Equal(t, "CreditReport", got.Name)
}

func TestVocabularyRepository_Mutate_NotFound(t *testing.T) {
	repo := newVocabularyRepo(t)

	_, err := repo.Mutate(context.Background(), "data-type-missing", func(vt *models.VocabularyType) error {
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVocabularyRepository_Delete_RemovesEmbeddedChildren(t *testing.T) {
	repo := newVocabularyRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.VocabularyType{
		ID:   "data-type-1",
		Name: "CreditReport",
		Properties: []*models.Property{
			{ID: "property-1", Name: "score"},
		},
	}))

	require.NoError(t, repo.Delete(ctx, "data-type-1"))

	types, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, types)
}
