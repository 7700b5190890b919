package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
)

func newSubmissionRepo(t *testing.T) SubmissionRepository {
	t.Helper()
	repo, err := NewSubmissionRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSubmissionRepository_CreateThenGet(t *testing.T) {
	repo := newSubmissionRepo(t)
	ctx := context.Background()

	s := &models.Submission{
		ID:          "submission-1",
		FormID:      "form-1",
		Data:        map[string]string{"email": "a@example.com"},
		Status:      models.SubmissionStatusReceived,
		SubmittedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.Get(ctx, "submission-1")
	require.NoError(t, err)
	assert.Equal(t, s.FormID, got.FormID)
	assert.Equal(t, s.Data, got.Data)
}

func TestSubmissionRepository_Create_DuplicateID(t *testing.T) {
	repo := newSubmissionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Submission{ID: "submission-1", FormID: "form-1"}))
	err := repo.Create(ctx, &models.Submission{ID: "submission-1", FormID: "form-1"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSubmissionRepository_ListByForm_FiltersOtherForms(t *testing.T) {
	repo := newSubmissionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Submission{ID: "submission-1", FormID: "form-1"}))
	require.NoError(t, repo.Create(ctx, &models.Submission{ID: "submission-2", FormID: "form-2"}))
	require.NoError(t, repo.Create(ctx, &models.Submission{ID: "submission-3", FormID: "form-1"}))

	submissions, err := repo.ListByForm(ctx, "form-1")
	require.NoError(t, err)
	assert.Len(t, submissions, 2)
}

func TestSubmissionRepository_Delete_NotFound(t *testing.T) {
	repo := newSubmissionRepo(t)

	err := repo.Delete(context.Background(), "submission-missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
