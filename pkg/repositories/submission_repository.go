package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/buntdb"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
)

const submissionKeyPrefix = "submission:"

// SubmissionRepository provides data access for form submissions.
// Submissions are the one append-heavy collection, so they live in an
// embedded key-value store instead of a rewritten JSON document; the
// repository interface keeps that swap invisible to the service layer.
type SubmissionRepository interface {
	ListByForm(ctx context.Context, formID string) ([]*models.Submission, error)
	Get(ctx context.Context, id string) (*models.Submission, error)
	Create(ctx context.Context, s *models.Submission) error
	Delete(ctx context.Context, id string) error
	Close() error
}

type submissionRepository struct {
	db *buntdb.DB
}

// NewSubmissionRepository opens (creating if needed) the submissions
// database at path. Pass ":memory:" for an ephemeral store in tests.
func NewSubmissionRepository(path string) (SubmissionRepository, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open submissions database: %w", err)
	}
	return &submissionRepository{db: db}, nil
}

var _ SubmissionRepository = (*submissionRepository)(nil)

func (r *submissionRepository) ListByForm(ctx context.Context, formID string) ([]*models.Submission, error) {
	submissions := make([]*models.Submission, 0)
	err := r.db.View(func(tx *buntdb.Tx) error {
		var iterErr error
		err := tx.AscendKeys(submissionKeyPrefix+"*", func(key, value string) bool {
			var s models.Submission
			if err := json.Unmarshal([]byte(value), &s); err != nil {
				iterErr = fmt.Errorf("failed to parse submission %s: %w", key, err)
				return false
			}
			if s.FormID == formID {
				submissions = append(submissions, &s)
			}
			return true
		})
		if err != nil {
			return err
		}
		return iterErr
	})
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) Get(ctx context.Context, id string) (*models.Submission, error) {
	var s models.Submission
	err := r.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(submissionKeyPrefix + id)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(value), &s)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepository) Create(ctx context.Context, s *models.Submission) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize submission: %w", err)
	}
	return r.db.Update(func(tx *buntdb.Tx) error {
		key := submissionKeyPrefix + s.ID
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("submission %s: %w", s.ID, apperrors.ErrConflict)
		}
		_, _, err := tx.Set(key, string(data), nil)
		return err
	})
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(submissionKeyPrefix + id)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

func (r *submissionRepository) Close() error {
	return r.db.Close()
}
