package repositories

import (
	"context"
	"fmt"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

// FormRepository provides data access for form documents.
type FormRepository interface {
	List(ctx context.Context) ([]*models.Form, error)
	Get(ctx context.Context, id string) (*models.Form, error)
	Create(ctx context.Context, f *models.Form) error
	Update(ctx context.Context, f *models.Form) error
	Delete(ctx context.Context, id string) error
}

type formRepository struct {
	fs *store.FileStore
}

// NewFormRepository creates a FormRepository over the given store.
func NewFormRepository(fs *store.FileStore) FormRepository {
	return &formRepository{fs: fs}
}

var _ FormRepository = (*formRepository)(nil)

func (r *formRepository) List(ctx context.Context) ([]*models.Form, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()
	return loadDoc[models.Form](r.fs, FormsDoc)
}

func (r *formRepository) Get(ctx context.Context, id string) (*models.Form, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	forms, err := loadDoc[models.Form](r.fs, FormsDoc)
	if err != nil {
		return nil, err
	}
	for _, f := range forms {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *formRepository) Create(ctx context.Context, f *models.Form) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	forms, err := loadDoc[models.Form](r.fs, FormsDoc)
	if err != nil {
		return err
	}
	for _, existing := range forms {
		if existing.ID == f.ID {
			return fmt.Errorf("form %s: %w", f.ID, apperrors.ErrConflict)
		}
	}
	return r.fs.Save(FormsDoc, append(forms, f))
}

func (r *formRepository) Update(ctx context.Context, f *models.Form) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	forms, err := loadDoc[models.Form](r.fs, FormsDoc)
	if err != nil {
		return err
	}
	for i, existing := range forms {
		if existing.ID == f.ID {
			forms[i] = f
			return r.fs.Save(FormsDoc, forms)
		}
	}
	return apperrors.ErrNotFound
}

func (r *formRepository) Delete(ctx context.Context, id string) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	forms, err := loadDoc[models.Form](r.fs, FormsDoc)
	if err != nil {
		return err
	}
	kept := forms[:0]
	found := false
	for _, f := range forms {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	return r.fs.Save(FormsDoc, kept)
}
