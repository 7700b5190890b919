package repositories

import (
	"context"
	"fmt"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

// VocabularyRepository provides data access for vocabulary data types.
// Properties, sources and provider mappings are embedded in the type
// document, so nested mutations go through Mutate, which holds the store
// lock across the caller's edit and the persisting write.
type VocabularyRepository interface {
	List(ctx context.Context) ([]*models.VocabularyType, error)
	Get(ctx context.Context, id string) (*models.VocabularyType, error)
	Create(ctx context.Context, vt *models.VocabularyType) error
	// Mutate locates the type, applies fn to it in place, and persists the
	// whole document. fn returning an error aborts without writing.
	Mutate(ctx context.Context, id string, fn func(*models.VocabularyType) error) (*models.VocabularyType, error)
	Delete(ctx context.Context, id string) error
}

type vocabularyRepository struct {
	fs *store.FileStore
}

// NewVocabularyRepository creates a VocabularyRepository over the given store.
func NewVocabularyRepository(fs *store.FileStore) VocabularyRepository {
	return &vocabularyRepository{fs: fs}
}

var _ VocabularyRepository = (*vocabularyRepository)(nil)

func (r *vocabularyRepository) List(ctx context.Context) ([]*models.VocabularyType, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()
	return loadDoc[models.VocabularyType](r.fs, VocabularyDoc)
}

func (r *vocabularyRepository) Get(ctx context.Context, id string) (*models.VocabularyType, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	types, err := loadDoc[models.VocabularyType](r.fs, VocabularyDoc)
	if err != nil {
		return nil, err
	}
	for _, vt := range types {
		if vt.ID == id {
			return vt, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *vocabularyRepository) Create(ctx context.Context, vt *models.VocabularyType) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	types, err := loadDoc[models.VocabularyType](r.fs, VocabularyDoc)
	if err != nil {
		return err
	}
	for _, existing := range types {
		if existing.ID == vt.ID {
			return fmt.Errorf("vocabulary type %s: %w", vt.ID, apperrors.ErrConflict)
		}
	}
	return r.fs.Save(VocabularyDoc, append(types, vt))
}

func (r *vocabularyRepository) Mutate(ctx context.Context, id string, fn func(*models.VocabularyType) error) (*models.VocabularyType, error) {
	r.fs.Lock()
	defer r.fs.Unlock()

	types, err := loadDoc[models.VocabularyType](r.fs, VocabularyDoc)
	if err != nil {
		return nil, err
	}
	for _, vt := range types {
		if vt.ID == id {
			if err := fn(vt); err != nil {
				return nil, err
			}
			if err := r.fs.Save(VocabularyDoc, types); err != nil {
				return nil, err
			}
			return vt, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *vocabularyRepository) Delete(ctx context.Context, id string) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	types, err := loadDoc[models.VocabularyType](r.fs, VocabularyDoc)
	if err != nil {
		return err
	}
	kept := types[:0]
	found := false
	for _, vt := range types {
		if vt.ID == id {
			found = true
			continue
		}
		kept = append(kept, vt)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	// Properties and sources are embedded, so they go with the document;
	// no further cascade.
	return r.fs.Save(VocabularyDoc, kept)
}
