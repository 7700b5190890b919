package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

// CategoryRepository provides data access for catalogue categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	fs *store.FileStore
}

// NewCategoryRepository creates a CategoryRepository over the given store.
func NewCategoryRepository(fs *store.FileStore) CategoryRepository {
	return &categoryRepository{fs: fs}
}

var _ CategoryRepository = (*categoryRepository)(nil)

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	categories, err := loadDoc[models.Category](r.fs, CategoriesDoc)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
	return categories, nil
}

func (r *categoryRepository) Get(ctx context.Context, id string) (*models.Category, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	categories, err := loadDoc[models.Category](r.fs, CategoriesDoc)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *categoryRepository) Create(ctx context.Context, c *models.Category) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	categories, err := loadDoc[models.Category](r.fs, CategoriesDoc)
	if err != nil {
		return err
	}
	for _, existing := range categories {
		if existing.ID == c.ID {
			return fmt.Errorf("category %s: %w", c.ID, apperrors.ErrConflict)
		}
	}
	return r.fs.Save(CategoriesDoc, append(categories, c))
}

func (r *categoryRepository) Update(ctx context.Context, c *models.Category) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	categories, err := loadDoc[models.Category](r.fs, CategoriesDoc)
	if err != nil {
		return err
	}
	for i, existing := range categories {
		if existing.ID == c.ID {
			categories[i] = c
			return r.fs.Save(CategoriesDoc, categories)
		}
	}
	return apperrors.ErrNotFound
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	categories, err := loadDoc[models.Category](r.fs, CategoriesDoc)
	if err != nil {
		return err
	}
	kept := categories[:0]
	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	return r.fs.Save(CategoriesDoc, kept)
}
