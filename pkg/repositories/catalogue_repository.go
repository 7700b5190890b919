package repositories

import (
	"context"
	"fmt"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/store"
)

// CatalogueRepository provides data access for the furnisher-scoped side of
// the catalogue: furnishers, their data types, and the data types'
// attributes. The three collections form an ownership tree, so the
// cascading deletes live here rather than in the service layer; each
// cascade is a single locked read-modify-write across the affected
// documents.
type CatalogueRepository interface {
	ListFurnishers(ctx context.Context) ([]*models.Furnisher, error)
	GetFurnisher(ctx context.Context, id string) (*models.Furnisher, error)
	CreateFurnisher(ctx context.Context, f *models.Furnisher) error
	UpdateFurnisher(ctx context.Context, f *models.Furnisher) error
	// DeleteFurnisher removes the furnisher, its data types and their
	// attributes. Returns the number of data types and attributes removed.
	DeleteFurnisher(ctx context.Context, id string) (dataTypes, attributes int, err error)

	ListDataTypes(ctx context.Context) ([]*models.DataType, error)
	ListDataTypesByFurnisher(ctx context.Context, furnisherID string) ([]*models.DataType, error)
	GetDataType(ctx context.Context, id string) (*models.DataType, error)
	CreateDataType(ctx context.Context, dt *models.DataType) error
	UpdateDataType(ctx context.Context, dt *models.DataType) error
	// DeleteDataType removes the data type and its attributes, returning
	// the number of attributes removed.
	DeleteDataType(ctx context.Context, id string) (attributes int, err error)

	ListAttributes(ctx context.Context) ([]*models.Attribute, error)
	ListAttributesByDataType(ctx context.Context, dataTypeID string) ([]*models.Attribute, error)
	GetAttribute(ctx context.Context, id string) (*models.Attribute, error)
	CreateAttribute(ctx context.Context, a *models.Attribute) error
	// CreateAttributes appends a batch in a single document write.
	CreateAttributes(ctx context.Context, attrs []*models.Attribute) error
	UpdateAttribute(ctx context.Context, a *models.Attribute) error
	DeleteAttribute(ctx context.Context, id string) error
}

type catalogueRepository struct {
	fs *store.FileStore
}

// NewCatalogueRepository creates a CatalogueRepository over the given store.
func NewCatalogueRepository(fs *store.FileStore) CatalogueRepository {
	return &catalogueRepository{fs: fs}
}

var _ CatalogueRepository = (*catalogueRepository)(nil)

// ============================================================================
// Furnishers
// ============================================================================

func (r *catalogueRepository) ListFurnishers(ctx context.Context) ([]*models.Furnisher, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()
	return loadDoc[models.Furnisher](r.fs, FurnishersDoc)
}

func (r *catalogueRepository) GetFurnisher(ctx context.Context, id string) (*models.Furnisher, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	furnishers, err := loadDoc[models.Furnisher](r.fs, FurnishersDoc)
	if err != nil {
		return nil, err
	}
	for _, f := range furnishers {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *catalogueRepository) CreateFurnisher(ctx context.Context, f *models.Furnisher) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	furnishers, err := loadDoc[models.Furnisher](r.fs, FurnishersDoc)
	if err != nil {
		return err
	}
	for _, existing := range furnishers {
		if existing.ID == f.ID {
			return fmt.Errorf("furnisher %s: %w", f.ID, apperrors.ErrConflict)
		}
	}
	return r.fs.Save(FurnishersDoc, append(furnishers, f))
}

func (r *catalogueRepository) UpdateFurnisher(ctx context.Context, f *models.Furnisher) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	furnishers, err := loadDoc[models.Furnisher](r.fs, FurnishersDoc)
	if err != nil {
		return err
	}
	for i, existing := range furnishers {
		if existing.ID == f.ID {
			furnishers[i] = f
			return r.fs.Save(FurnishersDoc, furnishers)
		}
	}
	return apperrors.ErrNotFound
}

func (r *catalogueRepository) DeleteFurnisher(ctx context.Context, id string) (int, int, error) {
	r.fs.Lock()
	defer r.fs.Unlock()

	furnishers, err := loadDoc[models.Furnisher](r.fs, FurnishersDoc)
	if err != nil {
		return 0, 0, err
	}

	kept := furnishers[:0]
	found := false
	for _, f := range furnishers {
		if f.ID == id {
			found = true
			continue
		}
		kept = append(kept, f)
	}
	if !found {
		return 0, 0, apperrors.ErrNotFound
	}

	dataTypes, err := loadDoc[models.DataType](r.fs, DataTypesDoc)
	if err != nil {
		return 0, 0, err
	}
	orphaned := make(map[string]bool)
	keptTypes := dataTypes[:0]
	for _, dt := range dataTypes {
		if dt.FurnisherID == id {
			orphaned[dt.ID] = true
			continue
		}
		keptTypes = append(keptTypes, dt)
	}

	attributes, err := loadDoc[models.Attribute](r.fs, AttributesDoc)
	if err != nil {
		return 0, 0, err
	}
	keptAttrs := attributes[:0]
	removedAttrs := 0
	for _, a := range attributes {
		if orphaned[a.DataTypeID] {
			removedAttrs++
			continue
		}
		keptAttrs = append(keptAttrs, a)
	}

	if err := r.fs.Save(FurnishersDoc, kept); err != nil {
		return 0, 0, err
	}
	if err := r.fs.Save(DataTypesDoc, keptTypes); err != nil {
		return 0, 0, err
	}
	if err := r.fs.Save(AttributesDoc, keptAttrs); err != nil {
		return 0, 0, err
	}
	return len(orphaned), removedAttrs, nil
}

// ============================================================================
// Data types
// ============================================================================

func (r *catalogueRepository) ListDataTypes(ctx context.Context) ([]*models.DataType, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()
	return loadDoc[models.DataType](r.fs, DataTypesDoc)
}

func (r *catalogueRepository) ListDataTypesByFurnisher(ctx context.Context, furnisherID string) ([]*models.DataType, error) {
	all, err := r.ListDataTypes(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*models.DataType, 0)
	for _, dt := range all {
		if dt.FurnisherID == furnisherID {
			matched = append(matched, dt)
		}
	}
	return matched, nil
}

func (r *catalogueRepository) GetDataType(ctx context.Context, id string) (*models.DataType, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	dataTypes, err := loadDoc[models.DataType](r.fs, DataTypesDoc)
	if err != nil {
		return nil, err
	}
	for _, dt := range dataTypes {
		if dt.ID == id {
			return dt, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *catalogueRepository) CreateDataType(ctx context.Context, dt *models.DataType) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	dataTypes, err := loadDoc[models.DataType](r.fs, DataTypesDoc)
	if err != nil {
		return err
	}
	for _, existing := range dataTypes {
		if existing.ID == dt.ID {
			return fmt.Errorf("data type %s: %w", dt.ID, apperrors.ErrConflict)
		}
	}
	return r.fs.Save(DataTypesDoc, append(dataTypes, dt))
}

func (r *catalogueRepository) UpdateDataType(ctx context.Context, dt *models.DataType) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	dataTypes, err := loadDoc[models.DataType](r.fs, DataTypesDoc)
	if err != nil {
		return err
	}
	for i, existing := range dataTypes {
		if existing.ID == dt.ID {
			dataTypes[i] = dt
			return r.fs.Save(DataTypesDoc, dataTypes)
		}
	}
	return apperrors.ErrNotFound
}

func (r *catalogueRepository) DeleteDataType(ctx context.Context, id string) (int, error) {
	r.fs.Lock()
	defer r.fs.Unlock()

	dataTypes, err := loadDoc[models.DataType](r.fs, DataTypesDoc)
	if err != nil {
		return 0, err
	}
	kept := dataTypes[:0]
	found := false
	for _, dt := range dataTypes {
		if dt.ID == id {
			found = true
			continue
		}
		kept = append(kept, dt)
	}
	if !found {
		return 0, apperrors.ErrNotFound
	}

	attributes, err := loadDoc[models.Attribute](r.fs, AttributesDoc)
	if err != nil {
		return 0, err
	}
	keptAttrs := attributes[:0]
	removed := 0
	for _, a := range attributes {
		if a.DataTypeID == id {
			removed++
			continue
		}
		keptAttrs = append(keptAttrs, a)
	}

	if err := r.fs.Save(DataTypesDoc, kept); err != nil {
		return 0, err
	}
	if err := r.fs.Save(AttributesDoc, keptAttrs); err != nil {
		return 0, err
	}
	return removed, nil
}

// ============================================================================
// Attributes
// ============================================================================

func (r *catalogueRepository) ListAttributes(ctx context.Context) ([]*models.Attribute, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()
	return loadDoc[models.Attribute](r.fs, AttributesDoc)
}

func (r *catalogueRepository) ListAttributesByDataType(ctx context.Context, dataTypeID string) ([]*models.Attribute, error) {
	all, err := r.ListAttributes(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*models.Attribute, 0)
	for _, a := range all {
		if a.DataTypeID == dataTypeID {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (r *catalogueRepository) GetAttribute(ctx context.Context, id string) (*models.Attribute, error) {
	r.fs.RLock()
	defer r.fs.RUnlock()

	attributes, err := loadDoc[models.Attribute](r.fs, AttributesDoc)
	if err != nil {
		return nil, err
	}
	for _, a := range attributes {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *catalogueRepository) CreateAttribute(ctx context.Context, a *models.Attribute) error {
	return r.CreateAttributes(ctx, []*models.Attribute{a})
}

func (r *catalogueRepository) CreateAttributes(ctx context.Context, attrs []*models.Attribute) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	attributes, err := loadDoc[models.Attribute](r.fs, AttributesDoc)
	if err != nil {
		return err
	}
	existing := make(map[string]bool, len(attributes))
	for _, a := range attributes {
		existing[a.ID] = true
	}
	for _, a := range attrs {
		if existing[a.ID] {
			return fmt.Errorf("attribute %s: %w", a.ID, apperrors.ErrConflict)
		}
		existing[a.ID] = true
	}
	return r.fs.Save(AttributesDoc, append(attributes, attrs...))
}

func (r *catalogueRepository) UpdateAttribute(ctx context.Context, a *models.Attribute) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	attributes, err := loadDoc[models.Attribute](r.fs, AttributesDoc)
	if err != nil {
		return err
	}
	for i, existing := range attributes {
		if existing.ID == a.ID {
			attributes[i] = a
			return r.fs.Save(AttributesDoc, attributes)
		}
	}
	return apperrors.ErrNotFound
}

func (r *catalogueRepository) DeleteAttribute(ctx context.Context, id string) error {
	r.fs.Lock()
	defer r.fs.Unlock()

	attributes, err := loadDoc[models.Attribute](r.fs, AttributesDoc)
	if err != nil {
		return err
	}
	kept := attributes[:0]
	found := false
	for _, a := range attributes {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return apperrors.ErrNotFound
	}
	return r.fs.Save(AttributesDoc, kept)
}
