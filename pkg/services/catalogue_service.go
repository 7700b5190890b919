package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/idgen"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/repositories"
	"github.com/copa-network/copa-console/pkg/store"
)

// FurnisherSummary is a furnisher with the counts shown in list panels.
type FurnisherSummary struct {
	*models.Furnisher
	Stats models.FurnisherStats `json:"stats"`
}

// DataTypeDetail is a data type with its attributes resolved.
type DataTypeDetail struct {
	*models.DataType
	Attributes []*models.Attribute `json:"attributes"`
}

// FurnisherDetail is a furnisher with its full data type tree resolved.
type FurnisherDetail struct {
	*models.Furnisher
	DataTypes []*DataTypeDetail `json:"dataTypes"`
}

// FurnisherPatch is a partial furnisher update. Nil fields keep the stored
// value; callers clear a field by sending an explicit empty value.
type FurnisherPatch struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	LogoURI        *string   `json:"logoUri"`
	Website        *string   `json:"website"`
	ContactName    *string   `json:"contactName"`
	ContactEmail   *string   `json:"contactEmail"`
	RegionsCovered *[]string `json:"regionsCovered"`
	DID            *string   `json:"did"`
}

// DataTypePatch is a partial data type update.
type DataTypePatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AttributePatch is a partial attribute update.
type AttributePatch struct {
	Name        *string `json:"name"`
	DisplayName *string `json:"displayName"`
	DataType    *string `json:"dataType"`
	SampleValue *string `json:"sampleValue"`
	// RegionsCovered set to an empty array reverts the attribute to
	// inheriting the furnisher's regions.
	RegionsCovered *[]string          `json:"regionsCovered"`
	Path           *string            `json:"path"`
	Metadata       *map[string]string `json:"metadata"`
}

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

// BulkAttributeResult reports a bulk attribute import.
type BulkAttributeResult struct {
	Created    int                 `json:"created"`
	Skipped    int                 `json:"skipped"`
	Attributes []*models.Attribute `json:"attributes"`
}

// CatalogueStats holds the entity counts for GET /api/catalogue/stats.
type CatalogueStats struct {
	Furnishers      int `json:"furnishers"`
	DataTypes       int `json:"dataTypes"`
	Attributes      int `json:"attributes"`
	VocabularyTypes int `json:"vocabularyTypes"`
	Categories      int `json:"categories"`
}

// CatalogueService provides the furnisher-scoped catalogue operations plus
// the cross-entity ones (search, export/import, stats, reseed).
type CatalogueService interface {
	ListFurnishers(ctx context.Context, search string) ([]*FurnisherSummary, error)
	GetFurnisher(ctx context.Context, id string) (*FurnisherDetail, error)
	CreateFurnisher(ctx context.Context, f *models.Furnisher) (*models.Furnisher, error)
	UpdateFurnisher(ctx context.Context, id string, patch *FurnisherPatch) (*models.Furnisher, error)
	DeleteFurnisher(ctx context.Context, id string) error

	ListDataTypes(ctx context.Context, furnisherID string) ([]*models.DataType, error)
	GetDataType(ctx context.Context, id string) (*DataTypeDetail, error)
	CreateDataType(ctx context.Context, dt *models.DataType) (*models.DataType, error)
	UpdateDataType(ctx context.Context, id string, patch *DataTypePatch) (*models.DataType, error)
	DeleteDataType(ctx context.Context, id string) error

	ListAttributes(ctx context.Context, dataTypeID string) ([]*models.Attribute, error)
	GetAttribute(ctx context.Context, id string) (*models.Attribute, error)
	CreateAttribute(ctx context.Context, a *models.Attribute) (*models.Attribute, error)
	BulkCreateAttributes(ctx context.Context, dataTypeID string, attrs []*models.Attribute) (*BulkAttributeResult, error)
	UpdateAttribute(ctx context.Context, id string, patch *AttributePatch) (*models.Attribute, error)
	DeleteAttribute(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, patch *CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	Search(ctx context.Context, query string) (*SearchResult, error)
	Export(ctx context.Context) (*ExportDocument, error)
	Import(ctx context.Context, raw []byte) (*ImportResult, error)
	Stats(ctx context.Context) (*CatalogueStats, error)
	Reseed(ctx context.Context) error
}

type catalogueService struct {
	catalogue  repositories.CatalogueRepository
	categories repositories.CategoryRepository
	vocabulary repositories.VocabularyRepository
	fs         *store.FileStore
	logger     *zap.Logger
}

// NewCatalogueService creates a new catalogue service.
func NewCatalogueService(
	catalogue repositories.CatalogueRepository,
	categories repositories.CategoryRepository,
	vocabulary repositories.VocabularyRepository,
	fs *store.FileStore,
	logger *zap.Logger,
) CatalogueService {
	return &catalogueService{
		catalogue:  catalogue,
		categories: categories,
		vocabulary: vocabulary,
		fs:         fs,
		logger:     logger,
	}
}

var _ CatalogueService = (*catalogueService)(nil)

// ============================================================================
// Furnishers
// ============================================================================

func (s *catalogueService) ListFurnishers(ctx context.Context, search string) ([]*FurnisherSummary, error) {
	furnishers, err := s.catalogue.ListFurnishers(ctx)
	if err != nil {
		return nil, err
	}
	if len(search) >= minSearchLength {
		furnishers = filterByText(furnishers, search, func(f *models.Furnisher) []string {
			return []string{f.Name, f.Description}
		})
	}

	dataTypes, err := s.catalogue.ListDataTypes(ctx)
	if err != nil {
		return nil, err
	}
	attributes, err := s.catalogue.ListAttributes(ctx)
	if err != nil {
		return nil, err
	}

	typeOwner := make(map[string]string, len(dataTypes))
	typeCounts := make(map[string]int)
	for _, dt := range dataTypes {
		typeOwner[dt.ID] = dt.FurnisherID
		typeCounts[dt.FurnisherID]++
	}
	attrCounts := make(map[string]int)
	for _, a := range attributes {
		attrCounts[typeOwner[a.DataTypeID]]++
	}

	summaries := make([]*FurnisherSummary, 0, len(furnishers))
	for _, f := range furnishers {
		summaries = append(summaries, &FurnisherSummary{
			Furnisher: f,
			Stats: models.FurnisherStats{
				DataTypeCount:  typeCounts[f.ID],
				AttributeCount: attrCounts[f.ID],
			},
		})
	}
	return summaries, nil
}

func (s *catalogueService) GetFurnisher(ctx context.Context, id string) (*FurnisherDetail, error) {
	f, err := s.catalogue.GetFurnisher(ctx, id)
	if err != nil {
		return nil, err
	}

	dataTypes, err := s.catalogue.ListDataTypesByFurnisher(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &FurnisherDetail{Furnisher: f, DataTypes: make([]*DataTypeDetail, 0, len(dataTypes))}
	for _, dt := range dataTypes {
		attrs, err := s.catalogue.ListAttributesByDataType(ctx, dt.ID)
		if err != nil {
			return nil, err
		}
		detail.DataTypes = append(detail.DataTypes, &DataTypeDetail{DataType: dt, Attributes: attrs})
	}
	return detail, nil
}

func (s *catalogueService) CreateFurnisher(ctx context.Context, f *models.Furnisher) (*models.Furnisher, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if f.ID == "" {
		f.ID = idgen.New("furnishers")
	}
	if f.RegionsCovered == nil {
		f.RegionsCovered = []string{}
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	if err := s.catalogue.CreateFurnisher(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("Created furnisher", zap.String("furnisher_id", f.ID))
	return f, nil
}

func (s *catalogueService) UpdateFurnisher(ctx context.Context, id string, patch *FurnisherPatch) (*models.Furnisher, error) {
	f, err := s.catalogue.GetFurnisher(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&f.Name, patch.Name)
	setString(&f.Description, patch.Description)
	setString(&f.LogoURI, patch.LogoURI)
	setString(&f.Website, patch.Website)
	setString(&f.ContactName, patch.ContactName)
	setString(&f.ContactEmail, patch.ContactEmail)
	setString(&f.DID, patch.DID)
	if patch.RegionsCovered != nil {
		f.RegionsCovered = *patch.RegionsCovered
	}
	f.UpdatedAt = time.Now().UTC()

	if err := s.catalogue.UpdateFurnisher(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *catalogueService) DeleteFurnisher(ctx context.Context, id string) error {
	dataTypes, attributes, err := s.catalogue.DeleteFurnisher(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("Deleted furnisher",
		zap.String("furnisher_id", id),
		zap.Int("data_types_removed", dataTypes),
		zap.Int("attributes_removed", attributes))
	return nil
}

// ============================================================================
// Data types
// ============================================================================

func (s *catalogueService) ListDataTypes(ctx context.Context, furnisherID string) ([]*models.DataType, error) {
	if furnisherID != "" {
		return s.catalogue.ListDataTypesByFurnisher(ctx, furnisherID)
	}
	return s.catalogue.ListDataTypes(ctx)
}

func (s *catalogueService) GetDataType(ctx context.Context, id string) (*DataTypeDetail, error) {
	dt, err := s.catalogue.GetDataType(ctx, id)
	if err != nil {
		return nil, err
	}
	attrs, err := s.catalogue.ListAttributesByDataType(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DataTypeDetail{DataType: dt, Attributes: attrs}, nil
}

func (s *catalogueService) CreateDataType(ctx context.Context, dt *models.DataType) (*models.DataType, error) {
	if dt.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if dt.FurnisherID == "" {
		return nil, fmt.Errorf("%w: furnisherId is required", apperrors.ErrValidation)
	}
	if dt.ID == "" {
		dt.ID = idgen.New("data-types")
	}
	now := time.Now().UTC()
	dt.CreatedAt = now
	dt.UpdatedAt = now

	if err := s.catalogue.CreateDataType(ctx, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

func (s *catalogueService) UpdateDataType(ctx context.Context, id string, patch *DataTypePatch) (*models.DataType, error) {
	dt, err := s.catalogue.GetDataType(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&dt.Name, patch.Name)
	setString(&dt.Description, patch.Description)
	dt.UpdatedAt = time.Now().UTC()

	if err := s.catalogue.UpdateDataType(ctx, dt); err != nil {
		return nil, err
	}
	return dt, nil
}

func (s *catalogueService) DeleteDataType(ctx context.Context, id string) error {
	attributes, err := s.catalogue.DeleteDataType(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("Deleted data type",
		zap.String("data_type_id", id),
		zap.Int("attributes_removed", attributes))
	return nil
}

// ============================================================================
// Attributes
// ============================================================================

func (s *catalogueService) ListAttributes(ctx context.Context, dataTypeID string) ([]*models.Attribute, error) {
	if dataTypeID != "" {
		return s.catalogue.ListAttributesByDataType(ctx, dataTypeID)
	}
	return s.catalogue.ListAttributes(ctx)
}

func (s *catalogueService) GetAttribute(ctx context.Context, id string) (*models.Attribute, error) {
	return s.catalogue.GetAttribute(ctx, id)
}

func (s *catalogueService) CreateAttribute(ctx context.Context, a *models.Attribute) (*models.Attribute, error) {
	if a.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if a.DataTypeID == "" {
		return nil, fmt.Errorf("%w: dataTypeId is required", apperrors.ErrValidation)
	}
	if a.ID == "" {
		a.ID = idgen.New("attributes")
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.catalogue.CreateAttribute(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// BulkCreateAttributes imports a batch under one data type. Entries missing
// a name are skipped, not failed, and do not count toward Created.
func (s *catalogueService) BulkCreateAttributes(ctx context.Context, dataTypeID string, attrs []*models.Attribute) (*BulkAttributeResult, error) {
	if dataTypeID == "" {
		return nil, fmt.Errorf("%w: dataTypeId is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	result := &BulkAttributeResult{Attributes: make([]*models.Attribute, 0, len(attrs))}
	for _, a := range attrs {
		if a.Name == "" {
			result.Skipped++
			continue
		}
		a.DataTypeID = dataTypeID
		if a.ID == "" {
			a.ID = idgen.New("attributes")
		}
		a.CreatedAt = now
		a.UpdatedAt = now
		result.Attributes = append(result.Attributes, a)
	}

	if len(result.Attributes) > 0 {
		if err := s.catalogue.CreateAttributes(ctx, result.Attributes); err != nil {
			return nil, err
		}
	}
	result.Created = len(result.Attributes)
	return result, nil
}

func (s *catalogueService) UpdateAttribute(ctx context.Context, id string, patch *AttributePatch) (*models.Attribute, error) {
	a, err := s.catalogue.GetAttribute(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&a.Name, patch.Name)
	setString(&a.DisplayName, patch.DisplayName)
	setString(&a.DataType, patch.DataType)
	setString(&a.SampleValue, patch.SampleValue)
	setString(&a.Path, patch.Path)
	if patch.RegionsCovered != nil {
		a.RegionsCovered = *patch.RegionsCovered
	}
	if patch.Metadata != nil {
		a.Metadata = *patch.Metadata
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.catalogue.UpdateAttribute(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *catalogueService) DeleteAttribute(ctx context.Context, id string) error {
	return s.catalogue.DeleteAttribute(ctx, id)
}

// ============================================================================
// Categories
// ============================================================================

func (s *catalogueService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.List(ctx)
}

func (s *catalogueService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *catalogueService) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if c.ID == "" {
		c.ID = idgen.New("categories")
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogueService) UpdateCategory(ctx context.Context, id string, patch *CategoryPatch) (*models.Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&c.Name, patch.Name)
	setString(&c.Description, patch.Description)
	if patch.Order != nil {
		c.Order = *patch.Order
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogueService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// ============================================================================
// Reseed
// ============================================================================

func (s *catalogueService) Reseed(ctx context.Context) error {
	return s.fs.Reseed(repositories.SeedDocs...)
}

// setString applies a patch field when present.
func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
