package handlers

import (
	"context"

	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/services"
)

// Hand-written mocks with function fields. Tests set only the functions
// they exercise; calling an unset function panics, which fails the test.

type mockCatalogueService struct {
	listFurnishersFn  func(ctx context.Context, search string) ([]*services.FurnisherSummary, error)
	getFurnisherFn    func(ctx context.Context, id string) (*services.FurnisherDetail, error)
	createFurnisherFn func(ctx context.Context, f *models.Furnisher) (*models.Furnisher, error)
	updateFurnisherFn func(ctx context.Context, id string, patch *services.FurnisherPatch) (*models.Furnisher, error)
	deleteFurnisherFn func(ctx context.Context, id string) error

	listDataTypesFn  func(ctx context.Context, furnisherID string) ([]*models.DataType, error)
	getDataTypeFn    func(ctx context.Context, id string) (*services.DataTypeDetail, error)
	createDataTypeFn func(ctx context.Context, dt *models.DataType) (*models.DataType, error)
	updateDataTypeFn func(ctx context.Context, id string, patch *services.DataTypePatch) (*models.DataType, error)
	deleteDataTypeFn func(ctx context.Context, id string) error

	listAttributesFn     func(ctx context.Context, dataTypeID string) ([]*models.Attribute, error)
	getAttributeFn       func(ctx context.Context, id string) (*models.Attribute, error)
	createAttributeFn    func(ctx context.Context, a *models.Attribute) (*models.Attribute, error)
	bulkCreateAttributes func(ctx context.Context, dataTypeID string, attrs []*models.Attribute) (*services.BulkAttributeResult, error)
	updateAttributeFn    func(ctx context.Context, id string, patch *services.AttributePatch) (*models.Attribute, error)
	deleteAttributeFn    func(ctx context.Context, id string) error

	listCategoriesFn func(ctx context.Context) ([]*models.Category, error)
	getCategoryFn    func(ctx context.Context, id string) (*models.Category, error)
	createCategoryFn func(ctx context.Context, c *models.Category) (*models.Category, error)
	updateCategoryFn func(ctx context.Context, id string, patch *services.CategoryPatch) (*models.Category, error)
	deleteCategoryFn func(ctx context.Context, id string) error

	searchFn func(ctx context.Context, query string) (*services.SearchResult, error)
	exportFn func(ctx context.Context) (*services.ExportDocument, error)
	importFn func(ctx context.Context, raw []byte) (*services.ImportResult, error)
	statsFn  func(ctx context.Context) (*services.CatalogueStats, error)
	reseedFn func(ctx context.Context) error
}

var _ services.CatalogueService = (*mockCatalogueService)(nil)

func (m *mockCatalogueService) ListFurnishers(ctx context.Context, search string) ([]*services.FurnisherSummary, error) {
	return m.listFurnishersFn(ctx, search)
}
func (m *mockCatalogueService) GetFurnisher(ctx context.Context, id string) (*services.FurnisherDetail, error) {
	return m.getFurnisherFn(ctx, id)
}
func (m *mockCatalogueService) CreateFurnisher(ctx context.Context, f *models.Furnisher) (*models.Furnisher, error) {
	return m.createFurnisherFn(ctx, f)
}
func (m *mockCatalogueService) UpdateFurnisher(ctx context.Context, id string, patch *services.FurnisherPatch) (*models.Furnisher, error) {
	return m.updateFurnisherFn(ctx, id, patch)
}
func (m *mockCatalogueService) DeleteFurnisher(ctx context.Context, id string) error {
	return m.deleteFurnisherFn(ctx, id)
}

func (m *mockCatalogueService) ListDataTypes(ctx context.Context, furnisherID string) ([]*models.DataType, error) {
	return m.listDataTypesFn(ctx, furnisherID)
}
func (m *mockCatalogueService) GetDataType(ctx context.Context, id string) (*services.DataTypeDetail, error) {
	return m.getDataTypeFn(ctx, id)
}
func (m *mockCatalogueService) CreateDataType(ctx context.Context, dt *models.DataType) (*models.DataType, error) {
	return m.createDataTypeFn(ctx, dt)
}
func (m *mockCatalogueService) UpdateDataType(ctx context.Context, id string, patch *services.DataTypePatch) (*models.DataType, error) {
	return m.updateDataTypeFn(ctx, id, patch)
}
func (m *mockCatalogueService) DeleteDataType(ctx context.Context, id string) error {
	return m.deleteDataTypeFn(ctx, id)
}

func (m *mockCatalogueService) ListAttributes(ctx context.Context, dataTypeID string) ([]*models.Attribute, error) {
	return m.listAttributesFn(ctx, dataTypeID)
}
func (m *mockCatalogueService) GetAttribute(ctx context.Context, id string) (*models.Attribute, error) {
	return m.getAttributeFn(ctx, id)
}
func (m *mockCatalogueService) CreateAttribute(ctx context.Context, a *models.Attribute) (*models.Attribute, error) {
	return m.createAttributeFn(ctx, a)
}
func (m *mockCatalogueService) BulkCreateAttributes(ctx context.Context, dataTypeID string, attrs []*models.Attribute) (*services.BulkAttributeResult, error) {
	return m.bulkCreateAttributes(ctx, dataTypeID, attrs)
}
func (m *mockCatalogueService) UpdateAttribute(ctx context.Context, id string, patch *services.AttributePatch) (*models.Attribute, error) {
	return m.updateAttributeFn(ctx, id, patch)
}
func (m *mockCatalogueService) DeleteAttribute(ctx context.Context, id string) error {
	return m.deleteAttributeFn(ctx, id)
}

func (m *mockCatalogueService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return m.listCategoriesFn(ctx)
}
func (m *mockCatalogueService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return m.getCategoryFn(ctx, id)
}
func (m *mockCatalogueService) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	return m.createCategoryFn(ctx, c)
}
func (m *mockCatalogueService) UpdateCategory(ctx context.Context, id string, patch *services.CategoryPatch) (*models.Category, error) {
	return m.updateCategoryFn(ctx, id, patch)
}
func (m *mockCatalogueService) DeleteCategory(ctx context.Context, id string) error {
	return m.deleteCategoryFn(ctx, id)
}

func (m *mockCatalogueService) Search(ctx context.Context, query string) (*services.SearchResult, error) {
	return m.searchFn(ctx, query)
}
func (m *mockCatalogueService) Export(ctx context.Context) (*services.ExportDocument, error) {
	return m.exportFn(ctx)
}
func (m *mockCatalogueService) Import(ctx context.Context, raw []byte) (*services.ImportResult, error) {
	return m.importFn(ctx, raw)
}
func (m *mockCatalogueService) Stats(ctx context.Context) (*services.CatalogueStats, error) {
	return m.statsFn(ctx)
}
func (m *mockCatalogueService) Reseed(ctx context.Context) error {
	return m.reseedFn(ctx)
}

type mockFormService struct {
	listFormsFn  func(ctx context.Context) ([]*models.Form, error)
	getFormFn    func(ctx context.Context, id string) (*models.Form, error)
	createFormFn func(ctx context.Context, f *models.Form) (*models.Form, error)
	updateFormFn func(ctx context.Context, id string, patch *services.FormPatch) (*models.Form, error)
	deleteFormFn func(ctx context.Context, id string) error
	publishFn    func(ctx context.Context, id string) (*models.Form, error)
	unpublishFn  func(ctx context.Context, id string) (*models.Form, error)

	listSubmissionsFn  func(ctx context.Context, formID string) ([]*models.Submission, error)
	getSubmissionFn    func(ctx context.Context, id string) (*models.Submission, error)
	createSubmissionFn func(ctx context.Context, formID string, data map[string]string) (*models.Submission, error)
	deleteSubmissionFn func(ctx context.Context, id string) error

	listOffersFn  func(ctx context.Context) ([]*models.CredentialOffer, error)
	getOfferFn    func(ctx context.Context, id string) (*models.CredentialOffer, error)
	createOfferFn func(ctx context.Context, o *models.CredentialOffer) (*models.CredentialOffer, error)
	deleteOfferFn func(ctx context.Context, id string) error
}

var _ services.FormService = (*mockFormService)(nil)

func (m *mockFormService) ListForms(ctx context.Context) ([]*models.Form, error) {
	return m.listFormsFn(ctx)
}
func (m *mockFormService) GetForm(ctx context.Context, id string) (*models.Form, error) {
	return m.getFormFn(ctx, id)
}
func (m *mockFormService) CreateForm(ctx context.Context, f *models.Form) (*models.Form, error) {
	return m.createFormFn(ctx, f)
}
func (m *mockFormService) UpdateForm(ctx context.Context, id string, patch *services.FormPatch) (*models.Form, error) {
	return m.updateFormFn(ctx, id, patch)
}
func (m *mockFormService) DeleteForm(ctx context.Context, id string) error {
	return m.deleteFormFn(ctx, id)
}
func (m *mockFormService) PublishForm(ctx context.Context, id string) (*models.Form, error) {
	return m.publishFn(ctx, id)
}
func (m *mockFormService) UnpublishForm(ctx context.Context, id string) (*models.Form, error) {
	return m.unpublishFn(ctx, id)
}
func (m *mockFormService) ListSubmissions(ctx context.Context, formID string) ([]*models.Submission, error) {
	return m.listSubmissionsFn(ctx, formID)
}
func (m *mockFormService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	return m.getSubmissionFn(ctx, id)
}
func (m *mockFormService) CreateSubmission(ctx context.Context, formID string, data map[string]string) (*models.Submission, error) {
	return m.createSubmissionFn(ctx, formID, data)
}
func (m *mockFormService) DeleteSubmission(ctx context.Context, id string) error {
	return m.deleteSubmissionFn(ctx, id)
}
func (m *mockFormService) ListOffers(ctx context.Context) ([]*models.CredentialOffer, error) {
	return m.listOffersFn(ctx)
}
func (m *mockFormService) GetOffer(ctx context.Context, id string) (*models.CredentialOffer, error) {
	return m.getOfferFn(ctx, id)
}
func (m *mockFormService) CreateOffer(ctx context.Context, o *models.CredentialOffer) (*models.CredentialOffer, error) {
	return m.createOfferFn(ctx, o)
}
func (m *mockFormService) DeleteOffer(ctx context.Context, id string) error {
	return m.deleteOfferFn(ctx, id)
}

type mockVocabularyService struct {
	listTypesFn  func(ctx context.Context, category, search string) ([]*models.VocabularyType, error)
	getTypeFn    func(ctx context.Context, id string) (*models.VocabularyType, error)
	createTypeFn func(ctx context.Context, vt *models.VocabularyType) (*models.VocabularyType, error)
	updateTypeFn func(ctx context.Context, id string, patch *services.VocabularyTypePatch) (*models.VocabularyType, error)
	deleteTypeFn func(ctx context.Context, id string) error

	addPropertyFn    func(ctx context.Context, typeID string, p *models.Property) (*models.Property, error)
	updatePropertyFn func(ctx context.Context, typeID, propertyID string, patch *services.PropertyPatch) (*models.Property, error)
	deletePropertyFn func(ctx context.Context, typeID, propertyID string) error

	addSourceFn    func(ctx context.Context, typeID string, src *models.Source) (*models.Source, error)
	updateSourceFn func(ctx context.Context, typeID, entityID string, patch *services.SourcePatch) (*models.Source, error)
	deleteSourceFn func(ctx context.Context, typeID, entityID string) error

	addMappingFn         func(ctx context.Context, typeID, propertyID string, m *models.ProviderMapping) (*models.ProviderMapping, error)
	deleteMappingFn      func(ctx context.Context, typeID, propertyID, entityID string) error
	bulkAddMappingsFn    func(ctx context.Context, typeID, propertyID string, mappings []*models.ProviderMapping) (*services.BulkMappingResult, error)
	bulkRemoveMappingsFn func(ctx context.Context, typeID, propertyID string, entityIDs []string) (*services.BulkMappingResult, error)
}

var _ services.VocabularyService = (*mockVocabularyService)(nil)

func (m *mockVocabularyService) ListTypes(ctx context.Context, category, search string) ([]*models.VocabularyType, error) {
	return m.listTypesFn(ctx, category, search)
}
func (m *mockVocabularyService) GetType(ctx context.Context, id string) (*models.VocabularyType, error) {
	return m.getTypeFn(ctx, id)
}
func (m *mockVocabularyService) CreateType(ctx context.Context, vt *models.VocabularyType) (*models.VocabularyType, error) {
	return m.createTypeFn(ctx, vt)
}
func (m *mockVocabularyService) UpdateType(ctx context.Context, id string, patch *services.VocabularyTypePatch) (*models.VocabularyType, error) {
	return m.updateTypeFn(ctx, id, patch)
}
func (m *mockVocabularyService) DeleteType(ctx context.Context, id string) error {
	return m.deleteTypeFn(ctx, id)
}

func (m *mockVocabularyService) AddProperty(ctx context.Context, typeID string, p *models.Property) (*models.Property, error) {
	return m.addPropertyFn(ctx, typeID, p)
}
func (m *mockVocabularyService) UpdateProperty(ctx context.Context, typeID, propertyID string, patch *services.PropertyPatch) (*models.Property, error) {
	return m.updatePropertyFn(ctx, typeID, propertyID, patch)
}
func (m *mockVocabularyService) DeleteProperty(ctx context.Context, typeID, propertyID string) error {
	return m.deletePropertyFn(ctx, typeID, propertyID)
}

func (m *mockVocabularyService) AddSource(ctx context.Context, typeID string, src *models.Source) (*models.Source, error) {
	return m.addSourceFn(ctx, typeID, src)
}
func (m *mockVocabularyService) UpdateSource(ctx context.Context, typeID, entityID string, patch *services.SourcePatch) (*models.Source, error) {
	return m.updateSourceFn(ctx, typeID, entityID, patch)
}
func (m *mockVocabularyService) DeleteSource(ctx context.Context, typeID, entityID string) error {
	return m.deleteSourceFn(ctx, typeID, entityID)
}

func (m *mockVocabularyService) AddMapping(ctx context.Context, typeID, propertyID string, mapping *models.ProviderMapping) (*models.ProviderMapping, error) {
	return m.addMappingFn(ctx, typeID, propertyID, mapping)
}
func (m *mockVocabularyService) DeleteMapping(ctx context.Context, typeID, propertyID, entityID string) error {
	return m.deleteMappingFn(ctx, typeID, propertyID, entityID)
}
func (m *mockVocabularyService) BulkAddMappings(ctx context.Context, typeID, propertyID string, mappings []*models.ProviderMapping) (*services.BulkMappingResult, error) {
	return m.bulkAddMappingsFn(ctx, typeID, propertyID, mappings)
}
func (m *mockVocabularyService) BulkRemoveMappings(ctx context.Context, typeID, propertyID string, entityIDs []string) (*services.BulkMappingResult, error) {
	return m.bulkRemoveMappingsFn(ctx, typeID, propertyID, entityIDs)
}
