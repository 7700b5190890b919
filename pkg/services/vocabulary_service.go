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
)

// VocabularyTypePatch is a partial vocabulary type update.
type VocabularyTypePatch struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	ParentTypeID *string `json:"parentTypeId"`
}

// PropertyPatch is a partial update of an embedded property.
type PropertyPatch struct {
	Name        *string            `json:"name"`
	DisplayName *string            `json:"displayName"`
	ValueType   *string            `json:"valueType"`
	Required    *bool              `json:"required"`
	SampleValue *string            `json:"sampleValue"`
	Path        *string            `json:"path"`
	Metadata    *map[string]string `json:"metadata"`
}

// SourcePatch is a partial update of an embedded source.
type SourcePatch struct {
	EntityName      *string   `json:"entityName"`
	RegionsCovered  *[]string `json:"regionsCovered"`
	UpdateFrequency *string   `json:"updateFrequency"`
	Notes           *string   `json:"notes"`
	APIEndpoint     *string   `json:"apiEndpoint"`
}

// BulkMappingResult reports a bulk provider-mapping operation. Entries that
// do not resolve, or that would duplicate, are skipped rather than failed.
type BulkMappingResult struct {
	Added   int `json:"added,omitempty"`
	Removed int `json:"removed,omitempty"`
	Skipped int `json:"skipped"`
}

// VocabularyService manages the vocabulary-scoped data types and the
// properties, sources and provider mappings embedded in them. Every nested
// mutation persists the whole parent document.
type VocabularyService interface {
	ListTypes(ctx context.Context, category, search string) ([]*models.VocabularyType, error)
	GetType(ctx context.Context, id string) (*models.VocabularyType, error)
	CreateType(ctx context.Context, vt *models.VocabularyType) (*models.VocabularyType, error)
	UpdateType(ctx context.Context, id string, patch *VocabularyTypePatch) (*models.VocabularyType, error)
	DeleteType(ctx context.Context, id string) error

	AddProperty(ctx context.Context, typeID string, p *models.Property) (*models.Property, error)
	UpdateProperty(ctx context.Context, typeID, propertyID string, patch *PropertyPatch) (*models.Property, error)
	DeleteProperty(ctx context.Context, typeID, propertyID string) error

	AddSource(ctx context.Context, typeID string, src *models.Source) (*models.Source, error)
	UpdateSource(ctx context.Context, typeID, entityID string, patch *SourcePatch) (*models.Source, error)
	DeleteSource(ctx context.Context, typeID, entityID string) error

	AddMapping(ctx context.Context, typeID, propertyID string, m *models.ProviderMapping) (*models.ProviderMapping, error)
	DeleteMapping(ctx context.Context, typeID, propertyID, entityID string) error
	BulkAddMappings(ctx context.Context, typeID, propertyID string, mappings []*models.ProviderMapping) (*BulkMappingResult, error)
	BulkRemoveMappings(ctx context.Context, typeID, propertyID string, entityIDs []string) (*BulkMappingResult, error)
}

type vocabularyService struct {
	vocabulary repositories.VocabularyRepository
	logger     *zap.Logger
}

// NewVocabularyService creates a new vocabulary service.
func NewVocabularyService(vocabulary repositories.VocabularyRepository, logger *zap.Logger) VocabularyService {
	return &vocabularyService{vocabulary: vocabulary, logger: logger}
}

var _ VocabularyService = (*vocabularyService)(nil)

// ============================================================================
// Types
// ============================================================================

func (s *vocabularyService) ListTypes(ctx context.Context, category, search string) ([]*models.VocabularyType, error) {
	types, err := s.vocabulary.List(ctx)
	if err != nil {
		return nil, err
	}
	if category != "" {
		filtered := make([]*models.VocabularyType, 0, len(types))
		for _, vt := range types {
			if vt.Category == category {
				filtered = append(filtered, vt)
			}
		}
		types = filtered
	}
	if len(search) >= minSearchLength {
		types = filterByText(types, search, func(vt *models.VocabularyType) []string {
			return []string{vt.Name, vt.Description}
		})
	}
	return types, nil
}

func (s *vocabularyService) GetType(ctx context.Context, id string) (*models.VocabularyType, error) {
	return s.vocabulary.Get(ctx, id)
}

func (s *vocabularyService) CreateType(ctx context.Context, vt *models.VocabularyType) (*models.VocabularyType, error) {
	if vt.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if vt.ID == "" {
		vt.ID = idgen.New("data-types")
	}
	if vt.Properties == nil {
		vt.Properties = []*models.Property{}
	}
	if vt.Sources == nil {
		vt.Sources = []*models.Source{}
	}
	now := time.Now().UTC()
	vt.CreatedAt = now
	vt.UpdatedAt = now

	if err := s.vocabulary.Create(ctx, vt); err != nil {
		return nil, err
	}
	s.logger.Info("Created vocabulary type", zap.String("type_id", vt.ID))
	return vt, nil
}

func (s *vocabularyService) UpdateType(ctx context.Context, id string, patch *VocabularyTypePatch) (*models.VocabularyType, error) {
	return s.vocabulary.Mutate(ctx, id, func(vt *models.VocabularyType) error {
		setString(&vt.Name, patch.Name)
		setString(&vt.Description, patch.Description)
		setString(&vt.Category, patch.Category)
		setString(&vt.ParentTypeID, patch.ParentTypeID)
		vt.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (s *vocabularyService) DeleteType(ctx context.Context, id string) error {
	return s.vocabulary.Delete(ctx, id)
}

// ============================================================================
// Properties
// ============================================================================

func (s *vocabularyService) AddProperty(ctx context.Context, typeID string, p *models.Property) (*models.Property, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if p.ID == "" {
		p.ID = idgen.New("properties")
	}
	if p.ProviderMappings == nil {
		p.ProviderMappings = []*models.ProviderMapping{}
	}

	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		if vt.FindProperty(p.ID) != nil {
			return fmt.Errorf("property %s: %w", p.ID, apperrors.ErrConflict)
		}
		vt.Properties = append(vt.Properties, p)
		vt.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *vocabularyService) UpdateProperty(ctx context.Context, typeID, propertyID string, patch *PropertyPatch) (*models.Property, error) {
	var updated *models.Property
	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		p := vt.FindProperty(propertyID)
		if p == nil {
			return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
		}
		setString(&p.Name, patch.Name)
		setString(&p.DisplayName, patch.DisplayName)
		setString(&p.ValueType, patch.ValueType)
		setString(&p.SampleValue, patch.SampleValue)
		setString(&p.Path, patch.Path)
		if patch.Required != nil {
			p.Required = *patch.Required
		}
		if patch.Metadata != nil {
			p.Metadata = *patch.Metadata
		}
		vt.UpdatedAt = time.Now().UTC()
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *vocabularyService) DeleteProperty(ctx context.Context, typeID, propertyID string) error {
	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		for i, p := range vt.Properties {
			if p.ID == propertyID {
				vt.Properties = append(vt.Properties[:i], vt.Properties[i+1:]...)
				vt.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
	})
	return err
}

// ============================================================================
// Sources
// ============================================================================

func (s *vocabularyService) AddSource(ctx context.Context, typeID string, src *models.Source) (*models.Source, error) {
	if src.EntityID == "" {
		return nil, fmt.Errorf("%w: entityId is required", apperrors.ErrValidation)
	}
	if src.AddedAt.IsZero() {
		src.AddedAt = time.Now().UTC()
	}

	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		if vt.FindSource(src.EntityID) != nil {
			return fmt.Errorf("source %s: %w", src.EntityID, apperrors.ErrConflict)
		}
		vt.Sources = append(vt.Sources, src)
		vt.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (s *vocabularyService) UpdateSource(ctx context.Context, typeID, entityID string, patch *SourcePatch) (*models.Source, error) {
	var updated *models.Source
	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		src := vt.FindSource(entityID)
		if src == nil {
			return fmt.Errorf("source %s: %w", entityID, apperrors.ErrNotFound)
		}
		setString(&src.EntityName, patch.EntityName)
		setString(&src.UpdateFrequency, patch.UpdateFrequency)
		setString(&src.Notes, patch.Notes)
		setString(&src.APIEndpoint, patch.APIEndpoint)
		if patch.RegionsCovered != nil {
			src.RegionsCovered = *patch.RegionsCovered
		}
		vt.UpdatedAt = time.Now().UTC()
		updated = src
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *vocabularyService) DeleteSource(ctx context.Context, typeID, entityID string) error {
	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		for i, src := range vt.Sources {
			if src.EntityID == entityID {
				vt.Sources = append(vt.Sources[:i], vt.Sources[i+1:]...)
				vt.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return fmt.Errorf("source %s: %w", entityID, apperrors.ErrNotFound)
	})
	return err
}

// ============================================================================
// Provider mappings
// ============================================================================

func (s *vocabularyService) AddMapping(ctx context.Context, typeID, propertyID string, m *models.ProviderMapping) (*models.ProviderMapping, error) {
	if m.EntityID == "" {
		return nil, fmt.Errorf("%w: entityId is required", apperrors.ErrValidation)
	}
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now().UTC()
	}

	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		p := vt.FindProperty(propertyID)
		if p == nil {
			return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
		}
		if p.FindMapping(m.EntityID) != nil {
			return fmt.Errorf("mapping %s: %w", m.EntityID, apperrors.ErrConflict)
		}
		p.ProviderMappings = append(p.ProviderMappings, m)
		vt.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *vocabularyService) DeleteMapping(ctx context.Context, typeID, propertyID, entityID string) error {
	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		p := vt.FindProperty(propertyID)
		if p == nil {
			return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
		}
		for i, m := range p.ProviderMappings {
			if m.EntityID == entityID {
				p.ProviderMappings = append(p.ProviderMappings[:i], p.ProviderMappings[i+1:]...)
				vt.UpdatedAt = time.Now().UTC()
				return nil
			}
		}
		return fmt.Errorf("mapping %s: %w", entityID, apperrors.ErrNotFound)
	})
	return err
}

// BulkAddMappings adds a batch of mappings to one property in a single
// document write. Entries without an entityId, or whose entityId is already
// mapped, are skipped.
func (s *vocabularyService) BulkAddMappings(ctx context.Context, typeID, propertyID string, mappings []*models.ProviderMapping) (*BulkMappingResult, error) {
	result := &BulkMappingResult{}
	now := time.Now().UTC()

	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		p := vt.FindProperty(propertyID)
		if p == nil {
			return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
		}
		for _, m := range mappings {
			if m.EntityID == "" || p.FindMapping(m.EntityID) != nil {
				result.Skipped++
				continue
			}
			if m.AddedAt.IsZero() {
				m.AddedAt = now
			}
			p.ProviderMappings = append(p.ProviderMappings, m)
			result.Added++
		}
		if result.Added > 0 {
			vt.UpdatedAt = now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkRemoveMappings removes mappings by entity ID, skipping IDs that are
// not mapped.
func (s *vocabularyService) BulkRemoveMappings(ctx context.Context, typeID, propertyID string, entityIDs []string) (*BulkMappingResult, error) {
	result := &BulkMappingResult{}

	_, err := s.vocabulary.Mutate(ctx, typeID, func(vt *models.VocabularyType) error {
		p := vt.FindProperty(propertyID)
		if p == nil {
			return fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
		}
		for _, entityID := range entityIDs {
			removed := false
			for i, m := range p.ProviderMappings {
				if m.EntityID == entityID {
					p.ProviderMappings = append(p.ProviderMappings[:i], p.ProviderMappings[i+1:]...)
					removed = true
					break
				}
			}
			if removed {
				result.Removed++
			} else {
				result.Skipped++
			}
		}
		if result.Removed > 0 {
			vt.UpdatedAt = time.Now().UTC()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
