package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
)

// ExportDocument is the full catalogue tree produced by GET /export. The
// whole catalogue is materialized in memory; there is no pagination or
// streaming.
type ExportDocument struct {
	ExportedAt      time.Time                `json:"exportedAt"`
	Furnishers      []*FurnisherDetail       `json:"furnishers"`
	VocabularyTypes []*models.VocabularyType `json:"vocabularyTypes"`
	Categories      []*models.Category       `json:"categories"`
}

// ImportResult reports how many entities an import touched. Entries that
// fail to resolve are skipped, not failed.
type ImportResult struct {
	Furnishers      int `json:"furnishers"`
	DataTypes       int `json:"dataTypes"`
	Attributes      int `json:"attributes"`
	VocabularyTypes int `json:"vocabularyTypes"`
	Categories      int `json:"categories"`
	Skipped         int `json:"skipped"`
}

// The schema is small enough to keep inline next to the import logic that
// enforces it.
var importSchema = jsonschema.MustCompileString("import.json", `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["furnishers"],
	"properties": {
		"exportedAt": {"type": "string"},
		"furnishers": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"name": {"type": "string", "minLength": 1},
					"dataTypes": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["id", "name"],
							"properties": {
								"attributes": {
									"type": "array",
									"items": {"type": "object", "required": ["id", "name"]}
								}
							}
						}
					}
				}
			}
		},
		"vocabularyTypes": {
			"type": "array",
			"items": {"type": "object", "required": ["id", "name"]}
		},
		"categories": {
			"type": "array",
			"items": {"type": "object", "required": ["id", "name"]}
		}
	}
}`)

// Export walks the furnisher tree plus the vocabulary and categories into a
// single nested document.
func (s *catalogueService) Export(ctx context.Context) (*ExportDocument, error) {
	furnishers, err := s.catalogue.ListFurnishers(ctx)
	if err != nil {
		return nil, err
	}
	dataTypes, err := s.catalogue.ListDataTypes(ctx)
	if err != nil {
		return nil, err
	}
	attributes, err := s.catalogue.ListAttributes(ctx)
	if err != nil {
		return nil, err
	}
	vocabulary, err := s.vocabulary.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	attrsByType := make(map[string][]*models.Attribute)
	for _, a := range attributes {
		attrsByType[a.DataTypeID] = append(attrsByType[a.DataTypeID], a)
	}
	typesByFurnisher := make(map[string][]*DataTypeDetail)
	for _, dt := range dataTypes {
		attrs := attrsByType[dt.ID]
		if attrs == nil {
			attrs = []*models.Attribute{}
		}
		typesByFurnisher[dt.FurnisherID] = append(typesByFurnisher[dt.FurnisherID], &DataTypeDetail{
			DataType:   dt,
			Attributes: attrs,
		})
	}

	doc := &ExportDocument{
		ExportedAt:      time.Now().UTC(),
		Furnishers:      make([]*FurnisherDetail, 0, len(furnishers)),
		VocabularyTypes: vocabulary,
		Categories:      categories,
	}
	for _, f := range furnishers {
		types := typesByFurnisher[f.ID]
		if types == nil {
			types = []*DataTypeDetail{}
		}
		doc.Furnishers = append(doc.Furnishers, &FurnisherDetail{Furnisher: f, DataTypes: types})
	}
	return doc, nil
}

// Import validates an export document against the embedded JSON Schema and
// upserts every entity it contains.
func (s *catalogueService) Import(ctx context.Context, raw []byte) (*ImportResult, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: body is not valid JSON", apperrors.ErrValidation)
	}
	if err := importSchema.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	result := &ImportResult{}
	for _, fd := range doc.Furnishers {
		if err := s.upsertFurnisher(ctx, fd, result); err != nil {
			return nil, err
		}
	}
	for _, vt := range doc.VocabularyTypes {
		if _, err := s.vocabulary.Get(ctx, vt.ID); errors.Is(err, apperrors.ErrNotFound) {
			if err := s.vocabulary.Create(ctx, vt); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else {
			if _, err := s.vocabulary.Mutate(ctx, vt.ID, func(existing *models.VocabularyType) error {
				*existing = *vt
				return nil
			}); err != nil {
				return nil, err
			}
		}
		result.VocabularyTypes++
	}
	for _, c := range doc.Categories {
		if _, err := s.categories.Get(ctx, c.ID); errors.Is(err, apperrors.ErrNotFound) {
			if err := s.categories.Create(ctx, c); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else if err := s.categories.Update(ctx, c); err != nil {
			return nil, err
		}
		result.Categories++
	}

	s.logger.Info("Imported catalogue document",
		zap.Int("furnishers", result.Furnishers),
		zap.Int("data_types", result.DataTypes),
		zap.Int("attributes", result.Attributes),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (s *catalogueService) upsertFurnisher(ctx context.Context, fd *FurnisherDetail, result *ImportResult) error {
	if _, err := s.catalogue.GetFurnisher(ctx, fd.ID); errors.Is(err, apperrors.ErrNotFound) {
		if err := s.catalogue.CreateFurnisher(ctx, fd.Furnisher); err != nil {
			return err
		}
	} else if err != nil {
		return err
	} else if err := s.catalogue.UpdateFurnisher(ctx, fd.Furnisher); err != nil {
		return err
	}
	result.Furnishers++

	for _, dtd := range fd.DataTypes {
		dtd.FurnisherID = fd.ID
		if _, err := s.catalogue.GetDataType(ctx, dtd.ID); errors.Is(err, apperrors.ErrNotFound) {
			if err := s.catalogue.CreateDataType(ctx, dtd.DataType); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else if err := s.catalogue.UpdateDataType(ctx, dtd.DataType); err != nil {
			return err
		}
		result.DataTypes++

		for _, a := range dtd.Attributes {
			if a.Name == "" {
				result.Skipped++
				continue
			}
			a.DataTypeID = dtd.ID
			if _, err := s.catalogue.GetAttribute(ctx, a.ID); errors.Is(err, apperrors.ErrNotFound) {
				if err := s.catalogue.CreateAttribute(ctx, a); err != nil {
					return err
				}
			} else if err != nil {
				return err
			} else if err := s.catalogue.UpdateAttribute(ctx, a); err != nil {
				return err
			}
			result.Attributes++
		}
	}
	return nil
}

// Stats counts every catalogue entity.
func (s *catalogueService) Stats(ctx context.Context) (*CatalogueStats, error) {
	furnishers, err := s.catalogue.ListFurnishers(ctx)
	if err != nil {
		return nil, err
	}
	dataTypes, err := s.catalogue.ListDataTypes(ctx)
	if err != nil {
		return nil, err
	}
	attributes, err := s.catalogue.ListAttributes(ctx)
	if err != nil {
		return nil, err
	}
	vocabulary, err := s.vocabulary.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	return &CatalogueStats{
		Furnishers:      len(furnishers),
		DataTypes:       len(dataTypes),
		Attributes:      len(attributes),
		VocabularyTypes: len(vocabulary),
		Categories:      len(categories),
	}, nil
}
