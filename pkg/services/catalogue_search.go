package services

import (
	"context"
	"strings"

	"github.com/copa-network/copa-console/pkg/models"
)

// Queries shorter than this return empty results without touching the store.
const minSearchLength = 2

// SearchResult groups the catalogue entities matched by a search query.
type SearchResult struct {
	Furnishers []*models.Furnisher `json:"furnishers"`
	DataTypes  []*models.DataType  `json:"dataTypes"`
	Attributes []*models.Attribute `json:"attributes"`
}

// Search performs a case-insensitive substring scan over name/description
// fields. There is no tokenization, ranking or indexing.
func (s *catalogueService) Search(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{
		Furnishers: []*models.Furnisher{},
		DataTypes:  []*models.DataType{},
		Attributes: []*models.Attribute{},
	}
	if len(query) < minSearchLength {
		return result, nil
	}

	furnishers, err := s.catalogue.ListFurnishers(ctx)
	if err != nil {
		return nil, err
	}
	result.Furnishers = filterByText(furnishers, query, func(f *models.Furnisher) []string {
		return []string{f.Name, f.Description}
	})

	dataTypes, err := s.catalogue.ListDataTypes(ctx)
	if err != nil {
		return nil, err
	}
	result.DataTypes = filterByText(dataTypes, query, func(dt *models.DataType) []string {
		return []string{dt.Name, dt.Description}
	})

	attributes, err := s.catalogue.ListAttributes(ctx)
	if err != nil {
		return nil, err
	}
	result.Attributes = filterByText(attributes, query, func(a *models.Attribute) []string {
		return []string{a.Name, a.DisplayName}
	})

	return result, nil
}

// filterByText keeps items where any candidate field contains the query,
// case-insensitively.
func filterByText[T any](items []*T, query string, fields func(*T) []string) []*T {
	q := strings.ToLower(query)
	matched := make([]*T, 0)
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), q) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
