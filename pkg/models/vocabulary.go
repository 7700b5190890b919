package models

import "time"

// VocabularyType is the vocabulary-scoped data type shape: a self-contained
// document embedding its properties and sources, unlike the furnisher-scoped
// DataType whose attributes live in their own collection.
type VocabularyType struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Category     string      `json:"category,omitempty"`
	ParentTypeID string      `json:"parentTypeId,omitempty"`
	Properties   []*Property `json:"properties"`
	Sources      []*Source   `json:"sources"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Property is a named field embedded in a VocabularyType.
type Property struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	DisplayName      string             `json:"displayName,omitempty"`
	ValueType        string             `json:"valueType,omitempty"`
	Required         bool               `json:"required"`
	SampleValue      string             `json:"sampleValue,omitempty"`
	Path             string             `json:"path,omitempty"`
	Metadata         map[string]string  `json:"metadata,omitempty"`
	ProviderMappings []*ProviderMapping `json:"providerMappings"`
}

// ProviderMapping links a Property to an external entity's field name.
type ProviderMapping struct {
	EntityID          string    `json:"entityId"`
	EntityName        string    `json:"entityName,omitempty"`
	ProviderFieldName string    `json:"providerFieldName,omitempty"`
	RegionsCovered    []string  `json:"regionsCovered,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	AddedAt           time.Time `json:"addedAt"`
	AddedBy           string    `json:"addedBy,omitempty"`
}

// Source links a VocabularyType to an external data-providing entity.
type Source struct {
	EntityID        string    `json:"entityId"`
	EntityName      string    `json:"entityName,omitempty"`
	RegionsCovered  []string  `json:"regionsCovered,omitempty"`
	UpdateFrequency string    `json:"updateFrequency,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	APIEndpoint     string    `json:"apiEndpoint,omitempty"`
	AddedAt         time.Time `json:"addedAt"`
	AddedBy         string    `json:"addedBy,omitempty"`
}

// FindProperty returns the embedded property with the given ID, or nil.
func (v *VocabularyType) FindProperty(propertyID string) *Property {
	for _, p := range v.Properties {
		if p.ID == propertyID {
			return p
		}
	}
	return nil
}

// FindSource returns the embedded source for the given entity ID, or nil.
func (v *VocabularyType) FindSource(entityID string) *Source {
	for _, s := range v.Sources {
		if s.EntityID == entityID {
			return s
		}
	}
	return nil
}

// FindMapping returns the mapping for the given entity ID, or nil.
func (p *Property) FindMapping(entityID string) *ProviderMapping {
	for _, m := range p.ProviderMappings {
		if m.EntityID == entityID {
			return m
		}
	}
	return nil
}
