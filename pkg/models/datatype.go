package models

import "time"

// Value kinds an Attribute may carry.
const (
	ValueKindString   = "string"
	ValueKindNumber   = "number"
	ValueKindInteger  = "integer"
	ValueKindBoolean  = "boolean"
	ValueKindDate     = "date"
	ValueKindDateTime = "datetime"
	ValueKindArray    = "array"
	ValueKindObject   = "object"
	ValueKindURI      = "uri"
	ValueKindEmail    = "email"
	ValueKindPhone    = "phone"
)

// DataType is a furnisher-scoped category of data. Its attributes live in
// a separate document keyed by Attribute.DataTypeID.
type DataType struct {
	ID          string    `json:"id"`
	FurnisherID string    `json:"furnisherId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Attribute is a single named field within a catalogue DataType.
type Attribute struct {
	ID          string `json:"id"`
	DataTypeID  string `json:"dataTypeId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	// DataType is the value kind of the attribute (one of the ValueKind
	// constants), not a reference to a DataType record.
	DataType    string `json:"dataType,omitempty"`
	SampleValue string `json:"sampleValue,omitempty"`
	// RegionsCovered, when non-nil, overrides the owning furnisher's
	// regions. Nil means "inherit furnisher regions".
	RegionsCovered []string          `json:"regionsCovered,omitempty"`
	Path           string            `json:"path,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
