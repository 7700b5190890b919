package models

import "time"

// Furnisher is an organization supplying data to the catalogue.
// It owns zero or more DataTypes via DataType.FurnisherID.
type Furnisher struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	LogoURI        string    `json:"logoUri,omitempty"`
	Website        string    `json:"website,omitempty"`
	ContactName    string    `json:"contactName,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	RegionsCovered []string  `json:"regionsCovered"`
	DID            string    `json:"did,omitempty"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FurnisherStats holds counts computed when listing furnishers.
type FurnisherStats struct {
	DataTypeCount  int `json:"dataTypeCount"`
	AttributeCount int `json:"attributeCount"`
}
