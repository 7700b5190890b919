package models

import "time"

// Form lifecycle states. Publish moves draft to published; unpublish
// reverts it. There are no further states.
const (
	FormStatusDraft     = "draft"
	FormStatusPublished = "published"
)

// Field types supported by the forms builder.
const (
	FieldTypeText       = "text"
	FieldTypeEmail      = "email"
	FieldTypePhone      = "phone"
	FieldTypeNumber     = "number"
	FieldTypeDate       = "date"
	FieldTypeTextarea   = "textarea"
	FieldTypeSelect     = "select"
	FieldTypeRadio      = "radio"
	FieldTypeCheckbox   = "checkbox"
	FieldTypeCredential = "verifiable-credential"
)

// Credential sources a verifiable-credential field may select from.
const (
	CredentialSourceVCTLibrary = "vct-library"
	CredentialSourceCatalogue  = "catalogue"
)

// Form is an authored form document with its schema and lifecycle state.
type Form struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Schema      FormSchema `json:"schema"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// FormSchema is the tree edited by the forms builder: ordered sections of
// ordered fields, plus the screens shown before and after the form.
type FormSchema struct {
	Sections      []*FormSection `json:"sections"`
	InfoScreen    *FormScreen    `json:"infoScreen,omitempty"`
	SuccessScreen *FormScreen    `json:"successScreen,omitempty"`
}

// FormSection groups fields under a title.
type FormSection struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Fields []*FormField `json:"fields"`
}

// FormField is one field in a section. Type selects the variant; Options
// applies to select/radio/checkbox, CredentialConfig to the
// verifiable-credential variant.
type FormField struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Label            string            `json:"label"`
	Placeholder      string            `json:"placeholder,omitempty"`
	Required         bool              `json:"required"`
	Options          []string          `json:"options,omitempty"`
	CredentialConfig *CredentialConfig `json:"credentialConfig,omitempty"`
}

// CredentialConfig selects the credential a field verifies against and an
// optional single predicate constraining one named attribute.
type CredentialConfig struct {
	Source          string     `json:"source"` // vct-library or catalogue
	CredentialType  string     `json:"credentialType,omitempty"`
	AttributePath   string     `json:"attributePath,omitempty"`
	Predicate       *Predicate `json:"predicate,omitempty"`
	AcceptedIssuers []string   `json:"acceptedIssuers,omitempty"`
}

// Predicate is a single rule applied to one credential attribute.
type Predicate struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"` // eq, neq, gt, gte, lt, lte
	Value     string `json:"value"`
}

// FormScreen is the static content shown before or after the form.
type FormScreen struct {
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	CTALabel string `json:"ctaLabel,omitempty"`
}
