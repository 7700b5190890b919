package models

import "time"

// Credential offer statuses.
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusExpired  = "expired"
)

// CredentialOffer records a credential offered against a form's
// verifiable-credential configuration.
type CredentialOffer struct {
	ID             string            `json:"id"`
	FormID         string            `json:"formId,omitempty"`
	CredentialType string            `json:"credentialType"`
	Claims         map[string]string `json:"claims,omitempty"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
}
