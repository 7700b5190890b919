package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/repositories"
)

// FormPatch is a partial form update. The builder auto-save PUTs the full
// schema object, so Schema replaces wholesale when present.
type FormPatch struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Schema      *models.FormSchema `json:"schema"`
}

// FormService manages form documents, their two-state publish lifecycle,
// submissions against published forms, and credential offers.
type FormService interface {
	ListForms(ctx context.Context) ([]*models.Form, error)
	GetForm(ctx context.Context, id string) (*models.Form, error)
	CreateForm(ctx context.Context, f *models.Form) (*models.Form, error)
	UpdateForm(ctx context.Context, id string, patch *FormPatch) (*models.Form, error)
	DeleteForm(ctx context.Context, id string) error
	PublishForm(ctx context.Context, id string) (*models.Form, error)
	UnpublishForm(ctx context.Context, id string) (*models.Form, error)

	ListSubmissions(ctx context.Context, formID string) ([]*models.Submission, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	CreateSubmission(ctx context.Context, formID string, data map[string]string) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, id string) error

	ListOffers(ctx context.Context) ([]*models.CredentialOffer, error)
	GetOffer(ctx context.Context, id string) (*models.CredentialOffer, error)
	CreateOffer(ctx context.Context, o *models.CredentialOffer) (*models.CredentialOffer, error)
	DeleteOffer(ctx context.Context, id string) error
}

type formService struct {
	forms       repositories.FormRepository
	submissions repositories.SubmissionRepository
	offers      repositories.OfferRepository
	logger      *zap.Logger
}

// NewFormService creates a new form service.
func NewFormService(
	forms repositories.FormRepository,
	submissions repositories.SubmissionRepository,
	offers repositories.OfferRepository,
	logger *zap.Logger,
) FormService {
	return &formService{
		forms:       forms,
		submissions: submissions,
		offers:      offers,
		logger:      logger,
	}
}

var _ FormService = (*formService)(nil)

// ============================================================================
// Forms
// ============================================================================

func (s *formService) ListForms(ctx context.Context) ([]*models.Form, error) {
	return s.forms.List(ctx)
}

func (s *formService) GetForm(ctx context.Context, id string) (*models.Form, error) {
	return s.forms.Get(ctx, id)
}

func (s *formService) CreateForm(ctx context.Context, f *models.Form) (*models.Form, error) {
	if f.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if f.ID == "" {
		f.ID = "form-" + uuid.NewString()
	}
	f.Status = models.FormStatusDraft
	f.PublishedAt = nil
	if f.Schema.Sections == nil {
		f.Schema.Sections = []*models.FormSection{}
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	if err := s.forms.Create(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("Created form", zap.String("form_id", f.ID))
	return f, nil
}

func (s *formService) UpdateForm(ctx context.Context, id string, patch *FormPatch) (*models.Form, error) {
	f, err := s.forms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	setString(&f.Name, patch.Name)
	setString(&f.Description, patch.Description)
	if patch.Schema != nil {
		f.Schema = *patch.Schema
	}
	f.UpdatedAt = time.Now().UTC()

	if err := s.forms.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *formService) DeleteForm(ctx context.Context, id string) error {
	return s.forms.Delete(ctx, id)
}

func (s *formService) PublishForm(ctx context.Context, id string) (*models.Form, error) {
	f, err := s.forms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == models.FormStatusPublished {
		return f, nil
	}
	now := time.Now().UTC()
	f.Status = models.FormStatusPublished
	f.PublishedAt = &now
	f.UpdatedAt = now

	if err := s.forms.Update(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("Published form", zap.String("form_id", id))
	return f, nil
}

func (s *formService) UnpublishForm(ctx context.Context, id string) (*models.Form, error) {
	f, err := s.forms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.Status == models.FormStatusDraft {
		return f, nil
	}
	f.Status = models.FormStatusDraft
	f.PublishedAt = nil
	f.UpdatedAt = time.Now().UTC()

	if err := s.forms.Update(ctx, f); err != nil {
		return nil, err
	}
	s.logger.Info("Unpublished form", zap.String("form_id", id))
	return f, nil
}

// ============================================================================
// Submissions
// ============================================================================

func (s *formService) ListSubmissions(ctx context.Context, formID string) ([]*models.Submission, error) {
	if _, err := s.forms.Get(ctx, formID); err != nil {
		return nil, err
	}
	return s.submissions.ListByForm(ctx, formID)
}

func (s *formService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	return s.submissions.Get(ctx, id)
}

func (s *formService) CreateSubmission(ctx context.Context, formID string, data map[string]string) (*models.Submission, error) {
	f, err := s.forms.Get(ctx, formID)
	if err != nil {
		return nil, err
	}
	if f.Status != models.FormStatusPublished {
		return nil, fmt.Errorf("form %s: %w", formID, apperrors.ErrFormNotLive)
	}
	if data == nil {
		data = map[string]string{}
	}

	sub := &models.Submission{
		ID:          "submission-" + uuid.NewString(),
		FormID:      formID,
		Data:        data,
		Status:      models.SubmissionStatusReceived,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *formService) DeleteSubmission(ctx context.Context, id string) error {
	return s.submissions.Delete(ctx, id)
}

// ============================================================================
// Credential offers
// ============================================================================

func (s *formService) ListOffers(ctx context.Context) ([]*models.CredentialOffer, error) {
	return s.offers.List(ctx)
}

func (s *formService) GetOffer(ctx context.Context, id string) (*models.CredentialOffer, error) {
	return s.offers.Get(ctx, id)
}

func (s *formService) CreateOffer(ctx context.Context, o *models.CredentialOffer) (*models.CredentialOffer, error) {
	if o.CredentialType == "" {
		return nil, fmt.Errorf("%w: credentialType is required", apperrors.ErrValidation)
	}
	if o.FormID != "" {
		if _, err := s.forms.Get(ctx, o.FormID); err != nil {
			return nil, err
		}
	}
	if o.ID == "" {
		o.ID = "offer-" + uuid.NewString()
	}
	o.Status = models.OfferStatusPending
	o.CreatedAt = time.Now().UTC()

	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *formService) DeleteOffer(ctx context.Context, id string) error {
	return s.offers.Delete(ctx, id)
}
