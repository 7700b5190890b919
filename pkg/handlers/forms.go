package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/auth"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/services"
)

// SubmissionRequest for POST /api/forms/{id}/submissions
type SubmissionRequest struct {
	Data map[string]string `json:"data"`
}

// FormsHandler handles form, submission and credential offer HTTP requests.
type FormsHandler struct {
	formService services.FormService
	logger      *zap.Logger
}

// NewFormsHandler creates a new forms handler.
func NewFormsHandler(formService services.FormService, logger *zap.Logger) *FormsHandler {
	return &FormsHandler{
		formService: formService,
		logger:      logger,
	}
}

// RegisterRoutes registers the forms routes on the given mux. Submitting to
// a published form is the one open mutation; respondents are anonymous.
func (h *FormsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/forms", h.List)
	mux.HandleFunc("GET /api/forms/{id}", h.Get)
	mux.HandleFunc("POST /api/forms", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /api/forms/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/forms/{id}", authMiddleware.RequireAuth(h.Delete))
	mux.HandleFunc("POST /api/forms/{id}/publish", authMiddleware.RequireAuth(h.Publish))
	mux.HandleFunc("POST /api/forms/{id}/unpublish", authMiddleware.RequireAuth(h.Unpublish))

	mux.HandleFunc("GET /api/forms/{id}/submissions", h.ListSubmissions)
	mux.HandleFunc("POST /api/forms/{id}/submissions", h.CreateSubmission)
	mux.HandleFunc("GET /api/submissions/{id}", h.GetSubmission)
	mux.HandleFunc("DELETE /api/submissions/{id}", authMiddleware.RequireAuth(h.DeleteSubmission))

	mux.HandleFunc("GET /api/credential-offers", h.ListOffers)
	mux.HandleFunc("GET /api/credential-offers/{id}", h.GetOffer)
	mux.HandleFunc("POST /api/credential-offers", authMiddleware.RequireAuth(h.CreateOffer))
	mux.HandleFunc("DELETE /api/credential-offers/{id}", authMiddleware.RequireAuth(h.DeleteOffer))
}

// ============================================================================
// Forms
// ============================================================================

// List handles GET /api/forms
func (h *FormsHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.formService.ListForms(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: forms}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/forms/{id}
func (h *FormsHandler) Get(w http.ResponseWriter, r *http.Request) {
	form, err := h.formService.GetForm(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: form}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/forms
func (h *FormsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form models.Form
	if !decodeJSON(w, r, h.logger, &form) {
		return
	}
	form.CreatedBy = auth.GetUserFromContext(r.Context())

	created, err := h.formService.CreateForm(r.Context(), &form)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/forms/{id}
func (h *FormsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.FormPatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.formService.UpdateForm(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/forms/{id}
func (h *FormsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.formService.DeleteForm(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Form deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Publish handles POST /api/forms/{id}/publish
func (h *FormsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	form, err := h.formService.PublishForm(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: form}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Unpublish handles POST /api/forms/{id}/unpublish
func (h *FormsHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	form, err := h.formService.UnpublishForm(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: form}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Submissions
// ============================================================================

// ListSubmissions handles GET /api/forms/{id}/submissions
func (h *FormsHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.formService.ListSubmissions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: submissions}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateSubmission handles POST /api/forms/{id}/submissions
func (h *FormsHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	submission, err := h.formService.CreateSubmission(r.Context(), r.PathValue("id"), req.Data)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: submission}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetSubmission handles GET /api/submissions/{id}
func (h *FormsHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submission, err := h.formService.GetSubmission(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: submission}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteSubmission handles DELETE /api/submissions/{id}
func (h *FormsHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	if err := h.formService.DeleteSubmission(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Submission deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Credential offers
// ============================================================================

// ListOffers handles GET /api/credential-offers
func (h *FormsHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.formService.ListOffers(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: offers}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetOffer handles GET /api/credential-offers/{id}
func (h *FormsHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.formService.GetOffer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: offer}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateOffer handles POST /api/credential-offers
func (h *FormsHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var offer models.CredentialOffer
	if !decodeJSON(w, r, h.logger, &offer) {
		return
	}

	created, err := h.formService.CreateOffer(r.Context(), &offer)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteOffer handles DELETE /api/credential-offers/{id}
func (h *FormsHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.formService.DeleteOffer(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Offer deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
