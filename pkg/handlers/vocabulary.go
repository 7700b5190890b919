package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/auth"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/services"
)

// BulkAddMappingsRequest for POST .../properties/{propID}/bulk-add-mapping
type BulkAddMappingsRequest struct {
	Mappings []*models.ProviderMapping `json:"mappings"`
}

// BulkRemoveMappingsRequest for POST .../properties/{propID}/bulk-remove-mapping
type BulkRemoveMappingsRequest struct {
	EntityIDs []string `json:"entityIds"`
}

// VocabularyHandler handles the vocabulary data type HTTP requests,
// including the property/source/mapping sub-resources embedded in each
// type document.
type VocabularyHandler struct {
	vocabularyService services.VocabularyService
	logger            *zap.Logger
}

// NewVocabularyHandler creates a new vocabulary handler.
func NewVocabularyHandler(vocabularyService services.VocabularyService, logger *zap.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		vocabularyService: vocabularyService,
		logger:            logger,
	}
}

// RegisterRoutes registers the vocabulary routes on the given mux.
func (h *VocabularyHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	base := "/api/vocabulary/data-types"

	mux.HandleFunc("GET "+base, h.ListTypes)
	mux.HandleFunc("GET "+base+"/{id}", h.GetType)
	mux.HandleFunc("POST "+base, authMiddleware.RequireAuth(h.CreateType))
	mux.HandleFunc("PUT "+base+"/{id}", authMiddleware.RequireAuth(h.UpdateType))
	mux.HandleFunc("DELETE "+base+"/{id}", authMiddleware.RequireAuth(h.DeleteType))

	mux.HandleFunc("POST "+base+"/{id}/properties", authMiddleware.RequireAuth(h.AddProperty))
	mux.HandleFunc("PUT "+base+"/{id}/properties/{propID}", authMiddleware.RequireAuth(h.UpdateProperty))
	mux.HandleFunc("DELETE "+base+"/{id}/properties/{propID}", authMiddleware.RequireAuth(h.DeleteProperty))

	mux.HandleFunc("POST "+base+"/{id}/sources", authMiddleware.RequireAuth(h.AddSource))
	mux.HandleFunc("PUT "+base+"/{id}/sources/{entityID}", authMiddleware.RequireAuth(h.UpdateSource))
	mux.HandleFunc("DELETE "+base+"/{id}/sources/{entityID}", authMiddleware.RequireAuth(h.DeleteSource))

	mux.HandleFunc("POST "+base+"/{id}/properties/{propID}/mappings", authMiddleware.RequireAuth(h.AddMapping))
	mux.HandleFunc("DELETE "+base+"/{id}/properties/{propID}/mappings/{entityID}", authMiddleware.RequireAuth(h.DeleteMapping))
	mux.HandleFunc("POST "+base+"/{id}/properties/{propID}/bulk-add-mapping", authMiddleware.RequireAuth(h.BulkAddMappings))
	mux.HandleFunc("POST "+base+"/{id}/properties/{propID}/bulk-remove-mapping", authMiddleware.RequireAuth(h.BulkRemoveMappings))
}

// ============================================================================
// Types
// ============================================================================

// ListTypes handles GET /api/vocabulary/data-types
func (h *VocabularyHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	types, err := h.vocabularyService.ListTypes(r.Context(), q.Get("category"), q.Get("search"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: types}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetType handles GET /api/vocabulary/data-types/{id}
func (h *VocabularyHandler) GetType(w http.ResponseWriter, r *http.Request) {
	vt, err := h.vocabularyService.GetType(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: vt}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateType handles POST /api/vocabulary/data-types
func (h *VocabularyHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var vt models.VocabularyType
	if !decodeJSON(w, r, h.logger, &vt) {
		return
	}

	created, err := h.vocabularyService.CreateType(r.Context(), &vt)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateType handles PUT /api/vocabulary/data-types/{id}
func (h *VocabularyHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	var patch services.VocabularyTypePatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.vocabularyService.UpdateType(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteType handles DELETE /api/vocabulary/data-types/{id}
func (h *VocabularyHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	if err := h.vocabularyService.DeleteType(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Data type deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Properties
// ============================================================================

// AddProperty handles POST /api/vocabulary/data-types/{id}/properties
func (h *VocabularyHandler) AddProperty(w http.ResponseWriter, r *http.Request) {
	var p models.Property
	if !decodeJSON(w, r, h.logger, &p) {
		return
	}

	created, err := h.vocabularyService.AddProperty(r.Context(), r.PathValue("id"), &p)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateProperty handles PUT /api/vocabulary/data-types/{id}/properties/{propID}
func (h *VocabularyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var patch services.PropertyPatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.vocabularyService.UpdateProperty(r.Context(), r.PathValue("id"), r.PathValue("propID"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteProperty handles DELETE /api/vocabulary/data-types/{id}/properties/{propID}
func (h *VocabularyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.vocabularyService.DeleteProperty(r.Context(), r.PathValue("id"), r.PathValue("propID")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Property deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Sources
// ============================================================================

// AddSource handles POST /api/vocabulary/data-types/{id}/sources
func (h *VocabularyHandler) AddSource(w http.ResponseWriter, r *http.Request) {
	var src models.Source
	if !decodeJSON(w, r, h.logger, &src) {
		return
	}
	src.AddedBy = auth.GetUserFromContext(r.Context())

	created, err := h.vocabularyService.AddSource(r.Context(), r.PathValue("id"), &src)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateSource handles PUT /api/vocabulary/data-types/{id}/sources/{entityID}
func (h *VocabularyHandler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	var patch services.SourcePatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.vocabularyService.UpdateSource(r.Context(), r.PathValue("id"), r.PathValue("entityID"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteSource handles DELETE /api/vocabulary/data-types/{id}/sources/{entityID}
func (h *VocabularyHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	if err := h.vocabularyService.DeleteSource(r.Context(), r.PathValue("id"), r.PathValue("entityID")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Source deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Provider mappings
// ============================================================================

// AddMapping handles POST /api/vocabulary/data-types/{id}/properties/{propID}/mappings
func (h *VocabularyHandler) AddMapping(w http.ResponseWriter, r *http.Request) {
	var m models.ProviderMapping
	if !decodeJSON(w, r, h.logger, &m) {
		return
	}
	m.AddedBy = auth.GetUserFromContext(r.Context())

	created, err := h.vocabularyService.AddMapping(r.Context(), r.PathValue("id"), r.PathValue("propID"), &m)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteMapping handles DELETE /api/vocabulary/data-types/{id}/properties/{propID}/mappings/{entityID}
func (h *VocabularyHandler) DeleteMapping(w http.ResponseWriter, r *http.Request) {
	err := h.vocabularyService.DeleteMapping(r.Context(), r.PathValue("id"), r.PathValue("propID"), r.PathValue("entityID"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Mapping deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BulkAddMappings handles POST /api/vocabulary/data-types/{id}/properties/{propID}/bulk-add-mapping
func (h *VocabularyHandler) BulkAddMappings(w http.ResponseWriter, r *http.Request) {
	var req BulkAddMappingsRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	addedBy := auth.GetUserFromContext(r.Context())
	for _, m := range req.Mappings {
		m.AddedBy = addedBy
	}

	result, err := h.vocabularyService.BulkAddMappings(r.Context(), r.PathValue("id"), r.PathValue("propID"), req.Mappings)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BulkRemoveMappings handles POST /api/vocabulary/data-types/{id}/properties/{propID}/bulk-remove-mapping
func (h *VocabularyHandler) BulkRemoveMappings(w http.ResponseWriter, r *http.Request) {
	var req BulkRemoveMappingsRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	result, err := h.vocabularyService.BulkRemoveMappings(r.Context(), r.PathValue("id"), r.PathValue("propID"), req.EntityIDs)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
