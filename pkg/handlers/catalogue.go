package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/auth"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/services"
)

// BulkAttributesRequest for POST /api/catalogue/attributes/bulk
type BulkAttributesRequest struct {
	DataTypeID string              `json:"dataTypeId"`
	Attributes []*models.Attribute `json:"attributes"`
}

// CatalogueHandler handles the furnisher-scoped catalogue HTTP requests:
// furnishers, data types, attributes, plus search/export/import/stats.
type CatalogueHandler struct {
	catalogueService services.CatalogueService
	logger           *zap.Logger
}

// NewCatalogueHandler creates a new catalogue handler.
func NewCatalogueHandler(catalogueService services.CatalogueService, logger *zap.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		catalogueService: catalogueService,
		logger:           logger,
	}
}

// RegisterRoutes registers the catalogue routes on the given mux. Reads are
// open; mutations go through the auth middleware.
func (h *CatalogueHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/catalogue/furnishers", h.ListFurnishers)
	mux.HandleFunc("GET /api/catalogue/furnishers/{id}", h.GetFurnisher)
	mux.HandleFunc("POST /api/catalogue/furnishers", authMiddleware.RequireAuth(h.CreateFurnisher))
	mux.HandleFunc("PUT /api/catalogue/furnishers/{id}", authMiddleware.RequireAuth(h.UpdateFurnisher))
	mux.HandleFunc("DELETE /api/catalogue/furnishers/{id}", authMiddleware.RequireAuth(h.DeleteFurnisher))

	mux.HandleFunc("GET /api/catalogue/data-types", h.ListDataTypes)
	mux.HandleFunc("GET /api/catalogue/data-types/{id}", h.GetDataType)
	mux.HandleFunc("POST /api/catalogue/data-types", authMiddleware.RequireAuth(h.CreateDataType))
	mux.HandleFunc("PUT /api/catalogue/data-types/{id}", authMiddleware.RequireAuth(h.UpdateDataType))
	mux.HandleFunc("DELETE /api/catalogue/data-types/{id}", authMiddleware.RequireAuth(h.DeleteDataType))

	mux.HandleFunc("GET /api/catalogue/attributes", h.ListAttributes)
	mux.HandleFunc("GET /api/catalogue/attributes/{id}", h.GetAttribute)
	mux.HandleFunc("POST /api/catalogue/attributes", authMiddleware.RequireAuth(h.CreateAttribute))
	mux.HandleFunc("POST /api/catalogue/attributes/bulk", authMiddleware.RequireAuth(h.BulkCreateAttributes))
	mux.HandleFunc("PUT /api/catalogue/attributes/{id}", authMiddleware.RequireAuth(h.UpdateAttribute))
	mux.HandleFunc("DELETE /api/catalogue/attributes/{id}", authMiddleware.RequireAuth(h.DeleteAttribute))

	mux.HandleFunc("GET /api/catalogue/search", h.Search)
	mux.HandleFunc("GET /api/catalogue/export", h.Export)
	mux.HandleFunc("POST /api/catalogue/import", authMiddleware.RequireAuth(h.Import))
	mux.HandleFunc("GET /api/catalogue/stats", h.Stats)
}

// ============================================================================
// Furnishers
// ============================================================================

// ListFurnishers handles GET /api/catalogue/furnishers
func (h *CatalogueHandler) ListFurnishers(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.catalogueService.ListFurnishers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: summaries}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetFurnisher handles GET /api/catalogue/furnishers/{id}
func (h *CatalogueHandler) GetFurnisher(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalogueService.GetFurnisher(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: detail}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateFurnisher handles POST /api/catalogue/furnishers
func (h *CatalogueHandler) CreateFurnisher(w http.ResponseWriter, r *http.Request) {
	var f models.Furnisher
	if !decodeJSON(w, r, h.logger, &f) {
		return
	}
	f.CreatedBy = auth.GetUserFromContext(r.Context())

	created, err := h.catalogueService.CreateFurnisher(r.Context(), &f)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateFurnisher handles PUT /api/catalogue/furnishers/{id}
func (h *CatalogueHandler) UpdateFurnisher(w http.ResponseWriter, r *http.Request) {
	var patch services.FurnisherPatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.catalogueService.UpdateFurnisher(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteFurnisher handles DELETE /api/catalogue/furnishers/{id}
func (h *CatalogueHandler) DeleteFurnisher(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogueService.DeleteFurnisher(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Furnisher deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Data types
// ============================================================================

// ListDataTypes handles GET /api/catalogue/data-types
func (h *CatalogueHandler) ListDataTypes(w http.ResponseWriter, r *http.Request) {
	dataTypes, err := h.catalogueService.ListDataTypes(r.Context(), r.URL.Query().Get("furnisherId"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: dataTypes}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetDataType handles GET /api/catalogue/data-types/{id}
func (h *CatalogueHandler) GetDataType(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalogueService.GetDataType(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: detail}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateDataType handles POST /api/catalogue/data-types
func (h *CatalogueHandler) CreateDataType(w http.ResponseWriter, r *http.Request) {
	var dt models.DataType
	if !decodeJSON(w, r, h.logger, &dt) {
		return
	}

	created, err := h.catalogueService.CreateDataType(r.Context(), &dt)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateDataType handles PUT /api/catalogue/data-types/{id}
func (h *CatalogueHandler) UpdateDataType(w http.ResponseWriter, r *http.Request) {
	var patch services.DataTypePatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.catalogueService.UpdateDataType(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteDataType handles DELETE /api/catalogue/data-types/{id}
func (h *CatalogueHandler) DeleteDataType(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogueService.DeleteDataType(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Data type deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ============================================================================
// Attributes
// ============================================================================

// ListAttributes handles GET /api/catalogue/attributes
func (h *CatalogueHandler) ListAttributes(w http.ResponseWriter, r *http.Request) {
	attributes, err := h.catalogueService.ListAttributes(r.Context(), r.URL.Query().Get("dataTypeId"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: attributes}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetAttribute handles GET /api/catalogue/attributes/{id}
func (h *CatalogueHandler) GetAttribute(w http.ResponseWriter, r *http.Request) {
	attribute, err := h.catalogueService.GetAttribute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: attribute}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateAttribute handles POST /api/catalogue/attributes
func (h *CatalogueHandler) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	var a models.Attribute
	if !decodeJSON(w, r, h.logger, &a) {
		return
	}

	created, err := h.catalogueService.CreateAttribute(r.Context(), &a)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BulkCreateAttributes handles POST /api/catalogue/attributes/bulk
func (h *CatalogueHandler) BulkCreateAttributes(w http.ResponseWriter, r *http.Request) {
	var req BulkAttributesRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}

	result, err := h.catalogueService.BulkCreateAttributes(r.Context(), req.DataTypeID, req.Attributes)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// UpdateAttribute handles PUT /api/catalogue/attributes/{id}
func (h *CatalogueHandler) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	var patch services.AttributePatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.catalogueService.UpdateAttribute(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// DeleteAttribute handles DELETE /api/catalogue/attributes/{id}
func (h *CatalogueHandler) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogueService.DeleteAttribute(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Attribute deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
