package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/auth"
	"github.com/copa-network/copa-console/pkg/models"
	"github.com/copa-network/copa-console/pkg/services"
)

// CategoriesHandler handles catalogue category HTTP requests.
type CategoriesHandler struct {
	catalogueService services.CatalogueService
	logger           *zap.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(catalogueService services.CatalogueService, logger *zap.Logger) *CategoriesHandler {
	return &CategoriesHandler{
		catalogueService: catalogueService,
		logger:           logger,
	}
}

// RegisterRoutes registers the category routes on the given mux.
func (h *CategoriesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /api/catalogue/categories", h.List)
	mux.HandleFunc("GET /api/catalogue/categories/{id}", h.Get)
	mux.HandleFunc("POST /api/catalogue/categories", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /api/catalogue/categories/{id}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /api/catalogue/categories/{id}", authMiddleware.RequireAuth(h.Delete))
}

// List handles GET /api/catalogue/categories
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogueService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: categories}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/catalogue/categories/{id}
func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalogueService.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: category}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/catalogue/categories
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if !decodeJSON(w, r, h.logger, &c) {
		return
	}

	created, err := h.catalogueService.CreateCategory(r.Context(), &c)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: created}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/catalogue/categories/{id}
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch services.CategoryPatch
	if !decodeJSON(w, r, h.logger, &patch) {
		return
	}

	updated, err := h.catalogueService.UpdateCategory(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/catalogue/categories/{id}
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogueService.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Category deleted"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
