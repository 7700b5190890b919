package handlers

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"github.com/copa-network/copa-console/pkg/apperrors"
	"github.com/copa-network/copa-console/pkg/config"
	"github.com/copa-network/copa-console/pkg/services"
)

// AdminHandler handles the operator-only endpoints. They are gated by the
// X-Admin-Secret header rather than the session: reseed is destructive and
// meant for scripted resets, not the UI.
type AdminHandler struct {
	cfg              *config.Config
	catalogueService services.CatalogueService
	logger           *zap.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(cfg *config.Config, catalogueService services.CatalogueService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		cfg:              cfg,
		catalogueService: catalogueService,
		logger:           logger,
	}
}

// RegisterRoutes registers the admin routes on the given mux.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/reseed", h.Reseed)
}

// Reseed handles POST /api/admin/reseed. Refused outright when ADMIN_SECRET
// is not configured; there is no built-in fallback secret.
func (h *AdminHandler) Reseed(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.ReseedEnabled() {
		h.logger.Warn("Rejected reseed request, no admin secret configured",
			zap.String("remote_addr", r.RemoteAddr))
		writeServiceError(w, h.logger, apperrors.ErrSeedsDisabled)
		return
	}
	if !h.authorized(r) {
		h.logger.Warn("Rejected reseed request", zap.String("remote_addr", r.RemoteAddr))
		if err := ErrorResponse(w, http.StatusForbidden, "forbidden", "Admin authorization required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.catalogueService.Reseed(r.Context()); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("Reseeded catalogue documents")
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Documents reseeded"}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	secret := r.Header.Get("X-Admin-Secret")
	return subtle.ConstantTimeCompare([]byte(secret), []byte(h.cfg.AdminSecret)) == 1
}
