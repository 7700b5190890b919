package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Search handles GET /api/catalogue/search?q=
func (h *CatalogueHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogueService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Export handles GET /api/catalogue/export. With ?format=yaml the document
// is re-encoded as YAML; the JSON tags drive the field names either way.
func (h *CatalogueHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalogueService.Export(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if r.URL.Query().Get("format") == "yaml" {
		raw, err := json.Marshal(doc)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		w.Header().Set("Content-Disposition", `attachment; filename="catalogue-export.yaml"`)
		_, _ = w.Write(out)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="catalogue-export.json"`)
	if err := WriteJSON(w, http.StatusOK, doc); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Import handles POST /api/catalogue/import
func (h *CatalogueHandler) Import(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Failed to read request body"); werr != nil {
			h.logger.Error("Failed to write error response", zap.Error(werr))
		}
		return
	}

	result, err := h.catalogueService.Import(r.Context(), raw)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Stats handles GET /api/catalogue/stats
func (h *CatalogueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalogueService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: stats}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
