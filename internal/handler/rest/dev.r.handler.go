package hrest

import (
	"net/http"

	"folio-service/internal/response"
)

// Dev-only probes, registered outside production. One real query each, so a
// misconfigured DATABASE_URL shows up here before it shows up in postings.

func (h *FolioRestHandler) DevDBHealth(w http.ResponseWriter, r *http.Request) {
	status, err := h.systemRepo.Status(r.Context())
	if err != nil {
		response.JSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"ok":            true,
		"now":           status.Now,
		"db":            status.Database,
		"version":       status.Version,
		"public_tables": status.PublicTables,
	})
}

func (h *FolioRestHandler) DevDBTime(w http.ResponseWriter, r *http.Request) {
	now, err := h.systemRepo.Now(r.Context())
	if err != nil {
		response.JSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"now": now})
}
