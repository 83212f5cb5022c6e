package router

import (
	"time"

	hrest "folio-service/internal/handler/rest"
	"folio-service/internal/response"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func SetupRoutes(r chi.Router, h *hrest.FolioRestHandler) chi.Router {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.NotFound(response.NotFound)

	h.RegisterRoutes(r)
	return r
}
