package hrest

import (
	"net/http"

	"folio-service/internal/repository"
	"folio-service/internal/response"
	"folio-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FolioRestHandler carries the HTTP surface: idempotent posting creation,
// the FX endpoints and the health/dev probes.
type FolioRestHandler struct {
	txUC         *usecase.TransactionUsecase
	cfUC         *usecase.CashflowUsecase
	fxUC         *usecase.FxUsecase
	systemRepo   repository.SystemRepository
	defaultPivot string
	devRoutes    bool
	logger       *zap.Logger
}

func NewFolioRestHandler(
	txUC *usecase.TransactionUsecase,
	cfUC *usecase.CashflowUsecase,
	fxUC *usecase.FxUsecase,
	systemRepo repository.SystemRepository,
	defaultPivot string,
	devRoutes bool,
	logger *zap.Logger,
) *FolioRestHandler {
	return &FolioRestHandler{
		txUC:         txUC,
		cfUC:         cfUC,
		fxUC:         fxUC,
		systemRepo:   systemRepo,
		defaultPivot: defaultPivot,
		devRoutes:    devRoutes,
		logger:       logger,
	}
}

func (h *FolioRestHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Post("/transactions", h.CreateTransaction)
		r.Post("/cashflows", h.CreateCashflow)
		r.Route("/fx", func(r chi.Router) {
			r.Post("/rates", h.UpsertRate)
			r.Get("/rates/latest", h.LatestRates)
			r.Get("/convert", h.Convert)
		})
	})

	if h.devRoutes {
		r.Route("/dev/db", func(r chi.Router) {
			r.Get("/health", h.DevDBHealth)
			r.Get("/time", h.DevDBTime)
		})
	}
}

func (h *FolioRestHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}
