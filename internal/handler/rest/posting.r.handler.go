package hrest

import (
	"encoding/json"
	"net/http"

	"folio-service/internal/apierror"
	"folio-service/internal/domain"
	"folio-service/internal/response"
	"folio-service/internal/usecase"
)

// IdempotencyHeader carries the client-supplied key that deduplicates
// logically identical create requests.
const IdempotencyHeader = "Idempotency-Key"

func (h *FolioRestHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in domain.TransactionCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	res, err := h.txUC.CreateIfAbsent(r.Context(), r.Header.Get(IdempotencyHeader), &in)
	if err != nil {
		response.Error(w, apierror.Classify(err))
		return
	}
	response.JSON(w, createStatus(res), res)
}

func (h *FolioRestHandler) CreateCashflow(w http.ResponseWriter, r *http.Request) {
	var in domain.CashflowCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	res, err := h.cfUC.CreateIfAbsent(r.Context(), r.Header.Get(IdempotencyHeader), &in)
	if err != nil {
		response.Error(w, apierror.Classify(err))
		return
	}
	response.JSON(w, createStatus(res), res)
}

// createStatus distinguishes a fresh create (201) from a replay (200).
func createStatus(res *usecase.CreateResult) int {
	if res.Idempotent {
		return http.StatusOK
	}
	return http.StatusCreated
}
