package hrest

import (
	"encoding/json"
	"net/http"
	"time"

	"folio-service/internal/apierror"
	"folio-service/internal/response"

	"github.com/shopspring/decimal"
)

type fxUpsertJSON struct {
	CcyFrom *string          `json:"ccy_from"`
	CcyTo   *string          `json:"ccy_to"`
	Ts      *time.Time       `json:"ts"`
	Rate    *decimal.Decimal `json:"rate"`
}

func (h *FolioRestHandler) UpsertRate(w http.ResponseWriter, r *http.Request) {
	var in fxUpsertJSON
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}
	required := []struct {
		name string
		ok   bool
	}{
		{"ccy_from", in.CcyFrom != nil},
		{"ccy_to", in.CcyTo != nil},
		{"ts", in.Ts != nil},
		{"rate", in.Rate != nil},
	}
	for _, f := range required {
		if !f.ok {
			response.Error(w, apierror.BadRequest("Missing field: "+f.name))
			return
		}
	}

	if err := h.fxUC.Upsert(r.Context(), *in.CcyFrom, *in.CcyTo, *in.Ts, *in.Rate); err != nil {
		response.Error(w, apierror.Classify(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FolioRestHandler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid amount"))
		return
	}
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		response.Error(w, apierror.BadRequest("from and to are required"))
		return
	}
	ts, err := time.Parse(time.RFC3339, q.Get("ts"))
	if err != nil {
		response.Error(w, apierror.BadRequest("invalid ts, expected RFC3339"))
		return
	}
	pivot := q.Get("pivot")
	if pivot == "" {
		pivot = h.defaultPivot
	}

	out, err := h.fxUC.Convert(r.Context(), amount, from, to, ts, pivot)
	if err != nil {
		response.Error(w, apierror.Classify(err))
		return
	}
	response.JSON(w, http.StatusOK, map[string]decimal.Decimal{"amount": out})
}

func (h *FolioRestHandler) LatestRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.fxUC.LatestExpanded(r.Context())
	if err != nil {
		response.Error(w, apierror.Classify(err))
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"rates": rates})
}
