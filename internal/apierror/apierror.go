package apierror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error is the single API-facing error shape. Every non-2xx response body is
// built from one of these.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string { return e.Message }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// BadRequest is used by the validation gate for failures that must never
// reach storage.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, "bad_request", message)
}

// Classification rules, ordered. First match wins. Matching is intentionally
// done on message text: constraint names are the most stable signal Postgres
// exposes across versions, and they appear verbatim in the error message.
var (
	fxMissingPatterns = []string{"fx missing"}

	conflictPatterns = []string{
		"transactions_ext_id_key",
		"cashflows_ext_id_key",
		"duplicate key",
	}

	domainCheckPatterns = []string{
		"txn_fee_currency_chk",
		"tx_price_semantics_chk",
		"fx_rates_canonical_chk",
		"cashflows_ccy_chk",
		"cashflows_type_min_rules_chk",
	}
)

// Classify maps a storage-layer failure onto the API taxonomy. Errors that
// are already classified pass through unchanged; everything else is matched
// case-insensitively against the ordered pattern lists. A nil error is
// treated as an empty message and lands on the 500 default.
func Classify(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	msg := ""
	if err != nil {
		msg = err.Error()
	}

	// pgconn surfaces the constraint name separately from the message text;
	// fold it in so matching does not depend on the driver's formatting.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		msg = msg + " " + pgErr.ConstraintName
	}

	lower := strings.ToLower(msg)
	switch {
	case matchAny(lower, fxMissingPatterns):
		return New(http.StatusUnprocessableEntity, "fx_missing", msg)
	case matchAny(lower, conflictPatterns):
		return New(http.StatusConflict, "conflict", msg)
	case matchAny(lower, domainCheckPatterns):
		return New(http.StatusBadRequest, "bad_request", msg)
	}

	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    "internal",
		Message: "Unexpected error",
		Details: map[string]any{"pg": msg},
	}
}

func matchAny(msg string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
