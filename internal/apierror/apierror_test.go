package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFxMissing(t *testing.T) {
	out := Classify(errors.New("FX missing: EUR->JPY at 2024-01-01 (pivot=EUR)"))

	assert.Equal(t, 422, out.Status)
	assert.Equal(t, "fx_missing", out.Code)
	assert.Contains(t, out.Message, "FX missing")
}

func TestClassifyConflict(t *testing.T) {
	msgs := []string{
		`duplicate key value violates unique constraint "transactions_ext_id_key"`,
		`duplicate key value violates unique constraint "cashflows_ext_id_key"`,
		`ERROR: duplicate key value violates unique constraint "whatever"`,
	}
	for _, msg := range msgs {
		out := Classify(errors.New(msg))
		assert.Equal(t, 409, out.Status, msg)
		assert.Equal(t, "conflict", out.Code, msg)
	}
}

func TestClassifyDomainChecks(t *testing.T) {
	msgs := []string{
		`violates check constraint "txn_fee_currency_chk"`,
		`violates check constraint "tx_price_semantics_chk"`,
		`violates check constraint "fx_rates_canonical_chk"`,
		`violates check constraint "cashflows_ccy_chk"`,
		`violates check constraint "cashflows_type_min_rules_chk"`,
	}
	for _, msg := range msgs {
		out := Classify(errors.New(msg))
		assert.Equal(t, 400, out.Status, msg)
		assert.Equal(t, "bad_request", out.Code, msg)
		assert.Contains(t, out.Message, "violates check")
	}
}

func TestClassifyMatchesCaseInsensitively(t *testing.T) {
	out := Classify(errors.New("fx MISSING: EUR->JPY"))
	assert.Equal(t, "fx_missing", out.Code)
}

func TestClassifyInternalFallback(t *testing.T) {
	raw := "some unexpected low-level PG error"
	out := Classify(errors.New(raw))

	assert.Equal(t, 500, out.Status)
	assert.Equal(t, "internal", out.Code)
	assert.Equal(t, "Unexpected error", out.Message)
	assert.Equal(t, map[string]any{"pg": raw}, out.Details)
}

func TestClassifyNilError(t *testing.T) {
	out := Classify(nil)

	assert.Equal(t, 500, out.Status)
	assert.Equal(t, "internal", out.Code)
	assert.Equal(t, map[string]any{"pg": ""}, out.Details)
}

func TestClassifyPassesThroughClassifiedErrors(t *testing.T) {
	in := BadRequest("Missing field: user_id")
	out := Classify(fmt.Errorf("create failed: %w", in))

	require.Same(t, in, out)
	assert.Equal(t, 400, out.Status)
}

func TestClassifyUsesPgConstraintName(t *testing.T) {
	// Some driver paths keep the constraint name out of the message text;
	// classification must still land on it.
	pgErr := &pgconn.PgError{
		Code:           "23514",
		Message:        "new row violates a check constraint",
		ConstraintName: "txn_fee_currency_chk",
	}
	out := Classify(fmt.Errorf("failed to insert transaction: %w", pgErr))

	assert.Equal(t, 400, out.Status)
	assert.Equal(t, "bad_request", out.Code)
}

func TestClassifyWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert transaction: %w",
		errors.New(`duplicate key value violates unique constraint "transactions_ext_id_key"`))
	out := Classify(wrapped)

	assert.Equal(t, 409, out.Status)
	assert.Equal(t, "conflict", out.Code)
}
