package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FxRatePrecision is the number of significant digits kept when deriving
// reciprocal rates, which keeps derived values well inside a 1e-9 relative
// tolerance at any rate magnitude.
const FxRatePrecision = 12

// FxRate is one directional exchange rate at an instant. Rows are persisted
// in canonical direction only (CcyFrom < CcyTo); the reverse direction is
// never stored and is derived by reciprocal at read time.
type FxRate struct {
	CcyFrom   string
	CcyTo     string
	Ts        time.Time
	Rate      decimal.Decimal
	CreatedAt time.Time
}

// CanonicalPair returns the canonical storage ordering for a currency pair
// and whether the caller's direction had to be flipped to reach it. The
// canonical order is plain lexicographic comparison of the ISO codes.
func CanonicalPair(from, to string) (ccyFrom, ccyTo string, flipped bool) {
	if from <= to {
		return from, to, false
	}
	return to, from, true
}

// Reciprocal derives the opposite-direction rate. The division scale tracks
// the rate's magnitude: a large rate (JPY or IDR scale) has a small
// reciprocal, and rounding it at a fixed fractional scale would discard
// significant digits.
func Reciprocal(rate decimal.Decimal) decimal.Decimal {
	scale := int32(FxRatePrecision)
	if intDigits := int32(rate.NumDigits()) + rate.Exponent(); intDigits > 0 {
		scale += intDigits
	}
	return decimal.NewFromInt(1).DivRound(rate, scale)
}

// FxMissingError reports that no direct rate and no complete pivot path
// exists for a conversion at the requested instant. Its message is the
// classification signal for the 422 fx_missing mapping, so the format
// must keep the leading "FX missing" marker.
type FxMissingError struct {
	From  string
	To    string
	Ts    time.Time
	Pivot string
}

func (e *FxMissingError) Error() string {
	return fmt.Sprintf("FX missing: %s->%s at %s (pivot=%s)",
		e.From, e.To, e.Ts.UTC().Format(time.RFC3339), e.Pivot)
}
