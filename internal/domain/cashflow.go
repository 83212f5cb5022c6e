package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cashflow represents a non-trade money movement (deposit, withdrawal,
// dividend and so on). Same create-or-replay lifecycle as Transaction.
type Cashflow struct {
	ID                string
	UserID            string
	BrokerID          *string
	AccountLocationID *string
	AssetID           *string
	JurisdictionID    *string
	Type              string
	Amount            decimal.Decimal
	Currency          string
	OccurredAt        time.Time
	Note              *string
	ExtID             string
	CreatedAt         time.Time
}

// CashflowCreate is the write-side payload for cashflows.
type CashflowCreate struct {
	UserID            *string          `json:"user_id"`
	BrokerID          *string          `json:"broker_id"`
	AccountLocationID *string          `json:"account_location_id"`
	AssetID           *string          `json:"asset_id"`
	JurisdictionID    *string          `json:"jurisdiction_id"`
	Type              *string          `json:"type"`
	Amount            *decimal.Decimal `json:"amount"`
	Currency          *string          `json:"currency"`
	OccurredAt        *time.Time       `json:"occurred_at"`
	Note              *string          `json:"note"`
}

var cashflowRequired = []string{"user_id", "type", "amount", "currency", "occurred_at"}

// MissingField returns the first absent required field or "".
func (c *CashflowCreate) MissingField() string {
	present := map[string]bool{
		"user_id":     c.UserID != nil,
		"type":        c.Type != nil,
		"amount":      c.Amount != nil,
		"currency":    c.Currency != nil,
		"occurred_at": c.OccurredAt != nil,
	}
	for _, k := range cashflowRequired {
		if !present[k] {
			return k
		}
	}
	return ""
}

// NormalizedCurrency returns the uppercased ISO code. Sign and magnitude
// rules per type are enforced by the cashflows_type_min_rules_chk constraint
// at the storage boundary.
func (c *CashflowCreate) NormalizedCurrency() string {
	if c.Currency == nil {
		return ""
	}
	return strings.ToUpper(*c.Currency)
}
