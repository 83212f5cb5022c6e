package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents one trade event. Rows are created exactly once via
// the idempotent write protocol and never mutated afterwards; corrections
// happen as new records upstream.
type Transaction struct {
	ID          string
	UserID      string
	BrokerID    string
	LocationID  string
	AssetID     string
	ListingID   *string
	Type        string
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	FeeAmount   decimal.Decimal
	FeeCurrency *string
	TradedAt    time.Time
	Note        *string
	ExtID       string
	CreatedAt   time.Time
}

// TransactionCreate is the write-side payload. Required fields are pointers
// so that an absent JSON key is distinguishable from a zero value.
type TransactionCreate struct {
	UserID      *string          `json:"user_id"`
	BrokerID    *string          `json:"broker_id"`
	LocationID  *string          `json:"location_id"`
	AssetID     *string          `json:"asset_id"`
	ListingID   *string          `json:"listing_id"`
	Type        *string          `json:"type"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	FeeAmount   *decimal.Decimal `json:"fee_amount"`
	FeeCurrency *string          `json:"fee_currency"`
	TradedAt    *time.Time       `json:"traded_at"`
	Note        *string          `json:"note"`
}

var transactionRequired = []string{
	"user_id", "broker_id", "location_id", "asset_id",
	"type", "quantity", "price", "traded_at",
}

// MissingField returns the name of the first absent required field, in the
// order the API reports them, or "" when the payload is complete.
func (c *TransactionCreate) MissingField() string {
	present := map[string]bool{
		"user_id":     c.UserID != nil,
		"broker_id":   c.BrokerID != nil,
		"location_id": c.LocationID != nil,
		"asset_id":    c.AssetID != nil,
		"type":        c.Type != nil,
		"quantity":    c.Quantity != nil,
		"price":       c.Price != nil,
		"traded_at":   c.TradedAt != nil,
	}
	for _, k := range transactionRequired {
		if !present[k] {
			return k
		}
	}
	return ""
}

// Fee returns the fee amount with the missing-means-zero default applied.
func (c *TransactionCreate) Fee() decimal.Decimal {
	if c.FeeAmount == nil {
		return decimal.Zero
	}
	return *c.FeeAmount
}
