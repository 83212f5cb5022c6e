package repository

import (
	"context"
	"errors"
	"fmt"

	"folio-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// ErrNotFound signals an absent row to the layer above. Callers translate it
// into protocol decisions; it never maps onto an API error by itself.
var ErrNotFound = errors.New("not found")

type TransactionRepository interface {
	// GetIDByExtID probes for a prior record under an idempotency key.
	GetIDByExtID(ctx context.Context, extID string) (string, error)
	// Insert performs the single durable insert. The unique constraint on
	// ext_id is the arbiter under concurrent identical requests.
	Insert(ctx context.Context, in *domain.TransactionCreate, extID string) (string, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepo(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) GetIDByExtID(ctx context.Context, extID string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM transactions WHERE ext_id = $1`, extID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to probe transaction by ext_id: %w", err)
	}
	return id, nil
}

func (r *transactionRepo) Insert(ctx context.Context, in *domain.TransactionCreate, extID string) (string, error) {
	id := ulid.Make().String()
	_, err := r.db.Exec(ctx, `
		INSERT INTO transactions (
			id, user_id, broker_id, location_id, asset_id, listing_id,
			type, quantity, price, fee_amount, fee_currency, traded_at, note, ext_id
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		id, in.UserID, in.BrokerID, in.LocationID, in.AssetID, in.ListingID,
		in.Type, in.Quantity, in.Price, in.Fee(), in.FeeCurrency, in.TradedAt, in.Note, extID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}
	return id, nil
}
