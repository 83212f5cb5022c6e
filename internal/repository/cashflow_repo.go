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

type CashflowRepository interface {
	GetIDByExtID(ctx context.Context, extID string) (string, error)
	Insert(ctx context.Context, in *domain.CashflowCreate, extID string) (string, error)
}

type cashflowRepo struct {
	db *pgxpool.Pool
}

func NewCashflowRepo(db *pgxpool.Pool) CashflowRepository {
	return &cashflowRepo{db: db}
}

func (r *cashflowRepo) GetIDByExtID(ctx context.Context, extID string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM cashflows WHERE ext_id = $1`, extID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to probe cashflow by ext_id: %w", err)
	}
	return id, nil
}

func (r *cashflowRepo) Insert(ctx context.Context, in *domain.CashflowCreate, extID string) (string, error) {
	id := ulid.Make().String()
	_, err := r.db.Exec(ctx, `
		INSERT INTO cashflows (
			id, user_id, broker_id, account_location_id, asset_id, jurisdiction_id,
			type, amount, currency, occurred_at, note, ext_id
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		id, in.UserID, in.BrokerID, in.AccountLocationID, in.AssetID, in.JurisdictionID,
		in.Type, in.Amount, in.NormalizedCurrency(), in.OccurredAt, in.Note, extID,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert cashflow: %w", err)
	}
	return id, nil
}
