package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// FxRateRepository stores rates in canonical direction only. Callers are
// responsible for canonicalizing the pair before writing; the
// fx_rates_canonical_chk constraint rejects anything that slips through.
type FxRateRepository interface {
	UpsertCanonical(ctx context.Context, rate *domain.FxRate) error
	// GetCanonicalRate resolves the rate for a canonical pair at an exact
	// timestamp. No interpolation, no nearest-before.
	GetCanonicalRate(ctx context.Context, ccyFrom, ccyTo string, ts time.Time) (decimal.Decimal, error)
	// LatestCanonical returns the newest row per canonical pair.
	LatestCanonical(ctx context.Context) ([]*domain.FxRate, error)
}

type fxRateRepo struct {
	db *pgxpool.Pool
}

func NewFxRateRepo(db *pgxpool.Pool) FxRateRepository {
	return &fxRateRepo{db: db}
}

func (r *fxRateRepo) UpsertCanonical(ctx context.Context, rate *domain.FxRate) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO fx_rates (ccy_from, ccy_to, ts, rate, created_at)
		VALUES ($1,$2,$3,$4,now())
		ON CONFLICT (ccy_from, ccy_to, ts) DO UPDATE
		SET rate = EXCLUDED.rate
	`, rate.CcyFrom, rate.CcyTo, rate.Ts, rate.Rate)
	if err != nil {
		return fmt.Errorf("failed to upsert fx rate: %w", err)
	}
	return nil
}

func (r *fxRateRepo) GetCanonicalRate(ctx context.Context, ccyFrom, ccyTo string, ts time.Time) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT rate FROM fx_rates
		WHERE ccy_from = $1 AND ccy_to = $2 AND ts = $3
	`, ccyFrom, ccyTo, ts).Scan(&rate)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, ErrNotFound
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to get fx rate: %w", err)
	}
	return rate, nil
}

func (r *fxRateRepo) LatestCanonical(ctx context.Context) ([]*domain.FxRate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (ccy_from, ccy_to)
			ccy_from, ccy_to, ts, rate, created_at
		FROM fx_rates
		ORDER BY ccy_from, ccy_to, ts DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest fx rates: %w", err)
	}
	defer rows.Close()

	var rates []*domain.FxRate
	for rows.Next() {
		var fx domain.FxRate
		if err := rows.Scan(&fx.CcyFrom, &fx.CcyTo, &fx.Ts, &fx.Rate, &fx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fx rate: %w", err)
		}
		rates = append(rates, &fx)
	}
	return rates, rows.Err()
}
