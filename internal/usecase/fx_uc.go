package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"folio-service/internal/apierror"
	"folio-service/internal/domain"
	"folio-service/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	latestExpandedCacheKey = "fx:latest_expanded"
	latestExpandedCacheTTL = 5 * time.Minute
)

// ExpandedRate is one logical row of the latest-expanded view: each canonical
// pair appears in both directions at the pair's single latest timestamp.
type ExpandedRate struct {
	CcyFrom string          `json:"ccy_from"`
	CcyTo   string          `json:"ccy_to"`
	Ts      time.Time       `json:"ts"`
	Rate    decimal.Decimal `json:"rate"`
}

type FxUsecase struct {
	repo        repository.FxRateRepository
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewFxUsecase(repo repository.FxRateRepository, redisClient *redis.Client, logger *zap.Logger) *FxUsecase {
	return &FxUsecase{repo: repo, redisClient: redisClient, logger: logger}
}

// Upsert stores a rate in canonical direction, inverting the value when the
// caller supplied the pair in reverse order. Re-upserting the same logical
// rate at the same timestamp overwrites instead of duplicating.
func (uc *FxUsecase) Upsert(ctx context.Context, from, to string, ts time.Time, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return apierror.BadRequest("rate must be a positive decimal")
	}

	ccyFrom, ccyTo, flipped := domain.CanonicalPair(from, to)
	stored := rate
	if flipped {
		stored = domain.Reciprocal(rate)
	}

	err := uc.repo.UpsertCanonical(ctx, &domain.FxRate{
		CcyFrom: ccyFrom,
		CcyTo:   ccyTo,
		Ts:      ts,
		Rate:    stored,
	})
	if err != nil {
		return err
	}

	if uc.redisClient != nil {
		_ = uc.redisClient.Del(ctx, latestExpandedCacheKey).Err()
	}
	return nil
}

// Convert resolves a conversion at an exact timestamp. Resolution order:
// identity, direct rate (canonical or reciprocal), then a two-leg path
// through pivot. Direct always wins over the pivot path.
func (uc *FxUsecase) Convert(ctx context.Context, amount decimal.Decimal, from, to string, ts time.Time, pivot string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := uc.directRate(ctx, from, to, ts)
	if err == nil {
		return amount.Mul(rate), nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return decimal.Decimal{}, err
	}

	leg1, err := uc.directRate(ctx, from, pivot, ts)
	if err != nil {
		return decimal.Decimal{}, uc.missing(err, from, to, ts, pivot)
	}
	leg2, err := uc.directRate(ctx, pivot, to, ts)
	if err != nil {
		return decimal.Decimal{}, uc.missing(err, from, to, ts, pivot)
	}

	return amount.Mul(leg1).Mul(leg2), nil
}

// LatestExpanded returns both directions of every pair's newest canonical
// row. The inverse direction always carries the same timestamp as the
// canonical one, never an independently resolved "latest".
func (uc *FxUsecase) LatestExpanded(ctx context.Context) ([]*ExpandedRate, error) {
	if uc.redisClient != nil {
		if val, err := uc.redisClient.Get(ctx, latestExpandedCacheKey).Result(); err == nil {
			var cached []*ExpandedRate
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		}
	}

	rows, err := uc.repo.LatestCanonical(ctx)
	if err != nil {
		return nil, err
	}

	expanded := make([]*ExpandedRate, 0, 2*len(rows))
	for _, fx := range rows {
		expanded = append(expanded,
			&ExpandedRate{CcyFrom: fx.CcyFrom, CcyTo: fx.CcyTo, Ts: fx.Ts, Rate: fx.Rate},
			&ExpandedRate{CcyFrom: fx.CcyTo, CcyTo: fx.CcyFrom, Ts: fx.Ts, Rate: domain.Reciprocal(fx.Rate)},
		)
	}

	if uc.redisClient != nil {
		if data, err := json.Marshal(expanded); err == nil {
			_ = uc.redisClient.Set(ctx, latestExpandedCacheKey, data, latestExpandedCacheTTL).Err()
		}
	}
	return expanded, nil
}

// directRate resolves a single leg at an exact timestamp. A same-currency
// leg resolves to 1, which lets a pivot equal to either endpoint degrade
// into a single-leg conversion.
func (uc *FxUsecase) directRate(ctx context.Context, from, to string, ts time.Time) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	ccyFrom, ccyTo, flipped := domain.CanonicalPair(from, to)
	rate, err := uc.repo.GetCanonicalRate(ctx, ccyFrom, ccyTo, ts)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if flipped {
		rate = domain.Reciprocal(rate)
	}
	return rate, nil
}

// missing wraps a probe miss into the pattern-matchable conversion failure;
// unexpected storage errors pass through untouched.
func (uc *FxUsecase) missing(err error, from, to string, ts time.Time, pivot string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &domain.FxMissingError{From: from, To: to, Ts: ts, Pivot: pivot}
	}
	return err
}
