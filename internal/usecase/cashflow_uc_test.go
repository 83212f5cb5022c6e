package usecase

import (
	"context"
	"testing"
	"time"

	"folio-service/internal/apierror"
	"folio-service/internal/domain"
	"folio-service/internal/pub"
	"folio-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCashflowRepo struct {
	byExtID      map[string]string
	inserts      int
	lastCurrency string
}

func newFakeCashflowRepo() *fakeCashflowRepo {
	return &fakeCashflowRepo{byExtID: map[string]string{}}
}

func (r *fakeCashflowRepo) GetIDByExtID(_ context.Context, extID string) (string, error) {
	if id, ok := r.byExtID[extID]; ok {
		return id, nil
	}
	return "", repository.ErrNotFound
}

func (r *fakeCashflowRepo) Insert(_ context.Context, in *domain.CashflowCreate, extID string) (string, error) {
	r.inserts++
	// Bind the same value the SQL insert binds for the currency column.
	r.lastCurrency = in.NormalizedCurrency()
	id := "01TESTCASHFLOW" + extID
	r.byExtID[extID] = id
	return id, nil
}

func validCashflowCreate(t *testing.T) *domain.CashflowCreate {
	t.Helper()
	occurredAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.CashflowCreate{
		UserID:     strPtr("u-1"),
		Type:       strPtr("deposit"),
		Amount:     decPtr(t, "500"),
		Currency:   strPtr("eur"),
		OccurredAt: &occurredAt,
	}
}

func newCfUC(repo repository.CashflowRepository) *CashflowUsecase {
	return NewCashflowUsecase(repo, pub.NewPostingEventPublisher(nil, zap.NewNop()), zap.NewNop())
}

func TestCashflowCreateAndReplay(t *testing.T) {
	repo := newFakeCashflowRepo()
	uc := newCfUC(repo)
	ctx := context.Background()

	first, err := uc.CreateIfAbsent(ctx, "cf-key-1", validCashflowCreate(t))
	require.NoError(t, err)
	assert.False(t, first.Idempotent)

	second, err := uc.CreateIfAbsent(ctx, "cf-key-1", validCashflowCreate(t))
	require.NoError(t, err)
	assert.True(t, second.Idempotent)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.inserts)
}

func TestCashflowMissingFields(t *testing.T) {
	uc := newCfUC(newFakeCashflowRepo())
	ctx := context.Background()

	tests := []struct {
		mutate    func(*domain.CashflowCreate)
		wantField string
	}{
		{func(c *domain.CashflowCreate) { c.UserID = nil }, "user_id"},
		{func(c *domain.CashflowCreate) { c.Type = nil }, "type"},
		{func(c *domain.CashflowCreate) { c.Amount = nil }, "amount"},
		{func(c *domain.CashflowCreate) { c.Currency = nil }, "currency"},
		{func(c *domain.CashflowCreate) { c.OccurredAt = nil }, "occurred_at"},
	}
	for _, tt := range tests {
		in := validCashflowCreate(t)
		tt.mutate(in)

		_, err := uc.CreateIfAbsent(ctx, "cf-key-x", in)
		var apiErr *apierror.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Missing field: "+tt.wantField, apiErr.Message)
	}
}

func TestCashflowCurrencyUppercased(t *testing.T) {
	repo := newFakeCashflowRepo()
	uc := newCfUC(repo)

	_, err := uc.CreateIfAbsent(context.Background(), "cf-key-1", validCashflowCreate(t))
	require.NoError(t, err)
	assert.Equal(t, "EUR", repo.lastCurrency)
}

func TestCashflowMissingKey(t *testing.T) {
	repo := newFakeCashflowRepo()
	uc := newCfUC(repo)

	_, err := uc.CreateIfAbsent(context.Background(), "", validCashflowCreate(t))
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Zero(t, repo.inserts)
}
