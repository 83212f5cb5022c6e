package usecase

import (
	"context"
	"errors"

	"folio-service/internal/apierror"
	"folio-service/internal/domain"
	"folio-service/internal/pub"
	"folio-service/internal/repository"

	"go.uber.org/zap"
)

type CashflowUsecase struct {
	repo      repository.CashflowRepository
	publisher *pub.PostingEventPublisher
	logger    *zap.Logger
}

func NewCashflowUsecase(
	repo repository.CashflowRepository,
	publisher *pub.PostingEventPublisher,
	logger *zap.Logger,
) *CashflowUsecase {
	return &CashflowUsecase{repo: repo, publisher: publisher, logger: logger}
}

// CreateIfAbsent runs the create-or-replay protocol for cashflows. Same
// probe-then-insert shape as transactions; the ext_id unique constraint is
// the arbiter under concurrent identical requests.
func (uc *CashflowUsecase) CreateIfAbsent(ctx context.Context, extID string, in *domain.CashflowCreate) (*CreateResult, error) {
	if extID == "" {
		return nil, apierror.BadRequest("Idempotency-Key header is required")
	}
	if missing := in.MissingField(); missing != "" {
		return nil, apierror.BadRequest("Missing field: " + missing)
	}

	id, err := uc.repo.GetIDByExtID(ctx, extID)
	if err == nil {
		return &CreateResult{ID: id, Idempotent: true}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	id, err = uc.repo.Insert(ctx, in, extID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("cashflow created",
		zap.String("id", id),
		zap.String("ext_id", extID))
	uc.publisher.Publish(ctx, "posting.cashflow_created", id, *in.UserID, extID)

	return &CreateResult{ID: id, Idempotent: false}, nil
}
