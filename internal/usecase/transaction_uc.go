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

// CreateResult is the outcome of the idempotent write protocol. Idempotent
// is true when the call replayed a prior record instead of creating one.
type CreateResult struct {
	ID         string `json:"id"`
	Idempotent bool   `json:"idempotent"`
}

type TransactionUsecase struct {
	repo      repository.TransactionRepository
	publisher *pub.PostingEventPublisher
	logger    *zap.Logger
}

func NewTransactionUsecase(
	repo repository.TransactionRepository,
	publisher *pub.PostingEventPublisher,
	logger *zap.Logger,
) *TransactionUsecase {
	return &TransactionUsecase{repo: repo, publisher: publisher, logger: logger}
}

// CreateIfAbsent runs the create-or-replay protocol for transactions.
//
// The probe is an optimization, not a lock: two concurrent calls with the
// same key can both miss it and race on the insert. The unique constraint
// on ext_id is the sole arbiter; the loser surfaces as a conflict and gets
// the replay on retry.
func (uc *TransactionUsecase) CreateIfAbsent(ctx context.Context, extID string, in *domain.TransactionCreate) (*CreateResult, error) {
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

	uc.logger.Info("transaction created",
		zap.String("id", id),
		zap.String("ext_id", extID))
	uc.publisher.Publish(ctx, "posting.transaction_created", id, *in.UserID, extID)

	return &CreateResult{ID: id, Idempotent: false}, nil
}
