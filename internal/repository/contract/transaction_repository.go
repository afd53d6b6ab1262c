package contract

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)
	// MarkSettled flips IsFuture to false, the only mutation a ledger entry
	// ever receives.
	MarkSettled(ctx context.Context, id uuid.UUID) error
	SumAmount(ctx context.Context, userId uuid.UUID, isFuture bool) (float64, error)
}
