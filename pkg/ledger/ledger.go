package ledger

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Ledger records immutable money movements and derives balances from them.
// Entries are never updated in place: a refund is a new negative entry, and
// settling future money flips a single flag.
type Ledger interface {
	Record(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.Transaction) error
	RecordRefund(ctx context.Context, uow unitofwork.UnitOfWork, original *entity.Transaction) (*entity.Transaction, error)
	Settle(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error
	SumBalance(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, isFuture bool) (float64, error)
}

type ledgerImpl struct {
	log logger.ILogger
}

func NewLedger(log logger.ILogger) Ledger {
	return &ledgerImpl{log: log}
}

func (l *ledgerImpl) Record(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.Transaction) error {
	if err := uow.TransactionRepository().Create(ctx, tx); err != nil {
		return err
	}
	l.log.Debug("ledger", "recorded transaction", map[string]interface{}{
		"transaction_id": tx.Id,
		"type":           tx.Type,
		"amount":         tx.Amount,
	})
	return nil
}

// RecordRefund writes the compensating entry for an existing transaction and
// returns it so callers can link it back to the pledge.
func (l *ledgerImpl) RecordRefund(ctx context.Context, uow unitofwork.UnitOfWork, original *entity.Transaction) (*entity.Transaction, error) {
	refund := original.MakeRefund()
	if err := l.Record(ctx, uow, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

func (l *ledgerImpl) Settle(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) error {
	return uow.TransactionRepository().MarkSettled(ctx, id)
}

func (l *ledgerImpl) SumBalance(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, isFuture bool) (float64, error) {
	return uow.TransactionRepository().SumAmount(ctx, userId, isFuture)
}
