package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypePledge        TransactionType = "pledge"
	TransactionTypeModelPurchase TransactionType = "model_purchase"
	TransactionTypeCashout       TransactionType = "cashout"
	TransactionTypeRefund        TransactionType = "refund"
)

// Transaction is an immutable ledger entry. Reversals are modeled as new
// refund rows, never as updates, with the single exception of the IsFuture
// flag which flips to false once the underlying campaign settles.
type Transaction struct {
	Id        uuid.UUID
	PaymentId string // payment processor reference
	UserId    uuid.UUID
	Amount    float64 // signed, negative for refunds and cashouts
	Type      TransactionType
	IsFuture  bool
	CreatedAt time.Time
}

// MakeRefund builds the compensating refund entry for the transaction:
// exact negation of the amount, same payment reference, same user and the
// same IsFuture flag as the entry it reverses.
func (t Transaction) MakeRefund() *Transaction {
	return &Transaction{
		Id:        uuid.New(),
		PaymentId: t.PaymentId,
		UserId:    t.UserId,
		Amount:    -t.Amount,
		Type:      TransactionTypeRefund,
		IsFuture:  t.IsFuture,
	}
}
