package unitofwork

import (
	"context"

	"printmob-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CampaignRepository() contract.CampaignRepository
	PledgeRepository() contract.PledgeRepository
	TransactionRepository() contract.TransactionRepository
	OrderRepository() contract.OrderRepository
	FailedRefundRepository() contract.FailedRefundRepository
	ModelRepository() contract.ModelRepository
}
