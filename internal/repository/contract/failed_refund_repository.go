package contract

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"
)

type FailedRefundRepository interface {
	// CreateBatch appends failed-compensation audit rows in one insert.
	CreateBatch(ctx context.Context, failures []*entity.FailedRefund) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FailedRefund, error)
}
