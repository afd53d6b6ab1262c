package contract

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
}
