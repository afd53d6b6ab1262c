package contract

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ModelRepository interface {
	Create(ctx context.Context, model *entity.DesignerModel) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DesignerModel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DesignerModel, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Update(ctx context.Context, model *entity.DesignerModel) error

	CreatePurchase(ctx context.Context, purchase *entity.ModelPurchase) error
	FindPurchase(ctx context.Context, modelId, printerId uuid.UUID) (*entity.ModelPurchase, error)

	CreateLike(ctx context.Context, like *entity.ModelLike) error
	DeleteLike(ctx context.Context, modelId, userId uuid.UUID) error
}
