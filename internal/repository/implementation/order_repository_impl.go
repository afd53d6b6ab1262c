package implementation

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/model"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"

	"gorm.io/gorm"
)

type orderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func (r *orderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	mo := &model.Order{
		Id:         order.Id,
		CampaignId: order.CampaignId,
		PledgeId:   order.PledgeId,
		BuyerId:    order.BuyerId,
		Status:     string(order.Status),
	}
	return r.db.WithContext(ctx).Create(mo).Error
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var mo model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mo), nil
}

func (r *orderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var mos []*model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mos).Error; err != nil {
		return nil, err
	}

	var orders []*entity.Order
	for _, mo := range mos {
		orders = append(orders, r.mapToEntity(mo))
	}

	return orders, nil
}

func (r *orderRepositoryImpl) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", order.Id).
		UpdateColumn("status", string(order.Status)).Error
}

func (r *orderRepositoryImpl) mapToEntity(mo *model.Order) *entity.Order {
	return &entity.Order{
		Id:         mo.Id,
		CampaignId: mo.CampaignId,
		PledgeId:   mo.PledgeId,
		BuyerId:    mo.BuyerId,
		Status:     entity.OrderStatus(mo.Status),
		CreatedAt:  mo.CreatedAt,
		UpdatedAt:  mo.UpdatedAt,
	}
}
