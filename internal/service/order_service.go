package service

import (
	"context"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/mapper"
	"printmob-be/internal/pkg/apperrors"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IOrderService interface {
	ListForBuyer(ctx context.Context, buyerId uuid.UUID) ([]*dto.OrderResponse, error)
	ListForCampaign(ctx context.Context, printerId uuid.UUID, campaignId uuid.UUID) ([]*dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, userId uuid.UUID, orderId uuid.UUID, req *dto.UpdateOrderStatusRequest) error
}

type orderService struct {
	uowFactory  unitofwork.RepositoryFactory
	orderMapper *mapper.OrderMapper
}

func NewOrderService(uowFactory unitofwork.RepositoryFactory) IOrderService {
	return &orderService{
		uowFactory:  uowFactory,
		orderMapper: mapper.NewOrderMapper(),
	}
}

func (s *orderService) ListForBuyer(ctx context.Context, buyerId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.Filter("buyer_id", buyerId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return s.orderMapper.ToResponseList(orders), nil
}

func (s *orderService) ListForCampaign(ctx context.Context, printerId uuid.UUID, campaignId uuid.UUID) ([]*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: campaignId})
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperrors.NewNotFound("campaign not found")
	}
	if campaign.PrinterId != printerId {
		return nil, apperrors.NewValidation("campaign belongs to another printer")
	}

	orders, err := uow.OrderRepository().FindAll(ctx,
		specification.Filter("campaign_id", campaignId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return s.orderMapper.ToResponseList(orders), nil
}

// UpdateStatus advances an order along its delivery flow. Only the campaign's
// printer may mark it dispatched, and only the order's buyer may confirm
// receipt.
func (s *orderService) UpdateStatus(ctx context.Context, userId uuid.UUID, orderId uuid.UUID, req *dto.UpdateOrderStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if order == nil {
		return apperrors.NewNotFound("order not found")
	}

	target := entity.OrderStatus(req.Status)
	switch target {
	case entity.OrderStatusDispatched:
		campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: order.CampaignId})
		if err != nil {
			return err
		}
		if campaign == nil || campaign.PrinterId != userId {
			return apperrors.NewValidation("only the campaign printer can dispatch an order")
		}
		if order.Status != entity.OrderStatusInProgress {
			return apperrors.NewValidation("order is not awaiting dispatch")
		}
	case entity.OrderStatusReceived:
		if order.BuyerId != userId {
			return apperrors.NewValidation("only the buyer can confirm receipt")
		}
		if order.Status != entity.OrderStatusDispatched {
			return apperrors.NewValidation("order has not been dispatched")
		}
	default:
		return apperrors.NewValidation("unsupported order status")
	}

	order.Status = target
	if err := uow.OrderRepository().Update(ctx, order); err != nil {
		return err
	}

	return uow.Commit()
}
