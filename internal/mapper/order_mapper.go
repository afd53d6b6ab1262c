package mapper

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		Id:         o.Id,
		CampaignId: o.CampaignId,
		PledgeId:   o.PledgeId,
		BuyerId:    o.BuyerId,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func (m *OrderMapper) ToResponseList(orders []*entity.Order) []*dto.OrderResponse {
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, m.ToResponse(o))
	}
	return out
}
