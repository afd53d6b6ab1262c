package mapper

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
)

type PledgeMapper struct{}

func NewPledgeMapper() *PledgeMapper {
	return &PledgeMapper{}
}

func (m *PledgeMapper) ToResponse(p *entity.Pledge) *dto.PledgeResponse {
	if p == nil {
		return nil
	}
	return &dto.PledgeResponse{
		Id:          p.Id,
		CampaignId:  p.CampaignId,
		BuyerId:     p.BuyerId,
		PledgePrice: p.PledgePrice,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *PledgeMapper) ToResponseList(pledges []*entity.Pledge) []*dto.PledgeResponse {
	out := make([]*dto.PledgeResponse, 0, len(pledges))
	for _, p := range pledges {
		out = append(out, m.ToResponse(p))
	}
	return out
}
