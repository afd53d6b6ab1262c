package mapper

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
)

type CampaignMapper struct{}

func NewCampaignMapper() *CampaignMapper {
	return &CampaignMapper{}
}

func (m *CampaignMapper) ToResponse(c *entity.Campaign) *dto.CampaignResponse {
	if c == nil {
		return nil
	}

	resp := &dto.CampaignResponse{
		Id:              c.Id,
		PrinterId:       c.PrinterId,
		ModelId:         c.ModelId,
		Name:            c.Name,
		Description:     c.Description,
		CampaignPicture: c.CampaignPicture,
		PledgePrice:     c.PledgePrice,
		MinPledgers:     c.MinPledgers,
		MaxPledgers:     c.MaxPledgers,
		CurrentPledgers: c.CurrentPledgers,
		Status:          string(c.Status),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		PreferenceId:    c.PreferenceId,
	}

	if c.TechDetail != nil {
		resp.TechDetail = &dto.TechDetailResponse{
			Material: c.TechDetail.Material,
			Weight:   c.TechDetail.Weight,
			Width:    c.TechDetail.Width,
			Length:   c.TechDetail.Length,
			Depth:    c.TechDetail.Depth,
		}
	}

	return resp
}

func (m *CampaignMapper) ToResponseList(campaigns []*entity.Campaign) []*dto.CampaignResponse {
	out := make([]*dto.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, m.ToResponse(c))
	}
	return out
}
