package mapper

import (
	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
)

type ModelMapper struct{}

func NewModelMapper() *ModelMapper {
	return &ModelMapper{}
}

func (m *ModelMapper) ToResponse(dm *entity.DesignerModel) *dto.ModelResponse {
	if dm == nil {
		return nil
	}
	return &dto.ModelResponse{
		Id:            dm.Id,
		DesignerId:    dm.DesignerId,
		Name:          dm.Name,
		Description:   dm.Description,
		Category:      dm.Category,
		PicturesURL:   dm.PicturesURL,
		Price:         dm.Price,
		AllowPurchase: dm.AllowPurchase,
		LikesCount:    dm.LikesCount,
		CreatedAt:     dm.CreatedAt,
	}
}

func (m *ModelMapper) ToResponseList(models []*entity.DesignerModel) []*dto.ModelResponse {
	out := make([]*dto.ModelResponse, 0, len(models))
	for _, dm := range models {
		out = append(out, m.ToResponse(dm))
	}
	return out
}
