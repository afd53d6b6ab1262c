package implementation

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/model"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"

	"gorm.io/gorm"
)

type campaignRepositoryImpl struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) contract.CampaignRepository {
	return &campaignRepositoryImpl{db: db}
}

func (r *campaignRepositoryImpl) Create(ctx context.Context, campaign *entity.Campaign) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(campaign)).Error
}

func (r *campaignRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error) {
	var mc model.Campaign
	query := r.db.WithContext(ctx).Preload("TechDetail")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mc), nil
}

func (r *campaignRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error) {
	var mcs []*model.Campaign
	query := r.db.WithContext(ctx).Preload("TechDetail")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mcs).Error; err != nil {
		return nil, err
	}

	var campaigns []*entity.Campaign
	for _, mc := range mcs {
		campaigns = append(campaigns, r.mapToEntity(mc))
	}

	return campaigns, nil
}

func (r *campaignRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Campaign{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

// UpdateStatus persists a lifecycle transition. End date travels with it
// because scheduling finalization pulls the end date forward.
func (r *campaignRepositoryImpl) UpdateStatus(ctx context.Context, campaign *entity.Campaign) error {
	return r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", campaign.Id).
		Updates(map[string]interface{}{
			"status":   string(campaign.Status),
			"end_date": campaign.EndDate,
		}).Error
}

func (r *campaignRepositoryImpl) Update(ctx context.Context, campaign *entity.Campaign) error {
	return r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", campaign.Id).
		Updates(map[string]interface{}{
			"name":             campaign.Name,
			"description":      campaign.Description,
			"campaign_picture": campaign.CampaignPicture,
			"status":           string(campaign.Status),
			"end_date":         campaign.EndDate,
			"preference_id":    campaign.PreferenceId,
		}).Error
}

func (r *campaignRepositoryImpl) AdjustPledgers(ctx context.Context, campaign *entity.Campaign, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", campaign.Id).
		UpdateColumn("current_pledgers", gorm.Expr("current_pledgers + ?", delta)).Error
}

func (r *campaignRepositoryImpl) CreateTechDetail(ctx context.Context, detail *entity.CampaignTechDetail) error {
	md := &model.CampaignTechDetail{
		Id:         detail.Id,
		CampaignId: detail.CampaignId,
		Material:   detail.Material,
		Weight:     detail.Weight,
		Width:      detail.Width,
		Length:     detail.Length,
		Depth:      detail.Depth,
	}
	return r.db.WithContext(ctx).Create(md).Error
}

func (r *campaignRepositoryImpl) mapToModel(c *entity.Campaign) *model.Campaign {
	return &model.Campaign{
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
}

func (r *campaignRepositoryImpl) mapToEntity(mc *model.Campaign) *entity.Campaign {
	c := &entity.Campaign{
		Id:              mc.Id,
		PrinterId:       mc.PrinterId,
		ModelId:         mc.ModelId,
		Name:            mc.Name,
		Description:     mc.Description,
		CampaignPicture: mc.CampaignPicture,
		PledgePrice:     mc.PledgePrice,
		MinPledgers:     mc.MinPledgers,
		MaxPledgers:     mc.MaxPledgers,
		CurrentPledgers: mc.CurrentPledgers,
		Status:          entity.CampaignStatus(mc.Status),
		StartDate:       mc.StartDate,
		EndDate:         mc.EndDate,
		PreferenceId:    mc.PreferenceId,
		CreatedAt:       mc.CreatedAt,
		UpdatedAt:       mc.UpdatedAt,
	}
	if mc.TechDetail != nil {
		c.TechDetail = &entity.CampaignTechDetail{
			Id:         mc.TechDetail.Id,
			CampaignId: mc.TechDetail.CampaignId,
			Material:   mc.TechDetail.Material,
			Weight:     mc.TechDetail.Weight,
			Width:      mc.TechDetail.Width,
			Length:     mc.TechDetail.Length,
			Depth:      mc.TechDetail.Depth,
		}
	}
	return c
}
