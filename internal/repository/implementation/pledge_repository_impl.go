package implementation

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/model"
	"printmob-be/internal/repository/contract"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pledgeRepositoryImpl struct {
	db *gorm.DB
}

func NewPledgeRepository(db *gorm.DB) contract.PledgeRepository {
	return &pledgeRepositoryImpl{db: db}
}

func (r *pledgeRepositoryImpl) Create(ctx context.Context, pledge *entity.Pledge) error {
	mp := &model.Pledge{
		Id:                    pledge.Id,
		CampaignId:            pledge.CampaignId,
		BuyerId:               pledge.BuyerId,
		PledgePrice:           pledge.PledgePrice,
		PrinterTransactionId:  pledge.PrinterTransactionId,
		DesignerTransactionId: pledge.DesignerTransactionId,
	}
	return r.db.WithContext(ctx).Create(mp).Error
}

func (r *pledgeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pledge, error) {
	var mp model.Pledge
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mp), nil
}

func (r *pledgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pledge, error) {
	var mps []*model.Pledge
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mps).Error; err != nil {
		return nil, err
	}

	var pledges []*entity.Pledge
	for _, mp := range mps {
		pledges = append(pledges, r.mapToEntity(mp))
	}

	return pledges, nil
}

func (r *pledgeRepositoryImpl) FindLiveByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*entity.Pledge, error) {
	return r.FindAll(ctx, specification.ForCampaign{CampaignID: campaignId})
}

func (r *pledgeRepositoryImpl) FindLiveByBuyerAndCampaign(ctx context.Context, buyerId, campaignId uuid.UUID) (*entity.Pledge, error) {
	return r.FindOne(ctx,
		specification.ForCampaign{CampaignID: campaignId},
		specification.ByBuyer{BuyerID: buyerId},
	)
}

func (r *pledgeRepositoryImpl) CountLive(ctx context.Context, campaignId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Pledge{}).
		Where("campaign_id = ?", campaignId).
		Count(&count).Error
	return count, err
}

func (r *pledgeRepositoryImpl) Update(ctx context.Context, pledge *entity.Pledge) error {
	return r.db.WithContext(ctx).Model(&model.Pledge{}).
		Where("id = ?", pledge.Id).
		Updates(map[string]interface{}{
			"printer_transaction_id":  pledge.PrinterTransactionId,
			"designer_transaction_id": pledge.DesignerTransactionId,
		}).Error
}

func (r *pledgeRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Pledge{}, id).Error
}

func (r *pledgeRepositoryImpl) mapToEntity(mp *model.Pledge) *entity.Pledge {
	p := &entity.Pledge{
		Id:                    mp.Id,
		CampaignId:            mp.CampaignId,
		BuyerId:               mp.BuyerId,
		PledgePrice:           mp.PledgePrice,
		PrinterTransactionId:  mp.PrinterTransactionId,
		DesignerTransactionId: mp.DesignerTransactionId,
		CreatedAt:             mp.CreatedAt,
	}
	if mp.DeletedAt.Valid {
		deletedAt := mp.DeletedAt.Time
		p.DeletedAt = &deletedAt
	}
	return p
}
