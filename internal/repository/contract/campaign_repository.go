package contract

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateStatus(ctx context.Context, campaign *entity.Campaign) error
	Update(ctx context.Context, campaign *entity.Campaign) error
	// AdjustPledgers moves the live-pledge counter by delta within the
	// current transaction scope. Callers must hold the campaign row lock.
	AdjustPledgers(ctx context.Context, campaign *entity.Campaign, delta int) error
	CreateTechDetail(ctx context.Context, detail *entity.CampaignTechDetail) error
}
