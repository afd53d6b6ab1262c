package contract

import (
	"context"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PledgeRepository interface {
	Create(ctx context.Context, pledge *entity.Pledge) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pledge, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pledge, error)
	// FindLiveByCampaign returns the non-deleted pledges of a campaign.
	FindLiveByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*entity.Pledge, error)
	// FindLiveByBuyerAndCampaign enforces the one-active-pledge-per-buyer
	// invariant; returns nil when the buyer has no live pledge.
	FindLiveByBuyerAndCampaign(ctx context.Context, buyerId, campaignId uuid.UUID) (*entity.Pledge, error)
	CountLive(ctx context.Context, campaignId uuid.UUID) (int64, error)
	Update(ctx context.Context, pledge *entity.Pledge) error
	// SoftDelete marks the pledge cancelled/refunded without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
