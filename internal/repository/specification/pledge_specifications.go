package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForCampaign filters pledges belonging to a campaign.
type ForCampaign struct {
	CampaignID uuid.UUID
}

func (s ForCampaign) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("campaign_id = ?", s.CampaignID)
}

// ByBuyer filters pledges made by a buyer.
type ByBuyer struct {
	BuyerID uuid.UUID
}

func (s ByBuyer) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("buyer_id = ?", s.BuyerID)
}
