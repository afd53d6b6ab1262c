package events

import (
	"time"

	"github.com/google/uuid"
)

// Event codes for the campaign domain.
const (
	EventCampaignCreated       = "CAMPAIGN_CREATED"
	EventCampaignStatusChanged = "CAMPAIGN_STATUS_CHANGED"
	EventPledgeCreated         = "PLEDGE_CREATED"
	EventPledgeCancelled       = "PLEDGE_CANCELLED"
	EventCampaignSettled       = "CAMPAIGN_SETTLED"
)

// NewCampaignStatusChanged is emitted whenever a campaign transitions between
// lifecycle statuses, either from a pledge or from the settlement jobs.
func NewCampaignStatusChanged(campaignId uuid.UUID, from, to string) Event {
	return BaseEvent{
		Type: EventCampaignStatusChanged,
		Data: map[string]interface{}{
			"campaign_id": campaignId.String(),
			"from":        from,
			"to":          to,
		},
		OccurredAt: time.Now(),
	}
}

func NewCampaignCreated(campaignId, printerId uuid.UUID) Event {
	return BaseEvent{
		Type: EventCampaignCreated,
		Data: map[string]interface{}{
			"campaign_id": campaignId.String(),
			"printer_id":  printerId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewPledgeCreated(pledgeId, campaignId, buyerId uuid.UUID) Event {
	return BaseEvent{
		Type: EventPledgeCreated,
		Data: map[string]interface{}{
			"pledge_id":   pledgeId.String(),
			"campaign_id": campaignId.String(),
			"buyer_id":    buyerId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewPledgeCancelled(pledgeId, campaignId uuid.UUID) Event {
	return BaseEvent{
		Type: EventPledgeCancelled,
		Data: map[string]interface{}{
			"pledge_id":   pledgeId.String(),
			"campaign_id": campaignId.String(),
		},
		OccurredAt: time.Now(),
	}
}

// NewCampaignSettled carries the outcome of a settlement run for one campaign,
// including how many refunds succeeded and how many were parked for retry.
func NewCampaignSettled(campaignId uuid.UUID, finalStatus string, refunded, failed int) Event {
	return BaseEvent{
		Type: EventCampaignSettled,
		Data: map[string]interface{}{
			"campaign_id":    campaignId.String(),
			"final_status":   finalStatus,
			"refunded_count": refunded,
			"failed_count":   failed,
		},
		OccurredAt: time.Now(),
	}
}
