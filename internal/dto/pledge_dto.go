package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePledgeRequest struct {
	CampaignId uuid.UUID `json:"campaign_id" validate:"required"`
}

// CreatePledgeWithPaymentRequest is the capture-first flow: the client
// already holds a captured payment id and attaches it to the new pledge.
type CreatePledgeWithPaymentRequest struct {
	CampaignId uuid.UUID `json:"campaign_id" validate:"required"`
	PaymentId  string    `json:"payment_id" validate:"required"`
}

type CreatePledgeResponse struct {
	PledgeId       uuid.UUID `json:"pledge_id"`
	CampaignStatus string    `json:"campaign_status"`
	// RedirectURL points the buyer at the checkout page when the pledge was
	// created without a captured payment.
	RedirectURL string `json:"redirect_url,omitempty"`
}

type PledgeResponse struct {
	Id          uuid.UUID `json:"id"`
	CampaignId  uuid.UUID `json:"campaign_id"`
	BuyerId     uuid.UUID `json:"buyer_id"`
	PledgePrice float64   `json:"pledge_price"`
	CreatedAt   time.Time `json:"created_at"`
}
