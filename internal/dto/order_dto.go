package dto

import (
	"time"

	"github.com/google/uuid"
)

type OrderResponse struct {
	Id         uuid.UUID `json:"id"`
	CampaignId uuid.UUID `json:"campaign_id"`
	PledgeId   uuid.UUID `json:"pledge_id"`
	BuyerId    uuid.UUID `json:"buyer_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=dispatched received"`
}
