package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusReceived   OrderStatus = "received"
)

// Order represents a print job owed to a buyer after a campaign completes.
type Order struct {
	Id         uuid.UUID
	CampaignId uuid.UUID
	PledgeId   uuid.UUID
	BuyerId    uuid.UUID
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
