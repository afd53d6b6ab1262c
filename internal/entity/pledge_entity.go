package entity

import (
	"time"

	"github.com/google/uuid"
)

type Pledge struct {
	Id                    uuid.UUID
	CampaignId            uuid.UUID
	BuyerId               uuid.UUID
	PledgePrice           float64
	PrinterTransactionId  *uuid.UUID // nil until a captured payment is associated
	DesignerTransactionId *uuid.UUID // nil unless the campaign carries a designer revenue share
	CreatedAt             time.Time
	DeletedAt             *time.Time
}

// IsLive reports whether the pledge still counts towards its campaign.
// Cancellation and refunds mark the pledge deleted instead of removing it.
func (p Pledge) IsLive() bool {
	return p.DeletedAt == nil
}
