package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pledge rows are never hard-deleted: cancellation and refunds set DeletedAt
// so the audit trail of a campaign stays intact.
type Pledge struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampaignId            uuid.UUID      `gorm:"type:uuid;not null;index:idx_pledges_campaign"`
	BuyerId               uuid.UUID      `gorm:"type:uuid;not null;index:idx_pledges_buyer"`
	PledgePrice           float64        `gorm:"type:decimal(10,2);not null"`
	PrinterTransactionId  *uuid.UUID     `gorm:"type:uuid"`
	DesignerTransactionId *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt             time.Time      `gorm:"autoCreateTime"`
	DeletedAt             gorm.DeletedAt `gorm:"index"`

	// Relations
	Campaign            *Campaign    `gorm:"foreignKey:CampaignId"`
	PrinterTransaction  *Transaction `gorm:"foreignKey:PrinterTransactionId"`
	DesignerTransaction *Transaction `gorm:"foreignKey:DesignerTransactionId"`
}

func (Pledge) TableName() string {
	return "pledges"
}
