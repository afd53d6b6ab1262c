package model

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampaignId uuid.UUID `gorm:"type:uuid;not null;index"`
	PledgeId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BuyerId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(30);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	// Relations
	Campaign *Campaign `gorm:"foreignKey:CampaignId"`
}

func (Order) TableName() string {
	return "orders"
}
