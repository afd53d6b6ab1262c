package model

import (
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrinterId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ModelId         *uuid.UUID `gorm:"type:uuid;index"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Description     string     `gorm:"type:text"`
	CampaignPicture *string    `gorm:"type:varchar(512)"`
	PledgePrice     float64    `gorm:"type:decimal(10,2);not null"`
	MinPledgers     int        `gorm:"not null"`
	MaxPledgers     *int
	CurrentPledgers int        `gorm:"not null;default:0"`
	Status          string     `gorm:"type:varchar(30);not null;index"`
	StartDate       time.Time  `gorm:"not null"`
	EndDate         time.Time  `gorm:"not null;index"`
	PreferenceId    *string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`

	// Relations
	TechDetail *CampaignTechDetail `gorm:"foreignKey:CampaignId"`
	Pledges    []*Pledge           `gorm:"foreignKey:CampaignId"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

type CampaignTechDetail struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampaignId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Material   string    `gorm:"type:varchar(100)"`
	Weight     int
	Width      int
	Length     int
	Depth      int
}

func (CampaignTechDetail) TableName() string {
	return "campaign_tech_details"
}
