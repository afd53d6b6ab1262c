package dto

import (
	"time"

	"github.com/google/uuid"
)

type TechDetailRequest struct {
	Material string `json:"material" validate:"required"`
	Weight   int    `json:"weight" validate:"gt=0"`
	Width    int    `json:"width" validate:"gt=0"`
	Length   int    `json:"length" validate:"gt=0"`
	Depth    int    `json:"depth" validate:"gt=0"`
}

type TechDetailResponse struct {
	Material string `json:"material"`
	Weight   int    `json:"weight"`
	Width    int    `json:"width"`
	Length   int    `json:"length"`
	Depth    int    `json:"depth"`
}

type CreateCampaignRequest struct {
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description"`
	CampaignPicture *string            `json:"campaign_picture"`
	PledgePrice     float64            `json:"pledge_price" validate:"required,gt=0"`
	MinPledgers     int                `json:"min_pledgers" validate:"required,gt=0"`
	MaxPledgers     *int               `json:"max_pledgers" validate:"omitempty,gt=0"`
	EndDate         time.Time          `json:"end_date" validate:"required"`
	ModelId         *uuid.UUID         `json:"model_id"`
	TechDetail      *TechDetailRequest `json:"tech_detail"`
}

type CreateCampaignResponse struct {
	Id           uuid.UUID `json:"id"`
	PreferenceId string    `json:"preference_id"`
}

type CampaignResponse struct {
	Id              uuid.UUID           `json:"id"`
	PrinterId       uuid.UUID           `json:"printer_id"`
	ModelId         *uuid.UUID          `json:"model_id,omitempty"`
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	CampaignPicture *string             `json:"campaign_picture,omitempty"`
	PledgePrice     float64             `json:"pledge_price"`
	MinPledgers     int                 `json:"min_pledgers"`
	MaxPledgers     *int                `json:"max_pledgers,omitempty"`
	CurrentPledgers int                 `json:"current_pledgers"`
	Status          string              `json:"status"`
	StartDate       time.Time           `json:"start_date"`
	EndDate         time.Time           `json:"end_date"`
	PreferenceId    *string             `json:"preference_id,omitempty"`
	TechDetail      *TechDetailResponse `json:"tech_detail,omitempty"`
}

type ListCampaignsRequest struct {
	Page      int        `query:"page"`
	Limit     int        `query:"limit"`
	Status    string     `query:"status"`
	PrinterId *uuid.UUID `query:"printer_id"`
	BuyerId   *uuid.UUID `query:"buyer_id"`
}

type ListCampaignsResponse struct {
	Campaigns []*CampaignResponse `json:"campaigns"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
}
