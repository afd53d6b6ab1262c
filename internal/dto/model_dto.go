package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateModelRequest struct {
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	PicturesURL   []string `json:"pictures_url"`
	FileURL       string   `json:"file_url" validate:"required,url"`
	Price         float64  `json:"price" validate:"gte=0"`
	AllowPurchase bool     `json:"allow_purchase"`
}

type CreateModelResponse struct {
	Id uuid.UUID `json:"id"`
}

type ModelResponse struct {
	Id            uuid.UUID `json:"id"`
	DesignerId    uuid.UUID `json:"designer_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	PicturesURL   []string  `json:"pictures_url"`
	Price         float64   `json:"price"`
	AllowPurchase bool      `json:"allow_purchase"`
	LikesCount    int       `json:"likes_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListModelsRequest struct {
	Page       int        `query:"page"`
	Limit      int        `query:"limit"`
	Category   string     `query:"category"`
	DesignerId *uuid.UUID `query:"designer_id"`
}

type ListModelsResponse struct {
	Models []*ModelResponse `json:"models"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
}

type PurchaseModelResponse struct {
	PurchaseId uuid.UUID `json:"purchase_id"`
	// FileURL is only revealed once the purchase is recorded.
	FileURL string `json:"file_url"`
}
