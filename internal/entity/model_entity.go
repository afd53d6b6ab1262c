package entity

import (
	"time"

	"github.com/google/uuid"
)

// DesignerModel is a purchasable/licensable 3D design published by a
// designer. Campaigns may be spawned from a purchased model, in which case
// pledges on that campaign carry a designer revenue share.
type DesignerModel struct {
	Id            uuid.UUID
	DesignerId    uuid.UUID
	Name          string
	Description   string
	Category      string
	PicturesURL   []string
	FileURL       string
	Price         float64
	AllowPurchase bool
	LikesCount    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

type ModelPurchase struct {
	Id            uuid.UUID
	ModelId       uuid.UUID
	PrinterId     uuid.UUID
	Price         float64
	TransactionId uuid.UUID
	CreatedAt     time.Time
}

type ModelLike struct {
	Id        uuid.UUID
	ModelId   uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}
