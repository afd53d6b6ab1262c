package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DesignerModel struct {
	Id            uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesignerId    uuid.UUID                   `gorm:"type:uuid;not null;index"`
	Name          string                      `gorm:"type:varchar(255);not null"`
	Description   string                      `gorm:"type:text"`
	Category      string                      `gorm:"type:varchar(100);index"`
	PicturesURL   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	FileURL       string                      `gorm:"type:varchar(512);not null"`
	Price         float64                     `gorm:"type:decimal(10,2);not null"`
	AllowPurchase bool                        `gorm:"not null;default:true"`
	LikesCount    int                         `gorm:"not null;default:0"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt              `gorm:"index"`
}

func (DesignerModel) TableName() string {
	return "designer_models"
}

type ModelPurchase struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ModelId       uuid.UUID `gorm:"type:uuid;not null;index:idx_model_purchases_model"`
	PrinterId     uuid.UUID `gorm:"type:uuid;not null;index:idx_model_purchases_printer"`
	Price         float64   `gorm:"type:decimal(10,2);not null"`
	TransactionId uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (ModelPurchase) TableName() string {
	return "model_purchases"
}

type ModelLike struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ModelId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_model_likes_model_user,priority:1"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_model_likes_model_user,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ModelLike) TableName() string {
	return "model_likes"
}
