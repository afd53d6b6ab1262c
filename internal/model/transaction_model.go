package model

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentId string    `gorm:"type:varchar(255);not null;index:idx_transactions_payment"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_user"`
	Amount    float64   `gorm:"type:decimal(10,2);not null"`
	Type      string    `gorm:"type:varchar(30);not null"`
	IsFuture  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
