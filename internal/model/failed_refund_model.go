package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type FailedRefund struct {
	Id       uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PledgeId uuid.UUID      `gorm:"type:uuid;not null;index"`
	FailedAt time.Time      `gorm:"not null"`
	Error    string         `gorm:"type:text;not null"`
	Context  datatypes.JSON `gorm:"type:jsonb"`
}

func (FailedRefund) TableName() string {
	return "failed_refunds"
}
