package entity

import (
	"time"

	"github.com/google/uuid"
)

// FailedRefund is an append-only audit record for a pledge whose compensation
// could not complete during a settlement run. Only the batch jobs create
// these; interactive request paths surface the failure to the caller instead.
type FailedRefund struct {
	Id       uuid.UUID
	PledgeId uuid.UUID
	FailedAt time.Time
	Error    string
	Context  map[string]interface{}
}
