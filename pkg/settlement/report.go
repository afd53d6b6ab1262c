package settlement

import (
	"time"

	"printmob-be/internal/entity"

	"github.com/google/uuid"
)

// PledgeOutcome records what happened to a single pledge during a run. A
// failed pledge carries both the error and the audit row that will be parked
// for manual retry.
type PledgeOutcome struct {
	PledgeId uuid.UUID
	BuyerId  uuid.UUID
	Refunded bool
	Settled  bool
	Err      error
	Failure  *entity.FailedRefund
}

// CampaignResult is the per-campaign slice of a settlement run.
type CampaignResult struct {
	CampaignId uuid.UUID
	FromStatus entity.CampaignStatus
	ToStatus   entity.CampaignStatus
	Outcomes   []PledgeOutcome
	// Skipped is set when the campaign's status commit failed and the whole
	// campaign was left for the next run.
	Skipped    bool
	SkipReason string
}

func (r CampaignResult) RefundedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Refunded {
			n++
		}
	}
	return n
}

func (r CampaignResult) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Report summarizes one sweep of the finalize or cancel job.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Campaigns  []CampaignResult
}

func (r *Report) TotalRefunded() int {
	n := 0
	for _, c := range r.Campaigns {
		n += c.RefundedCount()
	}
	return n
}

func (r *Report) TotalFailed() int {
	n := 0
	for _, c := range r.Campaigns {
		n += c.FailedCount()
	}
	return n
}

// failures collects the audit rows of every failed pledge for the batch
// insert at the end of the run.
func (r *Report) failures() []*entity.FailedRefund {
	var out []*entity.FailedRefund
	for _, c := range r.Campaigns {
		for _, o := range c.Outcomes {
			if o.Failure != nil {
				out = append(out, o.Failure)
			}
		}
	}
	return out
}
