package entity

import (
	"time"

	"github.com/google/uuid"
)

type CampaignStatus string

const (
	CampaignStatusInProgress    CampaignStatus = "in_progress"
	CampaignStatusConfirmed     CampaignStatus = "confirmed"
	CampaignStatusToBeFinalized CampaignStatus = "to_be_finalized"
	CampaignStatusCompleted     CampaignStatus = "completed"
	CampaignStatusUnsatisfied   CampaignStatus = "unsatisfied"
	CampaignStatusToBeCancelled CampaignStatus = "to_be_cancelled"
	CampaignStatusCancelled     CampaignStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed from the status.
func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusCompleted || s == CampaignStatusUnsatisfied || s == CampaignStatusCancelled
}

type Campaign struct {
	Id              uuid.UUID
	PrinterId       uuid.UUID
	ModelId         *uuid.UUID // set when the campaign was spawned from a designer model
	Name            string
	Description     string
	CampaignPicture *string
	PledgePrice     float64
	MinPledgers     int
	MaxPledgers     *int
	CurrentPledgers int
	Status          CampaignStatus
	StartDate       time.Time
	EndDate         time.Time
	PreferenceId    *string
	TechDetail      *CampaignTechDetail
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CampaignTechDetail holds the print specification attached to a campaign.
type CampaignTechDetail struct {
	Id         uuid.UUID
	CampaignId uuid.UUID
	Material   string
	Weight     int
	Width      int
	Length     int
	Depth      int
}

// The predicates below are pure functions over the campaign snapshot. When a
// pledge is being inserted, CurrentPledgers must already include that pledge
// before they are evaluated (the caller bumps the counter on its in-memory
// copy instead of re-reading after the insert).

func (c Campaign) HasReachedConfirmationGoal() bool {
	return c.CurrentPledgers >= c.MinPledgers
}

func (c Campaign) HasReachedEndDate(now time.Time) bool {
	return now.After(c.EndDate)
}

func (c Campaign) HasReachedMaximumPledgers() bool {
	return c.MaxPledgers != nil && c.CurrentPledgers >= *c.MaxPledgers
}

func (c Campaign) HasOnePledgeLeft() bool {
	return c.MaxPledgers != nil && *c.MaxPledgers-c.CurrentPledgers == 1
}

// HasToBeConfirmed holds when the very next pledge reaches the minimum goal
// and the campaign is not one slot away from being full. The one-slot case is
// handled by HasOnePledgeLeft, which always wins: a full campaign gets
// scheduled for finalization rather than merely confirmed.
func (c Campaign) HasToBeConfirmed() bool {
	return !c.HasOnePledgeLeft() && c.MinPledgers-c.CurrentPledgers == 1
}

func (c Campaign) CanBeCancelled() bool {
	return c.Status == CampaignStatusInProgress && c.CurrentPledgers < c.MinPledgers
}

// StatusAfterPledge decides the status the campaign must transition to as
// part of the same transaction that inserts a new pledge. It must be called
// on a snapshot whose CurrentPledgers already counts the incoming pledge.
// The HasOnePledgeLeft check deliberately precedes and short-circuits
// HasToBeConfirmed; the ordering is load-bearing for existing campaigns.
func (c Campaign) StatusAfterPledge() (CampaignStatus, bool) {
	if c.HasOnePledgeLeft() {
		return CampaignStatusToBeFinalized, true
	}
	if c.HasToBeConfirmed() {
		return CampaignStatusConfirmed, true
	}
	return c.Status, false
}
