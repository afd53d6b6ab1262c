package settlement

import (
	"context"

	"printmob-be/internal/entity"
)

// Notifier receives the batched end-of-campaign notifications. Delivery is
// best effort: the jobs log notifier errors but never fail a settlement run
// over them.
type Notifier interface {
	CampaignCompleted(ctx context.Context, campaign *entity.Campaign, printer *entity.User, buyers []*entity.User) error
	CampaignUnsatisfied(ctx context.Context, campaign *entity.Campaign, buyers []*entity.User) error
	CampaignCancelled(ctx context.Context, campaign *entity.Campaign, buyers []*entity.User) error
}

// NopNotifier is used where notifications are irrelevant, mostly in tests.
type NopNotifier struct{}

func (NopNotifier) CampaignCompleted(context.Context, *entity.Campaign, *entity.User, []*entity.User) error {
	return nil
}

func (NopNotifier) CampaignUnsatisfied(context.Context, *entity.Campaign, []*entity.User) error {
	return nil
}

func (NopNotifier) CampaignCancelled(context.Context, *entity.Campaign, []*entity.User) error {
	return nil
}
