package settlement

import (
	"context"
	"fmt"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"
)

// RunCancel sweeps campaigns whose printer requested cancellation and winds
// them down: the campaign moves to its terminal cancelled status and every
// live pledge is refunded with the same per-pledge isolation as the finalize
// job.
func (p *Processor) RunCancel(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: p.now()}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	campaigns, err := uow.CampaignRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.CampaignStatusToBeCancelled)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to select cancellable campaigns: %w", err)
	}

	p.logger.Info("settlement", "cancel sweep started", map[string]interface{}{
		"campaigns": len(campaigns),
	})

	for _, campaign := range campaigns {
		report.Campaigns = append(report.Campaigns, p.cancelCampaign(ctx, campaign))
	}

	p.persistFailures(ctx, report)
	report.FinishedAt = p.now()

	p.logger.Info("settlement", "cancel sweep finished", map[string]interface{}{
		"campaigns": len(report.Campaigns),
		"refunded":  report.TotalRefunded(),
		"failed":    report.TotalFailed(),
	})
	return report, nil
}

func (p *Processor) cancelCampaign(ctx context.Context, campaign *entity.Campaign) CampaignResult {
	result := CampaignResult{
		CampaignId: campaign.Id,
		FromStatus: campaign.Status,
		ToStatus:   entity.CampaignStatusCancelled,
	}

	if err := p.commitStatus(ctx, campaign, entity.CampaignStatusCancelled); err != nil {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("status commit failed: %v", err)
		p.logger.Error("settlement", "campaign status commit failed, skipping", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"error":       err.Error(),
		})
		return result
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	pledges, err := uow.PledgeRepository().FindLiveByCampaign(ctx, campaign.Id)
	if err != nil {
		result.SkipReason = fmt.Sprintf("failed to load pledges: %v", err)
		return result
	}

	for _, pledge := range pledges {
		result.Outcomes = append(result.Outcomes, p.refundPledge(ctx, campaign, pledge))
	}

	buyers := p.loadBuyers(ctx, pledges)
	if err := p.notifier.CampaignCancelled(ctx, campaign, buyers); err != nil {
		p.logger.Warn("settlement", "cancellation notification failed", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"error":       err.Error(),
		})
	}

	return result
}
