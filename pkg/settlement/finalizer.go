package settlement

import (
	"context"
	"fmt"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"

	"github.com/google/uuid"
)

// RunFinalize sweeps every campaign due for finalization and settles it:
// campaigns that reached their goal complete (future money becomes real and
// print orders are created), the rest are declared unsatisfied and every live
// pledge is refunded. Terminal campaigns are never selected, so rerunning the
// job is a no-op.
func (p *Processor) RunFinalize(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: p.now()}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	campaigns, err := uow.CampaignRepository().FindAll(ctx, specification.Finalizable{Now: p.now()})
	if err != nil {
		return nil, fmt.Errorf("failed to select finalizable campaigns: %w", err)
	}

	p.logger.Info("settlement", "finalize sweep started", map[string]interface{}{
		"campaigns": len(campaigns),
	})

	for _, campaign := range campaigns {
		report.Campaigns = append(report.Campaigns, p.finalizeCampaign(ctx, campaign))
	}

	p.persistFailures(ctx, report)
	report.FinishedAt = p.now()

	p.logger.Info("settlement", "finalize sweep finished", map[string]interface{}{
		"campaigns": len(report.Campaigns),
		"refunded":  report.TotalRefunded(),
		"failed":    report.TotalFailed(),
	})
	return report, nil
}

func (p *Processor) finalizeCampaign(ctx context.Context, campaign *entity.Campaign) CampaignResult {
	result := CampaignResult{CampaignId: campaign.Id, FromStatus: campaign.Status}

	// The counter column is only a cache; the verdict is taken from a fresh
	// count of live pledges.
	uow := p.uowFactory.NewUnitOfWork(ctx)
	liveCount, err := uow.PledgeRepository().CountLive(ctx, campaign.Id)
	if err != nil {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("failed to count live pledges: %v", err)
		return result
	}

	target := entity.CampaignStatusUnsatisfied
	if liveCount >= int64(campaign.MinPledgers) {
		target = entity.CampaignStatusCompleted
	}
	result.ToStatus = target

	// Status first, in its own transaction. If this commit fails the
	// campaign stays selectable and the next sweep retries it whole.
	if err := p.commitStatus(ctx, campaign, target); err != nil {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("status commit failed: %v", err)
		p.logger.Error("settlement", "campaign status commit failed, skipping", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"target":      string(target),
			"error":       err.Error(),
		})
		return result
	}

	pledges, err := uow.PledgeRepository().FindLiveByCampaign(ctx, campaign.Id)
	if err != nil {
		result.SkipReason = fmt.Sprintf("failed to load pledges: %v", err)
		return result
	}

	if target == entity.CampaignStatusCompleted {
		for _, pledge := range pledges {
			result.Outcomes = append(result.Outcomes, p.settlePledge(ctx, campaign, pledge))
		}
		p.notifyCompleted(ctx, campaign, pledges)
	} else {
		for _, pledge := range pledges {
			result.Outcomes = append(result.Outcomes, p.refundPledge(ctx, campaign, pledge))
		}
		p.notifyUnsatisfied(ctx, campaign, pledges)
	}

	return result
}

// settlePledge converts one pledge of a completed campaign: the printer's
// (and designer's) future money becomes current and a print order is opened
// for the buyer. Each pledge runs in its own transaction so one broken pledge
// does not hold the rest hostage.
func (p *Processor) settlePledge(ctx context.Context, campaign *entity.Campaign, pledge *entity.Pledge) PledgeOutcome {
	outcome := PledgeOutcome{PledgeId: pledge.Id, BuyerId: pledge.BuyerId}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		outcome.Err = err
		return outcome
	}
	defer uow.Rollback()

	if pledge.PrinterTransactionId != nil {
		if err := p.ledger.Settle(ctx, uow, *pledge.PrinterTransactionId); err != nil {
			outcome.Err = fmt.Errorf("failed to settle printer transaction: %w", err)
			return outcome
		}
	}
	if pledge.DesignerTransactionId != nil {
		if err := p.ledger.Settle(ctx, uow, *pledge.DesignerTransactionId); err != nil {
			outcome.Err = fmt.Errorf("failed to settle designer transaction: %w", err)
			return outcome
		}
	}

	order := &entity.Order{
		Id:         uuid.New(),
		CampaignId: campaign.Id,
		PledgeId:   pledge.Id,
		BuyerId:    pledge.BuyerId,
		Status:     entity.OrderStatusInProgress,
	}
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		outcome.Err = fmt.Errorf("failed to create order: %w", err)
		return outcome
	}

	if err := uow.Commit(); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Settled = true
	return outcome
}

func (p *Processor) notifyCompleted(ctx context.Context, campaign *entity.Campaign, pledges []*entity.Pledge) {
	buyers := p.loadBuyers(ctx, pledges)
	printer := p.loadPrinter(ctx, campaign)
	if err := p.notifier.CampaignCompleted(ctx, campaign, printer, buyers); err != nil {
		p.logger.Warn("settlement", "completion notification failed", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"error":       err.Error(),
		})
	}
}

func (p *Processor) notifyUnsatisfied(ctx context.Context, campaign *entity.Campaign, pledges []*entity.Pledge) {
	buyers := p.loadBuyers(ctx, pledges)
	if err := p.notifier.CampaignUnsatisfied(ctx, campaign, buyers); err != nil {
		p.logger.Warn("settlement", "unsatisfied notification failed", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"error":       err.Error(),
		})
	}
}
