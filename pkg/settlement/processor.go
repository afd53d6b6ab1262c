package settlement

import (
	"context"
	"fmt"
	"time"

	"printmob-be/internal/entity"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"

	"printmob-be/internal/pkg/logger"
	"printmob-be/pkg/ledger"
	"printmob-be/pkg/payment"

	"github.com/google/uuid"
)

// Processor runs the finalize and cancel settlement jobs. Both jobs share the
// same shape: select due campaigns, commit the terminal status per campaign,
// then work through the pledges one isolated transaction at a time so a
// single bad pledge can never poison its neighbours or the whole batch.
type Processor struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    payment.Gateway
	ledger     ledger.Ledger
	notifier   Notifier
	logger     logger.ILogger

	// now is injectable so tests can pin the clock.
	now func() time.Time
}

func NewProcessor(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	ledger ledger.Ledger,
	notifier Notifier,
	logger logger.ILogger,
) *Processor {
	return &Processor{
		uowFactory: uowFactory,
		gateway:    gateway,
		ledger:     ledger,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// commitStatus moves the campaign to its terminal (or transitional) status in
// a transaction of its own. When this commit fails the campaign is skipped
// entirely and picked up again on the next run, still matching the selection
// query.
func (p *Processor) commitStatus(ctx context.Context, campaign *entity.Campaign, to entity.CampaignStatus) error {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	campaign.Status = to
	if err := uow.CampaignRepository().UpdateStatus(ctx, campaign); err != nil {
		return err
	}

	return uow.Commit()
}

// refundPledge compensates one pledge inside its own transaction: soft-delete
// the pledge, refund the captured payment at the gateway, and write the
// negative ledger rows. Any hard failure rolls the whole pledge back and
// parks it as a FailedRefund; the designer share alone is best effort.
func (p *Processor) refundPledge(ctx context.Context, campaign *entity.Campaign, pledge *entity.Pledge) PledgeOutcome {
	outcome := PledgeOutcome{PledgeId: pledge.Id, BuyerId: pledge.BuyerId}

	fail := func(stage string, err error) PledgeOutcome {
		outcome.Err = err
		outcome.Failure = &entity.FailedRefund{
			Id:       uuid.New(),
			PledgeId: pledge.Id,
			FailedAt: p.now(),
			Error:    err.Error(),
			Context: map[string]interface{}{
				"campaign_id": campaign.Id.String(),
				"buyer_id":    pledge.BuyerId.String(),
				"stage":       stage,
			},
		}
		p.logger.Error("settlement", "pledge refund failed", map[string]interface{}{
			"pledge_id":   pledge.Id.String(),
			"campaign_id": campaign.Id.String(),
			"stage":       stage,
			"error":       err.Error(),
		})
		return outcome
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fail("begin", err)
	}
	defer uow.Rollback()

	if err := uow.PledgeRepository().SoftDelete(ctx, pledge.Id); err != nil {
		return fail("soft_delete", err)
	}

	if pledge.PrinterTransactionId != nil {
		printerTx, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: *pledge.PrinterTransactionId})
		if err != nil {
			return fail("load_transaction", err)
		}
		if printerTx == nil {
			return fail("load_transaction", fmt.Errorf("transaction %s not found", pledge.PrinterTransactionId))
		}

		if err := p.gateway.RefundPayment(ctx, printerTx.PaymentId, printerTx.Amount); err != nil {
			return fail("gateway_refund", err)
		}

		if _, err := p.ledger.RecordRefund(ctx, uow, printerTx); err != nil {
			return fail("ledger_refund", err)
		}
	}

	// The designer share rides on the same pledge but its reversal must not
	// block the buyer's refund.
	if pledge.DesignerTransactionId != nil {
		designerTx, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: *pledge.DesignerTransactionId})
		if err != nil || designerTx == nil {
			p.logger.Warn("settlement", "designer share reversal skipped", map[string]interface{}{
				"pledge_id": pledge.Id.String(),
			})
		} else if _, err := p.ledger.RecordRefund(ctx, uow, designerTx); err != nil {
			p.logger.Warn("settlement", "designer share reversal failed", map[string]interface{}{
				"pledge_id": pledge.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	if err := uow.Commit(); err != nil {
		return fail("commit", err)
	}

	outcome.Refunded = true
	return outcome
}

// persistFailures writes all parked refunds of the run in one batch. Losing
// this insert only loses the audit trail, never money, so an error here is
// logged and the report still returned.
func (p *Processor) persistFailures(ctx context.Context, report *Report) {
	failures := report.failures()
	if len(failures) == 0 {
		return
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		p.logger.Error("settlement", "failed to open failure-audit transaction", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer uow.Rollback()

	if err := uow.FailedRefundRepository().CreateBatch(ctx, failures); err != nil {
		p.logger.Error("settlement", "failed to persist refund failures", map[string]interface{}{
			"count": len(failures),
			"error": err.Error(),
		})
		return
	}

	if err := uow.Commit(); err != nil {
		p.logger.Error("settlement", "failed to commit refund failures", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// loadBuyers resolves the buyer accounts behind a set of pledges for the
// batched notifications.
func (p *Processor) loadBuyers(ctx context.Context, pledges []*entity.Pledge) []*entity.User {
	if len(pledges) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(pledges))
	for _, pl := range pledges {
		ids = append(ids, pl.BuyerId)
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	buyers, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		p.logger.Warn("settlement", "failed to load buyers for notification", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return buyers
}

func (p *Processor) loadPrinter(ctx context.Context, campaign *entity.Campaign) *entity.User {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	printer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: campaign.PrinterId})
	if err != nil {
		p.logger.Warn("settlement", "failed to load printer for notification", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"error":       err.Error(),
		})
		return nil
	}
	return printer
}
