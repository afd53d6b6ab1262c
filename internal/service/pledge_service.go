package service

import (
	"context"
	"time"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/mapper"
	"printmob-be/internal/pkg/apperrors"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/events"
	"printmob-be/pkg/ledger"
	pkgNats "printmob-be/pkg/nats"
	"printmob-be/pkg/payment"

	"github.com/google/uuid"
)

// designerShareRate is the cut of each pledge routed to the designer when the
// campaign was spawned from a purchased model.
const designerShareRate = 0.05

// finalizeGracePeriod is how long a campaign that hit one-pledge-left stays
// open before the finalize job picks it up.
const finalizeGracePeriod = 24 * time.Hour

type IPledgeService interface {
	CreatePledge(ctx context.Context, buyerId uuid.UUID, req *dto.CreatePledgeRequest) (*dto.CreatePledgeResponse, error)
	CreatePledgeWithPayment(ctx context.Context, buyerId uuid.UUID, req *dto.CreatePledgeWithPaymentRequest) (*dto.CreatePledgeResponse, error)
	CancelPledge(ctx context.Context, buyerId uuid.UUID, pledgeId uuid.UUID) error
	ListByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*dto.PledgeResponse, error)
	ListByBuyer(ctx context.Context, buyerId uuid.UUID) ([]*dto.PledgeResponse, error)
}

type pledgeService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        payment.Gateway
	ledger         ledger.Ledger
	eventPublisher *pkgNats.Publisher
	pledgeMapper   *mapper.PledgeMapper
	logger         logger.ILogger

	now func() time.Time
}

func NewPledgeService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	ledger ledger.Ledger,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
) IPledgeService {
	return &pledgeService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		pledgeMapper:   mapper.NewPledgeMapper(),
		logger:         logger,
		now:            time.Now,
	}
}

// CreatePledge is the checkout-later flow: the pledge row is created first
// and the buyer is redirected to the gateway; money only moves once the
// webhook confirms the payment.
func (s *pledgeService) CreatePledge(ctx context.Context, buyerId uuid.UUID, req *dto.CreatePledgeRequest) (*dto.CreatePledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	campaign, pledge, err := s.insertPledge(ctx, uow, buyerId, req.CampaignId)
	if err != nil {
		return nil, err
	}

	// Dedicated checkout preference keyed by the pledge id, so the webhook
	// can trace the payment back without any extra lookup table.
	pref, err := s.gateway.CreatePledgePreference(ctx, pledge.Id.String(), campaign)
	if err != nil {
		return nil, apperrors.NewInternal("failed to create checkout preference", err)
	}

	fromStatus := campaign.Status
	statusChanged := s.applyPostPledgeTransition(campaign)
	if statusChanged {
		if err := uow.CampaignRepository().UpdateStatus(ctx, campaign); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishPledgeEvents(ctx, campaign, pledge, fromStatus, statusChanged)

	return &dto.CreatePledgeResponse{
		PledgeId:       pledge.Id,
		CampaignStatus: string(campaign.Status),
		RedirectURL:    pref.RedirectURL,
	}, nil
}

// CreatePledgeWithPayment is the capture-first flow used by mobile clients:
// the payment is already captured at the gateway and its id arrives with the
// request. The payment is verified before any row is written.
func (s *pledgeService) CreatePledgeWithPayment(ctx context.Context, buyerId uuid.UUID, req *dto.CreatePledgeWithPaymentRequest) (*dto.CreatePledgeResponse, error) {
	details, err := s.gateway.FetchPayment(ctx, req.PaymentId)
	if err != nil {
		return nil, apperrors.NewInternal("failed to verify payment", err)
	}
	if details.Status != "capture" && details.Status != "settlement" {
		return nil, apperrors.NewValidation("payment is not captured")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	campaign, pledge, err := s.insertPledge(ctx, uow, buyerId, req.CampaignId)
	if err != nil {
		return nil, err
	}

	if err := attachPaymentTransactions(ctx, uow, s.ledger, s.logger, campaign, pledge, details); err != nil {
		return nil, err
	}

	fromStatus := campaign.Status
	statusChanged := s.applyPostPledgeTransition(campaign)
	if statusChanged {
		if err := uow.CampaignRepository().UpdateStatus(ctx, campaign); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishPledgeEvents(ctx, campaign, pledge, fromStatus, statusChanged)

	return &dto.CreatePledgeResponse{
		PledgeId:       pledge.Id,
		CampaignStatus: string(campaign.Status),
	}, nil
}

// insertPledge runs the guarded insert shared by both flows: lock the
// campaign row, check the preconditions in order, write the pledge and bump
// the live counter. The returned campaign snapshot already counts the new
// pledge.
func (s *pledgeService) insertPledge(ctx context.Context, uow unitofwork.UnitOfWork, buyerId, campaignId uuid.UUID) (*entity.Campaign, *entity.Pledge, error) {
	campaign, err := uow.CampaignRepository().FindOne(ctx,
		specification.ByID{ID: campaignId},
		specification.LockForUpdate{},
	)
	if err != nil {
		return nil, nil, err
	}
	if campaign == nil {
		return nil, nil, apperrors.NewNotFound("campaign not found")
	}

	if campaign.Status != entity.CampaignStatusInProgress && campaign.Status != entity.CampaignStatusConfirmed {
		return nil, nil, apperrors.NewValidation("campaign is not accepting pledges")
	}
	if campaign.HasReachedEndDate(s.now()) {
		return nil, nil, apperrors.NewValidation("campaign has ended")
	}
	if campaign.HasReachedMaximumPledgers() {
		return nil, nil, apperrors.NewValidation("campaign is full")
	}
	if campaign.PrinterId == buyerId {
		return nil, nil, apperrors.NewValidation("printers cannot pledge on their own campaign")
	}

	existing, err := uow.PledgeRepository().FindLiveByBuyerAndCampaign(ctx, buyerId, campaignId)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperrors.NewValidation("buyer already has an active pledge on this campaign")
	}

	pledge := &entity.Pledge{
		Id:          uuid.New(),
		CampaignId:  campaign.Id,
		BuyerId:     buyerId,
		PledgePrice: campaign.PledgePrice,
	}
	if err := uow.PledgeRepository().Create(ctx, pledge); err != nil {
		return nil, nil, err
	}

	if err := uow.CampaignRepository().AdjustPledgers(ctx, campaign, 1); err != nil {
		return nil, nil, err
	}
	campaign.CurrentPledgers++

	return campaign, pledge, nil
}

// applyPostPledgeTransition evaluates the lifecycle predicates on the
// post-insert snapshot and mutates the campaign accordingly. Hitting the last
// available slot schedules finalization and pulls the end date in so the
// campaign settles within the grace period.
func (s *pledgeService) applyPostPledgeTransition(campaign *entity.Campaign) bool {
	next, changed := campaign.StatusAfterPledge()
	if !changed {
		return false
	}

	campaign.Status = next
	if next == entity.CampaignStatusToBeFinalized {
		campaign.EndDate = s.now().Add(finalizeGracePeriod)
	}
	return true
}

// attachPaymentTransactions writes the future-money ledger rows for a
// verified payment and links them to the pledge. The designer share is best
// effort: a missing model never blocks the pledge. Shared between the
// capture-first flow and the webhook.
func attachPaymentTransactions(ctx context.Context, uow unitofwork.UnitOfWork, ldg ledger.Ledger, log logger.ILogger, campaign *entity.Campaign, pledge *entity.Pledge, details *payment.Details) error {
	printerAmount := details.NetAmount
	var designerTx *entity.Transaction

	if campaign.ModelId != nil {
		model, err := uow.ModelRepository().FindOne(ctx, specification.ByID{ID: *campaign.ModelId})
		if err != nil || model == nil {
			log.Warn("pledge", "designer share skipped, model unavailable", map[string]interface{}{
				"campaign_id": campaign.Id.String(),
			})
		} else {
			share := details.NetAmount * designerShareRate
			printerAmount -= share
			designerTx = &entity.Transaction{
				Id:        uuid.New(),
				PaymentId: details.PaymentId,
				UserId:    model.DesignerId,
				Amount:    share,
				Type:      entity.TransactionTypePledge,
				IsFuture:  true,
			}
		}
	}

	printerTx := &entity.Transaction{
		Id:        uuid.New(),
		PaymentId: details.PaymentId,
		UserId:    campaign.PrinterId,
		Amount:    printerAmount,
		Type:      entity.TransactionTypePledge,
		IsFuture:  true,
	}
	if err := ldg.Record(ctx, uow, printerTx); err != nil {
		return err
	}
	pledge.PrinterTransactionId = &printerTx.Id

	if designerTx != nil {
		if err := ldg.Record(ctx, uow, designerTx); err != nil {
			log.Warn("pledge", "designer share ledger write failed", map[string]interface{}{
				"pledge_id": pledge.Id.String(),
				"error":     err.Error(),
			})
		} else {
			pledge.DesignerTransactionId = &designerTx.Id
		}
	}

	return uow.PledgeRepository().Update(ctx, pledge)
}

// CancelPledge lets a buyer withdraw while the campaign is still in progress
// and below its confirmation goal. Once the goal is reached the pledge is
// locked in and only a settlement run can release the money.
func (s *pledgeService) CancelPledge(ctx context.Context, buyerId uuid.UUID, pledgeId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	pledge, err := uow.PledgeRepository().FindOne(ctx, specification.ByID{ID: pledgeId})
	if err != nil {
		return err
	}
	if pledge == nil {
		return apperrors.NewNotFound("pledge not found")
	}
	if pledge.BuyerId != buyerId {
		return apperrors.NewValidation("pledge belongs to another buyer")
	}
	if !pledge.IsLive() {
		return apperrors.NewValidation("pledge is already cancelled")
	}

	campaign, err := uow.CampaignRepository().FindOne(ctx,
		specification.ByID{ID: pledge.CampaignId},
		specification.LockForUpdate{},
	)
	if err != nil {
		return err
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign not found")
	}
	if campaign.Status != entity.CampaignStatusInProgress {
		return apperrors.NewValidation("pledges can only be cancelled while the campaign is in progress")
	}
	// A min=1 campaign reaches its goal without ever leaving in_progress
	// (the confirm transition needs min-current == 1), so the status check
	// alone is not enough.
	if campaign.HasReachedConfirmationGoal() {
		return apperrors.NewValidation("pledges are locked in once the campaign reaches its goal")
	}

	// Interactive path: a refund failure here is surfaced to the buyer, not
	// parked like the batch jobs do.
	if pledge.PrinterTransactionId != nil {
		printerTx, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: *pledge.PrinterTransactionId})
		if err != nil {
			return err
		}
		if printerTx != nil {
			if err := s.gateway.RefundPayment(ctx, printerTx.PaymentId, printerTx.Amount); err != nil {
				return apperrors.NewInternal("refund failed", err)
			}
			if _, err := s.ledger.RecordRefund(ctx, uow, printerTx); err != nil {
				return err
			}
		}
	}
	if pledge.DesignerTransactionId != nil {
		designerTx, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: *pledge.DesignerTransactionId})
		if err == nil && designerTx != nil {
			if _, err := s.ledger.RecordRefund(ctx, uow, designerTx); err != nil {
				s.logger.Warn("pledge", "designer share reversal failed on cancel", map[string]interface{}{
					"pledge_id": pledge.Id.String(),
					"error":     err.Error(),
				})
			}
		}
	}

	if err := uow.PledgeRepository().SoftDelete(ctx, pledge.Id); err != nil {
		return err
	}
	if err := uow.CampaignRepository().AdjustPledgers(ctx, campaign, -1); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewPledgeCancelled(pledge.Id, campaign.Id)); err != nil {
			s.logger.Warn("pledge", "failed to publish pledge cancelled event", map[string]interface{}{
				"pledge_id": pledge.Id.String(),
				"error":     err.Error(),
			})
		}
	}
	return nil
}

func (s *pledgeService) ListByCampaign(ctx context.Context, campaignId uuid.UUID) ([]*dto.PledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pledges, err := uow.PledgeRepository().FindLiveByCampaign(ctx, campaignId)
	if err != nil {
		return nil, err
	}
	return s.pledgeMapper.ToResponseList(pledges), nil
}

func (s *pledgeService) ListByBuyer(ctx context.Context, buyerId uuid.UUID) ([]*dto.PledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pledges, err := uow.PledgeRepository().FindAll(ctx,
		specification.ByBuyer{BuyerID: buyerId},
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return s.pledgeMapper.ToResponseList(pledges), nil
}

func (s *pledgeService) publishPledgeEvents(ctx context.Context, campaign *entity.Campaign, pledge *entity.Pledge, fromStatus entity.CampaignStatus, statusChanged bool) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events.NewPledgeCreated(pledge.Id, campaign.Id, pledge.BuyerId)); err != nil {
		s.logger.Warn("pledge", "failed to publish pledge created event", map[string]interface{}{
			"pledge_id": pledge.Id.String(),
			"error":     err.Error(),
		})
	}
	if statusChanged {
		if err := s.eventPublisher.Publish(ctx, events.NewCampaignStatusChanged(campaign.Id, string(fromStatus), string(campaign.Status))); err != nil {
			s.logger.Warn("pledge", "failed to publish status change event", map[string]interface{}{
				"campaign_id": campaign.Id.String(),
				"error":       err.Error(),
			})
		}
	}
}
