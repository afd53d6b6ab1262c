package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"os"

	"printmob-be/internal/dto"
	"printmob-be/internal/pkg/apperrors"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/ledger"
	"printmob-be/pkg/payment"

	"github.com/google/uuid"
)

type IPaymentService interface {
	HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    payment.Gateway
	ledger     ledger.Ledger
	logger     logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	ledger ledger.Ledger,
	logger logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		gateway:    gateway,
		ledger:     ledger,
		logger:     logger,
	}
}

// HandleNotification processes a Midtrans webhook. The order id carries the
// pledge id the checkout preference was created for; captured payments get
// their ledger rows attached, failed ones release the pledge.
func (s *paymentService) HandleNotification(ctx context.Context, req *dto.MidtransWebhookRequest) error {
	if err := s.verifySignature(req); err != nil {
		return err
	}

	orderId, err := uuid.Parse(req.OrderId)
	if err != nil {
		return apperrors.NewValidation("invalid order id format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pledge, err := uow.PledgeRepository().FindOne(ctx, specification.ByID{ID: orderId})
	if err != nil {
		return err
	}
	if pledge == nil {
		// Campaign-level preferences produce order ids that match no pledge;
		// those notifications are informational only.
		s.logger.Info("payment", "webhook for unknown pledge, ignoring", map[string]interface{}{
			"order_id": req.OrderId,
			"status":   req.TransactionStatus,
		})
		return nil
	}

	switch req.TransactionStatus {
	case "capture", "settlement":
		return s.capturePledgePayment(ctx, pledge.Id, req.OrderId)
	case "deny", "cancel", "expire":
		return s.releasePledge(ctx, pledge.Id)
	default:
		// "pending" and friends need no action.
		return nil
	}
}

func (s *paymentService) verifySignature(req *dto.MidtransWebhookRequest) error {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		return apperrors.NewInternal("payment gateway not configured", nil)
	}

	// Midtrans signature = SHA512(order_id + status_code + gross_amount + server_key)
	input := req.OrderId + req.StatusCode + req.GrossAmount + serverKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(input)))
	if req.SignatureKey != expected {
		s.logger.Warn("payment", "webhook signature mismatch", map[string]interface{}{
			"order_id": req.OrderId,
		})
		return apperrors.NewValidation("invalid signature")
	}
	return nil
}

// capturePledgePayment attaches the verified payment's ledger rows to the
// pledge. The campaign transition already happened at insert time; capture
// only moves money.
func (s *paymentService) capturePledgePayment(ctx context.Context, pledgeId uuid.UUID, paymentId string) error {
	details, err := s.gateway.FetchPayment(ctx, paymentId)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	pledge, err := uow.PledgeRepository().FindOne(ctx, specification.ByID{ID: pledgeId})
	if err != nil {
		return err
	}
	if pledge == nil || !pledge.IsLive() {
		return apperrors.NewNotFound("pledge not found")
	}
	if pledge.PrinterTransactionId != nil {
		// Midtrans retries notifications; the first delivery already won.
		return nil
	}

	campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: pledge.CampaignId})
	if err != nil {
		return err
	}
	if campaign == nil {
		return apperrors.NewNotFound("campaign not found")
	}

	if err := attachPaymentTransactions(ctx, uow, s.ledger, s.logger, campaign, pledge, details); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("payment", "pledge payment captured", map[string]interface{}{
		"pledge_id":  pledgeId.String(),
		"payment_id": paymentId,
		"amount":     details.NetAmount,
	})
	return nil
}

// releasePledge frees the slot of a pledge whose checkout failed or expired
// before any money moved. The campaign status stays as the insert left it:
// a to_be_finalized campaign keeps its grace-period end date and is resolved
// by the next settlement run rather than reopened.
func (s *paymentService) releasePledge(ctx context.Context, pledgeId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	pledge, err := uow.PledgeRepository().FindOne(ctx, specification.ByID{ID: pledgeId})
	if err != nil {
		return err
	}
	if pledge == nil || !pledge.IsLive() {
		return nil
	}
	if pledge.PrinterTransactionId != nil {
		// Money already attached; only a settlement run may release it now.
		return nil
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

	if err := uow.PledgeRepository().SoftDelete(ctx, pledge.Id); err != nil {
		return err
	}
	if err := uow.CampaignRepository().AdjustPledgers(ctx, campaign, -1); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("payment", "pledge released after failed checkout", map[string]interface{}{
		"pledge_id": pledgeId.String(),
	})
	return nil
}
