package service

import (
	"context"
	"encoding/json"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/pkg/logger"
	"printmob-be/pkg/events"
	pkgNats "printmob-be/pkg/nats"
	"printmob-be/pkg/settlement"
)

// notificationService fans settlement outcomes out to the affected users. It
// queues one email per recipient on the async topic and mirrors the outcome
// onto the NATS event bus. Implements the settlement jobs' Notifier.
type notificationService struct {
	publisher      IPublisherService
	eventPublisher *pkgNats.Publisher
	logger         logger.ILogger
}

func NewNotificationService(
	publisher IPublisherService,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
) settlement.Notifier {
	return &notificationService{
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationService) CampaignCompleted(ctx context.Context, campaign *entity.Campaign, printer *entity.User, buyers []*entity.User) error {
	for _, buyer := range buyers {
		s.queueEmail(ctx, dto.EmailNotificationMessage{
			To:           buyer.Email,
			Template:     dto.EmailTemplateCampaignCompleted,
			CampaignName: campaign.Name,
		})
	}
	if printer != nil {
		s.queueEmail(ctx, dto.EmailNotificationMessage{
			To:           printer.Email,
			Template:     dto.EmailTemplatePrinterCampaignCompleted,
			CampaignName: campaign.Name,
			PledgeCount:  len(buyers),
		})
	}
	s.publishSettled(ctx, campaign, len(buyers), 0)
	return nil
}

func (s *notificationService) CampaignUnsatisfied(ctx context.Context, campaign *entity.Campaign, buyers []*entity.User) error {
	for _, buyer := range buyers {
		s.queueEmail(ctx, dto.EmailNotificationMessage{
			To:           buyer.Email,
			Template:     dto.EmailTemplateCampaignUnsatisfied,
			CampaignName: campaign.Name,
			RefundAmount: campaign.PledgePrice,
		})
	}
	s.publishSettled(ctx, campaign, len(buyers), 0)
	return nil
}

func (s *notificationService) CampaignCancelled(ctx context.Context, campaign *entity.Campaign, buyers []*entity.User) error {
	for _, buyer := range buyers {
		s.queueEmail(ctx, dto.EmailNotificationMessage{
			To:           buyer.Email,
			Template:     dto.EmailTemplateCampaignCancelled,
			CampaignName: campaign.Name,
			RefundAmount: campaign.PledgePrice,
		})
	}
	s.publishSettled(ctx, campaign, len(buyers), 0)
	return nil
}

func (s *notificationService) queueEmail(ctx context.Context, msg dto.EmailNotificationMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("notification", "failed to marshal email message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Error("notification", "failed to queue email", map[string]interface{}{
			"to":       msg.To,
			"template": msg.Template,
			"error":    err.Error(),
		})
	}
}

func (s *notificationService) publishSettled(ctx context.Context, campaign *entity.Campaign, refunded, failed int) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewCampaignSettled(campaign.Id, string(campaign.Status), refunded, failed)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("notification", "failed to publish settlement event", map[string]interface{}{
			"campaign_id": campaign.Id.String(),
			"error":       err.Error(),
		})
	}
}
