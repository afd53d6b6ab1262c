package service

import (
	"context"
	"encoding/json"

	"printmob-be/internal/dto"
	"printmob-be/internal/entity"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/repository/specification"
	"printmob-be/internal/repository/unitofwork"
	"printmob-be/pkg/events"
	pkgNats "printmob-be/pkg/nats"

	"github.com/google/uuid"
)

type IEventWorkerService interface {
	Start() error
}

// eventWorkerService consumes campaign events off the NATS stream with a
// durable consumer. Today it reacts to status changes: when a campaign
// reaches its goal (confirmed, or to_be_finalized on the last slot) the
// printer gets a heads-up email. Pledge-time transitions happen inside the
// buyer's request, so the printer-side notification runs off the bus
// instead of the request path.
type eventWorkerService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pkgNats.Subscriber
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewEventWorkerService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pkgNats.Subscriber,
	publisher IPublisherService,
	logger logger.ILogger,
) IEventWorkerService {
	return &eventWorkerService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *eventWorkerService) Start() error {
	return s.subscriber.Subscribe(
		pkgNats.SubjectFor(events.EventCampaignStatusChanged),
		"campaign-status-worker",
		s.handleStatusChanged,
	)
}

func (s *eventWorkerService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	to, _ := payload["to"].(string)
	switch entity.CampaignStatus(to) {
	case entity.CampaignStatusConfirmed, entity.CampaignStatusToBeFinalized:
	default:
		return nil
	}

	rawId, _ := payload["campaign_id"].(string)
	campaignId, err := uuid.Parse(rawId)
	if err != nil {
		s.logger.Warn("event_worker", "status change event with bad campaign id", map[string]interface{}{
			"campaign_id": rawId,
		})
		// Malformed events are dropped, redelivery cannot fix them.
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	campaign, err := uow.CampaignRepository().FindOne(ctx, specification.ByID{ID: campaignId})
	if err != nil {
		return err
	}
	if campaign == nil {
		return nil
	}
	printer, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: campaign.PrinterId})
	if err != nil {
		return err
	}
	if printer == nil {
		return nil
	}

	msg, err := json.Marshal(dto.EmailNotificationMessage{
		To:           printer.Email,
		Template:     dto.EmailTemplateCampaignConfirmed,
		CampaignName: campaign.Name,
		PledgeCount:  campaign.CurrentPledgers,
	})
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, msg)
}
