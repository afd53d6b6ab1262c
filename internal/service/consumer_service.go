package service

import (
	"context"
	"encoding/json"

	"printmob-be/internal/dto"
	"printmob-be/internal/pkg/logger"
	"printmob-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the email topic and hands each message to the
// mailer. Delivery runs off the request path so a slow SMTP server never
// blocks a settlement run.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	mailer mailer.IEmailService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    mailer,
		logger:    logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.EmailNotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal email message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages, retrying cannot fix them.
		msg.Ack()
		return
	}

	var err error
	switch payload.Template {
	case dto.EmailTemplateCampaignConfirmed:
		err = cs.mailer.SendCampaignConfirmed(payload.To, payload.CampaignName, payload.PledgeCount)
	case dto.EmailTemplateCampaignCompleted:
		err = cs.mailer.SendCampaignCompleted(payload.To, payload.CampaignName)
	case dto.EmailTemplateCampaignUnsatisfied:
		err = cs.mailer.SendCampaignUnsatisfied(payload.To, payload.CampaignName, payload.RefundAmount)
	case dto.EmailTemplateCampaignCancelled:
		err = cs.mailer.SendCampaignCancelled(payload.To, payload.CampaignName, payload.RefundAmount)
	case dto.EmailTemplatePrinterCampaignCompleted:
		err = cs.mailer.SendPrinterCampaignCompleted(payload.To, payload.CampaignName, payload.PledgeCount)
	default:
		cs.logger.Warn("consumer", "unknown email template", map[string]interface{}{
			"template": payload.Template,
		})
		msg.Ack()
		return
	}

	if err != nil {
		cs.logger.Error("consumer", "failed to send email", map[string]interface{}{
			"template": payload.Template,
			"to":       payload.To,
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
