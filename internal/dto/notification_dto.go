package dto

// EmailNotificationMessage travels over the in-process pubsub from the
// notification service to the email consumer.
type EmailNotificationMessage struct {
	To           string  `json:"to"`
	Template     string  `json:"template"`
	CampaignName string  `json:"campaign_name"`
	RefundAmount float64 `json:"refund_amount,omitempty"`
	PledgeCount  int     `json:"pledge_count,omitempty"`
}

// Email template identifiers understood by the consumer.
const (
	EmailTemplateCampaignConfirmed        = "campaign_confirmed"
	EmailTemplateCampaignCompleted        = "campaign_completed"
	EmailTemplateCampaignUnsatisfied      = "campaign_unsatisfied"
	EmailTemplateCampaignCancelled        = "campaign_cancelled"
	EmailTemplatePrinterCampaignCompleted = "printer_campaign_completed"
)
