package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCampaignConfirmed(toEmail, campaignName string, pledgeCount int) error
	SendCampaignCompleted(toEmail, campaignName string) error
	SendCampaignUnsatisfied(toEmail, campaignName string, refundAmount float64) error
	SendCampaignCancelled(toEmail, campaignName string, refundAmount float64) error
	SendPrinterCampaignCompleted(toEmail, campaignName string, pledgeCount int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	return nil
}

func (s *emailService) SendCampaignConfirmed(toEmail, campaignName string, pledgeCount int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your campaign reached its goal</h2>
			<p>The campaign <strong>%s</strong> now has %d pledgers and will go to print when it ends.</p>
			<p>Pledges are locked in from this point on.</p>
		</div>
	`, campaignName, pledgeCount)

	return s.send(toEmail, "Campaign goal reached", body)
}

func (s *emailService) SendCampaignCompleted(toEmail, campaignName string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Your campaign reached its goal!</h2>
			<p>The campaign <strong>%s</strong> has been completed and your print is on its way.</p>
			<p>You can follow the order status from your profile page.</p>
		</div>
	`, campaignName)

	return s.send(toEmail, "Campaign completed", body)
}

func (s *emailService) SendCampaignUnsatisfied(toEmail, campaignName string, refundAmount float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Campaign did not reach its goal</h2>
			<p>The campaign <strong>%s</strong> ended without enough pledgers.</p>
			<p>Your pledge of <strong>$%.2f</strong> has been refunded to your payment method.</p>
		</div>
	`, campaignName, refundAmount)

	return s.send(toEmail, "Campaign unsatisfied - pledge refunded", body)
}

func (s *emailService) SendCampaignCancelled(toEmail, campaignName string, refundAmount float64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Campaign cancelled</h2>
			<p>The campaign <strong>%s</strong> was cancelled by its printer.</p>
			<p>Your pledge of <strong>$%.2f</strong> has been refunded to your payment method.</p>
		</div>
	`, campaignName, refundAmount)

	return s.send(toEmail, "Campaign cancelled - pledge refunded", body)
}

func (s *emailService) SendPrinterCampaignCompleted(toEmail, campaignName string, pledgeCount int) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Time to print!</h2>
			<p>Your campaign <strong>%s</strong> has been completed with %d pledgers.</p>
			<p>The held funds were released to your balance.</p>
		</div>
	`, campaignName, pledgeCount)

	return s.send(toEmail, "Your campaign completed", body)
}
