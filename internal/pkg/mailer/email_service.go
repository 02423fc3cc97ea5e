package mailer

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendHandoffAlert(toEmail, storeName, sessionId, lastMessage string) error
	SendCreditsLowAlert(toEmail, storeName string, remaining int) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	dashboardURL string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	dashboardURL := os.Getenv("DASHBOARD_URL")

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		dashboardURL: dashboardURL,
	}
}

func (s *emailService) SendHandoffAlert(toEmail, storeName, sessionId, lastMessage string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] A customer is waiting for human support", storeName))

	sessionLink := fmt.Sprintf("%s/conversations/%s", s.dashboardURL, sessionId)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Customer handoff requested</h2>
			<p>A conversation in <b>%s</b> was escalated to human support.</p>
			<p>Last customer message:</p>
			<blockquote style="border-left: 3px solid #ccc; margin: 10px 0; padding-left: 10px;">%s</blockquote>
			<a href="%s" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open conversation</a>
		</div>
	`, storeName, lastMessage, sessionLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send handoff alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Handoff alert sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendCreditsLowAlert(toEmail, storeName string, remaining int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] AI credits are running low", storeName))

	topupLink := fmt.Sprintf("%s/billing", s.dashboardURL)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Credits running low</h2>
			<p><b>%s</b> has %d AI credits left. When they run out, the assistant
			stops replying and conversations fall back to manual handling.</p>
			<a href="%s" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Top up credits</a>
		</div>
	`, storeName, remaining, topupLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send credits alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Credits alert sent to %s\n", toEmail)
	return nil
}
