// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"time"

	"collabhub-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSessionRequest(toEmail, requesterName, topic string, startTime time.Time, duration int) error
	SendSessionStatus(toEmail, counterpartName, topic, status string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	frontendURL string
	logger      logger.ILogger
}

// NewEmailService returns a no-op sender when host is empty so local setups
// work without SMTP.
func NewEmailService(host string, port int, username, password, senderName, frontendURL string, log logger.ILogger) IEmailService {
	if host == "" {
		return noopEmailService{}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
		frontendURL: frontendURL,
		logger:      log,
	}
}

func (s *emailService) SendSessionRequest(toEmail, requesterName, topic string, startTime time.Time, duration int) error {
	m := s.sessionRequestMessage(toEmail, requesterName, topic, startTime, duration)
	return s.send(m, toEmail, "session request")
}

func (s *emailService) SendSessionStatus(toEmail, counterpartName, topic, status string) error {
	m := s.sessionStatusMessage(toEmail, counterpartName, topic, status)
	return s.send(m, toEmail, "session status")
}

func (s *emailService) sessionRequestMessage(toEmail, requesterName, topic string, startTime time.Time, duration int) *gomail.Message {
	m := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("New session request: %s", topic))

	link := fmt.Sprintf("%s/sessions", s.frontendURL)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s wants to learn with you</h2>
			<p><strong>Topic:</strong> %s</p>
			<p><strong>When:</strong> %s (%d minutes)</p>
			<a href="%s" style="background-color: #4F46E5; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Review request</a>
		</div>
	`, requesterName, topic, startTime.UTC().Format("Mon, 02 Jan 2006 15:04 MST"), duration, link)

	m.SetBody("text/html", body)
	return m
}

func (s *emailService) sessionStatusMessage(toEmail, counterpartName, topic, status string) *gomail.Message {
	m := gomail.NewMessage(gomail.SetEncoding(gomail.Unencoded))
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your session \"%s\" was %s", topic, status))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<p>%s marked your session <strong>%s</strong> as <strong>%s</strong>.</p>
			<p><a href="%s/sessions">Open your sessions</a></p>
		</div>
	`, counterpartName, topic, status, s.frontendURL)

	m.SetBody("text/html", body)
	return m
}

func (s *emailService) send(m *gomail.Message, toEmail, kind string) error {
	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send "+kind+" email", map[string]interface{}{"to": toEmail, "error": err.Error()})
		return err
	}
	s.logger.Info("MAILER", kind+" email sent", map[string]interface{}{"to": toEmail})
	return nil
}

type noopEmailService struct{}

func (noopEmailService) SendSessionRequest(string, string, string, time.Time, int) error {
	return nil
}

func (noopEmailService) SendSessionStatus(string, string, string, string) error {
	return nil
}
