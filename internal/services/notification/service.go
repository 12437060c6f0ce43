// Package notification delivers decision outcomes over SMTP.
package notification

import (
	"context"
	"fmt"
	"log"

	"dashen/internal/config"
	"dashen/internal/models"

	"gopkg.in/gomail.v2"
)

// Service sends decision-outcome emails to the applicant and, when one is
// attached, the responsible unit contact.
type Service struct {
	dialer *gomail.Dialer
	from   string
}

// NewService creates a mail-backed notification service.
func NewService(cfg config.SMTP) *Service {
	return &Service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendDecisionNotification emails the final committee decision.
func (s *Service) SendDecisionNotification(ctx context.Context, customer *models.Customer, decision *models.Decision) error {
	recipients := []string{customer.Email}
	if decision.ResponsibleUnitEmail != "" {
		recipients = append(recipients, decision.ResponsibleUnitEmail)
	}

	subject := fmt.Sprintf("Loan application %s: %s",
		decision.ApplicationReferenceNumber, decision.Decision)
	body := fmt.Sprintf(`
		<h2>Loan Application Decision</h2>
		<p>Applicant: %s</p>
		<p>Reference: %s</p>
		<p>Decision: %s</p>
		<p>Reason: %s</p>
		<p>Decided: %s</p>
	`, customer.FullName(), decision.ApplicationReferenceNumber,
		decision.Decision, decision.DecisionReason,
		decision.CreatedAt.Format("02 Jan 2006 15:04"))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send decision notification: %w", err)
	}
	return nil
}

// LogOnly is a notifier that only logs, for environments without SMTP.
type LogOnly struct{}

func (LogOnly) SendDecisionNotification(_ context.Context, customer *models.Customer, decision *models.Decision) error {
	log.Printf("decision %s for application %s (customer %s)",
		decision.Decision, decision.ApplicationReferenceNumber, customer.CustomerNumber)
	return nil
}
