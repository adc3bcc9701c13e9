package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"lostfound/internal/config"
	"lostfound/internal/logger"
	"lostfound/internal/models"
)

// MailService sends best-effort staff alerts. Disabled (and silent) when the
// SMTP environment is incomplete; a failed send is logged, never surfaced.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	enabled := cfg.Host != "" && cfg.Port != "" && cfg.Username != "" && cfg.Password != "" && cfg.From != ""
	if !enabled {
		logger.Log.Warn("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled || len(to) == 0 {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Lost & Found <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			logger.Log.Errorf("Failed to send email to %v: %v", to, err)
		} else {
			logger.Log.Infof("Email sent to %v: %s", to, subject)
		}
	}()
}

// SendClaimAlert tells staff a claimant may show up at reception soon.
func (s *MailService) SendClaimAlert(to []string, item *models.Item, claim *models.Claim) {
	body := fmt.Sprintf(
		"<p><strong>%s</strong> has claimed item \"<strong>%s</strong>\".</p>"+
			"<p>They may come to the reception soon. Please be ready to verify and return the item.</p>",
		claim.ClaimantName, item.Title)
	s.sendAsync(to, fmt.Sprintf("Claim: %s", item.Title), body)
}

// SendPendingAlert tells Super Users a submission is waiting for review.
func (s *MailService) SendPendingAlert(to []string, title string) {
	body := fmt.Sprintf(
		"<p>A new lost-and-found submission \"<strong>%s</strong>\" is waiting for approval.</p>",
		title)
	s.sendAsync(to, fmt.Sprintf("Pending approval: %s", title), body)
}
