package service

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"go.uber.org/zap"

	"github.com/spec-kit/eats-service/internal/config"
)

// EmailSender is the narrow gateway the account flow depends on. Sends are
// single best-effort attempts reporting only a boolean outcome.
type EmailSender interface {
	SendEmail(ctx context.Context, subject, template string, vars map[string]string, to ...string) bool
	SendVerificationEmail(ctx context.Context, email, code string) bool
}

// mailgunClient is the slice of the Mailgun API the service uses.
// *mailgun.MailgunImpl satisfies it.
type mailgunClient interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// MailService delivers transactional email through Mailgun stored templates.
type MailService struct {
	mg       mailgunClient
	from     string
	template string
	logger   *zap.Logger
}

// NewMailService builds the gateway from Mailgun credentials. The from
// address is fixed to "<app-name> <mailgun@{domain}>".
func NewMailService(appName string, cfg config.MailConfig, logger *zap.Logger) *MailService {
	return &MailService{
		mg:       mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		from:     fmt.Sprintf("%s <mailgun@%s>", appName, cfg.Domain),
		template: cfg.VerificationTemplate,
		logger:   logger,
	}
}

// SendEmail attempts delivery once. Any provider error yields false; it never
// propagates a failure to the caller.
func (s *MailService) SendEmail(ctx context.Context, subject, template string, vars map[string]string, to ...string) bool {
	message := s.mg.NewMessage(s.from, subject, "", to...)
	message.SetTemplate(template)
	for key, value := range vars {
		if err := message.AddTemplateVariable(key, value); err != nil {
			s.logger.Warn("failed to set template variable", zap.String("variable", key), zap.Error(err))
			return false
		}
	}

	if _, _, err := s.mg.Send(ctx, message); err != nil {
		s.logger.Warn("mailgun send failed", zap.String("subject", subject), zap.Error(err))
		return false
	}
	return true
}

// SendVerificationEmail sends the fixed verification template to the address
// being proven.
func (s *MailService) SendVerificationEmail(ctx context.Context, email, code string) bool {
	return s.SendEmail(ctx, "Verify Your Email", s.template, map[string]string{
		"username": email,
		"code":     code,
	}, email)
}
