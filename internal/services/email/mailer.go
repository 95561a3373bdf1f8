// Package email delivers transactional mail over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/sustainaByte/orghub/internal/models"
	mail "github.com/wneessen/go-mail"
)

// Mailer sends account emails. A nil Mailer or an unconfigured SMTP host
// disables delivery without failing the calling operation.
type Mailer struct {
	cfg      models.SMTPConfig
	frontend models.FrontendConfig
}

func NewMailer(cfg models.SMTPConfig, frontend models.FrontendConfig) *Mailer {
	return &Mailer{cfg: cfg, frontend: frontend}
}

// Enabled reports whether SMTP delivery is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Host != ""
}

// SendGeneratedPassword mails a newly created employee their initial password.
func (m *Mailer) SendGeneratedPassword(ctx context.Context, to, name, password string) error {
	subject := "Your new account"
	body := fmt.Sprintf(
		"Hello %s,\n\nAn account has been created for you. Your temporary password is:\n\n%s\n\nPlease change it after your first login.\n",
		name, password)
	return m.send(ctx, to, subject, body)
}

// SendPasswordReset mails a reset link carrying the reset token.
func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetToken string) error {
	subject := "Password reset"
	link := resetToken
	if m.frontend.BaseURL != "" {
		link = fmt.Sprintf("%s/reset-password?token=%s", m.frontend.BaseURL, resetToken)
	}
	body := fmt.Sprintf(
		"Hello,\n\nA password reset was requested for your account. Use the link below within 15 minutes:\n\n%s\n\nIf you did not request this, ignore this email.\n",
		link)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithPort(m.cfg.Port)}
	if m.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.Username),
			mail.WithPassword(m.cfg.Password),
		)
	}
	if m.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
