package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/tunelink/auth-service/internal/domain"
)

type SMTPSender struct {
	lg zerolog.Logger

	host string
	port int
	user string
	pass string
	from string

	timeout time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

func NewSMTPSender(cfg SMTPConfig, lg zerolog.Logger) *SMTPSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPSender{
		lg:      lg.With().Str("component", "smtp_sender").Logger(),
		host:    cfg.Host,
		port:    cfg.Port,
		user:    cfg.Username,
		pass:    cfg.Password,
		from:    cfg.From,
		timeout: timeout,
	}
}

// SendVerificationEmail delivers the verification link. Any failure is
// reported as delivery_failed; the flow does not retry.
func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, link string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return domain.ErrDeliveryFailed(err)
	}
	if err := m.To(to); err != nil {
		return domain.ErrDeliveryFailed(err)
	}
	m.Subject("Email Verification")
	m.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Click the link to verify your email: %s\n", link))

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(s.user), mail.WithPassword(s.pass))
	}

	c, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return domain.ErrDeliveryFailed(err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		s.lg.Error().Err(err).Str("to", to).Msg("smtp send failed")
		return domain.ErrDeliveryFailed(err)
	}

	s.lg.Info().Str("to", to).Msg("verification email sent")
	return nil
}
