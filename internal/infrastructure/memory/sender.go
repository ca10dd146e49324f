package memory

import (
	"context"
	"sync"

	"github.com/tunelink/auth-service/internal/logger"
)

// LogSender stands in for the SMTP collaborator in dev mode: it records
// the link and logs it instead of delivering mail.
type LogSender struct {
	mu   sync.Mutex
	sent []SentMail
}

type SentMail struct {
	To   string
	Link string
}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendVerificationEmail(ctx context.Context, to, link string) error {
	s.mu.Lock()
	s.sent = append(s.sent, SentMail{To: to, Link: link})
	s.mu.Unlock()

	logger.WithCtx(ctx).Info().
		Str("to", to).
		Str("link", link).
		Msg("verification email (dev mode, not delivered)")
	return nil
}

// Sent returns a copy of everything delivered so far.
func (s *LogSender) Sent() []SentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentMail, len(s.sent))
	copy(out, s.sent)
	return out
}
