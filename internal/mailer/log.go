package mailer

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogMailer only logs the message. Used in development.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("bytes", len(msg.HTML)).Msg("mail not sent, log driver")
	log.Debug().Msg(msg.HTML)
	return nil
}
