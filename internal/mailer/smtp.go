package mailer

import (
	"context"
	"fmt"

	"winespace/internal/config"

	"github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cnf config.Mail) (*SMTPMailer, error) {
	if cnf.SMTPHost == "" {
		return nil, fmt.Errorf("smtp mailer: SMTP_HOST is required")
	}

	opts := []mail.Option{
		mail.WithPort(cnf.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cnf.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cnf.SMTPUser),
			mail.WithPassword(cnf.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cnf.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp mailer: %w", err)
	}
	return &SMTPMailer{client: client, from: cnf.From}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w, to: %s", err, msg.To)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("send email: %w, to: %s", err, msg.To)
	}
	return nil
}
