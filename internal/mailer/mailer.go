// Package mailer renders notification emails and hands them to the configured transport.
package mailer

import (
	"context"
	"fmt"

	"winespace/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the transport named by MAIL_DRIVER.
func New(ctx context.Context, cnf config.Mail) (Mailer, error) {
	switch cnf.Driver {
	case "smtp":
		return NewSMTPMailer(cnf)
	case "ses":
		return NewSESMailer(ctx, cnf)
	case "", "log":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail driver: %s", cnf.Driver)
	}
}
