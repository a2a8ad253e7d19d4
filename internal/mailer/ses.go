package mailer

import (
	"context"
	"fmt"

	"winespace/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESMailer sends through the SESv2 API with the default AWS credential chain.
type SESMailer struct {
	client *sesv2.Client
	from   string
}

func NewSESMailer(ctx context.Context, cnf config.Mail) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cnf.SESRegion))
	if err != nil {
		return nil, fmt.Errorf("ses mailer: load aws config: %w", err)
	}
	return &SESMailer{client: sesv2.NewFromConfig(cfg), from: cnf.From}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination:      &sestypes.Destination{ToAddresses: []string{msg.To}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}},
			},
		},
	}
	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email: %w, to: %s", err, msg.To)
	}
	return nil
}
