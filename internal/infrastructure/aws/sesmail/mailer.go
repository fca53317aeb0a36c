// Package sesmail sends notification emails through Amazon SES.
package sesmail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
)

var _ output.MailerPort = (*Mailer)(nil)

const charset = "UTF-8"

type API interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type Mailer struct {
	client API
	logger output.LoggerPort
}

func New(client API, logger output.LoggerPort) *Mailer {
	return &Mailer{
		client: client,
		logger: logger,
	}
}

func (m *Mailer) Send(ctx context.Context, email entity.Email) error {
	out, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: email.To,
		},
		Message: &types.Message{
			Body: &types.Body{
				Html: content(email.HTMLBody),
				Text: content(email.TextBody),
			},
			Subject: content(email.Subject),
		},
		Source: aws.String(email.From),
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}

	m.logger.Info("Email sent", "messageId", aws.ToString(out.MessageId), "subject", email.Subject)
	return nil
}

func content(s string) *types.Content {
	return &types.Content{
		Data:    aws.String(s),
		Charset: aws.String(charset),
	}
}
