package output

import (
	"context"

	"retrieval-agent/internal/domain/entity"
)

type MailerPort interface {
	Send(ctx context.Context, email entity.Email) error
}
