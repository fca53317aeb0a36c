package notifier

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/prompts"
)

type Notifier struct {
	mailer output.MailerPort
	sender string

	successHTML *htmltemplate.Template
	successText *texttemplate.Template
	failureHTML *htmltemplate.Template
	failureText *texttemplate.Template
}

// New parses the embedded email templates. It panics on a broken template
// since those are compiled into the binary.
func New(mailer output.MailerPort, sender string) *Notifier {
	return &Notifier{
		mailer:      mailer,
		sender:      sender,
		successHTML: htmltemplate.Must(htmltemplate.New("success.html").Parse(prompts.SuccessEmailHTML)),
		successText: texttemplate.Must(texttemplate.New("success.txt").Parse(prompts.SuccessEmailText)),
		failureHTML: htmltemplate.Must(htmltemplate.New("failure.html").Parse(prompts.FailureEmailHTML)),
		failureText: texttemplate.Must(texttemplate.New("failure.txt").Parse(prompts.FailureEmailText)),
	}
}

type successView struct {
	TaskID       string
	DocumentName string
	DocumentURL  string
	ExecutedAt   string
	Expiry       string
}

type failureView struct {
	TaskID string
	Error  string
}

func (n *Notifier) NotifySuccess(ctx context.Context, recipient string, d entity.SuccessDetails) error {
	view := successView{
		TaskID:       d.TaskID,
		DocumentName: d.DocumentName,
		DocumentURL:  d.DocumentURL,
		ExecutedAt:   d.ExecutionTime.UTC().Format(time.RFC3339),
		Expiry:       humanizeTTL(d.LinkTTL),
	}

	email, err := n.build(recipient, "Document Retrieval Completed - "+d.DocumentName,
		n.successHTML, n.successText, view)
	if err != nil {
		return err
	}

	if err := n.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send success notification: %w", err)
	}
	return nil
}

func (n *Notifier) NotifyFailure(ctx context.Context, recipient string, d entity.FailureDetails) error {
	email, err := n.build(recipient, "Document Retrieval Failed - Task "+d.TaskID,
		n.failureHTML, n.failureText, failureView{TaskID: d.TaskID, Error: d.Error})
	if err != nil {
		return err
	}

	if err := n.mailer.Send(ctx, email); err != nil {
		return fmt.Errorf("send failure notification: %w", err)
	}
	return nil
}

func (n *Notifier) build(recipient, subject string, html *htmltemplate.Template, text *texttemplate.Template, data any) (entity.Email, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := html.Execute(&htmlBuf, data); err != nil {
		return entity.Email{}, fmt.Errorf("render %s: %w", html.Name(), err)
	}
	if err := text.Execute(&textBuf, data); err != nil {
		return entity.Email{}, fmt.Errorf("render %s: %w", text.Name(), err)
	}

	return entity.Email{
		From:     n.sender,
		To:       []string{recipient},
		Subject:  sanitizeHeader(subject),
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}, nil
}

// sanitizeHeader keeps agent-provided names from breaking the subject line.
func sanitizeHeader(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func humanizeTTL(ttl time.Duration) string {
	switch {
	case ttl <= 0:
		return ""
	case ttl%(24*time.Hour) == 0:
		return plural(int(ttl/(24*time.Hour)), "day")
	case ttl%time.Hour == 0:
		return plural(int(ttl/time.Hour), "hour")
	case ttl%time.Minute == 0:
		return plural(int(ttl/time.Minute), "minute")
	default:
		return ttl.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
