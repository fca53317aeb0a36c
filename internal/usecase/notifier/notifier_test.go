package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retrieval-agent/internal/domain/entity"
)

type fakeMailer struct {
	sent []entity.Email
	err  error
}

func (f *fakeMailer) Send(_ context.Context, e entity.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, e)
	return nil
}

var executedAt = time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC)

func TestNotifySuccess_PermanentLink(t *testing.T) {
	mailer := &fakeMailer{}
	n := New(mailer, "robot@example.com")

	err := n.NotifySuccess(context.Background(), "user@example.com", entity.SuccessDetails{
		TaskID:        "t1",
		DocumentName:  "r.pdf",
		DocumentURL:   "https://out.s3.amazonaws.com/u1/t1/r.pdf",
		ExecutionTime: executedAt,
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	e := mailer.sent[0]
	assert.Equal(t, "robot@example.com", e.From)
	assert.Equal(t, []string{"user@example.com"}, e.To)
	assert.Equal(t, "Document Retrieval Completed - r.pdf", e.Subject)
	assert.Contains(t, e.HTMLBody, "<h1>Document Retrieval Completed</h1>")
	assert.Contains(t, e.HTMLBody, `href="https://out.s3.amazonaws.com/u1/t1/r.pdf"`)
	assert.Contains(t, e.HTMLBody, "(ID: t1)")
	assert.Contains(t, e.TextBody, "Executed at: 2026-03-01T06:30:00Z")
	assert.Contains(t, e.TextBody, "You can download your document at: https://out.s3.amazonaws.com/u1/t1/r.pdf")
	assert.NotContains(t, e.HTMLBody, "expire")
	assert.NotContains(t, e.TextBody, "expire")
}

func TestNotifySuccess_ExpiringLink(t *testing.T) {
	mailer := &fakeMailer{}
	n := New(mailer, "robot@example.com")

	err := n.NotifySuccess(context.Background(), "user@example.com", entity.SuccessDetails{
		TaskID:        "t1",
		DocumentName:  "r.pdf",
		DocumentURL:   "https://signed.example/r.pdf?X-Amz-Signature=abc&X-Amz-Expires=604800",
		ExecutionTime: executedAt,
		LinkTTL:       7 * 24 * time.Hour,
	})
	require.NoError(t, err)

	e := mailer.sent[0]
	assert.Contains(t, e.HTMLBody, "This link will expire in 7 days.")
	assert.Contains(t, e.TextBody, "This link will expire in 7 days.")
	assert.Contains(t, e.HTMLBody, "X-Amz-Signature=abc&amp;X-Amz-Expires=604800")
}

func TestNotifyFailure_EscapesHTML(t *testing.T) {
	mailer := &fakeMailer{}
	n := New(mailer, "robot@example.com")

	err := n.NotifyFailure(context.Background(), "user@example.com", entity.FailureDetails{
		TaskID: "t9",
		Error:  "Document retrieval failed: <script>alert(1)</script>",
	})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	e := mailer.sent[0]
	assert.Equal(t, "Document Retrieval Failed - Task t9", e.Subject)
	assert.Contains(t, e.HTMLBody, "&lt;script&gt;")
	assert.NotContains(t, e.HTMLBody, "<script>")
	assert.Contains(t, e.TextBody, "Error: Document retrieval failed: <script>alert(1)</script>")
	assert.Contains(t, e.TextBody, "Please check your automation settings and try again.")
}

func TestNotify_MailerError(t *testing.T) {
	boom := errors.New("MessageRejected")
	n := New(&fakeMailer{err: boom}, "robot@example.com")

	err := n.NotifyFailure(context.Background(), "user@example.com", entity.FailureDetails{TaskID: "t1", Error: "x"})
	assert.ErrorIs(t, err, boom)

	err = n.NotifySuccess(context.Background(), "user@example.com", entity.SuccessDetails{TaskID: "t1"})
	assert.ErrorIs(t, err, boom)
}

func TestSanitizeHeader(t *testing.T) {
	assert.Equal(t, "Document Retrieval Completed - a b.pdf", sanitizeHeader("Document Retrieval Completed - a\r\nb.pdf"))
}

func TestHumanizeTTL(t *testing.T) {
	assert.Equal(t, "", humanizeTTL(0))
	assert.Equal(t, "1 day", humanizeTTL(24*time.Hour))
	assert.Equal(t, "7 days", humanizeTTL(7*24*time.Hour))
	assert.Equal(t, "12 hours", humanizeTTL(12*time.Hour))
	assert.Equal(t, "90 minutes", humanizeTTL(90*time.Minute))
	assert.Equal(t, "1m30.5s", humanizeTTL(90500*time.Millisecond))
}
