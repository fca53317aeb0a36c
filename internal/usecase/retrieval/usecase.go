package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"retrieval-agent/internal/application/port/input"
	"retrieval-agent/internal/application/port/output"
	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/logger"
	"retrieval-agent/internal/usecase/agentinvoker"
	"retrieval-agent/internal/usecase/instructions"
	"retrieval-agent/internal/usecase/notifier"
	"retrieval-agent/internal/usecase/publisher"
	"retrieval-agent/internal/usecase/secrets"
)

var _ input.TaskRunner = (*UseCase)(nil)

type Config struct {
	PromptBucket string
}

type Deps struct {
	Secrets      *secrets.Resolver
	Instructions *instructions.Loader
	Agent        *agentinvoker.Invoker
	Publisher    *publisher.Publisher
	Notifier     *notifier.Notifier
	Logger       output.LoggerPort
}

// UseCase drives one scheduled task through
// INTAKE -> SECRETS_RESOLVED -> INSTRUCTIONS_LOADED -> AGENT_INVOKED ->
// ARTIFACT_PUBLISHED -> NOTIFIED_SUCCESS, or FAILED -> NOTIFIED_FAILURE.
// It keeps no state between runs.
type UseCase struct {
	cfg  Config
	deps Deps
	now  func() time.Time
}

func New(cfg Config, deps Deps) *UseCase {
	return &UseCase{
		cfg:  cfg,
		deps: deps,
		now:  time.Now,
	}
}

// run is the per-invocation state.
type run struct {
	id     string
	state  entity.RunState
	req    entity.TaskRequest
	logger *logger.RedactingLogger
}

func (r *run) transition(to entity.RunState) {
	r.logger.Info("State transition", "from", r.state.String(), "to", to.String())
	r.state = to
}

func (uc *UseCase) Run(ctx context.Context, payload json.RawMessage) (entity.Response, error) {
	id := uuid.NewString()
	r := &run{
		id:     id,
		state:  entity.StateIntake,
		logger: logger.Redacting(uc.deps.Logger.WithField("invocationId", id)),
	}

	req, err := entity.ParseTaskRequest(payload)
	if err == nil {
		err = req.Validate()
	}
	r.req = req
	r.logger = logger.Redacting(r.logger.WithField("taskId", req.TaskID))

	r.logger.Info("Received event",
		"userId", req.UserID,
		"urlSecretName", req.URLSecretName,
		"credentialsSecretName", req.CredentialsSecretName,
		"promptFileKey", req.PromptFileKey,
		"outputBucket", req.OutputBucket,
		"notificationEmail", req.NotificationEmail,
	)

	if err != nil {
		return uc.fail(ctx, r, err)
	}

	documentKey, err := uc.execute(ctx, r)
	if err != nil {
		return uc.fail(ctx, r, err)
	}

	r.transition(entity.StateNotifiedSuccess)
	return entity.NewSuccessResponse(documentKey), nil
}

func (uc *UseCase) execute(ctx context.Context, r *run) (string, error) {
	req := r.req

	url, err := uc.deps.Secrets.ResolveURL(ctx, req.URLSecretName)
	if err != nil {
		return "", err
	}
	creds, err := uc.deps.Secrets.ResolveCredentials(ctx, req.CredentialsSecretName)
	if err != nil {
		return "", err
	}
	r.logger = logger.Redacting(r.logger, creds.Password, creds.Username)
	r.transition(entity.StateSecretsResolved)

	text, err := uc.deps.Instructions.Load(ctx, uc.cfg.PromptBucket, req.PromptFileKey)
	if err != nil {
		return "", err
	}
	r.transition(entity.StateInstructionsLoaded)

	result, err := uc.deps.Agent.Invoke(ctx, agentinvoker.Request{
		TaskID:       req.TaskID,
		URL:          url,
		Credentials:  creds,
		Instructions: text,
	})
	if err != nil {
		return "", err
	}
	r.transition(entity.StateAgentInvoked)

	if !result.HasDocument() {
		reason := result.Error
		if reason == "" {
			reason = "Unknown error"
		}
		return "", fmt.Errorf("%w: %s", entity.ErrDocumentMissing, reason)
	}

	if result.Error != "" {
		r.logger.Warn("Agent reported an error alongside the document", "agentError", result.Error)
	}

	if len(result.ExecutionDetails) > 0 {
		r.logger.Debug("Agent execution details", "details", string(result.ExecutionDetails))
	}

	key, err := uc.deps.Publisher.Publish(ctx, entity.PublishRequest{
		Bucket:        req.OutputBucket,
		UserID:        req.UserID,
		TaskID:        req.TaskID,
		DocumentName:  result.DocumentName,
		Base64Content: result.DocumentContent,
		ContentType:   result.DocumentContentType,
	})
	if err != nil {
		return "", err
	}
	r.transition(entity.StateArtifactPublished)
	r.logger.Info("Document stored", "bucket", req.OutputBucket, "documentKey", key)

	docURL, err := uc.deps.Publisher.DocumentURL(ctx, req.OutputBucket, key)
	if err != nil {
		return "", fmt.Errorf("build document link: %w", err)
	}

	if err := uc.deps.Notifier.NotifySuccess(ctx, req.NotificationEmail, entity.SuccessDetails{
		TaskID:        req.TaskID,
		DocumentName:  result.DocumentName,
		DocumentURL:   docURL,
		ExecutionTime: uc.now(),
		LinkTTL:       uc.deps.Publisher.LinkTTL(),
	}); err != nil {
		return "", err
	}

	return key, nil
}

// fail moves the run to FAILED and sends the failure notification when the
// request carries a usable address. A notification error is returned as is.
func (uc *UseCase) fail(ctx context.Context, r *run, cause error) (entity.Response, error) {
	from := r.state
	r.transition(entity.StateFailed)

	msg := r.logger.Scrub(cause.Error())
	r.logger.Error("Task failed", "failedAfter", from.String(), "error", msg)

	resp := entity.NewFailureResponse(errors.New(msg))
	if errors.Is(cause, entity.ErrInvalidRequest) {
		resp = entity.NewInvalidRequestResponse(errors.New(msg))
	}

	if !r.req.HasValidNotificationEmail() {
		r.logger.Warn("No usable notification address, skipping failure email")
		return resp, nil
	}

	if err := uc.deps.Notifier.NotifyFailure(ctx, r.req.NotificationEmail, entity.FailureDetails{
		TaskID: r.req.TaskID,
		Error:  msg,
	}); err != nil {
		r.logger.Error("Failure notification could not be sent", "error", err)
		return resp, err
	}

	r.transition(entity.StateNotifiedFailure)
	return resp, nil
}
