package input

import (
	"context"
	"encoding/json"

	"retrieval-agent/internal/domain/entity"
)

// TaskRunner executes one scheduled retrieval task end to end.
// The returned error is non-nil only when the failure notification itself
// could not be sent; the response is always populated.
type TaskRunner interface {
	Run(ctx context.Context, payload json.RawMessage) (entity.Response, error)
}
