package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"

	"retrieval-agent/internal/di"
	"retrieval-agent/internal/domain/entity"
	"retrieval-agent/internal/infrastructure/env"
)

// Clients are created once per execution environment and reused across
// warm invocations.
var container = sync.OnceValues(func() (*di.Container, error) {
	cfg, err := di.ConfigFromEnv(env.NewEnvService())
	if err != nil {
		return nil, err
	}
	return di.NewContainer(context.Background(), cfg)
})

func handler(ctx context.Context, payload json.RawMessage) (entity.Response, error) {
	c, err := container()
	if err != nil {
		log.Printf("initialization failed: %v", err)
		return entity.NewFailureResponse(err), err
	}
	return c.TaskRunner.Run(ctx, payload)
}

func main() {
	lambda.Start(handler)
}
