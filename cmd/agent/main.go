package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retrieval-agent/internal/adapter/httpapi"
	"retrieval-agent/internal/di"
	"retrieval-agent/internal/infrastructure/env"
)

const usage = `usage:
  agent run [payload.json]   run one task; reads stdin when no file is given
  agent serve                start the HTTP trigger (POST /invoke, GET /healthz)`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	envService := env.NewEnvService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := di.ConfigFromEnv(envService)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	switch os.Args[1] {
	case "run":
		err = runOnce(ctx, container, os.Args[2:])
	case "serve":
		err = serve(ctx, container, envService.GetWithDefault("HTTP_ADDR", ":8080"))
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		container.Logger.Error("Command failed", "command", os.Args[1], "error", err)
		container.Close()
		os.Exit(1)
	}
}

func runOnce(ctx context.Context, c *di.Container, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open payload: %w", err)
		}
		defer f.Close()
		in = f
	}

	payload, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	resp, runErr := c.TaskRunner.Run(ctx, payload)
	fmt.Printf("statusCode: %d\n%s\n", resp.StatusCode, resp.Body)
	if runErr != nil {
		return runErr
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("task failed with status %d", resp.StatusCode)
	}
	return nil
}

func serve(ctx context.Context, c *di.Container, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewServer(c.TaskRunner, c.Logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("HTTP trigger listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down HTTP trigger")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
