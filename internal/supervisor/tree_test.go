// Filmorate - Film Catalog and Social Rating Service
// Copyright 2026 Filmorate Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmorate/filmorate

package supervisor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

// pingService closes its channel once supervised serving begins, then
// blocks until canceled.
type pingService struct {
	running chan struct{}
}

func (s *pingService) Serve(ctx context.Context) error {
	close(s.running)
	<-ctx.Done()
	return ctx.Err()
}

func (s *pingService) String() string { return "ping" }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTreeDefaults(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	// Zero values are replaced with defaults.
	tree := NewTree(discardLogger(), TreeConfig{})
	if tree.config.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %s, want 15s", tree.config.FailureBackoff)
	}
}

func TestTreeRunsAPIService(t *testing.T) {
	tree := NewTree(discardLogger(), DefaultTreeConfig())

	svc := &pingService{running: make(chan struct{})}
	tree.AddAPIService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	select {
	case <-svc.running:
	case <-time.After(2 * time.Second):
		t.Fatal("service never started under supervision")
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("supervisor returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after cancel")
	}
}
