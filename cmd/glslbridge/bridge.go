package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/gogpu/shadercheck"
)

const (
	envValidator = "SHADERCHECK_GLSLANG"
	envLog       = "SHADERCHECK_LOG"
)

// config is the library's load-time configuration.
type config struct {
	validator string
	logLevel  *slog.Level
}

func loadConfig(getenv func(string) string) (config, error) {
	c := config{validator: getenv(envValidator)}
	if v := strings.TrimSpace(getenv(envLog)); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err != nil {
			return c, fmt.Errorf("%s: %w", envLog, err)
		}
		c.logLevel = &lvl
	}
	return c, nil
}

// bridge holds the library's single service.
type bridge struct {
	mu      sync.Mutex
	svc     *shadercheck.Service
	initErr error
}

// start configures logging and initializes a service. Errors are kept and
// reported by every later compile.
func (b *bridge) start(ctx context.Context, c config, logOut io.Writer, opts ...shadercheck.Option) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.svc != nil && b.initErr == nil {
		return nil
	}
	if c.logLevel != nil {
		shadercheck.SetLogger(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: *c.logLevel})))
	}
	svc := newService(c, opts...)
	err := svc.Initialize(ctx)
	b.svc, b.initErr = svc, err
	return err
}

// stop finalizes the service. A later start creates a new one, also after
// a failed finalization.
func (b *bridge) stop(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.svc == nil || b.initErr != nil {
		b.svc, b.initErr = nil, nil
		return nil
	}
	if err := b.svc.Shutdown(ctx); err != nil {
		if errors.Is(err, shadercheck.ErrThreadsAttached) {
			return err
		}
		// The service is shut down even when finalization failed.
		b.svc = nil
		return err
	}
	b.svc = nil
	return nil
}

// compile runs one request and calls respond exactly once.
func (b *bridge) compile(ctx context.Context, source string, stage int32, respond func(string)) {
	b.mu.Lock()
	svc, err := b.svc, b.initErr
	b.mu.Unlock()

	switch {
	case err != nil:
		respond("ERROR: " + err.Error())
	case svc == nil:
		respond("ERROR: " + shadercheck.ErrNotInitialized.Error())
	default:
		svc.Respond(ctx, source, stage, respond)
	}
}
