// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shadercheck

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

type serviceState uint8

const (
	stateNew serviceState = iota
	stateRunning
	stateShutdown
)

func (s serviceState) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateRunning:
		return "running"
	default:
		return "shutdown"
	}
}

// Service owns the compiler's process-wide state.
//
// A Service is safe for concurrent use. It moves from new to running on
// Initialize and from running to shut down on Shutdown; it cannot be
// restarted.
type Service struct {
	opts Options

	mu       sync.Mutex
	state    serviceState
	attached int
}

// New returns a Service with DefaultOptions adjusted by opts.
// The compiler is not touched until Initialize.
func New(opts ...Option) *Service {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.fill()
	return &Service{opts: o}
}

// Options returns the service's settings.
func (s *Service) Options() Options { return s.opts }

// Initialize sets up the compiler's process and global state. It is a
// no-op on a running service. A failed Initialize leaves the service new,
// so it may be retried.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateRunning:
		return nil
	case stateShutdown:
		return ErrShutdown
	}
	b := s.opts.Backend
	if err := b.InitProcess(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInitFailed, b.Name(), err)
	}
	s.state = stateRunning
	Logger().Info("shadercheck: initialized", slog.String("backend", b.Name()))
	return nil
}

// Shutdown finalizes the compiler. Every Thread must have detached first.
// Shutdown on a service that is already shut down is a no-op.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateNew:
		return ErrNotInitialized
	case stateShutdown:
		return nil
	}
	if s.attached > 0 {
		return fmt.Errorf("%w: %d", ErrThreadsAttached, s.attached)
	}
	s.state = stateShutdown
	b := s.opts.Backend
	if err := b.FinalizeProcess(ctx); err != nil {
		Logger().Warn("shadercheck: finalize failed", slog.String("backend", b.Name()), slog.Any("error", err))
		return fmt.Errorf("%w: %s: %w", ErrShutdownFailed, b.Name(), err)
	}
	Logger().Info("shadercheck: shut down", slog.String("backend", b.Name()))
	return nil
}

// Attach pins the calling goroutine to its OS thread and initializes the
// compiler's thread state there. The returned Thread must be used and
// detached from the same goroutine.
func (s *Service) Attach() (*Thread, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}

	runtime.LockOSThread()
	if err := s.opts.Backend.InitThread(); err != nil {
		runtime.UnlockOSThread()
		s.release()
		return nil, fmt.Errorf("%w: %s: %w", ErrThreadInitFailed, s.opts.Backend.Name(), err)
	}
	return &Thread{svc: s}, nil
}

// Compile validates source on a transient Thread of the calling goroutine.
func (s *Service) Compile(ctx context.Context, source string, stage Stage) (Result, error) {
	t, err := s.Attach()
	if err != nil {
		return Result{}, err
	}
	defer t.Detach() //nolint:errcheck // detach errors are logged

	return t.Compile(ctx, source, stage)
}

// CompileTag validates source for a caller's integer stage tag, resolved
// by the service's StagePolicy.
func (s *Service) CompileTag(ctx context.Context, source string, tag int32) (Result, error) {
	stage, err := StageFromTag(tag, s.opts.StagePolicy)
	if err != nil {
		return Result{}, err
	}
	return s.Compile(ctx, source, stage)
}

// Respond validates source and calls respond exactly once, before
// returning, with an empty string on success or a non-empty message on
// failure. Failures to run the compiler are reported as "ERROR: <cause>".
func (s *Service) Respond(ctx context.Context, source string, tag int32, respond func(message string)) {
	res, err := s.CompileTag(ctx, source, tag)
	if err != nil {
		Logger().Debug("shadercheck: compile not run", slog.Int("stage_tag", int(tag)), slog.Any("error", err))
		respond("ERROR: " + err.Error())
		return
	}
	respond(res.Log)
}

func (s *Service) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateNew:
		return ErrNotInitialized
	case stateShutdown:
		return ErrShutdown
	}
	s.attached++
	return nil
}

func (s *Service) release() {
	s.mu.Lock()
	s.attached--
	s.mu.Unlock()
}

// Attached returns the number of threads currently attached.
func (s *Service) Attached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}
