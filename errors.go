// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package shadercheck

import "errors"

// Lifecycle failures. Backend errors are wrapped, so errors.Is matches
// both these values and the underlying cause.
var (
	ErrInitFailed       = errors.New("shadercheck: compiler initialization failed")
	ErrThreadInitFailed = errors.New("shadercheck: compiler thread initialization failed")
	ErrShutdownFailed   = errors.New("shadercheck: compiler finalization failed")
)

// Precondition violations.
var (
	// ErrNotInitialized is returned when the service is used before Initialize.
	ErrNotInitialized = errors.New("shadercheck: service not initialized")

	// ErrShutdown is returned when the service is used after Shutdown.
	ErrShutdown = errors.New("shadercheck: service shut down")

	// ErrDetached is returned when a Thread is used after Detach.
	ErrDetached = errors.New("shadercheck: thread detached")

	// ErrThreadsAttached is returned by Shutdown while threads are attached.
	ErrThreadsAttached = errors.New("shadercheck: threads still attached")

	// ErrUnknownStage is returned for unrecognized stage tags under StrictStages.
	ErrUnknownStage = errors.New("shadercheck: unknown shader stage")
)
