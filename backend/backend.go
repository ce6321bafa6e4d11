// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package backend defines the contract between shadercheck and the shader
// compilers it drives.
//
// A Backend owns no state of its own beyond what the wrapped compiler needs.
// The lifecycle hooks mirror the compiler's process and thread scopes:
//
//	InitProcess     once, before any other call
//	InitThread      on every OS thread that will call Compile
//	DetachThread    when that thread is done
//	FinalizeProcess once, after every thread has detached
package backend

import (
	"context"
	"errors"

	"github.com/gogpu/shadercheck/caps"
)

// Stage is the pipeline stage a shader is validated for.
type Stage uint8

const (
	// StageUnknown is the caller's "any" tag. It is resolved before reaching a backend.
	StageUnknown Stage = iota
	StageVertex
	StageFragment
	StageCompute
)

// String returns the glslang file-extension spelling of the stage.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vert"
	case StageFragment:
		return "frag"
	case StageCompute:
		return "comp"
	default:
		return "unknown"
	}
}

// Valid reports whether s names a concrete stage.
func (s Stage) Valid() bool {
	return s == StageVertex || s == StageFragment || s == StageCompute
}

// Profile is the GLSL profile applied when the source has no #version.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileCore
	ProfileCompatibility
	ProfileES
)

// String returns the profile name as written after a #version number.
func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileCompatibility:
		return "compatibility"
	case ProfileES:
		return "es"
	default:
		return "none"
	}
}

// Request describes one compilation.
type Request struct {
	// Source is the complete shader text as a single string.
	Source string

	// Stage must be a concrete stage.
	Stage Stage

	// Caps is the resource table the compiler validates against.
	Caps caps.Capabilities

	// EntryPoint is the entry function name, normally "main".
	EntryPoint string

	// DefaultVersion and DefaultProfile apply when the source has no #version.
	DefaultVersion int
	DefaultProfile Profile

	ForwardCompatible bool

	// DebugInfo asks the compiler for debug-level messages in its log.
	DebugInfo bool
}

// Output is what a compiler reports for one Request.
type Output struct {
	// OK is true when the source validated.
	OK bool

	// Log is the compiler's diagnostic text. It may be non-empty on success
	// when the compiler emitted warnings.
	Log string
}

// Backend compiles shader sources.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	InitProcess(ctx context.Context) error
	FinalizeProcess(ctx context.Context) error
	InitThread() error
	DetachThread() error

	// Compile validates req. A returned error means the compiler could not
	// be run at all; a rejected shader is reported through Output.
	Compile(ctx context.Context, req Request) (Output, error)
}

// ErrInvalidStage is returned by backends given a request without a concrete stage.
var ErrInvalidStage = errors.New("backend: invalid shader stage")
