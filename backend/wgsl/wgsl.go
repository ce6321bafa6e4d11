// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package wgsl validates WGSL sources with the naga shader compiler.
//
// The backend needs no native library. It parses, lowers and validates the
// module, then checks that the requested entry point exists for the
// requested stage. Failures are written as a glslang-style log:
//
//	ERROR: 0:3:5: unknown identifier 'colr'
//
// so package diag can parse them like any other backend's output.
package wgsl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	nagawgsl "github.com/gogpu/naga/wgsl"

	"github.com/gogpu/shadercheck/backend"
)

// Backend validates WGSL.
type Backend struct{}

var _ backend.Backend = Backend{}

// New returns the WGSL backend.
func New() Backend { return Backend{} }

// Name implements backend.Backend.
func (Backend) Name() string { return "naga" }

// InitProcess implements backend.Backend. naga keeps no global state.
func (Backend) InitProcess(context.Context) error { return nil }

// FinalizeProcess implements backend.Backend.
func (Backend) FinalizeProcess(context.Context) error { return nil }

// InitThread implements backend.Backend.
func (Backend) InitThread() error { return nil }

// DetachThread implements backend.Backend.
func (Backend) DetachThread() error { return nil }

var irStages = map[backend.Stage]ir.ShaderStage{
	backend.StageVertex:   ir.StageVertex,
	backend.StageFragment: ir.StageFragment,
	backend.StageCompute:  ir.StageCompute,
}

// Compile validates req.Source. The resource table and GLSL version
// settings of req do not apply to WGSL and are ignored.
func (Backend) Compile(ctx context.Context, req backend.Request) (backend.Output, error) {
	want, ok := irStages[req.Stage]
	if !ok {
		return backend.Output{}, backend.ErrInvalidStage
	}
	if err := ctx.Err(); err != nil {
		return backend.Output{}, err
	}

	ast, err := naga.Parse(req.Source)
	if err != nil {
		return failed(err), nil
	}
	module, err := naga.LowerWithSource(ast, req.Source)
	if err != nil {
		return failed(err), nil
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return backend.Output{}, fmt.Errorf("wgsl: validate: %w", err)
	}
	if len(verrs) > 0 {
		var w logWriter
		for i := range verrs {
			w.error(0, 0, verrs[i].Error())
		}
		return w.output(), nil
	}

	entry := req.EntryPoint
	if entry == "" {
		entry = "main"
	}
	if msg := checkEntryPoint(module, entry, want); msg != "" {
		var w logWriter
		w.error(0, 0, msg)
		return w.output(), nil
	}
	return backend.Output{OK: true}, nil
}

func checkEntryPoint(module *ir.Module, name string, want ir.ShaderStage) string {
	var stages []string
	for _, ep := range module.EntryPoints {
		if ep.Name != name {
			continue
		}
		if ep.Stage == want {
			return ""
		}
		stages = append(stages, stageName(ep.Stage))
	}
	if len(stages) == 0 {
		return fmt.Sprintf("'%s' : entry point not found", name)
	}
	return fmt.Sprintf("'%s' : entry point is a %s shader, not a %s shader",
		name, strings.Join(stages, ", "), stageName(want))
}

func stageName(s ir.ShaderStage) string {
	switch s {
	case ir.StageVertex:
		return "vertex"
	case ir.StageFragment:
		return "fragment"
	case ir.StageCompute:
		return "compute"
	default:
		return fmt.Sprintf("stage(%d)", s)
	}
}

// failed converts a naga front-end error into a log. Parse errors carry a
// position; lowering and tokenizer errors are reported by their text.
func failed(err error) backend.Output {
	var w logWriter

	var parseErr nagawgsl.ParseError
	var parseErrPtr *nagawgsl.ParseError
	switch {
	case errors.As(err, &parseErr):
		w.error(parseErr.Line, parseErr.Column, parseErr.Message)
	case errors.As(err, &parseErrPtr) && parseErrPtr != nil:
		w.error(parseErrPtr.Line, parseErrPtr.Column, parseErrPtr.Message)
	default:
		w.error(0, 0, err.Error())
	}
	return w.output()
}

// logWriter accumulates entries in glslang's log format.
type logWriter struct {
	sb     strings.Builder
	errors int
}

func (w *logWriter) error(line, col int, msg string) {
	w.errors++
	switch {
	case line > 0 && col > 0:
		fmt.Fprintf(&w.sb, "ERROR: 0:%d:%d: %s\n", line, col, msg)
	case line > 0:
		fmt.Fprintf(&w.sb, "ERROR: 0:%d: %s\n", line, msg)
	default:
		fmt.Fprintf(&w.sb, "ERROR: %s\n", msg)
	}
}

func (w *logWriter) output() backend.Output {
	fmt.Fprintf(&w.sb, "ERROR: %d compilation errors.  No code generated.", w.errors)
	return backend.Output{OK: false, Log: w.sb.String()}
}
