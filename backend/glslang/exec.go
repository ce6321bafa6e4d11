// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glslang

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogpu/shadercheck/backend"
)

// DefaultBinary is the validator looked up on PATH when Exec.Bin is empty.
const DefaultBinary = "glslangValidator"

// glslangValidator exit codes.
const (
	exitSuccess     = 0
	exitFailUsage   = 1
	exitFailCompile = 2
	exitFailLink    = 3
)

// waitDelay bounds how long a killed validator may hold its output pipes.
const waitDelay = 2 * time.Second

// stdinName is the file name glslangValidator prints before the log of a
// source read from stdin.
const stdinName = "stdin"

// Exec is a backend running the glslangValidator binary.
type Exec struct {
	// Bin is the validator executable. Defaults to DefaultBinary.
	Bin string

	mu      sync.Mutex
	path    string
	workDir string
}

var _ backend.Backend = (*Exec)(nil)

// NewExec returns an Exec backend for bin, or DefaultBinary when bin is empty.
func NewExec(bin string) *Exec {
	if bin == "" {
		bin = DefaultBinary
	}
	return &Exec{Bin: bin}
}

// Name implements backend.Backend.
func (e *Exec) Name() string { return "glslangValidator" }

// InitProcess resolves the validator binary and creates the directory that
// holds per-compile resource files.
func (e *Exec) InitProcess(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	bin := e.Bin
	if bin == "" {
		bin = DefaultBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("glslang: locate %s: %w", bin, err)
	}
	dir, err := os.MkdirTemp("", "shadercheck-")
	if err != nil {
		return fmt.Errorf("glslang: create work dir: %w", err)
	}
	e.path = path
	e.workDir = dir
	return nil
}

// FinalizeProcess removes the work directory.
func (e *Exec) FinalizeProcess(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.workDir == "" {
		return nil
	}
	err := os.RemoveAll(e.workDir)
	e.workDir = ""
	e.path = ""
	if err != nil {
		return fmt.Errorf("glslang: remove work dir: %w", err)
	}
	return nil
}

// InitThread is a no-op: every compile runs in its own process.
func (e *Exec) InitThread() error { return nil }

// DetachThread is a no-op.
func (e *Exec) DetachThread() error { return nil }

// Compile runs the validator on req.Source.
func (e *Exec) Compile(ctx context.Context, req backend.Request) (backend.Output, error) {
	if !req.Stage.Valid() {
		return backend.Output{}, backend.ErrInvalidStage
	}

	e.mu.Lock()
	path, dir := e.path, e.workDir
	e.mu.Unlock()
	if path == "" {
		return backend.Output{}, errors.New("glslang: backend not initialized")
	}

	conf, err := os.CreateTemp(dir, "limits-*.conf")
	if err != nil {
		return backend.Output{}, fmt.Errorf("glslang: create resource file: %w", err)
	}
	defer os.Remove(conf.Name())
	if err := req.Caps.WriteConf(conf); err != nil {
		conf.Close()
		return backend.Output{}, fmt.Errorf("glslang: write resource file: %w", err)
	}
	if err := conf.Close(); err != nil {
		return backend.Output{}, fmt.Errorf("glslang: write resource file: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, Args(req, conf.Name())...) //nolint:gosec // G204: path resolved at init, args built here
	cmd.Stdin = strings.NewReader(req.Source)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	code := exitSuccess
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			return backend.Output{}, fmt.Errorf("glslang: run %s: %w", filepath.Base(path), err)
		}
		code = exitErr.ExitCode()
	}

	log := cutLinkLog(stripBanner(string(out)))
	switch code {
	case exitSuccess, exitFailLink:
		// The validator always links; only the parse result counts.
		return backend.Output{OK: true, Log: log}, nil
	case exitFailCompile:
		return backend.Output{OK: false, Log: log}, nil
	default:
		msg := strings.TrimSpace(stderr.String() + "\n" + log)
		return backend.Output{}, fmt.Errorf("glslang: %s failed (%s): %s", filepath.Base(path), exitCodeName(code), msg)
	}
}

// Args returns the glslangValidator arguments for req. confPath names the
// resource file written from req.Caps.
func Args(req backend.Request, confPath string) []string {
	args := []string{
		"--stdin",
		"-S", req.Stage.String(),
	}
	if req.DefaultVersion == 110 && req.DefaultProfile != backend.ProfileES {
		// -d switches the default version from 100 to 110.
		args = append(args, "-d")
	}
	if req.EntryPoint != "" && req.EntryPoint != "main" {
		args = append(args, "-e", req.EntryPoint)
	}
	if req.DebugInfo {
		args = append(args, "-g")
	}
	return append(args, confPath)
}

// stripBanner drops the source name line glslangValidator prints first.
// Its exit code is the only success signal, so an output holding nothing
// but the banner is an empty log.
func stripBanner(out string) string {
	out = strings.ReplaceAll(out, "\r\n", "\n")
	if rest, ok := strings.CutPrefix(out, stdinName+"\n"); ok {
		out = rest
	} else if out == stdinName {
		out = ""
	}
	return strings.TrimRight(out, "\n")
}

// cutLinkLog drops the link-stage section the validator appends after the
// parse log. It starts at the first "Linked <stage> stage:" header or
// "<SEVERITY>: Linking <stage> stage:" entry.
func cutLinkLog(log string) string {
	lines := strings.SplitAfter(log, "\n")
	for i, line := range lines {
		if isLinkLine(strings.TrimRight(line, "\n")) {
			return strings.TrimRight(strings.Join(lines[:i], ""), "\n")
		}
	}
	return log
}

func isLinkLine(line string) bool {
	if strings.HasPrefix(line, "Linked ") && strings.HasSuffix(line, " stage:") {
		return true
	}
	sev, rest, ok := strings.Cut(line, ": ")
	return ok && strings.HasPrefix(rest, "Linking ") && strings.ToUpper(sev) == sev
}

func exitCodeName(code int) string {
	switch code {
	case exitSuccess:
		return "success"
	case exitFailUsage:
		return "usage"
	case exitFailCompile:
		return "compile"
	case exitFailLink:
		return "link"
	default:
		return strconv.Itoa(code)
	}
}
