// Package shadercheck validates shader sources and reports the compiler's
// diagnostics.
//
// shadercheck wraps a shader compiler, glslang by default, behind a small
// lifecycle: a Service initializes the compiler's process state, every OS
// thread that compiles attaches a Thread, and the Service finalizes the
// compiler once all threads have detached.
//
// Example usage:
//
//	svc := shadercheck.New()
//	if err := svc.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Shutdown(ctx)
//
//	res, err := svc.Compile(ctx, "#version 450\nvoid main(){}", shadercheck.StageVertex)
//	if err != nil {
//	    log.Fatal(err) // the compiler could not run
//	}
//	if !res.OK() {
//	    fmt.Println(res.Log) // the shader was rejected
//	}
//
// Callers crossing a C boundary use the callback form, Service.Respond,
// which reports success as an empty string and failure as the log.
package shadercheck

import (
	"context"
	"errors"

	"github.com/gogpu/shadercheck/diag"
)

// noDiagnostics is reported when a compiler rejects a source without
// writing a log, so that an empty log always means success.
const noDiagnostics = "ERROR: compilation failed without diagnostics"

// Result is the outcome of one compile.
type Result struct {
	// Stage is the stage the source was validated for.
	Stage Stage

	// Log is the compiler's diagnostic log. It is empty exactly when the
	// source validated.
	Log string

	// Warnings holds the log of a successful compile, if the compiler wrote one.
	Warnings string
}

// OK reports whether the source validated.
func (r Result) OK() bool { return r.Log == "" }

// Diagnostics parses the log, or the warnings of a successful compile.
func (r Result) Diagnostics() diag.List {
	if r.OK() {
		return diag.Parse(r.Warnings)
	}
	return diag.Parse(r.Log)
}

// Err returns the diagnostics as an error, or nil on success.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	if l := r.Diagnostics(); l.HasErrors() {
		return l
	}
	return errors.New(r.Log)
}

// Validate compiles source once on a service of its own. It is meant for
// one-off checks; long-lived callers should keep a Service.
func Validate(ctx context.Context, source string, stage Stage, opts ...Option) (res Result, err error) {
	svc := New(opts...)
	if err := svc.Initialize(ctx); err != nil {
		return Result{}, err
	}
	defer func() {
		if serr := svc.Shutdown(ctx); serr != nil && err == nil {
			err = serr
		}
	}()
	return svc.Compile(ctx, source, stage)
}
