package shadercheck

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/gogpu/shadercheck/source"
)

// Thread is a goroutine locked to an OS thread on which the compiler's
// thread state has been initialized. A Thread is not safe for concurrent
// use.
type Thread struct {
	svc      *Service
	detached bool
}

// Compile validates source for stage. StageUnknown validates as fragment.
//
// The returned error reports environment failures only: a detached
// thread, a canceled context or a compiler that could not run. A rejected
// shader is a successful call with a non-empty Result.Log.
func (t *Thread) Compile(ctx context.Context, src string, stage Stage) (Result, error) {
	if t.detached {
		return Result{}, ErrDetached
	}
	opts := &t.svc.opts
	stage = resolve(stage)
	if !stage.Valid() {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownStage, stage)
	}

	text, err := source.String(src)
	if err != nil {
		return Result{}, fmt.Errorf("shadercheck: decode source: %w", err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	b := opts.Backend
	out, err := b.Compile(ctx, opts.request(text.Source, stage))
	if err != nil {
		return Result{}, fmt.Errorf("shadercheck: %s: %w", b.Name(), err)
	}

	res := Result{Stage: stage}
	switch {
	case out.OK:
		res.Warnings = out.Log
	case out.Log == "":
		res.Log = noDiagnostics
	default:
		res.Log = out.Log
	}

	if l := Logger(); l.Enabled(ctx, slog.LevelDebug) {
		l.Debug("shadercheck: compiled",
			slog.String("backend", b.Name()),
			slog.String("stage", stage.String()),
			slog.String("encoding", text.Encoding.String()),
			slog.Bool("ok", res.OK()),
			slog.Int("log_bytes", len(res.Log)))
	}
	return res, nil
}

// Detach finalizes the compiler's thread state and unpins the goroutine.
// Detach is idempotent.
func (t *Thread) Detach() error {
	if t.detached {
		return nil
	}
	t.detached = true
	defer t.svc.release()
	defer runtime.UnlockOSThread()

	b := t.svc.opts.Backend
	if err := b.DetachThread(); err != nil {
		Logger().Warn("shadercheck: detach thread failed", slog.String("backend", b.Name()), slog.Any("error", err))
		return fmt.Errorf("shadercheck: %s: detach thread: %w", b.Name(), err)
	}
	return nil
}
