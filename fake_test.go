package shadercheck

import (
	"context"
	"strings"
	"sync"

	"github.com/gogpu/shadercheck/backend"
)

// fakeBackend records lifecycle calls and requests. Sources containing
// "bad" fail with a fixed log.
type fakeBackend struct {
	mu       sync.Mutex
	calls    []string
	requests []backend.Request
	deadline bool

	initErr    error
	threadErr  error
	detachErr  error
	finalErr   error
	compileErr error
	compile    func(backend.Request) backend.Output
}

var _ backend.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) InitProcess(context.Context) error {
	f.record("init-process")
	return f.initErr
}

func (f *fakeBackend) FinalizeProcess(context.Context) error {
	f.record("finalize-process")
	return f.finalErr
}

func (f *fakeBackend) InitThread() error {
	f.record("init-thread")
	return f.threadErr
}

func (f *fakeBackend) DetachThread() error {
	f.record("detach-thread")
	return f.detachErr
}

func (f *fakeBackend) Compile(ctx context.Context, req backend.Request) (backend.Output, error) {
	f.record("compile")
	f.mu.Lock()
	f.requests = append(f.requests, req)
	_, f.deadline = ctx.Deadline()
	f.mu.Unlock()

	if f.compileErr != nil {
		return backend.Output{}, f.compileErr
	}
	if f.compile != nil {
		return f.compile(req), nil
	}
	if strings.Contains(req.Source, "bad") {
		return backend.Output{Log: "ERROR: 0:1: 'bad' : syntax error\nERROR: 1 compilation errors.  No code generated."}, nil
	}
	return backend.Output{OK: true}, nil
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) lastRequest() backend.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}
