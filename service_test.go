package shadercheck

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadercheck/backend"
	"github.com/gogpu/shadercheck/caps"
)

func newRunning(t *testing.T, f *fakeBackend, opts ...Option) *Service {
	t.Helper()
	svc := New(append([]Option{WithBackend(f)}, opts...)...)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestLifecycleOrder(t *testing.T) {
	ctx := context.Background()
	f := &fakeBackend{}
	svc := newRunning(t, f)
	require.NoError(t, svc.Initialize(ctx), "second Initialize is a no-op")

	_, err := svc.Compile(ctx, "void main(){}", StageVertex)
	require.NoError(t, err)
	require.NoError(t, svc.Shutdown(ctx))
	require.NoError(t, svc.Shutdown(ctx), "second Shutdown is a no-op")

	want := []string{"init-process", "init-thread", "compile", "detach-thread", "finalize-process"}
	assert.Equal(t, want, f.Calls())
}

func TestUseBeforeInitialize(t *testing.T) {
	svc := New(WithBackend(&fakeBackend{}))

	_, err := svc.Attach()
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = svc.Compile(context.Background(), "", StageFragment)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, svc.Shutdown(context.Background()), ErrNotInitialized)
}

func TestUseAfterShutdown(t *testing.T) {
	ctx := context.Background()
	svc := newRunning(t, &fakeBackend{})
	require.NoError(t, svc.Shutdown(ctx))

	_, err := svc.Attach()
	assert.ErrorIs(t, err, ErrShutdown)
	assert.ErrorIs(t, svc.Initialize(ctx), ErrShutdown)
}

func TestInitializeFailure(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("no compiler")
	f := &fakeBackend{initErr: cause}
	svc := New(WithBackend(f))

	err := svc.Initialize(ctx)
	assert.ErrorIs(t, err, ErrInitFailed)
	assert.ErrorIs(t, err, cause)
	_, err = svc.Attach()
	assert.ErrorIs(t, err, ErrNotInitialized, "failed Initialize leaves the service unusable")

	f.initErr = nil
	require.NoError(t, svc.Initialize(ctx), "Initialize may be retried")
}

func TestShutdownWithAttachedThread(t *testing.T) {
	ctx := context.Background()
	f := &fakeBackend{}
	svc := newRunning(t, f)

	th, err := svc.Attach()
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Attached())
	assert.ErrorIs(t, svc.Shutdown(ctx), ErrThreadsAttached)

	require.NoError(t, th.Detach())
	require.NoError(t, th.Detach(), "Detach is idempotent")
	assert.Equal(t, 0, svc.Attached())
	require.NoError(t, svc.Shutdown(ctx))
	assert.Equal(t, []string{"init-process", "init-thread", "detach-thread", "finalize-process"}, f.Calls())
}

func TestThreadInitFailure(t *testing.T) {
	cause := errors.New("tls exhausted")
	svc := newRunning(t, &fakeBackend{threadErr: cause})

	_, err := svc.Attach()
	assert.ErrorIs(t, err, ErrThreadInitFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, svc.Attached())
}

func TestDetachFailureStillReleases(t *testing.T) {
	svc := newRunning(t, &fakeBackend{detachErr: errors.New("boom")})
	th, err := svc.Attach()
	require.NoError(t, err)

	assert.Error(t, th.Detach())
	assert.Equal(t, 0, svc.Attached())
	require.NoError(t, svc.Shutdown(context.Background()))
}

func TestShutdownFailure(t *testing.T) {
	cause := errors.New("leak")
	svc := newRunning(t, &fakeBackend{finalErr: cause})

	err := svc.Shutdown(context.Background())
	assert.ErrorIs(t, err, ErrShutdownFailed)
	assert.ErrorIs(t, err, cause)
	_, err = svc.Attach()
	assert.ErrorIs(t, err, ErrShutdown)
}

func TestDetachedThread(t *testing.T) {
	svc := newRunning(t, &fakeBackend{})
	th, err := svc.Attach()
	require.NoError(t, err)
	require.NoError(t, th.Detach())

	_, err = th.Compile(context.Background(), "void main(){}", StageFragment)
	assert.ErrorIs(t, err, ErrDetached)
}

func TestCompileRequest(t *testing.T) {
	f := &fakeBackend{}
	svc := newRunning(t, f)

	res, err := svc.Compile(context.Background(), "#version 450\nvoid main(){}\x00", StageVertex)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, StageVertex, res.Stage)

	req := f.lastRequest()
	assert.Equal(t, "#version 450\nvoid main(){}", req.Source, "source is cut at NUL")
	assert.Equal(t, StageVertex, req.Stage)
	assert.Equal(t, "main", req.EntryPoint)
	assert.Equal(t, 100, req.DefaultVersion)
	assert.Equal(t, backend.ProfileCompatibility, req.DefaultProfile)
	assert.False(t, req.ForwardCompatible)
	assert.True(t, req.DebugInfo)
	assert.Equal(t, caps.Default(), req.Caps)
}

func TestCompileFailureLog(t *testing.T) {
	svc := newRunning(t, &fakeBackend{})

	res, err := svc.Compile(context.Background(), "bad", StageFragment)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Contains(t, res.Log, "syntax error")

	diags := res.Diagnostics()
	require.Len(t, diags.Errors(), 1)
	assert.Equal(t, 1, diags.Errors()[0].Pos.Line)
	assert.Error(t, res.Err())
}

func TestCompileFailureWithoutLog(t *testing.T) {
	f := &fakeBackend{compile: func(backend.Request) backend.Output { return backend.Output{} }}
	svc := newRunning(t, f)

	res, err := svc.Compile(context.Background(), "x", StageFragment)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, noDiagnostics, res.Log)
	assert.Error(t, res.Err())
}

func TestCompileWarningsOnSuccess(t *testing.T) {
	f := &fakeBackend{compile: func(backend.Request) backend.Output {
		return backend.Output{OK: true, Log: "WARNING: 0:1: '#extension' : extension not supported"}
	}}
	svc := newRunning(t, f)

	res, err := svc.Compile(context.Background(), "x", StageFragment)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Empty(t, res.Log)
	assert.Len(t, res.Diagnostics().Warnings(), 1)
	assert.NoError(t, res.Err())
}

func TestCompileBackendError(t *testing.T) {
	cause := errors.New("validator crashed")
	svc := newRunning(t, &fakeBackend{compileErr: cause})

	_, err := svc.Compile(context.Background(), "x", StageFragment)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, svc.Attached(), "thread detached on error")
}

func TestCompileUnknownStage(t *testing.T) {
	f := &fakeBackend{}
	svc := newRunning(t, f)

	res, err := svc.Compile(context.Background(), "x", StageUnknown)
	require.NoError(t, err)
	assert.Equal(t, StageFragment, res.Stage)

	_, err = svc.Compile(context.Background(), "x", Stage(9))
	assert.ErrorIs(t, err, ErrUnknownStage)
}

func TestCompileTimeout(t *testing.T) {
	f := &fakeBackend{}
	svc := newRunning(t, f, WithTimeout(time.Second))
	_, err := svc.Compile(context.Background(), "x", StageFragment)
	require.NoError(t, err)
	assert.True(t, f.deadline)

	g := &fakeBackend{}
	svc = newRunning(t, g)
	_, err = svc.Compile(context.Background(), "x", StageFragment)
	require.NoError(t, err)
	assert.False(t, g.deadline)
}

func TestOptions(t *testing.T) {
	custom := caps.Default()
	custom.MaxDrawBuffers = 1
	f := &fakeBackend{}
	svc := newRunning(t, f, WithCapabilities(custom), WithEntryPoint("entry"), WithDebugInfo(false))

	_, err := svc.Compile(context.Background(), "x", StageFragment)
	require.NoError(t, err)
	req := f.lastRequest()
	assert.Equal(t, 1, req.Caps.MaxDrawBuffers)
	assert.Equal(t, "entry", req.EntryPoint)
	assert.False(t, req.DebugInfo)
}

func TestDefaultBackendIsValidator(t *testing.T) {
	svc := New()
	assert.Equal(t, "glslangValidator", svc.Options().Backend.Name())
}

func TestConcurrentCompile(t *testing.T) {
	f := &fakeBackend{}
	svc := newRunning(t, f)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Compile(context.Background(), "void main(){}", StageCompute)
			assert.NoError(t, err)
			assert.True(t, res.OK())
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, svc.Attached())
	require.NoError(t, svc.Shutdown(context.Background()))
}

func TestValidate(t *testing.T) {
	f := &fakeBackend{}
	res, err := Validate(context.Background(), "bad", StageFragment, WithBackend(f))
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, "finalize-process", f.Calls()[len(f.Calls())-1])
}
