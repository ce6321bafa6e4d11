package shadercheck

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shadercheck/backend/glslang"
)

// respondOnce calls svc.Respond and returns every message it reported.
func respondOnce(svc *Service, src string, tag int32) []string {
	var got []string
	svc.Respond(context.Background(), src, tag, func(msg string) {
		got = append(got, msg)
	})
	return got
}

func TestRespondExactlyOnce(t *testing.T) {
	svc := newRunning(t, &fakeBackend{})

	for _, src := range []string{"void main(){}", "bad"} {
		for _, tag := range []int32{-1, 0, 1, 2, 3, 4, 99} {
			got := respondOnce(svc, src, tag)
			require.Len(t, got, 1, "source %q tag %d", src, tag)
			assert.Equal(t, src == "bad", got[0] != "", "source %q tag %d", src, tag)
		}
	}
}

func TestRespondStageFallback(t *testing.T) {
	f := &fakeBackend{}
	svc := newRunning(t, f)

	for _, tag := range []int32{0, 4, 99, -1} {
		respondOnce(svc, "void main(){}", tag)
		assert.Equal(t, StageFragment, f.lastRequest().Stage, "tag %d", tag)
	}
	respondOnce(svc, "void main(){}", 3)
	assert.Equal(t, StageCompute, f.lastRequest().Stage)
}

func TestRespondStrictStages(t *testing.T) {
	f := &fakeBackend{}
	svc := newRunning(t, f, WithStrictStages())

	got := respondOnce(svc, "void main(){}", 99)
	require.Len(t, got, 1)
	assert.Equal(t, "ERROR: shadercheck: unknown shader stage: tag 99", got[0])

	got = respondOnce(svc, "void main(){}", 0)
	assert.Equal(t, []string{""}, got)
}

func TestRespondEnvironmentError(t *testing.T) {
	svc := New(WithBackend(&fakeBackend{}))

	got := respondOnce(svc, "void main(){}", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "ERROR: shadercheck: service not initialized", got[0])
}

func TestRespondDeterministic(t *testing.T) {
	svc := newRunning(t, &fakeBackend{})
	first := respondOnce(svc, "bad", 2)
	second := respondOnce(svc, "bad", 2)
	assert.Equal(t, first, second)
}

// referenceService returns a running service on the real glslangValidator,
// skipping the test when it is not installed.
func referenceService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	if _, err := exec.LookPath(glslang.DefaultBinary); err != nil {
		t.Skip("glslangValidator not found; skipping reference compiler check")
	}
	svc := New(opts...)
	require.NoError(t, svc.Initialize(context.Background()))
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })
	return svc
}

func TestRespondScenarios(t *testing.T) {
	svc := referenceService(t)

	const fragment = "#version 450\nout vec4 c; void main(){c=vec4(1,0,1,1);}\x00"
	tests := []struct {
		name   string
		source string
		tag    int32
		ok     bool
	}{
		{"empty vertex shader", "#version 450\nvoid main(){}\x00", 1, true},
		{"fragment shader", fragment, 2, true},
		{"not glsl", "this is not glsl", 2, false},
		{"fragment source as compute", fragment, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := respondOnce(svc, tt.source, tt.tag)
			require.Len(t, got, 1)
			if tt.ok {
				assert.Empty(t, got[0])
				return
			}
			assert.Contains(t, got[0], "ERROR")
		})
	}
}

func TestRespondUnknownTagMatchesZero(t *testing.T) {
	svc := referenceService(t)

	for _, src := range []string{
		"#version 450\nout vec4 c; void main(){c=vec4(1,0,1,1);}",
		"#version 450\nvoid main(){ gl_Position = vec4(0); }",
		"this is not glsl",
	} {
		assert.Equal(t, respondOnce(svc, src, 0), respondOnce(svc, src, 99), "source %q", src)
	}
}
