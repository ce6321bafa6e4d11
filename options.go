package shadercheck

import (
	"time"

	"github.com/gogpu/shadercheck/backend"
	"github.com/gogpu/shadercheck/backend/glslang"
	"github.com/gogpu/shadercheck/caps"
)

// Options configures a Service.
type Options struct {
	// Backend is the compiler. Default: glslangValidator on PATH.
	Backend backend.Backend

	// StagePolicy resolves unrecognized stage tags. Default: StageFallback.
	StagePolicy StagePolicy

	// Caps builds the resource table, once per compile. Default: caps.Default.
	Caps func() caps.Capabilities

	// EntryPoint is the entry function name (default: "main").
	EntryPoint string

	// DefaultVersion and DefaultProfile apply to sources without #version
	// (default: 100, compatibility).
	DefaultVersion int
	DefaultProfile backend.Profile

	ForwardCompatible bool

	// DebugInfo requests debug-level compiler messages (default: true).
	DebugInfo bool

	// Timeout bounds a single compile. Zero means no limit.
	Timeout time.Duration
}

// DefaultOptions returns the settings the C bridge has always used.
func DefaultOptions() Options {
	return Options{
		StagePolicy:    StageFallback,
		Caps:           caps.Default,
		EntryPoint:     "main",
		DefaultVersion: 100,
		DefaultProfile: backend.ProfileCompatibility,
		DebugInfo:      true,
	}
}

// Option adjusts Options.
type Option func(*Options)

// WithBackend selects the compiler backend.
func WithBackend(b backend.Backend) Option {
	return func(o *Options) { o.Backend = b }
}

// WithStrictStages rejects unrecognized stage tags instead of validating
// them as fragment shaders.
func WithStrictStages() Option {
	return func(o *Options) { o.StagePolicy = StrictStages }
}

// WithCapabilities validates against c instead of the default table.
func WithCapabilities(c caps.Capabilities) Option {
	return func(o *Options) {
		o.Caps = func() caps.Capabilities { return c }
	}
}

// WithEntryPoint sets the entry function name.
func WithEntryPoint(name string) Option {
	return func(o *Options) { o.EntryPoint = name }
}

// WithTimeout bounds every compile.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithDebugInfo toggles debug-level compiler messages.
func WithDebugInfo(on bool) Option {
	return func(o *Options) { o.DebugInfo = on }
}

func (o *Options) fill() {
	if o.Backend == nil {
		o.Backend = glslang.NewExec("")
	}
	if o.Caps == nil {
		o.Caps = caps.Default
	}
	if o.EntryPoint == "" {
		o.EntryPoint = "main"
	}
}

func (o *Options) request(src string, stage Stage) backend.Request {
	return backend.Request{
		Source:            src,
		Stage:             stage,
		Caps:              o.Caps(),
		EntryPoint:        o.EntryPoint,
		DefaultVersion:    o.DefaultVersion,
		DefaultProfile:    o.DefaultProfile,
		ForwardCompatible: o.ForwardCompatible,
		DebugInfo:         o.DebugInfo,
	}
}
