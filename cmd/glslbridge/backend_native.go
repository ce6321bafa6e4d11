//go:build cgo && glslang

package main

import (
	"github.com/gogpu/shadercheck"
	"github.com/gogpu/shadercheck/backend/glslang"
)

func newService(_ config, opts ...shadercheck.Option) *shadercheck.Service {
	base := []shadercheck.Option{shadercheck.WithBackend(glslang.NewNative())}
	return shadercheck.New(append(base, opts...)...)
}
