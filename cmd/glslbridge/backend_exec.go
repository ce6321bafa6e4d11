//go:build !(cgo && glslang)

package main

import (
	"github.com/gogpu/shadercheck"
	"github.com/gogpu/shadercheck/backend/glslang"
)

func newService(c config, opts ...shadercheck.Option) *shadercheck.Service {
	base := []shadercheck.Option{shadercheck.WithBackend(glslang.NewExec(c.validator))}
	return shadercheck.New(append(base, opts...)...)
}
