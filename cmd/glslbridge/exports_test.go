//go:build cgo

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadHookSkippedInTests(t *testing.T) {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	assert.Nil(t, lib.svc, "no compiler work directory is created by the test binary")
	assert.NoError(t, lib.initErr)
}
