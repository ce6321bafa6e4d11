//go:build cgo

package main

/*
#include <stdlib.h>

typedef void (*shadercheck_respond_fn)(const char* message);

static inline void shadercheck_respond(shadercheck_respond_fn fn, const char* message) {
	fn(message);
}
*/
import "C"

import (
	"context"
	"os"
	"testing"
	"unsafe"
)

var lib bridge

func init() {
	if testing.Testing() {
		return
	}
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		lib.initErr = err
		return
	}
	_ = lib.start(context.Background(), cfg, os.Stderr) // reported by compile_shader
}

//export compile_shader
func compile_shader(src *C.char, stage C.int, respond C.shadercheck_respond_fn) {
	reply := func(msg string) {
		cmsg := C.CString(msg)
		defer C.free(unsafe.Pointer(cmsg))
		C.shadercheck_respond(respond, cmsg)
	}
	if src == nil {
		reply("ERROR: shadercheck: null source")
		return
	}
	lib.compile(context.Background(), C.GoString(src), int32(stage), reply)
}

//export shadercheck_initialize
func shadercheck_initialize() C.int {
	cfg, err := loadConfig(os.Getenv)
	if err == nil {
		err = lib.start(context.Background(), cfg, os.Stderr)
	}
	if err != nil {
		return -1
	}
	return 0
}

//export shadercheck_shutdown
func shadercheck_shutdown() C.int {
	if err := lib.stop(context.Background()); err != nil {
		return -1
	}
	return 0
}
