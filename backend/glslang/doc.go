// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glslang validates GLSL with the Khronos reference compiler.
//
// Two backends are provided:
//
//   - Exec runs the glslangValidator binary once per compile, feeding the
//     source on stdin and the resource table as a .conf file.
//   - Native links glslang's C interface through cgo. It is only built
//     with the "glslang" build tag and needs glslang installed where
//     pkg-config can find it.
//
// Both report the compiler's info log unchanged, so the log of one backend
// can be parsed by package diag like the other's.
package glslang
