// Command glslbridge builds shadercheck as a C shared library.
//
// Build:
//
//	go build -buildmode=c-shared -o glslbridge.so ./cmd/glslbridge
//	go build -buildmode=c-shared -tags glslang -o glslbridge.so ./cmd/glslbridge   # link glslang directly
//
// The library exports:
//
//	void compile_shader(const char* source, int stage, shadercheck_respond_fn respond);
//	int  shadercheck_initialize(void);
//	int  shadercheck_shutdown(void);
//
// The compiler is initialized when the library is loaded. Hosts call
// shadercheck_shutdown before unloading it. Every compile_shader call sets
// up and tears down compiler thread state on the calling thread, so no
// per-thread registration is needed.
//
// Environment, read once at load:
//
//	SHADERCHECK_GLSLANG  glslangValidator executable (default: found on PATH)
//	SHADERCHECK_LOG      log level for stderr: debug, info, warn or error (default: silent)
package main

func main() {}
