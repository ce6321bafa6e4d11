// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build cgo && glslang

package glslang

/*
#cgo pkg-config: glslang
#include <stdlib.h>
#include <string.h>
#include <glslang/Include/glslang_c_interface.h>
*/
import "C"

import (
	"context"
	"errors"
	"unsafe"

	"github.com/gogpu/shadercheck/backend"
	"github.com/gogpu/shadercheck/caps"
)

// Native is a backend linking glslang's C interface.
//
// glslang keeps per-thread pool allocators. Callers must run InitThread,
// Compile and DetachThread on one locked OS thread, which is what
// shadercheck.Thread guarantees.
type Native struct{}

var _ backend.Backend = Native{}

// NewNative returns the cgo backend.
func NewNative() Native { return Native{} }

// Name implements backend.Backend.
func (Native) Name() string { return "glslang" }

// InitProcess initializes glslang's process state and its global symbol
// tables, in that order.
func (Native) InitProcess(ctx context.Context) error {
	if C.glslang_initialize_process() == 0 {
		return errors.New("glslang: initialize process failed")
	}
	return nil
}

// FinalizeProcess releases glslang's global state.
func (Native) FinalizeProcess(ctx context.Context) error {
	C.glslang_finalize_process()
	return nil
}

// InitThread is a no-op. The C interface allocates thread state lazily
// on the first compile of each thread.
func (Native) InitThread() error { return nil }

// DetachThread is a no-op for the same reason.
func (Native) DetachThread() error { return nil }

// Compile preprocesses and parses req.Source.
func (Native) Compile(ctx context.Context, req backend.Request) (backend.Output, error) {
	stage, ok := nativeStages[req.Stage]
	if !ok {
		return backend.Output{}, backend.ErrInvalidStage
	}
	if err := ctx.Err(); err != nil {
		return backend.Output{}, err
	}

	res := (*C.glslang_resource_t)(C.calloc(1, C.size_t(unsafe.Sizeof(C.glslang_resource_t{}))))
	if res == nil {
		return backend.Output{}, errors.New("glslang: out of memory")
	}
	defer C.free(unsafe.Pointer(res))
	fillResource(res, req.Caps)

	input := (*C.glslang_input_t)(C.calloc(1, C.size_t(unsafe.Sizeof(C.glslang_input_t{}))))
	if input == nil {
		return backend.Output{}, errors.New("glslang: out of memory")
	}
	defer C.free(unsafe.Pointer(input))

	code := C.CString(req.Source)
	defer C.free(unsafe.Pointer(code))

	input.language = C.GLSLANG_SOURCE_GLSL
	input.stage = stage
	input.client = C.GLSLANG_CLIENT_NONE
	input.target_language = C.GLSLANG_TARGET_NONE
	input.code = code
	input.default_version = C.int(req.DefaultVersion)
	input.default_profile = nativeProfiles[req.DefaultProfile]
	input.force_default_version_and_profile = 0
	input.forward_compatible = boolInt(req.ForwardCompatible)
	input.messages = C.GLSLANG_MSG_DEFAULT_BIT
	if req.DebugInfo {
		input.messages |= C.GLSLANG_MSG_DEBUG_INFO_BIT
	}
	input.resource = res

	shader := C.glslang_shader_create(input)
	if shader == nil {
		return backend.Output{}, errors.New("glslang: create shader failed")
	}
	defer C.glslang_shader_delete(shader)

	if req.EntryPoint != "" {
		entry := C.CString(req.EntryPoint)
		defer C.free(unsafe.Pointer(entry))
		C.glslang_shader_set_entry_point(shader, entry)
	}

	ok = C.glslang_shader_preprocess(shader, input) != 0 &&
		C.glslang_shader_parse(shader, input) != 0
	out := backend.Output{OK: ok}
	if !ok {
		out.Log = C.GoString(C.glslang_shader_get_info_log(shader))
	}
	return out, nil
}

var nativeStages = map[backend.Stage]C.glslang_stage_t{
	backend.StageVertex:   C.GLSLANG_STAGE_VERTEX,
	backend.StageFragment: C.GLSLANG_STAGE_FRAGMENT,
	backend.StageCompute:  C.GLSLANG_STAGE_COMPUTE,
}

var nativeProfiles = map[backend.Profile]C.glslang_profile_t{
	backend.ProfileNone:          C.GLSLANG_NO_PROFILE,
	backend.ProfileCore:          C.GLSLANG_CORE_PROFILE,
	backend.ProfileCompatibility: C.GLSLANG_COMPATIBILITY_PROFILE,
	backend.ProfileES:            C.GLSLANG_ES_PROFILE,
}

func boolInt(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// fillResource copies c into glslang's resource struct.
func fillResource(r *C.glslang_resource_t, c caps.Capabilities) {
	r.max_lights = C.int(c.MaxLights)
	r.max_clip_planes = C.int(c.MaxClipPlanes)
	r.max_texture_units = C.int(c.MaxTextureUnits)
	r.max_texture_coords = C.int(c.MaxTextureCoords)
	r.max_vertex_attribs = C.int(c.MaxVertexAttribs)
	r.max_vertex_uniform_components = C.int(c.MaxVertexUniformComponents)
	r.max_varying_floats = C.int(c.MaxVaryingFloats)
	r.max_vertex_texture_image_units = C.int(c.MaxVertexTextureImageUnits)
	r.max_combined_texture_image_units = C.int(c.MaxCombinedTextureImageUnits)
	r.max_texture_image_units = C.int(c.MaxTextureImageUnits)
	r.max_fragment_uniform_components = C.int(c.MaxFragmentUniformComponents)
	r.max_draw_buffers = C.int(c.MaxDrawBuffers)
	r.max_vertex_uniform_vectors = C.int(c.MaxVertexUniformVectors)
	r.max_varying_vectors = C.int(c.MaxVaryingVectors)
	r.max_fragment_uniform_vectors = C.int(c.MaxFragmentUniformVectors)
	r.max_vertex_output_vectors = C.int(c.MaxVertexOutputVectors)
	r.max_fragment_input_vectors = C.int(c.MaxFragmentInputVectors)
	r.min_program_texel_offset = C.int(c.MinProgramTexelOffset)
	r.max_program_texel_offset = C.int(c.MaxProgramTexelOffset)
	r.max_clip_distances = C.int(c.MaxClipDistances)
	r.max_compute_work_group_count_x = C.int(c.MaxComputeWorkGroupCountX)
	r.max_compute_work_group_count_y = C.int(c.MaxComputeWorkGroupCountY)
	r.max_compute_work_group_count_z = C.int(c.MaxComputeWorkGroupCountZ)
	r.max_compute_work_group_size_x = C.int(c.MaxComputeWorkGroupSizeX)
	r.max_compute_work_group_size_y = C.int(c.MaxComputeWorkGroupSizeY)
	r.max_compute_work_group_size_z = C.int(c.MaxComputeWorkGroupSizeZ)
	r.max_compute_uniform_components = C.int(c.MaxComputeUniformComponents)
	r.max_compute_texture_image_units = C.int(c.MaxComputeTextureImageUnits)
	r.max_compute_image_uniforms = C.int(c.MaxComputeImageUniforms)
	r.max_compute_atomic_counters = C.int(c.MaxComputeAtomicCounters)
	r.max_compute_atomic_counter_buffers = C.int(c.MaxComputeAtomicCounterBuffers)
	r.max_varying_components = C.int(c.MaxVaryingComponents)
	r.max_vertex_output_components = C.int(c.MaxVertexOutputComponents)
	r.max_geometry_input_components = C.int(c.MaxGeometryInputComponents)
	r.max_geometry_output_components = C.int(c.MaxGeometryOutputComponents)
	r.max_fragment_input_components = C.int(c.MaxFragmentInputComponents)
	r.max_image_units = C.int(c.MaxImageUnits)
	r.max_combined_image_units_and_fragment_outputs = C.int(c.MaxCombinedImageUnitsAndFragmentOutputs)
	r.max_combined_shader_output_resources = C.int(c.MaxCombinedShaderOutputResources)
	r.max_image_samples = C.int(c.MaxImageSamples)
	r.max_vertex_image_uniforms = C.int(c.MaxVertexImageUniforms)
	r.max_tess_control_image_uniforms = C.int(c.MaxTessControlImageUniforms)
	r.max_tess_evaluation_image_uniforms = C.int(c.MaxTessEvaluationImageUniforms)
	r.max_geometry_image_uniforms = C.int(c.MaxGeometryImageUniforms)
	r.max_fragment_image_uniforms = C.int(c.MaxFragmentImageUniforms)
	r.max_combined_image_uniforms = C.int(c.MaxCombinedImageUniforms)
	r.max_geometry_texture_image_units = C.int(c.MaxGeometryTextureImageUnits)
	r.max_geometry_output_vertices = C.int(c.MaxGeometryOutputVertices)
	r.max_geometry_total_output_components = C.int(c.MaxGeometryTotalOutputComponents)
	r.max_geometry_uniform_components = C.int(c.MaxGeometryUniformComponents)
	r.max_geometry_varying_components = C.int(c.MaxGeometryVaryingComponents)
	r.max_tess_control_input_components = C.int(c.MaxTessControlInputComponents)
	r.max_tess_control_output_components = C.int(c.MaxTessControlOutputComponents)
	r.max_tess_control_texture_image_units = C.int(c.MaxTessControlTextureImageUnits)
	r.max_tess_control_uniform_components = C.int(c.MaxTessControlUniformComponents)
	r.max_tess_control_total_output_components = C.int(c.MaxTessControlTotalOutputComponents)
	r.max_tess_evaluation_input_components = C.int(c.MaxTessEvaluationInputComponents)
	r.max_tess_evaluation_output_components = C.int(c.MaxTessEvaluationOutputComponents)
	r.max_tess_evaluation_texture_image_units = C.int(c.MaxTessEvaluationTextureImageUnits)
	r.max_tess_evaluation_uniform_components = C.int(c.MaxTessEvaluationUniformComponents)
	r.max_tess_patch_components = C.int(c.MaxTessPatchComponents)
	r.max_patch_vertices = C.int(c.MaxPatchVertices)
	r.max_tess_gen_level = C.int(c.MaxTessGenLevel)
	r.max_viewports = C.int(c.MaxViewports)
	r.max_vertex_atomic_counters = C.int(c.MaxVertexAtomicCounters)
	r.max_tess_control_atomic_counters = C.int(c.MaxTessControlAtomicCounters)
	r.max_tess_evaluation_atomic_counters = C.int(c.MaxTessEvaluationAtomicCounters)
	r.max_geometry_atomic_counters = C.int(c.MaxGeometryAtomicCounters)
	r.max_fragment_atomic_counters = C.int(c.MaxFragmentAtomicCounters)
	r.max_combined_atomic_counters = C.int(c.MaxCombinedAtomicCounters)
	r.max_atomic_counter_bindings = C.int(c.MaxAtomicCounterBindings)
	r.max_vertex_atomic_counter_buffers = C.int(c.MaxVertexAtomicCounterBuffers)
	r.max_tess_control_atomic_counter_buffers = C.int(c.MaxTessControlAtomicCounterBuffers)
	r.max_tess_evaluation_atomic_counter_buffers = C.int(c.MaxTessEvaluationAtomicCounterBuffers)
	r.max_geometry_atomic_counter_buffers = C.int(c.MaxGeometryAtomicCounterBuffers)
	r.max_fragment_atomic_counter_buffers = C.int(c.MaxFragmentAtomicCounterBuffers)
	r.max_combined_atomic_counter_buffers = C.int(c.MaxCombinedAtomicCounterBuffers)
	r.max_atomic_counter_buffer_size = C.int(c.MaxAtomicCounterBufferSize)
	r.max_transform_feedback_buffers = C.int(c.MaxTransformFeedbackBuffers)
	r.max_transform_feedback_interleaved_components = C.int(c.MaxTransformFeedbackInterleavedComponents)
	r.max_cull_distances = C.int(c.MaxCullDistances)
	r.max_combined_clip_and_cull_distances = C.int(c.MaxCombinedClipAndCullDistances)
	r.max_samples = C.int(c.MaxSamples)
	r.max_mesh_output_vertices_nv = C.int(c.MaxMeshOutputVerticesNV)
	r.max_mesh_output_primitives_nv = C.int(c.MaxMeshOutputPrimitivesNV)
	r.max_mesh_work_group_size_x_nv = C.int(c.MaxMeshWorkGroupSizeXNV)
	r.max_mesh_work_group_size_y_nv = C.int(c.MaxMeshWorkGroupSizeYNV)
	r.max_mesh_work_group_size_z_nv = C.int(c.MaxMeshWorkGroupSizeZNV)
	r.max_task_work_group_size_x_nv = C.int(c.MaxTaskWorkGroupSizeXNV)
	r.max_task_work_group_size_y_nv = C.int(c.MaxTaskWorkGroupSizeYNV)
	r.max_task_work_group_size_z_nv = C.int(c.MaxTaskWorkGroupSizeZNV)
	r.max_mesh_view_count_nv = C.int(c.MaxMeshViewCountNV)

	r.limits.non_inductive_for_loops = C.bool(c.Limits.NonInductiveForLoops)
	r.limits.while_loops = C.bool(c.Limits.WhileLoops)
	r.limits.do_while_loops = C.bool(c.Limits.DoWhileLoops)
	r.limits.general_uniform_indexing = C.bool(c.Limits.GeneralUniformIndexing)
	r.limits.general_attribute_matrix_vector_indexing = C.bool(c.Limits.GeneralAttributeMatrixVectorIndexing)
	r.limits.general_varying_indexing = C.bool(c.Limits.GeneralVaryingIndexing)
	r.limits.general_sampler_indexing = C.bool(c.Limits.GeneralSamplerIndexing)
	r.limits.general_variable_indexing = C.bool(c.Limits.GeneralVariableIndexing)
	r.limits.general_constant_matrix_vector_indexing = C.bool(c.Limits.GeneralConstantMatrixVectorIndexing)
}
