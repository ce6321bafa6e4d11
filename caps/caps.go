// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package caps holds the resource limits a shader is validated against.
//
// The field set follows glslang's built-in resource table. Names in the
// configuration format are the ones glslangValidator reads from a .conf file.
package caps

// Capabilities is the per-compile resource table.
type Capabilities struct {
	// Fixed-function
	MaxLights        int
	MaxClipPlanes    int
	MaxTextureUnits  int
	MaxTextureCoords int

	// Vertex
	MaxVertexAttribs             int
	MaxVertexUniformComponents   int
	MaxVaryingFloats             int
	MaxVertexTextureImageUnits   int
	MaxCombinedTextureImageUnits int
	MaxTextureImageUnits         int
	MaxFragmentUniformComponents int
	MaxDrawBuffers               int
	MaxVertexUniformVectors      int
	MaxVaryingVectors            int
	MaxFragmentUniformVectors    int
	MaxVertexOutputVectors       int
	MaxFragmentInputVectors      int
	MinProgramTexelOffset        int
	MaxProgramTexelOffset        int
	MaxClipDistances             int

	// Compute
	MaxComputeWorkGroupCountX      int
	MaxComputeWorkGroupCountY      int
	MaxComputeWorkGroupCountZ      int
	MaxComputeWorkGroupSizeX       int
	MaxComputeWorkGroupSizeY       int
	MaxComputeWorkGroupSizeZ       int
	MaxComputeUniformComponents    int
	MaxComputeTextureImageUnits    int
	MaxComputeImageUniforms        int
	MaxComputeAtomicCounters       int
	MaxComputeAtomicCounterBuffers int

	// Interface
	MaxVaryingComponents        int
	MaxVertexOutputComponents   int
	MaxGeometryInputComponents  int
	MaxGeometryOutputComponents int
	MaxFragmentInputComponents  int

	// Images
	MaxImageUnits                           int
	MaxCombinedImageUnitsAndFragmentOutputs int
	MaxCombinedShaderOutputResources        int
	MaxImageSamples                         int
	MaxVertexImageUniforms                  int
	MaxTessControlImageUniforms             int
	MaxTessEvaluationImageUniforms          int
	MaxGeometryImageUniforms                int
	MaxFragmentImageUniforms                int
	MaxCombinedImageUniforms                int

	// Geometry
	MaxGeometryTextureImageUnits     int
	MaxGeometryOutputVertices        int
	MaxGeometryTotalOutputComponents int
	MaxGeometryUniformComponents     int
	MaxGeometryVaryingComponents     int

	// Tessellation
	MaxTessControlInputComponents       int
	MaxTessControlOutputComponents      int
	MaxTessControlTextureImageUnits     int
	MaxTessControlUniformComponents     int
	MaxTessControlTotalOutputComponents int
	MaxTessEvaluationInputComponents    int
	MaxTessEvaluationOutputComponents   int
	MaxTessEvaluationTextureImageUnits  int
	MaxTessEvaluationUniformComponents  int
	MaxTessPatchComponents              int
	MaxPatchVertices                    int
	MaxTessGenLevel                     int
	MaxViewports                        int

	// Atomic counters
	MaxVertexAtomicCounters               int
	MaxTessControlAtomicCounters          int
	MaxTessEvaluationAtomicCounters       int
	MaxGeometryAtomicCounters             int
	MaxFragmentAtomicCounters             int
	MaxCombinedAtomicCounters             int
	MaxAtomicCounterBindings              int
	MaxVertexAtomicCounterBuffers         int
	MaxTessControlAtomicCounterBuffers    int
	MaxTessEvaluationAtomicCounterBuffers int
	MaxGeometryAtomicCounterBuffers       int
	MaxFragmentAtomicCounterBuffers       int
	MaxCombinedAtomicCounterBuffers       int
	MaxAtomicCounterBufferSize            int

	// Transform feedback
	MaxTransformFeedbackBuffers               int
	MaxTransformFeedbackInterleavedComponents int
	MaxCullDistances                          int
	MaxCombinedClipAndCullDistances           int
	MaxSamples                                int

	// NV mesh and task shaders
	MaxMeshOutputVerticesNV   int
	MaxMeshOutputPrimitivesNV int
	MaxMeshWorkGroupSizeXNV   int
	MaxMeshWorkGroupSizeYNV   int
	MaxMeshWorkGroupSizeZNV   int
	MaxTaskWorkGroupSizeXNV   int
	MaxTaskWorkGroupSizeYNV   int
	MaxTaskWorkGroupSizeZNV   int
	MaxMeshViewCountNV        int

	Limits Limits
}

// Limits are the feature toggles of the resource table.
type Limits struct {
	NonInductiveForLoops                 bool
	WhileLoops                           bool
	DoWhileLoops                         bool
	GeneralUniformIndexing               bool
	GeneralAttributeMatrixVectorIndexing bool
	GeneralVaryingIndexing               bool
	GeneralSamplerIndexing               bool
	GeneralVariableIndexing              bool
	GeneralConstantMatrixVectorIndexing  bool
}

// Default returns the desktop-GL-class table used for every compile.
func Default() Capabilities {
	return Capabilities{
		MaxLights:        32,
		MaxClipPlanes:    6,
		MaxTextureUnits:  32,
		MaxTextureCoords: 32,

		MaxVertexAttribs:             64,
		MaxVertexUniformComponents:   4096,
		MaxVaryingFloats:             64,
		MaxVertexTextureImageUnits:   32,
		MaxCombinedTextureImageUnits: 80,
		MaxTextureImageUnits:         32,
		MaxFragmentUniformComponents: 4096,
		MaxDrawBuffers:               32,
		MaxVertexUniformVectors:      128,
		MaxVaryingVectors:            8,
		MaxFragmentUniformVectors:    16,
		MaxVertexOutputVectors:       16,
		MaxFragmentInputVectors:      15,
		MinProgramTexelOffset:        -8,
		MaxProgramTexelOffset:        7,
		MaxClipDistances:             8,

		MaxComputeWorkGroupCountX:      65535,
		MaxComputeWorkGroupCountY:      65535,
		MaxComputeWorkGroupCountZ:      65535,
		MaxComputeWorkGroupSizeX:       1024,
		MaxComputeWorkGroupSizeY:       1024,
		MaxComputeWorkGroupSizeZ:       64,
		MaxComputeUniformComponents:    1024,
		MaxComputeTextureImageUnits:    16,
		MaxComputeImageUniforms:        8,
		MaxComputeAtomicCounters:       8,
		MaxComputeAtomicCounterBuffers: 1,

		MaxVaryingComponents:        60,
		MaxVertexOutputComponents:   64,
		MaxGeometryInputComponents:  64,
		MaxGeometryOutputComponents: 128,
		MaxFragmentInputComponents:  128,

		MaxImageUnits:                           8,
		MaxCombinedImageUnitsAndFragmentOutputs: 8,
		MaxCombinedShaderOutputResources:        8,
		MaxImageSamples:                         0,
		MaxVertexImageUniforms:                  0,
		MaxTessControlImageUniforms:             0,
		MaxTessEvaluationImageUniforms:          0,
		MaxGeometryImageUniforms:                0,
		MaxFragmentImageUniforms:                8,
		MaxCombinedImageUniforms:                8,

		MaxGeometryTextureImageUnits:     16,
		MaxGeometryOutputVertices:        256,
		MaxGeometryTotalOutputComponents: 1024,
		MaxGeometryUniformComponents:     1024,
		MaxGeometryVaryingComponents:     64,

		MaxTessControlInputComponents:       128,
		MaxTessControlOutputComponents:      128,
		MaxTessControlTextureImageUnits:     16,
		MaxTessControlUniformComponents:     1024,
		MaxTessControlTotalOutputComponents: 4096,
		MaxTessEvaluationInputComponents:    128,
		MaxTessEvaluationOutputComponents:   128,
		MaxTessEvaluationTextureImageUnits:  16,
		MaxTessEvaluationUniformComponents:  1024,
		MaxTessPatchComponents:              120,
		MaxPatchVertices:                    32,
		MaxTessGenLevel:                     64,
		MaxViewports:                        16,

		MaxVertexAtomicCounters:               0,
		MaxTessControlAtomicCounters:          0,
		MaxTessEvaluationAtomicCounters:       0,
		MaxGeometryAtomicCounters:             0,
		MaxFragmentAtomicCounters:             8,
		MaxCombinedAtomicCounters:             8,
		MaxAtomicCounterBindings:              1,
		MaxVertexAtomicCounterBuffers:         0,
		MaxTessControlAtomicCounterBuffers:    0,
		MaxTessEvaluationAtomicCounterBuffers: 0,
		MaxGeometryAtomicCounterBuffers:       0,
		MaxFragmentAtomicCounterBuffers:       1,
		MaxCombinedAtomicCounterBuffers:       1,
		MaxAtomicCounterBufferSize:            16384,

		MaxTransformFeedbackBuffers:               4,
		MaxTransformFeedbackInterleavedComponents: 64,
		MaxCullDistances:                          8,
		MaxCombinedClipAndCullDistances:           8,
		MaxSamples:                                4,

		MaxMeshOutputVerticesNV:   256,
		MaxMeshOutputPrimitivesNV: 512,
		MaxMeshWorkGroupSizeXNV:   32,
		MaxMeshWorkGroupSizeYNV:   1,
		MaxMeshWorkGroupSizeZNV:   1,
		MaxTaskWorkGroupSizeXNV:   32,
		MaxTaskWorkGroupSizeYNV:   1,
		MaxTaskWorkGroupSizeZNV:   1,
		MaxMeshViewCountNV:        4,

		Limits: Limits{
			NonInductiveForLoops:                 true,
			WhileLoops:                           true,
			DoWhileLoops:                         true,
			GeneralUniformIndexing:               true,
			GeneralAttributeMatrixVectorIndexing: true,
			GeneralVaryingIndexing:               true,
			GeneralSamplerIndexing:               true,
			GeneralVariableIndexing:              true,
			GeneralConstantMatrixVectorIndexing:  true,
		},
	}
}

// field binds a configuration name to its storage.
type field struct {
	name string
	ptr  *int
}

// intFields lists the integer limits in configuration order.
func (c *Capabilities) intFields() []field {
	return []field{
		{"MaxLights", &c.MaxLights},
		{"MaxClipPlanes", &c.MaxClipPlanes},
		{"MaxTextureUnits", &c.MaxTextureUnits},
		{"MaxTextureCoords", &c.MaxTextureCoords},
		{"MaxVertexAttribs", &c.MaxVertexAttribs},
		{"MaxVertexUniformComponents", &c.MaxVertexUniformComponents},
		{"MaxVaryingFloats", &c.MaxVaryingFloats},
		{"MaxVertexTextureImageUnits", &c.MaxVertexTextureImageUnits},
		{"MaxCombinedTextureImageUnits", &c.MaxCombinedTextureImageUnits},
		{"MaxTextureImageUnits", &c.MaxTextureImageUnits},
		{"MaxFragmentUniformComponents", &c.MaxFragmentUniformComponents},
		{"MaxDrawBuffers", &c.MaxDrawBuffers},
		{"MaxVertexUniformVectors", &c.MaxVertexUniformVectors},
		{"MaxVaryingVectors", &c.MaxVaryingVectors},
		{"MaxFragmentUniformVectors", &c.MaxFragmentUniformVectors},
		{"MaxVertexOutputVectors", &c.MaxVertexOutputVectors},
		{"MaxFragmentInputVectors", &c.MaxFragmentInputVectors},
		{"MinProgramTexelOffset", &c.MinProgramTexelOffset},
		{"MaxProgramTexelOffset", &c.MaxProgramTexelOffset},
		{"MaxClipDistances", &c.MaxClipDistances},
		{"MaxComputeWorkGroupCountX", &c.MaxComputeWorkGroupCountX},
		{"MaxComputeWorkGroupCountY", &c.MaxComputeWorkGroupCountY},
		{"MaxComputeWorkGroupCountZ", &c.MaxComputeWorkGroupCountZ},
		{"MaxComputeWorkGroupSizeX", &c.MaxComputeWorkGroupSizeX},
		{"MaxComputeWorkGroupSizeY", &c.MaxComputeWorkGroupSizeY},
		{"MaxComputeWorkGroupSizeZ", &c.MaxComputeWorkGroupSizeZ},
		{"MaxComputeUniformComponents", &c.MaxComputeUniformComponents},
		{"MaxComputeTextureImageUnits", &c.MaxComputeTextureImageUnits},
		{"MaxComputeImageUniforms", &c.MaxComputeImageUniforms},
		{"MaxComputeAtomicCounters", &c.MaxComputeAtomicCounters},
		{"MaxComputeAtomicCounterBuffers", &c.MaxComputeAtomicCounterBuffers},
		{"MaxVaryingComponents", &c.MaxVaryingComponents},
		{"MaxVertexOutputComponents", &c.MaxVertexOutputComponents},
		{"MaxGeometryInputComponents", &c.MaxGeometryInputComponents},
		{"MaxGeometryOutputComponents", &c.MaxGeometryOutputComponents},
		{"MaxFragmentInputComponents", &c.MaxFragmentInputComponents},
		{"MaxImageUnits", &c.MaxImageUnits},
		{"MaxCombinedImageUnitsAndFragmentOutputs", &c.MaxCombinedImageUnitsAndFragmentOutputs},
		{"MaxCombinedShaderOutputResources", &c.MaxCombinedShaderOutputResources},
		{"MaxImageSamples", &c.MaxImageSamples},
		{"MaxVertexImageUniforms", &c.MaxVertexImageUniforms},
		{"MaxTessControlImageUniforms", &c.MaxTessControlImageUniforms},
		{"MaxTessEvaluationImageUniforms", &c.MaxTessEvaluationImageUniforms},
		{"MaxGeometryImageUniforms", &c.MaxGeometryImageUniforms},
		{"MaxFragmentImageUniforms", &c.MaxFragmentImageUniforms},
		{"MaxCombinedImageUniforms", &c.MaxCombinedImageUniforms},
		{"MaxGeometryTextureImageUnits", &c.MaxGeometryTextureImageUnits},
		{"MaxGeometryOutputVertices", &c.MaxGeometryOutputVertices},
		{"MaxGeometryTotalOutputComponents", &c.MaxGeometryTotalOutputComponents},
		{"MaxGeometryUniformComponents", &c.MaxGeometryUniformComponents},
		{"MaxGeometryVaryingComponents", &c.MaxGeometryVaryingComponents},
		{"MaxTessControlInputComponents", &c.MaxTessControlInputComponents},
		{"MaxTessControlOutputComponents", &c.MaxTessControlOutputComponents},
		{"MaxTessControlTextureImageUnits", &c.MaxTessControlTextureImageUnits},
		{"MaxTessControlUniformComponents", &c.MaxTessControlUniformComponents},
		{"MaxTessControlTotalOutputComponents", &c.MaxTessControlTotalOutputComponents},
		{"MaxTessEvaluationInputComponents", &c.MaxTessEvaluationInputComponents},
		{"MaxTessEvaluationOutputComponents", &c.MaxTessEvaluationOutputComponents},
		{"MaxTessEvaluationTextureImageUnits", &c.MaxTessEvaluationTextureImageUnits},
		{"MaxTessEvaluationUniformComponents", &c.MaxTessEvaluationUniformComponents},
		{"MaxTessPatchComponents", &c.MaxTessPatchComponents},
		{"MaxPatchVertices", &c.MaxPatchVertices},
		{"MaxTessGenLevel", &c.MaxTessGenLevel},
		{"MaxViewports", &c.MaxViewports},
		{"MaxVertexAtomicCounters", &c.MaxVertexAtomicCounters},
		{"MaxTessControlAtomicCounters", &c.MaxTessControlAtomicCounters},
		{"MaxTessEvaluationAtomicCounters", &c.MaxTessEvaluationAtomicCounters},
		{"MaxGeometryAtomicCounters", &c.MaxGeometryAtomicCounters},
		{"MaxFragmentAtomicCounters", &c.MaxFragmentAtomicCounters},
		{"MaxCombinedAtomicCounters", &c.MaxCombinedAtomicCounters},
		{"MaxAtomicCounterBindings", &c.MaxAtomicCounterBindings},
		{"MaxVertexAtomicCounterBuffers", &c.MaxVertexAtomicCounterBuffers},
		{"MaxTessControlAtomicCounterBuffers", &c.MaxTessControlAtomicCounterBuffers},
		{"MaxTessEvaluationAtomicCounterBuffers", &c.MaxTessEvaluationAtomicCounterBuffers},
		{"MaxGeometryAtomicCounterBuffers", &c.MaxGeometryAtomicCounterBuffers},
		{"MaxFragmentAtomicCounterBuffers", &c.MaxFragmentAtomicCounterBuffers},
		{"MaxCombinedAtomicCounterBuffers", &c.MaxCombinedAtomicCounterBuffers},
		{"MaxAtomicCounterBufferSize", &c.MaxAtomicCounterBufferSize},
		{"MaxTransformFeedbackBuffers", &c.MaxTransformFeedbackBuffers},
		{"MaxTransformFeedbackInterleavedComponents", &c.MaxTransformFeedbackInterleavedComponents},
		{"MaxCullDistances", &c.MaxCullDistances},
		{"MaxCombinedClipAndCullDistances", &c.MaxCombinedClipAndCullDistances},
		{"MaxSamples", &c.MaxSamples},
		{"MaxMeshOutputVerticesNV", &c.MaxMeshOutputVerticesNV},
		{"MaxMeshOutputPrimitivesNV", &c.MaxMeshOutputPrimitivesNV},
		{"MaxMeshWorkGroupSizeX_NV", &c.MaxMeshWorkGroupSizeXNV},
		{"MaxMeshWorkGroupSizeY_NV", &c.MaxMeshWorkGroupSizeYNV},
		{"MaxMeshWorkGroupSizeZ_NV", &c.MaxMeshWorkGroupSizeZNV},
		{"MaxTaskWorkGroupSizeX_NV", &c.MaxTaskWorkGroupSizeXNV},
		{"MaxTaskWorkGroupSizeY_NV", &c.MaxTaskWorkGroupSizeYNV},
		{"MaxTaskWorkGroupSizeZ_NV", &c.MaxTaskWorkGroupSizeZNV},
		{"MaxMeshViewCountNV", &c.MaxMeshViewCountNV},
	}
}

type flag struct {
	name string
	ptr  *bool
}

func (c *Capabilities) limitFields() []flag {
	return []flag{
		{"nonInductiveForLoops", &c.Limits.NonInductiveForLoops},
		{"whileLoops", &c.Limits.WhileLoops},
		{"doWhileLoops", &c.Limits.DoWhileLoops},
		{"generalUniformIndexing", &c.Limits.GeneralUniformIndexing},
		{"generalAttributeMatrixVectorIndexing", &c.Limits.GeneralAttributeMatrixVectorIndexing},
		{"generalVaryingIndexing", &c.Limits.GeneralVaryingIndexing},
		{"generalSamplerIndexing", &c.Limits.GeneralSamplerIndexing},
		{"generalVariableIndexing", &c.Limits.GeneralVariableIndexing},
		{"generalConstantMatrixVectorIndexing", &c.Limits.GeneralConstantMatrixVectorIndexing},
	}
}
