package shadercheck

import (
	"fmt"

	"github.com/gogpu/shadercheck/backend"
)

// Stage is the pipeline stage a shader is validated for.
type Stage = backend.Stage

// Stages as tagged by callers.
const (
	StageUnknown  = backend.StageUnknown
	StageVertex   = backend.StageVertex
	StageFragment = backend.StageFragment
	StageCompute  = backend.StageCompute
)

// StagePolicy decides how stage tags outside 1..3 resolve.
type StagePolicy uint8

const (
	// StageFallback resolves tag 0 and every unrecognized tag to Fragment.
	StageFallback StagePolicy = iota

	// StrictStages resolves tag 0 to Fragment and rejects other
	// unrecognized tags with ErrUnknownStage.
	StrictStages
)

// StageFromTag maps a caller's integer tag to a concrete stage:
// 1 vertex, 2 fragment, 3 compute. Tag 0 means "any" and validates as
// fragment.
func StageFromTag(tag int32, policy StagePolicy) (Stage, error) {
	switch tag {
	case 1:
		return StageVertex, nil
	case 2:
		return StageFragment, nil
	case 3:
		return StageCompute, nil
	case 0:
		return StageFragment, nil
	}
	if policy == StrictStages {
		return StageUnknown, fmt.Errorf("%w: tag %d", ErrUnknownStage, tag)
	}
	return StageFragment, nil
}

// resolve turns StageUnknown into the fragment default.
func resolve(s Stage) Stage {
	if s == StageUnknown {
		return StageFragment
	}
	return s
}
