package shadercheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageFromTag(t *testing.T) {
	tests := []struct {
		tag        int32
		want       Stage
		strictFail bool
	}{
		{0, StageFragment, false},
		{1, StageVertex, false},
		{2, StageFragment, false},
		{3, StageCompute, false},
		{4, StageFragment, true},
		{99, StageFragment, true},
		{-1, StageFragment, true},
	}
	for _, tt := range tests {
		got, err := StageFromTag(tt.tag, StageFallback)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "tag %d", tt.tag)

		got, err = StageFromTag(tt.tag, StrictStages)
		if tt.strictFail {
			assert.ErrorIs(t, err, ErrUnknownStage, "tag %d", tt.tag)
			assert.Equal(t, StageUnknown, got)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "tag %d", tt.tag)
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vert", StageVertex.String())
	assert.Equal(t, "frag", StageFragment.String())
	assert.Equal(t, "comp", StageCompute.String())
	assert.Equal(t, "unknown", StageUnknown.String())
	assert.Equal(t, StageFragment, resolve(StageUnknown))
	assert.Equal(t, StageCompute, resolve(StageCompute))
}
