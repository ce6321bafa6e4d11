package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		name      string
		in        []byte
		want      string
		enc       Encoding
		truncated bool
	}{
		{"plain", []byte("void main(){}"), "void main(){}", UTF8, false},
		{"trailing nul", []byte("#version 450\nvoid main(){}\x00"), "#version 450\nvoid main(){}", UTF8, false},
		{"bytes after nul", []byte("void main(){}\x00garbage"), "void main(){}", UTF8, true},
		{"bom", []byte("\xEF\xBB\xBFvoid main(){}"), "void main(){}", UTF8, false},
		{"utf8 comment", []byte("// caf\xC3\xA9\n"), "// café\n", UTF8, false},
		{"ansi comment", []byte("// caf\xE9\n"), "// café\n", Windows1252, false},
		{"empty", nil, "", UTF8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bytes(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Source)
			assert.Equal(t, tt.enc, got.Encoding)
			assert.Equal(t, tt.truncated, got.Truncated)
		})
	}
}

func TestEncodingString(t *testing.T) {
	assert.Equal(t, "utf-8", UTF8.String())
	assert.Equal(t, "windows-1252", Windows1252.String())
}
