package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type want struct {
	text string
	kind Kind
}

func classified(src string) []want {
	var out []want
	for _, tok := range Classify(src) {
		out = append(out, want{tok.Text(src), tok.Kind})
	}
	return out
}

func TestClassifyShader(t *testing.T) {
	src := "#version 450 core\nout vec4 c; // color\nvoid main(){ if (gl_FragCoord.x > 0.5) c = mix(vec4(1), vec4(0x1Fu), 2e-3); }"

	got := classified(src)
	expected := []want{
		{"#version", Preprocessor}, {"450", Number}, {"core", Text},
		{"out", Keyword}, {"vec4", Type}, {"c", Identifier}, {";", Operator}, {"// color", Comment},
		{"void", Type}, {"main", Identifier}, {"(", Operator}, {")", Operator}, {"{", Operator},
		{"if", Control}, {"(", Operator}, {"gl_FragCoord", BuiltinVariable}, {".", Operator}, {"x", Member},
		{">", Operator}, {"0.5", Number}, {")", Operator},
		{"c", Identifier}, {"=", Operator}, {"mix", Function}, {"(", Operator},
		{"vec4", Type}, {"(", Operator}, {"1", Number}, {")", Operator}, {",", Operator},
		{"vec4", Type}, {"(", Operator}, {"0x1Fu", Number}, {")", Operator}, {",", Operator},
		{"2e-3", Number}, {")", Operator}, {";", Operator}, {"}", Operator},
	}
	assert.Equal(t, expected, got)
}

func TestClassifyPositions(t *testing.T) {
	src := "float a;\n  a += 1.0;"
	toks := Classify(src)
	require.Len(t, toks, 7)

	assert.Equal(t, Token{Kind: Identifier, Offset: 11, Len: 1, Line: 2, Column: 3}, toks[3])
	assert.Equal(t, "+=", toks[4].Text(src))
	assert.Equal(t, 5, toks[4].Column)
}

func TestClassifyBlockComment(t *testing.T) {
	src := "/* a\n b */ int x;\n/* open"
	got := classified(src)
	assert.Equal(t, []want{
		{"/* a\n b */", Comment}, {"int", Type}, {"x", Identifier}, {";", Operator},
		{"/* open", Comment},
	}, got)

	toks := Classify(src)
	assert.Equal(t, 2, toks[1].Line, "lines advance inside block comments")
	assert.Equal(t, 3, toks[4].Line)
}

func TestClassifyDirectiveOnlyAtLineStart(t *testing.T) {
	got := classified("  #define X 1\nint a # b")
	assert.Equal(t, want{"#define", Preprocessor}, got[0])
	assert.Equal(t, want{"#", Operator}, got[5])
}

func TestClassifyReservedAndLegacy(t *testing.T) {
	got := classified("texture2D goto sampler2DShadow return")
	assert.Equal(t, []want{
		{"texture2D", Function}, {"goto", Reserved}, {"sampler2DShadow", Type}, {"return", Control},
	}, got)
}

func TestClassifyNonASCII(t *testing.T) {
	got := classified("// é\nint é;")
	assert.Equal(t, []want{
		{"// é", Comment}, {"int", Type}, {"é", Text}, {";", Operator},
	}, got)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "builtin", BuiltinVariable.String())
	assert.Equal(t, "unknown", Kind(200).String())
}
