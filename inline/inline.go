// Package inline finds GLSL embedded in C and C++ string literals.
//
// A shader is marked by a comment naming its stage, directly followed by
// the literal:
//
//	const char* vs = // vertex shader:
//	    "#version 450\n"
//	    "void main(){}\n";
//
//	/* fragment shader */ R"glsl(
//	#version 450
//	out vec4 c; void main(){ c = vec4(1); }
//	)glsl";
//
// Three literal forms are understood: adjacent strings, one string with
// backslash-newline continuations, and raw strings. Escapes are decoded,
// and every shader line remembers the host line it came from so compiler
// diagnostics can be reported against the host file.
package inline

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gogpu/shadercheck/backend"
)

// LiteralKind is the string-literal form a shader was written in.
type LiteralKind uint8

const (
	EscapedNewlines LiteralKind = iota + 1
	AdjacentStrings
	RawString
)

func (k LiteralKind) String() string {
	switch k {
	case EscapedNewlines:
		return "escaped-newlines"
	case AdjacentStrings:
		return "adjacent-strings"
	case RawString:
		return "raw-string"
	default:
		return "invalid"
	}
}

// Block is one embedded shader.
type Block struct {
	Stage backend.Stage
	Kind  LiteralKind

	// Marker is the byte range of the marker comment in the host text.
	MarkerStart, MarkerEnd int

	// Source is the decoded shader text.
	Source string

	// lines[i] is the 1-based host line of shader line i+1.
	lines []int
}

// HostLine maps a 1-based shader line to its 1-based host line.
// It returns 0 for lines outside the block.
func (b *Block) HostLine(line int) int {
	if line < 1 || line > len(b.lines) {
		return 0
	}
	return b.lines[line-1]
}

var markerRE = regexp.MustCompile(`(?i)//[ \t]*(vertex|fragment|compute)[ \t]+shader[ \t]*:?|/\*[ \t]*(vertex|fragment|compute)[ \t]+shader[ \t]*:?[ \t]*\*/`)

// Find returns the shaders embedded in host, in order of appearance.
// Markers not followed by a well-formed literal are skipped.
func Find(host string) []Block {
	idx := newLineIndex(host)

	var blocks []Block
	for _, m := range markerRE.FindAllStringSubmatchIndex(host, -1) {
		word := submatch(host, m, 1)
		if word == "" {
			word = submatch(host, m, 2)
		}
		b, ok := parseLiteral(host, m[1], idx)
		if !ok {
			continue
		}
		b.Stage = stageOf(word)
		b.MarkerStart, b.MarkerEnd = m[0], m[1]
		blocks = append(blocks, b)
	}
	return blocks
}

func submatch(s string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

func stageOf(word string) backend.Stage {
	switch strings.ToLower(word) {
	case "vertex":
		return backend.StageVertex
	case "compute":
		return backend.StageCompute
	default:
		return backend.StageFragment
	}
}

// parseLiteral reads the literal starting after the marker at pos.
func parseLiteral(host string, pos int, idx lineIndex) (Block, bool) {
	i := skipSpace(host, pos)
	switch {
	case strings.HasPrefix(host[i:], `R"`):
		return parseRaw(host, i+2, idx)
	case strings.HasPrefix(host[i:], `"`):
		return parseCooked(host, i, idx)
	}
	return Block{}, false
}

// parseRaw reads R"delim( ... )delim" with i just past the opening quote.
func parseRaw(host string, i int, idx lineIndex) (Block, bool) {
	open := strings.IndexByte(host[i:], '(')
	if open < 0 {
		return Block{}, false
	}
	delim := host[i : i+open]
	if strings.ContainsAny(delim, " \t\r\n\\)") {
		return Block{}, false
	}
	start := i + open + 1
	end := strings.Index(host[start:], ")"+delim+`"`)
	if end < 0 {
		return Block{}, false
	}
	src := host[start : start+end]

	first := idx.line(start)
	lines := make([]int, strings.Count(src, "\n")+1)
	for n := range lines {
		lines[n] = first + n
	}
	return Block{Kind: RawString, Source: src, lines: lines}, true
}

// parseCooked reads one or more adjacent "..." literals starting at i.
func parseCooked(host string, i int, idx lineIndex) (Block, bool) {
	d := decoder{idx: idx, pending: true}
	count := 0
	for i < len(host) && host[i] == '"' {
		end, ok := d.literal(host, i+1)
		if !ok {
			return Block{}, false
		}
		count++
		i = skipSpace(host, end)
	}
	if d.pending {
		d.lines = append(d.lines, idx.line(i))
	}
	kind := EscapedNewlines
	if count > 1 {
		kind = AdjacentStrings
	}
	return Block{Kind: kind, Source: d.out.String(), lines: d.lines}, true
}

type decoder struct {
	idx     lineIndex
	out     strings.Builder
	lines   []int
	pending bool // the next output byte starts a shader line
}

func (d *decoder) put(b byte, at int) {
	if d.pending {
		d.lines = append(d.lines, d.idx.line(at))
		d.pending = false
	}
	d.out.WriteByte(b)
	if b == '\n' {
		d.pending = true
	}
}

// literal decodes one string body starting at i and returns the offset
// past its closing quote. A bare newline inside the literal is an error.
func (d *decoder) literal(host string, i int) (int, bool) {
	for i < len(host) {
		ch := host[i]
		switch ch {
		case '"':
			return i + 1, true
		case '\n':
			return 0, false
		case '\\':
			if i+1 >= len(host) {
				return 0, false
			}
			at := i
			i += 2
			switch esc := host[i-1]; esc {
			case '\n':
				// continuation
			case '\r':
				if i < len(host) && host[i] == '\n' {
					i++
				}
			case 'n':
				d.put('\n', at)
			case 't':
				d.put('\t', at)
			case 'r':
				d.put('\r', at)
			case '0':
				d.put(0, at)
			default:
				d.put(esc, at)
			}
		default:
			d.put(ch, i)
			i++
		}
	}
	return 0, false
}

func skipSpace(s string, i int) int {
	for i < len(s) && strings.IndexByte(" \t\r\n\f\v", s[i]) >= 0 {
		i++
	}
	return i
}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(s string) lineIndex {
	starts := lineIndex{0}
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (idx lineIndex) line(offset int) int {
	return sort.Search(len(idx), func(i int) bool { return idx[i] > offset })
}
