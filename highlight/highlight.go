// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package highlight classifies GLSL source text for syntax coloring.
//
// The classifier is lexical only: it never fails and needs no compiler, so
// it can run on every keystroke while validation runs less often.
package highlight

import (
	"strings"
	"unicode/utf8"
)

// Kind is the class of a token.
type Kind uint8

const (
	Text Kind = iota
	Type
	Keyword
	Control
	Reserved
	Function
	Identifier
	Member
	BuiltinVariable
	Number
	Operator
	Comment
	Preprocessor
)

var kindNames = [...]string{
	Text:            "text",
	Type:            "type",
	Keyword:         "keyword",
	Control:         "control",
	Reserved:        "reserved",
	Function:        "function",
	Identifier:      "identifier",
	Member:          "member",
	BuiltinVariable: "builtin",
	Number:          "number",
	Operator:        "operator",
	Comment:         "comment",
	Preprocessor:    "preprocessor",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a classified byte range of the source.
type Token struct {
	Kind   Kind
	Offset int // byte offset of the first byte
	Len    int

	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int
}

// Text returns the token's text within src.
func (t Token) Text(src string) string {
	return src[t.Offset : t.Offset+t.Len]
}

// Classify splits src into tokens. Whitespace is not reported.
func Classify(src string) []Token {
	c := classifier{src: src, line: 1, lineStart: 0}
	c.run()
	return c.toks
}

// versionState tracks the words following a #version directive.
type versionState uint8

const (
	versionNone versionState = iota
	versionNumber
	versionProfile
)

type classifier struct {
	src  string
	pos  int
	toks []Token

	line      int
	lineStart int
	lineFresh bool // only whitespace so far on this line

	afterDot bool
	version  versionState
}

func (c *classifier) emit(kind Kind, start int) {
	c.toks = append(c.toks, Token{
		Kind:   kind,
		Offset: start,
		Len:    c.pos - start,
		Line:   c.line,
		Column: start - c.lineStart + 1,
	})
}

// newlines advances line bookkeeping over src[from:to].
func (c *classifier) newlines(from, to int) {
	for i := from; i < to; i++ {
		if c.src[i] == '\n' {
			c.line++
			c.lineStart = i + 1
		}
	}
}

func (c *classifier) run() {
	c.lineFresh = true
	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		start := c.pos

		switch {
		case ch == '\n':
			c.pos++
			c.line++
			c.lineStart = c.pos
			c.lineFresh = true
			c.version = versionNone
			continue
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v':
			c.pos++
			continue
		case ch == '/' && c.peek(1) == '/':
			c.pos = c.lineEnd()
			c.emit(Comment, start)
			continue
		case ch == '/' && c.peek(1) == '*':
			end := strings.Index(c.src[c.pos+2:], "*/")
			if end < 0 {
				c.pos = len(c.src)
			} else {
				c.pos += end + 4
			}
			c.emit(Comment, start)
			c.newlines(start, c.pos)
			continue
		}

		fresh := c.lineFresh
		c.lineFresh = false

		switch {
		case ch == '#' && fresh:
			c.pos++
			for c.pos < len(c.src) && (c.src[c.pos] == ' ' || c.src[c.pos] == '\t') {
				c.pos++
			}
			c.pos = c.wordEnd(c.pos)
			c.emit(Preprocessor, start)
			if strings.HasSuffix(c.src[start:c.pos], "version") {
				c.version = versionNumber
			}
		case isDigit(ch) || (ch == '.' && isDigit(c.peek(1))):
			c.pos = c.numberEnd()
			if c.version == versionNumber {
				c.version = versionProfile
			}
			c.emit(Number, start)
			c.afterDot = false
		case isIdentStart(ch):
			c.pos = c.wordEnd(c.pos)
			c.emit(c.wordKind(c.src[start:c.pos]), start)
		case ch >= utf8.RuneSelf:
			_, size := utf8.DecodeRuneInString(c.src[c.pos:])
			c.pos += size
			c.emit(Text, start)
		default:
			c.pos = c.operatorEnd()
			c.emit(Operator, start)
			c.afterDot = ch == '.'
		}
	}
}

func (c *classifier) wordKind(w string) Kind {
	if c.version == versionProfile {
		c.version = versionNone
		return Text
	}
	if c.afterDot {
		c.afterDot = false
		return Member
	}
	if strings.HasPrefix(w, "gl_") {
		return BuiltinVariable
	}
	if _, ok := typeNames[w]; ok {
		return Type
	}
	if _, ok := qualifiers[w]; ok {
		return Keyword
	}
	if _, ok := controlKeywords[w]; ok {
		return Control
	}
	if _, ok := builtinFunctions[w]; ok {
		return Function
	}
	if _, ok := reservedWords[w]; ok {
		return Reserved
	}
	return Identifier
}

func (c *classifier) peek(n int) byte {
	if c.pos+n < len(c.src) {
		return c.src[c.pos+n]
	}
	return 0
}

func (c *classifier) lineEnd() int {
	if i := strings.IndexByte(c.src[c.pos:], '\n'); i >= 0 {
		return c.pos + i
	}
	return len(c.src)
}

func (c *classifier) wordEnd(i int) int {
	for i < len(c.src) && isIdentPart(c.src[i]) {
		i++
	}
	return i
}

// numberEnd accepts decimal, hex and octal integers and floats with
// exponents and type suffixes (u, U, f, F, lf, LF).
func (c *classifier) numberEnd() int {
	i := c.pos
	s := c.src
	if s[i] == '0' && i+1 < len(s) && (s[i+1] == 'x' || s[i+1] == 'X') {
		i += 2
		for i < len(s) && isHex(s[i]) {
			i++
		}
	} else {
		for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
			i++
		}
		if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
			j := i + 1
			if j < len(s) && (s[j] == '+' || s[j] == '-') {
				j++
			}
			if j < len(s) && isDigit(s[j]) {
				i = j
				for i < len(s) && isDigit(s[i]) {
					i++
				}
			}
		}
	}
	for i < len(s) && strings.IndexByte("uUfFlL", s[i]) >= 0 {
		i++
	}
	return i
}

// operators lists multi-byte operators, longest first.
var operators = []string{
	"<<=", ">>=",
	"++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "^^",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
}

func (c *classifier) operatorEnd() int {
	rest := c.src[c.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			return c.pos + len(op)
		}
	}
	return c.pos + 1
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
