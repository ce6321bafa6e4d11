// Package source normalizes shader text received from callers.
//
// Callers on the C side hand over NUL-terminated byte strings that are
// either UTF-8 or the host's ANSI code page. Text is cut at the first NUL
// and decoded to UTF-8, treating invalid UTF-8 as Windows-1252.
package source

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const bom = "\uFEFF"

// Encoding reports how the input was decoded.
type Encoding uint8

const (
	UTF8 Encoding = iota
	Windows1252
)

// String returns the encoding name.
func (e Encoding) String() string {
	if e == Windows1252 {
		return "windows-1252"
	}
	return "utf-8"
}

// Text is normalized shader source.
type Text struct {
	Source   string
	Encoding Encoding

	// Truncated is set when bytes followed the terminating NUL.
	Truncated bool
}

// Bytes normalizes raw caller bytes.
func Bytes(b []byte) (Text, error) {
	var t Text
	if i := bytes.IndexByte(b, 0); i >= 0 {
		t.Truncated = i < len(b)-1
		b = b[:i]
	}
	if utf8.Valid(b) {
		t.Source = strings.TrimPrefix(string(b), bom)
		return t, nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return Text{}, err
	}
	t.Source = string(out)
	t.Encoding = Windows1252
	return t, nil
}

// String normalizes a Go string holding caller bytes.
func String(s string) (Text, error) {
	return Bytes([]byte(s))
}
