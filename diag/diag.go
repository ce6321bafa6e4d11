// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package diag turns compiler info logs into structured diagnostics.
//
// glslang writes one entry per line:
//
//	ERROR: 0:12: 'foo' : undeclared identifier
//	WARNING: 0:3:7: '#extension' : extension not supported
//	ERROR: 1 compilation errors.  No code generated.
//
// The location is "<string>:<line>:" with an optional column. Entries
// without a location are summaries. Lines that do not start with a
// severity continue the previous entry.
package diag

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
	SeverityInternal
	SeverityUnimplemented
)

var severityNames = [...]string{
	SeverityError:         "ERROR",
	SeverityWarning:       "WARNING",
	SeverityNote:          "NOTE",
	SeverityInternal:      "INTERNAL ERROR",
	SeverityUnimplemented: "UNIMPLEMENTED",
}

// String returns the log prefix for the severity.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", s)
}

// IsError reports whether the severity fails a compile.
func (s Severity) IsError() bool {
	return s != SeverityWarning && s != SeverityNote
}

// Position is a 1-based location in a source string. Zero means unknown.
type Position struct {
	Line   int
	Column int
}

// Diagnostic is one entry of a compiler log.
type Diagnostic struct {
	Severity Severity

	// Source names the source string, "0" for the first string passed to
	// the compiler. Empty for summaries.
	Source string

	Pos     Position
	Message string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.String()
}

// String renders d the way glslang does.
func (d *Diagnostic) String() string {
	switch {
	case d.Source == "":
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	case d.Pos.Column > 0:
		return fmt.Sprintf("%s: %s:%d:%d: %s", d.Severity, d.Source, d.Pos.Line, d.Pos.Column, d.Message)
	default:
		return fmt.Sprintf("%s: %s:%d: %s", d.Severity, d.Source, d.Pos.Line, d.Message)
	}
}

// IsSummary reports whether d carries no location.
func (d *Diagnostic) IsSummary() bool {
	return d.Source == ""
}

// FormatWithContext renders d with the offending source line and a caret
// under the column, or under the first non-blank character when the
// compiler reported no column.
func (d *Diagnostic) FormatWithContext(source string) string {
	if source == "" || d.Pos.Line == 0 {
		return d.String()
	}

	lines := strings.Split(source, "\n")
	lineNum := d.Pos.Line
	if lineNum < 1 || lineNum > len(lines) {
		return d.String()
	}

	line := strings.TrimRight(lines[lineNum-1], "\r")
	col := d.Pos.Column
	if col < 1 {
		col = len(line) - len(strings.TrimLeft(line, " \t")) + 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", strings.ToLower(d.Severity.String()), d.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

// List is the parsed content of one log.
type List []*Diagnostic

// Error implements the error interface.
func (l List) Error() string {
	errs := l.Errors()
	if len(errs) == 0 {
		return "no errors"
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
}

// Errors returns the located entries that fail a compile.
func (l List) Errors() List {
	var out List
	for _, d := range l {
		if d.Severity.IsError() && !d.IsSummary() {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns the warning entries.
func (l List) Warnings() List {
	var out List
	for _, d := range l {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any entry fails a compile, summaries included.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity.IsError() {
			return true
		}
	}
	return false
}

// FormatAll renders every located entry with source context.
func (l List) FormatAll(source string) string {
	var sb strings.Builder
	first := true
	for _, d := range l {
		if d.IsSummary() {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		sb.WriteString(d.FormatWithContext(source))
	}
	return sb.String()
}

// OnLine returns the entries located on line.
func (l List) OnLine(line int) List {
	var out List
	for _, d := range l {
		if d.Pos.Line == line && !d.IsSummary() {
			out = append(out, d)
		}
	}
	return out
}
