package diag

import (
	"bufio"
	"strconv"
	"strings"
)

// Parse splits a compiler log into diagnostics. Parse never fails: text
// it cannot attribute to an entry becomes a note.
func Parse(log string) List {
	var (
		out  List
		last *Diagnostic
	)
	sc := bufio.NewScanner(strings.NewReader(log))
	sc.Buffer(make([]byte, 0, 4096), len(log)+1)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if d, ok := parseLine(line); ok {
			out = append(out, d)
			last = d
			continue
		}
		if last != nil {
			last.Message += "\n" + line
			continue
		}
		last = &Diagnostic{Severity: SeverityNote, Message: line}
		out = append(out, last)
	}
	return out
}

// parseLine parses "<SEVERITY>: [<source>:<line>:[<column>:] ]<message>".
func parseLine(line string) (*Diagnostic, bool) {
	sev, rest, ok := cutSeverity(line)
	if !ok {
		return nil, false
	}
	d := &Diagnostic{Severity: sev, Message: rest}

	fields := strings.SplitN(rest, ":", 4)
	if len(fields) < 3 || fields[0] == "" || strings.ContainsAny(fields[0], " \t") {
		return d, true
	}
	lineNum, err := strconv.Atoi(fields[1])
	if err != nil || lineNum < 0 {
		return d, true
	}
	d.Source = fields[0]
	d.Pos.Line = lineNum
	msg := strings.Join(fields[2:], ":")
	if len(fields) == 4 {
		if col, err := strconv.Atoi(fields[2]); err == nil && col > 0 {
			d.Pos.Column = col
			msg = fields[3]
		}
	}
	d.Message = strings.TrimSpace(msg)
	return d, true
}

func cutSeverity(line string) (Severity, string, bool) {
	// Longer prefixes first: "INTERNAL ERROR" before "ERROR".
	for _, sev := range []Severity{SeverityInternal, SeverityUnimplemented, SeverityWarning, SeverityError, SeverityNote} {
		prefix := sev.String() + ":"
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return sev, strings.TrimSpace(rest), true
		}
	}
	return 0, "", false
}
