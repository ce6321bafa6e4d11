package inline

import (
	"context"

	"github.com/gogpu/shadercheck"
	"github.com/gogpu/shadercheck/diag"
)

// Finding is the validation outcome of one embedded shader.
type Finding struct {
	Block  Block
	Result shadercheck.Result

	// Diagnostics are the located entries of the log, with lines
	// rewritten to host-file lines.
	Diagnostics diag.List
}

// Check validates every shader embedded in host on one attached thread.
// It stops at the first environment error.
func Check(ctx context.Context, svc *shadercheck.Service, host string) ([]Finding, error) {
	blocks := Find(host)
	if len(blocks) == 0 {
		return nil, nil
	}

	t, err := svc.Attach()
	if err != nil {
		return nil, err
	}
	defer t.Detach() //nolint:errcheck // detach errors are logged

	findings := make([]Finding, 0, len(blocks))
	for i := range blocks {
		res, err := t.Compile(ctx, blocks[i].Source, blocks[i].Stage)
		if err != nil {
			return findings, err
		}
		findings = append(findings, Finding{
			Block:       blocks[i],
			Result:      res,
			Diagnostics: blocks[i].HostDiagnostics(res.Diagnostics()),
		})
	}
	return findings, nil
}

// HostDiagnostics returns copies of the located entries of l with their
// lines mapped to host lines. Entries on lines outside the block keep
// line 0.
func (b *Block) HostDiagnostics(l diag.List) diag.List {
	var out diag.List
	for _, d := range l {
		if d.IsSummary() {
			continue
		}
		c := *d
		c.Pos.Line = b.HostLine(d.Pos.Line)
		out = append(out, &c)
	}
	return out
}
