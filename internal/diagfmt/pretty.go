// Package diagfmt renders diagnostics for the human channels.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"tschema/internal/diag"
)

// PrettyOpts controls diagnostic rendering.
type PrettyOpts struct {
	Color bool
}

var (
	warnColor = color.New(color.FgYellow, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	posColor  = color.New(color.Faint)
)

// Pretty writes each diagnostic as
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//
// omitting position fields that are unset.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	for _, d := range bag.Items() {
		sev := d.Severity.String()
		if opts.Color {
			switch d.Severity {
			case diag.SevError:
				sev = errColor.Sprint(sev)
			case diag.SevWarning:
				sev = warnColor.Sprint(sev)
			}
		}
		pos := position(d)
		if opts.Color && pos != "" {
			pos = posColor.Sprint(pos)
		}
		if pos != "" {
			fmt.Fprintf(w, "%s: %s %s: %s\n", pos, sev, d.Code.ID(), d.Message)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		}
	}
}

func position(d diag.Diagnostic) string {
	if d.File == "" {
		return ""
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Col)
	}
	return d.File
}
