// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package upload

import (
	"fmt"
	"io"

	"github.com/platform-engineering-labs/xmlupload/internal/cli/display"
	"github.com/platform-engineering-labs/xmlupload/internal/cli/printer"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

// consoleReporter prints the progress of a run for operators.
type consoleReporter struct {
	w       io.Writer
	verbose bool
}

func newConsoleReporter(w io.Writer, verbose bool) *consoleReporter {
	return &consoleReporter{w: w, verbose: verbose}
}

func (r *consoleReporter) Validated(string) {
	r.println(display.Green("The input data file is syntactically correct and passed validation!"))
}

func (r *consoleReporter) Parsed(doc *pkgmodel.Document) {
	if !r.verbose {
		return
	}
	if err := printer.NewHumanReadablePrinter[pkgmodel.Document](r.w).Print(doc); err != nil {
		r.println(display.Red(err.Error()))
	}
}

func (r *consoleReporter) Pass(n int) {
	r.println(fmt.Sprintf("%d. Ordering pass finished!", n))
}

func (r *consoleReporter) Remaining(n int) {
	r.println(display.Grey(fmt.Sprintf("Remaining: %d", n)))
}

func (r *consoleReporter) Created(id, iri string) {
	r.println(fmt.Sprintf("Created: %s %s", display.LightBlue(iri), display.Grey("("+id+")")))
}

func (r *consoleReporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}
