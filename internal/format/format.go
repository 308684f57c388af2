// Package format provides mechanisms for exporting check results into
// machine readable formats.
//
// Notably, the package provides the [Exporter] interface for doing this in
// a format-agnostic way, along with the built in JSON, YAML and TOML
// exporters.
package format

import (
	"io"

	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/syntax"
)

// Exporter is the interface defining a mechanism for exporting a check
// [Report] into an external format.
type Exporter interface {
	// Export exports the [Report] into an external format, written to w.
	Export(w io.Writer, report Report) error
}

// Label is one labelled source region within a [Finding].
type Label struct {
	// Position is the resolved "file:line:col" position of the label.
	Position string `json:"position"          yaml:"position"          toml:"position"`

	// Message explains what this region contributes to the finding.
	Message string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
}

// Finding is a single diagnostic with its spans resolved to positions in
// the checked file.
type Finding struct {
	Severity string  `json:"severity"         yaml:"severity"         toml:"severity"`
	Message  string  `json:"message"          yaml:"message"          toml:"message"`
	Help     string  `json:"help,omitempty"   yaml:"help,omitempty"   toml:"help,omitempty"`
	Labels   []Label `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`
}

// Report is the complete result of checking one Custom Difficulty file.
type Report struct {
	File     string    `json:"file"     yaml:"file"     toml:"file"`
	Errors   int       `json:"errors"   yaml:"errors"   toml:"errors"`
	Warnings int       `json:"warnings" yaml:"warnings" toml:"warnings"`
	Findings []Finding `json:"findings" yaml:"findings" toml:"findings"`
}

// NewReport resolves diagnostics against the source text they point into,
// producing a [Report] ready for export.
//
// Labels with synthesised spans carry no position a consumer could
// navigate to, so they are dropped from the report.
func NewReport(file string, src []byte, diagnostics []diag.Diagnostic) Report {
	report := Report{
		File:     file,
		Findings: make([]Finding, 0, len(diagnostics)),
	}

	for _, diagnostic := range diagnostics {
		switch diagnostic.Severity {
		case diag.Error:
			report.Errors++
		case diag.Warning:
			report.Warnings++
		}

		finding := Finding{
			Severity: diagnostic.Severity.String(),
			Message:  diagnostic.Message,
			Help:     diagnostic.Help,
		}

		for _, label := range diagnostic.Labels {
			position := syntax.Resolve(file, src, label.Span)
			if !position.IsValid() {
				continue
			}

			finding.Labels = append(finding.Labels, Label{
				Position: position.String(),
				Message:  label.Msg,
			})
		}

		report.Findings = append(report.Findings, finding)
	}

	return report
}
