// Package diag defines the diagnostic record shared by every stage of the
// lint pipeline.
//
// A [Diagnostic] is pure data: a severity, a message, one or more labelled
// spans pointing back into the source text, and an optional help string.
// Rendering (terminal colour, JSON, YAML) happens elsewhere, so the scanner,
// parser, decoder and lints can all speak the same type without knowing how
// their findings will be shown.
package diag

import "go.followtheprocess.codes/cdlint/internal/syntax"

// Severity is the importance of a diagnostic.
type Severity int

const (
	// Warning marks a finding that is suspicious but will not break the
	// file in game.
	Warning Severity = iota

	// Error marks a finding the game would reject or silently misread.
	Error
)

// String implements [fmt.Stringer] for a [Severity].
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Severity].
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Color is the semantic colour of a label, describing the label's role
// rather than a literal terminal colour.
type Color int

const (
	// Red marks the span the diagnostic is primarily about.
	Red Color = iota

	// Yellow marks a span that is relevant context, e.g. the first
	// occurrence of a duplicated key.
	Yellow

	// Blue marks supplementary information.
	Blue
)

// String implements [fmt.Stringer] for a [Color].
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	default:
		return "unknown"
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Color].
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Label points a diagnostic at a region of source with a short message
// explaining what that region contributes.
type Label struct {
	Msg   string      `json:"msg"   yaml:"msg"`
	Span  syntax.Span `json:"span"  yaml:"span"`
	Color Color       `json:"color" yaml:"color"`
}

// Diagnostic is a single finding, at any stage of the pipeline.
type Diagnostic struct {
	Message  string   `json:"message"        yaml:"message"`
	Help     string   `json:"help,omitempty" yaml:"help,omitempty"`
	Labels   []Label  `json:"labels"         yaml:"labels"`
	Severity Severity `json:"severity"       yaml:"severity"`
}

// New returns a [Diagnostic] with the given severity and message and no
// labels yet.
func New(severity Severity, message string) Diagnostic {
	return Diagnostic{Severity: severity, Message: message}
}

// WithLabel returns a copy of the diagnostic with an extra labelled span.
func (d Diagnostic) WithLabel(span syntax.Span, msg string, color Color) Diagnostic {
	labels := make([]Label, 0, len(d.Labels)+1)
	labels = append(labels, d.Labels...)
	labels = append(labels, Label{Span: span, Msg: msg, Color: color})

	d.Labels = labels

	return d
}

// WithHelp returns a copy of the diagnostic with the help text set.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Primary returns the span of the first label, which by convention is the
// span the diagnostic is about. If the diagnostic has no labels, the dummy
// span is returned.
func (d Diagnostic) Primary() syntax.Span {
	if len(d.Labels) == 0 {
		return syntax.DummySpan()
	}

	return d.Labels[0].Span
}
