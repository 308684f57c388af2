package cdlint

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/syntax"
	"go.followtheprocess.codes/hue"
)

// Styles.
const (
	// errorStyle is the style used for the "error" severity header.
	errorStyle = hue.Red | hue.Bold

	// warningStyle is the style used for the "warning" severity header.
	warningStyle = hue.Yellow | hue.Bold

	// helpStyle is the style used for the "help" marker on a suggestion.
	helpStyle = hue.Cyan | hue.Bold

	// dimmed is the style used for structural output like gutters and
	// positions.
	dimmed = hue.BrightBlack
)

// labelStyle maps a label's semantic colour to its terminal style.
func labelStyle(color diag.Color) hue.Style {
	switch color {
	case diag.Red:
		return hue.Red
	case diag.Yellow:
		return hue.Yellow
	case diag.Blue:
		return hue.Blue
	default:
		return hue.White
	}
}

// render writes a single diagnostic to w in human readable form, quoting
// the offending source with each label's region underlined.
func render(w io.Writer, name string, src []byte, diagnostic diag.Diagnostic) {
	header := warningStyle
	if diagnostic.Severity == diag.Error {
		header = errorStyle
	}

	fmt.Fprintf(w, "%s: %s\n", header.Text(diagnostic.Severity.String()), diagnostic.Message)

	// Labels render in source order, regardless of the order the lint
	// attached them
	type located struct {
		position syntax.Position
		label    diag.Label
	}

	var labels []located

	for _, label := range diagnostic.Labels {
		position := syntax.Resolve(name, src, label.Span)
		if !position.IsValid() {
			continue
		}

		labels = append(labels, located{position: position, label: label})
	}

	slices.SortStableFunc(labels, func(a, b located) int {
		return syntax.ComparePosition(a.position, b.position)
	})

	for _, loc := range labels {
		position, label := loc.position, loc.label

		num := strconv.Itoa(position.Line)
		pad := strings.Repeat(" ", len(num))

		fmt.Fprintf(w, " %s %s %s\n", pad, dimmed.Text("-->"), position)
		fmt.Fprintf(w, " %s %s\n", pad, dimmed.Text("|"))
		fmt.Fprintf(w, " %s %s %s\n", dimmed.Text(num), dimmed.Text("|"), lineText(src, position.Offset))

		underline := strings.Repeat("^", max(position.EndCol-position.StartCol, 1))
		if label.Msg != "" {
			underline += " " + label.Msg
		}

		fmt.Fprintf(
			w,
			" %s %s %s%s\n",
			pad,
			dimmed.Text("|"),
			strings.Repeat(" ", position.StartCol-1),
			labelStyle(label.Color).Text(underline),
		)
	}

	if diagnostic.Help != "" {
		fmt.Fprintf(w, " %s %s\n", helpStyle.Text("= help:"), diagnostic.Help)
	}

	fmt.Fprintln(w)
}

// lineText returns the full line of src containing the byte at offset,
// without its trailing newline.
func lineText(src []byte, offset int) string {
	if offset < 0 || offset > len(src) {
		return ""
	}

	start := bytes.LastIndexByte(src[:offset], '\n') + 1

	end := bytes.IndexByte(src[offset:], '\n')
	if end == -1 {
		end = len(src)
	} else {
		end += offset
	}

	return string(src[start:end])
}
