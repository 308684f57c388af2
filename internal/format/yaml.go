package format

import (
	"io"

	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that transforms check reports into YAML
// documents.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given
// report as a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, report Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	return encoder.Encode(report)
}
