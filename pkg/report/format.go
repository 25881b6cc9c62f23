package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPlot = "plot"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatPlot}
}

// NormalizeFormat canonicalizes a user-provided format string and checks it is supported.
func NormalizeFormat(format string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "yml" {
		normalized = FormatYAML
	}

	if !slices.Contains(Formats(), normalized) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return normalized, nil
}

// Write renders the model in the given format.
func Write(m *Model, format string, writer io.Writer) error {
	switch format {
	case FormatText:
		return WriteText(m, writer, TextOptions{})
	case FormatJSON:
		return writeJSON(m, writer)
	case FormatYAML:
		return writeYAML(m, writer)
	case FormatPlot:
		return WritePlot(m, writer)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func writeJSON(m *Model, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(m)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	return nil
}

// writeYAML goes through JSON so raw export blocks render as structured YAML
// and field order follows the JSON encoding.
func writeYAML(m *Model, writer io.Writer) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("json encode: %w", err)
	}

	var node yaml.Node

	err = yaml.Unmarshal(data, &node)
	if err != nil {
		return fmt.Errorf("yaml decode: %w", err)
	}

	clearStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}

	_, err = writer.Write(out)
	if err != nil {
		return fmt.Errorf("yaml write: %w", err)
	}

	return nil
}

// clearStyle switches flow-style nodes decoded from JSON to block style.
func clearStyle(node *yaml.Node) {
	if node.Kind != yaml.ScalarNode {
		node.Style = 0
	}

	for _, child := range node.Content {
		clearStyle(child)
	}
}
