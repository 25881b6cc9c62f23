package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed export_schema.json
var exportSchema []byte

// ErrInvalidExport is returned when an export document does not match the schema.
var ErrInvalidExport = errors.New("export does not match schema")

// NameValue is the element type of histogram-style export data.
type NameValue struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// NewJSONItem encodes data with encoding/json and wraps it into an export block.
func NewJSONItem(key string, summary []SummaryRow, data any) (JSONItem, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return JSONItem{}, fmt.Errorf("encode %s: %w", key, err)
	}

	if summary == nil {
		summary = []SummaryRow{}
	}

	return JSONItem{Key: key, Summary: summary, Data: raw}, nil
}

// EncodeExport serializes export blocks into a JSON array.
func EncodeExport(items []JSONItem) ([]byte, error) {
	if items == nil {
		items = []JSONItem{}
	}

	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(items)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	return buf.Bytes(), nil
}

// ValidateExport checks an encoded export document against the export schema.
func ValidateExport(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(exportSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate export: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidExport, strings.Join(msgs, "; "))
}

// MarshalExport encodes export blocks and validates them against the schema.
func MarshalExport(items []JSONItem) ([]byte, error) {
	data, err := EncodeExport(items)
	if err != nil {
		return nil, err
	}

	err = ValidateExport(data)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// WriteExport encodes, validates and writes export blocks.
func WriteExport(items []JSONItem, writer io.Writer) error {
	data, err := MarshalExport(items)
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	return nil
}
