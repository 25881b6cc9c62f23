package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitstats/pkg/report"
)

func TestNewJSONItem_EncodeError(t *testing.T) {
	t.Parallel()

	_, err := report.NewJSONItem("bad", nil, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode bad")
}

func TestWriteExport_Valid(t *testing.T) {
	t.Parallel()

	item, err := report.NewJSONItem("files_by_extension", nil, []report.NameValue{{Name: "go", Value: 2}, {Name: "", Value: 1}})
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, report.WriteExport([]report.JSONItem{item}, &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "files_by_extension", decoded[0]["key"])
	assert.Equal(t, []any{}, decoded[0]["summary"])
}

func TestWriteExport_EmptyIsArray(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, report.WriteExport(nil, &buf))
	assert.JSONEq(t, `[]`, buf.String())
}

func TestValidateExport_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not an array": `{"key":"x"}`,
		"missing key":  `[{"summary":[],"data":1}]`,
		"empty key":    `[{"key":"","summary":[],"data":1}]`,
		"extra field":  `[{"key":"x","summary":[],"data":1,"other":true}]`,
		"bad summary":  `[{"key":"x","summary":[{"name":1}],"data":1}]`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := report.ValidateExport([]byte(doc))
			require.ErrorIs(t, err, report.ErrInvalidExport)
		})
	}
}

func TestMarshalExport_RejectsEmptyKey(t *testing.T) {
	t.Parallel()

	data, err := report.MarshalExport([]report.JSONItem{{Summary: []report.SummaryRow{}, Data: []byte(`1`)}})
	require.ErrorIs(t, err, report.ErrInvalidExport)
	assert.Nil(t, data)
}
