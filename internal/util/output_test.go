package util

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSONResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, StructuredResult(true, "mapped <7> pages", map[string]int{"pages": 7})))
	assert.Contains(t, buf.String(), "mapped <7> pages", "html must not be escaped")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["success"])
	assert.Equal(t, float64(7), decoded["data"].(map[string]interface{})["pages"])
}

func TestStructuredResultOmitsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, StructuredResult(false, "", nil)))
	assert.JSONEq(t, `{"success": false}`, buf.String())
}

func TestPrintLines(t *testing.T) {
	var buf bytes.Buffer
	PrintLines(&buf, "one", "two")
	assert.Equal(t, "one\ntwo\n", buf.String())

	buf.Reset()
	PrintLines(&buf)
	assert.Empty(t, buf.String())
}
