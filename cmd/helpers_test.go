package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualboard/vaultsite/internal/config"
)

func TestRespondPlainAndJSON(t *testing.T) {
	opts := config.New()
	config.SetCurrent(opts)
	t.Cleanup(func() { config.SetCurrent(nil) })

	command := &cobra.Command{}
	var buf bytes.Buffer
	command.SetOut(&buf)
	require.NoError(t, respond(command, opts, true, "hello", nil, "first", "second"))
	assert.Equal(t, "first\nsecond\nhello\n", buf.String())

	jsonOpts := config.New()
	jsonOpts.JSONOutput = true
	buf.Reset()
	require.NoError(t, respond(command, jsonOpts, true, "msg", map[string]int{"v": 1}, "ignored"))
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Equal(t, "msg", payload["message"])
	assert.Equal(t, true, payload["success"])
	assert.NotContains(t, buf.String(), "ignored")

	config.SetCurrent(nil)
	_, err := options(command)
	assert.Error(t, err)
}

func TestExactArgs(t *testing.T) {
	command := &cobra.Command{Use: "rewrite <content_dir> <mapping_file>"}
	validate := exactArgs(2)
	assert.NoError(t, validate(command, []string{"a", "b"}))

	err := validate(command, []string{"a"})
	require.Error(t, err)
	assert.Equal(t, ExitCodeUsage, ExitCode(err))
	assert.Contains(t, err.Error(), "usage: rewrite <content_dir> <mapping_file>")
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, []string{"> a", "> b"}, prefixed("> ", []string{"a", "b"}))
	assert.Empty(t, prefixed("> ", nil))
}
