package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jsonai/jsonai/internal/buildinfo"
	"github.com/jsonai/jsonai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommandPlainOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "jsonai version")
	assert.Contains(t, output, buildinfo.Version)
}

func TestVersionCommandJSONOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version", "--json"})

	err := rootCmd.Execute()
	require.NoError(t, err)

	var info versionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, buildinfo.Version, info.Version)
	assert.NotEmpty(t, info.OS)
	assert.NotEmpty(t, info.Arch)
}

func TestExecuteReturnsSuccessForVersion(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	code := Execute()
	assert.Equal(t, int(core.ExitSuccess), code)
}
