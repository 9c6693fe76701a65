package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaldra/toon/internal/config"
)

func testContext(t *testing.T, cfg *config.Config) *Context {
	t.Helper()
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Context{Config: cfg, Logger: slogt.New(t)}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEncodeCmd_FileToFile(t *testing.T) {
	input := writeTempFile(t, "in.json", `{"name": "Goku", "powerLevel": 9001}`)
	output := filepath.Join(t.TempDir(), "out.toon")

	cmd := &EncodeCmd{Input: input, Output: output}
	require.NoError(t, cmd.Run(testContext(t, nil)))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "01: Goku\n02: 9001\n", string(data))
}

func TestEncodeCmd_InvalidJSON(t *testing.T) {
	input := writeTempFile(t, "bad.json", `{"name": `)

	cmd := &EncodeCmd{Input: input, Output: filepath.Join(t.TempDir(), "out.toon")}
	err := cmd.Run(testContext(t, nil))
	require.Error(t, err)
}

func TestEncodeCmd_MissingInput(t *testing.T) {
	cmd := &EncodeCmd{Input: filepath.Join(t.TempDir(), "nope.json")}
	err := cmd.Run(testContext(t, nil))
	require.Error(t, err)
}

func TestDecodeCmd_WithSeededDictionary(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Dictionary.Seed = map[string]string{
		"name":       "01",
		"powerLevel": "02",
	}

	input := writeTempFile(t, "in.toon", "01: Goku\n02: 9001")
	output := filepath.Join(t.TempDir(), "out.json")

	cmd := &DecodeCmd{Input: input, Output: output}
	require.NoError(t, cmd.Run(testContext(t, cfg)))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"Goku\",\n  \"powerLevel\": 9001\n}\n", string(data))
}

func TestDecodeCmd_StrictFlag(t *testing.T) {
	input := writeTempFile(t, "in.toon", "- item\n01: entry")

	cmd := &DecodeCmd{Input: input, Strict: true, Output: filepath.Join(t.TempDir(), "out.json")}
	err := cmd.Run(testContext(t, nil))
	require.Error(t, err)
}

func TestDictCmd_GoExport(t *testing.T) {
	input := writeTempFile(t, "in.json", `{"name": "Goku", "powerLevel": 9001}`)
	output := filepath.Join(t.TempDir(), "tokens.go")

	cmd := &DictCmd{Input: input, Output: output, Go: true, Package: "dbz"}
	require.NoError(t, cmd.Run(testContext(t, nil)))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	code := string(data)
	assert.Contains(t, code, "package dbz")
	assert.Contains(t, code, `TokenName`)
	assert.Contains(t, code, `TokenPowerLevel`)
	assert.Contains(t, code, `"01"`)
	assert.Contains(t, code, "var Keys = map[string]string{")
}

func TestDictCmd_Table(t *testing.T) {
	input := writeTempFile(t, "in.json", `{"name": "Goku"}`)
	output := filepath.Join(t.TempDir(), "dict.txt")

	cmd := &DictCmd{Input: input, Output: output}
	require.NoError(t, cmd.Run(testContext(t, nil)))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session: ")
	assert.Contains(t, string(data), "01  name")
}

func TestCheckCmd_ReportsUnknownTokens(t *testing.T) {
	input := writeTempFile(t, "in.toon", "99: value")

	cmd := &CheckCmd{Input: input}
	err := cmd.Run(testContext(t, nil))
	require.Error(t, err, "unknown tokens should make check fail")
}

func TestCheckCmd_CleanDocument(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Dictionary.Seed = map[string]string{"name": "01"}

	input := writeTempFile(t, "in.toon", "01: Goku")
	cmd := &CheckCmd{Input: input}
	require.NoError(t, cmd.Run(testContext(t, cfg)))
}
