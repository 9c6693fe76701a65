package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the toon binary once per test into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "toon")
	cmd := exec.Command("go", "build", "-o", bin, "../..")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "go build failed: %s", string(output))
	return bin
}

func TestEndToEnd_EncodeStdinToStdout(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin, "encode")
	cmd.Stdin = strings.NewReader(`{"name": "Goku", "powerLevel": 9001}`)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "encode failed: %s", string(output))

	assert.Equal(t, "01: Goku\n02: 9001\n", string(output))
}

func TestEndToEnd_EncodeThenDecodeWithSeedConfig(t *testing.T) {
	bin := buildBinary(t)
	dir := t.TempDir()

	jsonFile := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(jsonFile, []byte(`{
		"name": "Goku",
		"techniques": ["Kamehameha", "Spirit Bomb"]
	}`), 0o644))

	toonFile := filepath.Join(dir, "out.toon")
	cmd := exec.Command(bin, "encode", "-i", jsonFile, "-o", toonFile)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "encode failed: %s", string(output))

	toonText, err := os.ReadFile(toonFile)
	require.NoError(t, err)
	assert.Equal(t, "01: Goku\n02:\n  - Kamehameha\n  - Spirit Bomb\n", string(toonText))

	// Decoding runs in a fresh process, so the dictionary comes from config.
	configFile := filepath.Join(dir, "toon.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
dictionary:
  seed:
    name: "01"
    techniques: "02"
`), 0o644))

	cmd = exec.Command(bin, "-c", configFile, "decode", "-i", toonFile)
	output, err = cmd.Output()
	require.NoError(t, err, "decode failed")

	want := `{
  "name": "Goku",
  "techniques": [
    "Kamehameha",
    "Spirit Bomb"
  ]
}
`
	assert.Equal(t, want, string(output))
}

func TestEndToEnd_DictGoExport(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin, "dict", "--go", "-p", "dbz")
	cmd.Stdin = strings.NewReader(`{"name": "Goku"}`)
	output, err := cmd.Output()
	require.NoError(t, err, "dict failed")

	code := string(output)
	assert.Contains(t, code, "package dbz")
	assert.Contains(t, code, `TokenName = "01"`)
}

func TestEndToEnd_CheckFlagsUnknownTokens(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin, "check")
	cmd.Stdin = strings.NewReader("99: value")
	output, err := cmd.CombinedOutput()
	require.Error(t, err, "check must exit non-zero on unknown tokens")
	assert.Contains(t, string(output), "unknown token 99")
}

func TestEndToEnd_Version(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "version").Output()
	require.NoError(t, err)
	assert.Contains(t, string(output), "toon version")
}

func TestEndToEnd_InvalidJSONExitsWithError(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin, "encode")
	cmd.Stdin = strings.NewReader(`{"broken": `)
	output, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(output), "JSON parsing error")
}
