package generator

import (
	"go/format"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skaldra/toon/internal/config"
	"github.com/skaldra/toon/internal/dictionary"
	"github.com/skaldra/toon/internal/errors"
)

func snapshotOf(entries ...dictionary.Entry) dictionary.Snapshot {
	snap := dictionary.Snapshot{
		KeyToToken: map[string]string{},
		TokenToKey: map[string]string{},
		Entries:    entries,
	}
	for _, e := range entries {
		snap.KeyToToken[e.Key] = e.Token
		snap.TokenToKey[e.Token] = e.Key
	}
	return snap
}

func TestGenerateTokenTable_SimpleSnapshot(t *testing.T) {
	snap := snapshotOf(
		dictionary.Entry{Key: "name", Token: "01"},
		dictionary.Entry{Key: "power_level", Token: "02"},
	)

	code, err := NewGenerator().GenerateTokenTable(snap, config.NewConfig())
	require.NoError(t, err)

	expected := `package toontokens

// Tokens assigned to JSON object keys, in assignment order.
const (
	TokenName       = "01" // name
	TokenPowerLevel = "02" // power_level
)

// Keys maps each token back to its original JSON key.
var Keys = map[string]string{
	TokenName: "name",
	TokenPowerLevel: "power_level",
}
`
	assert.Equal(t, expected, code)
}

func TestGenerateTokenTable_IsGofmtCompatible(t *testing.T) {
	snap := snapshotOf(
		dictionary.Entry{Key: "name", Token: "01"},
		dictionary.Entry{Key: "powerLevel", Token: "02"},
		dictionary.Entry{Key: "a-strange key!", Token: "03"},
	)

	code, err := NewGenerator().GenerateTokenTable(snap, config.NewConfig())
	require.NoError(t, err)

	_, err = format.Source([]byte(code))
	require.NoError(t, err, "generated code must parse as Go")
}

func TestGenerateTokenTable_CollidingNamesGetSuffixed(t *testing.T) {
	// Both keys camel-case to TokenUserId.
	snap := snapshotOf(
		dictionary.Entry{Key: "user_id", Token: "01"},
		dictionary.Entry{Key: "userId", Token: "02"},
	)

	code, err := NewGenerator().GenerateTokenTable(snap, config.NewConfig())
	require.NoError(t, err)

	assert.Contains(t, code, "TokenUserId ")
	assert.Contains(t, code, "TokenUserId02")

	_, err = format.Source([]byte(code))
	require.NoError(t, err)
}

func TestGenerateTokenTable_CustomPackageAndPrefix(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Export.Package = "dict"
	cfg.Export.ConstPrefix = "Tok"

	snap := snapshotOf(dictionary.Entry{Key: "name", Token: "01"})
	code, err := NewGenerator().GenerateTokenTable(snap, cfg)
	require.NoError(t, err)

	assert.Contains(t, code, "package dict\n")
	assert.Contains(t, code, `TokName = "01"`)
}

func TestGenerateTokenTable_EmptySnapshot(t *testing.T) {
	_, err := NewGenerator().GenerateTokenTable(snapshotOf(), config.NewConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, &errors.AppError{Type: errors.ErrorTypeGenerate})
}
