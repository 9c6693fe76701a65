// Package generator renders a dictionary snapshot as Go source: one
// constant per token plus a reverse lookup table, so applications can
// compile a session's token assignments into their own code.
package generator

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/skaldra/toon/internal/config"
	"github.com/skaldra/toon/internal/dictionary"
	"github.com/skaldra/toon/internal/errors"
)

// Generator is responsible for generating the Go token table.
type Generator struct{}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateTokenTable renders snap as a Go file in the configured package.
// Entries are emitted in first-seen order, matching token numbering.
func (g *Generator) GenerateTokenTable(snap dictionary.Snapshot, cfg *config.Config) (string, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if len(snap.Entries) == 0 {
		return "", errors.NewGenerateError("dictionary is empty, nothing to export", nil)
	}

	type constDef struct {
		name  string
		token string
		key   string
	}

	defs := make([]constDef, 0, len(snap.Entries))
	used := make(map[string]bool, len(snap.Entries))
	for _, entry := range snap.Entries {
		name := cfg.GetConstName(entry.Key)
		// Distinct keys can collapse to the same constant name; suffix
		// the token digits to keep the file compiling.
		if used[name] {
			name += entry.Token
		}
		used[name] = true
		defs = append(defs, constDef{name: name, token: entry.Token, key: entry.Key})
	}

	maxNameWidth := 0
	for _, def := range defs {
		if len(def.name) > maxNameWidth {
			maxNameWidth = len(def.name)
		}
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("package %s\n\n", cfg.Export.Package))

	buf.WriteString("// Tokens assigned to JSON object keys, in assignment order.\n")
	buf.WriteString("const (\n")
	for _, def := range defs {
		buf.WriteString(fmt.Sprintf("\t%-*s = %s // %s\n",
			maxNameWidth, def.name, strconv.Quote(def.token), def.key))
	}
	buf.WriteString(")\n\n")

	buf.WriteString("// Keys maps each token back to its original JSON key.\n")
	buf.WriteString("var Keys = map[string]string{\n")
	for _, def := range defs {
		buf.WriteString(fmt.Sprintf("\t%s: %s,\n", def.name, strconv.Quote(def.key)))
	}
	buf.WriteString("}\n")

	return buf.String(), nil
}
