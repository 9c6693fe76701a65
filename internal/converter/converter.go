// Package converter wires one token dictionary to the encoder and decoder
// and exposes the codec's public contract: Encode, EncodeJSON, Decode,
// DecodeToJSON and Snapshot. A converter instance owns its dictionary, so
// independent converters have independent token spaces.
package converter

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/skaldra/toon/internal/config"
	"github.com/skaldra/toon/internal/decoder"
	"github.com/skaldra/toon/internal/dictionary"
	"github.com/skaldra/toon/internal/encoder"
	"github.com/skaldra/toon/internal/errors"
	"github.com/skaldra/toon/internal/models"
	"github.com/skaldra/toon/internal/parser"
)

// Converter is the codec facade. Safe for concurrent use: the only shared
// mutable state is the dictionary, which guards its own minting.
type Converter struct {
	cfg  *config.Config
	dict *dictionary.Dictionary
	enc  *encoder.Encoder
	dec  *decoder.Decoder
	log  *slog.Logger
}

// New creates a Converter. A nil cfg selects defaults; a nil log falls
// back to slog.Default. The dictionary is seeded from cfg when a seed is
// configured.
func New(cfg *config.Config, log *slog.Logger) (*Converter, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if log == nil {
		log = slog.Default()
	}

	var dict *dictionary.Dictionary
	if len(cfg.Dictionary.Seed) > 0 {
		var err error
		dict, err = dictionary.NewSeeded(cfg.Dictionary.Seed, log)
		if err != nil {
			return nil, err
		}
	} else {
		dict = dictionary.New(log)
	}

	return &Converter{
		cfg:  cfg,
		dict: dict,
		enc:  encoder.New(dict, cfg.MaxDepth),
		dec:  decoder.New(dict, cfg.MaxDepth, cfg.Strict, log),
		log:  log,
	}, nil
}

// Dictionary exposes the converter's dictionary, mainly so callers can
// share one token space across converters or inspect it in tests.
func (c *Converter) Dictionary() *dictionary.Dictionary {
	return c.dict
}

// SessionID identifies the underlying dictionary session.
func (c *Converter) SessionID() string {
	return c.dict.SessionID()
}

// Encode renders an in-memory JSON value as TOON text. It only fails on
// depth exhaustion or values that are not JSON shapes.
func (c *Converter) Encode(value models.JSONValue) (string, error) {
	return c.enc.Encode(value)
}

// EncodeJSON parses raw JSON text and encodes it. Unparsable input is a
// distinct invalid-input error with no partial output.
func (c *Converter) EncodeJSON(jsonText string) (string, error) {
	doc, err := parser.ParseString(jsonText)
	if err != nil {
		return "", err
	}
	return c.enc.Encode(doc.Root)
}

// Decode parses TOON text into a JSON value. Best-effort unless strict
// mode is configured: it always returns something for structurally odd
// input, and callers validate the result themselves (see analyzer).
func (c *Converter) Decode(text string) (models.JSONValue, error) {
	return c.dec.Decode(text)
}

// DecodeToJSON decodes and pretty-prints the result as JSON with the
// configured indentation.
func (c *Converter) DecodeToJSON(text string) (string, error) {
	value, err := c.dec.Decode(text)
	if err != nil {
		return "", err
	}
	indent := strings.Repeat(" ", c.cfg.Output.JSONIndent)
	out, err := json.MarshalIndent(value, "", indent)
	if err != nil {
		return "", errors.NewOutputError("failed to serialize decoded value", err)
	}
	return string(out), nil
}

// Snapshot returns the current dictionary state for display or export.
func (c *Converter) Snapshot() dictionary.Snapshot {
	return c.dict.Snapshot()
}
