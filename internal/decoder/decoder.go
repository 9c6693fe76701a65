// Package decoder parses TOON text back into a JSON value. It is a
// two-pass design: pass 1 builds a generic indentation tree from the
// source lines, pass 2 walks that tree and re-synthesizes objects, arrays
// and primitives, resolving tokens through the dictionary.
//
// Decoding is best-effort by default. Unknown tokens become placeholder
// keys, mixed sibling shapes fall back to an object, and unclassifiable
// lines are dropped; callers that need hard guarantees enable strict mode.
package decoder

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/skaldra/toon/internal/dictionary"
	"github.com/skaldra/toon/internal/errors"
	"github.com/skaldra/toon/internal/models"
)

// DefaultMaxDepth bounds reconstruction recursion when no explicit limit
// is configured.
const DefaultMaxDepth = 64

// numberPattern is the JSON number grammar. The encoder only ever emits
// numbers in this surface syntax, so anything outside it stays a string.
var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Decoder reconstructs JSON values from TOON text. It never mints tokens;
// the dictionary is read-only from its point of view.
type Decoder struct {
	dict     *dictionary.Dictionary
	maxDepth int
	strict   bool
	log      *slog.Logger
}

// New creates a Decoder resolving tokens through dict. maxDepth <= 0
// selects DefaultMaxDepth. In strict mode structural ambiguity and
// unclassifiable lines are errors instead of fallbacks.
func New(dict *dictionary.Dictionary, maxDepth int, strict bool, log *slog.Logger) *Decoder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = slog.Default()
	}
	return &Decoder{dict: dict, maxDepth: maxDepth, strict: strict, log: log}
}

// Decode parses text into a JSON value.
func (d *Decoder) Decode(text string) (models.JSONValue, error) {
	root, dropped := buildTree(text)

	// A document with no structural lines at all is a bare scalar: the
	// encoder emits root-level primitives without any markers, including
	// strings that happen to span several lines.
	if len(root.children) == 0 {
		return parseScalar(strings.TrimSpace(text)), nil
	}

	if len(dropped) > 0 {
		if d.strict {
			return nil, errors.NewDecodeError(
				fmt.Sprintf("%d unclassifiable lines, first: %q", len(dropped), dropped[0]),
				errors.ErrAmbiguousInput,
			)
		}
		for _, line := range dropped {
			d.log.Debug("dropped unclassifiable line", "line", line)
		}
	}

	return d.valueFromNode(root, 0)
}

// valueFromNode runs pass 2 for one subtree. The node's children decide
// the container shape: all array items make an array, all object entries
// make an object, and a mixed set degrades to an object that keeps only
// the keyed children.
func (d *Decoder) valueFromNode(n *node, depth int) (models.JSONValue, error) {
	if depth >= d.maxDepth {
		return nil, errors.NewResourceError(
			fmt.Sprintf("document nested deeper than %d levels", d.maxDepth),
			errors.ErrMaxDepthExceeded,
		)
	}

	if len(n.children) == 0 {
		return parseScalar(n.value), nil
	}

	items, entries := 0, 0
	for _, c := range n.children {
		if c.kind == kindArrayItem {
			items++
		} else {
			entries++
		}
	}

	switch {
	case entries == 0: // homogeneous array items
		arr := make(models.JSONArray, 0, len(n.children))
		for _, c := range n.children {
			value, err := d.childValue(c, depth)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		return arr, nil

	case items == 0: // homogeneous object entries
		obj := make(models.JSONObject, 0, len(n.children))
		for _, c := range n.children {
			value, err := d.childValue(c, depth)
			if err != nil {
				return nil, err
			}
			obj = append(obj, models.Member{Key: d.dict.KeyFor(c.token), Value: value})
		}
		return obj, nil

	default: // mixed siblings
		if d.strict {
			return nil, errors.NewDecodeError(
				fmt.Sprintf("%d array items mixed with %d object entries at the same level", items, entries),
				errors.ErrAmbiguousInput,
			)
		}
		d.log.Debug("mixed sibling shapes, falling back to object",
			"items", items,
			"entries", entries,
		)
		obj := make(models.JSONObject, 0, entries)
		for _, c := range n.children {
			if c.kind == kindArrayItem {
				continue // no token to key it under
			}
			value, err := d.childValue(c, depth)
			if err != nil {
				return nil, err
			}
			obj = append(obj, models.Member{Key: d.dict.KeyFor(c.token), Value: value})
		}
		return obj, nil
	}
}

// childValue resolves one child: recurse when it owns children, otherwise
// scalar-parse its inline value.
func (d *Decoder) childValue(c *node, depth int) (models.JSONValue, error) {
	if len(c.children) > 0 {
		return d.valueFromNode(c, depth+1)
	}
	return parseScalar(c.value), nil
}

// parseScalar interprets a leaf inline value, case-sensitively. The empty
// string and the null literal are null; the boolean literals map to bools;
// the empty-container literals the encoder emits inline map back to empty
// containers; JSON-grammar numbers become json.Number; everything else is
// the literal string.
func parseScalar(raw string) models.JSONValue {
	switch raw {
	case "", models.NullLiteral:
		return nil
	case models.TrueLiteral:
		return true
	case models.FalseLiteral:
		return false
	case models.EmptyArrayLiteral:
		return models.JSONArray{}
	case models.EmptyObjectLiteral:
		return models.JSONObject{}
	}
	if numberPattern.MatchString(raw) {
		return json.Number(raw)
	}
	return raw
}
