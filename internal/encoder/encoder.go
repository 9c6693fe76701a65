// Package encoder renders a JSON value as TOON text: object keys replaced
// by dictionary tokens, containers expressed through two-space indentation.
package encoder

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/skaldra/toon/internal/dictionary"
	"github.com/skaldra/toon/internal/errors"
	"github.com/skaldra/toon/internal/models"
)

// DefaultMaxDepth bounds recursion when no explicit limit is configured.
const DefaultMaxDepth = 64

// Encoder walks a JSON value and emits TOON lines. It is stateless apart
// from the dictionary it mints tokens from, so one encoder may be reused
// across calls.
type Encoder struct {
	dict     *dictionary.Dictionary
	maxDepth int
}

// New creates an Encoder minting tokens from dict. maxDepth <= 0 selects
// DefaultMaxDepth.
func New(dict *dictionary.Dictionary, maxDepth int) *Encoder {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Encoder{dict: dict, maxDepth: maxDepth}
}

// Encode renders value as TOON text. A root-level primitive (or empty
// container) renders to its inline form directly; everything else becomes
// newline-joined indented lines. No trailing newline is appended.
func (e *Encoder) Encode(value models.JSONValue) (string, error) {
	value = models.Normalize(value)

	if isInline(value) {
		return renderInline(value)
	}

	lines, err := e.encodeValue(value, 0)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// encodeValue returns the lines for one container value at the given
// depth. Each recursive call returns its own slice; callers concatenate,
// so sibling emission order is explicit rather than threaded through
// shared state.
func (e *Encoder) encodeValue(value models.JSONValue, depth int) ([]string, error) {
	if depth >= e.maxDepth {
		return nil, errors.NewResourceError(
			fmt.Sprintf("value nested deeper than %d levels", e.maxDepth),
			errors.ErrMaxDepthExceeded,
		)
	}

	indent := strings.Repeat(models.IndentUnit, depth)

	switch v := value.(type) {
	case models.JSONObject:
		lines := make([]string, 0, len(v))
		for _, member := range v {
			token := e.dict.TokenFor(member.Key)
			if isInline(member.Value) {
				rendered, err := renderInline(member.Value)
				if err != nil {
					return nil, err
				}
				lines = append(lines, indent+token+models.KeySeparator+" "+rendered)
				continue
			}
			lines = append(lines, indent+token+models.KeySeparator)
			children, err := e.encodeValue(member.Value, depth+1)
			if err != nil {
				return nil, err
			}
			lines = append(lines, children...)
		}
		return lines, nil

	case models.JSONArray:
		lines := make([]string, 0, len(v))
		for _, element := range v {
			if isInline(element) {
				rendered, err := renderInline(element)
				if err != nil {
					return nil, err
				}
				lines = append(lines, indent+models.ItemMarker+" "+rendered)
				continue
			}
			// A container element gets a bare dash line; its content
			// follows one level deeper. The first key of an object
			// element is not fused onto the dash line.
			lines = append(lines, indent+models.ItemMarker)
			children, err := e.encodeValue(element, depth+1)
			if err != nil {
				return nil, err
			}
			lines = append(lines, children...)
		}
		return lines, nil

	default:
		rendered, err := renderInline(value)
		if err != nil {
			return nil, err
		}
		return []string{indent + rendered}, nil
	}
}

// isInline reports whether a value renders to a single inline form:
// primitives and empty containers.
func isInline(value models.JSONValue) bool {
	switch v := value.(type) {
	case models.JSONObject:
		return len(v) == 0
	case models.JSONArray:
		return len(v) == 0
	default:
		return true
	}
}

// renderInline renders a primitive or empty container.
func renderInline(value models.JSONValue) (string, error) {
	switch v := value.(type) {
	case nil:
		return models.NullLiteral, nil
	case bool:
		if v {
			return models.TrueLiteral, nil
		}
		return models.FalseLiteral, nil
	case json.Number:
		return v.String(), nil
	case string:
		// Verbatim: TOON has no string escaping. Strings containing the
		// separator, marker or newlines will not round-trip.
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case models.JSONObject:
		if len(v) == 0 {
			return models.EmptyObjectLiteral, nil
		}
		return "", errors.NewEncodeError("non-empty object has no inline form", nil)
	case models.JSONArray:
		if len(v) == 0 {
			return models.EmptyArrayLiteral, nil
		}
		return "", errors.NewEncodeError("non-empty array has no inline form", nil)
	default:
		return "", errors.NewEncodeError(fmt.Sprintf("unsupported value type %T", value), nil)
	}
}
