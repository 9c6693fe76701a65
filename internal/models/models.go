package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// JSONValue is a generic type to represent any JSON value.
// The concrete types used throughout the codec are:
//
//	nil          JSON null
//	bool         JSON boolean
//	json.Number  JSON number (kept textual so output is byte-stable)
//	string       JSON string
//	JSONObject   JSON object (ordered)
//	JSONArray    JSON array
type JSONValue interface{}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value JSONValue
}

// JSONObject represents a JSON object as an ordered list of members.
// Insertion order is load-bearing: token assignment during encoding
// follows member order, so a map-based representation would make token
// numbering nondeterministic.
type JSONObject []Member

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Get returns the value for key and whether it is present.
func (o JSONObject) Get(key string) (JSONValue, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// MarshalJSON emits the object's members in insertion order so that
// encoding/json (including MarshalIndent) preserves it.
func (o JSONObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Normalize converts raw encoding/json container types into the model
// types. Plain Go maps carry no ordering, so their keys are sorted to
// keep token assignment deterministic; values produced by internal/parser
// never hit that path and keep their source order.
func Normalize(val JSONValue) JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := make(JSONObject, 0, len(v))
		for _, key := range keys {
			obj = append(obj, Member{Key: key, Value: Normalize(v[key])})
		}
		return obj
	case JSONObject:
		obj := make(JSONObject, 0, len(v))
		for _, m := range v {
			obj = append(obj, Member{Key: m.Key, Value: Normalize(m.Value)})
		}
		return obj
	case []interface{}:
		arr := make(JSONArray, len(v))
		for i, value := range v {
			arr[i] = Normalize(value)
		}
		return arr
	case JSONArray:
		arr := make(JSONArray, len(v))
		for i, value := range v {
			arr[i] = Normalize(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}

// Document holds a parsed JSON value along with root shape information.
type Document struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}
