// Package analyzer inspects decoded values. Decoding is deliberately
// permissive, so the signal that a document did not fully round-trip is
// carried in the result itself: placeholder keys for tokens the dictionary
// did not know. The analyzer surfaces those, plus basic shape statistics.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/skaldra/toon/internal/dictionary"
	"github.com/skaldra/toon/internal/models"
)

// UnknownKey is one placeholder key found in a decoded value.
type UnknownKey struct {
	Path  string // dotted path to the member, e.g. "config.items[2]"
	Token string // the unresolved token
}

// Report summarizes one decoded value.
type Report struct {
	UnknownKeys []UnknownKey
	Objects     int
	Arrays      int
	Primitives  int
	MaxDepth    int
}

// Clean reports whether the value contains no placeholder keys.
func (r Report) Clean() bool {
	return len(r.UnknownKeys) == 0
}

// Summary renders a one-line human summary.
func (r Report) Summary() string {
	return fmt.Sprintf("%d objects, %d arrays, %d primitives, max depth %d, %d unknown tokens",
		r.Objects, r.Arrays, r.Primitives, r.MaxDepth, len(r.UnknownKeys))
}

// Analyzer walks decoded values and accumulates a Report.
type Analyzer struct {
	report Report
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze walks value and returns its report. An Analyzer may be reused;
// each call starts fresh.
func (a *Analyzer) Analyze(value models.JSONValue) Report {
	a.report = Report{}
	a.walk(value, "", 0)
	return a.report
}

func (a *Analyzer) walk(value models.JSONValue, path string, depth int) {
	if depth > a.report.MaxDepth {
		a.report.MaxDepth = depth
	}

	switch v := value.(type) {
	case models.JSONObject:
		a.report.Objects++
		for _, member := range v {
			if token, ok := strings.CutPrefix(member.Key, dictionary.UnknownKeyPrefix); ok {
				a.report.UnknownKeys = append(a.report.UnknownKeys, UnknownKey{
					Path:  joinPath(path, member.Key),
					Token: token,
				})
			}
			a.walk(member.Value, joinPath(path, member.Key), depth+1)
		}
	case models.JSONArray:
		a.report.Arrays++
		for i, element := range v {
			a.walk(element, fmt.Sprintf("%s[%d]", path, i), depth+1)
		}
	default:
		a.report.Primitives++
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
