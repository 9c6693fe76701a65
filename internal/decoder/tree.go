package decoder

import (
	"strings"

	"github.com/skaldra/toon/internal/models"
)

// nodeKind classifies a source line. The two kinds are mutually exclusive:
// a line is either a dash-marked array item or a token:value object entry.
type nodeKind int

const (
	kindArrayItem nodeKind = iota
	kindObjectEntry
)

// node is one entry of the intermediate parse tree built in pass 1.
// A node either owns children or carries an inline scalar in value;
// children win when both are present.
type node struct {
	depth    int // leading whitespace count of the source line
	kind     nodeKind
	token    string // object entries only
	value    string // raw inline scalar, "" when the node owns children
	children []*node
	parent   *node
}

// buildTree runs pass 1: split the input into non-blank lines, classify
// each, and attach it under the nearest shallower-indented predecessor.
// The returned root is a synthetic sentinel at depth -1. Lines that are
// neither array items nor object entries are not turned into nodes; they
// are returned in dropped for the caller to log or reject.
func buildTree(text string) (root *node, dropped []string) {
	root = &node{depth: -1}
	last := root

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		n := &node{depth: indent}
		switch {
		case strings.HasPrefix(trimmed, models.ItemMarker):
			n.kind = kindArrayItem
			n.value = strings.TrimSpace(trimmed[len(models.ItemMarker):])
		case strings.Contains(trimmed, models.KeySeparator):
			n.kind = kindObjectEntry
			token, rest, _ := strings.Cut(trimmed, models.KeySeparator)
			n.token = strings.TrimSpace(token)
			n.value = strings.TrimSpace(rest)
		default:
			dropped = append(dropped, trimmed)
			continue
		}

		// Pop until the nearest strictly shallower node; the sentinel's
		// depth of -1 guarantees termination. Each pop permanently
		// retires a node, so the walk is amortized linear over the
		// whole document.
		parent := last
		for parent.depth >= n.depth {
			parent = parent.parent
		}
		n.parent = parent
		parent.children = append(parent.children, n)
		last = n
	}

	return root, dropped
}
