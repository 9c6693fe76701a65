package decoder

import (
	"strings"
	"testing"
)

func TestBuildTree_ClassifiesLines(t *testing.T) {
	text := strings.Join([]string{
		"01: Goku",
		"02:",
		"  - Kamehameha",
		"  - Spirit Bomb",
	}, "\n")

	root, dropped := buildTree(text)
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v, want none", dropped)
	}
	if len(root.children) != 2 {
		t.Fatalf("root children = %d, want 2", len(root.children))
	}

	first := root.children[0]
	if first.kind != kindObjectEntry || first.token != "01" || first.value != "Goku" {
		t.Errorf("first node = %+v, want object entry 01=Goku", first)
	}

	second := root.children[1]
	if second.kind != kindObjectEntry || second.value != "" {
		t.Errorf("second node = %+v, want childless-value object entry", second)
	}
	if len(second.children) != 2 {
		t.Fatalf("second node children = %d, want 2", len(second.children))
	}
	for _, c := range second.children {
		if c.kind != kindArrayItem {
			t.Errorf("nested child = %+v, want array item", c)
		}
	}
	if second.children[0].value != "Kamehameha" {
		t.Errorf("item value = %q", second.children[0].value)
	}
}

func TestBuildTree_ParentResolutionPopsSiblings(t *testing.T) {
	text := strings.Join([]string{
		"01:",
		"  02: a",
		"  03:",
		"    04: b",
		"05: c",
	}, "\n")

	root, _ := buildTree(text)
	if len(root.children) != 2 {
		t.Fatalf("root children = %d, want 2 (01 and 05)", len(root.children))
	}

	outer := root.children[0]
	if len(outer.children) != 2 {
		t.Fatalf("01 children = %d, want 2", len(outer.children))
	}
	inner := outer.children[1]
	if len(inner.children) != 1 || inner.children[0].token != "04" {
		t.Errorf("03 children = %+v, want single 04", inner.children)
	}
	if root.children[1].token != "05" {
		t.Errorf("second root child = %+v, want 05", root.children[1])
	}
}

func TestBuildTree_SkipsBlankAndUnclassifiableLines(t *testing.T) {
	text := strings.Join([]string{
		"",
		"01: a",
		"   ",
		"not a toon line",
		"02: b",
	}, "\n")

	root, dropped := buildTree(text)
	if len(root.children) != 2 {
		t.Errorf("root children = %d, want 2", len(root.children))
	}
	if len(dropped) != 1 || dropped[0] != "not a toon line" {
		t.Errorf("dropped = %v, want the prose line", dropped)
	}
}

func TestBuildTree_DashWithInlineValue(t *testing.T) {
	root, _ := buildTree("- 42")
	if len(root.children) != 1 {
		t.Fatal("want one node")
	}
	n := root.children[0]
	if n.kind != kindArrayItem || n.value != "42" || n.depth != 0 {
		t.Errorf("node = %+v", n)
	}
}

func TestBuildTree_SplitsAtFirstSeparator(t *testing.T) {
	root, _ := buildTree("01: http://example.com: page")
	n := root.children[0]
	if n.token != "01" || n.value != "http://example.com: page" {
		t.Errorf("node = %+v, want split at first colon only", n)
	}
}
