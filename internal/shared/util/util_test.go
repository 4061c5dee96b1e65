package util

import "testing"

func TestNormalizePatternPath(t *testing.T) {
	cases := map[string]string{
		"./app/models":    "app/models",
		"app\\models":     "app/models",
		"  app/routes/ ":  "app/routes",
		".":               "",
		"app//components": "app/components",
	}
	for in, want := range cases {
		if got := NormalizePatternPath(in); got != want {
			t.Errorf("NormalizePatternPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasPathPrefix(t *testing.T) {
	if !HasPathPrefix("app/models/user.js", "app/models") {
		t.Error("expected prefix match")
	}
	if HasPathPrefix("app/modelsx/user.js", "app/models") {
		t.Error("segment boundary should be respected")
	}
	if !HasPathPrefix("app/models", "app/models") {
		t.Error("exact match should hold")
	}
}

func TestPathSegment(t *testing.T) {
	if !PathSegment("app/models/user.js", "models") {
		t.Error("expected segment match")
	}
	if PathSegment("app/mixins/models-helper.js", "models") {
		t.Error("partial segment should not match")
	}
}

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	keys := SortedStringKeys(m)
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("unexpected order: %v", keys)
	}
}
