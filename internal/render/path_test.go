package render

import "testing"

func TestDerivePath(t *testing.T) {
	cases := []struct {
		source string
		format string
		want   string
	}{
		{"system.puml", "png", "system.png"},
		{"noext", "png", "noext.png"},
		{"doc/diagrams/context/system.puml", "png", "doc/diagrams/context/system.png"},
		{"system.puml", "svg", "system.svg"},
		{"system.txt", "png", "system.txt.png"},
		{"archive.puml.bak", "png", "archive.puml.bak.png"},
	}
	for _, tc := range cases {
		if got := DerivePath(tc.source, tc.format); got != tc.want {
			t.Errorf("DerivePath(%q, %q) = %q, want %q", tc.source, tc.format, got, tc.want)
		}
	}
}
