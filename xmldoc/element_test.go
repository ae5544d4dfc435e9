package xmldoc

import (
	"errors"
	"testing"

	"github.com/alacrity-engine/dfanim/dferr"
)

func TestParseDocument(t *testing.T) {
	root, err := Parse([]byte(`<?xml version="1.0"?>
<!-- Generated by darkFunction Editor (www.darkfunction.com) -->
<img name="sheet.png" w="64" h="32">
	<definitions>
		<dir name="/">
			<spr name="a" x="0" y="0" w="8" h="8"/>
		</dir>
	</definitions>
</img>`))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Tag() != "img" {
		t.Fatalf("expected root <img>, got <%s>", root.Tag())
	}

	if name, ok := root.Attr("name"); !ok || name != "sheet.png" {
		t.Fatalf("expected name attribute, got %q %v", name, ok)
	}

	if _, ok := root.Attr("missing"); ok {
		t.Fatalf("absent attribute reported as present")
	}

	defs := ChildrenByTag(root, "definitions")

	if len(defs) != 1 {
		t.Fatalf("expected one <definitions>, got %d", len(defs))
	}

	dirs := defs[0].Children()

	if len(dirs) != 1 || dirs[0].Tag() != "dir" {
		t.Fatalf("expected a single <dir> child")
	}

	if w, ok := Uint(root, "w"); !ok || w != 64 {
		t.Fatalf("expected w=64, got %d %v", w, ok)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`<img name="a"><definitions></img>`))

	if !errors.Is(err, dferr.MalformedXML) {
		t.Fatalf("expected malformed xml error, got %v", err)
	}
}

func TestNumericAttributes(t *testing.T) {
	node := E("spr", A("x", "12", "y", "-3", "z", "abc", "w", " 7 "))

	cases := []struct {
		name     string
		attr     string
		unsigned bool
		want     int64
		ok       bool
	}{
		{"positive", "x", true, 12, true},
		{"negative_signed", "y", false, -3, true},
		{"negative_unsigned", "y", true, 0, false},
		{"non_numeric", "z", false, 0, false},
		{"whitespace", "w", true, 7, true},
		{"absent", "h", false, 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var (
				got int64
				ok  bool
			)

			if c.unsigned {
				var u uint32
				u, ok = Uint(node, c.attr)
				got = int64(u)
			} else {
				got, ok = Int(node, c.attr)
			}

			if ok != c.ok || got != c.want {
				t.Fatalf("expected (%d, %v), got (%d, %v)", c.want, c.ok, got, ok)
			}
		})
	}
}

func TestRequireErrors(t *testing.T) {
	node := E("anim", A("name", "", "loops", "x"))

	if _, err := RequireString(node, "name"); !errors.Is(err, dferr.MissingOrEmptyAttribute) {
		t.Fatalf("expected missing or empty attribute, got %v", err)
	}

	if _, err := RequireInt(node, "loops"); !errors.Is(err, dferr.InvalidNumericAttribute) {
		t.Fatalf("expected invalid numeric attribute, got %v", err)
	}

	if _, err := RequireUint(node, "delay"); !errors.Is(err, dferr.InvalidNumericAttribute) {
		t.Fatalf("expected invalid numeric attribute, got %v", err)
	}
}
