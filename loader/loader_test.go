package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alacrity-engine/dfanim/dferr"
)

const spritesText = `<?xml version="1.0"?>
<img name="n69yj7.png" w="64" h="32">
	<definitions>
		<dir name="/">
			<dir name="brown">
				<spr name="2" x="0" y="0" w="32" h="32"/>
				<spr name="10" x="32" y="0" w="32" h="32"/>
			</dir>
		</dir>
	</definitions>
</img>`

const animText = `<?xml version="1.0"?>
<animations spriteSheet="n69yj7.sprites" ver="1.2">
	<anim name="Animation" loops="0">
		<cell index="0" delay="4">
			<spr name="/brown/2" x="0" y="0" z="0"/>
		</cell>
		<cell index="1" delay="4">
			<spr name="/brown/10" x="0" y="0" z="0"/>
		</cell>
	</anim>
</animations>`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(contents), 0666); err != nil {
		t.Fatalf("couldn't write %s: %v", path, err)
	}

	return path
}

func TestReadWholeFile(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		path string
		ok   bool
	}{
		{"present", writeFile(t, dir, "a.anim", animText), true},
		{"empty", writeFile(t, dir, "empty.anim", ""), false},
		{"missing", filepath.Join(dir, "missing.anim"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			contents, err := ReadWholeFile(c.path)

			if c.ok {
				if err != nil || len(contents) == 0 {
					t.Fatalf("unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, dferr.IoFailure) {
				t.Fatalf("expected io failure, got %v", err)
			}
		})
	}
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "n69yj7.sprites", spritesText)
	animPath := writeFile(t, dir, "hero.anim", animText)

	set, atlas, err := LoadPair(animPath)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if set.Dir != filepath.ToSlash(dir) {
		t.Fatalf("unexpected set dir %q", set.Dir)
	}

	if atlas.ImagePath() != filepath.ToSlash(filepath.Join(dir, "n69yj7.png")) {
		t.Fatalf("unexpected image path %q", atlas.ImagePath())
	}

	a, ok := set.Get("Animation")

	if !ok {
		t.Fatalf("animation not found")
	}

	frame, _ := a.CurrentFrame()

	if _, ok := atlas.Resolve(frame.Layers[0].SpriteName); !ok {
		t.Fatalf("couldn't resolve %q", frame.Layers[0].SpriteName)
	}
}

func TestLoadPairMissingSheet(t *testing.T) {
	dir := t.TempDir()
	animPath := writeFile(t, dir, "hero.anim", animText)

	_, _, err := LoadPair(animPath)

	if !errors.Is(err, dferr.IoFailure) {
		t.Fatalf("expected io failure, got %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.sprites", `<img name="a.png" w="1" h="1"><definitions/></img>`)

	if _, err := LoadAtlas(path); !errors.Is(err, dferr.MissingRootDirectory) {
		t.Fatalf("expected missing root directory, got %v", err)
	}

	if _, err := LoadSet(path); !errors.Is(err, dferr.MissingRequiredNode) {
		t.Fatalf("expected missing required node, got %v", err)
	}
}

func TestIsDefinitionFile(t *testing.T) {
	cases := map[string]bool{
		"hero.anim":      true,
		"sheet.SPRITES":  true,
		"legacy.xml":     true,
		"sheet.png":      false,
		"manifest.yml":   true,
		"meta.YAML":      true,
		"no_extension":   false,
		"dir/hero.anim~": false,
	}

	for name, want := range cases {
		if got := IsDefinitionFile(name); got != want {
			t.Fatalf("IsDefinitionFile(%q): expected %v, got %v", name, want, got)
		}
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)

	if err != nil {
		t.Fatalf("couldn't create the watcher: %v", err)
	}

	defer w.Close()

	writeFile(t, dir, "ignored.png", "png")
	path := writeFile(t, dir, "hero.anim", animText)

	select {
	case name := <-w.Events:
		if name != path {
			t.Fatalf("expected %q, got %q", path, name)
		}

	case <-time.After(5 * time.Second):
		t.Fatalf("no event received")
	}

	sheets := filepath.Join(dir, "sheets")

	if err := os.Mkdir(sheets, 0777); err != nil {
		t.Fatalf("couldn't create the sheet directory: %v", err)
	}

	if err := w.Add(dir, sheets); err != nil {
		t.Fatalf("couldn't watch the sheet directory: %v", err)
	}

	path = writeFile(t, sheets, "hero.sprites", "<img/>")

	// The new directory's creation may be reported first.
	deadline := time.After(5 * time.Second)

	for name := ""; name != path; {
		select {
		case name = <-w.Events:
		case <-deadline:
			t.Fatalf("no event received for %q", path)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("closing twice must be safe: %v", err)
	}
}
