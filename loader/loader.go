// Package loader reads sprite sheet and animation
// definitions from disk.
package loader

import (
	"os"
	"path/filepath"

	"github.com/alacrity-engine/dfanim/anim"
	"github.com/alacrity-engine/dfanim/dferr"
	"github.com/alacrity-engine/dfanim/sprite"
)

// ReadWholeFile reads the file into memory.
// An empty file is an error.
func ReadWholeFile(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)

	if err != nil {
		return nil, dferr.From(dferr.IoFailure, err,
			"couldn't read '%s'", path)
	}

	if len(contents) == 0 {
		return nil, dferr.New(dferr.IoFailure,
			"the file '%s' is empty", path)
	}

	return contents, nil
}

// LoadAtlas reads a sprite sheet definition (*.sprites).
func LoadAtlas(path string) (*sprite.Atlas, error) {
	contents, err := ReadWholeFile(path)

	if err != nil {
		return nil, err
	}

	atlas, err := sprite.ParseAtlasText(contents)

	if err != nil {
		return nil, dferr.Wrap(err, "couldn't parse '%s'", path)
	}

	atlas.Dir = filepath.ToSlash(filepath.Dir(path))

	return atlas, nil
}

// LoadSet reads an animation definition (*.anim).
func LoadSet(path string) (*anim.Set, error) {
	contents, err := ReadWholeFile(path)

	if err != nil {
		return nil, err
	}

	set, err := anim.ParseSetText(contents)

	if err != nil {
		return nil, dferr.Wrap(err, "couldn't parse '%s'", path)
	}

	set.Dir = filepath.ToSlash(filepath.Dir(path))

	return set, nil
}

// LoadPair reads an animation definition together
// with the sprite sheet definition it refers to.
func LoadPair(animPath string) (*anim.Set, *sprite.Atlas, error) {
	set, err := LoadSet(animPath)

	if err != nil {
		return nil, nil, err
	}

	atlas, err := LoadAtlas(filepath.FromSlash(set.SpriteSheetPath()))

	if err != nil {
		return nil, nil, dferr.Wrap(err,
			"couldn't load the sprite sheet of '%s'", animPath)
	}

	return set, atlas, nil
}
