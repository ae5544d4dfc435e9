package packer

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Entry describes an animation definition
// file to pack, read from the YAML manifest.
type Entry struct {
	// File is the *.anim file path relative
	// to the manifest.
	File      string `yaml:"file"`
	Tag       string `yaml:"tag"`
	TextureID string `yaml:"textureID"`
	// Prefix is prepended to every animation
	// name to form its resource key.
	Prefix string `yaml:"prefix"`
	// Animations limits packing to the listed
	// animations. All of them are packed if empty.
	Animations []string `yaml:"animations"`
}

// Manifest is the list of files to pack.
type Manifest struct {
	Entries []Entry `yaml:"entries"`
}

// ReadManifest parses the YAML manifest.
func ReadManifest(contents []byte) (Manifest, error) {
	var manifest Manifest

	if err := yaml.UnmarshalStrict(contents, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("couldn't parse the manifest: %w", err)
	}

	for i, entry := range manifest.Entries {
		if entry.File == "" {
			return Manifest{}, fmt.Errorf("entry %d has no file", i)
		}

		if entry.TextureID == "" {
			return Manifest{}, fmt.Errorf(
				"entry '%s' has no texture ID", entry.File)
		}
	}

	return manifest, nil
}
