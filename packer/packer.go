// Package packer stores parsed animations in an
// alacrity resource file.
package packer

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/alacrity-engine/core/math/geometry"
	codec "github.com/alacrity-engine/resource-codec"
	bolt "go.etcd.io/bbolt"

	"github.com/alacrity-engine/dfanim/anim"
	"github.com/alacrity-engine/dfanim/dferr"
	"github.com/alacrity-engine/dfanim/loader"
	"github.com/alacrity-engine/dfanim/sprite"
)

const (
	animationsBucket = "animations"
	tagsBucket       = "tags"
	texturesBucket   = "textures"
)

// Source is a loaded animation definition
// together with its sprite sheet.
type Source struct {
	Entry Entry
	Set   *anim.Set
	Atlas *sprite.Atlas
}

// LoadSources loads every file of the manifest.
// File paths are relative to baseDir.
func LoadSources(baseDir string, manifest Manifest) ([]Source, error) {
	sources := make([]Source, 0, len(manifest.Entries))

	for _, entry := range manifest.Entries {
		path := entry.File

		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		set, atlas, err := loader.LoadPair(path)

		if err != nil {
			return nil, err
		}

		sources = append(sources, Source{
			Entry: entry,
			Set:   set,
			Atlas: atlas,
		})
	}

	return sources, nil
}

// names returns the animations of the source to pack.
func (source Source) names() ([]string, error) {
	if len(source.Entry.Animations) == 0 {
		return source.Set.Names(), nil
	}

	for _, name := range source.Entry.Animations {
		if _, ok := source.Set.Get(name); !ok {
			return nil, fmt.Errorf(
				"animation '%s' not found in '%s'", name, source.Entry.File)
		}
	}

	return source.Entry.Animations, nil
}

// BuildAnimation converts the animation into the resource
// representation. Each frame is represented by the sprite
// of its first layer.
func BuildAnimation(a *anim.Animation, atlas *sprite.Atlas, textureID string) (*codec.AnimationData, error) {
	data := &codec.AnimationData{
		TextureID: textureID,
		Frames:    make([]geometry.Rect, 0, a.Len()),
		Durations: make([]int32, 0, a.Len()),
	}

	for _, frame := range a.Frames() {
		if len(frame.Layers) == 0 {
			return nil, dferr.New(dferr.UnresolvedSprite,
				"cell %d of animation '%s' has no sprites", frame.Index, a.Name)
		}

		spritePath := frame.Layers[0].SpriteName
		rect, ok := atlas.Resolve(spritePath)

		if !ok {
			return nil, dferr.New(dferr.UnresolvedSprite,
				"sprite '%s' of animation '%s' not found", spritePath, a.Name)
		}

		if frame.DelayMillis > math.MaxInt32 {
			return nil, dferr.New(dferr.InvalidNumericAttribute,
				"cell %d of animation '%s' is too long: %dms",
				frame.Index, a.Name, frame.DelayMillis)
		}

		data.Frames = append(data.Frames, geometry.R(
			float64(rect.X), float64(rect.Y),
			float64(rect.X)+float64(rect.W), float64(rect.Y)+float64(rect.H)))
		data.Durations = append(data.Durations, int32(frame.DelayMillis))
	}

	return data, nil
}

// Pack stores every animation of the sources in the
// animations bucket and their names grouped by tag in
// the tags bucket. Everything is written in a single
// transaction, so nothing is stored if any of it fails.
func Pack(db *bolt.DB, sources []Source) error {
	return db.Update(func(tx *bolt.Tx) error {
		animBucket, err := tx.CreateBucketIfNotExists([]byte(animationsBucket))

		if err != nil {
			return err
		}

		// Textures are packed by a different tool. If they
		// have already been packed, the texture must exist.
		textureBuck := tx.Bucket([]byte(texturesBucket))
		animTags := map[string][]string{}
		var tagOrder []string

		for _, source := range sources {
			names, err := source.names()

			if err != nil {
				return err
			}

			if textureBuck != nil && textureBuck.Get([]byte(source.Entry.TextureID)) == nil {
				return fmt.Errorf(
					"texture '%s' not found", source.Entry.TextureID)
			}

			for _, name := range names {
				a, _ := source.Set.Get(name)
				key := source.Entry.Prefix + name

				if err := packAnimation(animBucket, key, a, source); err != nil {
					return fmt.Errorf("couldn't pack animation '%s': %w", key, err)
				}

				tag := source.Entry.Tag

				if tag == "" {
					continue
				}

				if _, ok := animTags[tag]; !ok {
					tagOrder = append(tagOrder, tag)
				}

				animTags[tag] = append(animTags[tag], key)
			}
		}

		if len(tagOrder) == 0 {
			return nil
		}

		tagBucket, err := tx.CreateBucketIfNotExists([]byte(tagsBucket))

		if err != nil {
			return err
		}

		for _, tagID := range tagOrder {
			tagData, err := codec.EncodeTag(animTags[tagID])

			if err != nil {
				return fmt.Errorf("couldn't pack tag '%s': %w", tagID, err)
			}

			if err := tagBucket.Put([]byte(tagID), tagData); err != nil {
				return fmt.Errorf("couldn't pack tag '%s': %w", tagID, err)
			}
		}

		return nil
	})
}

func packAnimation(buck *bolt.Bucket, key string, a *anim.Animation, source Source) error {
	animData, err := BuildAnimation(a, source.Atlas, source.Entry.TextureID)

	if err != nil {
		return err
	}

	data, err := animData.ToBytes()

	if err != nil {
		return err
	}

	return buck.Put([]byte(key), data)
}

// WatchDirs returns the directories holding the manifest,
// the animation files and their sprite sheets, without
// duplicates.
func WatchDirs(manifestDir string, sources []Source) []string {
	seen := map[string]bool{}
	var dirs []string

	add := func(dir string) {
		dir = filepath.Clean(dir)

		if seen[dir] {
			return
		}

		seen[dir] = true
		dirs = append(dirs, dir)
	}

	add(manifestDir)

	for _, source := range sources {
		add(filepath.FromSlash(source.Set.Dir))
		add(filepath.Dir(filepath.FromSlash(source.Set.SpriteSheetPath())))
	}

	return dirs
}
