// Package anim reads darkFunction animation
// definitions (*.anim) and plays them back.
//
// The format looks like this:
//
//	<animations spriteSheet="n69yj7.sprites" ver="1.2">
//	  <anim name="Animation" loops="0">
//	    <cell index="0" delay="4">
//	      <spr name="/brown/2" x="0" y="0" z="0"/>
//	    </cell>
//	  </anim>
//	</animations>
package anim

import (
	"math"
	"path"

	"github.com/alacrity-engine/dfanim/dferr"
	"github.com/alacrity-engine/dfanim/xmldoc"
)

// DelayUnitMillis is the length of a
// single editor delay unit in milliseconds.
const DelayUnitMillis = 100

// Set is a parsed animation definition file.
type Set struct {
	// SpriteSheet is the sprite sheet definition
	// file the animations refer to.
	SpriteSheet string
	Version     string
	// Dir is the directory the definition was
	// loaded from. It's empty for in-memory text.
	Dir string

	anims map[string]*Animation
	order []string
}

// ParseSetText parses an animation definition
// held in memory.
func ParseSetText(text []byte) (*Set, error) {
	root, err := xmldoc.Parse(text)

	if err != nil {
		return nil, err
	}

	return ParseSet(root)
}

// ParseSet builds a set out of the <animations> root element.
func ParseSet(root xmldoc.Element) (*Set, error) {
	if root == nil || root.Tag() != "animations" {
		return nil, dferr.New(dferr.MissingRequiredNode,
			"Cannot find node <animations> !")
	}

	set := &Set{anims: map[string]*Animation{}}
	var err error

	set.SpriteSheet, err = xmldoc.RequireString(root, "spriteSheet")

	if err != nil {
		return nil, err
	}

	set.Version, err = xmldoc.RequireString(root, "ver")

	if err != nil {
		return nil, err
	}

	if len(root.Children()) == 0 {
		return nil, dferr.New(dferr.MissingRequiredNode,
			"The <animations> node does not have child nodes!")
	}

	for _, node := range xmldoc.ChildrenByTag(root, "anim") {
		a, err := parseAnimation(node)

		if err != nil {
			return nil, dferr.Wrap(err, "Parsing <anim> failed!")
		}

		if _, ok := set.anims[a.Name]; !ok {
			set.order = append(set.order, a.Name)
		}

		set.anims[a.Name] = a
	}

	return set, nil
}

// Get returns a copy of the animation with the given
// name. Every copy has its own playback cursor.
func (set *Set) Get(name string) (*Animation, bool) {
	a, ok := set.anims[name]

	if !ok {
		return nil, false
	}

	return a.Clone(), true
}

// Names returns the animation names in document order.
func (set *Set) Names() []string {
	return append([]string(nil), set.order...)
}

// Len returns the number of animations.
func (set *Set) Len() int {
	return len(set.anims)
}

// SpriteSheetPath returns the sprite sheet file name
// joined with the directory the set came from.
func (set *Set) SpriteSheetPath() string {
	if set.Dir == "" {
		return set.SpriteSheet
	}

	return path.Join(set.Dir, set.SpriteSheet)
}

func parseAnimation(node xmldoc.Element) (*Animation, error) {
	name, err := xmldoc.RequireString(node, "name")

	if err != nil {
		return nil, err
	}

	loops, err := xmldoc.RequireInt(node, "loops")

	if err != nil {
		return nil, dferr.Wrap(err, "Parsing <anim name='%s'> failed!", name)
	}

	var frames []Frame

	for _, child := range xmldoc.ChildrenByTag(node, "cell") {
		frame, err := parseFrame(child)

		if err != nil {
			return nil, dferr.Wrap(err,
				"Parsing <cell> from <anim name='%s'> failed!", name)
		}

		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		return nil, dferr.New(dferr.MissingRequiredNode,
			"The <anim name='%s'> node does not have <cell> nodes!", name)
	}

	return &Animation{
		Name:      name,
		LoopCount: int(loops),
		frames:    frames,
	}, nil
}

func parseFrame(node xmldoc.Element) (Frame, error) {
	var (
		frame Frame
		err   error
	)

	frame.Index, err = xmldoc.RequireUint(node, "index")

	if err != nil {
		return Frame{}, err
	}

	frame.Delay, err = xmldoc.RequireUint(node, "delay")

	if err != nil {
		return Frame{}, err
	}

	if frame.Delay > math.MaxUint32/DelayUnitMillis {
		return Frame{}, dferr.New(dferr.InvalidNumericAttribute,
			"The attribute 'delay' is too large: %d", frame.Delay)
	}

	frame.DelayMillis = frame.Delay * DelayUnitMillis

	for _, child := range xmldoc.ChildrenByTag(node, "spr") {
		layer, err := parseLayer(child)

		if err != nil {
			return Frame{}, dferr.Wrap(err,
				"Parsing <spr> from <cell index='%d'> failed!", frame.Index)
		}

		frame.Layers = append(frame.Layers, layer)
	}

	return frame, nil
}

func parseLayer(node xmldoc.Element) (Layer, error) {
	var (
		layer Layer
		err   error
	)

	layer.SpriteName, err = xmldoc.RequireString(node, "name")

	if err != nil {
		return Layer{}, err
	}

	fields := []struct {
		attr string
		dst  *int32
	}{
		{"x", &layer.X},
		{"y", &layer.Y},
		{"z", &layer.Z},
	}

	for _, field := range fields {
		n, err := xmldoc.RequireInt(node, field.attr)

		if err != nil {
			return Layer{}, err
		}

		*field.dst = int32(n)
	}

	return layer, nil
}
