// Package sprite reads darkFunction sprite sheet
// definitions (*.sprites) and resolves sprite paths
// like "/brown/2" to rectangles of the source image.
//
// The format looks like this:
//
//	<img name="n69yj7.png" w="256" h="128">
//	  <definitions>
//	    <dir name="/">
//	      <dir name="brown">
//	        <spr name="2" x="0" y="0" w="32" h="32"/>
//	      </dir>
//	    </dir>
//	  </definitions>
//	</img>
package sprite

import (
	"image"
	"path"
	"strings"

	"github.com/alacrity-engine/dfanim/dferr"
	"github.com/alacrity-engine/dfanim/xmldoc"
)

// Rect is a named rectangle of the source image.
type Rect struct {
	Name string
	X    uint32
	Y    uint32
	W    uint32
	H    uint32
}

// Bounds returns the rectangle in image coordinates.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y),
		int(r.X)+int(r.W), int(r.Y)+int(r.H))
}

// Atlas is a parsed sprite sheet definition.
// It's never modified after parsing, so it's
// safe to query from multiple goroutines.
type Atlas struct {
	// ImageFile is the image file name
	// as written in the definition.
	ImageFile   string
	ImageWidth  uint32
	ImageHeight uint32
	// Dir is the directory the definition was
	// loaded from. It's empty for in-memory text.
	Dir  string
	Root *Directory
}

// ParseAtlasText parses a sprite sheet definition
// held in memory.
func ParseAtlasText(text []byte) (*Atlas, error) {
	root, err := xmldoc.Parse(text)

	if err != nil {
		return nil, err
	}

	return ParseAtlas(root)
}

// ParseAtlas builds an atlas out of the <img> root element.
func ParseAtlas(root xmldoc.Element) (*Atlas, error) {
	if root == nil || root.Tag() != "img" {
		return nil, dferr.New(dferr.MissingRequiredNode,
			"Cannot find node <img> !")
	}

	atlas := &Atlas{}
	var err error

	atlas.ImageFile, err = xmldoc.RequireString(root, "name")

	if err != nil {
		return nil, err
	}

	atlas.ImageWidth, err = xmldoc.RequireUint(root, "w")

	if err != nil {
		return nil, err
	}

	atlas.ImageHeight, err = xmldoc.RequireUint(root, "h")

	if err != nil {
		return nil, err
	}

	if len(root.Children()) == 0 {
		return nil, dferr.New(dferr.MissingRequiredNode,
			"The <img> node does not have child nodes!")
	}

	for _, defs := range xmldoc.ChildrenByTag(root, "definitions") {
		for _, node := range xmldoc.ChildrenByTag(defs, "dir") {
			dir, err := parseDirectory(node)

			if err != nil {
				return nil, dferr.Wrap(err, "Parsing <dir> failed!")
			}

			if dir.Name != "/" {
				return nil, dferr.New(dferr.MissingRootDirectory,
					"The root <dir> is missing!")
			}

			atlas.Root = dir
		}
	}

	if atlas.Root == nil {
		return nil, dferr.New(dferr.MissingRootDirectory,
			"The root <dir> is missing!")
	}

	return atlas, nil
}

// ImagePath returns the image file name joined
// with the directory the definition came from.
func (atlas *Atlas) ImagePath() string {
	if atlas.Dir == "" {
		return atlas.ImageFile
	}

	return path.Join(atlas.Dir, atlas.ImageFile)
}

// Resolve returns the sprite at the given path.
// The path must start with "/", e.g. "/brown/2".
func (atlas *Atlas) Resolve(spritePath string) (Rect, bool) {
	if atlas == nil || atlas.Root == nil {
		return Rect{}, false
	}

	if !strings.HasPrefix(spritePath, "/") {
		return Rect{}, false
	}

	return atlas.Root.Resolve(spritePath[1:])
}

// ListAllSprites returns every sprite of the atlas.
// Subdirectories are listed before the sprites
// of the directory that contains them.
func (atlas *Atlas) ListAllSprites() []Rect {
	if atlas == nil || atlas.Root == nil {
		return nil
	}

	var rects []Rect
	atlas.Root.walk(func(r Rect) {
		rects = append(rects, r)
	})

	return rects
}

func parseRect(node xmldoc.Element) (Rect, error) {
	var (
		r   Rect
		err error
	)

	r.Name, err = xmldoc.RequireString(node, "name")

	if err != nil {
		return Rect{}, err
	}

	fields := []struct {
		attr string
		dst  *uint32
	}{
		{"x", &r.X},
		{"y", &r.Y},
		{"w", &r.W},
		{"h", &r.H},
	}

	for _, field := range fields {
		*field.dst, err = xmldoc.RequireUint(node, field.attr)

		if err != nil {
			return Rect{}, err
		}
	}

	return r, nil
}
