package sprite

import (
	"strings"

	"github.com/alacrity-engine/dfanim/dferr"
	"github.com/alacrity-engine/dfanim/xmldoc"
)

// Directory is a named node of the sprite tree.
// A name can be used by a subdirectory and
// a sprite of the same directory at once.
type Directory struct {
	Name string

	dirs      map[string]*Directory
	dirOrder  []string
	rects     map[string]Rect
	rectOrder []string
}

func newDirectory(name string) *Directory {
	return &Directory{
		Name:  name,
		dirs:  map[string]*Directory{},
		rects: map[string]Rect{},
	}
}

func parseDirectory(node xmldoc.Element) (*Directory, error) {
	name, err := xmldoc.RequireString(node, "name")

	if err != nil {
		return nil, err
	}

	dir := newDirectory(name)

	for _, child := range node.Children() {
		switch child.Tag() {
		case "dir":
			sub, err := parseDirectory(child)

			if err != nil {
				return nil, dferr.Wrap(err,
					"Parsing <dir> from <dir name='%s'> failed!", name)
			}

			dir.addDir(sub)

		case "spr":
			r, err := parseRect(child)

			if err != nil {
				return nil, dferr.Wrap(err,
					"Parsing <spr> from <dir name='%s'> failed!", name)
			}

			dir.addRect(r)
		}
	}

	return dir, nil
}

// addDir inserts the subdirectory. A later directory
// with the same name replaces the earlier one but keeps
// its position.
func (dir *Directory) addDir(sub *Directory) {
	if _, ok := dir.dirs[sub.Name]; !ok {
		dir.dirOrder = append(dir.dirOrder, sub.Name)
	}

	dir.dirs[sub.Name] = sub
}

func (dir *Directory) addRect(r Rect) {
	if _, ok := dir.rects[r.Name]; !ok {
		dir.rectOrder = append(dir.rectOrder, r.Name)
	}

	dir.rects[r.Name] = r
}

// Dir returns the direct subdirectory with the given name.
func (dir *Directory) Dir(name string) (*Directory, bool) {
	sub, ok := dir.dirs[name]
	return sub, ok
}

// Rect returns the direct sprite with the given name.
func (dir *Directory) Rect(name string) (Rect, bool) {
	r, ok := dir.rects[name]
	return r, ok
}

// DirNames returns the names of the subdirectories
// in document order.
func (dir *Directory) DirNames() []string {
	return append([]string(nil), dir.dirOrder...)
}

// RectNames returns the names of the sprites
// in document order.
func (dir *Directory) RectNames() []string {
	return append([]string(nil), dir.rectOrder...)
}

// Resolve returns the sprite at the path relative
// to the directory, e.g. "brown/2". The last segment
// always names a sprite, never a directory.
func (dir *Directory) Resolve(relPath string) (Rect, bool) {
	current := dir

	for {
		if relPath == "" {
			return Rect{}, false
		}

		head, tail, found := strings.Cut(relPath, "/")

		if !found {
			return current.Rect(head)
		}

		if head == "" {
			return Rect{}, false
		}

		next, ok := current.dirs[head]

		if !ok {
			return Rect{}, false
		}

		current = next
		relPath = tail
	}
}

func (dir *Directory) walk(visit func(Rect)) {
	for _, name := range dir.dirOrder {
		dir.dirs[name].walk(visit)
	}

	for _, name := range dir.rectOrder {
		visit(dir.rects[name])
	}
}
