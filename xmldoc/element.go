// Package xmldoc is the XML access layer the
// sprite and animation parsers are written against.
// It exposes only tag names, attributes and child
// elements in document order, so the parsers can be
// driven either by a real document or by an in-memory
// Node tree.
package xmldoc

import (
	"strconv"
	"strings"

	"github.com/alacrity-engine/dfanim/dferr"
)

// Element is a single XML element.
type Element interface {
	// Tag returns the element name.
	Tag() string
	// Attr returns the raw value of the attribute
	// and whether it is present at all.
	Attr(name string) (string, bool)
	// Children returns the child elements
	// in document order.
	Children() []Element
}

// Int reads a signed integer attribute. Surrounding
// whitespace is ignored.
func Int(e Element, name string) (int64, bool) {
	value, ok := e.Attr(name)

	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)

	if err != nil {
		return 0, false
	}

	return n, true
}

// Uint reads an unsigned integer attribute.
func Uint(e Element, name string) (uint32, bool) {
	value, ok := e.Attr(name)

	if !ok {
		return 0, false
	}

	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)

	if err != nil {
		return 0, false
	}

	return uint32(n), true
}

// RequireString returns the value of a required
// non-empty string attribute.
func RequireString(e Element, name string) (string, error) {
	value, ok := e.Attr(name)

	if !ok || value == "" {
		return "", dferr.New(dferr.MissingOrEmptyAttribute,
			"Cannot find attribute '%s' or the value is empty!", name)
	}

	return value, nil
}

// RequireInt returns the value of a required
// signed integer attribute.
func RequireInt(e Element, name string) (int64, error) {
	n, ok := Int(e, name)

	if !ok {
		return 0, numericError(name)
	}

	return n, nil
}

// RequireUint returns the value of a required
// unsigned integer attribute.
func RequireUint(e Element, name string) (uint32, error) {
	n, ok := Uint(e, name)

	if !ok {
		return 0, numericError(name)
	}

	return n, nil
}

func numericError(name string) error {
	return dferr.New(dferr.InvalidNumericAttribute,
		"Cannot find attribute '%s' or the value is not numeric!", name)
}

// ChildrenByTag returns the children of e
// with the given tag in document order.
func ChildrenByTag(e Element, tag string) []Element {
	var found []Element

	for _, child := range e.Children() {
		if child.Tag() == tag {
			found = append(found, child)
		}
	}

	return found
}
