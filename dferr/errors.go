package dferr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// IoFailure means the file is missing, unreadable or empty.
	IoFailure Kind = iota + 1
	// MalformedXML means the underlying document failed to parse.
	MalformedXML
	// MissingRequiredNode means an expected element
	// (root, definitions, dir) is absent.
	MissingRequiredNode
	// MissingOrEmptyAttribute means a required string
	// attribute is absent or empty.
	MissingOrEmptyAttribute
	// InvalidNumericAttribute means a required numeric
	// attribute is absent or not numeric.
	InvalidNumericAttribute
	// MissingRootDirectory means the root <dir> is not named "/".
	MissingRootDirectory
	// EmptyAnimation means playback was requested
	// on an animation with no frames.
	EmptyAnimation
	// UnresolvedSprite means a frame references
	// a sprite path the atlas doesn't contain.
	UnresolvedSprite
)

var kindNames = map[Kind]string{
	IoFailure:               "io failure",
	MalformedXML:            "malformed xml",
	MissingRequiredNode:     "missing required node",
	MissingOrEmptyAttribute: "missing or empty attribute",
	InvalidNumericAttribute: "invalid numeric attribute",
	MissingRootDirectory:    "missing root directory",
	EmptyAnimation:          "empty animation",
	UnresolvedSprite:        "unresolved sprite",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Error implements error so that a bare kind
// can be used as a target for errors.Is.
func (k Kind) Error() string {
	return k.String()
}

// Error is a parse or playback failure
// tagged with its kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// New creates a new error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// From creates a new error of the given kind
// caused by another error.
func From(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}

	if e.Message == "" {
		return e.Err.Error()
	}

	return e.Message + " >> " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match against a bare Kind
// or against another *Error of the same kind.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case Kind:
		return e.Kind == t

	case *Error:
		return e.Kind == t.Kind
	}

	return false
}

// Wrap prefixes err with context while keeping its kind.
// A nil err stays nil.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return &Error{
		Kind:    KindOf(err),
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// KindOf returns the kind of the outermost *Error
// in the chain, or 0 if there is none.
func KindOf(err error) Kind {
	var e *Error

	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}
