package opml

import (
	"errors"
	"fmt"
)

// Sentinel errors for OPML operations. Every typed error in this package
// unwraps to exactly one of these so callers can use errors.Is.
var (
	// ErrFormat indicates a malformed or incomplete OPML document.
	ErrFormat = errors.New("invalid opml format")

	// ErrMissingName indicates an outline carries neither title nor text.
	ErrMissingName = errors.New("outline has no name")

	// ErrMissingLocator indicates an outline carries neither xmlUrl nor htmlUrl.
	ErrMissingLocator = errors.New("outline has no url")

	// ErrDuplicateOutline indicates an outline with the same text already
	// exists under the same parent.
	ErrDuplicateOutline = errors.New("outline already exists")
)

// FormatError reports a structural problem in an OPML document such as a
// missing root, section, title or outline collection.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid opml format: %s: %v", e.Reason, e.Err)
	}
	return "invalid opml format: " + e.Reason
}

// Is reports ErrFormat as a match.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Unwrap returns the underlying parser error, if any.
func (e *FormatError) Unwrap() error { return e.Err }

// MissingNameError is returned by Outline.DisplayName.
type MissingNameError struct{}

func (e *MissingNameError) Error() string { return "outline title and text are both empty" }

func (e *MissingNameError) Unwrap() error { return ErrMissingName }

// MissingLocatorError is returned by Outline.Locator.
type MissingLocatorError struct {
	Name string
}

func (e *MissingLocatorError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("outline %q: xmlUrl and htmlUrl are both empty", e.Name)
	}
	return "outline xmlUrl and htmlUrl are both empty"
}

func (e *MissingLocatorError) Unwrap() error { return ErrMissingLocator }

// DuplicateOutlineError is returned when inserting an outline whose text
// collides with a sibling.
type DuplicateOutlineError struct {
	Name string
}

func (e *DuplicateOutlineError) Error() string {
	return fmt.Sprintf("outline %q already exists", e.Name)
}

func (e *DuplicateOutlineError) Unwrap() error { return ErrDuplicateOutline }
