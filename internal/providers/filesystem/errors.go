package filesystem

import (
	"errors"
	"fmt"
)

// Kind classifies filesystem failures so callers can branch without parsing
// messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRoot
	KindPathTraversal
	KindNotADirectory
	KindIO
	KindInvalidUTF8
	KindEditNotFound
	KindAmbiguousEdit
	KindInvalidPattern
)

// String returns the snake_case name of the kind
func (k Kind) String() string {
	switch k {
	case KindInvalidRoot:
		return "invalid_root"
	case KindPathTraversal:
		return "path_traversal"
	case KindNotADirectory:
		return "not_a_directory"
	case KindIO:
		return "io_error"
	case KindInvalidUTF8:
		return "invalid_utf8"
	case KindEditNotFound:
		return "edit_not_found"
	case KindAmbiguousEdit:
		return "ambiguous_edit"
	case KindInvalidPattern:
		return "invalid_pattern"
	default:
		return "unknown"
	}
}

// Error is returned by every operation in this package.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the human-readable message without the op and path prefix.
func (e *Error) Message() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Is matches another *Error of the same kind, so errors.Is(err, ErrPathTraversal) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Path == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidRoot    = &Error{Kind: KindInvalidRoot, Msg: "invalid project root"}
	ErrPathTraversal  = &Error{Kind: KindPathTraversal, Msg: "path traversal outside project root is not allowed"}
	ErrNotADirectory  = &Error{Kind: KindNotADirectory, Msg: "path is not a directory"}
	ErrIO             = &Error{Kind: KindIO, Msg: "i/o error"}
	ErrInvalidUTF8    = &Error{Kind: KindInvalidUTF8, Msg: "file is not valid UTF-8"}
	ErrEditNotFound   = &Error{Kind: KindEditNotFound, Msg: "old_text not found in file"}
	ErrAmbiguousEdit  = &Error{Kind: KindAmbiguousEdit, Msg: "old_text is not unique"}
	ErrInvalidPattern = &Error{Kind: KindInvalidPattern, Msg: "invalid regex"}
)

func newError(kind Kind, op, path, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var fsErr *Error
	if errors.As(err, &fsErr) {
		return fsErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
