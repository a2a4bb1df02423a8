package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInvalidRoot, "invalid_root"},
		{KindPathTraversal, "path_traversal"},
		{KindNotADirectory, "not_a_directory"},
		{KindIO, "io_error"},
		{KindInvalidUTF8, "invalid_utf8"},
		{KindEditNotFound, "edit_not_found"},
		{KindAmbiguousEdit, "ambiguous_edit"},
		{KindInvalidPattern, "invalid_pattern"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := newError(KindIO, "read", "a.txt", "failed to read file", fs.ErrNotExist)

	assert.Equal(t, "read a.txt: failed to read file: file does not exist", err.Error())
	assert.Equal(t, "failed to read file: file does not exist", err.Message())
	assert.ErrorIs(t, err, fs.ErrNotExist)

	noPath := newError(KindInvalidPattern, "search", "", "invalid regex", nil)
	assert.Equal(t, "search: invalid regex", noPath.Error())
}

func TestErrorIsSentinel(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", newError(KindPathTraversal, "resolve", "../x", ErrPathTraversal.Msg, nil))

	assert.ErrorIs(t, err, ErrPathTraversal)
	assert.False(t, errors.Is(err, ErrInvalidRoot))
	assert.Equal(t, KindPathTraversal, KindOf(err))
	assert.True(t, IsKind(err, KindPathTraversal))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
