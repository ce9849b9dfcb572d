package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinel(t *testing.T) {
	err := NewNotFoundError("tag %q", "food:egg")

	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), `tag "food:egg"`)
	assert.Contains(t, err.Error(), "not found")
}

func TestInvalidRequest(t *testing.T) {
	err := Wrap(NewInvalidRequestError("object id is required"), "set tags")

	assert.True(t, IsInvalidRequestError(err))
	assert.Equal(t, "set tags: object id is required: invalid request", err.Error())
}

func TestHints(t *testing.T) {
	err := WithHint(New("tag too long"), "shorten the name part")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "shorten the name part", hints[0])
}

func TestNilChecks(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsInvalidRequestError(nil))
}
