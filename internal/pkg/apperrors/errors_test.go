package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreErrorKeepsMessageVerbatim(t *testing.T) {
	err := NewStoreError("posts.insert", errors.New(`new row violates row-level security policy for table "posts"`))

	assert.Equal(t, `new row violates row-level security policy for table "posts"`, err.Error())
	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(fmt.Errorf("create post: %w", err), ErrStore))
	assert.Equal(t, `posts.insert: new row violates row-level security policy for table "posts"`, Describe(err))
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("content", "content must not be empty")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "content", FieldOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "", FieldOf(ErrNotFound))
}

func TestNotFoundSentinels(t *testing.T) {
	assert.True(t, errors.Is(ErrProfileNotFound, ErrNotFound))
	assert.True(t, Is(fmt.Errorf("x: %w", ErrPostNotFound), ErrConflict, ErrNotFound))
	assert.False(t, Is(ErrConflict, ErrNotFound))
}
