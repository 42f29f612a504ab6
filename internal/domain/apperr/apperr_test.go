package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThingMissing = NotFound("thing_not_found", "thing not found")

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("load thing: %w", errThingMissing)

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, errors.Is(err, errThingMissing))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWithFieldKeepsIdentity(t *testing.T) {
	err := Invalid("content", "must be at least 10 characters")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, map[string]string{"content": "must be at least 10 characters"}, err.Fields)
	assert.Empty(t, ErrValidationFailed.Fields)
	assert.Equal(t, "invalid input (content: must be at least 10 characters)", err.Error())
}

func TestValidatorCollectsFirstMessagePerField(t *testing.T) {
	var v Validator
	v.Check(true, "a", "never")
	v.Check(false, "b", "first")
	v.Check(false, "b", "second")
	v.Check(false, "c", "other")

	err := v.Err()
	require.Error(t, err)

	target, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, target.Kind)
	assert.Equal(t, map[string]string{"b": "first", "c": "other"}, target.Fields)
}

func TestValidatorWithoutFailures(t *testing.T) {
	var v Validator
	v.Check(true, "a", "never")
	assert.NoError(t, v.Err())
}
