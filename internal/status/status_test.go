package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConflict_IsConflict(t *testing.T) {
	err := NewConflict("default", "test-schema", "SchemaDocument")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotOwned(err))
}

func TestNewNotOwned_CarriesCurrentOwner(t *testing.T) {
	err := NewNotOwned("default", "test-schema", "SchemaDocument", "other-instance")
	assert.True(t, IsNotOwned(err))

	var s *Status
	require.True(t, errors.As(err, &s))
	assert.Equal(t, "other-instance", s.CurrentOwner)
}

func TestNewNotOwned_EmptyCurrentOwner(t *testing.T) {
	err := NewNotOwned("default", "test-schema", "SchemaDocument", "")
	var s *Status
	require.True(t, errors.As(err, &s))
	assert.Empty(t, s.CurrentOwner)
}

func TestNewConversionError_Unwraps(t *testing.T) {
	cause := errors.New("bad json")
	err := NewConversionError(cause)
	assert.True(t, IsConflict(err) == false)
	assert.ErrorIs(t, err, cause)
}

func TestNewTimeout_MessageMentionsOperationAndRef(t *testing.T) {
	err := NewTimeout("upsert", "default", "test-schema")
	assert.True(t, IsTimeout(err))
	assert.Contains(t, err.Error(), "upsert")
	assert.Contains(t, err.Error(), "default/test-schema")
}

func TestIsHelpers_NonStatusError(t *testing.T) {
	err := errors.New("plain error")
	assert.False(t, IsConflict(err))
	assert.False(t, IsNotOwned(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsDeleted(err))
	assert.False(t, IsTimeout(err))
}
