package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptional(t *testing.T) {
	var omitted Optional[string]
	_, ok := omitted.Get()
	assert.False(t, ok)

	cleared := Some("")
	v, ok := cleared.Get()
	assert.True(t, ok)
	assert.Empty(t, v)

	nilProfile := Some[json.RawMessage](nil)
	p, ok := nilProfile.Get()
	assert.True(t, ok)
	assert.Nil(t, p)
}

func TestErrUserExists(t *testing.T) {
	assert.ErrorIs(t, ErrUserExists, ErrConflict)
}
