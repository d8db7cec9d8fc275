package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	t.Parallel()
	h, err := HashPassword("ave-maria")
	require.NoError(t, err)
	assert.NotEqual(t, "ave-maria", h)
	assert.True(t, CheckPassword("ave-maria", h))
	assert.False(t, CheckPassword("errada", h))
}

func TestNewID(t *testing.T) {
	t.Parallel()
	a, b := NewID(), NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
