package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"paroquia-backend/internal/domain"
)

func TestMapAuthErr(t *testing.T) {
	t.Parallel()
	assert.NoError(t, mapAuthErr(nil))

	plain := errors.New("network")
	assert.Same(t, plain, mapAuthErr(plain))
	assert.False(t, errors.Is(mapAuthErr(plain), domain.ErrNotFound))
}
