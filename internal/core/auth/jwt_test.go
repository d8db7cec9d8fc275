package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paroquia-backend/internal/core/config"
)

func TestJWTer_RoundTrip(t *testing.T) {
	t.Parallel()
	j := NewJWTer(config.JWT{Secret: "s3cret", Issuer: "paroquia", AccessTokenTTLMin: 10})

	tok, err := j.Issue("u1")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "paroquia", c.Issuer)
}

func TestJWTer_Rejects(t *testing.T) {
	t.Parallel()
	j := NewJWTer(config.JWT{Secret: "s3cret", Issuer: "paroquia", AccessTokenTTLMin: 10})
	tok, err := j.Issue("u1")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		other := NewJWTer(config.JWT{Secret: "other", Issuer: "paroquia"})
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()
		other := NewJWTer(config.JWT{Secret: "s3cret", Issuer: "someone-else"})
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()
		late := NewJWTer(config.JWT{Secret: "s3cret", Issuer: "paroquia", AccessTokenTTLMin: 10})
		late.now = func() time.Time { return time.Now().Add(time.Hour) }
		_, err := late.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err := j.Parse("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
