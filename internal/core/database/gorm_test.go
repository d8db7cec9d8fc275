package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paroquia-backend/internal/core/config"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         string
		user, pass string
		want       string
	}{
		{
			name: "driver form untouched",
			in:   "root:pw@tcp(db:3306)/paroquia?parseTime=true",
			want: "root:pw@tcp(db:3306)/paroquia?parseTime=true",
		},
		{
			name: "url form",
			in:   "mysql://root:pw@db:3306/paroquia",
			want: "root:pw@tcp(db:3306)/paroquia?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc with overrides",
			in:   "jdbc:mysql://db:3306/paroquia?useSSL=false&serverTimezone=UTC&useUnicode=true",
			user: "app",
			pass: "secret",
			want: "app:secret@tcp(db:3306)/paroquia?charset=utf8mb4&loc=UTC&parseTime=true&tls=false",
		},
		{
			name: "empty",
			in:   "   ",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.in, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "root:****@tcp(db:3306)/x", maskDSN("root:pw@tcp(db:3306)/x"))
	assert.Equal(t, "tcp(db:3306)/x", maskDSN("tcp(db:3306)/x"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	t.Parallel()
	_, err := NewGorm(config.DB{Driver: "sqlite"}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
