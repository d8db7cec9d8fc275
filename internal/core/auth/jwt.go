package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"paroquia-backend/internal/core/config"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// JWTer issues and verifies HS256 access tokens.
type JWTer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	now    func() time.Time
}

func NewJWTer(c config.JWT) *JWTer {
	ttl := time.Duration(c.AccessTokenTTLMin) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTer{Secret: []byte(c.Secret), Issuer: c.Issuer, TTL: ttl, now: time.Now}
}

func (j *JWTer) clock() time.Time {
	if j.now != nil {
		return j.now()
	}
	return time.Now()
}

func (j *JWTer) Issue(uid string) (string, error) {
	now := j.clock()
	claims := Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	}, jwt.WithIssuer(j.Issuer), jwt.WithLeeway(60*time.Second), jwt.WithTimeFunc(j.clock))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.UID == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
