package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"paroquia-backend/internal/core/auth"
	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/account"
	"paroquia-backend/pkg/utils"
)

var (
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
	ErrDisabled       = errors.New("account disabled")
)

// Local keeps credentials in the accounts table and issues HS256 tokens.
type Local struct {
	db  *gorm.DB
	jwt *auth.JWTer
}

func NewLocal(db *gorm.DB, j *auth.JWTer) *Local { return &Local{db: db, jwt: j} }

func (l *Local) CreateAccount(ctx context.Context, a domain.NewAccount) (string, error) {
	email := strings.ToLower(strings.TrimSpace(a.Email))
	var n int64
	if err := l.db.WithContext(ctx).Model(&account.AccountModel{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "", ErrEmailTaken
	}
	hash, err := utils.HashPassword(a.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	row := account.AccountModel{
		ID:            utils.NewID(),
		Email:         email,
		DisplayName:   a.DisplayName,
		PasswordHash:  hash,
		EmailVerified: a.EmailVerified,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

func (l *Local) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	if _, err := l.find(ctx, "id = ?", uid); err != nil {
		return err
	}
	return l.db.WithContext(ctx).Model(&account.AccountModel{}).Where("id = ?", uid).Update("disabled", disabled).Error
}

func (l *Local) DeleteAccount(ctx context.Context, uid string) error {
	res := l.db.WithContext(ctx).Where("id = ?", uid).Delete(&account.AccountModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// VerifyToken accepts a valid token of an existing, enabled account.
func (l *Local) VerifyToken(ctx context.Context, token string) (string, error) {
	c, err := l.jwt.Parse(token)
	if err != nil {
		return "", err
	}
	a, err := l.find(ctx, "id = ?", c.UID)
	if err != nil {
		return "", err
	}
	if a.Disabled {
		return "", ErrDisabled
	}
	return a.ID, nil
}

// Login checks the credentials and returns a fresh access token.
func (l *Local) Login(ctx context.Context, email, password string) (token, uid string, err error) {
	a, err := l.find(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return "", "", ErrBadCredentials
	}
	if err != nil {
		return "", "", err
	}
	if !utils.CheckPassword(password, a.PasswordHash) {
		return "", "", ErrBadCredentials
	}
	if a.Disabled {
		return "", "", ErrDisabled
	}
	token, err = l.jwt.Issue(a.ID)
	if err != nil {
		return "", "", err
	}
	return token, a.ID, nil
}

func (l *Local) find(ctx context.Context, query string, arg any) (*account.AccountModel, error) {
	var a account.AccountModel
	err := l.db.WithContext(ctx).First(&a, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
