package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/identity"
	"paroquia-backend/internal/transport/http/ez"
)

// Authenticator is implemented by identity drivers that own credentials.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (token, uid string, err error)
}

type AuthHandler struct {
	auth Authenticator
}

func NewAuthHandler(a Authenticator) *AuthHandler { return &AuthHandler{auth: a} }

type loginIn struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
}

func (h *AuthHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)
	ez.RegisterAction(e, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost, Path: "/auth/login", Binder: ez.BindJSON,
		BindMsg: "Email e senha são obrigatórios.",
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			tok, uid, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				if errors.Is(err, identity.ErrBadCredentials) || errors.Is(err, identity.ErrDisabled) {
					return loginOut{}, ez.Unauthorized("Email ou senha inválidos.")
				}
				return loginOut{}, domain.Internal("Erro ao autenticar.", err)
			}
			return loginOut{Token: tok, UID: uid}, nil
		},
	})
}
