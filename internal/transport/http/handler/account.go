// Package handler exposes the service operations as HTTP actions.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paroquia-backend/internal/service"
	"paroquia-backend/internal/transport/http/ez"
)

type AccountHandler struct {
	svc   *service.AccountService
	guard *service.AdminGuard
}

func NewAccountHandler(svc *service.AccountService, guard *service.AdminGuard) *AccountHandler {
	return &AccountHandler{svc: svc, guard: guard}
}

// adminOnly rejects non-admin callers before the body is bound, so malformed
// input from them still reads as permission-denied.
func adminOnly(g *service.AdminGuard) func(c *gin.Context) error {
	return func(c *gin.Context) error { return g.Check(c.Request.Context(), ez.CallerUID(c)) }
}

type targetIn struct {
	UID string `json:"uid"`
}

type successOut struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type createUserIn struct {
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	Name              string   `json:"name"`
	Categories        []string `json:"categories"`
	IDGrupoMusical    string   `json:"idGrupoMusical"`
	IDGrupoCoordenado string   `json:"idGrupoCoordenado"`
}

type createUserOut struct {
	Status string `json:"status"`
	UID    string `json:"uid"`
}

func (h *AccountHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.RegisterAction(e, ez.Action[targetIn, successOut]{
		Method: http.MethodPost, Path: "/enableUser", Binder: ez.BindJSON, Auth: true, Guard: adminOnly(h.guard),
		BindMsg: "O UID do usuário alvo é necessário.",
		Handler: func(c *gin.Context, in *targetIn) (successOut, error) {
			if err := h.svc.Enable(c.Request.Context(), ez.CallerUID(c), in.UID); err != nil {
				return successOut{}, err
			}
			return successOut{Success: true, Message: "Usuário ativado com sucesso."}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[targetIn, successOut]{
		Method: http.MethodPost, Path: "/disableUser", Binder: ez.BindJSON, Auth: true, Guard: adminOnly(h.guard),
		BindMsg: "O UID do usuário alvo é necessário.",
		Handler: func(c *gin.Context, in *targetIn) (successOut, error) {
			if err := h.svc.Disable(c.Request.Context(), ez.CallerUID(c), in.UID); err != nil {
				return successOut{}, err
			}
			return successOut{Success: true, Message: "Usuário desativado com sucesso."}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[targetIn, successOut]{
		Method: http.MethodPost, Path: "/deleteUser", Binder: ez.BindJSON, Auth: true, Guard: adminOnly(h.guard),
		BindMsg: "O UID do usuário alvo é necessário.",
		Handler: func(c *gin.Context, in *targetIn) (successOut, error) {
			if err := h.svc.Delete(c.Request.Context(), ez.CallerUID(c), in.UID); err != nil {
				return successOut{}, err
			}
			return successOut{
				Success: true,
				Message: "Usuário e todos os seus vínculos de escala foram removidos com sucesso.",
			}, nil
		},
	})

	ez.RegisterAction(e, ez.Action[createUserIn, createUserOut]{
		Method: http.MethodPost, Path: "/createNewAdminUser", Binder: ez.BindJSON, Auth: true, Guard: adminOnly(h.guard),
		BindMsg: "Email, senha e nome são obrigatórios.",
		Handler: func(c *gin.Context, in *createUserIn) (createUserOut, error) {
			uid, err := h.svc.Create(c.Request.Context(), ez.CallerUID(c), service.CreateUserInput{
				Email:             in.Email,
				Password:          in.Password,
				Name:              in.Name,
				Categories:        in.Categories,
				IDGrupoMusical:    in.IDGrupoMusical,
				IDGrupoCoordenado: in.IDGrupoCoordenado,
			})
			if err != nil {
				return createUserOut{}, err
			}
			return createUserOut{Status: "success", UID: uid}, nil
		},
	})
}
