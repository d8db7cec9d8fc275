package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/fake"
	"paroquia-backend/internal/identity"
	"paroquia-backend/internal/notify"
	"paroquia-backend/internal/service"
	"paroquia-backend/internal/transport/http/handler"
	resp "paroquia-backend/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code   int            `json:"code"`
	Status string         `json:"status"`
	Msg    string         `json:"msg"`
	Data   map[string]any `json:"data"`
}

type fakeLogin struct{}

func (fakeLogin) Login(_ context.Context, email, password string) (string, string, error) {
	if email == "admin@paroquia.org" && password == "certa" {
		return "tok-a1", "a1", nil
	}
	return "", "", identity.ErrBadCredentials
}

type apiFixture struct {
	engine *gin.Engine
	ids    *fake.Identity
	dir    *fake.Directory
	push   *fake.Push
	events *fake.Publisher
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	l := zap.NewNop()
	f := &apiFixture{
		ids: fake.NewIdentity("a1", "m1"),
		dir: fake.NewDirectory(
			domain.UserRecord{ID: "a1", Nome: "Admin", Role: domain.RoleAdmin, Ativo: true},
			domain.UserRecord{ID: "m1", Nome: "Membro", Role: domain.RoleUser, Ativo: false, FCMToken: "t-m1"},
		),
		push:   &fake.Push{},
		events: &fake.Publisher{},
	}
	f.ids.IssueToken("tok-a1", "a1")
	f.ids.IssueToken("tok-m1", "m1")

	guard := service.NewAdminGuard(f.dir, l)
	engine := notify.NewEngine(fake.NewNotifications(), f.push, l, 4)
	accounts := service.NewAccountService(guard, f.ids, f.dir, fake.NewRoster(), l)
	agenda := service.NewBroadcaster(guard, f.dir, engine, l)
	eventos := service.NewEventoService(guard, &fake.Eventos{}, f.events, l)

	f.engine = NewAPIEngine(Deps{
		Log:      l,
		Verifier: f.ids,
		Public:   []Module{handler.NewAuthHandler(fakeLogin{})},
		Callables: []Module{
			handler.NewAccountHandler(accounts, guard),
			handler.NewNotifyHandler(agenda, eventos, guard),
		},
	})
	return f
}

func (f *apiFixture) call(t *testing.T, path, token string, body any) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	} else {
		buf.WriteString("not json")
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAPI_Health(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAPI_CheckOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		token  string
		body   any
		code   int
		status string
	}{
		{"missing token wins over malformed body", "/api/v1/enableUser", "", nil, resp.CodeUnauthorized, "unauthenticated"},
		{"unknown token", "/api/v1/deleteUser", "forged", map[string]string{"uid": "m1"}, resp.CodeUnauthorized, "unauthenticated"},
		{"non-admin before validation", "/api/v1/createNewAdminUser", "tok-m1", map[string]string{}, resp.CodeForbidden, "permission-denied"},
		{"non-admin agenda", "/api/v1/notifyMonthlyAgenda", "tok-m1", map[string]any{"nomeMes": "Abril", "ano": 2025}, resp.CodeForbidden, "permission-denied"},
		{"admin with missing target", "/api/v1/disableUser", "tok-a1", map[string]string{}, resp.CodeBadRequest, "invalid-argument"},
		{"non-admin with malformed body", "/api/v1/enableUser", "tok-m1", nil, resp.CodeForbidden, "permission-denied"},
		{"non-admin with mistyped year", "/api/v1/notifyMonthlyAgenda", "tok-m1", map[string]string{"nomeMes": "Abril", "ano": "2025"}, resp.CodeForbidden, "permission-denied"},
		{"non-admin evento with malformed body", "/api/v1/eventos", "tok-m1", nil, resp.CodeForbidden, "permission-denied"},
		{"admin with malformed body", "/api/v1/createNewAdminUser", "tok-a1", nil, resp.CodeBadRequest, "invalid-argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newAPIFixture(t)
			env := f.call(t, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.code, env.Code)
			assert.Equal(t, tt.status, env.Status)
			assert.Zero(t, f.ids.Calls)
			assert.Zero(t, f.dir.Writes)
		})
	}
}

func TestAPI_CreateMissingPasswordDoesNotMutate(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	env := f.call(t, "/api/v1/createNewAdminUser", "tok-a1", map[string]string{
		"email": "novo@paroquia.org", "name": "Novo",
	})
	assert.Equal(t, resp.CodeBadRequest, env.Code)
	assert.Equal(t, "Email, senha e nome são obrigatórios.", env.Msg)
	assert.Zero(t, f.ids.Calls)
	assert.Zero(t, f.dir.Writes)
}

func TestAPI_EnableUser(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	env := f.call(t, "/api/v1/enableUser", "tok-a1", map[string]string{"uid": "m1"})
	require.Equal(t, resp.CodeOK, env.Code, env.Msg)
	assert.Equal(t, true, env.Data["success"])
	assert.Equal(t, "Usuário ativado com sucesso.", env.Data["message"])

	u, ok := f.dir.User("m1")
	require.True(t, ok)
	assert.True(t, u.Ativo)
	disabled, exists := f.ids.Disabled("m1")
	assert.True(t, exists)
	assert.False(t, disabled)
}

func TestAPI_CreateUser(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	env := f.call(t, "/api/v1/createNewAdminUser", "tok-a1", map[string]any{
		"email": "novo@paroquia.org", "password": "segredo", "name": "Novo",
		"categories": []string{"leitor"}, "idGrupoMusical": "g1",
	})
	require.Equal(t, resp.CodeOK, env.Code, env.Msg)
	assert.Equal(t, "success", env.Data["status"])
	uid, _ := env.Data["uid"].(string)
	require.NotEmpty(t, uid)

	u, ok := f.dir.User(uid)
	require.True(t, ok)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, []string{"leitor"}, u.Categorias)
}

func TestAPI_NotifyMonthlyAgenda(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	env := f.call(t, "/api/v1/notifyMonthlyAgenda", "tok-a1", map[string]any{"nomeMes": "Abril", "ano": 2025})
	require.Equal(t, resp.CodeOK, env.Code, env.Msg)
	assert.Equal(t, "Notificação enviada para 1 usuários.", env.Data["message"])

	_, multi := f.push.Snapshot()
	require.Len(t, multi, 1)
	assert.Equal(t, []string{"t-m1"}, multi[0].Tokens)
}

func TestAPI_CreateEventoPublishes(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	env := f.call(t, "/api/v1/eventos", "tok-a1", map[string]any{"titulo": "Quermesse", "local": "Salão"})
	require.Equal(t, resp.CodeOK, env.Code, env.Msg)
	id, _ := env.Data["id"].(string)
	require.NotEmpty(t, id)
	require.Len(t, f.events.Events, 1)
	assert.Equal(t, id, f.events.Events[0].ID)
}

func TestAPI_Login(t *testing.T) {
	t.Parallel()
	f := newAPIFixture(t)

	env := f.call(t, "/api/v1/auth/login", "", map[string]string{"email": "admin@paroquia.org", "password": "certa"})
	require.Equal(t, resp.CodeOK, env.Code, env.Msg)
	assert.Equal(t, "tok-a1", env.Data["token"])

	env = f.call(t, "/api/v1/auth/login", "", map[string]string{"email": "admin@paroquia.org", "password": "errada"})
	assert.Equal(t, resp.CodeUnauthorized, env.Code)
	assert.Equal(t, "Email ou senha inválidos.", env.Msg)

	env = f.call(t, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, resp.CodeBadRequest, env.Code)
}

func TestMountAll_Priority(t *testing.T) {
	t.Parallel()
	var order []string
	g := gin.New().Group("")
	MountAll(g, mod{"b", 200, &order}, mod{"a", 10, &order}, plainMod{&order})
	assert.Equal(t, []string{"a", "plain", "b"}, order)
}

type mod struct {
	name  string
	prio  int
	order *[]string
}

func (m mod) Mount(*gin.RouterGroup) { *m.order = append(*m.order, m.name) }
func (m mod) Priority() int { return m.prio }

type plainMod struct{ order *[]string }

func (m plainMod) Mount(*gin.RouterGroup) { *m.order = append(*m.order, "plain") }
