// Package ez registers request/response actions on a gin group: bind the
// input, run the handler, wrap the result in the response envelope.
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/transport/http/middleware"
	resp "paroquia-backend/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none"
)

// AErr is a transport-level failure with an explicit envelope code.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }

type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	// Auth requires a caller uid set by the authentication middleware.
	Auth bool
	// Guard runs after the caller check and before the input is read.
	Guard func(c *gin.Context) error
	// BindMsg replaces the binder's error text for malformed input.
	BindMsg string
	Handler func(c *gin.Context, in *I) (O, error)
}

// CallerUID returns the uid stored by the authentication middleware.
func CallerUID(c *gin.Context) string { return c.GetString(middleware.KeyUID) }

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		if a.Auth && CallerUID(c) == "" {
			c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, ""))
			return
		}
		if a.Guard != nil {
			if err := a.Guard(c); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusOK, Failure(err))
				return
			}
		}

		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			_ = c.Error(bindErr)
			msg := a.BindMsg
			if msg == "" {
				msg = bindErr.Error()
			}
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, msg))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusOK, Failure(err))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

var kindCodes = map[domain.ErrorKind]int{
	domain.KindUnauthenticated:  resp.CodeUnauthorized,
	domain.KindPermissionDenied: resp.CodeForbidden,
	domain.KindInvalidArgument:  resp.CodeBadRequest,
	domain.KindInternal:         resp.CodeServerError,
}

// Failure maps an error onto the envelope. Causes wrapped in domain errors
// are never exposed; unknown errors become a generic internal failure.
func Failure(err error) resp.Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		return resp.Error(ae.Code, ae.Msg)
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return resp.Fail(kindCodes[de.Kind], string(de.Kind), de.Msg)
	}
	return resp.Fail(resp.CodeServerError, string(domain.KindInternal), "")
}
