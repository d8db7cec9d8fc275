package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"paroquia-backend/internal/core/config"
	"paroquia-backend/internal/core/server"
	"paroquia-backend/internal/domain"
	mdw "paroquia-backend/internal/transport/http/middleware"
)

type Deps struct {
	Log      *zap.Logger
	HTTP     config.HTTP
	Verifier domain.TokenVerifier
	// Public modules need no caller; Callables run behind Authenticate.
	Public    []Module
	Callables []Module
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(d.HTTP.RateLimitRPS), d.HTTP.RateLimitBurst),
		mdw.ConcurrencyLimit(d.HTTP.MaxConcurrency),
		mdw.MaxBodyBytes(d.HTTP.MaxBodyBytes),
		mdw.Timeout(time.Duration(d.HTTP.RequestTimeoutMs)*time.Millisecond),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	public := api.Group("")
	public.Use(mdw.RateLimitPerIP(rate.Every(time.Second), 5))
	MountAll(public, d.Public...)

	authed := api.Group("")
	authed.Use(mdw.Authenticate(d.Verifier))
	MountAll(authed, d.Callables...)

	return r
}
