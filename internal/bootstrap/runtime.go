// Package bootstrap opens the shared process dependencies and picks the
// configured identity and push drivers for every entry point.
package bootstrap

import (
	"context"
	"fmt"
	"sync"

	fb "firebase.google.com/go/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"paroquia-backend/internal/core/auth"
	"paroquia-backend/internal/core/cache"
	"paroquia-backend/internal/core/config"
	"paroquia-backend/internal/core/database"
	"paroquia-backend/internal/core/firebase"
	"paroquia-backend/internal/core/logger"
	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/identity"
	"paroquia-backend/internal/notify"
	"paroquia-backend/internal/push"
	"paroquia-backend/internal/queue"
	"paroquia-backend/internal/repo"
	"paroquia-backend/internal/service"
)

type Runtime struct {
	Cfg *config.Config
	Log *zap.Logger
	DB  *gorm.DB

	fbOnce sync.Once
	fbApp  *fb.App
	fbErr  error

	pub     *queue.Publisher
	closers []func()
}

// Open loads .env and the config file, builds the logger and connects the
// database, running migrations when db.automigrate is set.
func Open(configPath string) (*Runtime, error) {
	_ = godotenv.Load()
	cfg := config.Load(configPath)
	l, cleanup := logger.New(cfg.Log)
	rt := &Runtime{Cfg: cfg, Log: l, closers: []func(){cleanup, logger.RedirectStdLog(l, zapcore.InfoLevel)}}

	db, err := database.NewGorm(cfg.DB, l)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.DB = db
	l.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			rt.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done")
	}
	return rt, nil
}

// Close releases everything in reverse order of acquisition.
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

func (r *Runtime) onClose(f func()) { r.closers = append(r.closers, f) }

func (r *Runtime) Firebase(ctx context.Context) (*fb.App, error) {
	r.fbOnce.Do(func() { r.fbApp, r.fbErr = firebase.NewApp(ctx, r.Cfg.Firebase) })
	return r.fbApp, r.fbErr
}

// Publisher returns the process-wide broker publisher.
func (r *Runtime) Publisher() *queue.Publisher {
	if r.pub == nil {
		r.pub = queue.NewPublisher(r.Cfg.AMQP.URL, r.Cfg.AMQP.EventosQueue, r.Log.Named("amqp"))
		r.onClose(func() { _ = r.pub.Close() })
	}
	return r.pub
}

// Identity bundles the configured identity driver. Local is nil unless the
// driver owns credentials.
type Identity struct {
	Provider domain.IdentityProvider
	Verifier domain.TokenVerifier
	Local    *identity.Local
}

func (r *Runtime) Identity(ctx context.Context) (Identity, error) {
	switch r.Cfg.Identity.Driver {
	case "firebase":
		app, err := r.Firebase(ctx)
		if err != nil {
			return Identity{}, err
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return Identity{}, fmt.Errorf("firebase auth: %w", err)
		}
		f := identity.NewFirebase(client)
		return Identity{Provider: f, Verifier: f}, nil
	case "", "local":
		loc := identity.NewLocal(r.DB, auth.NewJWTer(r.Cfg.JWT))
		return Identity{Provider: loc, Verifier: loc, Local: loc}, nil
	default:
		return Identity{}, fmt.Errorf("unknown identity driver %q", r.Cfg.Identity.Driver)
	}
}

// PushGateway returns the configured gateway for request and job paths.
func (r *Runtime) PushGateway(ctx context.Context) (domain.PushGateway, error) {
	switch r.Cfg.Push.Driver {
	case "fcm":
		return r.FCM(ctx)
	case "amqp":
		return push.NewQueued(r.Publisher(), r.Cfg.AMQP.PushQueue), nil
	case "", "log":
		return push.NewLog(r.Log), nil
	default:
		return nil, fmt.Errorf("unknown push driver %q", r.Cfg.Push.Driver)
	}
}

// FCM is the direct gateway, also the relay target behind the push queue.
func (r *Runtime) FCM(ctx context.Context) (*push.FCM, error) {
	app, err := r.Firebase(ctx)
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return push.NewFCM(client, r.Log.Named("fcm")), nil
}

func (r *Runtime) NotifyEngine(ctx context.Context) (*notify.Engine, error) {
	gw, err := r.PushGateway(ctx)
	if err != nil {
		return nil, err
	}
	return notify.NewEngine(repo.NewNotificationRepo(r.DB), gw, r.Log.Named("notify"), r.Cfg.Fanout.MaxConcurrency), nil
}

// Claims returns the redis claimer for trigger dedupe, or nil when redis is
// disabled or unreachable.
func (r *Runtime) Claims(ctx context.Context) service.Claimer {
	if !r.Cfg.Redis.Enabled {
		return nil
	}
	c := cache.New(r.Cfg.Redis.Addr, r.Cfg.Redis.Password, r.Cfg.Redis.DB)
	if err := c.Ping(ctx); err != nil {
		r.Log.Warn("redis unavailable, dedupe disabled", zap.Error(err))
		_ = c.Close()
		return nil
	}
	r.onClose(func() { _ = c.Close() })
	return c
}
