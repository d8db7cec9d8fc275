package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	_ "time/tzdata"

	"go.uber.org/zap"

	"paroquia-backend/internal/bootstrap"
	"paroquia-backend/internal/core/server"
	"paroquia-backend/internal/repo"
	"paroquia-backend/internal/service"
	"paroquia-backend/internal/transport/http/handler"
	"paroquia-backend/internal/transport/http/router"
)

func main() {
	rt, err := bootstrap.Open(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup:", err)
		os.Exit(1)
	}
	defer rt.Close()
	cfg, log := rt.Cfg, rt.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ids, err := rt.Identity(ctx)
	if err != nil {
		log.Fatal("identity driver", zap.Error(err))
	}
	engine, err := rt.NotifyEngine(ctx)
	if err != nil {
		log.Fatal("push driver", zap.Error(err))
	}

	dir := repo.NewDirectoryRepo(rt.DB)
	roster := repo.NewRosterRepo(rt.DB)
	guard := service.NewAdminGuard(dir, log)

	accounts := service.NewAccountService(guard, ids.Provider, dir, roster, log.Named("account"))
	agenda := service.NewBroadcaster(guard, dir, engine, log.Named("broadcast"))
	eventos := service.NewEventoService(guard, repo.NewEventoRepo(rt.DB), rt.Publisher(), log.Named("evento"))

	deps := router.Deps{
		Log:      log,
		HTTP:     cfg.App.HTTP,
		Verifier: ids.Verifier,
		Callables: []router.Module{
			handler.NewAccountHandler(accounts, guard),
			handler.NewNotifyHandler(agenda, eventos, guard),
		},
	}
	if ids.Local != nil {
		deps.Public = append(deps.Public, handler.NewAuthHandler(ids.Local))
	}
	r := router.NewAPIEngine(deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
		zap.String("identity", cfg.Identity.Driver),
		zap.String("push", cfg.Push.Driver),
	)

	if err := server.Serve(ctx, srv, 10*time.Second, log); err != nil {
		log.Fatal("api FAILED", zap.Error(err))
	}
}
