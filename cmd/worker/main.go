package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"
	_ "time/tzdata"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"paroquia-backend/internal/bootstrap"
	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/push"
	"paroquia-backend/internal/queue"
	"paroquia-backend/internal/repo"
	"paroquia-backend/internal/service"
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

	engine, err := rt.NotifyEngine(ctx)
	if err != nil {
		log.Fatal("push driver", zap.Error(err))
	}
	dir := repo.NewDirectoryRepo(rt.DB)
	b := service.NewBroadcaster(service.NewAdminGuard(dir, log), dir, engine, log.Named("broadcast"))
	trigger := service.NewEventoTrigger(b, rt.Claims(ctx), cfg.DedupeTTL(), log.Named("trigger"))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.EventosQueue, cfg.AMQP.Prefetch, log)
		return c.Run(ctx, queue.JSONHandler(func(ctx context.Context, ev domain.EventoCreated) error {
			trigger.Handle(ctx, ev)
			return nil
		}))
	})

	if cfg.Push.Driver == "amqp" {
		fcm, err := rt.FCM(ctx)
		if err != nil {
			log.Fatal("push relay", zap.Error(err))
		}
		g.Go(func() error {
			c := queue.NewConsumer(cfg.AMQP.URL, cfg.AMQP.PushQueue, cfg.AMQP.Prefetch, log)
			return c.Run(ctx, queue.JSONHandler(push.Relay(fcm, log.Named("relay"))))
		})
	}

	log.Info("worker started",
		zap.String("eventos_queue", cfg.AMQP.EventosQueue),
		zap.Bool("push_relay", cfg.Push.Driver == "amqp"),
	)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("worker FAILED", zap.Error(err))
	}
	log.Info("worker stopped")
}
