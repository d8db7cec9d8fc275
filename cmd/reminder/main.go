// Command reminder runs one reminder tick and exits. It is scheduled
// externally (reminder.schedule, in app.timezone).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"
	_ "time/tzdata"

	"go.uber.org/zap"

	"paroquia-backend/internal/bootstrap"
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
	job := service.NewReminderJob(repo.NewRosterRepo(rt.DB), repo.NewDirectoryRepo(rt.DB), engine,
		log.Named("reminder"), service.ReminderOptions{
			Location:       cfg.Location(),
			Lookahead:      cfg.Lookahead(),
			MaxConcurrency: cfg.Reminder.MaxConcurrency,
		})

	sum, err := job.Run(ctx)
	if err != nil {
		log.Error("reminder run failed", zap.Error(err))
		rt.Close()
		os.Exit(1)
	}
	log.Info("reminder run done",
		zap.Int("missas", sum.Missas),
		zap.Int("assignments", sum.Assignments),
		zap.Int("notified", sum.Notified),
		zap.Int("pushed", sum.Pushed),
		zap.Int("failed", sum.Failed),
	)
}
