package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/notify"
)

const DefaultLookahead = 48 * time.Hour

// ReminderJob notifies every assignee of the missas in the lookahead window.
type ReminderJob struct {
	roster    domain.RosterStore
	dir       domain.DirectoryStore
	engine    *notify.Engine
	log       *zap.Logger
	loc       *time.Location
	lookahead time.Duration
	limit     int
	now       func() time.Time
}

type ReminderOptions struct {
	Location       *time.Location
	Lookahead      time.Duration
	MaxConcurrency int
}

func NewReminderJob(roster domain.RosterStore, dir domain.DirectoryStore, engine *notify.Engine,
	l *zap.Logger, opt ReminderOptions) *ReminderJob {
	if opt.Lookahead <= 0 {
		opt.Lookahead = DefaultLookahead
	}
	if opt.Location == nil {
		opt.Location = time.UTC
	}
	return &ReminderJob{
		roster: roster, dir: dir, engine: engine, log: l,
		loc: opt.Location, lookahead: opt.Lookahead, limit: opt.MaxConcurrency,
		now: time.Now,
	}
}

type ReminderSummary struct {
	Missas      int
	Assignments int
	Notified    int
	Pushed      int
	Failed      int
}

// Run processes one tick. Individual failures are logged and counted; the
// returned error only reports a failed roster query.
func (j *ReminderJob) Run(ctx context.Context) (ReminderSummary, error) {
	j.log.Info("reminder job starting")
	from := j.now()
	to := from.Add(j.lookahead)

	missas, err := j.roster.ListBetween(ctx, from, to)
	if err != nil {
		j.log.Error("query upcoming missas", zap.Error(err))
		return ReminderSummary{}, err
	}
	j.log.Info("upcoming missas", zap.Int("count", len(missas)), zap.Time("from", from), zap.Time("to", to))

	// one memo per run
	tokens := notify.NewTokenMemo(j.dir)
	var notified, pushed, failed atomic.Int64
	sum := ReminderSummary{Missas: len(missas)}

	var g errgroup.Group
	if j.limit > 0 {
		g.SetLimit(j.limit)
	}
	for _, m := range missas {
		if m.Escala == nil {
			continue
		}
		when := notify.FormatWhen(m.DataHora, j.loc)
		for _, a := range m.Assignments() {
			sum.Assignments++
			c := notify.Compose(notify.RosterReminder{SlotKey: a.Slot, When: when, MissaID: m.ID})
			g.Go(func() error {
				sent, err := j.engine.NotifyOne(ctx, a.UserID, c, tokens)
				if err != nil {
					failed.Add(1)
					j.log.Error("reminder failed",
						zap.String("uid", a.UserID), zap.String("missa", m.ID), zap.String("slot", a.Slot), zap.Error(err))
					return nil
				}
				notified.Add(1)
				if sent {
					pushed.Add(1)
					j.log.Info("reminder pushed", zap.String("uid", a.UserID), zap.String("missa", m.ID))
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	sum.Notified = int(notified.Load())
	sum.Pushed = int(pushed.Load())
	sum.Failed = int(failed.Load())
	j.log.Info("reminder job finished",
		zap.Int("missas", sum.Missas),
		zap.Int("assignments", sum.Assignments),
		zap.Int("notified", sum.Notified),
		zap.Int("pushed", sum.Pushed),
		zap.Int("failed", sum.Failed),
		zap.Int("users_resolved", tokens.Len()),
	)
	return sum, nil
}
