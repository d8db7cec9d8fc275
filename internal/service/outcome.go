package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"paroquia-backend/internal/domain"
)

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeTolerated
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeTolerated:
		return "tolerated"
	default:
		return "fatal"
	}
}

// Step is one remote call of a batch. Tolerate, if set, marks errors that
// leave the goal state satisfied.
type Step struct {
	Name     string
	Run      func(ctx context.Context) error
	Tolerate func(error) bool
}

type StepResult struct {
	Name    string
	Outcome Outcome
	Err     error
}

func classify(s Step, err error) StepResult {
	switch {
	case err == nil:
		return StepResult{Name: s.Name, Outcome: OutcomeOK}
	case s.Tolerate != nil && s.Tolerate(err):
		return StepResult{Name: s.Name, Outcome: OutcomeTolerated, Err: err}
	default:
		return StepResult{Name: s.Name, Outcome: OutcomeFatal, Err: err}
	}
}

// Fold joins the fatal results into one error, nil when there are none.
func Fold(results []StepResult) error {
	var errs []error
	for _, r := range results {
		if r.Outcome == OutcomeFatal {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return errors.Join(errs...)
}

// RunSteps issues every step concurrently and waits for all of them. Nothing
// is undone when a step fails.
func RunSteps(ctx context.Context, l *zap.Logger, steps ...Step) ([]StepResult, error) {
	results := make([]StepResult, len(steps))
	var g errgroup.Group
	for i, s := range steps {
		g.Go(func() error {
			results[i] = classify(s, s.Run(ctx))
			return nil
		})
	}
	_ = g.Wait()
	for _, r := range results {
		if r.Outcome == OutcomeTolerated {
			l.Info("step tolerated", zap.String("step", r.Name), zap.NamedError("cause", r.Err))
		}
	}
	return results, Fold(results)
}

func notFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
