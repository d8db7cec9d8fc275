package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paroquia-backend/internal/domain"
)

func TestRunSteps(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	results, err := RunSteps(context.Background(), zap.NewNop(),
		Step{Name: "ok", Run: func(context.Context) error { return nil }},
		Step{Name: "gone", Tolerate: notFound, Run: func(context.Context) error {
			return fmt.Errorf("lookup: %w", domain.ErrNotFound)
		}},
		Step{Name: "broken", Run: func(context.Context) error { return boom }},
	)
	require.Len(t, results, 3)
	assert.Equal(t, OutcomeOK, results[0].Outcome)
	assert.Equal(t, OutcomeTolerated, results[1].Outcome)
	assert.Equal(t, OutcomeFatal, results[2].Outcome)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "broken")
	assert.NotContains(t, err.Error(), "gone")
}

func TestRunSteps_AllSucceed(t *testing.T) {
	t.Parallel()
	results, err := RunSteps(context.Background(), zap.NewNop(),
		Step{Name: "a", Run: func(context.Context) error { return nil }},
		Step{Name: "b", Tolerate: notFound, Run: func(context.Context) error { return domain.ErrNotFound }},
	)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFold_NotFoundIsFatalWithoutTolerate(t *testing.T) {
	t.Parallel()
	r := classify(Step{Name: "dir"}, domain.ErrNotFound)
	assert.Equal(t, OutcomeFatal, r.Outcome)
	assert.ErrorIs(t, Fold([]StepResult{r}), domain.ErrNotFound)
	assert.Equal(t, "fatal", r.Outcome.String())
}
