package saga

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
}

func step(j *journal, name string, doErr, undoErr error) Step {
	return Step{
		Name: name,
		Action: func(ctx context.Context) error {
			j.add("do:" + name)
			return doErr
		},
		Compensate: func(ctx context.Context) error {
			j.add("undo:" + name)
			return undoErr
		},
	}
}

func TestRun_AllStepsCommit(t *testing.T) {
	j := &journal{}
	res := New([]Step{
		step(j, "a", nil, nil),
		step(j, "b", nil, nil),
		step(j, "c", nil, nil),
	}).Run(context.Background())

	require.False(t, res.Failed())
	assert.Equal(t, []string{"a", "b", "c"}, res.Committed)
	assert.Equal(t, []string{"do:a", "do:b", "do:c"}, j.entries)
	assert.Empty(t, res.Compensated)
	assert.NoError(t, res.CompensationErr())
}

func TestRun_CompensatesCommittedStepsInReverse(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name            string
		steps           func(j *journal) []Step
		wantFailed      string
		wantJournal     []string
		wantCompensated []string
		wantFailures    []string
	}{
		{
			name: "first step fails, nothing to undo",
			steps: func(j *journal) []Step {
				return []Step{step(j, "a", boom, nil), step(j, "b", nil, nil)}
			},
			wantFailed:  "a",
			wantJournal: []string{"do:a"},
		},
		{
			name: "third step fails, first two undone newest first",
			steps: func(j *journal) []Step {
				return []Step{step(j, "a", nil, nil), step(j, "b", nil, nil), step(j, "c", boom, nil)}
			},
			wantFailed:      "c",
			wantJournal:     []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"},
			wantCompensated: []string{"b", "a"},
		},
		{
			name: "failed compensation does not stop the rest",
			steps: func(j *journal) []Step {
				return []Step{step(j, "a", nil, nil), step(j, "b", nil, errors.New("undo b")), step(j, "c", boom, nil)}
			},
			wantFailed:      "c",
			wantJournal:     []string{"do:a", "do:b", "do:c", "undo:b", "undo:a"},
			wantCompensated: []string{"a"},
			wantFailures:    []string{"b"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			j := &journal{}
			res := New(tt.steps(j)).Run(context.Background())

			require.True(t, res.Failed())
			assert.ErrorIs(t, res.Err, boom)
			assert.Equal(t, tt.wantFailed, res.FailedStep)
			assert.Equal(t, tt.wantJournal, j.entries)
			assert.Equal(t, tt.wantCompensated, res.Compensated)

			var failed []string
			for _, f := range res.Failures {
				failed = append(failed, f.Step)
			}
			assert.Equal(t, tt.wantFailures, failed)
			assert.Equal(t, len(tt.wantFailures) == 0, res.FullyCompensated())
		})
	}
}

func TestRun_StepWithoutCompensationIsSkipped(t *testing.T) {
	j := &journal{}
	read := Step{Name: "read", Action: func(ctx context.Context) error { j.add("do:read"); return nil }}

	res := New([]Step{
		step(j, "write", nil, nil),
		read,
		step(j, "persist", errors.New("db down"), nil),
	}).Run(context.Background())

	require.True(t, res.Failed())
	assert.Equal(t, []string{"do:write", "do:read", "do:persist", "undo:write"}, j.entries)
}

func TestRun_StepTimeoutIsFailure(t *testing.T) {
	j := &journal{}
	slow := Step{
		Name: "slow",
		Action: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	res := New([]Step{step(j, "a", nil, nil), slow}, WithStepTimeout(10*time.Millisecond)).Run(context.Background())

	require.True(t, res.Failed())
	assert.Equal(t, "slow", res.FailedStep)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.Equal(t, []string{"do:a", "undo:a"}, j.entries)
}

func TestRun_CompensationSurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var undoCtxErr error
	steps := []Step{
		{
			Name:   "write",
			Action: func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error {
				undoCtxErr = ctx.Err()
				return nil
			},
		},
		{
			Name: "persist",
			Action: func(ctx context.Context) error {
				cancel()
				return ctx.Err()
			},
		},
	}

	res := New(steps).Run(ctx)

	require.True(t, res.Failed())
	assert.NoError(t, undoCtxErr)
	assert.Equal(t, []string{"write"}, res.Compensated)
}

func TestRun_ObserverSeesActionsAndCompensations(t *testing.T) {
	j := &journal{}
	var seen []string
	obs := func(step string, took time.Duration, err error) {
		seen = append(seen, step)
	}

	New([]Step{step(j, "a", nil, nil), step(j, "b", errors.New("x"), nil)}, WithObserver(obs)).Run(context.Background())

	assert.Equal(t, []string{"a", "b", "a.compensate"}, seen)
}

func TestResult_CompensationErrJoinsFailures(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")
	res := Result{Failures: []CompensationFailure{{Step: "x", Err: e1}, {Step: "y", Err: e2}}}

	err := res.CompensationErr()
	require.Error(t, err)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.Contains(t, err.Error(), "x: first")
}
