// Package saga runs an ordered list of forward actions, each paired with an
// optional compensating action. On the first failing action the compensations
// of every action that already committed run in reverse order. Compensation is
// best-effort: it is attempted once and its failure is reported next to the
// original error, never instead of it.
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "docvault-api/pkg/saga"

type (
	Action func(ctx context.Context) error

	Step struct {
		Name       string
		Action     Action
		Compensate Action
	}

	// Observer receives the duration and error of every action and compensation.
	// Compensations are reported as "<step>.compensate".
	Observer func(step string, took time.Duration, err error)

	Option func(*Saga)

	Saga struct {
		steps       []Step
		stepTimeout time.Duration
		observer    Observer
	}

	CompensationFailure struct {
		Step string
		Err  error
	}

	Result struct {
		FailedStep string
		Err        error
		Committed  []string
		// Compensated lists the steps whose compensation succeeded, in the order they ran.
		Compensated []string
		Failures    []CompensationFailure
	}
)

// WithStepTimeout bounds every action and compensation. A timeout is reported
// as the step's failure.
func WithStepTimeout(d time.Duration) Option {
	return func(s *Saga) { s.stepTimeout = d }
}

func WithObserver(o Observer) Option {
	return func(s *Saga) { s.observer = o }
}

func New(steps []Step, opts ...Option) *Saga {
	s := &Saga{steps: steps}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (r Result) Failed() bool { return r.Err != nil }

// FullyCompensated reports whether every compensation that ran succeeded.
func (r Result) FullyCompensated() bool { return len(r.Failures) == 0 }

// CompensationErr joins every compensation failure, or returns nil.
func (r Result) CompensationErr() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.Step, f.Err))
	}
	return errors.Join(errs...)
}

func (s *Saga) Run(ctx context.Context) Result {
	var res Result

	for i, step := range s.steps {
		if err := s.exec(ctx, step.Name, step.Action); err != nil {
			res.FailedStep = step.Name
			res.Err = err
			s.compensate(ctx, s.steps[:i], &res)
			return res
		}
		res.Committed = append(res.Committed, step.Name)
	}

	return res
}

// compensate runs detached from the caller's cancellation: the request may be
// gone, the written side effects are not.
func (s *Saga) compensate(ctx context.Context, committed []Step, res *Result) {
	ctx = context.WithoutCancel(ctx)
	for i := len(committed) - 1; i >= 0; i-- {
		step := committed[i]
		if step.Compensate == nil {
			continue
		}
		if err := s.exec(ctx, step.Name+".compensate", step.Compensate); err != nil {
			res.Failures = append(res.Failures, CompensationFailure{Step: step.Name, Err: err})
			continue
		}
		res.Compensated = append(res.Compensated, step.Name)
	}
}

func (s *Saga) exec(ctx context.Context, name string, fn Action) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "saga."+name)
	defer span.End()

	if s.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.stepTimeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	if s.observer != nil {
		s.observer(name, time.Since(start), err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("saga.failed", true))
	}

	return err
}
