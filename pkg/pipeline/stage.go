// Package pipeline provides the stage infrastructure and the data passed
// between the masking, remux and trim stages.
package pipeline

import (
	"context"
	"errors"
)

// Stage is one step of a job.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageError names the stage a job failed in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + " stage: " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Run executes s and wraps any failure in a *StageError called name.
func Run[In, Out any](ctx context.Context, name string, s Stage[In, Out], input In) (Out, error) {
	out, err := s.Execute(ctx, input)
	if err != nil {
		return out, &StageError{Stage: name, Err: err}
	}
	return out, nil
}

// FailedStage returns the name of the stage err came from, or "" when err
// carries no *StageError.
func FailedStage(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
