package domain

import (
	"context"
	"errors"
	"fmt"
)

// RetryableError marks a transient failure: network, timeout, rate
// limit. The workflow engine retries these locally up to the bound.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return fmt.Sprintf("retryable: %v", e.Err) }
func (e *RetryableError) Unwrap() error { return e.Err }

// FatalError marks a permanent failure: invalid input, missing
// configuration, platform rejection. It sends the workflow to Failed.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return fmt.Sprintf("fatal: %v", e.Err) }
func (e *FatalError) Unwrap() error { return e.Err }

// ClassifyError maps a collaborator error to a step outcome. Timeouts
// and cancellations are retryable; unmarked errors are treated as
// retryable too, since collaborators flag permanent conditions with
// FatalError explicitly.
func ClassifyError(err error) Outcome {
	if err == nil {
		return Success()
	}
	var fatal *FatalError
	if errors.As(err, &fatal) {
		return Fatal(err.Error())
	}
	var retryable *RetryableError
	if errors.As(err, &retryable) {
		return Retryable(err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Retryable(err.Error())
	}
	return Retryable(err.Error())
}
