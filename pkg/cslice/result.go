package cslice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ib-77/cslice/pkg/cslice/plan"
)

// Result is the outcome of a worker run over one chunk: a value, a failure
// or a cancellation, tagged with the chunk's region.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	region    plan.Region
	result    T
	err       error
	isSuccess bool
	isCancel  bool
}

func Success[T any](region plan.Region, r T) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		region:    region,
		result:    r,
		isSuccess: true,
	}
}

func Fail[T any](region plan.Region, err error) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		region:    region,
		err:       err,
	}
}

func Cancel[T any](region plan.Region, err error) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		region:    region,
		err:       err,
		isCancel:  true,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) Region() plan.Region {
	return r.region
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isCancel
}

// CreatedAt time creation (UTC)
func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) ID() uuid.UUID {
	return r.id
}

// Errors joins the errors of failed and cancelled results, in order.
// It returns nil when every result succeeded.
func Errors[T any](results []Result[T]) error {
	var errs []error
	for _, r := range results {
		if !r.isSuccess && r.err != nil {
			errs = append(errs, r.err)
		}
	}
	return errors.Join(errs...)
}

// GetErrors unpacks an errors.Join tree one level deep.
func GetErrors(err error) []error {
	if err == nil {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
