package core

import "errors"

// ErrValueOfFailedResult is the panic value raised when Value is called on a
// failed Result.
var ErrValueOfFailedResult = errors.New("Can't get the value of an error result. Use 'errorValue' instead.")

// ErrNilFailure is the panic value raised when Fail is given a nil error.
var ErrNilFailure = errors.New("core: Fail called with a nil error")

// Result is the outcome of a use case: exactly one of a value or an error.
// The zero Result is a success holding the zero value of T.
type Result[T any] struct {
	value   T
	err     error
	isError bool
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail returns a failed Result holding err. err must not be nil: Fail(nil)
// panics with ErrNilFailure rather than building a success. Use From when
// the error may be nil.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic(ErrNilFailure)
	}
	return Result[T]{err: err, isError: true}
}

// From builds a Result from the usual (value, error) pair. A non-nil err
// yields a failed Result and v is discarded.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err, isError: true}
	}
	return Result[T]{value: v}
}

// IsError reports whether the Result holds an error.
func (r Result[T]) IsError() bool {
	return r.isError
}

// Value returns the success value. It panics with ErrValueOfFailedResult if
// the Result holds an error.
func (r Result[T]) Value() T {
	if r.isError {
		panic(ErrValueOfFailedResult)
	}
	return r.value
}

// Err returns the error of a failed Result, or nil for a successful one.
func (r Result[T]) Err() error {
	if r.isError {
		return r.err
	}
	return nil
}

// Get returns the value and error without panicking.
func (r Result[T]) Get() (T, error) {
	if r.isError {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Map applies fn to the value of a successful Result. Failures pass through
// with their error unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.isError {
		return Result[U]{err: r.err, isError: true}
	}
	return Ok(fn(r.value))
}
