package errors

import (
	goerrors "errors"
)

// The standard library helpers are re-exported so callers importing this
// package under the name errors keep the usual chain inspection functions.

func Unwrap(err error) error {
	return goerrors.Unwrap(err)
}

func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

func As(err error, target any) bool {
	return goerrors.As(err, target)
}

func Join(errs ...error) error {
	return goerrors.Join(errs...)
}
