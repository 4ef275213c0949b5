/*
Copyright 2026 The FedSQL Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package federrors provides the error type used throughout the planner.
//
// Every error created here carries a Code, and wrapping preserves the code
// of the innermost error that set one explicitly:
//
//	err := federrors.Errorf(federrors.Internal, "classifier failed on %v", expr)
//	err = federrors.Wrap(err, "evaluating pushdown")
//	federrors.Code(err) // Internal
//
// Errors from outside the codebase report Unknown.
package federrors

import (
	"errors"
	"fmt"
)

// fundamental is an error with a code and a message, created by New or Errorf.
type fundamental struct {
	msg  string
	code ErrorCode
}

func (f *fundamental) Error() string { return f.msg }

// wrapping is an error that adds context to an underlying cause.
type wrapping struct {
	cause error
	msg   string
}

func (w *wrapping) Error() string { return w.msg + ": " + w.cause.Error() }
func (w *wrapping) Unwrap() error { return w.cause }

// New returns an error with the supplied message and code.
func New(code ErrorCode, message string) error {
	return &fundamental{msg: message, code: code}
}

// Errorf formats according to a format specifier and returns the string
// as a value that satisfies error, with the given code attached.
func Errorf(code ErrorCode, format string, args ...any) error {
	return &fundamental{msg: fmt.Sprintf(format, args...), code: code}
}

// Wrap returns an error annotating err with a new message.
// If err is nil, Wrap returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrapping{cause: err, msg: message}
}

// Wrapf returns an error annotating err with the format specifier.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &wrapping{cause: err, msg: fmt.Sprintf(format, args...)}
}

// Code returns the error code of the innermost error that carries one,
// Unknown for non-nil errors without a code, and OK for nil.
func Code(err error) ErrorCode {
	if err == nil {
		return OK
	}
	var f *fundamental
	if errors.As(err, &f) {
		return f.code
	}
	return Unknown
}

// RootCause unwraps err all the way down and returns the innermost error.
func RootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
