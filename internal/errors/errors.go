// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package errors defines the fatal error kinds reported by putparam.
//
// Every kind terminates the run with a non-zero exit status. Problems with the
// tag configuration file are not errors; they are logged as warnings by the
// tags package and the run continues.
package errors

import (
	"errors"
	"fmt"
)

// UsageError reports malformed or missing command-line arguments.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("usage: %s: %v", e.Message, e.Err)
	}
	return "usage: " + e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// ConflictError reports two mutually exclusive flags given together.
type ConflictError struct {
	Flags []string
}

func (e *ConflictError) Error() string {
	if len(e.Flags) == 2 {
		return fmt.Sprintf("--%s and --%s cannot be used together", e.Flags[0], e.Flags[1])
	}
	return fmt.Sprintf("flags %v cannot be used together", e.Flags)
}

// ValidationError reports an input value rejected before any AWS call.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StoreError wraps any failure returned by Parameter Store other than the
// "not found" answer to the existence check.
type StoreError struct {
	Op   string
	Name string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsUsage reports whether err is, or wraps, a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsConflict reports whether err is, or wraps, a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStore reports whether err is, or wraps, a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
