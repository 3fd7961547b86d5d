// Riffline - Social Music Collaboration and Discovery Platform
// Copyright 2026 Tristan Hayes (tristanhayes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tristanhayes/riffline

package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine errors for envelope mapping.
type ErrorKind int

const (
	// KindValidation indicates malformed or missing required input,
	// an unknown chart/search kind, or an out-of-range config value.
	KindValidation ErrorKind = iota

	// KindNotFound indicates a referenced user or song ID absent from
	// the supplied snapshot.
	KindNotFound

	// KindComputation indicates an internal invariant violation. It is
	// treated as a defect: logged by the orchestrator and surfaced as a
	// generic failure.
	KindComputation
)

// String returns a stable identifier for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindComputation:
		return "computation"
	default:
		return "unknown"
	}
}

// Error is the discriminated error type returned by engine components.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Validationf constructs a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf constructs a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Computationf constructs a computation error.
func Computationf(format string, args ...any) *Error {
	return &Error{Kind: KindComputation, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a *Error from err's chain.
// Returns nil if err does not carry an engine error.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// KindOf returns the error kind for err.
// Errors that are not engine errors are classified as computation defects.
func KindOf(err error) ErrorKind {
	if e := AsError(err); e != nil {
		return e.Kind
	}
	return KindComputation
}
