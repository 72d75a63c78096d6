// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperr defines the error type returned across the service boundary.
//
// Every failure a handler can observe carries exactly one [Kind]. The HTTP
// layer maps the kind to a status code and a stable error name; the
// wrapped cause is kept for logging only.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindStorage is a failure of the embedded database.
	KindStorage Kind = iota
	// KindInvalidArgument is a malformed or contradictory request.
	KindInvalidArgument
	// KindInvalidCredentials is a wrong password.
	KindInvalidCredentials
	// KindUnauthenticated is a missing or invalid session token.
	KindUnauthenticated
	// KindNotFound is a missing entity or an unusable asset token.
	KindNotFound
	// KindDecode is stored data that no longer decodes.
	KindDecode
)

var kindNames = map[Kind]string{
	KindStorage:            "storage",
	KindInvalidArgument:    "invalid_argument",
	KindInvalidCredentials: "invalid_credentials",
	KindUnauthenticated:    "unauthenticated",
	KindNotFound:           "resource_not_found",
	KindDecode:             "decode",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so kind-only sentinels
// such as [NotFound] work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	Storage            = &Error{Kind: KindStorage}
	InvalidArgument    = &Error{Kind: KindInvalidArgument}
	InvalidCredentials = &Error{Kind: KindInvalidCredentials}
	Unauthenticated    = &Error{Kind: KindUnauthenticated}
	NotFound           = &Error{Kind: KindNotFound}
	Decode             = &Error{Kind: KindDecode}
)

// New returns an error of the given kind without a cause.
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf is [New] with formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err. A nil err stays nil. An err that already carries
// a kind is returned unchanged.
func Wrap(kind Kind, err error, message string) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err. Unclassified errors are storage errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal error"
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}
