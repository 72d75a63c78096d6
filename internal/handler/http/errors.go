// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the session gate when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Authorization" header carries the
	// Bearer scheme but the token value itself is an empty string.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

var (
	errInvalidJSON       = errors.New("invalid JSON body")
	errMissingFile       = errors.New("multipart field `file` is missing")
	errUploadTooLarge    = errors.New("upload exceeds the size limit")
	errInvalidMultipart  = errors.New("invalid multipart body")
	errReadingUploadFile = errors.New("error reading uploaded file")
)
