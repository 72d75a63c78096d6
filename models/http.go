// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON body of every failed API call.
// Name is a stable machine-readable error kind.
type ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
