// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks decoded requests before they reach storage.
//
// Rules live next to the models as `validate` struct tags and are enforced
// with go-playground/validator. Cross-field rules that tags cannot express,
// such as an ordered date range, are registered here as struct-level
// validations.
package validators

import "context"

// Validator checks a decoded request. When fields are given only those
// fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
