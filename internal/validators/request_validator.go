// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-ledger-keeper/models"
)

// tagDateRange is reported for a list request whose From is after To.
const tagDateRange = "date_range"

// RequestValidator validates request models by their struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns a ready [RequestValidator].
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names, they are what the client sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateListRange, models.ListRequest{})

	return &RequestValidator{validate: v}
}

// Validate checks structs and pointers to structs by their tags, and
// slices and arrays element by element. Partial validation by field name
// applies to structs only.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ErrUnsupportedType
		}
		value = value.Elem()
	}

	var err error
	switch value.Kind() {
	case reflect.Struct:
		if len(fields) > 0 {
			err = v.validate.StructPartialCtx(ctx, obj, fields...)
		} else {
			err = v.validate.StructCtx(ctx, obj)
		}
	case reflect.Slice, reflect.Array:
		err = v.validate.VarCtx(ctx, obj, "dive")
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	return describe(err)
}

func validateListRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.ListRequest)
	if !req.HasValidRange() {
		sl.ReportError(req.From, "From", "from", tagDateRange, "")
	}
}

// describe turns validator errors into one [ErrInvalidRequest] listing
// every failed field.
func describe(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Tag() == tagDateRange {
			problems = append(problems, ErrInvalidRange.Error())
			continue
		}
		problem := fmt.Sprintf("%s failed on %q", fieldPath(fe), fe.Tag())
		if fe.Param() != "" {
			problem += " (" + fe.Param() + ")"
		}
		problems = append(problems, problem)
	}

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(problems, "; "))
}

// fieldPath drops the root type name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
