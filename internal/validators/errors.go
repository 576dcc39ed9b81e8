// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is returned for values that are not structs or
	// pointers to structs.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrInvalidInput is matched by every [*ValidationError].
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes one failed rule.
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`
	// Rule is the failed validation tag, e.g. "min" or "email".
	Rule string `json:"rule"`
	// Param is the tag parameter, e.g. "3" for min=3.
	Param string `json:"param,omitempty"`
}

func (e FieldError) String() string {
	switch e.Rule {
	case "required":
		return e.Field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "email":
		return e.Field + " must be a valid e-mail address"
	case "numeric":
		return e.Field + " must contain digits only"
	case "username":
		return e.Field + " may contain only letters, digits and underscores"
	case "url":
		return e.Field + " must be a valid URL"
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed %s validation", e.Field, e.Rule)
	}
}

// ValidationError lists every failed rule of one value.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.String())
	}
	return strings.Join(messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
