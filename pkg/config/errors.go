/*
Copyright 2025 The AlaudaDevops Authors.

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

package config

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes schema errors
type ErrorKind string

const (
	KindMissingField     ErrorKind = "missing_field"
	KindInvalidEnumValue ErrorKind = "invalid_enum_value"
	KindAmbiguousSchema  ErrorKind = "ambiguous_schema"
	KindInvalidValue     ErrorKind = "invalid_value"
	KindParse            ErrorKind = "parse"
)

// Sentinels matched by errors.Is against a *SchemaError of the same kind
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidEnumValue = errors.New("invalid enum value")
	ErrAmbiguousSchema  = errors.New("ambiguous schema")
	ErrInvalidValue     = errors.New("invalid value")
	ErrParse            = errors.New("malformed document")
)

var sentinels = map[ErrorKind]error{
	KindMissingField:     ErrMissingField,
	KindInvalidEnumValue: ErrInvalidEnumValue,
	KindAmbiguousSchema:  ErrAmbiguousSchema,
	KindInvalidValue:     ErrInvalidValue,
	KindParse:            ErrParse,
}

// SchemaError is returned by every failed load. Field is the path of the
// offending value, e.g. packageRules[0].matchUpdateTypes[1].
type SchemaError struct {
	Kind    ErrorKind
	Field   string
	Value   interface{}
	Message string
	Cause   error
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", sentinels[e.Kind], e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", sentinels[e.Kind], e.Field, e.Message)
}

// Unwrap exposes the kind sentinel and the underlying cause
func (e *SchemaError) Unwrap() []error {
	errs := []error{sentinels[e.Kind]}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func missingField(field string) *SchemaError {
	return &SchemaError{Kind: KindMissingField, Field: field, Message: "field is required"}
}

func invalidEnum(field string, value interface{}, allowed interface{}) *SchemaError {
	return &SchemaError{
		Kind:    KindInvalidEnumValue,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("%v is not one of %v", value, allowed),
	}
}

func ambiguous(field, current, legacy string) *SchemaError {
	return &SchemaError{
		Kind:    KindAmbiguousSchema,
		Field:   field,
		Message: fmt.Sprintf("both %q and legacy %q are set, use only %q", current, legacy, current),
	}
}

func invalidValue(field string, value interface{}, format string, args ...interface{}) *SchemaError {
	return &SchemaError{
		Kind:    KindInvalidValue,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}

func parseError(source string, cause error) *SchemaError {
	return &SchemaError{
		Kind:    KindParse,
		Message: fmt.Sprintf("failed to parse %s: %v", source, cause),
		Cause:   cause,
	}
}
