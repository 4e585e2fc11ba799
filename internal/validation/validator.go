// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

// Package validation wraps go-playground/validator v10 with a shared
// instance and messages keyed by JSON field names, so a client sees
// "location.latitude" rather than the Go field path.
//
//	type TrackRequest struct {
//	    SessionID string `json:"sessionId" validate:"omitempty,max=128"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.Error())
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError collects every failed rule of one struct.
type RequestValidationError struct {
	fields []FieldError
}

// Fields returns the individual failures in declaration order.
func (e *RequestValidationError) Fields() []FieldError {
	return e.fields
}

// Error joins the failure messages.
func (e *RequestValidationError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.fields))
	for i, f := range e.fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator. It is safe for concurrent use
// and caches struct metadata across calls.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
	})
	return validate
}

// jsonFieldName reports fields by their JSON name. Fields tagged "-" keep
// the Go name.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return fld.Name
	}
	return name
}

// ValidateStruct validates s and returns nil or a *RequestValidationError.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		path := fieldPath(fe.Namespace())
		fields[i] = FieldError{
			Field:   path,
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe, path),
		}
	}
	return &RequestValidationError{fields: fields}
}

// fieldPath drops the root struct name from a namespace such as
// "TrackRequest.location.latitude".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

var errorMessageTemplates = map[string]string{
	"required":   "%s is required",
	"latitude":   "%s must be a valid latitude (-90 to 90)",
	"longitude":  "%s must be a valid longitude (-180 to 180)",
	"printascii": "%s must contain printable ASCII only",
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError, field string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}
	return translateMinMax(fe, field, tag, param)
}

// translateMinMax distinguishes string length from numeric bounds.
func translateMinMax(fe validator.FieldError, field, tag, param string) string {
	isString := fe.Kind() == reflect.String

	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
