package server

// request validation module, uses go-playground/validator with JSON field
// names so that error details refer to request body keys
//
// Copyright (c) 2023 - Valentin Kuznetsov <vkuznet@gmail.com>
//

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents single field validation error
type FieldError struct {
	Field   string `json:"field"`   // request body field
	Tag     string `json:"tag"`     // failed validation tag
	Message string `json:"message"` // human readable message
}

// ValidationError represents request body which does not match its schema
type ValidationError struct {
	Fields []FieldError
}

// Error implements error interface
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	var msgs []string
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Validator returns singleton validator instance
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct validates given struct, it returns nil or *ValidationError
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Tag: "unknown", Message: err.Error()}}}
	}
	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: translateError(fe)}
	}
	return &ValidationError{Fields: fields}
}

// helper function to convert validator error to human message
func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed on '%s' validation", fe.Field(), fe.Tag())
}

// DecodeJSON decodes HTTP request JSON body into given struct and validates it.
// Any failure is reported as *ValidationError.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return &ValidationError{Fields: []FieldError{{Field: "body", Tag: "required", Message: "body is required"}}}
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &ValidationError{Fields: []FieldError{{Field: "body", Tag: "required", Message: "body is required"}}}
		}
		field := "body"
		var terr *json.UnmarshalTypeError
		if errors.As(err, &terr) && terr.Field != "" {
			field = terr.Field
		}
		return &ValidationError{Fields: []FieldError{{Field: field, Tag: "json", Message: err.Error()}}}
	}
	return ValidateStruct(v)
}
