// Package validation provides input validation utilities for request
// handlers and configuration structs.
//
// It supports both struct tag validation (using the validator library)
// and programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type AnalyzeRequest struct {
//	    Schema string `json:"schema" validate:"omitempty,oneof=core-v1 extended-v1"`
//	}
//	err := validation.Validate(req)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("filename", filename).OneOf("schema", schema, names)
//	err := v.Validate()
package validation
