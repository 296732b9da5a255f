package client

import (
	"fmt"
)

// ErrorClass represents a classification of upstream errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents bodies that are not valid JSON.
	ErrorClassDecode ErrorClass = "decode"

	// ErrorClassSchema represents JSON that lacks a required field.
	ErrorClassSchema ErrorClass = "schema"
)

// APIError represents a failed upstream request.
type APIError struct {
	Endpoint   string
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s error (status %d) on %s: %s: %v",
			e.ErrorClass, e.StatusCode, e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream %s error (status %d) on %s: %s",
		e.ErrorClass, e.StatusCode, e.Endpoint, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// UpstreamSchemaError reports a response that decoded but lacks a field
// the catalog relies on. Only the sub-operation that needed the field fails.
type UpstreamSchemaError struct {
	Endpoint string
	// Field is the dotted path of the missing field, e.g. "sprites.other".
	Field string
}

// Error implements the error interface.
func (e *UpstreamSchemaError) Error() string {
	return fmt.Sprintf("upstream schema error on %s: missing field %q", e.Endpoint, e.Field)
}

func schemaError(endpoint, field string) *UpstreamSchemaError {
	return &UpstreamSchemaError{Endpoint: endpoint, Field: field}
}
