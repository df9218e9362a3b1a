package provider

import (
	"errors"
	"fmt"
)

// Class is the cause category of a failed remote call.
type Class string

const (
	// ClassTransport means no response was received (network, DNS, timeout,
	// cancellation).
	ClassTransport Class = "transport"
	// ClassProtocol means the service answered with a non-success status.
	ClassProtocol Class = "protocol"
	// ClassMalformed means the service answered but the body could not be
	// read as the expected structure.
	ClassMalformed Class = "malformed"
	// ClassValidation means required user input was missing and no call was
	// made.
	ClassValidation Class = "validation"
)

// Failure is a classified remote-call failure.
type Failure struct {
	Class      Class
	Service    string
	Operation  string
	StatusCode int
	// Message is the provider's own error text, when it sent one.
	Message string
	Err     error
}

func (f *Failure) Error() string {
	switch {
	case f.StatusCode != 0 && f.Message != "":
		return fmt.Sprintf("%s %s: %s failure (status %d): %s", f.Service, f.Operation, f.Class, f.StatusCode, f.Message)
	case f.StatusCode != 0:
		return fmt.Sprintf("%s %s: %s failure (status %d)", f.Service, f.Operation, f.Class, f.StatusCode)
	case f.Err != nil:
		return fmt.Sprintf("%s %s: %s failure: %v", f.Service, f.Operation, f.Class, f.Err)
	default:
		return fmt.Sprintf("%s %s: %s failure: %s", f.Service, f.Operation, f.Class, f.Message)
	}
}

func (f *Failure) Unwrap() error { return f.Err }

// ValidationError reports missing or invalid user input detected before any
// network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Validation builds a ValidationError for field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ClassOf returns the failure class carried by err, or "" when err is not a
// classified failure.
func ClassOf(err error) Class {
	var f *Failure
	if errors.As(err, &f) {
		return f.Class
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return ClassValidation
	}
	return ""
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return ClassOf(err) == ClassTransport }

// IsProtocol reports whether err is a protocol failure.
func IsProtocol(err error) bool { return ClassOf(err) == ClassProtocol }

// IsMalformed reports whether err is a malformed-response failure.
func IsMalformed(err error) bool { return ClassOf(err) == ClassMalformed }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return ClassOf(err) == ClassValidation }

// UserMessage turns err into the static banner text shown to the user.
func UserMessage(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	var f *Failure
	if !errors.As(err, &f) {
		if err == nil {
			return ""
		}
		return "An unexpected error occurred"
	}
	switch f.Class {
	case ClassProtocol:
		if f.Message != "" {
			return f.Message
		}
		return "Server error occurred"
	case ClassTransport:
		return "No response from server. Please check if the service is running."
	default:
		return "Unexpected response from server."
	}
}
