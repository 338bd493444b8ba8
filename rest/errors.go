package rest

import (
	"fmt"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/rest/internal/outcome"
)

// FhirError is a non-success response whose body decoded into an
// OperationOutcome.
type FhirError struct {
	StatusCode int
	Outcome    model.Resource
	Issues     []outcome.Issue
}

func (e *FhirError) Error() string {
	if len(e.Issues) > 0 {
		first := e.Issues[0]
		detail := first.Diagnostics
		if detail == "" {
			detail = first.Code
		}
		return fmt.Sprintf("server returned %d: %s/%s: %s", e.StatusCode, first.Severity, first.Code, detail)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// ProtocolError is a non-success response whose body could not be decoded
// into an OperationOutcome.
type ProtocolError struct {
	StatusCode int
	Body       []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when the configured attempts are exhausted without a
// usable response.
type TransportError struct {
	// Attempts is the number of attempts made.
	Attempts int
	// LastStatus is the status code of the last response, or 0 when the
	// last attempt failed before receiving one.
	LastStatus int
	Err        error
}

func (e *TransportError) Error() string {
	if e.LastStatus != 0 {
		return fmt.Sprintf("request failed after %d attempts (last status %d): %v", e.Attempts, e.LastStatus, e.Err)
	}
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
