package model

import "fmt"

// DecodeErrorKind classifies codec failures.
type DecodeErrorKind string

const (
	// MissingRequiredField reports a required field absent from the wire.
	MissingRequiredField DecodeErrorKind = "missing-required-field"
	// UnknownField reports a wire field not declared by the target type.
	// Only returned in strict mode; lenient decoding skips unknown fields.
	UnknownField DecodeErrorKind = "unknown-field"
	// InvalidChoiceVariant reports zero or more than one populated variant
	// for a choice field, or a type suffix outside the declared set.
	InvalidChoiceVariant DecodeErrorKind = "invalid-choice-variant"
	// TypeMismatch reports a JSON value of the wrong shape for the field.
	TypeMismatch DecodeErrorKind = "type-mismatch"
	// InvalidPrimitiveFormat reports a malformed primitive lexical form
	// (date, dateTime, instant, base64Binary, decimal).
	InvalidPrimitiveFormat DecodeErrorKind = "invalid-primitive-format"
	// UnsupportedResourceType reports a resourceType tag unknown to the
	// active release.
	UnsupportedResourceType DecodeErrorKind = "unsupported-resource-type"
)

// DecodeError is returned by the JSON codec on the first structural or type
// error encountered. Decoding is fail-fast: there is no partial result and
// no error aggregation.
type DecodeError struct {
	Kind DecodeErrorKind
	// Path is the JSON path of the offending field, e.g.
	// "Observation.component[1].valueQuantity".
	Path   string
	Detail string
	Cause  error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s: %s", e.Path, e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// BuildError is returned by builders when a required field was not set
// before Build. Field names the first unmet field in declaration order.
type BuildError struct {
	Type  string
	Field string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: missing required field %q", e.Type, e.Field)
}

// UnsupportedVersionError is returned when a feature or type is not present
// in the active release.
type UnsupportedVersionError struct {
	Release string
	Feature string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("release %s does not support %s", e.Release, e.Feature)
}
