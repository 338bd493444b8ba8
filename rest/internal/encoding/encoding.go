// Package encoding dispatches resource encode/decode to the release
// selected by the type parameter.
package encoding

import (
	"fmt"
	"io"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/model/gen/r4"
	"github.com/healthwire/fhir-sdk-go/model/gen/r5"
)

// DecodeResource decodes any resource of release R from FHIR JSON.
// Unknown fields are skipped unless strict is set.
func DecodeResource[R model.Release](r io.Reader, strict bool) (model.Resource, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	var release R
	switch any(release).(type) {
	case model.R4:
		if strict {
			return r4.UnmarshalResourceStrict(b)
		}
		return r4.UnmarshalResource(b)
	case model.R5:
		if strict {
			return r5.UnmarshalResourceStrict(b)
		}
		return r5.UnmarshalResource(b)
	default:
		return nil, &model.UnsupportedVersionError{
			Release: fmt.Sprintf("%T", release),
			Feature: "JSON codec",
		}
	}
}

// EncodeResource serializes a resource of release R to FHIR JSON.
func EncodeResource[R model.Release](resource model.Resource) ([]byte, error) {
	var release R
	switch any(release).(type) {
	case model.R4:
		return r4.MarshalResource(resource)
	case model.R5:
		return r5.MarshalResource(resource)
	default:
		return nil, &model.UnsupportedVersionError{
			Release: fmt.Sprintf("%T", release),
			Feature: "JSON codec",
		}
	}
}
