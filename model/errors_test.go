package model

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeErrorMessage(t *testing.T) {
	cause := errors.New("strconv: parse failure")
	err := &DecodeError{
		Kind:   InvalidPrimitiveFormat,
		Path:   "Patient.birthDate",
		Detail: "not a date",
		Cause:  cause,
	}
	for _, want := range []string{"Patient.birthDate", "invalid-primitive-format", "not a date", "parse failure"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, want substring %q", err.Error(), want)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}

func TestBuildErrorMessage(t *testing.T) {
	err := &BuildError{Type: "Observation", Field: "status"}
	if got := err.Error(); !strings.Contains(got, "Observation") || !strings.Contains(got, "status") {
		t.Errorf("Error() = %q", got)
	}
}

func TestUnsupportedVersionErrorMessage(t *testing.T) {
	err := &UnsupportedVersionError{Release: "R4", Feature: "Bundle.issues"}
	if got := err.Error(); !strings.Contains(got, "R4") || !strings.Contains(got, "Bundle.issues") {
		t.Errorf("Error() = %q", got)
	}
}
