package r5

import (
	"errors"
	"testing"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/testdata/assert"
)

// The shared codec behavior is covered against the R4 package; these
// tests pin the R5 structural deltas.

func TestObservationTriggeredByRoundTrip(t *testing.T) {
	in := `{
	  "resourceType": "Observation",
	  "id": "reflex",
	  "instantiatesCanonical": "http://example.org/fhir/ObservationDefinition/tsh",
	  "triggeredBy": [
	    {
	      "observation": {"reference": "Observation/parent-panel"},
	      "type": "reflex",
	      "reason": "out of range TSH"
	    }
	  ],
	  "status": "final",
	  "code": {
	    "coding": [{"system": "http://loinc.org", "code": "3016-3"}]
	  },
	  "bodyStructure": {"reference": "BodyStructure/thyroid"},
	  "referenceRange": [
	    {
	      "normalValue": {"text": "euthyroid"},
	      "text": "0.4-4.0 mIU/L"
	    }
	  ]
	}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	o := r.(Observation)
	if _, ok := o.Instantiates.(Canonical); !ok {
		t.Errorf("Instantiates = %T, want Canonical", o.Instantiates)
	}
	if len(o.TriggeredBy) != 1 {
		t.Fatalf("triggeredBy: %+v", o.TriggeredBy)
	}
	if o.TriggeredBy[0].Reason == nil || *o.TriggeredBy[0].Reason.Value != "out of range TSH" {
		t.Errorf("reason: %+v", o.TriggeredBy[0])
	}
	if o.ReferenceRange[0].NormalValue == nil {
		t.Errorf("normalValue not decoded")
	}

	out, err := MarshalResource(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, in, string(out))
}

func TestTriggeredByRequiredFields(t *testing.T) {
	in := `{
	  "resourceType": "Observation",
	  "status": "final",
	  "code": {},
	  "triggeredBy": [{"observation": {"reference": "Observation/x"}}]
	}`
	_, err := UnmarshalResource([]byte(in))
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Kind != model.MissingRequiredField {
		t.Fatalf("err = %v, want MissingRequiredField", err)
	}
	if de.Path != "triggeredBy[0].type" {
		t.Errorf("Path = %q, want triggeredBy[0].type", de.Path)
	}
}

func TestInstantiatesChoiceExclusive(t *testing.T) {
	in := `{
	  "resourceType": "Observation",
	  "status": "final",
	  "code": {},
	  "instantiatesCanonical": "http://example.org/def",
	  "instantiatesReference": {"reference": "ObservationDefinition/def"}
	}`
	_, err := UnmarshalResource([]byte(in))
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Kind != model.InvalidChoiceVariant {
		t.Fatalf("err = %v, want InvalidChoiceVariant", err)
	}
}

func TestBundleIssuesRoundTrip(t *testing.T) {
	in := `{
	  "resourceType": "Bundle",
	  "type": "searchset",
	  "total": 0,
	  "link": [
	    {"relation": "self", "url": "http://example.org/fhir/Patient?name=xyz"}
	  ],
	  "issues": {
	    "resourceType": "OperationOutcome",
	    "issue": [
	      {
	        "severity": "warning",
	        "code": "not-supported",
	        "diagnostics": "unknown parameter ignored"
	      }
	    ]
	  }
	}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b := r.(Bundle)
	oo, ok := b.Issues.(OperationOutcome)
	if !ok {
		t.Fatalf("Issues = %T, want OperationOutcome", b.Issues)
	}
	if len(oo.Issue) != 1 {
		t.Errorf("issues: %+v", oo.Issue)
	}

	out, err := MarshalResource(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, in, string(out))
}
