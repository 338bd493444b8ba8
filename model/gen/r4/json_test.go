package r4

import (
	"errors"
	"strings"
	"testing"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/testdata/assert"
)

const patientExample = `{
  "resourceType": "Patient",
  "id": "example",
  "meta": {
    "versionId": "1",
    "lastUpdated": "2024-01-15T10:30:00Z"
  },
  "extension": [
    {
      "url": "http://example.org/fhir/StructureDefinition/nickname",
      "valueString": "Pete"
    }
  ],
  "identifier": [
    {
      "system": "urn:oid:1.2.36.146.595.217.0.1",
      "value": "12345"
    }
  ],
  "active": true,
  "name": [
    {
      "use": "official",
      "family": "Chalmers",
      "given": ["Peter", "James"],
      "_given": [null, {"id": "middle"}]
    }
  ],
  "telecom": [
    {
      "system": "phone",
      "value": "(03) 5555 6473",
      "use": "work",
      "rank": 1
    }
  ],
  "gender": "male",
  "birthDate": "1974-12",
  "_birthDate": {
    "extension": [
      {
        "url": "http://hl7.org/fhir/StructureDefinition/patient-birthTime",
        "valueDateTime": "1974-12-25T14:35:45-05:00"
      }
    ]
  },
  "deceasedBoolean": false,
  "address": [
    {
      "use": "home",
      "line": ["534 Erewhon St"],
      "city": "PleasantVille",
      "state": "Vic",
      "postalCode": "3999"
    }
  ],
  "contact": [
    {
      "relationship": [
        {
          "coding": [
            {
              "system": "http://terminology.hl7.org/CodeSystem/v2-0131",
              "code": "N"
            }
          ]
        }
      ],
      "name": {"family": "du Marché"}
    }
  ],
  "communication": [
    {
      "language": {
        "coding": [
          {"system": "urn:ietf:bcp:47", "code": "nl"}
        ]
      },
      "preferred": true
    }
  ],
  "link": [
    {
      "other": {"reference": "Patient/pat2"},
      "type": "seealso"
    }
  ]
}`

const observationExample = `{
  "resourceType": "Observation",
  "id": "body-height",
  "status": "final",
  "category": [
    {
      "coding": [
        {
          "system": "http://terminology.hl7.org/CodeSystem/observation-category",
          "code": "vital-signs"
        }
      ]
    }
  ],
  "code": {
    "coding": [
      {"system": "http://loinc.org", "code": "8302-2", "display": "Body height"}
    ]
  },
  "subject": {"reference": "Patient/example"},
  "effectiveDateTime": "2024-03-02",
  "valueQuantity": {
    "value": 185.3,
    "unit": "cm",
    "system": "http://unitsofmeasure.org",
    "code": "cm"
  },
  "referenceRange": [
    {
      "low": {"value": 150, "unit": "cm"},
      "high": {"value": 200, "unit": "cm"},
      "text": "expected adult range"
    }
  ],
  "component": [
    {
      "code": {
        "coding": [{"system": "http://loinc.org", "code": "8306-3"}]
      },
      "valueQuantity": {"value": 95.2, "unit": "cm"}
    }
  ]
}`

func TestPatientRoundTrip(t *testing.T) {
	r, err := UnmarshalResource([]byte(patientExample))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p, ok := r.(Patient)
	if !ok {
		t.Fatalf("expected Patient, got %T", r)
	}
	if id, ok := p.ResourceId(); !ok || id != "example" {
		t.Errorf("ResourceId() = %q, %v", id, ok)
	}
	if _, ok := p.Deceased.(Boolean); !ok {
		t.Errorf("Deceased = %T, want Boolean", p.Deceased)
	}
	if p.BirthDate == nil || len(p.BirthDate.Extension) != 1 {
		t.Errorf("birthDate pair not merged: %+v", p.BirthDate)
	}
	if len(p.Name) != 1 || len(p.Name[0].Given) != 2 {
		t.Fatalf("name parse: %+v", p.Name)
	}
	if p.Name[0].Given[1].Id == nil || *p.Name[0].Given[1].Id != "middle" {
		t.Errorf("given[1] pair not merged: %+v", p.Name[0].Given[1])
	}

	out, err := MarshalResource(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, patientExample, string(out))
}

func TestObservationRoundTrip(t *testing.T) {
	r, err := UnmarshalResource([]byte(observationExample))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	o, ok := r.(Observation)
	if !ok {
		t.Fatalf("expected Observation, got %T", r)
	}
	q, ok := o.Value.(Quantity)
	if !ok {
		t.Fatalf("Value = %T, want Quantity", o.Value)
	}
	if q.Value.Value.Text('G') != "185.3" {
		t.Errorf("value = %s, want 185.3", q.Value.Value.Text('G'))
	}
	if _, ok := o.Effective.(DateTime); !ok {
		t.Errorf("Effective = %T, want DateTime", o.Effective)
	}
	if len(o.Component) != 1 {
		t.Fatalf("components: %+v", o.Component)
	}

	out, err := MarshalResource(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, observationExample, string(out))
}

func TestDecimalKeepsTrailingZeros(t *testing.T) {
	in := `{"resourceType":"Observation","status":"final","code":{"text":"glucose"},"valueQuantity":{"value":100.00}}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := MarshalResource(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"value":100.00`) {
		t.Errorf("trailing zeros lost: %s", out)
	}
}

func TestResourceTypeDispatch(t *testing.T) {
	tests := []struct {
		json string
		want string
	}{
		{`{"resourceType":"Patient"}`, "Patient"},
		{`{"resourceType":"Observation","status":"final","code":{}}`, "Observation"},
		{`{"resourceType":"Bundle","type":"searchset"}`, "Bundle"},
		{`{"resourceType":"Parameters"}`, "Parameters"},
		{`{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"not-found"}]}`, "OperationOutcome"},
	}
	for _, tt := range tests {
		r, err := UnmarshalResource([]byte(tt.json))
		if err != nil {
			t.Errorf("%s: %v", tt.want, err)
			continue
		}
		if r.ResourceType() != tt.want {
			t.Errorf("ResourceType() = %q, want %q", r.ResourceType(), tt.want)
		}
	}
}

func TestUnsupportedResourceType(t *testing.T) {
	_, err := UnmarshalResource([]byte(`{"resourceType":"Medication"}`))
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Kind != model.UnsupportedResourceType {
		t.Fatalf("err = %v, want UnsupportedResourceType", err)
	}
}

func TestLenientSkipsUnknownFields(t *testing.T) {
	in := `{"resourceType":"Patient","id":"p1","favoriteColor":"blue","nested":{"deep":[1,2,3]}}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("lenient decode failed: %v", err)
	}
	if id, _ := r.ResourceId(); id != "p1" {
		t.Errorf("ResourceId() = %q", id)
	}
}

func TestStrictRejectsUnknownFields(t *testing.T) {
	in := `{"resourceType":"Patient","id":"p1","favoriteColor":"blue"}`
	_, err := UnmarshalResourceStrict([]byte(in))
	var de *model.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
	if de.Kind != model.UnknownField {
		t.Errorf("Kind = %v, want UnknownField", de.Kind)
	}
	if de.Path != "favoriteColor" {
		t.Errorf("Path = %q, want favoriteColor", de.Path)
	}
}

func TestDualChoiceVariantRejected(t *testing.T) {
	in := `{"resourceType":"Patient","deceasedBoolean":true,"deceasedDateTime":"2024-01-01"}`
	_, err := UnmarshalResource([]byte(in))
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Kind != model.InvalidChoiceVariant {
		t.Fatalf("err = %v, want InvalidChoiceVariant", err)
	}
}

func TestChoicePairMergesWithValue(t *testing.T) {
	in := `{"resourceType":"Patient","deceasedDateTime":"2024-01-01","_deceasedDateTime":{"id":"dt"}}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	dt, ok := r.(Patient).Deceased.(DateTime)
	if !ok {
		t.Fatalf("Deceased = %T", r.(Patient).Deceased)
	}
	if dt.Value == nil || *dt.Value != "2024-01-01" {
		t.Errorf("value not kept: %+v", dt)
	}
	if dt.Id == nil || *dt.Id != "dt" {
		t.Errorf("pair not merged: %+v", dt)
	}
}

func TestMissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		json string
		path string
	}{
		{"observation status", `{"resourceType":"Observation","code":{}}`, "status"},
		{"bundle type", `{"resourceType":"Bundle"}`, "type"},
		{"link url", `{"resourceType":"Bundle","type":"searchset","link":[{"relation":"next"}]}`, "link[0].url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalResource([]byte(tt.json))
			var de *model.DecodeError
			if !errors.As(err, &de) || de.Kind != model.MissingRequiredField {
				t.Fatalf("err = %v, want MissingRequiredField", err)
			}
			if de.Path != tt.path {
				t.Errorf("Path = %q, want %q", de.Path, tt.path)
			}
		})
	}
}

func TestInvalidPrimitiveFormat(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"bad date", `{"resourceType":"Patient","birthDate":"12/25/1974"}`},
		{"bad dateTime", `{"resourceType":"Patient","deceasedDateTime":"2024-01-01T10:00:00"}`},
		{"zero positiveInt", `{"resourceType":"Patient","telecom":[{"rank":0}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalResource([]byte(tt.json))
			var de *model.DecodeError
			if !errors.As(err, &de) || de.Kind != model.InvalidPrimitiveFormat {
				t.Fatalf("err = %v, want InvalidPrimitiveFormat", err)
			}
		})
	}
}

func TestTypeMismatchPath(t *testing.T) {
	in := `{"resourceType":"Patient","name":[{"family":true}]}`
	_, err := UnmarshalResource([]byte(in))
	var de *model.DecodeError
	if !errors.As(err, &de) || de.Kind != model.TypeMismatch {
		t.Fatalf("err = %v, want TypeMismatch", err)
	}
	if de.Path != "name[0].family" {
		t.Errorf("Path = %q, want name[0].family", de.Path)
	}
}

func TestContainedResources(t *testing.T) {
	in := `{
	  "resourceType": "Observation",
	  "status": "final",
	  "code": {"text": "note"},
	  "contained": [
	    {"resourceType": "Patient", "id": "p1"}
	  ],
	  "subject": {"reference": "#p1"}
	}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	o := r.(Observation)
	if len(o.Contained) != 1 {
		t.Fatalf("contained: %+v", o.Contained)
	}
	if _, ok := o.Contained[0].(Patient); !ok {
		t.Errorf("contained[0] = %T, want Patient", o.Contained[0])
	}

	out, err := MarshalResource(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, in, string(out))
}

func TestBundleRoundTrip(t *testing.T) {
	in := `{
	  "resourceType": "Bundle",
	  "type": "searchset",
	  "total": 1,
	  "link": [
	    {"relation": "self", "url": "http://example.org/fhir/Patient?active=true"},
	    {"relation": "next", "url": "http://example.org/fhir/Patient?active=true&page=2"}
	  ],
	  "entry": [
	    {
	      "fullUrl": "http://example.org/fhir/Patient/example",
	      "resource": {"resourceType": "Patient", "id": "example"},
	      "search": {"mode": "match"}
	    }
	  ]
	}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b := r.(Bundle)
	if len(b.Link) != 2 || len(b.Entry) != 1 {
		t.Fatalf("bundle shape: %+v", b)
	}
	if _, ok := b.Entry[0].Resource.(Patient); !ok {
		t.Errorf("entry resource = %T", b.Entry[0].Resource)
	}

	out, err := MarshalResource(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, in, string(out))
}

func TestParametersRoundTrip(t *testing.T) {
	in := `{
	  "resourceType": "Parameters",
	  "parameter": [
	    {"name": "mode", "valueCode": "create"},
	    {"name": "profile", "valueUri": "http://example.org/StructureDefinition/patient"},
	    {
	      "name": "resource",
	      "resource": {"resourceType": "Patient", "id": "p1"}
	    },
	    {
	      "name": "coded",
	      "part": [
	        {"name": "system", "valueUri": "http://loinc.org"},
	        {"name": "code", "valueCode": "8302-2"}
	      ]
	    }
	  ]
	}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := MarshalResource(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	assert.JSONEqual(t, in, string(out))
}

func TestXhtmlNotEscaped(t *testing.T) {
	in := `{"resourceType":"Patient","text":{"status":"generated","div":"<div xmlns=\"http://www.w3.org/1999/xhtml\">ok</div>"}}`
	r, err := UnmarshalResource([]byte(in))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := MarshalResource(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(out), "\\u003c") {
		t.Errorf("narrative was HTML-escaped: %s", out)
	}
}
