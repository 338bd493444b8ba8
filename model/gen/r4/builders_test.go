package r4

import (
	"errors"
	"strings"
	"testing"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/utils/ptr"
)

func TestObservationBuilder(t *testing.T) {
	o, err := NewObservationBuilder().
		Id("bp").
		Status("final").
		Code(CodeableConcept{Text: &String{Value: ptr.To("Blood pressure")}}).
		Subject(Reference{Reference: &String{Value: ptr.To("Patient/example")}}).
		EffectiveDateTime("2024-03-02T09:30:00Z").
		ValueString("elevated").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if id, _ := o.ResourceId(); id != "bp" {
		t.Errorf("id = %q", id)
	}
	if _, ok := o.Value.(String); !ok {
		t.Errorf("Value = %T, want String", o.Value)
	}
}

func TestObservationBuilderMissingRequired(t *testing.T) {
	_, err := NewObservationBuilder().
		Code(CodeableConcept{Text: &String{Value: ptr.To("x")}}).
		Build()
	var be *model.BuildError
	if !errors.As(err, &be) {
		t.Fatalf("err = %v, want BuildError", err)
	}
	if be.Type != "Observation" || be.Field != "status" {
		t.Errorf("BuildError = %+v", be)
	}

	_, err = NewObservationBuilder().Status("final").Build()
	if !errors.As(err, &be) || be.Field != "code" {
		t.Errorf("err = %v, want BuildError on code", err)
	}
}

func TestChoiceSetterLastWriteWins(t *testing.T) {
	p, err := NewPatientBuilder().
		DeceasedBoolean(true).
		DeceasedDateTime("2024-01-01").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	dt, ok := p.Deceased.(DateTime)
	if !ok {
		t.Fatalf("Deceased = %T, want DateTime", p.Deceased)
	}
	if *dt.Value != "2024-01-01" {
		t.Errorf("value = %q", *dt.Value)
	}
}

func TestBundleBuilder(t *testing.T) {
	patient, err := NewPatientBuilder().Id("p1").Build()
	if err != nil {
		t.Fatalf("patient: %v", err)
	}
	b, err := NewBundleBuilder().
		Type("transaction").
		RequestEntry("urn:uuid:4f7a422c-6f7c-4a1b-9e6e-0d2f0ad0f6a1", "POST", "Patient", patient).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(b.Entry) != 1 || b.Entry[0].Request == nil {
		t.Fatalf("entry: %+v", b.Entry)
	}
	if *b.Entry[0].Request.Method.Value != "POST" {
		t.Errorf("method: %+v", b.Entry[0].Request)
	}

	_, err = NewBundleBuilder().Entry(BundleEntry{}).Build()
	var be *model.BuildError
	if !errors.As(err, &be) || be.Field != "type" {
		t.Errorf("err = %v, want BuildError on type", err)
	}
}

func TestOperationOutcomeBuilder(t *testing.T) {
	oo, err := NewOperationOutcomeBuilder().
		Issue("error", "not-found", "Patient/nope does not exist").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(oo.Issue) != 1 || *oo.Issue[0].Severity.Value != "error" {
		t.Errorf("issue: %+v", oo.Issue)
	}

	_, err = NewOperationOutcomeBuilder().Build()
	var be *model.BuildError
	if !errors.As(err, &be) || be.Field != "issue" {
		t.Errorf("err = %v, want BuildError on issue", err)
	}
}

func TestParametersBuilder(t *testing.T) {
	p, err := NewParametersBuilder().
		String("name", "value").
		Boolean("flag", true).
		Part("coded",
			ParametersParameter{Name: String{Value: ptr.To("system")}, Value: Uri{Value: ptr.To("http://loinc.org")}},
		).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(p.Parameter) != 3 {
		t.Fatalf("parameters: %+v", p.Parameter)
	}
	if len(p.Parameter[2].Part) != 1 {
		t.Errorf("part: %+v", p.Parameter[2])
	}
}

func TestBundleBuilderCreateEntry(t *testing.T) {
	b, err := NewBundleBuilder().
		Type("transaction").
		CreateEntry(Patient{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(b.Entry) != 1 {
		t.Fatalf("entries = %d, want 1", len(b.Entry))
	}
	entry := b.Entry[0]
	if entry.FullUrl == nil || !strings.HasPrefix(*entry.FullUrl.Value, "urn:uuid:") {
		t.Errorf("fullUrl = %v, want urn:uuid: prefix", entry.FullUrl)
	}
	if *entry.Request.Method.Value != "POST" || *entry.Request.Url.Value != "Patient" {
		t.Errorf("request = %+v", entry.Request)
	}
}
