package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// OperationOutcome is a collection of error, warning or information
// messages resulting from a system action.
type OperationOutcome struct {
	Id                *Id
	Meta              *Meta
	ImplicitRules     *Uri
	Language          *Code
	Text              *Narrative
	Contained         []model.Resource
	Extension         []Extension
	ModifierExtension []Extension
	Issue             []OperationOutcomeIssue
}

// OperationOutcomeIssue is a single issue associated with the action.
type OperationOutcomeIssue struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Severity          Code
	Code              Code
	Details           *CodeableConcept
	Diagnostics       *String
	Location          []String
	Expression        []String
}

func (r OperationOutcome) ResourceType() string {
	return "OperationOutcome"
}

func (r OperationOutcome) ResourceId() (string, bool) {
	if r.Id == nil || r.Id.Value == nil {
		return "", false
	}
	return *r.Id.Value, true
}

func (r OperationOutcome) marshalJSON(w *jsonWriter) {
	w.begin("{")
	w.field("resourceType")
	w.value("OperationOutcome")
	writePrimitivePtr(w, "id", r.Id)
	writeElementPtr(w, "meta", r.Meta)
	writePrimitivePtr(w, "implicitRules", r.ImplicitRules)
	writePrimitivePtr(w, "language", r.Language)
	writeElementPtr(w, "text", r.Text)
	writeContained(w, r.Contained)
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElementSlice(w, "issue", r.Issue)
	w.end("}")
}

func (r *OperationOutcome) unmarshalJSON(d *jsonReader) error {
	err := d.object("OperationOutcome", func(f string) error {
		switch f {
		case "resourceType":
			return d.expectResourceType("OperationOutcome")
		case "id":
			return decodePrimitivePtr(d, &r.Id)
		case "_id":
			return decodePairPtr(d, &r.Id)
		case "meta":
			return decodeElementPtr(d, &r.Meta)
		case "implicitRules":
			return decodePrimitivePtr(d, &r.ImplicitRules)
		case "_implicitRules":
			return decodePairPtr(d, &r.ImplicitRules)
		case "language":
			return decodePrimitivePtr(d, &r.Language)
		case "_language":
			return decodePairPtr(d, &r.Language)
		case "text":
			return decodeElementPtr(d, &r.Text)
		case "contained":
			return decodeContained(d, &r.Contained)
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "issue":
			return decodeElementSlice(d, "OperationOutcomeIssue", &r.Issue)
		default:
			return d.unknown("OperationOutcome", f)
		}
	})
	if err != nil {
		return err
	}
	if len(r.Issue) == 0 {
		return d.missing("OperationOutcome", "issue")
	}
	return nil
}

func (r OperationOutcomeIssue) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writePrimitive(w, "severity", r.Severity)
	writePrimitive(w, "code", r.Code)
	writeElementPtr(w, "details", r.Details)
	writePrimitivePtr(w, "diagnostics", r.Diagnostics)
	writePrimitiveSlice(w, "location", r.Location)
	writePrimitiveSlice(w, "expression", r.Expression)
	w.end("}")
}

func (r *OperationOutcomeIssue) unmarshalJSON(d *jsonReader) error {
	seenSeverity, seenCode := false, false
	err := d.object("OperationOutcomeIssue", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "severity":
			seenSeverity = true
			return decodePrimitive(d, &r.Severity)
		case "_severity":
			return decodePair(d, &r.Severity)
		case "code":
			seenCode = true
			return decodePrimitive(d, &r.Code)
		case "_code":
			return decodePair(d, &r.Code)
		case "details":
			return decodeElementPtr(d, &r.Details)
		case "diagnostics":
			return decodePrimitivePtr(d, &r.Diagnostics)
		case "_diagnostics":
			return decodePairPtr(d, &r.Diagnostics)
		case "location":
			return decodePrimitiveSlice(d, "OperationOutcomeIssue", &r.Location)
		case "_location":
			return decodePairSlice(d, "OperationOutcomeIssue", &r.Location)
		case "expression":
			return decodePrimitiveSlice(d, "OperationOutcomeIssue", &r.Expression)
		case "_expression":
			return decodePairSlice(d, "OperationOutcomeIssue", &r.Expression)
		default:
			return d.unknown("OperationOutcomeIssue", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenSeverity {
		return d.missing("OperationOutcomeIssue", "severity")
	}
	if !seenCode {
		return d.missing("OperationOutcomeIssue", "code")
	}
	return nil
}
