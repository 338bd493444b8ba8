package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// isParametersParameterValue is the choice type for Parameters.parameter.value[x].
type isParametersParameterValue interface {
	model.Element
	isParametersParameterValue()
}

func (r Boolean) isParametersParameterValue()         {}
func (r Integer) isParametersParameterValue()         {}
func (r Decimal) isParametersParameterValue()         {}
func (r String) isParametersParameterValue()          {}
func (r Uri) isParametersParameterValue()             {}
func (r Code) isParametersParameterValue()            {}
func (r Date) isParametersParameterValue()            {}
func (r DateTime) isParametersParameterValue()        {}
func (r Instant) isParametersParameterValue()         {}
func (r Time) isParametersParameterValue()            {}
func (r Quantity) isParametersParameterValue()        {}
func (r Coding) isParametersParameterValue()          {}
func (r CodeableConcept) isParametersParameterValue() {}
func (r Identifier) isParametersParameterValue()      {}
func (r Reference) isParametersParameterValue()       {}
func (r Period) isParametersParameterValue()          {}

// Parameters carries named inputs and outputs of an operation invocation.
type Parameters struct {
	Id            *Id
	Meta          *Meta
	ImplicitRules *Uri
	Language      *Code
	Parameter     []ParametersParameter
}

// ParametersParameter is one named parameter: a typed value, a whole
// resource, or a list of nested parts.
type ParametersParameter struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Name              String
	Value             isParametersParameterValue
	Resource          model.Resource
	Part              []ParametersParameter
}

func (r Parameters) ResourceType() string {
	return "Parameters"
}

func (r Parameters) ResourceId() (string, bool) {
	if r.Id == nil || r.Id.Value == nil {
		return "", false
	}
	return *r.Id.Value, true
}

func (r Parameters) marshalJSON(w *jsonWriter) {
	w.begin("{")
	w.field("resourceType")
	w.value("Parameters")
	writePrimitivePtr(w, "id", r.Id)
	writeElementPtr(w, "meta", r.Meta)
	writePrimitivePtr(w, "implicitRules", r.ImplicitRules)
	writePrimitivePtr(w, "language", r.Language)
	writeElementSlice(w, "parameter", r.Parameter)
	w.end("}")
}

func (r *Parameters) unmarshalJSON(d *jsonReader) error {
	return d.object("Parameters", func(f string) error {
		switch f {
		case "resourceType":
			return d.expectResourceType("Parameters")
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
		case "parameter":
			return decodeElementSlice(d, "ParametersParameter", &r.Parameter)
		default:
			return d.unknown("Parameters", f)
		}
	})
}

func (r ParametersParameter) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writePrimitive(w, "name", r.Name)
	switch v := r.Value.(type) {
	case Boolean:
		writePrimitive(w, "valueBoolean", v)
	case Integer:
		writePrimitive(w, "valueInteger", v)
	case Decimal:
		writePrimitive(w, "valueDecimal", v)
	case String:
		writePrimitive(w, "valueString", v)
	case Uri:
		writePrimitive(w, "valueUri", v)
	case Code:
		writePrimitive(w, "valueCode", v)
	case Date:
		writePrimitive(w, "valueDate", v)
	case DateTime:
		writePrimitive(w, "valueDateTime", v)
	case Instant:
		writePrimitive(w, "valueInstant", v)
	case Time:
		writePrimitive(w, "valueTime", v)
	case Quantity:
		writeElement(w, "valueQuantity", v)
	case Coding:
		writeElement(w, "valueCoding", v)
	case CodeableConcept:
		writeElement(w, "valueCodeableConcept", v)
	case Identifier:
		writeElement(w, "valueIdentifier", v)
	case Reference:
		writeElement(w, "valueReference", v)
	case Period:
		writeElement(w, "valuePeriod", v)
	}
	if r.Resource != nil {
		w.field("resource")
		marshalResource(r.Resource, w)
	}
	writeElementSlice(w, "part", r.Part)
	w.end("}")
}

func (r *ParametersParameter) unmarshalJSON(d *jsonReader) error {
	seenName := false
	err := d.object("ParametersParameter", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "name":
			seenName = true
			return decodePrimitive(d, &r.Name)
		case "_name":
			return decodePair(d, &r.Name)
		case "valueBoolean":
			return decodeChoicePrimitive[Boolean](d, &r.Value)
		case "_valueBoolean":
			return decodeChoicePair[Boolean](d, &r.Value)
		case "valueInteger":
			return decodeChoicePrimitive[Integer](d, &r.Value)
		case "_valueInteger":
			return decodeChoicePair[Integer](d, &r.Value)
		case "valueDecimal":
			return decodeChoicePrimitive[Decimal](d, &r.Value)
		case "_valueDecimal":
			return decodeChoicePair[Decimal](d, &r.Value)
		case "valueString":
			return decodeChoicePrimitive[String](d, &r.Value)
		case "_valueString":
			return decodeChoicePair[String](d, &r.Value)
		case "valueUri":
			return decodeChoicePrimitive[Uri](d, &r.Value)
		case "_valueUri":
			return decodeChoicePair[Uri](d, &r.Value)
		case "valueCode":
			return decodeChoicePrimitive[Code](d, &r.Value)
		case "_valueCode":
			return decodeChoicePair[Code](d, &r.Value)
		case "valueDate":
			return decodeChoicePrimitive[Date](d, &r.Value)
		case "_valueDate":
			return decodeChoicePair[Date](d, &r.Value)
		case "valueDateTime":
			return decodeChoicePrimitive[DateTime](d, &r.Value)
		case "_valueDateTime":
			return decodeChoicePair[DateTime](d, &r.Value)
		case "valueInstant":
			return decodeChoicePrimitive[Instant](d, &r.Value)
		case "_valueInstant":
			return decodeChoicePair[Instant](d, &r.Value)
		case "valueTime":
			return decodeChoicePrimitive[Time](d, &r.Value)
		case "_valueTime":
			return decodeChoicePair[Time](d, &r.Value)
		case "valueQuantity":
			return decodeChoiceElement[Quantity](d, &r.Value)
		case "valueCoding":
			return decodeChoiceElement[Coding](d, &r.Value)
		case "valueCodeableConcept":
			return decodeChoiceElement[CodeableConcept](d, &r.Value)
		case "valueIdentifier":
			return decodeChoiceElement[Identifier](d, &r.Value)
		case "valueReference":
			return decodeChoiceElement[Reference](d, &r.Value)
		case "valuePeriod":
			return decodeChoiceElement[Period](d, &r.Value)
		case "resource":
			return decodeResource(d, &r.Resource)
		case "part":
			return decodeElementSlice(d, "ParametersParameter", &r.Part)
		default:
			return d.unknown("ParametersParameter", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenName {
		return d.missing("ParametersParameter", "name")
	}
	return nil
}
