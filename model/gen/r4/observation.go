package r4

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// isObservationEffective is the choice type for Observation.effective[x].
type isObservationEffective interface {
	model.Element
	isObservationEffective()
}

func (r DateTime) isObservationEffective() {}
func (r Period) isObservationEffective()   {}
func (r Instant) isObservationEffective()  {}

// isObservationValue is the choice type for Observation.value[x] and
// Observation.component.value[x].
type isObservationValue interface {
	model.Element
	isObservationValue()
}

func (r Quantity) isObservationValue()        {}
func (r CodeableConcept) isObservationValue() {}
func (r String) isObservationValue()          {}
func (r Boolean) isObservationValue()         {}
func (r Integer) isObservationValue()         {}
func (r Range) isObservationValue()           {}
func (r Time) isObservationValue()            {}
func (r DateTime) isObservationValue()        {}
func (r Period) isObservationValue()          {}

// Observation is a measurement or simple assertion made about a patient.
type Observation struct {
	Id                *Id
	Meta              *Meta
	ImplicitRules     *Uri
	Language          *Code
	Text              *Narrative
	Contained         []model.Resource
	Extension         []Extension
	ModifierExtension []Extension
	Identifier        []Identifier
	BasedOn           []Reference
	PartOf            []Reference
	Status            Code
	Category          []CodeableConcept
	Code              CodeableConcept
	Subject           *Reference
	Focus             []Reference
	Encounter         *Reference
	Effective         isObservationEffective
	Issued            *Instant
	Performer         []Reference
	Value             isObservationValue
	DataAbsentReason  *CodeableConcept
	Interpretation    []CodeableConcept
	Note              []Annotation
	BodySite          *CodeableConcept
	Method            *CodeableConcept
	Specimen          *Reference
	Device            *Reference
	ReferenceRange    []ObservationReferenceRange
	HasMember         []Reference
	DerivedFrom       []Reference
	Component         []ObservationComponent
}

// ObservationReferenceRange gives guidance on how to interpret the value by
// comparison to a normal or recommended range.
type ObservationReferenceRange struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Low               *Quantity
	High              *Quantity
	Type              *CodeableConcept
	AppliesTo         []CodeableConcept
	Age               *Range
	Text              *String
}

// ObservationComponent holds one component result for multi-component
// observations such as blood pressure.
type ObservationComponent struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Code              CodeableConcept
	Value             isObservationValue
	DataAbsentReason  *CodeableConcept
	Interpretation    []CodeableConcept
	ReferenceRange    []ObservationReferenceRange
}

func (r Observation) ResourceType() string {
	return "Observation"
}

func (r Observation) ResourceId() (string, bool) {
	if r.Id == nil || r.Id.Value == nil {
		return "", false
	}
	return *r.Id.Value, true
}

func writeObservationValue(w *jsonWriter, value isObservationValue) {
	switch v := value.(type) {
	case Quantity:
		writeElement(w, "valueQuantity", v)
	case CodeableConcept:
		writeElement(w, "valueCodeableConcept", v)
	case String:
		writePrimitive(w, "valueString", v)
	case Boolean:
		writePrimitive(w, "valueBoolean", v)
	case Integer:
		writePrimitive(w, "valueInteger", v)
	case Range:
		writeElement(w, "valueRange", v)
	case Time:
		writePrimitive(w, "valueTime", v)
	case DateTime:
		writePrimitive(w, "valueDateTime", v)
	case Period:
		writeElement(w, "valuePeriod", v)
	}
}

func decodeObservationValue(d *jsonReader, f string, slot *isObservationValue) (bool, error) {
	switch f {
	case "valueQuantity":
		return true, decodeChoiceElement[Quantity](d, slot)
	case "valueCodeableConcept":
		return true, decodeChoiceElement[CodeableConcept](d, slot)
	case "valueString":
		return true, decodeChoicePrimitive[String](d, slot)
	case "_valueString":
		return true, decodeChoicePair[String](d, slot)
	case "valueBoolean":
		return true, decodeChoicePrimitive[Boolean](d, slot)
	case "_valueBoolean":
		return true, decodeChoicePair[Boolean](d, slot)
	case "valueInteger":
		return true, decodeChoicePrimitive[Integer](d, slot)
	case "_valueInteger":
		return true, decodeChoicePair[Integer](d, slot)
	case "valueRange":
		return true, decodeChoiceElement[Range](d, slot)
	case "valueTime":
		return true, decodeChoicePrimitive[Time](d, slot)
	case "_valueTime":
		return true, decodeChoicePair[Time](d, slot)
	case "valueDateTime":
		return true, decodeChoicePrimitive[DateTime](d, slot)
	case "_valueDateTime":
		return true, decodeChoicePair[DateTime](d, slot)
	case "valuePeriod":
		return true, decodeChoiceElement[Period](d, slot)
	}
	return false, nil
}

func (r Observation) marshalJSON(w *jsonWriter) {
	w.begin("{")
	w.field("resourceType")
	w.value("Observation")
	writePrimitivePtr(w, "id", r.Id)
	writeElementPtr(w, "meta", r.Meta)
	writePrimitivePtr(w, "implicitRules", r.ImplicitRules)
	writePrimitivePtr(w, "language", r.Language)
	writeElementPtr(w, "text", r.Text)
	writeContained(w, r.Contained)
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElementSlice(w, "identifier", r.Identifier)
	writeElementSlice(w, "basedOn", r.BasedOn)
	writeElementSlice(w, "partOf", r.PartOf)
	writePrimitive(w, "status", r.Status)
	writeElementSlice(w, "category", r.Category)
	writeElement(w, "code", r.Code)
	writeElementPtr(w, "subject", r.Subject)
	writeElementSlice(w, "focus", r.Focus)
	writeElementPtr(w, "encounter", r.Encounter)
	switch v := r.Effective.(type) {
	case DateTime:
		writePrimitive(w, "effectiveDateTime", v)
	case Period:
		writeElement(w, "effectivePeriod", v)
	case Instant:
		writePrimitive(w, "effectiveInstant", v)
	}
	writePrimitivePtr(w, "issued", r.Issued)
	writeElementSlice(w, "performer", r.Performer)
	writeObservationValue(w, r.Value)
	writeElementPtr(w, "dataAbsentReason", r.DataAbsentReason)
	writeElementSlice(w, "interpretation", r.Interpretation)
	writeElementSlice(w, "note", r.Note)
	writeElementPtr(w, "bodySite", r.BodySite)
	writeElementPtr(w, "method", r.Method)
	writeElementPtr(w, "specimen", r.Specimen)
	writeElementPtr(w, "device", r.Device)
	writeElementSlice(w, "referenceRange", r.ReferenceRange)
	writeElementSlice(w, "hasMember", r.HasMember)
	writeElementSlice(w, "derivedFrom", r.DerivedFrom)
	writeElementSlice(w, "component", r.Component)
	w.end("}")
}

func (r *Observation) unmarshalJSON(d *jsonReader) error {
	seenStatus, seenCode := false, false
	err := d.object("Observation", func(f string) error {
		if ok, err := decodeObservationValue(d, f, &r.Value); ok {
			return err
		}
		switch f {
		case "resourceType":
			return d.expectResourceType("Observation")
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
		case "identifier":
			return decodeElementSlice(d, "Identifier", &r.Identifier)
		case "basedOn":
			return decodeElementSlice(d, "Reference", &r.BasedOn)
		case "partOf":
			return decodeElementSlice(d, "Reference", &r.PartOf)
		case "status":
			seenStatus = true
			return decodePrimitive(d, &r.Status)
		case "_status":
			return decodePair(d, &r.Status)
		case "category":
			return decodeElementSlice(d, "CodeableConcept", &r.Category)
		case "code":
			seenCode = true
			return decodeElement(d, &r.Code)
		case "subject":
			return decodeElementPtr(d, &r.Subject)
		case "focus":
			return decodeElementSlice(d, "Reference", &r.Focus)
		case "encounter":
			return decodeElementPtr(d, &r.Encounter)
		case "effectiveDateTime":
			return decodeChoicePrimitive[DateTime](d, &r.Effective)
		case "_effectiveDateTime":
			return decodeChoicePair[DateTime](d, &r.Effective)
		case "effectivePeriod":
			return decodeChoiceElement[Period](d, &r.Effective)
		case "effectiveInstant":
			return decodeChoicePrimitive[Instant](d, &r.Effective)
		case "_effectiveInstant":
			return decodeChoicePair[Instant](d, &r.Effective)
		case "issued":
			return decodePrimitivePtr(d, &r.Issued)
		case "_issued":
			return decodePairPtr(d, &r.Issued)
		case "performer":
			return decodeElementSlice(d, "Reference", &r.Performer)
		case "dataAbsentReason":
			return decodeElementPtr(d, &r.DataAbsentReason)
		case "interpretation":
			return decodeElementSlice(d, "CodeableConcept", &r.Interpretation)
		case "note":
			return decodeElementSlice(d, "Annotation", &r.Note)
		case "bodySite":
			return decodeElementPtr(d, &r.BodySite)
		case "method":
			return decodeElementPtr(d, &r.Method)
		case "specimen":
			return decodeElementPtr(d, &r.Specimen)
		case "device":
			return decodeElementPtr(d, &r.Device)
		case "referenceRange":
			return decodeElementSlice(d, "ObservationReferenceRange", &r.ReferenceRange)
		case "hasMember":
			return decodeElementSlice(d, "Reference", &r.HasMember)
		case "derivedFrom":
			return decodeElementSlice(d, "Reference", &r.DerivedFrom)
		case "component":
			return decodeElementSlice(d, "ObservationComponent", &r.Component)
		default:
			return d.unknown("Observation", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenStatus {
		return d.missing("Observation", "status")
	}
	if !seenCode {
		return d.missing("Observation", "code")
	}
	return nil
}

func (r ObservationReferenceRange) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElementPtr(w, "low", r.Low)
	writeElementPtr(w, "high", r.High)
	writeElementPtr(w, "type", r.Type)
	writeElementSlice(w, "appliesTo", r.AppliesTo)
	writeElementPtr(w, "age", r.Age)
	writePrimitivePtr(w, "text", r.Text)
	w.end("}")
}

func (r *ObservationReferenceRange) unmarshalJSON(d *jsonReader) error {
	return d.object("ObservationReferenceRange", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "low":
			return decodeElementPtr(d, &r.Low)
		case "high":
			return decodeElementPtr(d, &r.High)
		case "type":
			return decodeElementPtr(d, &r.Type)
		case "appliesTo":
			return decodeElementSlice(d, "CodeableConcept", &r.AppliesTo)
		case "age":
			return decodeElementPtr(d, &r.Age)
		case "text":
			return decodePrimitivePtr(d, &r.Text)
		case "_text":
			return decodePairPtr(d, &r.Text)
		default:
			return d.unknown("ObservationReferenceRange", f)
		}
	})
}

func (r ObservationComponent) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElement(w, "code", r.Code)
	writeObservationValue(w, r.Value)
	writeElementPtr(w, "dataAbsentReason", r.DataAbsentReason)
	writeElementSlice(w, "interpretation", r.Interpretation)
	writeElementSlice(w, "referenceRange", r.ReferenceRange)
	w.end("}")
}

func (r *ObservationComponent) unmarshalJSON(d *jsonReader) error {
	seenCode := false
	err := d.object("ObservationComponent", func(f string) error {
		if ok, err := decodeObservationValue(d, f, &r.Value); ok {
			return err
		}
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "code":
			seenCode = true
			return decodeElement(d, &r.Code)
		case "dataAbsentReason":
			return decodeElementPtr(d, &r.DataAbsentReason)
		case "interpretation":
			return decodeElementSlice(d, "CodeableConcept", &r.Interpretation)
		case "referenceRange":
			return decodeElementSlice(d, "ObservationReferenceRange", &r.ReferenceRange)
		default:
			return d.unknown("ObservationComponent", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenCode {
		return d.missing("ObservationComponent", "code")
	}
	return nil
}
