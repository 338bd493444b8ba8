package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// isPatientDeceased is the choice type for Patient.deceased[x].
type isPatientDeceased interface {
	model.Element
	isPatientDeceased()
}

func (r Boolean) isPatientDeceased()  {}
func (r DateTime) isPatientDeceased() {}

// isPatientMultipleBirth is the choice type for Patient.multipleBirth[x].
type isPatientMultipleBirth interface {
	model.Element
	isPatientMultipleBirth()
}

func (r Boolean) isPatientMultipleBirth() {}
func (r Integer) isPatientMultipleBirth() {}

// Patient is demographic and administrative information about a person
// receiving care.
type Patient struct {
	Id                   *Id
	Meta                 *Meta
	ImplicitRules        *Uri
	Language             *Code
	Text                 *Narrative
	Contained            []model.Resource
	Extension            []Extension
	ModifierExtension    []Extension
	Identifier           []Identifier
	Active               *Boolean
	Name                 []HumanName
	Telecom              []ContactPoint
	Gender               *Code
	BirthDate            *Date
	Deceased             isPatientDeceased
	Address              []Address
	MaritalStatus        *CodeableConcept
	MultipleBirth        isPatientMultipleBirth
	Contact              []PatientContact
	Communication        []PatientCommunication
	GeneralPractitioner  []Reference
	ManagingOrganization *Reference
	Link                 []PatientLink
}

// PatientContact is a contact party (guardian, partner, friend) for the
// patient.
type PatientContact struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Relationship      []CodeableConcept
	Name              *HumanName
	Telecom           []ContactPoint
	Address           *Address
	Gender            *Code
	Organization      *Reference
	Period            *Period
}

// PatientCommunication is a language the patient can use to communicate
// about their health.
type PatientCommunication struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Language          CodeableConcept
	Preferred         *Boolean
}

// PatientLink links this patient record to another patient or related
// person record.
type PatientLink struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Other             Reference
	Type              Code
}

func (r Patient) ResourceType() string {
	return "Patient"
}

func (r Patient) ResourceId() (string, bool) {
	if r.Id == nil || r.Id.Value == nil {
		return "", false
	}
	return *r.Id.Value, true
}

func (r Patient) marshalJSON(w *jsonWriter) {
	w.begin("{")
	w.field("resourceType")
	w.value("Patient")
	writePrimitivePtr(w, "id", r.Id)
	writeElementPtr(w, "meta", r.Meta)
	writePrimitivePtr(w, "implicitRules", r.ImplicitRules)
	writePrimitivePtr(w, "language", r.Language)
	writeElementPtr(w, "text", r.Text)
	writeContained(w, r.Contained)
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElementSlice(w, "identifier", r.Identifier)
	writePrimitivePtr(w, "active", r.Active)
	writeElementSlice(w, "name", r.Name)
	writeElementSlice(w, "telecom", r.Telecom)
	writePrimitivePtr(w, "gender", r.Gender)
	writePrimitivePtr(w, "birthDate", r.BirthDate)
	switch v := r.Deceased.(type) {
	case Boolean:
		writePrimitive(w, "deceasedBoolean", v)
	case DateTime:
		writePrimitive(w, "deceasedDateTime", v)
	}
	writeElementSlice(w, "address", r.Address)
	writeElementPtr(w, "maritalStatus", r.MaritalStatus)
	switch v := r.MultipleBirth.(type) {
	case Boolean:
		writePrimitive(w, "multipleBirthBoolean", v)
	case Integer:
		writePrimitive(w, "multipleBirthInteger", v)
	}
	writeElementSlice(w, "contact", r.Contact)
	writeElementSlice(w, "communication", r.Communication)
	writeElementSlice(w, "generalPractitioner", r.GeneralPractitioner)
	writeElementPtr(w, "managingOrganization", r.ManagingOrganization)
	writeElementSlice(w, "link", r.Link)
	w.end("}")
}

func (r *Patient) unmarshalJSON(d *jsonReader) error {
	return d.object("Patient", func(f string) error {
		switch f {
		case "resourceType":
			return d.expectResourceType("Patient")
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
		case "active":
			return decodePrimitivePtr(d, &r.Active)
		case "_active":
			return decodePairPtr(d, &r.Active)
		case "name":
			return decodeElementSlice(d, "HumanName", &r.Name)
		case "telecom":
			return decodeElementSlice(d, "ContactPoint", &r.Telecom)
		case "gender":
			return decodePrimitivePtr(d, &r.Gender)
		case "_gender":
			return decodePairPtr(d, &r.Gender)
		case "birthDate":
			return decodePrimitivePtr(d, &r.BirthDate)
		case "_birthDate":
			return decodePairPtr(d, &r.BirthDate)
		case "deceasedBoolean":
			return decodeChoicePrimitive[Boolean](d, &r.Deceased)
		case "_deceasedBoolean":
			return decodeChoicePair[Boolean](d, &r.Deceased)
		case "deceasedDateTime":
			return decodeChoicePrimitive[DateTime](d, &r.Deceased)
		case "_deceasedDateTime":
			return decodeChoicePair[DateTime](d, &r.Deceased)
		case "address":
			return decodeElementSlice(d, "Address", &r.Address)
		case "maritalStatus":
			return decodeElementPtr(d, &r.MaritalStatus)
		case "multipleBirthBoolean":
			return decodeChoicePrimitive[Boolean](d, &r.MultipleBirth)
		case "_multipleBirthBoolean":
			return decodeChoicePair[Boolean](d, &r.MultipleBirth)
		case "multipleBirthInteger":
			return decodeChoicePrimitive[Integer](d, &r.MultipleBirth)
		case "_multipleBirthInteger":
			return decodeChoicePair[Integer](d, &r.MultipleBirth)
		case "contact":
			return decodeElementSlice(d, "PatientContact", &r.Contact)
		case "communication":
			return decodeElementSlice(d, "PatientCommunication", &r.Communication)
		case "generalPractitioner":
			return decodeElementSlice(d, "Reference", &r.GeneralPractitioner)
		case "managingOrganization":
			return decodeElementPtr(d, &r.ManagingOrganization)
		case "link":
			return decodeElementSlice(d, "PatientLink", &r.Link)
		default:
			return d.unknown("Patient", f)
		}
	})
}

func (r PatientContact) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElementSlice(w, "relationship", r.Relationship)
	writeElementPtr(w, "name", r.Name)
	writeElementSlice(w, "telecom", r.Telecom)
	writeElementPtr(w, "address", r.Address)
	writePrimitivePtr(w, "gender", r.Gender)
	writeElementPtr(w, "organization", r.Organization)
	writeElementPtr(w, "period", r.Period)
	w.end("}")
}

func (r *PatientContact) unmarshalJSON(d *jsonReader) error {
	return d.object("PatientContact", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "relationship":
			return decodeElementSlice(d, "CodeableConcept", &r.Relationship)
		case "name":
			return decodeElementPtr(d, &r.Name)
		case "telecom":
			return decodeElementSlice(d, "ContactPoint", &r.Telecom)
		case "address":
			return decodeElementPtr(d, &r.Address)
		case "gender":
			return decodePrimitivePtr(d, &r.Gender)
		case "_gender":
			return decodePairPtr(d, &r.Gender)
		case "organization":
			return decodeElementPtr(d, &r.Organization)
		case "period":
			return decodeElementPtr(d, &r.Period)
		default:
			return d.unknown("PatientContact", f)
		}
	})
}

func (r PatientCommunication) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElement(w, "language", r.Language)
	writePrimitivePtr(w, "preferred", r.Preferred)
	w.end("}")
}

func (r *PatientCommunication) unmarshalJSON(d *jsonReader) error {
	seenLanguage := false
	err := d.object("PatientCommunication", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "language":
			seenLanguage = true
			return decodeElement(d, &r.Language)
		case "preferred":
			return decodePrimitivePtr(d, &r.Preferred)
		case "_preferred":
			return decodePairPtr(d, &r.Preferred)
		default:
			return d.unknown("PatientCommunication", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenLanguage {
		return d.missing("PatientCommunication", "language")
	}
	return nil
}

func (r PatientLink) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElement(w, "other", r.Other)
	writePrimitive(w, "type", r.Type)
	w.end("}")
}

func (r *PatientLink) unmarshalJSON(d *jsonReader) error {
	seenOther, seenType := false, false
	err := d.object("PatientLink", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "other":
			seenOther = true
			return decodeElement(d, &r.Other)
		case "type":
			seenType = true
			return decodePrimitive(d, &r.Type)
		case "_type":
			return decodePair(d, &r.Type)
		default:
			return d.unknown("PatientLink", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenOther {
		return d.missing("PatientLink", "other")
	}
	if !seenType {
		return d.missing("PatientLink", "type")
	}
	return nil
}
