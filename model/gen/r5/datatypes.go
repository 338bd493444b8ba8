package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// isExtensionValue is the choice type for Extension.value[x]. Exactly one
// variant is populated; the wire field name encodes which.
type isExtensionValue interface {
	model.Element
	isExtensionValue()
}

func (r Boolean) isExtensionValue()         {}
func (r Integer) isExtensionValue()         {}
func (r Decimal) isExtensionValue()         {}
func (r String) isExtensionValue()          {}
func (r Uri) isExtensionValue()             {}
func (r Code) isExtensionValue()            {}
func (r DateTime) isExtensionValue()        {}
func (r Quantity) isExtensionValue()        {}
func (r CodeableConcept) isExtensionValue() {}
func (r Coding) isExtensionValue()          {}
func (r Reference) isExtensionValue()       {}
func (r Period) isExtensionValue()          {}
func (r Identifier) isExtensionValue()      {}

// Extension is a URI-keyed, typed value attached to any element to carry
// data outside the base schema. It holds either one Value or a nested
// extension list.
type Extension struct {
	Id        *string
	Extension []Extension
	Url       string
	Value     isExtensionValue
}

func (r Extension) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	w.field("url")
	w.value(r.Url)
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
	case DateTime:
		writePrimitive(w, "valueDateTime", v)
	case Quantity:
		writeElement(w, "valueQuantity", v)
	case CodeableConcept:
		writeElement(w, "valueCodeableConcept", v)
	case Coding:
		writeElement(w, "valueCoding", v)
	case Reference:
		writeElement(w, "valueReference", v)
	case Period:
		writeElement(w, "valuePeriod", v)
	case Identifier:
		writeElement(w, "valueIdentifier", v)
	}
	w.end("}")
}

func (r *Extension) unmarshalJSON(d *jsonReader) error {
	seenUrl := false
	err := d.object("Extension", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "url":
			seenUrl = true
			v, err := d.decodeString()
			if err != nil {
				return err
			}
			if v != nil {
				r.Url = *v
			}
			return nil
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
		case "valueDateTime":
			return decodeChoicePrimitive[DateTime](d, &r.Value)
		case "_valueDateTime":
			return decodeChoicePair[DateTime](d, &r.Value)
		case "valueQuantity":
			return decodeChoiceElement[Quantity](d, &r.Value)
		case "valueCodeableConcept":
			return decodeChoiceElement[CodeableConcept](d, &r.Value)
		case "valueCoding":
			return decodeChoiceElement[Coding](d, &r.Value)
		case "valueReference":
			return decodeChoiceElement[Reference](d, &r.Value)
		case "valuePeriod":
			return decodeChoiceElement[Period](d, &r.Value)
		case "valueIdentifier":
			return decodeChoiceElement[Identifier](d, &r.Value)
		default:
			return d.unknown("Extension", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenUrl {
		return d.missing("Extension", "url")
	}
	return nil
}

// Coding is a reference to a code defined by a terminology system.
type Coding struct {
	Id           *string
	Extension    []Extension
	System       *Uri
	Version      *String
	Code         *Code
	Display      *String
	UserSelected *Boolean
}

func (r Coding) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "system", r.System)
	writePrimitivePtr(w, "version", r.Version)
	writePrimitivePtr(w, "code", r.Code)
	writePrimitivePtr(w, "display", r.Display)
	writePrimitivePtr(w, "userSelected", r.UserSelected)
	w.end("}")
}

func (r *Coding) unmarshalJSON(d *jsonReader) error {
	return d.object("Coding", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "system":
			return decodePrimitivePtr(d, &r.System)
		case "_system":
			return decodePairPtr(d, &r.System)
		case "version":
			return decodePrimitivePtr(d, &r.Version)
		case "_version":
			return decodePairPtr(d, &r.Version)
		case "code":
			return decodePrimitivePtr(d, &r.Code)
		case "_code":
			return decodePairPtr(d, &r.Code)
		case "display":
			return decodePrimitivePtr(d, &r.Display)
		case "_display":
			return decodePairPtr(d, &r.Display)
		case "userSelected":
			return decodePrimitivePtr(d, &r.UserSelected)
		case "_userSelected":
			return decodePairPtr(d, &r.UserSelected)
		default:
			return d.unknown("Coding", f)
		}
	})
}

// CodeableConcept is a concept, potentially coded in one or more
// terminologies, with an optional free-text representation.
type CodeableConcept struct {
	Id        *string
	Extension []Extension
	Coding    []Coding
	Text      *String
}

func (r CodeableConcept) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "coding", r.Coding)
	writePrimitivePtr(w, "text", r.Text)
	w.end("}")
}

func (r *CodeableConcept) unmarshalJSON(d *jsonReader) error {
	return d.object("CodeableConcept", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "coding":
			return decodeElementSlice(d, "Coding", &r.Coding)
		case "text":
			return decodePrimitivePtr(d, &r.Text)
		case "_text":
			return decodePairPtr(d, &r.Text)
		default:
			return d.unknown("CodeableConcept", f)
		}
	})
}

// Identifier is a business identifier for an entity, scoped by a system.
type Identifier struct {
	Id        *string
	Extension []Extension
	Use       *Code
	Type      *CodeableConcept
	System    *Uri
	Value     *String
	Period    *Period
	Assigner  *Reference
}

func (r Identifier) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "use", r.Use)
	writeElementPtr(w, "type", r.Type)
	writePrimitivePtr(w, "system", r.System)
	writePrimitivePtr(w, "value", r.Value)
	writeElementPtr(w, "period", r.Period)
	writeElementPtr(w, "assigner", r.Assigner)
	w.end("}")
}

func (r *Identifier) unmarshalJSON(d *jsonReader) error {
	return d.object("Identifier", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "use":
			return decodePrimitivePtr(d, &r.Use)
		case "_use":
			return decodePairPtr(d, &r.Use)
		case "type":
			return decodeElementPtr(d, &r.Type)
		case "system":
			return decodePrimitivePtr(d, &r.System)
		case "_system":
			return decodePairPtr(d, &r.System)
		case "value":
			return decodePrimitivePtr(d, &r.Value)
		case "_value":
			return decodePairPtr(d, &r.Value)
		case "period":
			return decodeElementPtr(d, &r.Period)
		case "assigner":
			return decodeElementPtr(d, &r.Assigner)
		default:
			return d.unknown("Identifier", f)
		}
	})
}

// Reference points from one resource to another.
type Reference struct {
	Id         *string
	Extension  []Extension
	Reference  *String
	Type       *Uri
	Identifier *Identifier
	Display    *String
}

func (r Reference) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "reference", r.Reference)
	writePrimitivePtr(w, "type", r.Type)
	writeElementPtr(w, "identifier", r.Identifier)
	writePrimitivePtr(w, "display", r.Display)
	w.end("}")
}

func (r *Reference) unmarshalJSON(d *jsonReader) error {
	return d.object("Reference", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "reference":
			return decodePrimitivePtr(d, &r.Reference)
		case "_reference":
			return decodePairPtr(d, &r.Reference)
		case "type":
			return decodePrimitivePtr(d, &r.Type)
		case "_type":
			return decodePairPtr(d, &r.Type)
		case "identifier":
			return decodeElementPtr(d, &r.Identifier)
		case "display":
			return decodePrimitivePtr(d, &r.Display)
		case "_display":
			return decodePairPtr(d, &r.Display)
		default:
			return d.unknown("Reference", f)
		}
	})
}

// Period is a time range bounded by dateTimes.
type Period struct {
	Id        *string
	Extension []Extension
	Start     *DateTime
	End       *DateTime
}

func (r Period) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "start", r.Start)
	writePrimitivePtr(w, "end", r.End)
	w.end("}")
}

func (r *Period) unmarshalJSON(d *jsonReader) error {
	return d.object("Period", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "start":
			return decodePrimitivePtr(d, &r.Start)
		case "_start":
			return decodePairPtr(d, &r.Start)
		case "end":
			return decodePrimitivePtr(d, &r.End)
		case "_end":
			return decodePairPtr(d, &r.End)
		default:
			return d.unknown("Period", f)
		}
	})
}

// Quantity is a measured amount.
type Quantity struct {
	Id         *string
	Extension  []Extension
	Value      *Decimal
	Comparator *Code
	Unit       *String
	System     *Uri
	Code       *Code
}

func (r Quantity) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "value", r.Value)
	writePrimitivePtr(w, "comparator", r.Comparator)
	writePrimitivePtr(w, "unit", r.Unit)
	writePrimitivePtr(w, "system", r.System)
	writePrimitivePtr(w, "code", r.Code)
	w.end("}")
}

func (r *Quantity) unmarshalJSON(d *jsonReader) error {
	return d.object("Quantity", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "value":
			return decodePrimitivePtr(d, &r.Value)
		case "_value":
			return decodePairPtr(d, &r.Value)
		case "comparator":
			return decodePrimitivePtr(d, &r.Comparator)
		case "_comparator":
			return decodePairPtr(d, &r.Comparator)
		case "unit":
			return decodePrimitivePtr(d, &r.Unit)
		case "_unit":
			return decodePairPtr(d, &r.Unit)
		case "system":
			return decodePrimitivePtr(d, &r.System)
		case "_system":
			return decodePairPtr(d, &r.System)
		case "code":
			return decodePrimitivePtr(d, &r.Code)
		case "_code":
			return decodePairPtr(d, &r.Code)
		default:
			return d.unknown("Quantity", f)
		}
	})
}

// Range is a set of values bounded by low and high quantities.
type Range struct {
	Id        *string
	Extension []Extension
	Low       *Quantity
	High      *Quantity
}

func (r Range) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementPtr(w, "low", r.Low)
	writeElementPtr(w, "high", r.High)
	w.end("}")
}

func (r *Range) unmarshalJSON(d *jsonReader) error {
	return d.object("Range", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "low":
			return decodeElementPtr(d, &r.Low)
		case "high":
			return decodeElementPtr(d, &r.High)
		default:
			return d.unknown("Range", f)
		}
	})
}

// HumanName is a name of a human, broken into parts.
type HumanName struct {
	Id        *string
	Extension []Extension
	Use       *Code
	Text      *String
	Family    *String
	Given     []String
	Prefix    []String
	Suffix    []String
	Period    *Period
}

func (r HumanName) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "use", r.Use)
	writePrimitivePtr(w, "text", r.Text)
	writePrimitivePtr(w, "family", r.Family)
	writePrimitiveSlice(w, "given", r.Given)
	writePrimitiveSlice(w, "prefix", r.Prefix)
	writePrimitiveSlice(w, "suffix", r.Suffix)
	writeElementPtr(w, "period", r.Period)
	w.end("}")
}

func (r *HumanName) unmarshalJSON(d *jsonReader) error {
	return d.object("HumanName", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "use":
			return decodePrimitivePtr(d, &r.Use)
		case "_use":
			return decodePairPtr(d, &r.Use)
		case "text":
			return decodePrimitivePtr(d, &r.Text)
		case "_text":
			return decodePairPtr(d, &r.Text)
		case "family":
			return decodePrimitivePtr(d, &r.Family)
		case "_family":
			return decodePairPtr(d, &r.Family)
		case "given":
			return decodePrimitiveSlice(d, "HumanName", &r.Given)
		case "_given":
			return decodePairSlice(d, "HumanName", &r.Given)
		case "prefix":
			return decodePrimitiveSlice(d, "HumanName", &r.Prefix)
		case "_prefix":
			return decodePairSlice(d, "HumanName", &r.Prefix)
		case "suffix":
			return decodePrimitiveSlice(d, "HumanName", &r.Suffix)
		case "_suffix":
			return decodePairSlice(d, "HumanName", &r.Suffix)
		case "period":
			return decodeElementPtr(d, &r.Period)
		default:
			return d.unknown("HumanName", f)
		}
	})
}

// ContactPoint is a contact detail such as a phone number or email address.
type ContactPoint struct {
	Id        *string
	Extension []Extension
	System    *Code
	Value     *String
	Use       *Code
	Rank      *PositiveInt
	Period    *Period
}

func (r ContactPoint) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "system", r.System)
	writePrimitivePtr(w, "value", r.Value)
	writePrimitivePtr(w, "use", r.Use)
	writePrimitivePtr(w, "rank", r.Rank)
	writeElementPtr(w, "period", r.Period)
	w.end("}")
}

func (r *ContactPoint) unmarshalJSON(d *jsonReader) error {
	return d.object("ContactPoint", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "system":
			return decodePrimitivePtr(d, &r.System)
		case "_system":
			return decodePairPtr(d, &r.System)
		case "value":
			return decodePrimitivePtr(d, &r.Value)
		case "_value":
			return decodePairPtr(d, &r.Value)
		case "use":
			return decodePrimitivePtr(d, &r.Use)
		case "_use":
			return decodePairPtr(d, &r.Use)
		case "rank":
			return decodePrimitivePtr(d, &r.Rank)
		case "_rank":
			return decodePairPtr(d, &r.Rank)
		case "period":
			return decodeElementPtr(d, &r.Period)
		default:
			return d.unknown("ContactPoint", f)
		}
	})
}

// Address is a postal address.
type Address struct {
	Id         *string
	Extension  []Extension
	Use        *Code
	Type       *Code
	Text       *String
	Line       []String
	City       *String
	District   *String
	State      *String
	PostalCode *String
	Country    *String
	Period     *Period
}

func (r Address) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "use", r.Use)
	writePrimitivePtr(w, "type", r.Type)
	writePrimitivePtr(w, "text", r.Text)
	writePrimitiveSlice(w, "line", r.Line)
	writePrimitivePtr(w, "city", r.City)
	writePrimitivePtr(w, "district", r.District)
	writePrimitivePtr(w, "state", r.State)
	writePrimitivePtr(w, "postalCode", r.PostalCode)
	writePrimitivePtr(w, "country", r.Country)
	writeElementPtr(w, "period", r.Period)
	w.end("}")
}

func (r *Address) unmarshalJSON(d *jsonReader) error {
	return d.object("Address", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "use":
			return decodePrimitivePtr(d, &r.Use)
		case "_use":
			return decodePairPtr(d, &r.Use)
		case "type":
			return decodePrimitivePtr(d, &r.Type)
		case "_type":
			return decodePairPtr(d, &r.Type)
		case "text":
			return decodePrimitivePtr(d, &r.Text)
		case "_text":
			return decodePairPtr(d, &r.Text)
		case "line":
			return decodePrimitiveSlice(d, "Address", &r.Line)
		case "_line":
			return decodePairSlice(d, "Address", &r.Line)
		case "city":
			return decodePrimitivePtr(d, &r.City)
		case "_city":
			return decodePairPtr(d, &r.City)
		case "district":
			return decodePrimitivePtr(d, &r.District)
		case "_district":
			return decodePairPtr(d, &r.District)
		case "state":
			return decodePrimitivePtr(d, &r.State)
		case "_state":
			return decodePairPtr(d, &r.State)
		case "postalCode":
			return decodePrimitivePtr(d, &r.PostalCode)
		case "_postalCode":
			return decodePairPtr(d, &r.PostalCode)
		case "country":
			return decodePrimitivePtr(d, &r.Country)
		case "_country":
			return decodePairPtr(d, &r.Country)
		case "period":
			return decodeElementPtr(d, &r.Period)
		default:
			return d.unknown("Address", f)
		}
	})
}

// Meta carries metadata about a resource: version id, last update time and
// source profile references.
type Meta struct {
	Id          *string
	Extension   []Extension
	VersionId   *Id
	LastUpdated *Instant
	Source      *Uri
	Profile     []Canonical
	Security    []Coding
	Tag         []Coding
}

func (r Meta) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitivePtr(w, "versionId", r.VersionId)
	writePrimitivePtr(w, "lastUpdated", r.LastUpdated)
	writePrimitivePtr(w, "source", r.Source)
	writePrimitiveSlice(w, "profile", r.Profile)
	writeElementSlice(w, "security", r.Security)
	writeElementSlice(w, "tag", r.Tag)
	w.end("}")
}

func (r *Meta) unmarshalJSON(d *jsonReader) error {
	return d.object("Meta", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "versionId":
			return decodePrimitivePtr(d, &r.VersionId)
		case "_versionId":
			return decodePairPtr(d, &r.VersionId)
		case "lastUpdated":
			return decodePrimitivePtr(d, &r.LastUpdated)
		case "_lastUpdated":
			return decodePairPtr(d, &r.LastUpdated)
		case "source":
			return decodePrimitivePtr(d, &r.Source)
		case "_source":
			return decodePairPtr(d, &r.Source)
		case "profile":
			return decodePrimitiveSlice(d, "Meta", &r.Profile)
		case "_profile":
			return decodePairSlice(d, "Meta", &r.Profile)
		case "security":
			return decodeElementSlice(d, "Coding", &r.Security)
		case "tag":
			return decodeElementSlice(d, "Coding", &r.Tag)
		default:
			return d.unknown("Meta", f)
		}
	})
}

// Narrative is the human-readable summary of a resource.
type Narrative struct {
	Id        *string
	Extension []Extension
	Status    Code
	Div       Xhtml
}

func (r Narrative) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writePrimitive(w, "status", r.Status)
	writePrimitive(w, "div", r.Div)
	w.end("}")
}

func (r *Narrative) unmarshalJSON(d *jsonReader) error {
	seenStatus, seenDiv := false, false
	err := d.object("Narrative", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "status":
			seenStatus = true
			return decodePrimitive(d, &r.Status)
		case "_status":
			return decodePair(d, &r.Status)
		case "div":
			seenDiv = true
			return decodePrimitive(d, &r.Div)
		case "_div":
			return decodePair(d, &r.Div)
		default:
			return d.unknown("Narrative", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenStatus {
		return d.missing("Narrative", "status")
	}
	if !seenDiv {
		return d.missing("Narrative", "div")
	}
	return nil
}

// isAnnotationAuthor is the choice type for Annotation.author[x].
type isAnnotationAuthor interface {
	model.Element
	isAnnotationAuthor()
}

func (r Reference) isAnnotationAuthor() {}
func (r String) isAnnotationAuthor()    {}

// Annotation is a text note with an optional author and timestamp.
type Annotation struct {
	Id        *string
	Extension []Extension
	Author    isAnnotationAuthor
	Time      *DateTime
	Text      Markdown
}

func (r Annotation) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	switch v := r.Author.(type) {
	case Reference:
		writeElement(w, "authorReference", v)
	case String:
		writePrimitive(w, "authorString", v)
	}
	writePrimitivePtr(w, "time", r.Time)
	writePrimitive(w, "text", r.Text)
	w.end("}")
}

func (r *Annotation) unmarshalJSON(d *jsonReader) error {
	seenText := false
	err := d.object("Annotation", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "authorReference":
			return decodeChoiceElement[Reference](d, &r.Author)
		case "authorString":
			return decodeChoicePrimitive[String](d, &r.Author)
		case "_authorString":
			return decodeChoicePair[String](d, &r.Author)
		case "time":
			return decodePrimitivePtr(d, &r.Time)
		case "_time":
			return decodePairPtr(d, &r.Time)
		case "text":
			seenText = true
			return decodePrimitive(d, &r.Text)
		case "_text":
			return decodePair(d, &r.Text)
		default:
			return d.unknown("Annotation", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenText {
		return d.missing("Annotation", "text")
	}
	return nil
}
