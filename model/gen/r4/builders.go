package r4

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/utils/ptr"
)

// PatientBuilder assembles a Patient. Setters chain; choice setters
// replace any previously set variant.
type PatientBuilder struct {
	p Patient
}

func NewPatientBuilder() *PatientBuilder {
	return &PatientBuilder{}
}

func (b *PatientBuilder) Id(id string) *PatientBuilder {
	b.p.Id = &Id{Value: ptr.To(id)}
	return b
}

func (b *PatientBuilder) Meta(meta Meta) *PatientBuilder {
	b.p.Meta = &meta
	return b
}

func (b *PatientBuilder) Identifier(identifier ...Identifier) *PatientBuilder {
	b.p.Identifier = append(b.p.Identifier, identifier...)
	return b
}

func (b *PatientBuilder) Active(active bool) *PatientBuilder {
	b.p.Active = &Boolean{Value: ptr.To(active)}
	return b
}

func (b *PatientBuilder) Name(name ...HumanName) *PatientBuilder {
	b.p.Name = append(b.p.Name, name...)
	return b
}

func (b *PatientBuilder) Telecom(telecom ...ContactPoint) *PatientBuilder {
	b.p.Telecom = append(b.p.Telecom, telecom...)
	return b
}

func (b *PatientBuilder) Gender(gender string) *PatientBuilder {
	b.p.Gender = &Code{Value: ptr.To(gender)}
	return b
}

func (b *PatientBuilder) BirthDate(date string) *PatientBuilder {
	b.p.BirthDate = &Date{Value: ptr.To(date)}
	return b
}

func (b *PatientBuilder) DeceasedBoolean(deceased bool) *PatientBuilder {
	b.p.Deceased = Boolean{Value: ptr.To(deceased)}
	return b
}

func (b *PatientBuilder) DeceasedDateTime(deceased string) *PatientBuilder {
	b.p.Deceased = DateTime{Value: ptr.To(deceased)}
	return b
}

func (b *PatientBuilder) Address(address ...Address) *PatientBuilder {
	b.p.Address = append(b.p.Address, address...)
	return b
}

func (b *PatientBuilder) MaritalStatus(status CodeableConcept) *PatientBuilder {
	b.p.MaritalStatus = &status
	return b
}

func (b *PatientBuilder) MultipleBirthBoolean(v bool) *PatientBuilder {
	b.p.MultipleBirth = Boolean{Value: ptr.To(v)}
	return b
}

func (b *PatientBuilder) MultipleBirthInteger(v int32) *PatientBuilder {
	b.p.MultipleBirth = Integer{Value: ptr.To(v)}
	return b
}

func (b *PatientBuilder) Contact(contact ...PatientContact) *PatientBuilder {
	b.p.Contact = append(b.p.Contact, contact...)
	return b
}

func (b *PatientBuilder) Communication(communication ...PatientCommunication) *PatientBuilder {
	b.p.Communication = append(b.p.Communication, communication...)
	return b
}

func (b *PatientBuilder) GeneralPractitioner(gp ...Reference) *PatientBuilder {
	b.p.GeneralPractitioner = append(b.p.GeneralPractitioner, gp...)
	return b
}

func (b *PatientBuilder) ManagingOrganization(org Reference) *PatientBuilder {
	b.p.ManagingOrganization = &org
	return b
}

func (b *PatientBuilder) Link(link ...PatientLink) *PatientBuilder {
	b.p.Link = append(b.p.Link, link...)
	return b
}

func (b *PatientBuilder) Extension(ext ...Extension) *PatientBuilder {
	b.p.Extension = append(b.p.Extension, ext...)
	return b
}

func (b *PatientBuilder) Contained(contained ...model.Resource) *PatientBuilder {
	b.p.Contained = append(b.p.Contained, contained...)
	return b
}

func (b *PatientBuilder) Build() (Patient, error) {
	return b.p, nil
}

// ObservationBuilder assembles an Observation. Build fails unless status
// and code are set.
type ObservationBuilder struct {
	o          Observation
	seenStatus bool
	seenCode   bool
}

func NewObservationBuilder() *ObservationBuilder {
	return &ObservationBuilder{}
}

func (b *ObservationBuilder) Id(id string) *ObservationBuilder {
	b.o.Id = &Id{Value: ptr.To(id)}
	return b
}

func (b *ObservationBuilder) Meta(meta Meta) *ObservationBuilder {
	b.o.Meta = &meta
	return b
}

func (b *ObservationBuilder) Identifier(identifier ...Identifier) *ObservationBuilder {
	b.o.Identifier = append(b.o.Identifier, identifier...)
	return b
}

func (b *ObservationBuilder) Status(status string) *ObservationBuilder {
	b.o.Status = Code{Value: ptr.To(status)}
	b.seenStatus = true
	return b
}

func (b *ObservationBuilder) Category(category ...CodeableConcept) *ObservationBuilder {
	b.o.Category = append(b.o.Category, category...)
	return b
}

func (b *ObservationBuilder) Code(code CodeableConcept) *ObservationBuilder {
	b.o.Code = code
	b.seenCode = true
	return b
}

func (b *ObservationBuilder) Subject(subject Reference) *ObservationBuilder {
	b.o.Subject = &subject
	return b
}

func (b *ObservationBuilder) Encounter(encounter Reference) *ObservationBuilder {
	b.o.Encounter = &encounter
	return b
}

func (b *ObservationBuilder) EffectiveDateTime(effective string) *ObservationBuilder {
	b.o.Effective = DateTime{Value: ptr.To(effective)}
	return b
}

func (b *ObservationBuilder) EffectivePeriod(effective Period) *ObservationBuilder {
	b.o.Effective = effective
	return b
}

func (b *ObservationBuilder) EffectiveInstant(effective string) *ObservationBuilder {
	b.o.Effective = Instant{Value: ptr.To(effective)}
	return b
}

func (b *ObservationBuilder) Issued(issued string) *ObservationBuilder {
	b.o.Issued = &Instant{Value: ptr.To(issued)}
	return b
}

func (b *ObservationBuilder) Performer(performer ...Reference) *ObservationBuilder {
	b.o.Performer = append(b.o.Performer, performer...)
	return b
}

func (b *ObservationBuilder) ValueQuantity(value Quantity) *ObservationBuilder {
	b.o.Value = value
	return b
}

func (b *ObservationBuilder) ValueCodeableConcept(value CodeableConcept) *ObservationBuilder {
	b.o.Value = value
	return b
}

func (b *ObservationBuilder) ValueString(value string) *ObservationBuilder {
	b.o.Value = String{Value: ptr.To(value)}
	return b
}

func (b *ObservationBuilder) ValueBoolean(value bool) *ObservationBuilder {
	b.o.Value = Boolean{Value: ptr.To(value)}
	return b
}

func (b *ObservationBuilder) ValueInteger(value int32) *ObservationBuilder {
	b.o.Value = Integer{Value: ptr.To(value)}
	return b
}

func (b *ObservationBuilder) ValueRange(value Range) *ObservationBuilder {
	b.o.Value = value
	return b
}

func (b *ObservationBuilder) ValueDecimalQuantity(value *apd.Decimal, unit, system, code string) *ObservationBuilder {
	b.o.Value = Quantity{
		Value:  &Decimal{Value: value},
		Unit:   &String{Value: ptr.To(unit)},
		System: &Uri{Value: ptr.To(system)},
		Code:   &Code{Value: ptr.To(code)},
	}
	return b
}

func (b *ObservationBuilder) DataAbsentReason(reason CodeableConcept) *ObservationBuilder {
	b.o.DataAbsentReason = &reason
	return b
}

func (b *ObservationBuilder) Interpretation(interpretation ...CodeableConcept) *ObservationBuilder {
	b.o.Interpretation = append(b.o.Interpretation, interpretation...)
	return b
}

func (b *ObservationBuilder) Note(note ...Annotation) *ObservationBuilder {
	b.o.Note = append(b.o.Note, note...)
	return b
}

func (b *ObservationBuilder) ReferenceRange(rr ...ObservationReferenceRange) *ObservationBuilder {
	b.o.ReferenceRange = append(b.o.ReferenceRange, rr...)
	return b
}

func (b *ObservationBuilder) Component(component ...ObservationComponent) *ObservationBuilder {
	b.o.Component = append(b.o.Component, component...)
	return b
}

func (b *ObservationBuilder) Contained(contained ...model.Resource) *ObservationBuilder {
	b.o.Contained = append(b.o.Contained, contained...)
	return b
}

func (b *ObservationBuilder) Build() (Observation, error) {
	if !b.seenStatus {
		return Observation{}, &model.BuildError{Type: "Observation", Field: "status"}
	}
	if !b.seenCode {
		return Observation{}, &model.BuildError{Type: "Observation", Field: "code"}
	}
	return b.o, nil
}

// OperationOutcomeBuilder assembles an OperationOutcome. Build fails
// without at least one issue.
type OperationOutcomeBuilder struct {
	o OperationOutcome
}

func NewOperationOutcomeBuilder() *OperationOutcomeBuilder {
	return &OperationOutcomeBuilder{}
}

func (b *OperationOutcomeBuilder) Id(id string) *OperationOutcomeBuilder {
	b.o.Id = &Id{Value: ptr.To(id)}
	return b
}

func (b *OperationOutcomeBuilder) Issue(severity, code string, diagnostics string) *OperationOutcomeBuilder {
	issue := OperationOutcomeIssue{
		Severity: Code{Value: ptr.To(severity)},
		Code:     Code{Value: ptr.To(code)},
	}
	if diagnostics != "" {
		issue.Diagnostics = &String{Value: ptr.To(diagnostics)}
	}
	b.o.Issue = append(b.o.Issue, issue)
	return b
}

func (b *OperationOutcomeBuilder) IssueDetailed(issue OperationOutcomeIssue) *OperationOutcomeBuilder {
	b.o.Issue = append(b.o.Issue, issue)
	return b
}

func (b *OperationOutcomeBuilder) Build() (OperationOutcome, error) {
	if len(b.o.Issue) == 0 {
		return OperationOutcome{}, &model.BuildError{Type: "OperationOutcome", Field: "issue"}
	}
	return b.o, nil
}

// BundleBuilder assembles a Bundle. Build fails unless the bundle type is
// set.
type BundleBuilder struct {
	b        Bundle
	seenType bool
}

func NewBundleBuilder() *BundleBuilder {
	return &BundleBuilder{}
}

func (b *BundleBuilder) Id(id string) *BundleBuilder {
	b.b.Id = &Id{Value: ptr.To(id)}
	return b
}

func (b *BundleBuilder) Type(bundleType string) *BundleBuilder {
	b.b.Type = Code{Value: ptr.To(bundleType)}
	b.seenType = true
	return b
}

func (b *BundleBuilder) Timestamp(ts string) *BundleBuilder {
	b.b.Timestamp = &Instant{Value: ptr.To(ts)}
	return b
}

func (b *BundleBuilder) Total(total uint32) *BundleBuilder {
	b.b.Total = &UnsignedInt{Value: ptr.To(total)}
	return b
}

func (b *BundleBuilder) Link(relation, url string) *BundleBuilder {
	b.b.Link = append(b.b.Link, BundleLink{
		Relation: String{Value: ptr.To(relation)},
		Url:      Uri{Value: ptr.To(url)},
	})
	return b
}

func (b *BundleBuilder) Entry(entry ...BundleEntry) *BundleBuilder {
	b.b.Entry = append(b.b.Entry, entry...)
	return b
}

// ResourceEntry appends an entry holding the resource under the given
// full URL.
func (b *BundleBuilder) ResourceEntry(fullUrl string, resource model.Resource) *BundleBuilder {
	entry := BundleEntry{Resource: resource}
	if fullUrl != "" {
		entry.FullUrl = &Uri{Value: ptr.To(fullUrl)}
	}
	b.b.Entry = append(b.b.Entry, entry)
	return b
}

// RequestEntry appends a batch/transaction entry executing method on url
// with an optional resource body.
func (b *BundleBuilder) RequestEntry(fullUrl, method, url string, resource model.Resource) *BundleBuilder {
	entry := BundleEntry{
		Resource: resource,
		Request: &BundleEntryRequest{
			Method: Code{Value: ptr.To(method)},
			Url:    Uri{Value: ptr.To(url)},
		},
	}
	if fullUrl != "" {
		entry.FullUrl = &Uri{Value: ptr.To(fullUrl)}
	}
	b.b.Entry = append(b.b.Entry, entry)
	return b
}

// CreateEntry appends a transaction entry POSTing the resource under a
// generated urn:uuid full URL, so other entries can reference it before
// the server assigns an id.
func (b *BundleBuilder) CreateEntry(resource model.Resource) *BundleBuilder {
	return b.RequestEntry("urn:uuid:"+uuid.NewString(), "POST", resource.ResourceType(), resource)
}

func (b *BundleBuilder) Build() (Bundle, error) {
	if !b.seenType {
		return Bundle{}, &model.BuildError{Type: "Bundle", Field: "type"}
	}
	return b.b, nil
}

// ParametersBuilder assembles a Parameters resource.
type ParametersBuilder struct {
	p Parameters
}

func NewParametersBuilder() *ParametersBuilder {
	return &ParametersBuilder{}
}

func (b *ParametersBuilder) Id(id string) *ParametersBuilder {
	b.p.Id = &Id{Value: ptr.To(id)}
	return b
}

func (b *ParametersBuilder) String(name, value string) *ParametersBuilder {
	b.p.Parameter = append(b.p.Parameter, ParametersParameter{
		Name:  String{Value: ptr.To(name)},
		Value: String{Value: ptr.To(value)},
	})
	return b
}

func (b *ParametersBuilder) Boolean(name string, value bool) *ParametersBuilder {
	b.p.Parameter = append(b.p.Parameter, ParametersParameter{
		Name:  String{Value: ptr.To(name)},
		Value: Boolean{Value: ptr.To(value)},
	})
	return b
}

func (b *ParametersBuilder) Integer(name string, value int32) *ParametersBuilder {
	b.p.Parameter = append(b.p.Parameter, ParametersParameter{
		Name:  String{Value: ptr.To(name)},
		Value: Integer{Value: ptr.To(value)},
	})
	return b
}

func (b *ParametersBuilder) Value(name string, value isParametersParameterValue) *ParametersBuilder {
	b.p.Parameter = append(b.p.Parameter, ParametersParameter{
		Name:  String{Value: ptr.To(name)},
		Value: value,
	})
	return b
}

func (b *ParametersBuilder) Resource(name string, resource model.Resource) *ParametersBuilder {
	b.p.Parameter = append(b.p.Parameter, ParametersParameter{
		Name:     String{Value: ptr.To(name)},
		Resource: resource,
	})
	return b
}

func (b *ParametersBuilder) Part(name string, part ...ParametersParameter) *ParametersBuilder {
	b.p.Parameter = append(b.p.Parameter, ParametersParameter{
		Name: String{Value: ptr.To(name)},
		Part: part,
	})
	return b
}

func (b *ParametersBuilder) Build() (Parameters, error) {
	return b.p, nil
}
