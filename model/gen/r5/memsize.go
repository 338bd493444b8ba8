package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

func (r Boolean) MemSize() int      { return model.MemSize(r) }
func (r Integer) MemSize() int      { return model.MemSize(r) }
func (r UnsignedInt) MemSize() int  { return model.MemSize(r) }
func (r PositiveInt) MemSize() int  { return model.MemSize(r) }
func (r Decimal) MemSize() int      { return model.MemSize(r) }
func (r String) MemSize() int       { return model.MemSize(r) }
func (r Uri) MemSize() int          { return model.MemSize(r) }
func (r Url) MemSize() int          { return model.MemSize(r) }
func (r Canonical) MemSize() int    { return model.MemSize(r) }
func (r Code) MemSize() int         { return model.MemSize(r) }
func (r Id) MemSize() int           { return model.MemSize(r) }
func (r Markdown) MemSize() int     { return model.MemSize(r) }
func (r Base64Binary) MemSize() int { return model.MemSize(r) }
func (r Date) MemSize() int         { return model.MemSize(r) }
func (r DateTime) MemSize() int     { return model.MemSize(r) }
func (r Instant) MemSize() int      { return model.MemSize(r) }
func (r Time) MemSize() int         { return model.MemSize(r) }
func (r Xhtml) MemSize() int        { return model.MemSize(r) }

func (r Extension) MemSize() int       { return model.MemSize(r) }
func (r Coding) MemSize() int          { return model.MemSize(r) }
func (r CodeableConcept) MemSize() int { return model.MemSize(r) }
func (r Identifier) MemSize() int      { return model.MemSize(r) }
func (r Reference) MemSize() int       { return model.MemSize(r) }
func (r Period) MemSize() int          { return model.MemSize(r) }
func (r Quantity) MemSize() int        { return model.MemSize(r) }
func (r Range) MemSize() int           { return model.MemSize(r) }
func (r HumanName) MemSize() int       { return model.MemSize(r) }
func (r ContactPoint) MemSize() int    { return model.MemSize(r) }
func (r Address) MemSize() int         { return model.MemSize(r) }
func (r Meta) MemSize() int            { return model.MemSize(r) }
func (r Narrative) MemSize() int       { return model.MemSize(r) }
func (r Annotation) MemSize() int      { return model.MemSize(r) }

func (r Patient) MemSize() int                   { return model.MemSize(r) }
func (r PatientContact) MemSize() int            { return model.MemSize(r) }
func (r PatientCommunication) MemSize() int      { return model.MemSize(r) }
func (r PatientLink) MemSize() int               { return model.MemSize(r) }
func (r Observation) MemSize() int               { return model.MemSize(r) }
func (r ObservationTriggeredBy) MemSize() int    { return model.MemSize(r) }
func (r ObservationReferenceRange) MemSize() int { return model.MemSize(r) }
func (r ObservationComponent) MemSize() int      { return model.MemSize(r) }
func (r OperationOutcome) MemSize() int          { return model.MemSize(r) }
func (r OperationOutcomeIssue) MemSize() int     { return model.MemSize(r) }
func (r Bundle) MemSize() int                    { return model.MemSize(r) }
func (r BundleLink) MemSize() int                { return model.MemSize(r) }
func (r BundleEntry) MemSize() int               { return model.MemSize(r) }
func (r BundleEntrySearch) MemSize() int         { return model.MemSize(r) }
func (r BundleEntryRequest) MemSize() int        { return model.MemSize(r) }
func (r BundleEntryResponse) MemSize() int       { return model.MemSize(r) }
func (r Parameters) MemSize() int                { return model.MemSize(r) }
func (r ParametersParameter) MemSize() int       { return model.MemSize(r) }
