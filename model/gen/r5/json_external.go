package r5

import (
	"bytes"
)

func marshalJSONOf(m elementMarshaler) ([]byte, error) {
	var buf bytes.Buffer
	w := newJSONWriter(&buf)
	m.marshalJSON(w)
	if w.err != nil {
		return nil, w.err
	}
	return buf.Bytes(), nil
}

func unmarshalJSONOf(dec elementDecoder, b []byte) error {
	return dec.unmarshalJSON(newJSONReader(bytes.NewReader(b), false))
}

func (r ContainedResource) MarshalJSON() ([]byte, error) {
	return MarshalResource(r.Resource)
}

func (r *ContainedResource) UnmarshalJSON(b []byte) error {
	return r.unmarshalJSON(newJSONReader(bytes.NewReader(b), false))
}

func (r Patient) MarshalJSON() ([]byte, error)          { return marshalJSONOf(r) }
func (r *Patient) UnmarshalJSON(b []byte) error         { return unmarshalJSONOf(r, b) }
func (r Observation) MarshalJSON() ([]byte, error)      { return marshalJSONOf(r) }
func (r *Observation) UnmarshalJSON(b []byte) error     { return unmarshalJSONOf(r, b) }
func (r OperationOutcome) MarshalJSON() ([]byte, error) { return marshalJSONOf(r) }
func (r *OperationOutcome) UnmarshalJSON(b []byte) error {
	return unmarshalJSONOf(r, b)
}
func (r Bundle) MarshalJSON() ([]byte, error)      { return marshalJSONOf(r) }
func (r *Bundle) UnmarshalJSON(b []byte) error     { return unmarshalJSONOf(r, b) }
func (r Parameters) MarshalJSON() ([]byte, error)  { return marshalJSONOf(r) }
func (r *Parameters) UnmarshalJSON(b []byte) error { return unmarshalJSONOf(r, b) }

func (r Extension) MarshalJSON() ([]byte, error)        { return marshalJSONOf(r) }
func (r *Extension) UnmarshalJSON(b []byte) error       { return unmarshalJSONOf(r, b) }
func (r Coding) MarshalJSON() ([]byte, error)           { return marshalJSONOf(r) }
func (r *Coding) UnmarshalJSON(b []byte) error          { return unmarshalJSONOf(r, b) }
func (r CodeableConcept) MarshalJSON() ([]byte, error)  { return marshalJSONOf(r) }
func (r *CodeableConcept) UnmarshalJSON(b []byte) error { return unmarshalJSONOf(r, b) }
func (r Identifier) MarshalJSON() ([]byte, error)       { return marshalJSONOf(r) }
func (r *Identifier) UnmarshalJSON(b []byte) error      { return unmarshalJSONOf(r, b) }
func (r Reference) MarshalJSON() ([]byte, error)        { return marshalJSONOf(r) }
func (r *Reference) UnmarshalJSON(b []byte) error       { return unmarshalJSONOf(r, b) }
func (r Period) MarshalJSON() ([]byte, error)           { return marshalJSONOf(r) }
func (r *Period) UnmarshalJSON(b []byte) error          { return unmarshalJSONOf(r, b) }
func (r Quantity) MarshalJSON() ([]byte, error)         { return marshalJSONOf(r) }
func (r *Quantity) UnmarshalJSON(b []byte) error        { return unmarshalJSONOf(r, b) }
func (r Range) MarshalJSON() ([]byte, error)            { return marshalJSONOf(r) }
func (r *Range) UnmarshalJSON(b []byte) error           { return unmarshalJSONOf(r, b) }
func (r HumanName) MarshalJSON() ([]byte, error)        { return marshalJSONOf(r) }
func (r *HumanName) UnmarshalJSON(b []byte) error       { return unmarshalJSONOf(r, b) }
func (r ContactPoint) MarshalJSON() ([]byte, error)     { return marshalJSONOf(r) }
func (r *ContactPoint) UnmarshalJSON(b []byte) error    { return unmarshalJSONOf(r, b) }
func (r Address) MarshalJSON() ([]byte, error)          { return marshalJSONOf(r) }
func (r *Address) UnmarshalJSON(b []byte) error         { return unmarshalJSONOf(r, b) }
func (r Meta) MarshalJSON() ([]byte, error)             { return marshalJSONOf(r) }
func (r *Meta) UnmarshalJSON(b []byte) error            { return unmarshalJSONOf(r, b) }
func (r Narrative) MarshalJSON() ([]byte, error)        { return marshalJSONOf(r) }
func (r *Narrative) UnmarshalJSON(b []byte) error       { return unmarshalJSONOf(r, b) }
func (r Annotation) MarshalJSON() ([]byte, error)       { return marshalJSONOf(r) }
func (r *Annotation) UnmarshalJSON(b []byte) error      { return unmarshalJSONOf(r, b) }
