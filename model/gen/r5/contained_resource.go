package r5

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/buger/jsonparser"

	"github.com/healthwire/fhir-sdk-go/model"
)

// ContainedResource wraps any resource of this release so it can be
// decoded from its resourceType discriminator.
type ContainedResource struct {
	model.Resource
}

func (cr ContainedResource) marshalTo(w *jsonWriter) error {
	switch r := cr.Resource.(type) {
	case Patient:
		r.marshalJSON(w)
	case Observation:
		r.marshalJSON(w)
	case OperationOutcome:
		r.marshalJSON(w)
	case Bundle:
		r.marshalJSON(w)
	case Parameters:
		r.marshalJSON(w)
	case ContainedResource:
		return r.marshalTo(w)
	default:
		return &model.DecodeError{
			Kind:   model.UnsupportedResourceType,
			Detail: "cannot marshal resource of type " + cr.Resource.ResourceType(),
		}
	}
	return w.err
}

func (cr *ContainedResource) unmarshalJSON(d *jsonReader) error {
	raw, err := d.raw()
	if err != nil {
		return err
	}
	name, err := jsonparser.GetString(raw, "resourceType")
	if err != nil {
		return d.errf(model.UnsupportedResourceType, "missing resourceType discriminator")
	}

	// Re-decode from the buffered value with the parent's mode and path.
	sub := &jsonReader{
		d:      json.NewDecoder(bytes.NewReader(raw)),
		strict: d.strict,
		segs:   slices.Clone(d.segs),
		names:  slices.Clone(d.names),
	}
	sub.d.UseNumber()

	switch name {
	case "Patient":
		var r Patient
		if err := r.unmarshalJSON(sub); err != nil {
			return err
		}
		cr.Resource = r
	case "Observation":
		var r Observation
		if err := r.unmarshalJSON(sub); err != nil {
			return err
		}
		cr.Resource = r
	case "OperationOutcome":
		var r OperationOutcome
		if err := r.unmarshalJSON(sub); err != nil {
			return err
		}
		cr.Resource = r
	case "Bundle":
		var r Bundle
		if err := r.unmarshalJSON(sub); err != nil {
			return err
		}
		cr.Resource = r
	case "Parameters":
		var r Parameters
		if err := r.unmarshalJSON(sub); err != nil {
			return err
		}
		cr.Resource = r
	default:
		return d.errf(model.UnsupportedResourceType, "unsupported resource type %q", name)
	}
	return nil
}

func writeContained(w *jsonWriter, contained []model.Resource) {
	if len(contained) == 0 {
		return
	}
	w.field("contained")
	w.begin("[")
	for _, c := range contained {
		w.item()
		marshalResource(c, w)
	}
	w.end("]")
}

func decodeContained(d *jsonReader, dst *[]model.Resource) error {
	return d.array("contained", func(i int) error {
		var cr ContainedResource
		if err := cr.unmarshalJSON(d); err != nil {
			return err
		}
		*dst = append(*dst, cr.Resource)
		return nil
	})
}

func decodeResource(d *jsonReader, dst *model.Resource) error {
	var cr ContainedResource
	if err := cr.unmarshalJSON(d); err != nil {
		return err
	}
	*dst = cr.Resource
	return nil
}

// MarshalResource serializes any resource of this release to FHIR JSON.
func MarshalResource(r model.Resource) ([]byte, error) {
	var buf bytes.Buffer
	w := newJSONWriter(&buf)
	if err := (ContainedResource{r}).marshalTo(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalResource decodes a resource of this release from FHIR JSON,
// dispatching on the resourceType discriminator. Unknown fields are
// skipped.
func UnmarshalResource(b []byte) (model.Resource, error) {
	return unmarshalResource(b, false)
}

// UnmarshalResourceStrict is UnmarshalResource with unknown fields
// rejected.
func UnmarshalResourceStrict(b []byte) (model.Resource, error) {
	return unmarshalResource(b, true)
}

func unmarshalResource(b []byte, strict bool) (model.Resource, error) {
	d := newJSONReader(bytes.NewReader(b), strict)
	var cr ContainedResource
	if err := cr.unmarshalJSON(d); err != nil {
		return nil, err
	}
	return cr.Resource, nil
}
