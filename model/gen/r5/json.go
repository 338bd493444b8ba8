package r5

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/healthwire/fhir-sdk-go/model"
)

// primitiveElement carries the id/extension sibling of a primitive value,
// i.e. the content of a "_field" object on the wire.
type primitiveElement struct {
	Id        *string
	Extension []Extension
}

// jsonReader wraps a streaming JSON decoder with the decode mode and the
// path of the element currently being decoded. Decoding is fail-fast: the
// first structural or type error aborts with a single error identifying
// the offending field path.
type jsonReader struct {
	d      *json.Decoder
	strict bool
	segs   []string
	names  []string
}

func newJSONReader(r io.Reader, strict bool) *jsonReader {
	d := json.NewDecoder(r)
	// Numbers must surface with their original lexical form so decimals
	// keep trailing significant digits.
	d.UseNumber()
	return &jsonReader{d: d, strict: strict}
}

func (d *jsonReader) push(seg string) {
	d.segs = append(d.segs, seg)
	d.names = append(d.names, seg)
}

func (d *jsonReader) pop() {
	d.segs = d.segs[:len(d.segs)-1]
	d.names = d.names[:len(d.names)-1]
}

// index decorates the innermost path segment with an array index.
func (d *jsonReader) index(i int) {
	d.segs[len(d.segs)-1] = fmt.Sprintf("%s[%d]", d.names[len(d.names)-1], i)
}

func (d *jsonReader) path() string {
	return strings.Join(d.segs, ".")
}

func (d *jsonReader) errf(kind model.DecodeErrorKind, format string, args ...any) error {
	return &model.DecodeError{Kind: kind, Path: d.path(), Detail: fmt.Sprintf(format, args...)}
}

func (d *jsonReader) wrap(kind model.DecodeErrorKind, err error) error {
	var de *model.DecodeError
	if ok := asDecodeError(err, &de); ok {
		return err
	}
	return &model.DecodeError{Kind: kind, Path: d.path(), Cause: err}
}

func asDecodeError(err error, target **model.DecodeError) bool {
	de, ok := err.(*model.DecodeError)
	if ok {
		*target = de
	}
	return ok
}

func (d *jsonReader) token() (json.Token, error) {
	t, err := d.d.Token()
	if err != nil {
		return nil, d.wrap(model.TypeMismatch, err)
	}
	return t, nil
}

// object consumes one JSON object, invoking field for each member with the
// current path extended by the field name.
func (d *jsonReader) object(typeName string, field func(f string) error) error {
	t, err := d.token()
	if err != nil {
		return err
	}
	if t != json.Delim('{') {
		return d.errf(model.TypeMismatch, "expected '{' in %s, got %v", typeName, t)
	}
	for d.d.More() {
		t, err := d.token()
		if err != nil {
			return err
		}
		f, ok := t.(string)
		if !ok {
			return d.errf(model.TypeMismatch, "expected field name in %s, got %v", typeName, t)
		}
		d.push(f)
		err = field(f)
		d.pop()
		if err != nil {
			return err
		}
	}
	if _, err := d.token(); err != nil {
		return err
	}
	return nil
}

// array consumes one JSON array, invoking item per element with the
// innermost path segment decorated by the element index.
func (d *jsonReader) array(typeName string, item func(i int) error) error {
	t, err := d.token()
	if err != nil {
		return err
	}
	if t != json.Delim('[') {
		return d.errf(model.TypeMismatch, "expected '[' in %s, got %v", typeName, t)
	}
	for i := 0; d.d.More(); i++ {
		d.index(i)
		if err := item(i); err != nil {
			return err
		}
	}
	if _, err := d.token(); err != nil {
		return err
	}
	return nil
}

// skip consumes and discards the next JSON value.
func (d *jsonReader) skip() error {
	var raw json.RawMessage
	if err := d.d.Decode(&raw); err != nil {
		return d.wrap(model.TypeMismatch, err)
	}
	return nil
}

// raw consumes the next JSON value without interpreting it.
func (d *jsonReader) raw() (json.RawMessage, error) {
	var raw json.RawMessage
	if err := d.d.Decode(&raw); err != nil {
		return nil, d.wrap(model.TypeMismatch, err)
	}
	return raw, nil
}

// unknown handles a wire field not declared by the target type. Lenient
// decoding skips the value; strict decoding fails.
func (d *jsonReader) unknown(typeName, f string) error {
	if d.strict {
		return d.errf(model.UnknownField, "unknown field %q in %s", f, typeName)
	}
	return d.skip()
}

func (d *jsonReader) missing(typeName, f string) error {
	d.push(f)
	err := d.errf(model.MissingRequiredField, "required field %q missing in %s", f, typeName)
	d.pop()
	return err
}

// expectResourceType consumes the resourceType discriminator and verifies
// it names the decoded type.
func (d *jsonReader) expectResourceType(typeName string) error {
	t, err := d.token()
	if err != nil {
		return err
	}
	s, ok := t.(string)
	if !ok {
		return d.errf(model.TypeMismatch, "expected string resourceType, got %v", t)
	}
	if s != typeName {
		return d.errf(model.TypeMismatch, "resourceType %q does not match %s", s, typeName)
	}
	return nil
}

// decodeString consumes a string value node, tolerating null.
func (d *jsonReader) decodeString() (*string, error) {
	t, err := d.token()
	if err != nil {
		return nil, err
	}
	switch v := t.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	default:
		return nil, d.errf(model.TypeMismatch, "expected string, got %v", t)
	}
}

// jsonWriter is the encode mirror: field emission order follows the
// canonical declared order of each type, absent optional fields are
// omitted, and values are never HTML-escaped. The first write error is
// latched and all further writes are no-ops.
type jsonWriter struct {
	w     io.Writer
	comma []bool
	err   error
}

func newJSONWriter(w io.Writer) *jsonWriter {
	return &jsonWriter{w: w}
}

func (w *jsonWriter) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *jsonWriter) begin(delim string) {
	w.raw(delim)
	w.comma = append(w.comma, false)
}

func (w *jsonWriter) end(delim string) {
	w.raw(delim)
	w.comma = w.comma[:len(w.comma)-1]
}

func (w *jsonWriter) sep() {
	if w.comma[len(w.comma)-1] {
		w.raw(",")
	} else {
		w.comma[len(w.comma)-1] = true
	}
}

func (w *jsonWriter) field(name string) {
	w.sep()
	w.raw(`"` + name + `":`)
}

func (w *jsonWriter) item() {
	w.sep()
}

func (w *jsonWriter) value(v any) {
	if w.err != nil {
		return
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		w.err = err
		return
	}
	_, w.err = w.w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}

// primitive is the encode contract of every primitive type.
type primitive interface {
	hasValue() bool
	encodeValue(w *jsonWriter)
	pair() (primitiveElement, bool)
}

// primitiveDecoder is the decode contract of every primitive type.
type primitiveDecoder interface {
	decodeValue(d *jsonReader) error
	setElement(e primitiveElement)
}

// elementMarshaler is implemented by complex datatypes and backbones.
type elementMarshaler interface {
	marshalJSON(w *jsonWriter)
}

// elementDecoder is the pointer-receiver decode contract of complex types.
type elementDecoder interface {
	unmarshalJSON(d *jsonReader) error
}

func pairOf(id *string, ext []Extension) (primitiveElement, bool) {
	if id == nil && len(ext) == 0 {
		return primitiveElement{}, false
	}
	return primitiveElement{Id: id, Extension: ext}, true
}

func present(p primitive) bool {
	if p.hasValue() {
		return true
	}
	_, ok := p.pair()
	return ok
}

// writePrimitive emits the value node and, when an id/extension pair is
// attached, the "_field" sibling.
func writePrimitive(w *jsonWriter, name string, p primitive) {
	if p.hasValue() {
		w.field(name)
		p.encodeValue(w)
	}
	if pe, ok := p.pair(); ok {
		w.field("_" + name)
		pe.marshalJSON(w)
	}
}

func writePrimitivePtr[T primitive](w *jsonWriter, name string, p *T) {
	if p != nil {
		writePrimitive(w, name, *p)
	}
}

// writePrimitiveSlice emits a value array (null padded where only a pair is
// set) and a "_field" array when any element carries a pair.
func writePrimitiveSlice[T primitive](w *jsonWriter, name string, s []T) {
	if len(s) == 0 {
		return
	}
	anyValue, anyPair := false, false
	for _, e := range s {
		if e.hasValue() {
			anyValue = true
		}
		if _, ok := e.pair(); ok {
			anyPair = true
		}
	}
	if anyValue {
		w.field(name)
		w.begin("[")
		for _, e := range s {
			w.item()
			if e.hasValue() {
				e.encodeValue(w)
			} else {
				w.raw("null")
			}
		}
		w.end("]")
	}
	if anyPair {
		w.field("_" + name)
		w.begin("[")
		for _, e := range s {
			w.item()
			if pe, ok := e.pair(); ok {
				pe.marshalJSON(w)
			} else {
				w.raw("null")
			}
		}
		w.end("]")
	}
}

func writeElement(w *jsonWriter, name string, e elementMarshaler) {
	w.field(name)
	e.marshalJSON(w)
}

func writeElementPtr[T any, PT interface {
	*T
	elementMarshaler
}](w *jsonWriter, name string, p *T) {
	if p != nil {
		w.field(name)
		PT(p).marshalJSON(w)
	}
}

func writeElementSlice[T elementMarshaler](w *jsonWriter, name string, s []T) {
	if len(s) == 0 {
		return
	}
	w.field(name)
	w.begin("[")
	for _, e := range s {
		w.item()
		e.marshalJSON(w)
	}
	w.end("]")
}

func decodePrimitive[T any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, dst *T) error {
	return PT(dst).decodeValue(d)
}

func decodePrimitivePtr[T any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, dst **T) error {
	if *dst == nil {
		*dst = new(T)
	}
	return PT(*dst).decodeValue(d)
}

func decodePair[T any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, dst *T) error {
	var pe primitiveElement
	if err := pe.unmarshalJSON(d); err != nil {
		return err
	}
	PT(dst).setElement(pe)
	return nil
}

func decodePairPtr[T any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, dst **T) error {
	if *dst == nil {
		*dst = new(T)
	}
	return decodePair[T, PT](d, *dst)
}

// decodePrimitiveSlice aligns value nodes by index, padding with empty
// primitives so a later "_field" array can merge in by position.
func decodePrimitiveSlice[T any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, typeName string, dst *[]T) error {
	return d.array(typeName, func(i int) error {
		for len(*dst) <= i {
			var zero T
			*dst = append(*dst, zero)
		}
		return PT(&(*dst)[i]).decodeValue(d)
	})
}

func decodePairSlice[T any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, typeName string, dst *[]T) error {
	return d.array(typeName, func(i int) error {
		for len(*dst) <= i {
			var zero T
			*dst = append(*dst, zero)
		}
		return decodePair[T, PT](d, &(*dst)[i])
	})
}

func decodeElement[T any, PT interface {
	*T
	elementDecoder
}](d *jsonReader, dst *T) error {
	return PT(dst).unmarshalJSON(d)
}

func decodeElementPtr[T any, PT interface {
	*T
	elementDecoder
}](d *jsonReader, dst **T) error {
	if *dst == nil {
		*dst = new(T)
	}
	return PT(*dst).unmarshalJSON(d)
}

func decodeElementSlice[T any, PT interface {
	*T
	elementDecoder
}](d *jsonReader, typeName string, dst *[]T) error {
	return d.array(typeName, func(i int) error {
		var v T
		if err := PT(&v).unmarshalJSON(d); err != nil {
			return err
		}
		*dst = append(*dst, v)
		return nil
	})
}

// decodeChoicePrimitive decodes a "field<Type>" value node into a choice
// slot. A previously decoded pair of the same variant is merged; a
// previously decoded different variant is an error, the wire may name at
// most one variant per choice field.
func decodeChoicePrimitive[T any, I any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, slot *I) error {
	var v T
	if any(*slot) != nil {
		prev, ok := any(*slot).(T)
		if !ok {
			return d.errf(model.InvalidChoiceVariant, "multiple variants populated for choice field")
		}
		v = prev
	}
	if err := PT(&v).decodeValue(d); err != nil {
		return err
	}
	*slot = any(v).(I)
	return nil
}

// decodeChoicePair decodes a "_field<Type>" pair node into a choice slot.
func decodeChoicePair[T any, I any, PT interface {
	*T
	primitiveDecoder
}](d *jsonReader, slot *I) error {
	var v T
	if any(*slot) != nil {
		prev, ok := any(*slot).(T)
		if !ok {
			return d.errf(model.InvalidChoiceVariant, "multiple variants populated for choice field")
		}
		v = prev
	}
	if err := decodePair[T, PT](d, &v); err != nil {
		return err
	}
	*slot = any(v).(I)
	return nil
}

// decodeChoiceElement decodes a complex "field<Type>" node into a choice slot.
func decodeChoiceElement[T any, I any, PT interface {
	*T
	elementDecoder
}](d *jsonReader, slot *I) error {
	if any(*slot) != nil {
		return d.errf(model.InvalidChoiceVariant, "multiple variants populated for choice field")
	}
	var v T
	if err := PT(&v).unmarshalJSON(d); err != nil {
		return err
	}
	*slot = any(v).(I)
	return nil
}

func (r primitiveElement) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	if len(r.Extension) > 0 {
		writeElementSlice(w, "extension", r.Extension)
	}
	w.end("}")
}

func (r *primitiveElement) unmarshalJSON(d *jsonReader) error {
	t, err := d.token()
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	if t != json.Delim('{') {
		return d.errf(model.TypeMismatch, "expected '{' in primitive element, got %v", t)
	}
	for d.d.More() {
		t, err := d.token()
		if err != nil {
			return err
		}
		f, ok := t.(string)
		if !ok {
			return d.errf(model.TypeMismatch, "expected field name in primitive element, got %v", t)
		}
		d.push(f)
		switch f {
		case "id":
			r.Id, err = d.decodeString()
		case "extension":
			err = decodeElementSlice(d, "Extension", &r.Extension)
		default:
			err = d.unknown("primitive element", f)
		}
		d.pop()
		if err != nil {
			return err
		}
	}
	if _, err := d.token(); err != nil {
		return err
	}
	return nil
}

// marshalResource serializes any resource of this release.
func marshalResource(r model.Resource, w *jsonWriter) {
	if w.err != nil {
		return
	}
	w.err = ContainedResource{r}.marshalTo(w)
}
