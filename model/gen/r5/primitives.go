package r5

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/healthwire/fhir-sdk-go/model"
)

// Lexical forms per https://hl7.org/fhir/R4/datatypes.html. Date and time
// primitives keep their original string so partial precision survives the
// round trip.
var (
	dateRegexp     = regexp.MustCompile(`^([0-9]([0-9]([0-9][1-9]|[1-9]0)|[1-9]00)|[1-9]000)(-(0[1-9]|1[0-2])(-(0[1-9]|[1-2][0-9]|3[0-1]))?)?$`)
	dateTimeRegexp = regexp.MustCompile(`^([0-9]([0-9]([0-9][1-9]|[1-9]0)|[1-9]00)|[1-9]000)(-(0[1-9]|1[0-2])(-(0[1-9]|[1-2][0-9]|3[0-1])(T([01][0-9]|2[0-3]):[0-5][0-9]:([0-5][0-9]|60)(\.[0-9]+)?(Z|(\+|-)((0[0-9]|1[0-3]):[0-5][0-9]|14:00)))?)?)?$`)
	instantRegexp  = regexp.MustCompile(`^([0-9]([0-9]([0-9][1-9]|[1-9]0)|[1-9]00)|[1-9]000)-(0[1-9]|1[0-2])-(0[1-9]|[1-2][0-9]|3[0-1])T([01][0-9]|2[0-3]):[0-5][0-9]:([0-5][0-9]|60)(\.[0-9]+)?(Z|(\+|-)((0[0-9]|1[0-3]):[0-5][0-9]|14:00))$`)
	timeRegexp     = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]:([0-5][0-9]|60)(\.[0-9]+)?$`)
)

// Boolean represents the FHIR boolean primitive.
type Boolean struct {
	Id        *string
	Extension []Extension
	Value     *bool
}

func (r Boolean) hasValue() bool                   { return r.Value != nil }
func (r Boolean) encodeValue(w *jsonWriter)        { w.value(r.Value) }
func (r Boolean) pair() (primitiveElement, bool)   { return pairOf(r.Id, r.Extension) }
func (r *Boolean) setElement(e primitiveElement)   { r.Id, r.Extension = e.Id, e.Extension }
func (r *Boolean) decodeValue(d *jsonReader) error {
	t, err := d.token()
	if err != nil {
		return err
	}
	switch v := t.(type) {
	case nil:
		return nil
	case bool:
		r.Value = &v
		return nil
	default:
		return d.errf(model.TypeMismatch, "expected boolean, got %v", t)
	}
}

// Integer represents the FHIR integer primitive (32 bit signed).
type Integer struct {
	Id        *string
	Extension []Extension
	Value     *int32
}

func (r Integer) hasValue() bool                 { return r.Value != nil }
func (r Integer) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Integer) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Integer) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Integer) decodeValue(d *jsonReader) error {
	v, err := decodeInt(d, 32)
	if err != nil || v == nil {
		return err
	}
	i := int32(*v)
	r.Value = &i
	return nil
}

// UnsignedInt represents the FHIR unsignedInt primitive (>= 0).
type UnsignedInt struct {
	Id        *string
	Extension []Extension
	Value     *uint32
}

func (r UnsignedInt) hasValue() bool                 { return r.Value != nil }
func (r UnsignedInt) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r UnsignedInt) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *UnsignedInt) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *UnsignedInt) decodeValue(d *jsonReader) error {
	v, err := decodeInt(d, 32)
	if err != nil || v == nil {
		return err
	}
	if *v < 0 {
		return d.errf(model.InvalidPrimitiveFormat, "unsignedInt must not be negative, got %d", *v)
	}
	u := uint32(*v)
	r.Value = &u
	return nil
}

// PositiveInt represents the FHIR positiveInt primitive (>= 1).
type PositiveInt struct {
	Id        *string
	Extension []Extension
	Value     *uint32
}

func (r PositiveInt) hasValue() bool                 { return r.Value != nil }
func (r PositiveInt) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r PositiveInt) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *PositiveInt) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *PositiveInt) decodeValue(d *jsonReader) error {
	v, err := decodeInt(d, 32)
	if err != nil || v == nil {
		return err
	}
	if *v < 1 {
		return d.errf(model.InvalidPrimitiveFormat, "positiveInt must be positive, got %d", *v)
	}
	u := uint32(*v)
	r.Value = &u
	return nil
}

func decodeInt(d *jsonReader, bits int) (*int64, error) {
	t, err := d.token()
	if err != nil {
		return nil, err
	}
	switch v := t.(type) {
	case nil:
		return nil, nil
	case json.Number:
		i, err := strconv.ParseInt(string(v), 10, bits)
		if err != nil {
			return nil, d.errf(model.TypeMismatch, "expected integer, got %s", v)
		}
		return &i, nil
	default:
		return nil, d.errf(model.TypeMismatch, "expected integer, got %v", t)
	}
}

// Decimal represents the FHIR decimal primitive. The arbitrary-precision
// representation retains the original digit string, so "100.00" re-encodes
// as "100.00": trailing significant digits are clinically meaningful.
type Decimal struct {
	Id        *string
	Extension []Extension
	Value     *apd.Decimal
}

func (r Decimal) hasValue() bool                 { return r.Value != nil }
func (r Decimal) encodeValue(w *jsonWriter)      { w.raw(r.Value.Text('G')) }
func (r Decimal) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Decimal) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Decimal) decodeValue(d *jsonReader) error {
	t, err := d.token()
	if err != nil {
		return err
	}
	switch v := t.(type) {
	case nil:
		return nil
	case json.Number:
		dec, _, err := apd.NewFromString(string(v))
		if err != nil {
			return d.errf(model.InvalidPrimitiveFormat, "invalid decimal %s", v)
		}
		r.Value = dec
		return nil
	default:
		return d.errf(model.TypeMismatch, "expected number, got %v", t)
	}
}

// String represents the FHIR string primitive.
type String struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r String) hasValue() bool                 { return r.Value != nil }
func (r String) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r String) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *String) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *String) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Uri represents the FHIR uri primitive.
type Uri struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Uri) hasValue() bool                 { return r.Value != nil }
func (r Uri) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Uri) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Uri) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Uri) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Url represents the FHIR url primitive.
type Url struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Url) hasValue() bool                 { return r.Value != nil }
func (r Url) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Url) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Url) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Url) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Canonical represents the FHIR canonical primitive.
type Canonical struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Canonical) hasValue() bool                 { return r.Value != nil }
func (r Canonical) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Canonical) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Canonical) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Canonical) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Code represents the FHIR code primitive.
type Code struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Code) hasValue() bool                 { return r.Value != nil }
func (r Code) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Code) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Code) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Code) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Id represents the FHIR id primitive.
type Id struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Id) hasValue() bool                 { return r.Value != nil }
func (r Id) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Id) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Id) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Id) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Markdown represents the FHIR markdown primitive.
type Markdown struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Markdown) hasValue() bool                 { return r.Value != nil }
func (r Markdown) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Markdown) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Markdown) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Markdown) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil {
		return err
	}
	if v != nil {
		r.Value = v
	}
	return nil
}

// Base64Binary represents the FHIR base64Binary primitive. The value is
// validated against the canonical base64 alphabet and padding on decode.
type Base64Binary struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Base64Binary) hasValue() bool                 { return r.Value != nil }
func (r Base64Binary) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Base64Binary) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Base64Binary) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Base64Binary) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil || v == nil {
		return err
	}
	if _, err := base64.StdEncoding.Strict().DecodeString(*v); err != nil {
		return d.errf(model.InvalidPrimitiveFormat, "invalid base64 %q", *v)
	}
	r.Value = v
	return nil
}

// Bytes returns the decoded binary content.
func (r Base64Binary) Bytes() ([]byte, error) {
	if r.Value == nil {
		return nil, nil
	}
	return base64.StdEncoding.Strict().DecodeString(*r.Value)
}

// Date represents the FHIR date primitive: a year, year-month or full date.
type Date struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Date) hasValue() bool                 { return r.Value != nil }
func (r Date) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Date) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Date) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Date) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil || v == nil {
		return err
	}
	if !dateRegexp.MatchString(*v) {
		return d.errf(model.InvalidPrimitiveFormat, "invalid date %q", *v)
	}
	r.Value = v
	return nil
}

// DateTime represents the FHIR dateTime primitive. Times, when present,
// carry a timezone.
type DateTime struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r DateTime) hasValue() bool                 { return r.Value != nil }
func (r DateTime) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r DateTime) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *DateTime) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *DateTime) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil || v == nil {
		return err
	}
	if !dateTimeRegexp.MatchString(*v) {
		return d.errf(model.InvalidPrimitiveFormat, "invalid dateTime %q", *v)
	}
	r.Value = v
	return nil
}

// Instant represents the FHIR instant primitive: a full timestamp with
// timezone.
type Instant struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Instant) hasValue() bool                 { return r.Value != nil }
func (r Instant) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Instant) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Instant) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Instant) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil || v == nil {
		return err
	}
	if !instantRegexp.MatchString(*v) {
		return d.errf(model.InvalidPrimitiveFormat, "invalid instant %q", *v)
	}
	r.Value = v
	return nil
}

// Time represents the FHIR time primitive: a time of day without timezone.
type Time struct {
	Id        *string
	Extension []Extension
	Value     *string
}

func (r Time) hasValue() bool                 { return r.Value != nil }
func (r Time) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Time) pair() (primitiveElement, bool) { return pairOf(r.Id, r.Extension) }
func (r *Time) setElement(e primitiveElement) { r.Id, r.Extension = e.Id, e.Extension }
func (r *Time) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil || v == nil {
		return err
	}
	if !timeRegexp.MatchString(*v) {
		return d.errf(model.InvalidPrimitiveFormat, "invalid time %q", *v)
	}
	r.Value = v
	return nil
}

// Xhtml represents the FHIR xhtml primitive used by Narrative.div. It
// carries no extensions.
type Xhtml struct {
	Id    *string
	Value string
}

func (r Xhtml) hasValue() bool                 { return r.Value != "" }
func (r Xhtml) encodeValue(w *jsonWriter)      { w.value(r.Value) }
func (r Xhtml) pair() (primitiveElement, bool) { return pairOf(r.Id, nil) }
func (r *Xhtml) setElement(e primitiveElement) { r.Id = e.Id }
func (r *Xhtml) decodeValue(d *jsonReader) error {
	v, err := d.decodeString()
	if err != nil || v == nil {
		return err
	}
	r.Value = *v
	return nil
}
