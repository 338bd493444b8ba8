package model

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Element is any element in the FHIR model.
//
// This includes Resources, Datatypes and BackboneElements.
type Element interface {
	// MemSize returns the approximate size of the element in memory, in bytes.
	MemSize() int
}

// Resource is any FHIR Resource.
type Resource interface {
	Element
	ResourceType() string
	ResourceId() (string, bool)
}

// Release is a FHIR release version.
//
// The active release is selected at compile time by instantiating generic
// components (codec entry points, the REST client) with one of the concrete
// marker types below. The interface is sealed; new releases can only be
// added inside this module, which keeps release dispatch exhaustive.
type Release interface {
	sealed()
}

// R4 selects FHIR release R4 (4.0).
type R4 struct{}

// R5 selects FHIR release R5 (5.0).
type R5 struct{}

func (R4) sealed() {}
func (R5) sealed() {}

// ReleaseName returns the canonical name of the release, e.g. "R4".
func ReleaseName[R Release]() string {
	var r R
	switch any(r).(type) {
	case R4:
		return "R4"
	case R5:
		return "R5"
	default:
		// Unreachable as long as Release stays sealed.
		panic(fmt.Sprintf("unsupported release %T", r))
	}
}

// MemSize computes the approximate memory footprint of a model value in
// bytes, following pointers, slices, maps and strings. The release packages
// use it to implement the Element interface with a one-line method per type.
func MemSize(v any) int {
	return memSize(reflect.ValueOf(v))
}

func memSize(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Invalid:
		return 0
	case reflect.Pointer:
		if v.IsNil() {
			return int(unsafe.Sizeof(uintptr(0)))
		}
		return int(unsafe.Sizeof(uintptr(0))) + memSize(v.Elem())
	case reflect.Slice:
		size := int(v.Type().Size())
		for i := 0; i < v.Len(); i++ {
			size += memSize(v.Index(i))
		}
		return size
	case reflect.Map:
		size := int(v.Type().Size())
		iter := v.MapRange()
		for iter.Next() {
			size += memSize(iter.Key()) + memSize(iter.Value())
		}
		return size
	case reflect.String:
		return int(v.Type().Size()) + v.Len()
	case reflect.Struct:
		size := 0
		for i := 0; i < v.NumField(); i++ {
			size += memSize(v.Field(i))
		}
		return size
	case reflect.Interface:
		return int(v.Type().Size()) + memSize(v.Elem())
	default:
		return int(v.Type().Size())
	}
}
