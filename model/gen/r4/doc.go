// Package r4 provides the FHIR R4 resource and datatype shapes together
// with their JSON codec and builders.
//
// Decoding is lenient by default: unknown fields are skipped. The
// *Strict entry points reject them instead.
package r4
