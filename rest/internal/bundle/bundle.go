// Package bundle extracts entries and links from Bundle resources of
// either release.
package bundle

import (
	"fmt"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/model/gen/r4"
	"github.com/healthwire/fhir-sdk-go/model/gen/r5"
)

// Entry is a release-independent view of one bundle entry.
type Entry struct {
	FullUrl    string
	Resource   model.Resource
	SearchMode string
	// Response fields of batch/transaction results.
	Status   string
	Location string
	Etag     string
}

// Entries lists the entries of a Bundle of either release.
func Entries(res model.Resource) ([]Entry, error) {
	switch b := res.(type) {
	case r4.Bundle:
		entries := make([]Entry, 0, len(b.Entry))
		for _, e := range b.Entry {
			entry := Entry{Resource: e.Resource}
			if e.FullUrl != nil && e.FullUrl.Value != nil {
				entry.FullUrl = *e.FullUrl.Value
			}
			if e.Search != nil && e.Search.Mode != nil && e.Search.Mode.Value != nil {
				entry.SearchMode = *e.Search.Mode.Value
			}
			if e.Response != nil {
				if e.Response.Status.Value != nil {
					entry.Status = *e.Response.Status.Value
				}
				if e.Response.Location != nil && e.Response.Location.Value != nil {
					entry.Location = *e.Response.Location.Value
				}
				if e.Response.Etag != nil && e.Response.Etag.Value != nil {
					entry.Etag = *e.Response.Etag.Value
				}
			}
			entries = append(entries, entry)
		}
		return entries, nil
	case r5.Bundle:
		entries := make([]Entry, 0, len(b.Entry))
		for _, e := range b.Entry {
			entry := Entry{Resource: e.Resource}
			if e.FullUrl != nil && e.FullUrl.Value != nil {
				entry.FullUrl = *e.FullUrl.Value
			}
			if e.Search != nil && e.Search.Mode != nil && e.Search.Mode.Value != nil {
				entry.SearchMode = *e.Search.Mode.Value
			}
			if e.Response != nil {
				if e.Response.Status.Value != nil {
					entry.Status = *e.Response.Status.Value
				}
				if e.Response.Location != nil && e.Response.Location.Value != nil {
					entry.Location = *e.Response.Location.Value
				}
				if e.Response.Etag != nil && e.Response.Etag.Value != nil {
					entry.Etag = *e.Response.Etag.Value
				}
			}
			entries = append(entries, entry)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("expected Bundle, got %s", res.ResourceType())
	}
}

// Link returns the URL of the link with the given relation, or "".
func Link(res model.Resource, relation string) (string, error) {
	switch b := res.(type) {
	case r4.Bundle:
		for _, l := range b.Link {
			if l.Relation.Value != nil && *l.Relation.Value == relation && l.Url.Value != nil {
				return *l.Url.Value, nil
			}
		}
		return "", nil
	case r5.Bundle:
		for _, l := range b.Link {
			if l.Relation.Value != nil && *l.Relation.Value == relation && l.Url.Value != nil {
				return *l.Url.Value, nil
			}
		}
		return "", nil
	default:
		return "", fmt.Errorf("expected Bundle, got %s", res.ResourceType())
	}
}
