package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// Bundle is a container for a collection of resources, used for search
// results, history, messages and batch/transaction submissions.
type Bundle struct {
	Id            *Id
	Meta          *Meta
	ImplicitRules *Uri
	Language      *Code
	Identifier    *Identifier
	Type          Code
	Timestamp     *Instant
	Total         *UnsignedInt
	Link          []BundleLink
	Entry         []BundleEntry
	Issues        model.Resource
}

// BundleLink relates the bundle to navigation targets such as the next
// page of a search result.
type BundleLink struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Relation          Code
	Url               Uri
}

// BundleEntry is one resource in the bundle together with search, request
// and response context.
type BundleEntry struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Link              []BundleLink
	FullUrl           *Uri
	Resource          model.Resource
	Search            *BundleEntrySearch
	Request           *BundleEntryRequest
	Response          *BundleEntryResponse
}

// BundleEntrySearch tells how the entry relates to the search that
// produced it.
type BundleEntrySearch struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Mode              *Code
	Score             *Decimal
}

// BundleEntryRequest describes the HTTP action to execute for this entry
// in a batch or transaction.
type BundleEntryRequest struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Method            Code
	Url               Uri
	IfNoneMatch       *String
	IfModifiedSince   *Instant
	IfMatch           *String
	IfNoneExist       *String
}

// BundleEntryResponse carries the outcome of processing this entry in a
// batch or transaction response.
type BundleEntryResponse struct {
	Id                *string
	Extension         []Extension
	ModifierExtension []Extension
	Status            String
	Location          *Uri
	Etag              *String
	LastModified      *Instant
	Outcome           model.Resource
}

func (r Bundle) ResourceType() string {
	return "Bundle"
}

func (r Bundle) ResourceId() (string, bool) {
	if r.Id == nil || r.Id.Value == nil {
		return "", false
	}
	return *r.Id.Value, true
}

func (r Bundle) marshalJSON(w *jsonWriter) {
	w.begin("{")
	w.field("resourceType")
	w.value("Bundle")
	writePrimitivePtr(w, "id", r.Id)
	writeElementPtr(w, "meta", r.Meta)
	writePrimitivePtr(w, "implicitRules", r.ImplicitRules)
	writePrimitivePtr(w, "language", r.Language)
	writeElementPtr(w, "identifier", r.Identifier)
	writePrimitive(w, "type", r.Type)
	writePrimitivePtr(w, "timestamp", r.Timestamp)
	writePrimitivePtr(w, "total", r.Total)
	writeElementSlice(w, "link", r.Link)
	writeElementSlice(w, "entry", r.Entry)
	if r.Issues != nil {
		w.field("issues")
		marshalResource(r.Issues, w)
	}
	w.end("}")
}

func (r *Bundle) unmarshalJSON(d *jsonReader) error {
	seenType := false
	err := d.object("Bundle", func(f string) error {
		switch f {
		case "resourceType":
			return d.expectResourceType("Bundle")
		case "id":
			return decodePrimitivePtr(d, &r.Id)
		case "_id":
			return decodePairPtr(d, &r.Id)
		case "meta":
			return decodeElementPtr(d, &r.Meta)
		case "implicitRules":
			return decodePrimitivePtr(d, &r.ImplicitRules)
		case "_implicitRules":
			return decodePairPtr(d, &r.ImplicitRules)
		case "language":
			return decodePrimitivePtr(d, &r.Language)
		case "_language":
			return decodePairPtr(d, &r.Language)
		case "identifier":
			return decodeElementPtr(d, &r.Identifier)
		case "type":
			seenType = true
			return decodePrimitive(d, &r.Type)
		case "_type":
			return decodePair(d, &r.Type)
		case "timestamp":
			return decodePrimitivePtr(d, &r.Timestamp)
		case "_timestamp":
			return decodePairPtr(d, &r.Timestamp)
		case "total":
			return decodePrimitivePtr(d, &r.Total)
		case "_total":
			return decodePairPtr(d, &r.Total)
		case "link":
			return decodeElementSlice(d, "BundleLink", &r.Link)
		case "entry":
			return decodeElementSlice(d, "BundleEntry", &r.Entry)
		case "issues":
			return decodeResource(d, &r.Issues)
		default:
			return d.unknown("Bundle", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenType {
		return d.missing("Bundle", "type")
	}
	return nil
}

func (r BundleLink) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writePrimitive(w, "relation", r.Relation)
	writePrimitive(w, "url", r.Url)
	w.end("}")
}

func (r *BundleLink) unmarshalJSON(d *jsonReader) error {
	seenRelation, seenUrl := false, false
	err := d.object("BundleLink", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "relation":
			seenRelation = true
			return decodePrimitive(d, &r.Relation)
		case "_relation":
			return decodePair(d, &r.Relation)
		case "url":
			seenUrl = true
			return decodePrimitive(d, &r.Url)
		case "_url":
			return decodePair(d, &r.Url)
		default:
			return d.unknown("BundleLink", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenRelation {
		return d.missing("BundleLink", "relation")
	}
	if !seenUrl {
		return d.missing("BundleLink", "url")
	}
	return nil
}

func (r BundleEntry) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writeElementSlice(w, "link", r.Link)
	writePrimitivePtr(w, "fullUrl", r.FullUrl)
	if r.Resource != nil {
		w.field("resource")
		marshalResource(r.Resource, w)
	}
	writeElementPtr(w, "search", r.Search)
	writeElementPtr(w, "request", r.Request)
	writeElementPtr(w, "response", r.Response)
	w.end("}")
}

func (r *BundleEntry) unmarshalJSON(d *jsonReader) error {
	return d.object("BundleEntry", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "link":
			return decodeElementSlice(d, "BundleLink", &r.Link)
		case "fullUrl":
			return decodePrimitivePtr(d, &r.FullUrl)
		case "_fullUrl":
			return decodePairPtr(d, &r.FullUrl)
		case "resource":
			return decodeResource(d, &r.Resource)
		case "search":
			return decodeElementPtr(d, &r.Search)
		case "request":
			return decodeElementPtr(d, &r.Request)
		case "response":
			return decodeElementPtr(d, &r.Response)
		default:
			return d.unknown("BundleEntry", f)
		}
	})
}

func (r BundleEntrySearch) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writePrimitivePtr(w, "mode", r.Mode)
	writePrimitivePtr(w, "score", r.Score)
	w.end("}")
}

func (r *BundleEntrySearch) unmarshalJSON(d *jsonReader) error {
	return d.object("BundleEntrySearch", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "mode":
			return decodePrimitivePtr(d, &r.Mode)
		case "_mode":
			return decodePairPtr(d, &r.Mode)
		case "score":
			return decodePrimitivePtr(d, &r.Score)
		case "_score":
			return decodePairPtr(d, &r.Score)
		default:
			return d.unknown("BundleEntrySearch", f)
		}
	})
}

func (r BundleEntryRequest) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writePrimitive(w, "method", r.Method)
	writePrimitive(w, "url", r.Url)
	writePrimitivePtr(w, "ifNoneMatch", r.IfNoneMatch)
	writePrimitivePtr(w, "ifModifiedSince", r.IfModifiedSince)
	writePrimitivePtr(w, "ifMatch", r.IfMatch)
	writePrimitivePtr(w, "ifNoneExist", r.IfNoneExist)
	w.end("}")
}

func (r *BundleEntryRequest) unmarshalJSON(d *jsonReader) error {
	seenMethod, seenUrl := false, false
	err := d.object("BundleEntryRequest", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "method":
			seenMethod = true
			return decodePrimitive(d, &r.Method)
		case "_method":
			return decodePair(d, &r.Method)
		case "url":
			seenUrl = true
			return decodePrimitive(d, &r.Url)
		case "_url":
			return decodePair(d, &r.Url)
		case "ifNoneMatch":
			return decodePrimitivePtr(d, &r.IfNoneMatch)
		case "_ifNoneMatch":
			return decodePairPtr(d, &r.IfNoneMatch)
		case "ifModifiedSince":
			return decodePrimitivePtr(d, &r.IfModifiedSince)
		case "_ifModifiedSince":
			return decodePairPtr(d, &r.IfModifiedSince)
		case "ifMatch":
			return decodePrimitivePtr(d, &r.IfMatch)
		case "_ifMatch":
			return decodePairPtr(d, &r.IfMatch)
		case "ifNoneExist":
			return decodePrimitivePtr(d, &r.IfNoneExist)
		case "_ifNoneExist":
			return decodePairPtr(d, &r.IfNoneExist)
		default:
			return d.unknown("BundleEntryRequest", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenMethod {
		return d.missing("BundleEntryRequest", "method")
	}
	if !seenUrl {
		return d.missing("BundleEntryRequest", "url")
	}
	return nil
}

func (r BundleEntryResponse) marshalJSON(w *jsonWriter) {
	w.begin("{")
	if r.Id != nil {
		w.field("id")
		w.value(*r.Id)
	}
	writeElementSlice(w, "extension", r.Extension)
	writeElementSlice(w, "modifierExtension", r.ModifierExtension)
	writePrimitive(w, "status", r.Status)
	writePrimitivePtr(w, "location", r.Location)
	writePrimitivePtr(w, "etag", r.Etag)
	writePrimitivePtr(w, "lastModified", r.LastModified)
	if r.Outcome != nil {
		w.field("outcome")
		marshalResource(r.Outcome, w)
	}
	w.end("}")
}

func (r *BundleEntryResponse) unmarshalJSON(d *jsonReader) error {
	seenStatus := false
	err := d.object("BundleEntryResponse", func(f string) error {
		switch f {
		case "id":
			var err error
			r.Id, err = d.decodeString()
			return err
		case "extension":
			return decodeElementSlice(d, "Extension", &r.Extension)
		case "modifierExtension":
			return decodeElementSlice(d, "Extension", &r.ModifierExtension)
		case "status":
			seenStatus = true
			return decodePrimitive(d, &r.Status)
		case "_status":
			return decodePair(d, &r.Status)
		case "location":
			return decodePrimitivePtr(d, &r.Location)
		case "_location":
			return decodePairPtr(d, &r.Location)
		case "etag":
			return decodePrimitivePtr(d, &r.Etag)
		case "_etag":
			return decodePairPtr(d, &r.Etag)
		case "lastModified":
			return decodePrimitivePtr(d, &r.LastModified)
		case "_lastModified":
			return decodePairPtr(d, &r.LastModified)
		case "outcome":
			return decodeResource(d, &r.Outcome)
		default:
			return d.unknown("BundleEntryResponse", f)
		}
	})
	if err != nil {
		return err
	}
	if !seenStatus {
		return d.missing("BundleEntryResponse", "status")
	}
	return nil
}
