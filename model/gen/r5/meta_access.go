package r5

import (
	"github.com/healthwire/fhir-sdk-go/model"
)

// ResourceVersionId returns the meta.versionId of a resource of this
// release, when set.
func ResourceVersionId(res model.Resource) (string, bool) {
	var meta *Meta
	switch r := res.(type) {
	case Patient:
		meta = r.Meta
	case Observation:
		meta = r.Meta
	case OperationOutcome:
		meta = r.Meta
	case Bundle:
		meta = r.Meta
	case Parameters:
		meta = r.Meta
	default:
		return "", false
	}
	if meta == nil || meta.VersionId == nil || meta.VersionId.Value == nil {
		return "", false
	}
	return *meta.VersionId.Value, true
}
