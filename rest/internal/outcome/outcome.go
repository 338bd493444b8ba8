// Package outcome builds and inspects OperationOutcome resources across
// releases.
package outcome

import (
	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/model/gen/r4"
	"github.com/healthwire/fhir-sdk-go/model/gen/r5"
)

// Issue is a release-independent view of one OperationOutcome issue.
type Issue struct {
	Severity    string
	Code        string
	Diagnostics string
}

// Issues extracts the issue list of an OperationOutcome of either
// release. A nil or non-OperationOutcome resource yields nil.
func Issues(res model.Resource) []Issue {
	switch oo := res.(type) {
	case r4.OperationOutcome:
		issues := make([]Issue, 0, len(oo.Issue))
		for _, i := range oo.Issue {
			issues = append(issues, Issue{
				Severity:    stringValue(i.Severity.Value),
				Code:        stringValue(i.Code.Value),
				Diagnostics: optValue(i.Diagnostics),
			})
		}
		return issues
	case r5.OperationOutcome:
		issues := make([]Issue, 0, len(oo.Issue))
		for _, i := range oo.Issue {
			issues = append(issues, Issue{
				Severity:    stringValue(i.Severity.Value),
				Code:        stringValue(i.Code.Value),
				Diagnostics: diagValue(i.Diagnostics),
			})
		}
		return issues
	default:
		return nil
	}
}

// IsOperationOutcome reports whether the resource is an OperationOutcome
// of either release.
func IsOperationOutcome(res model.Resource) bool {
	switch res.(type) {
	case r4.OperationOutcome, r5.OperationOutcome:
		return true
	default:
		return false
	}
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optValue(s *r4.String) string {
	if s == nil {
		return ""
	}
	return stringValue(s.Value)
}

func diagValue(s *r5.String) string {
	if s == nil {
		return ""
	}
	return stringValue(s.Value)
}
