// Package assert holds shared test assertions.
package assert

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// JSONEqual fails the test when the two JSON documents differ
// structurally. Key order is not significant.
func JSONEqual(t *testing.T, expected, actual string) {
	t.Helper()
	var want, got any
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatalf("invalid expected JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(actual), &got); err != nil {
		t.Fatalf("invalid actual JSON: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-expected +actual):\n%s", diff)
	}
}
