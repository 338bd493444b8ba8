package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/healthwire/fhir-sdk-go/model/gen/r4"
	"github.com/healthwire/fhir-sdk-go/search"
	"github.com/healthwire/fhir-sdk-go/utils/ptr"
)

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return u
}

func newTestClient(t *testing.T, handler http.Handler) *ClientR4 {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &ClientR4{BaseURL: mustURL(t, server.URL), Client: server.Client()}
}

var testBackoff = BackoffPolicy{
	MaxAttempts: 3,
	BaseDelay:   time.Millisecond,
	MaxDelay:    5 * time.Millisecond,
	Multiplier:  2,
}

func TestClientRead(t *testing.T) {
	var gotPath, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))

	res, err := client.Read(context.Background(), "Patient", "example")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotPath != "/Patient/example" {
		t.Errorf("path = %q, want /Patient/example", gotPath)
	}
	if gotAccept != "application/fhir+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	patient, ok := res.(r4.Patient)
	if !ok {
		t.Fatalf("got %T, want r4.Patient", res)
	}
	if id, _ := patient.ResourceId(); id != "example" {
		t.Errorf("id = %q, want example", id)
	}
}

func TestClientVersionedRead(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))

	if _, err := client.VersionedRead(context.Background(), "Patient", "example", "3"); err != nil {
		t.Fatalf("VersionedRead: %v", err)
	}
	if gotPath != "/Patient/example/_history/3" {
		t.Errorf("path = %q, want /Patient/example/_history/3", gotPath)
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	var attempts []Attempt
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))
	client.Backoff = testBackoff
	client.OnAttempt = func(a Attempt) { attempts = append(attempts, a) }

	if _, err := client.Read(context.Background(), "Patient", "example"); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
	if len(attempts) != 3 {
		t.Fatalf("attempts reported = %d, want 3", len(attempts))
	}
	if attempts[0].Status != http.StatusServiceUnavailable || attempts[2].Status != http.StatusOK {
		t.Errorf("attempt statuses = %d, %d, %d", attempts[0].Status, attempts[1].Status, attempts[2].Status)
	}
}

func TestClientExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	client.Backoff = testBackoff

	_, err := client.Read(context.Background(), "Patient", "example")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if transportErr.Attempts != 3 || transportErr.LastStatus != http.StatusBadGateway {
		t.Errorf("TransportError = %+v", transportErr)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{
			"resourceType": "OperationOutcome",
			"issue": [{"severity": "error", "code": "not-found", "diagnostics": "Patient example is unknown"}]
		}`)
	}))
	client.Backoff = testBackoff

	_, err := client.Read(context.Background(), "Patient", "example")
	var fhirErr *FhirError
	if !errors.As(err, &fhirErr) {
		t.Fatalf("err = %v, want *FhirError", err)
	}
	if fhirErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fhirErr.StatusCode)
	}
	if len(fhirErr.Issues) != 1 || fhirErr.Issues[0].Code != "not-found" {
		t.Errorf("Issues = %+v", fhirErr.Issues)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1 (4xx must not be retried)", got)
	}
}

func TestClientCreateSurfacesTransientOutcome(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{
			"resourceType": "OperationOutcome",
			"issue": [{"severity": "error", "code": "throttled", "diagnostics": "try again later"}]
		}`)
	}))
	client.Backoff = testBackoff

	_, err := client.Create(context.Background(), r4.Patient{})
	var fhirErr *FhirError
	if !errors.As(err, &fhirErr) {
		t.Fatalf("err = %v, want *FhirError", err)
	}
	if fhirErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", fhirErr.StatusCode)
	}
	if len(fhirErr.Issues) != 1 || fhirErr.Issues[0].Code != "throttled" {
		t.Errorf("Issues = %+v", fhirErr.Issues)
	}
	// Create is not idempotent without If-None-Exist; no retry happens.
	if got := calls.Load(); got != 1 {
		t.Errorf("server calls = %d, want 1", got)
	}
}

func TestClientProtocolError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `<html>denied</html>`)
	}))

	_, err := client.Read(context.Background(), "Patient", "example")
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("err = %v, want *ProtocolError", err)
	}
	if protoErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", protoErr.StatusCode)
	}
}

func TestClientCreate(t *testing.T) {
	var gotMethod, gotPath, gotPrefer, gotContentType string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotPrefer = r.Header.Get("Prefer")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Location", "/Patient/123/_history/1")
		w.Header().Set("ETag", `W/"1"`)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"resourceType":"Patient","id":"123"}`)
	}))

	result, err := client.Create(context.Background(), r4.Patient{Active: &r4.Boolean{Value: ptr.To(true)}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/Patient" {
		t.Errorf("request = %s %s, want POST /Patient", gotMethod, gotPath)
	}
	if gotPrefer != "return=representation" {
		t.Errorf("Prefer = %q", gotPrefer)
	}
	if gotContentType != "application/fhir+json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if !result.Created {
		t.Error("Created = false, want true")
	}
	if result.VersionId != "1" {
		t.Errorf("VersionId = %q, want 1", result.VersionId)
	}
	if result.Location != "/Patient/123/_history/1" {
		t.Errorf("Location = %q", result.Location)
	}
	if _, ok := result.Resource.(r4.Patient); !ok {
		t.Errorf("Resource = %T, want r4.Patient", result.Resource)
	}
}

func TestClientCreateConditional(t *testing.T) {
	var gotIfNoneExist string
	requestIds := map[string]bool{}
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIfNoneExist = r.Header.Get("If-None-Exist")
		requestIds[r.Header.Get("X-Request-Id")] = true
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"resourceType":"Patient","id":"123"}`)
	}))
	client.Backoff = testBackoff

	params := &search.Params{}
	params.Add("identifier", search.Token{System: mustURL(t, "urn:mrn"), Code: "12345"})

	result, err := client.CreateConditional(context.Background(), r4.Patient{}, params)
	if err != nil {
		t.Fatalf("CreateConditional: %v", err)
	}
	if gotIfNoneExist != "identifier=urn%3Amrn%7C12345" {
		t.Errorf("If-None-Exist = %q", gotIfNoneExist)
	}
	// the idempotency token must be stable across retry attempts
	if len(requestIds) != 1 {
		t.Errorf("saw %d distinct X-Request-Id values, want 1", len(requestIds))
	}
	if result.Created {
		t.Error("Created = true for 200 response, want false")
	}
}

func TestClientUpdateSendsIfMatch(t *testing.T) {
	var gotMethod, gotPath, gotIfMatch string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotIfMatch = r.Header.Get("If-Match")
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))

	patient := r4.Patient{
		Id:   &r4.Id{Value: ptr.To("example")},
		Meta: &r4.Meta{VersionId: &r4.Id{Value: ptr.To("3")}},
	}
	if _, err := client.Update(context.Background(), patient); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/Patient/example" {
		t.Errorf("request = %s %s, want PUT /Patient/example", gotMethod, gotPath)
	}
	if gotIfMatch != `W/"3"` {
		t.Errorf("If-Match = %q, want W/\"3\"", gotIfMatch)
	}
}

func TestClientUpdateWithoutId(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	if _, err := client.Update(context.Background(), r4.Patient{}); err == nil {
		t.Fatal("Update without id succeeded, want error")
	}
}

func TestClientDelete(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.Delete(context.Background(), "Patient", "example"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/Patient/example" {
		t.Errorf("request = %s %s, want DELETE /Patient/example", gotMethod, gotPath)
	}
}

func TestClientSearchQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"resourceType":"Bundle","type":"searchset"}`)
	}))

	params := &search.Params{}
	params.Add("status", search.Token{Code: "final"})
	params.Add("value-quantity", search.Number{Prefix: search.PrefixGreaterOrEqual, Value: apd.New(100, 0)})

	_, err := client.Search(context.Background(), "Observation", params, search.Options{Count: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "status=final&value-quantity=ge100&_count=10" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClientSearchSplitsIncludes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"resourceType": "Bundle",
			"type": "searchset",
			"entry": [
				{"resource": {"resourceType": "Observation", "id": "o1", "status": "final", "code": {"text": "x"}}, "search": {"mode": "match"}},
				{"resource": {"resourceType": "Patient", "id": "p1"}, "search": {"mode": "include"}}
			],
			"link": [{"relation": "next", "url": "http://example.com/next-page"}]
		}`)
	}))

	result, err := client.Search(context.Background(), "Observation", nil, search.Options{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Resources) != 1 || len(result.Included) != 1 {
		t.Fatalf("resources/included = %d/%d, want 1/1", len(result.Resources), len(result.Included))
	}
	if _, ok := result.Resources[0].(r4.Observation); !ok {
		t.Errorf("match = %T, want r4.Observation", result.Resources[0])
	}
	if result.Next != "http://example.com/next-page" {
		t.Errorf("Next = %q", result.Next)
	}
}

func TestClientSearchViaPOST(t *testing.T) {
	var gotPath, gotContentType, gotBody string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"resourceType":"Bundle","type":"searchset"}`)
	}))

	params := &search.Params{}
	params.Add("name", search.String("Chalmers"))

	if _, err := client.SearchViaPOST(context.Background(), "Patient", params, search.Options{}); err != nil {
		t.Fatalf("SearchViaPOST: %v", err)
	}
	if gotPath != "/Patient/_search" {
		t.Errorf("path = %q, want /Patient/_search", gotPath)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody != "name=Chalmers" {
		t.Errorf("body = %q", gotBody)
	}
}

func TestClientHistoryPaths(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"resourceType":"Bundle","type":"history"}`)
	}))

	tests := []struct {
		resourceType, id string
		wantPath         string
	}{
		{"Patient", "example", "/Patient/example/_history"},
		{"Patient", "", "/Patient/_history"},
		{"", "", "/_history"},
	}
	for _, tt := range tests {
		if _, err := client.History(context.Background(), tt.resourceType, tt.id); err != nil {
			t.Fatalf("History(%q, %q): %v", tt.resourceType, tt.id, err)
		}
		if gotPath != tt.wantPath {
			t.Errorf("History(%q, %q) path = %q, want %q", tt.resourceType, tt.id, gotPath, tt.wantPath)
		}
	}
}

func TestClientTransaction(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"resourceType":"Bundle","type":"transaction-response"}`)
	}))

	transaction := r4.Bundle{Type: r4.Code{Value: ptr.To("transaction")}}
	res, err := client.Transaction(context.Background(), transaction)
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if gotPath != "/" {
		t.Errorf("path = %q, want /", gotPath)
	}
	response, ok := res.(r4.Bundle)
	if !ok {
		t.Fatalf("got %T, want r4.Bundle", res)
	}
	if *response.Type.Value != "transaction-response" {
		t.Errorf("type = %q", *response.Type.Value)
	}
}

func TestClientInvoke(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"resourceType":"Parameters"}`)
	}))

	tests := []struct {
		resourceType, id string
		wantPath         string
	}{
		{"", "", "/$everything"},
		{"Patient", "", "/Patient/$everything"},
		{"Patient", "example", "/Patient/example/$everything"},
	}
	for _, tt := range tests {
		res, err := client.Invoke(context.Background(), tt.resourceType, tt.id, "everything", r4.Parameters{})
		if err != nil {
			t.Fatalf("Invoke(%q, %q): %v", tt.resourceType, tt.id, err)
		}
		if gotPath != tt.wantPath {
			t.Errorf("Invoke path = %q, want %q", gotPath, tt.wantPath)
		}
		if _, ok := res.(r4.Parameters); !ok {
			t.Errorf("got %T, want r4.Parameters", res)
		}
	}
}

func TestClientInvokeNoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	res, err := client.Invoke(context.Background(), "Patient", "example", "purge", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if res != nil {
		t.Errorf("got %T, want nil", res)
	}
}

func TestClientAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))
	client.Auth = "Bearer secret"

	if _, err := client.Read(context.Background(), "Patient", "example"); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestClientConcurrentReads(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Read(context.Background(), "Patient", "example"); err != nil {
				t.Errorf("Read: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestResourcesIterator(t *testing.T) {
	var calls atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := calls.Add(1)
		var entries, link string
		switch page {
		case 1:
			entries = patientEntries(0, 10)
			link = fmt.Sprintf(`,"link":[{"relation":"next","url":"%s/Patient?page=2"}]`, server.URL)
		default:
			entries = patientEntries(10, 5)
		}
		fmt.Fprintf(w, `{"resourceType":"Bundle","type":"searchset","entry":[%s]%s}`, entries, link)
	}))
	defer server.Close()

	client := &ClientR4{BaseURL: mustURL(t, server.URL)}
	it := client.Resources(context.Background(), "Patient", nil, search.Options{})
	defer it.Close()

	var got int
	for {
		res, err := it.Next(context.Background())
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if _, ok := res.(r4.Patient); !ok {
			t.Fatalf("got %T, want r4.Patient", res)
		}
		got++
	}
	if got != 15 {
		t.Errorf("iterated %d resources, want 15", got)
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
}

func TestResourcesIteratorClose(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"resourceType":"Bundle","type":"searchset","entry":[%s],"link":[{"relation":"next","url":"%s/Patient?page=2"}]}`,
			patientEntries(0, 2), server.URL)
	}))
	defer server.Close()

	client := &ClientR4{BaseURL: mustURL(t, server.URL)}
	it := client.Resources(context.Background(), "Patient", nil, search.Options{})
	if _, err := it.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
	it.Close()
	if _, err := it.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Next after Close = %v, want io.EOF", err)
	}
}

func TestClientPreferReturnMinimal(t *testing.T) {
	var gotPrefer string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		w.Header().Set("ETag", `W/"1"`)
		w.WriteHeader(http.StatusCreated)
	}))
	client.Return = "minimal"

	result, err := client.Create(context.Background(), r4.Patient{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotPrefer != "return=minimal" {
		t.Errorf("Prefer = %q, want return=minimal", gotPrefer)
	}
	if result.Resource != nil {
		t.Errorf("Resource = %T, want nil for minimal return", result.Resource)
	}
	if result.VersionId != "1" {
		t.Errorf("VersionId = %q, want 1", result.VersionId)
	}
}

func TestClientReadPatientTyped(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resourceType":"Patient","id":"example"}`)
	}))

	patient, err := client.ReadPatient(context.Background(), "example")
	if err != nil {
		t.Fatalf("ReadPatient: %v", err)
	}
	if *patient.Id.Value != "example" {
		t.Errorf("id = %q, want example", *patient.Id.Value)
	}
}

func TestClientReadPatientWrongType(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resourceType":"Observation","id":"example","status":"final","code":{"text":"x"}}`)
	}))

	if _, err := client.ReadPatient(context.Background(), "example"); err == nil {
		t.Fatal("ReadPatient with Observation body succeeded, want error")
	}
}

func TestClientNilBaseURL(t *testing.T) {
	client := &ClientR4{}
	if _, err := client.Read(context.Background(), "Patient", "example"); err == nil {
		t.Fatal("Read with nil base URL succeeded, want error")
	}
}

func patientEntries(start, n int) string {
	var entries string
	for i := 0; i < n; i++ {
		if i > 0 {
			entries += ","
		}
		entries += fmt.Sprintf(`{"resource":{"resourceType":"Patient","id":"p%d"},"search":{"mode":"match"}}`, start+i)
	}
	return entries
}
