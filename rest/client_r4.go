package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/model/gen/r4"
	"github.com/healthwire/fhir-sdk-go/search"
)

// ClientR4 is a client for FHIR R4 servers, providing both generic and
// resource-specific operations.
type ClientR4 struct {
	// BaseURL is the base URL of the FHIR server.
	BaseURL *url.URL
	// Client is the HTTP client to use for requests. If nil,
	// http.DefaultClient is used.
	Client *http.Client
	// Auth is an opaque Authorization header value, e.g. "Bearer <token>".
	Auth string
	// Backoff enables retries of idempotent requests. The zero value
	// disables retries.
	Backoff BackoffPolicy
	// OnAttempt, when set, is called for every request attempt,
	// including the successful one.
	OnAttempt func(Attempt)
	// StrictDecoding rejects unknown fields in server responses.
	StrictDecoding bool
	// Return selects the Prefer return preference for write operations:
	// "representation" (the default) or "minimal".
	Return string
	// Log receives request-level debug logging. If nil, slog.Default()
	// is used.
	Log *slog.Logger
}

// httpClient returns the HTTP client, using http.DefaultClient if none
// is set.
func (c *ClientR4) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func (c *ClientR4) internal() *internalClient[model.R4] {
	return &internalClient[model.R4]{
		baseURL:   c.BaseURL,
		client:    c.httpClient(),
		auth:      c.Auth,
		backoff:   c.Backoff,
		onAttempt: c.OnAttempt,
		strict:    c.StrictDecoding,
		ret:       c.Return,
		log:       c.Log,
	}
}

// Read retrieves the current version of a resource.
func (c *ClientR4) Read(ctx context.Context, resourceType, id string) (model.Resource, error) {
	return c.internal().Read(ctx, resourceType, id)
}

// VersionedRead retrieves a specific version of a resource.
func (c *ClientR4) VersionedRead(ctx context.Context, resourceType, id, versionId string) (model.Resource, error) {
	return c.internal().VersionedRead(ctx, resourceType, id, versionId)
}

// Create stores a new resource, letting the server assign the id.
func (c *ClientR4) Create(ctx context.Context, resource model.Resource) (Result, error) {
	return c.internal().Create(ctx, resource)
}

// CreateConditional stores the resource unless a resource matching the
// search parameters already exists.
func (c *ClientR4) CreateConditional(ctx context.Context, resource model.Resource, params *search.Params) (Result, error) {
	return c.internal().CreateConditional(ctx, resource, params)
}

// Update stores a new version of the resource under its id.
func (c *ClientR4) Update(ctx context.Context, resource model.Resource) (Result, error) {
	return c.internal().Update(ctx, resource)
}

// UpdateConditional stores the resource under whatever resource matches
// the search parameters.
func (c *ClientR4) UpdateConditional(ctx context.Context, resource model.Resource, params *search.Params) (Result, error) {
	return c.internal().UpdateConditional(ctx, resource, params)
}

// Patch applies a patch document to a resource.
func (c *ClientR4) Patch(ctx context.Context, resourceType, id string, patch []byte, contentType string) (model.Resource, error) {
	return c.internal().Patch(ctx, resourceType, id, patch, contentType)
}

// Delete removes a resource.
func (c *ClientR4) Delete(ctx context.Context, resourceType, id string) error {
	return c.internal().Delete(ctx, resourceType, id)
}

// DeleteConditional removes the resources matching the search parameters.
func (c *ClientR4) DeleteConditional(ctx context.Context, resourceType string, params *search.Params) error {
	return c.internal().DeleteConditional(ctx, resourceType, params)
}

// Search queries resources of the given type.
func (c *ClientR4) Search(ctx context.Context, resourceType string, params *search.Params, options search.Options) (search.Result, error) {
	return c.internal().Search(ctx, resourceType, params, options)
}

// SearchViaPOST queries via the _search endpoint.
func (c *ClientR4) SearchViaPOST(ctx context.Context, resourceType string, params *search.Params, options search.Options) (search.Result, error) {
	return c.internal().SearchViaPOST(ctx, resourceType, params, options)
}

// History lists past versions of a resource, a type, or the whole system.
func (c *ClientR4) History(ctx context.Context, resourceType, id string) (search.Result, error) {
	return c.internal().History(ctx, resourceType, id)
}

// Transaction posts a transaction bundle to the server root.
func (c *ClientR4) Transaction(ctx context.Context, transaction model.Resource) (model.Resource, error) {
	return c.internal().Transaction(ctx, transaction)
}

// Batch posts a batch bundle to the server root.
func (c *ClientR4) Batch(ctx context.Context, batch model.Resource) (model.Resource, error) {
	return c.internal().Batch(ctx, batch)
}

// Invoke calls a FHIR operation at system, type, or instance level.
func (c *ClientR4) Invoke(ctx context.Context, resourceType, id, code string, parameters model.Resource) (model.Resource, error) {
	return c.internal().Invoke(ctx, resourceType, id, code, parameters)
}

// Resources starts a paginated search and returns an iterator over every
// matched resource.
func (c *ClientR4) Resources(ctx context.Context, resourceType string, params *search.Params, options search.Options) *ResourceIterator {
	return c.internal().Resources(ctx, resourceType, params, options)
}

// ReadPatient retrieves the Patient with the given id.
func (c *ClientR4) ReadPatient(ctx context.Context, id string) (r4.Patient, error) {
	res, err := c.Read(ctx, "Patient", id)
	if err != nil {
		return r4.Patient{}, err
	}
	patient, ok := res.(r4.Patient)
	if !ok {
		return r4.Patient{}, fmt.Errorf("unexpected resource: expected Patient, got %s", res.ResourceType())
	}
	return patient, nil
}

// SearchPatient queries Patient resources.
func (c *ClientR4) SearchPatient(ctx context.Context, params *search.Params, options search.Options) (search.Result, error) {
	return c.Search(ctx, "Patient", params, options)
}

// CreatePatient stores a new Patient.
func (c *ClientR4) CreatePatient(ctx context.Context, patient r4.Patient) (Result, error) {
	return c.Create(ctx, patient)
}

// UpdatePatient stores a new version of the Patient.
func (c *ClientR4) UpdatePatient(ctx context.Context, patient r4.Patient) (Result, error) {
	return c.Update(ctx, patient)
}

// ReadObservation retrieves the Observation with the given id.
func (c *ClientR4) ReadObservation(ctx context.Context, id string) (r4.Observation, error) {
	res, err := c.Read(ctx, "Observation", id)
	if err != nil {
		return r4.Observation{}, err
	}
	observation, ok := res.(r4.Observation)
	if !ok {
		return r4.Observation{}, fmt.Errorf("unexpected resource: expected Observation, got %s", res.ResourceType())
	}
	return observation, nil
}

// SearchObservation queries Observation resources.
func (c *ClientR4) SearchObservation(ctx context.Context, params *search.Params, options search.Options) (search.Result, error) {
	return c.Search(ctx, "Observation", params, options)
}

// CreateObservation stores a new Observation.
func (c *ClientR4) CreateObservation(ctx context.Context, observation r4.Observation) (Result, error) {
	return c.Create(ctx, observation)
}

// UpdateObservation stores a new version of the Observation.
func (c *ClientR4) UpdateObservation(ctx context.Context, observation r4.Observation) (Result, error) {
	return c.Update(ctx, observation)
}
