// Package rest implements a FHIR REST client over the generated resource
// model. ClientR4 and ClientR5 select the release; it threads through
// every decode as a type parameter.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/model/gen/r4"
	"github.com/healthwire/fhir-sdk-go/model/gen/r5"
	"github.com/healthwire/fhir-sdk-go/rest/internal/bundle"
	"github.com/healthwire/fhir-sdk-go/rest/internal/encoding"
	"github.com/healthwire/fhir-sdk-go/rest/internal/outcome"
	"github.com/healthwire/fhir-sdk-go/search"
)

const mimeFHIRJSON = "application/fhir+json"

// internalClient carries the release-generic request machinery. The
// exported ClientR4/ClientR5 facades construct one per call from their
// exported fields. It holds no per-call mutable state and is safe for
// concurrent use.
type internalClient[R model.Release] struct {
	baseURL   *url.URL
	client    *http.Client
	auth      string
	backoff   BackoffPolicy
	onAttempt func(Attempt)
	strict    bool
	ret       string
	log       *slog.Logger
}

// prefer builds the Prefer header value for write operations,
// defaulting to return=representation.
func (c *internalClient[R]) prefer() string {
	if c.ret != "" {
		return "return=" + c.ret
	}
	return "return=representation"
}

// path joins elements onto the base URL, tolerating a nil base so the
// error surfaces from do instead of a panic.
func (c *internalClient[R]) path(elem ...string) *url.URL {
	if c.baseURL == nil {
		return nil
	}
	return c.baseURL.JoinPath(elem...)
}

func (c *internalClient[R]) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return slog.Default()
}

// Result is the outcome of a write operation.
type Result struct {
	Resource model.Resource
	// Created reports whether the server created a new resource.
	Created bool
	// VersionId is parsed from the ETag response header, when present.
	VersionId string
	// Location is the Location or Content-Location response header.
	Location string
}

// Read retrieves the current version of a resource.
func (c *internalClient[R]) Read(ctx context.Context, resourceType, id string) (model.Resource, error) {
	resp, err := c.do(ctx, request{
		method:    http.MethodGet,
		url:       c.path(resourceType, id),
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, c.responseError(resp)
	}
	return c.decode(resp.body)
}

// VersionedRead retrieves a specific version of a resource.
func (c *internalClient[R]) VersionedRead(ctx context.Context, resourceType, id, versionId string) (model.Resource, error) {
	resp, err := c.do(ctx, request{
		method:    http.MethodGet,
		url:       c.path(resourceType, id, "_history", versionId),
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, c.responseError(resp)
	}
	return c.decode(resp.body)
}

// Create stores a new resource, letting the server assign the id.
func (c *internalClient[R]) Create(ctx context.Context, resource model.Resource) (Result, error) {
	body, err := encoding.EncodeResource[R](resource)
	if err != nil {
		return Result{}, fmt.Errorf("marshal resource: %w", err)
	}
	resp, err := c.do(ctx, request{
		method:  http.MethodPost,
		url:     c.path(resource.ResourceType()),
		body:    body,
		headers: http.Header{"Prefer": {c.prefer()}},
	})
	if err != nil {
		return Result{}, err
	}
	return c.writeResult(resp, http.StatusCreated)
}

// CreateConditional stores the resource unless a resource matching the
// search parameters already exists (If-None-Exist). The request carries
// an idempotency token stable across retry attempts.
func (c *internalClient[R]) CreateConditional(ctx context.Context, resource model.Resource, params *search.Params) (Result, error) {
	body, err := encoding.EncodeResource[R](resource)
	if err != nil {
		return Result{}, fmt.Errorf("marshal resource: %w", err)
	}
	headers := http.Header{
		"Prefer":       {c.prefer()},
		"X-Request-Id": {uuid.NewString()},
	}
	if q := search.BuildQuery(params, search.Options{}); q != "" {
		headers.Set("If-None-Exist", q)
	}
	resp, err := c.do(ctx, request{
		method:    http.MethodPost,
		url:       c.path(resource.ResourceType()),
		body:      body,
		headers:   headers,
		retryable: true,
	})
	if err != nil {
		return Result{}, err
	}
	return c.writeResult(resp, http.StatusCreated)
}

// Update stores a new version of the resource under its id. When the
// resource carries meta.versionId the update is guarded with an If-Match
// header so a concurrent change fails with 412 instead of being
// overwritten.
func (c *internalClient[R]) Update(ctx context.Context, resource model.Resource) (Result, error) {
	id, ok := resource.ResourceId()
	if !ok {
		return Result{}, fmt.Errorf("resource has no id")
	}
	body, err := encoding.EncodeResource[R](resource)
	if err != nil {
		return Result{}, fmt.Errorf("marshal resource: %w", err)
	}
	headers := http.Header{"Prefer": {c.prefer()}}
	if vid, ok := versionIdOf(resource); ok {
		headers.Set("If-Match", `W/"`+vid+`"`)
	}
	resp, err := c.do(ctx, request{
		method:  http.MethodPut,
		url:     c.path(resource.ResourceType(), id),
		body:    body,
		headers: headers,
	})
	if err != nil {
		return Result{}, err
	}
	return c.writeResult(resp, http.StatusCreated)
}

// UpdateConditional stores the resource under whatever resource matches
// the search parameters.
func (c *internalClient[R]) UpdateConditional(ctx context.Context, resource model.Resource, params *search.Params) (Result, error) {
	body, err := encoding.EncodeResource[R](resource)
	if err != nil {
		return Result{}, fmt.Errorf("marshal resource: %w", err)
	}
	u := c.path(resource.ResourceType())
	if u != nil {
		u.RawQuery = search.BuildQuery(params, search.Options{})
	}
	resp, err := c.do(ctx, request{
		method:  http.MethodPut,
		url:     u,
		body:    body,
		headers: http.Header{"Prefer": {c.prefer()}},
	})
	if err != nil {
		return Result{}, err
	}
	return c.writeResult(resp, http.StatusCreated)
}

// Patch applies a patch document to a resource. The contentType names
// the patch flavor, e.g. "application/json-patch+json".
func (c *internalClient[R]) Patch(ctx context.Context, resourceType, id string, patch []byte, contentType string) (model.Resource, error) {
	resp, err := c.do(ctx, request{
		method:      http.MethodPatch,
		url:         c.path(resourceType, id),
		body:        patch,
		contentType: contentType,
		headers:     http.Header{"Prefer": {c.prefer()}},
	})
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, c.responseError(resp)
	}
	return c.decode(resp.body)
}

// Delete removes a resource.
func (c *internalClient[R]) Delete(ctx context.Context, resourceType, id string) error {
	resp, err := c.do(ctx, request{
		method: http.MethodDelete,
		url:    c.path(resourceType, id),
	})
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusNoContent {
		return c.responseError(resp)
	}
	return nil
}

// DeleteConditional removes the resources matching the search parameters.
func (c *internalClient[R]) DeleteConditional(ctx context.Context, resourceType string, params *search.Params) error {
	u := c.path(resourceType)
	if u != nil {
		u.RawQuery = search.BuildQuery(params, search.Options{})
	}
	resp, err := c.do(ctx, request{
		method: http.MethodDelete,
		url:    u,
	})
	if err != nil {
		return err
	}
	if resp.status != http.StatusOK && resp.status != http.StatusNoContent {
		return c.responseError(resp)
	}
	return nil
}

// Search queries resources of the given type. When options.Cursor is set
// it is treated as the complete next-page URL and all other parameters
// are ignored.
func (c *internalClient[R]) Search(ctx context.Context, resourceType string, params *search.Params, options search.Options) (search.Result, error) {
	var u *url.URL
	if options.Cursor != "" {
		var err error
		u, err = url.Parse(string(options.Cursor))
		if err != nil {
			return search.Result{}, fmt.Errorf("invalid cursor URL: %w", err)
		}
	} else {
		u = c.path(resourceType)
		if u != nil {
			u.RawQuery = search.BuildQuery(params, options)
		}
	}
	resp, err := c.do(ctx, request{
		method:    http.MethodGet,
		url:       u,
		retryable: true,
	})
	if err != nil {
		return search.Result{}, err
	}
	if resp.status != http.StatusOK {
		return search.Result{}, c.responseError(resp)
	}
	return c.parseSearchBundle(resp.body)
}

// SearchViaPOST queries via the _search endpoint, carrying the
// parameters in a form body instead of the URL.
func (c *internalClient[R]) SearchViaPOST(ctx context.Context, resourceType string, params *search.Params, options search.Options) (search.Result, error) {
	resp, err := c.do(ctx, request{
		method:      http.MethodPost,
		url:         c.path(resourceType, "_search"),
		body:        []byte(search.BuildQuery(params, options)),
		contentType: "application/x-www-form-urlencoded",
		retryable:   true,
	})
	if err != nil {
		return search.Result{}, err
	}
	if resp.status != http.StatusOK {
		return search.Result{}, c.responseError(resp)
	}
	return c.parseSearchBundle(resp.body)
}

// History lists past versions. With an id it covers one resource, with
// only a type the whole type, and with neither the whole system.
func (c *internalClient[R]) History(ctx context.Context, resourceType, id string) (search.Result, error) {
	var u *url.URL
	switch {
	case resourceType == "":
		u = c.path("_history")
	case id == "":
		u = c.path(resourceType, "_history")
	default:
		u = c.path(resourceType, id, "_history")
	}
	resp, err := c.do(ctx, request{
		method:    http.MethodGet,
		url:       u,
		retryable: true,
	})
	if err != nil {
		return search.Result{}, err
	}
	if resp.status != http.StatusOK {
		return search.Result{}, c.responseError(resp)
	}
	return c.parseSearchBundle(resp.body)
}

// Transaction posts a transaction bundle to the server root. The entries
// are processed atomically.
func (c *internalClient[R]) Transaction(ctx context.Context, transaction model.Resource) (model.Resource, error) {
	return c.postBundle(ctx, transaction)
}

// Batch posts a batch bundle to the server root. The entries are
// processed independently.
func (c *internalClient[R]) Batch(ctx context.Context, batch model.Resource) (model.Resource, error) {
	return c.postBundle(ctx, batch)
}

func (c *internalClient[R]) postBundle(ctx context.Context, b model.Resource) (model.Resource, error) {
	body, err := encoding.EncodeResource[R](b)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		url:    c.path(),
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, c.responseError(resp)
	}
	return c.decode(resp.body)
}

// Invoke calls a FHIR operation at system, type, or instance level using
// POST. A 204 response yields a nil resource.
func (c *internalClient[R]) Invoke(ctx context.Context, resourceType, id, code string, parameters model.Resource) (model.Resource, error) {
	if code == "" {
		return nil, fmt.Errorf("operation code is empty")
	}
	var u *url.URL
	switch {
	case resourceType == "":
		u = c.path("$" + code)
	case id == "":
		u = c.path(resourceType, "$"+code)
	default:
		u = c.path(resourceType, id, "$"+code)
	}
	var body []byte
	if parameters != nil {
		var err error
		body, err = encoding.EncodeResource[R](parameters)
		if err != nil {
			return nil, fmt.Errorf("marshal parameters: %w", err)
		}
	}
	resp, err := c.do(ctx, request{
		method: http.MethodPost,
		url:    u,
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNoContent {
		return nil, nil
	}
	if resp.status != http.StatusOK {
		return nil, c.responseError(resp)
	}
	return c.decode(resp.body)
}

// request is one logical request; retryable requests may be sent
// multiple times under the backoff policy.
type request struct {
	method      string
	url         *url.URL
	body        []byte
	contentType string
	headers     http.Header
	retryable   bool
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (c *internalClient[R]) do(ctx context.Context, req request) (response, error) {
	if req.url == nil {
		return response{}, fmt.Errorf("base URL is nil")
	}
	attempts := 1
	if req.retryable {
		attempts = c.backoff.attempts()
	}

	var lastStatus int
	var lastErr error
	for attempt := 1; ; attempt++ {
		resp, err := c.doOnce(ctx, req)
		if c.onAttempt != nil {
			a := Attempt{Number: attempt, Method: req.method, URL: req.url.String(), Err: err}
			if err == nil {
				a.Status = resp.status
			}
			c.onAttempt(a)
		}

		switch {
		case err != nil:
			lastStatus, lastErr = 0, err
		case transientStatus(resp.status) && req.retryable:
			// Non-retryable operations return the response instead, so
			// an OperationOutcome body on a 5xx still surfaces.
			lastStatus = resp.status
			lastErr = fmt.Errorf("transient status %d", resp.status)
		default:
			return resp, nil
		}

		c.logger().DebugContext(ctx, "fhir request attempt failed",
			"method", req.method, "url", req.url.String(),
			"attempt", attempt, "status", lastStatus, "err", lastErr)

		if attempt >= attempts {
			return response{}, &TransportError{Attempts: attempt, LastStatus: lastStatus, Err: lastErr}
		}
		if err := c.sleep(ctx, c.backoff.delay(attempt)); err != nil {
			return response{}, &TransportError{Attempts: attempt, LastStatus: lastStatus, Err: err}
		}
	}
}

func (c *internalClient[R]) doOnce(ctx context.Context, req request) (response, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", mimeFHIRJSON)
	if req.body != nil {
		ct := req.contentType
		if ct == "" {
			ct = mimeFHIRJSON
		}
		httpReq.Header.Set("Content-Type", ct)
	}
	if c.auth != "" {
		httpReq.Header.Set("Authorization", c.auth)
	}
	for k, vs := range req.headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return response{}, fmt.Errorf("execute request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, fmt.Errorf("read response body: %w", err)
	}
	return response{status: httpResp.StatusCode, header: httpResp.Header, body: respBody}, nil
}

func (c *internalClient[R]) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *internalClient[R]) decode(body []byte) (model.Resource, error) {
	return encoding.DecodeResource[R](bytes.NewReader(body), c.strict)
}

// responseError maps a non-success response to a FhirError when the body
// decodes to an OperationOutcome, else to a ProtocolError.
func (c *internalClient[R]) responseError(resp response) error {
	res, err := encoding.DecodeResource[R](bytes.NewReader(resp.body), false)
	if err == nil && outcome.IsOperationOutcome(res) {
		return &FhirError{
			StatusCode: resp.status,
			Outcome:    res,
			Issues:     outcome.Issues(res),
		}
	}
	return &ProtocolError{StatusCode: resp.status, Body: resp.body}
}

func (c *internalClient[R]) writeResult(resp response, createdStatus int) (Result, error) {
	var created bool
	switch resp.status {
	case http.StatusOK:
	case createdStatus:
		created = true
	default:
		return Result{}, c.responseError(resp)
	}

	result := Result{Created: created}
	if loc := resp.header.Get("Location"); loc != "" {
		result.Location = loc
	} else if loc := resp.header.Get("Content-Location"); loc != "" {
		result.Location = loc
	}
	result.VersionId = versionFromETag(resp.header.Get("ETag"))

	if len(resp.body) > 0 {
		res, err := c.decode(resp.body)
		if err != nil {
			return Result{}, err
		}
		result.Resource = res
	}
	return result, nil
}

// versionFromETag extracts the version id from a weak ETag of the form
// W/"3".
func versionFromETag(etag string) string {
	etag = strings.TrimPrefix(etag, "W/")
	return strings.Trim(etag, `"`)
}

func versionIdOf(res model.Resource) (string, bool) {
	if vid, ok := r4.ResourceVersionId(res); ok {
		return vid, true
	}
	return r5.ResourceVersionId(res)
}

func (c *internalClient[R]) parseSearchBundle(body []byte) (search.Result, error) {
	res, err := c.decode(body)
	if err != nil {
		return search.Result{}, fmt.Errorf("parse bundle: %w", err)
	}
	entries, err := bundle.Entries(res)
	if err != nil {
		return search.Result{}, err
	}

	var result search.Result
	for _, e := range entries {
		if e.Resource == nil {
			continue
		}
		if e.SearchMode == "include" {
			result.Included = append(result.Included, e.Resource)
		} else {
			result.Resources = append(result.Resources, e.Resource)
		}
	}

	next, err := bundle.Link(res, "next")
	if err != nil {
		return search.Result{}, err
	}
	result.Next = search.Cursor(next)
	return result, nil
}
