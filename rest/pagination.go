package rest

import (
	"context"
	"io"

	"github.com/healthwire/fhir-sdk-go/model"
	"github.com/healthwire/fhir-sdk-go/search"
)

// ResourceIterator walks all pages of a search, yielding one resource at
// a time. It is not safe for concurrent use by multiple goroutines.
type ResourceIterator struct {
	fetch   func(ctx context.Context, cursor search.Cursor) (search.Result, error)
	ctx     context.Context
	cancel  context.CancelFunc
	pending []model.Resource
	next    search.Cursor
	// prefetch holds the result of the page fetched ahead of
	// consumption, or nil when no fetch is in flight.
	prefetch chan pageResult
	started  bool
	done     bool
}

type pageResult struct {
	result search.Result
	err    error
}

// Resources starts a paginated search and returns an iterator over every
// matched resource. Included resources are not yielded. The iterator
// fetches one page ahead of consumption; Close releases the in-flight
// fetch and must be called when iteration stops early.
func (c *internalClient[R]) Resources(ctx context.Context, resourceType string, params *search.Params, options search.Options) *ResourceIterator {
	ctx, cancel := context.WithCancel(ctx)
	return &ResourceIterator{
		fetch: func(ctx context.Context, cursor search.Cursor) (search.Result, error) {
			opts := options
			opts.Cursor = cursor
			return c.Search(ctx, resourceType, params, opts)
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Next returns the next resource. It returns io.EOF once all pages are
// exhausted.
func (it *ResourceIterator) Next(ctx context.Context) (model.Resource, error) {
	for {
		if len(it.pending) > 0 {
			res := it.pending[0]
			it.pending = it.pending[1:]
			return res, nil
		}
		if it.done {
			return nil, io.EOF
		}

		if !it.started {
			it.started = true
			it.start("")
		}
		if it.prefetch == nil {
			return nil, io.EOF
		}

		var page pageResult
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case page = <-it.prefetch:
		}
		it.prefetch = nil
		if page.err != nil {
			it.done = true
			return nil, page.err
		}

		it.pending = page.result.Resources
		it.next = page.result.Next
		if it.next != "" {
			it.start(it.next)
		} else {
			it.done = true
		}
	}
}

// start launches the fetch of the page at cursor; cursor "" means the
// first page.
func (it *ResourceIterator) start(cursor search.Cursor) {
	ch := make(chan pageResult, 1)
	it.prefetch = ch
	go func() {
		result, err := it.fetch(it.ctx, cursor)
		ch <- pageResult{result: result, err: err}
	}()
}

// Close stops iteration and cancels any in-flight page fetch. It is safe
// to call Close multiple times.
func (it *ResourceIterator) Close() {
	it.cancel()
	it.done = true
	it.pending = nil
}
