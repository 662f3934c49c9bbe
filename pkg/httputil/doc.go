// Package httputil fetches remote graph data over HTTP.
//
// A [Client] sends GET requests with a fixed timeout and retries transient
// failures (network errors and 5xx responses) with exponential backoff.
// Successful responses are stored in a [cache.Cache] under
// [cache.Keyer.SourceKey], so running the same layout twice against a URL
// downloads the data once:
//
//	c := httputil.NewClient(fileCache, nil)
//	data, err := c.Fetch(ctx, "https://example.org/birds.json", false)
//
// A 404 is reported as [cache.ErrNotFound]; other failures wrap
// [cache.ErrBackend].
//
// [cache.Cache]: github.com/speich/dGraph/pkg/cache
package httputil
