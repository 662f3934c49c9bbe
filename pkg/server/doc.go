// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/layout   graph document in, grid JSON out
//	POST /v1/render   graph document in, one artifact out (svg, dot, json, ...)
//	POST /v1/path     graph document and start label in, highlight sets out
//	GET  /healthz     liveness and build information
//	GET  /metrics     Prometheus metrics, when enabled
//
// Every request body has the shape
//
//	{"graph": {...}, "options": {...}, "start": "Corvus"}
//
// where options are [pipeline.Options] merged over the server defaults.
// Each response carries an X-Request-ID header (echoed from the request or a
// new UUID) that also tags the request's log lines.
//
// Errors are JSON objects {"error", "code", "requestId"}; the status code is
// derived from the error code with [errors.HTTPStatus].
//
// [pipeline.Options]: github.com/speich/dGraph/pkg/pipeline
// [errors.HTTPStatus]: github.com/speich/dGraph/pkg/errors
package server
