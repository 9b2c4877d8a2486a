// Package inspect serves a read-only HTTP view of a loaded configuration.
//
// Routes:
//
//	GET /entries                 every non-null leaf, sorted by path
//	GET /values/{path}?type=int  one value, optionally through a typed getter
//	GET /has/{path}              presence, with and without nulls
//	GET /metrics                 Prometheus metrics of the listener
//
// Query failures map to statuses by error kind: a bad path is 400, a missing
// setting 404, an unresolved tree 409, null or mistyped values 422.
//
// Every request gets an X-Request-ID, is logged, rate limited and bounded by
// a timeout. Responses are gzip compressed when the client accepts it. CORS
// headers are only sent when allowed origins are configured.
package inspect
