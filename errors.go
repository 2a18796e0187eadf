package routerman

import "errors"

// Configuration errors. These are raised as panics during router
// construction: they represent programmer misconfiguration, not runtime
// conditions, and are never recovered.
var (
	ErrDuplicateRoute      = errors.New("duplicate route pattern")
	ErrConflictingDefault  = errors.New("cannot merge routers with conflicting default routes")
	ErrConflictingFallback = errors.New("cannot merge two method routers with fallback routes")
	ErrInvalidPattern      = errors.New("routing pattern must begin with '/'")
	ErrInvalidMethod       = errors.New("invalid http method")

	// Pattern parsing errors
	ErrInvalidRegexp    = errors.New("invalid regexp pattern in route param")
	ErrWildcardPosition = errors.New("wildcard '*' must be the last pattern in a route")
	ErrParamDelimiter   = errors.New("route param closing delimiter '}' is missing")
	ErrDuplicateParam   = errors.New("routing pattern contains duplicate param key")
	ErrMissingChild     = errors.New("replacing missing child")
)

// Contract errors. Accessing routing metadata on a request that never
// went through routing, or consuming a dispatch twice, signals a bug in
// the calling code and panics with one of these.
var (
	ErrMissingParams     = errors.New("missing route params (request not processed by routerman?)")
	ErrMissingRemoteAddr = errors.New("missing remote address (request not processed by routerman?)")
	ErrDispatchConsumed  = errors.New("dispatch response taken after completion")
)

// ErrNilResponse is reported through the formatter when a raw handler
// returns a nil response.
var ErrNilResponse = errors.New("handler returned nil response")

// Response construction errors, recovered by the formatter.
var (
	ErrInvalidHeaderName  = errors.New("invalid header name")
	ErrInvalidHeaderValue = errors.New("invalid header value")
)
