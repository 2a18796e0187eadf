package routerman

import "net/http"

// HandlerFunc is the common handler shape: it receives the request and
// returns any value convertible into a response. Returning nil renders
// an empty 200 response.
type HandlerFunc func(r *http.Request) Reply

// RawHandlerFunc is the escape-hatch handler shape for handlers that need
// the formatter directly (e.g. to produce formatter-dependent content)
// and return an already-final response.
type RawHandlerFunc func(r *http.Request, f Formatter) *Response

// Reply converts a handler's return value into a final response given a
// formatter. Implementations must produce a response on every input;
// failures during response construction recurse into the formatter
// instead of escaping.
type Reply interface {
	Reply(f Formatter) *Response
}

// Formatter turns error values into responses. It is the single recovery
// point for routing errors, handler errors, and failures during response
// construction.
type Formatter interface {
	FormatError(err error) *Response
}

// RouteHandler is implemented by any type that can be meaningfully
// converted into a Route: plain handler functions, raw handler functions,
// method routers, and routes themselves.
type RouteHandler interface {
	IntoRoute() Route
}
