package routerman

import "net/http"

// Route is one bound, shareable request handler: a type-erased closure
// producing a response for a request given a formatter. Routes are
// immutable after construction and cheap to copy; concurrent invocations
// of the same route are independent. The zero value is not usable; build
// routes through RouteHandler implementations.
type Route struct {
	fn func(r *http.Request, f Formatter) *Response
}

// NewRoute converts any RouteHandler into a Route.
func NewRoute(h RouteHandler) Route {
	return h.IntoRoute()
}

// IntoRoute implements RouteHandler; a route converts to itself.
func (rt Route) IntoRoute() Route { return rt }

func (rt Route) valid() bool { return rt.fn != nil }

// invoke runs the handler. A nil response is a handler bug and is
// recovered through the formatter so the contract stays total.
func (rt Route) invoke(r *http.Request, f Formatter) *Response {
	res := rt.fn(r, f)
	if res == nil {
		return f.FormatError(ErrNilResponse)
	}
	return res
}

// IntoRoute adapts the common handler shape: the returned reply is
// converted with the dispatch-time formatter.
func (h HandlerFunc) IntoRoute() Route {
	return Route{fn: func(r *http.Request, f Formatter) *Response {
		return replyOrEmpty(h(r), f)
	}}
}

// IntoRoute adapts the escape-hatch shape returning a final response.
func (h RawHandlerFunc) IntoRoute() Route {
	return Route{fn: h}
}
