package routerman

import (
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
)

// RouteErrorKind enumerates why normal dispatch did not occur.
type RouteErrorKind uint8

const (
	RouteNotFound RouteErrorKind = iota
	RouteExtraTrailingSlash
	RouteMissingTrailingSlash
	RouteMethodNotAllowed
	RouteInvalidParamEncoding
)

// RouteError describes a routing-stage failure. It carries enough context
// (the offending key, the precomputed allow-list, or the request URL) to
// format a response without re-deriving it.
type RouteError struct {
	Kind  RouteErrorKind
	URL   *url.URL // offending request URL on trailing-slash mismatches
	Allow string   // precomputed Allow value on MethodNotAllowed
	Key   string   // offending parameter key on InvalidParamEncoding
}

// Error implements the error interface.
func (e *RouteError) Error() string {
	switch e.Kind {
	case RouteNotFound:
		return "not found"
	case RouteExtraTrailingSlash, RouteMissingTrailingSlash:
		return fmt.Sprintf("expected uri: %s", redirectLocation(e))
	case RouteMethodNotAllowed:
		return "method not allowed"
	case RouteInvalidParamEncoding:
		return fmt.Sprintf("invalid param encoding for key %q", e.Key)
	}
	return "route error"
}

// RouterBuilder accumulates routes during the one-time build phase.
type RouterBuilder struct {
	routes       []builderRoute
	defaultRoute Route
	formatter    Formatter
}

type builderRoute struct {
	pattern string
	route   Route
}

// NewRouter returns an empty router builder.
func NewRouter() *RouterBuilder {
	return &RouterBuilder{}
}

// Route registers a handler for the given path pattern. Patterns support
// literal segments, named parameters ({id}, {id:[0-9]+}) and a trailing
// catch-all (*).
func (b *RouterBuilder) Route(pattern string, h RouteHandler) *RouterBuilder {
	b.routes = append(b.routes, builderRoute{pattern: pattern, route: h.IntoRoute()})
	return b
}

// Default installs the route invoked when no pattern matches. It receives
// the original, unmodified request with no parameters attached.
func (b *RouterBuilder) Default(h RouteHandler) *RouterBuilder {
	b.defaultRoute = h.IntoRoute()
	return b
}

// Formatter sets the formatter used for reply conversion and routing
// errors. Unset, the router uses DefaultFormatter.
func (b *RouterBuilder) Formatter(f Formatter) *RouterBuilder {
	b.formatter = f
	return b
}

// Merge appends all routes of the other builder. Panics when both
// builders declare a default route: the caller must resolve that
// ambiguity explicitly.
func (b *RouterBuilder) Merge(other *RouterBuilder) *RouterBuilder {
	b.routes = append(b.routes, other.routes...)
	if other.defaultRoute.valid() {
		if b.defaultRoute.valid() {
			panic(ErrConflictingDefault)
		}
		b.defaultRoute = other.defaultRoute
	}
	return b
}

// Build freezes the builder into an immutable Router. Duplicate or
// conflicting patterns panic here, at build time, never at request time.
func (b *RouterBuilder) Build() *Router {
	tree := &node{}
	for _, br := range b.routes {
		if len(br.pattern) == 0 || br.pattern[0] != '/' {
			panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, br.pattern))
		}
		tree.insertRoute(br.pattern, br.route)
	}

	formatter := b.formatter
	if formatter == nil {
		formatter = DefaultFormatter{}
	}

	return &Router{
		tree:         tree,
		defaultRoute: b.defaultRoute,
		formatter:    formatter,
	}
}

// Router is the built, immutable path router. It never mutates after
// Build and is safely shared by any number of concurrent requests.
type Router struct {
	tree         *node
	defaultRoute Route
	formatter    Formatter
}

// Dispatch resolves the request into a dispatch unit holding either the
// selected handler invocation or an immediately-ready response for the
// redirect, not-found, and bad-parameter paths.
func (rt *Router) Dispatch(r *http.Request) *Dispatch {
	route, raw, kind := rt.tree.findRoute(routePath(r))

	switch kind {
	case matchExact:
		params, err := raw.decode()
		if err != nil {
			return &Dispatch{ready: rt.formatter.FormatError(err)}
		}
		return &Dispatch{
			route:     route,
			request:   requestWithParams(r, params),
			formatter: rt.formatter,
		}

	case matchExtraSlash:
		err := &RouteError{Kind: RouteExtraTrailingSlash, URL: r.URL}
		return &Dispatch{ready: rt.formatter.FormatError(err)}

	case matchMissingSlash:
		err := &RouteError{Kind: RouteMissingTrailingSlash, URL: r.URL}
		return &Dispatch{ready: rt.formatter.FormatError(err)}

	default:
		if rt.defaultRoute.valid() {
			return &Dispatch{route: rt.defaultRoute, request: r, formatter: rt.formatter}
		}
		return &Dispatch{ready: rt.formatter.FormatError(&RouteError{Kind: RouteNotFound})}
	}
}

// Patterns returns the registered route patterns, for introspection.
func (rt *Router) Patterns() []string {
	return rt.tree.patterns()
}

// ServeHTTP binds the router into net/http: it attaches the caller's
// socket address, dispatches, and writes the resulting response.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if addr, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		r = requestWithRemoteAddr(r, addr)
	}

	res := rt.Dispatch(r).Response()
	// A failed write means the connection is gone; there is nothing
	// left to send.
	_ = res.Write(w)
}

// routePath returns the path to match against. Matching always runs on
// the escaped (wire) form so captures reach the decoder still encoded
// and are percent-decoded exactly once.
func routePath(r *http.Request) string {
	if path := r.URL.EscapedPath(); path != "" {
		return path
	}
	return "/"
}

// Dispatch represents one request whose response is either still to be
// produced by a handler or already known. It exists so the immediate
// redirect/not-found/bad-param paths carry a ready response instead of a
// pending handler invocation.
type Dispatch struct {
	route     Route
	request   *http.Request
	formatter Formatter
	ready     *Response
	done      bool
}

// Response runs the pending handler if any and yields the response
// exactly once. Calling Response after completion panics: correct
// transports never consume a completed dispatch.
func (d *Dispatch) Response() *Response {
	if d.done {
		panic(ErrDispatchConsumed)
	}
	d.done = true

	if d.ready != nil {
		res := d.ready
		d.ready = nil
		return res
	}
	return d.route.invoke(d.request, d.formatter)
}
